package models

import (
	"time"
)

// Claim 领取单表
// 领取单从不删除，作为发放历史保留
type Claim struct {
	ID              uint      `gorm:"primarykey" json:"id"`                          // 主键
	ClaimID         string    `gorm:"uniqueIndex;not null" json:"claim_id"`          // 对外领取单编号（CLM-XXXXXXXXX）
	RewardID        uint      `gorm:"not null;index" json:"reward_id"`               // 奖品ID
	VariantOption   string    `json:"variant_option"`                                // 选中的款式选项
	Username        string    `gorm:"not null;index" json:"username"`                // 申请人账号
	FullName        string    `gorm:"not null" json:"full_name"`                     // 申请人姓名
	Phone           string    `gorm:"not null" json:"phone"`                         // 联系电话
	Email           string    `gorm:"index" json:"email"`                            // 联系邮箱（可选）
	DeliveryAddress string    `gorm:"type:text" json:"delivery_address"`             // 收货地址（实物奖品）
	EwalletName     string    `json:"ewallet_name"`                                  // 电子钱包名称（E-wallet 奖品）
	EwalletAccount  string    `json:"ewallet_account"`                               // 电子钱包账号（E-wallet 奖品）
	Status          string    `gorm:"type:varchar(20);not null;index" json:"status"` // 领取单状态
	RejectionReason string    `gorm:"type:text" json:"rejection_reason"`             // 驳回原因（status=rejected 时必填）
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                    // 更新时间

	// 关联
	Reward Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"` // 奖品信息
}

// TableName 指定表名
func (Claim) TableName() string {
	return "claims"
}

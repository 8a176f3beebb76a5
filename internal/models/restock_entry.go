package models

import (
	"time"
)

// RestockEntry 补货审计记录表（只追加）
type RestockEntry struct {
	ID               uint      `gorm:"primarykey" json:"id"`              // 主键
	RewardID         uint      `gorm:"not null;index" json:"reward_id"`   // 奖品ID
	PreviousQuantity int       `gorm:"not null" json:"previous_quantity"` // 补货前数量
	AddedQuantity    int       `gorm:"not null" json:"added_quantity"`    // 补货数量
	NewQuantity      int       `gorm:"not null" json:"new_quantity"`      // 补货后数量
	RestockedBy      string    `json:"restocked_by"`                      // 操作人
	Notes            string    `gorm:"type:text" json:"notes"`            // 备注
	CreatedAt        time.Time `gorm:"index" json:"created_at"`           // 创建时间

	// 关联
	Reward Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"` // 奖品信息
}

// TableName 指定表名
func (RestockEntry) TableName() string {
	return "restock_entries"
}

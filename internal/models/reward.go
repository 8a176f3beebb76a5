package models

import (
	"time"
)

// Reward 奖品表
type Reward struct {
	ID                uint        `gorm:"primarykey" json:"id"`                                // 主键
	Name              string      `gorm:"not null;index" json:"name"`                          // 奖品名称
	Category          string      `gorm:"type:varchar(50);not null;index" json:"category"`     // 分类标签
	Points            Points      `gorm:"type:decimal(20,0);not null;default:0" json:"points"` // 兑换积分
	Quantity          int         `gorm:"not null;default:0" json:"quantity"`                  // 库存数量（禁止为负）
	LowStockThreshold int         `gorm:"not null;default:5" json:"low_stock_threshold"`       // 低库存阈值
	VariantKind       string      `gorm:"type:varchar(50)" json:"variant_kind"`                // 款式维度（颜色/尺寸等）
	VariantOptions    StringArray `gorm:"type:json" json:"variant_options"`                    // 款式选项（有序且唯一）
	Galleries         GalleryMap  `gorm:"type:json" json:"galleries"`                          // 款式画册（每项最多 4 张）
	Image             string      `json:"image"`                                               // 封面图
	Description       string      `gorm:"type:text" json:"description"`                        // 描述
	IsActive          bool        `gorm:"default:true;index" json:"is_active"`                 // 是否上架
	CreatedAt         time.Time   `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt         time.Time   `json:"updated_at"`                                          // 更新时间

	// 关联
	Claims         []Claim        `gorm:"foreignKey:RewardID" json:"claims,omitempty"`          // 领取单列表
	RestockEntries []RestockEntry `gorm:"foreignKey:RewardID" json:"restock_entries,omitempty"` // 补货记录
}

// TableName 指定表名
func (Reward) TableName() string {
	return "rewards"
}

// EffectiveLowStockThreshold 返回生效的低库存阈值
func (r Reward) EffectiveLowStockThreshold(fallback int) int {
	if r.LowStockThreshold > 0 {
		return r.LowStockThreshold
	}
	if fallback > 0 {
		return fallback
	}
	return 5
}

package repository

import (
	"github.com/time2claim/internal/models"

	"gorm.io/gorm"
)

// RestockRepository 补货记录数据访问接口
type RestockRepository interface {
	List(filter RestockListFilter) ([]models.RestockEntry, int64, error)
	Create(entry *models.RestockEntry) error
	WithTx(tx *gorm.DB) RestockRepository
}

// GormRestockRepository GORM 实现
type GormRestockRepository struct {
	db *gorm.DB
}

// NewRestockRepository 创建补货记录仓库
func NewRestockRepository(db *gorm.DB) *GormRestockRepository {
	return &GormRestockRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRestockRepository) WithTx(tx *gorm.DB) RestockRepository {
	if tx == nil {
		return r
	}
	return &GormRestockRepository{db: tx}
}

// List 补货记录列表（按时间倒序）
func (r *GormRestockRepository) List(filter RestockListFilter) ([]models.RestockEntry, int64, error) {
	var entries []models.RestockEntry

	query := r.db.Model(&models.RestockEntry{})
	if filter.RewardID != 0 {
		query = query.Where("reward_id = ?", filter.RewardID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Create 追加补货记录
func (r *GormRestockRepository) Create(entry *models.RestockEntry) error {
	return r.db.Create(entry).Error
}

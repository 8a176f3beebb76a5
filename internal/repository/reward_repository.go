package repository

import (
	"errors"
	"strings"

	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/models"

	"gorm.io/gorm"
)

// RewardRepository 奖品数据访问接口
type RewardRepository interface {
	List(filter RewardListFilter) ([]models.Reward, int64, error)
	ListActive() ([]models.Reward, error)
	GetByID(id uint) (*models.Reward, error)
	Create(reward *models.Reward) error
	Update(reward *models.Reward) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	DecrementQuantity(rewardID uint) (int64, error)
	IncrementQuantity(rewardID uint, delta int) (int64, error)
	SetQuantity(rewardID uint, quantity int) (int64, error)
	SetActive(rewardID uint, active bool) (int64, error)
	PointsRange() (min int64, max int64, ok bool, err error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) RewardRepository
}

// GormRewardRepository GORM 实现
type GormRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository 创建奖品仓库
func NewRewardRepository(db *gorm.DB) *GormRewardRepository {
	return &GormRewardRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRewardRepository) WithTx(tx *gorm.DB) RewardRepository {
	if tx == nil {
		return r
	}
	return &GormRewardRepository{db: tx}
}

// Transaction 执行事务
func (r *GormRewardRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 奖品列表
func (r *GormRewardRepository) List(filter RewardListFilter) ([]models.Reward, int64, error) {
	var rewards []models.Reward

	query := r.db.Model(&models.Reward{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", like, like)
	}
	if filter.MinPoints != nil {
		query = query.Where("points >= ?", *filter.MinPoints)
	}
	if filter.MaxPoints != nil {
		query = query.Where("points <= ?", *filter.MaxPoints)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	switch filter.SortPoints {
	case constants.SortPointsHighToLow:
		query = query.Order("points DESC, id ASC")
	case constants.SortPointsLowToHigh:
		query = query.Order("points ASC, id ASC")
	default:
		query = query.Order("created_at DESC, id DESC")
	}

	if err := query.Find(&rewards).Error; err != nil {
		return nil, 0, err
	}

	return rewards, total, nil
}

// ListActive 全部上架奖品
func (r *GormRewardRepository) ListActive() ([]models.Reward, error) {
	var rewards []models.Reward
	if err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// GetByID 根据 ID 获取奖品
func (r *GormRewardRepository) GetByID(id uint) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// Create 创建奖品
func (r *GormRewardRepository) Create(reward *models.Reward) error {
	return r.db.Create(reward).Error
}

// Update 更新奖品
func (r *GormRewardRepository) Update(reward *models.Reward) error {
	return r.db.Save(reward).Error
}

// UpdateFields 局部更新奖品字段
func (r *GormRewardRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	if id == 0 || len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Reward{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除奖品
func (r *GormRewardRepository) Delete(id uint) error {
	return r.db.Delete(&models.Reward{}, id).Error
}

// DecrementQuantity 条件扣减一件库存
// 仅在剩余数量大于 0 时生效，返回受影响行数供调用方判定是否售罄
func (r *GormRewardRepository) DecrementQuantity(rewardID uint) (int64, error) {
	if rewardID == 0 {
		return 0, errors.New("invalid reward id")
	}
	result := r.db.Model(&models.Reward{}).
		Where("id = ? AND quantity > 0", rewardID).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", 1),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementQuantity 原子增加库存
func (r *GormRewardRepository) IncrementQuantity(rewardID uint, delta int) (int64, error) {
	if rewardID == 0 || delta <= 0 {
		return 0, errors.New("invalid restock params")
	}
	result := r.db.Model(&models.Reward{}).
		Where("id = ?", rewardID).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", delta),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SetQuantity 覆盖库存数量
func (r *GormRewardRepository) SetQuantity(rewardID uint, quantity int) (int64, error) {
	if rewardID == 0 || quantity < 0 {
		return 0, errors.New("invalid quantity params")
	}
	result := r.db.Model(&models.Reward{}).
		Where("id = ?", rewardID).
		Update("quantity", quantity)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SetActive 更新上架状态
func (r *GormRewardRepository) SetActive(rewardID uint, active bool) (int64, error) {
	if rewardID == 0 {
		return 0, errors.New("invalid reward id")
	}
	result := r.db.Model(&models.Reward{}).
		Where("id = ?", rewardID).
		Update("is_active", active)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// PointsRange 上架奖品的积分区间
func (r *GormRewardRepository) PointsRange() (int64, int64, bool, error) {
	type rangeRow struct {
		MinPoints *int64
		MaxPoints *int64
	}
	var row rangeRow
	err := r.db.Model(&models.Reward{}).
		Select("MIN(points) AS min_points, MAX(points) AS max_points").
		Where("is_active = ?", true).
		Scan(&row).Error
	if err != nil {
		return 0, 0, false, err
	}
	if row.MinPoints == nil || row.MaxPoints == nil {
		return 0, 0, false, nil
	}
	return *row.MinPoints, *row.MaxPoints, true, nil
}

package repository

import (
	"errors"
	"strings"

	"github.com/time2claim/internal/models"

	"gorm.io/gorm"
)

// ClaimRepository 领取单数据访问接口
type ClaimRepository interface {
	List(filter ClaimListFilter) ([]models.Claim, int64, error)
	GetByID(id uint) (*models.Claim, error)
	GetByClaimID(claimID string) (*models.Claim, error)
	Create(claim *models.Claim) error
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	CountOpenByReward(rewardID uint) (int64, error)
	CountByClaimID(claimID string) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ClaimRepository
}

// GormClaimRepository GORM 实现
type GormClaimRepository struct {
	db *gorm.DB
}

// NewClaimRepository 创建领取单仓库
func NewClaimRepository(db *gorm.DB) *GormClaimRepository {
	return &GormClaimRepository{db: db}
}

// WithTx 绑定事务
func (r *GormClaimRepository) WithTx(tx *gorm.DB) ClaimRepository {
	if tx == nil {
		return r
	}
	return &GormClaimRepository{db: tx}
}

// Transaction 执行事务
func (r *GormClaimRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 领取单列表
func (r *GormClaimRepository) List(filter ClaimListFilter) ([]models.Claim, int64, error) {
	var claims []models.Claim

	query := r.db.Model(&models.Claim{})
	if filter.WithReward {
		query = query.Preload("Reward")
	}
	if filter.RewardID != 0 {
		query = query.Where("reward_id = ?", filter.RewardID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if username := strings.TrimSpace(filter.Username); username != "" {
		query = query.Where("username = ?", username)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC, id DESC").Find(&claims).Error; err != nil {
		return nil, 0, err
	}

	return claims, total, nil
}

// GetByID 根据主键获取领取单
func (r *GormClaimRepository) GetByID(id uint) (*models.Claim, error) {
	var claim models.Claim
	if err := r.db.Preload("Reward").First(&claim, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

// GetByClaimID 根据对外编号获取领取单
func (r *GormClaimRepository) GetByClaimID(claimID string) (*models.Claim, error) {
	normalized := strings.ToUpper(strings.TrimSpace(claimID))
	if normalized == "" {
		return nil, nil
	}
	var claim models.Claim
	if err := r.db.Preload("Reward").Where("claim_id = ?", normalized).First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

// Create 创建领取单
func (r *GormClaimRepository) Create(claim *models.Claim) error {
	return r.db.Create(claim).Error
}

// UpdateStatus 更新领取单状态与附加字段
func (r *GormClaimRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if id == 0 || strings.TrimSpace(status) == "" {
		return errors.New("invalid claim status update params")
	}
	fields := map[string]interface{}{
		"status": status,
	}
	for key, value := range updates {
		fields[key] = value
	}
	return r.db.Model(&models.Claim{}).Where("id = ?", id).Updates(fields).Error
}

// CountOpenByReward 统计奖品未终结的领取单数量
func (r *GormClaimRepository) CountOpenByReward(rewardID uint) (int64, error) {
	if rewardID == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Claim{}).
		Where("reward_id = ? AND status NOT IN ?", rewardID, []string{"rejected", "delivered"}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountByClaimID 统计对外编号数量（用于生成去重）
func (r *GormClaimRepository) CountByClaimID(claimID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Claim{}).
		Where("claim_id = ?", strings.ToUpper(strings.TrimSpace(claimID))).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

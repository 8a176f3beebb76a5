package service

import (
	"context"
	"strings"

	"github.com/time2claim/internal/cache"
	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/logger"
	"github.com/time2claim/internal/models"
	"github.com/time2claim/internal/repository"

	"github.com/shopspring/decimal"
)

// RewardService 奖品目录服务
type RewardService struct {
	rewardRepo repository.RewardRepository
	claimRepo  repository.ClaimRepository
}

// NewRewardService 创建奖品服务
func NewRewardService(rewardRepo repository.RewardRepository, claimRepo repository.ClaimRepository) *RewardService {
	return &RewardService{rewardRepo: rewardRepo, claimRepo: claimRepo}
}

// CreateRewardInput 创建奖品输入
type CreateRewardInput struct {
	Name              string
	Category          string
	Points            decimal.Decimal
	Quantity          int
	LowStockThreshold int
	VariantKind       string
	VariantOptions    []string
	Galleries         map[string][]string
	Image             string
	Description       string
	IsActive          *bool
}

// UpdateRewardInput 更新奖品输入，nil 字段保持原值
type UpdateRewardInput struct {
	Name              *string
	Category          *string
	Points            *decimal.Decimal
	Quantity          *int
	LowStockThreshold *int
	VariantKind       *string
	VariantOptions    []string
	Galleries         map[string][]string
	Image             *string
	Description       *string
	IsActive          *bool
}

// PointsRange 目录积分区间，按查询即时计算
type PointsRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// ListPublic 获取商城奖品列表，附带即时积分区间
func (s *RewardService) ListPublic(filter repository.RewardListFilter) ([]models.Reward, int64, *PointsRange, error) {
	filter.OnlyActive = true
	rewards, total, err := s.rewardRepo.List(filter)
	if err != nil {
		return nil, 0, nil, ErrRewardFetchFailed
	}
	min, max, ok, err := s.rewardRepo.PointsRange()
	if err != nil {
		return nil, 0, nil, ErrRewardFetchFailed
	}
	var pointsRange *PointsRange
	if ok {
		pointsRange = &PointsRange{Min: min, Max: max}
	}
	return rewards, total, pointsRange, nil
}

// ListAdmin 获取后台奖品列表
func (s *RewardService) ListAdmin(filter repository.RewardListFilter) ([]models.Reward, int64, error) {
	filter.OnlyActive = false
	rewards, total, err := s.rewardRepo.List(filter)
	if err != nil {
		return nil, 0, ErrRewardFetchFailed
	}
	return rewards, total, nil
}

// GetByID 获取奖品详情
func (s *RewardService) GetByID(id uint) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetByID(id)
	if err != nil {
		return nil, ErrRewardFetchFailed
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}
	return reward, nil
}

// GetPublicByID 获取上架奖品详情
func (s *RewardService) GetPublicByID(id uint) (*models.Reward, error) {
	reward, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !reward.IsActive {
		return nil, ErrRewardNotFound
	}
	return reward, nil
}

// Create 创建奖品
func (s *RewardService) Create(input CreateRewardInput) (*models.Reward, error) {
	name := strings.TrimSpace(input.Name)
	category := normalizeCategory(input.Category)
	if name == "" || category == "" {
		return nil, ErrRewardInvalid
	}
	if input.Points.LessThanOrEqual(decimal.Zero) || input.Quantity < 0 || input.LowStockThreshold < 0 {
		return nil, ErrRewardInvalid
	}
	options, err := normalizeVariantOptions(input.VariantOptions)
	if err != nil {
		return nil, err
	}
	galleries, err := normalizeGalleries(input.Galleries, options)
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	reward := models.Reward{
		Name:              name,
		Category:          category,
		Points:            models.NewPointsFromDecimal(input.Points),
		Quantity:          input.Quantity,
		LowStockThreshold: input.LowStockThreshold,
		VariantKind:       strings.TrimSpace(input.VariantKind),
		VariantOptions:    models.StringArray(options),
		Galleries:         models.GalleryMap(galleries),
		Image:             strings.TrimSpace(input.Image),
		Description:       input.Description,
		IsActive:          isActive,
	}
	if err := s.rewardRepo.Create(&reward); err != nil {
		return nil, ErrRewardCreateFailed
	}
	s.invalidateCatalog()
	return &reward, nil
}

// Update 更新奖品，仅覆盖提交的字段
func (s *RewardService) Update(id uint, input UpdateRewardInput) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetByID(id)
	if err != nil {
		return nil, ErrRewardFetchFailed
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrRewardInvalid
		}
		reward.Name = name
	}
	if input.Category != nil {
		category := normalizeCategory(*input.Category)
		if category == "" {
			return nil, ErrRewardInvalid
		}
		reward.Category = category
	}
	if input.Points != nil {
		if input.Points.LessThanOrEqual(decimal.Zero) {
			return nil, ErrRewardInvalid
		}
		reward.Points = models.NewPointsFromDecimal(*input.Points)
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, ErrRewardInvalid
		}
		reward.Quantity = *input.Quantity
	}
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 0 {
			return nil, ErrRewardInvalid
		}
		reward.LowStockThreshold = *input.LowStockThreshold
	}
	if input.VariantKind != nil {
		reward.VariantKind = strings.TrimSpace(*input.VariantKind)
	}
	if input.VariantOptions != nil {
		options, err := normalizeVariantOptions(input.VariantOptions)
		if err != nil {
			return nil, err
		}
		reward.VariantOptions = models.StringArray(options)
	}
	if input.Galleries != nil {
		galleries, err := normalizeGalleries(input.Galleries, reward.VariantOptions)
		if err != nil {
			return nil, err
		}
		reward.Galleries = models.GalleryMap(galleries)
	}
	if input.Image != nil {
		reward.Image = strings.TrimSpace(*input.Image)
	}
	if input.Description != nil {
		reward.Description = *input.Description
	}
	if input.IsActive != nil {
		reward.IsActive = *input.IsActive
	}

	if err := s.rewardRepo.Update(reward); err != nil {
		return nil, ErrRewardUpdateFailed
	}
	s.invalidateCatalog()
	return reward, nil
}

// Delete 删除奖品。存在未完结领取单时仅记录告警，不阻断删除
func (s *RewardService) Delete(id uint) error {
	reward, err := s.rewardRepo.GetByID(id)
	if err != nil {
		return ErrRewardFetchFailed
	}
	if reward == nil {
		return ErrRewardNotFound
	}
	openCount, err := s.claimRepo.CountOpenByReward(id)
	if err == nil && openCount > 0 {
		logger.Warnw("reward_delete_with_open_claims",
			"reward_id", id,
			"reward_name", reward.Name,
			"open_claims", openCount,
		)
	}
	if err := s.rewardRepo.Delete(id); err != nil {
		return ErrRewardDeleteFailed
	}
	s.invalidateCatalog()
	return nil
}

func (s *RewardService) invalidateCatalog() {
	if err := cache.InvalidateCatalog(context.Background()); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}

// ClassifyTier 按积分与名称计算展示档位
func ClassifyTier(points int64, name string) string {
	lower := strings.ToLower(name)
	if points >= 200000 || containsAny(lower, "bmw", "mercedes", "porsche", "ferrari") {
		return constants.TierBlackDiamond
	}
	if points >= 75000 || containsAny(lower, "rolex", "watch") {
		return constants.TierDiamond
	}
	if points >= 25000 || containsAny(lower, "iphone", "macbook") {
		return constants.TierGold
	}
	if points >= 500 {
		return constants.TierSilver
	}
	return constants.TierBronze
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// normalizeCategory 分类是开放的字符串标签，管理员可随时新增；
// 仅对内置分类做大小写归一
func normalizeCategory(raw string) string {
	candidate := strings.TrimSpace(raw)
	for _, known := range constants.Categories {
		if strings.EqualFold(candidate, known) {
			return known
		}
	}
	return candidate
}

func normalizeVariantOptions(raw []string) ([]string, error) {
	options := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, option := range raw {
		trimmed := strings.TrimSpace(option)
		if trimmed == "" {
			return nil, ErrVariantOptionInvalid
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			return nil, ErrVariantOptionInvalid
		}
		seen[key] = true
		options = append(options, trimmed)
	}
	return options, nil
}

func normalizeGalleries(raw map[string][]string, options []string) (map[string][]string, error) {
	if len(raw) == 0 {
		return map[string][]string{}, nil
	}
	galleries := make(map[string][]string, len(raw))
	for option, images := range raw {
		trimmedOption := strings.TrimSpace(option)
		if trimmedOption == "" || !containsOption(options, trimmedOption) {
			return nil, ErrVariantOptionInvalid
		}
		if len(images) > constants.MaxGalleryImages {
			return nil, ErrGalleryTooLarge
		}
		cleaned := make([]string, 0, len(images))
		for _, image := range images {
			trimmed := strings.TrimSpace(image)
			if trimmed == "" {
				continue
			}
			cleaned = append(cleaned, trimmed)
		}
		galleries[trimmedOption] = cleaned
	}
	return galleries, nil
}

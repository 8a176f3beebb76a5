package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/time2claim/internal/http/response"
	"github.com/time2claim/internal/repository"
	"github.com/time2claim/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetAdminRewards 获取奖品列表 (Admin)
func (h *Handler) GetAdminRewards(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.RewardListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Categories = []string{category}
	}

	rewards, total, err := h.RewardService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.reward_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, rewards, pagination)
}

// GetAdminReward 获取奖品详情 (Admin)
func (h *Handler) GetAdminReward(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	reward, err := h.RewardService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			respondError(c, response.CodeNotFound, "error.reward_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.reward_fetch_failed", err)
		return
	}

	response.Success(c, reward)
}

// CreateRewardRequest 创建奖品请求
type CreateRewardRequest struct {
	Name              string              `json:"name" binding:"required"`
	Category          string              `json:"category" binding:"required"`
	Points            int64               `json:"points"`
	Quantity          int                 `json:"quantity"`
	LowStockThreshold int                 `json:"low_stock_threshold"`
	VariantKind       string              `json:"variant_kind"`
	VariantOptions    []string            `json:"variant_options"`
	Galleries         map[string][]string `json:"galleries"`
	Image             string              `json:"image"`
	Description       string              `json:"description"`
	IsActive          *bool               `json:"is_active"`
}

// CreateReward 创建奖品
func (h *Handler) CreateReward(c *gin.Context) {
	var req CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	reward, err := h.RewardService.Create(service.CreateRewardInput{
		Name:              req.Name,
		Category:          req.Category,
		Points:            decimal.NewFromInt(req.Points),
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		VariantKind:       req.VariantKind,
		VariantOptions:    req.VariantOptions,
		Galleries:         req.Galleries,
		Image:             req.Image,
		Description:       req.Description,
		IsActive:          req.IsActive,
	})
	if err != nil {
		respondRewardMutationError(c, err, "error.reward_create_failed")
		return
	}

	response.Success(c, reward)
}

// UpdateRewardRequest 更新奖品请求，未提交字段保持原值
type UpdateRewardRequest struct {
	Name              *string             `json:"name"`
	Category          *string             `json:"category"`
	Points            *int64              `json:"points"`
	Quantity          *int                `json:"quantity"`
	LowStockThreshold *int                `json:"low_stock_threshold"`
	VariantKind       *string             `json:"variant_kind"`
	VariantOptions    []string            `json:"variant_options"`
	Galleries         map[string][]string `json:"galleries"`
	Image             *string             `json:"image"`
	Description       *string             `json:"description"`
	IsActive          *bool               `json:"is_active"`
}

// UpdateReward 更新奖品
func (h *Handler) UpdateReward(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input := service.UpdateRewardInput{
		Name:              req.Name,
		Category:          req.Category,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		VariantKind:       req.VariantKind,
		VariantOptions:    req.VariantOptions,
		Galleries:         req.Galleries,
		Image:             req.Image,
		Description:       req.Description,
		IsActive:          req.IsActive,
	}
	if req.Points != nil {
		points := decimal.NewFromInt(*req.Points)
		input.Points = &points
	}

	reward, err := h.RewardService.Update(uint(id), input)
	if err != nil {
		respondRewardMutationError(c, err, "error.reward_update_failed")
		return
	}

	response.Success(c, reward)
}

// DeleteReward 删除奖品
func (h *Handler) DeleteReward(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.RewardService.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrRewardNotFound):
			respondError(c, response.CodeNotFound, "error.reward_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.reward_delete_failed", err)
		}
		return
	}

	response.Success(c, nil)
}

func respondRewardMutationError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrRewardNotFound):
		respondError(c, response.CodeNotFound, "error.reward_not_found", nil)
	case errors.Is(err, service.ErrRewardInvalid):
		respondError(c, response.CodeBadRequest, "error.reward_invalid", nil)
	case errors.Is(err, service.ErrVariantOptionInvalid):
		respondError(c, response.CodeBadRequest, "error.variant_option_invalid", nil)
	case errors.Is(err, service.ErrGalleryTooLarge):
		respondError(c, response.CodeBadRequest, "error.gallery_too_large", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

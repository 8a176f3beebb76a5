package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/time2claim/internal/http/response"
	"github.com/time2claim/internal/models"
	"github.com/time2claim/internal/repository"
	"github.com/time2claim/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminClaimItem 管理端领取单列表项，附带奖品摘要
type AdminClaimItem struct {
	models.Claim
	RewardName   string        `json:"reward_name"`
	RewardPoints models.Points `json:"reward_points"`
}

// GetAdminClaims 获取领取单列表 (Admin)
func (h *Handler) GetAdminClaims(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ClaimListFilter{
		Page:       page,
		PageSize:   pageSize,
		Status:     strings.TrimSpace(c.Query("status")),
		Username:   strings.TrimSpace(c.Query("username")),
		WithReward: true,
	}
	if raw := strings.TrimSpace(c.Query("reward_id")); raw != "" {
		if rewardID, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.RewardID = uint(rewardID)
		}
	}

	claims, total, err := h.ClaimService.ListClaims(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.claim_fetch_failed", err)
		return
	}

	items := make([]AdminClaimItem, 0, len(claims))
	for _, claim := range claims {
		items = append(items, AdminClaimItem{
			Claim:        claim,
			RewardName:   claim.Reward.Name,
			RewardPoints: claim.Reward.Points,
		})
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, items, pagination)
}

// GetAdminClaim 获取领取单详情 (Admin)
func (h *Handler) GetAdminClaim(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	claim, err := h.ClaimService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrClaimNotFound) {
			respondError(c, response.CodeNotFound, "error.claim_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.claim_fetch_failed", err)
		return
	}

	response.Success(c, claim)
}

// AdminUpdateClaimStatusRequest 管理端变更领取单状态请求
type AdminUpdateClaimStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// AdminUpdateClaimStatus 管理端变更领取单状态
// 审批在单事务内条件扣减库存，库存不足时返回带奖品名的错误消息
func (h *Handler) AdminUpdateClaimStatus(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || claimID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req AdminUpdateClaimStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	claim, err := h.ClaimService.TransitionStatus(uint(claimID), req.Status, req.Reason)
	if err != nil {
		var outOfStock *service.OutOfStockError
		switch {
		case errors.As(err, &outOfStock):
			respondErrorWithMsg(c, response.CodeBadRequest, outOfStock.Error(), nil)
		case errors.Is(err, service.ErrClaimNotFound):
			respondError(c, response.CodeNotFound, "error.claim_not_found", nil)
		case errors.Is(err, service.ErrClaimTransitionInvalid):
			respondError(c, response.CodeBadRequest, "error.claim_transition_invalid", nil)
		case errors.Is(err, service.ErrClaimReasonRequired):
			respondError(c, response.CodeBadRequest, "error.claim_reason_required", nil)
		default:
			respondError(c, response.CodeInternal, "error.claim_update_failed", err)
		}
		return
	}

	response.Success(c, claim)
}

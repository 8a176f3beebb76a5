package admin

import (
	"errors"
	"strconv"

	"github.com/time2claim/internal/http/response"
	"github.com/time2claim/internal/repository"
	"github.com/time2claim/internal/service"

	"github.com/gin-gonic/gin"
)

// RestockRequest 补货请求
type RestockRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Notes    string `json:"notes"`
}

// RestockReward 奖品补货
func (h *Handler) RestockReward(c *gin.Context) {
	rewardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || rewardID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.InventoryService.Restock(uint(rewardID), req.Quantity, getAdminUsername(c), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRewardNotFound):
			respondError(c, response.CodeNotFound, "error.reward_not_found", nil)
		case errors.Is(err, service.ErrRestockInvalid):
			respondError(c, response.CodeBadRequest, "error.restock_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.restock_invalid", err)
		}
		return
	}

	response.Success(c, result)
}

// BulkUpdateStockRequest 批量库存覆写请求
type BulkUpdateStockRequest struct {
	Entries []service.BulkUpdateEntry `json:"entries" binding:"required"`
}

// BulkUpdateStock 批量覆写库存，逐条独立执行并返回成功/失败计数
func (h *Handler) BulkUpdateStock(c *gin.Context) {
	var req BulkUpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.InventoryService.BulkUpdate(req.Entries)
	if err != nil {
		if errors.Is(err, service.ErrBulkUpdateInvalid) {
			respondError(c, response.CodeBadRequest, "error.bulk_update_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.bulk_update_invalid", err)
		return
	}

	response.Success(c, result)
}

// GetStockAlerts 获取库存告警汇总
func (h *Handler) GetStockAlerts(c *gin.Context) {
	summary, err := h.InventoryService.StockAlerts()
	if err != nil {
		respondError(c, response.CodeInternal, "error.inventory_fetch_failed", err)
		return
	}

	response.Success(c, summary)
}

// ToggleRewardActiveRequest 上下架请求
type ToggleRewardActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ToggleRewardActive 切换奖品上下架
func (h *Handler) ToggleRewardActive(c *gin.Context) {
	rewardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || rewardID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req ToggleRewardActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.InventoryService.ToggleActive(uint(rewardID), *req.IsActive); err != nil {
		switch {
		case errors.Is(err, service.ErrRewardNotFound):
			respondError(c, response.CodeNotFound, "error.reward_not_found", nil)
		case errors.Is(err, service.ErrRewardInvalid):
			respondError(c, response.CodeBadRequest, "error.reward_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.reward_update_failed", err)
		}
		return
	}

	response.Success(c, nil)
}

// GetRestockHistory 获取补货流水
func (h *Handler) GetRestockHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.RestockListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("reward_id"); raw != "" {
		if rewardID, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.RewardID = uint(rewardID)
		}
	}

	entries, total, err := h.InventoryService.RestockHistory(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.inventory_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, entries, pagination)
}

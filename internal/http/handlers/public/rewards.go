package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/time2claim/internal/cache"
	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/http/response"
	"github.com/time2claim/internal/models"
	"github.com/time2claim/internal/repository"
	"github.com/time2claim/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicRewardView 商城奖品响应结构
type PublicRewardView struct {
	models.Reward
	Tier        string `json:"tier"`
	StockStatus string `json:"stock_status"`
	IsSoldOut   bool   `json:"is_sold_out"`
}

type catalogSnapshot struct {
	Rewards     []PublicRewardView   `json:"rewards"`
	PointsRange *service.PointsRange `json:"points_range"`
	Pagination  response.Pagination  `json:"pagination"`
}

// GetRewards 获取商城奖品列表
// 分类/积分区间/关键字/档位筛选与积分排序均由服务端执行
func (h *Handler) GetRewards(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categories := splitMultiValue(c.QueryArray("category"))
	tiers := splitMultiValue(c.QueryArray("tier"))
	search := strings.TrimSpace(c.Query("search"))
	sortPoints := strings.TrimSpace(c.Query("sort"))

	filter := repository.RewardListFilter{
		Page:       page,
		PageSize:   pageSize,
		Categories: categories,
		Search:     search,
		SortPoints: sortPoints,
	}
	if raw := strings.TrimSpace(c.Query("min_points")); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v >= 0 {
			filter.MinPoints = &v
		}
	}
	if raw := strings.TrimSpace(c.Query("max_points")); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v >= 0 {
			filter.MaxPoints = &v
		}
	}

	// 默认首屏走 Redis 快照，目录或库存变更时失效
	cacheable := h.isDefaultCatalogQuery(filter, tiers)
	if cacheable {
		var snapshot catalogSnapshot
		if hit, err := cache.GetCatalogSnapshot(c.Request.Context(), &snapshot); err == nil && hit {
			response.SuccessWithPage(c, gin.H{
				"rewards":      snapshot.Rewards,
				"points_range": snapshot.PointsRange,
			}, snapshot.Pagination)
			return
		}
	}

	var views []PublicRewardView
	var total int64
	var pointsRange *service.PointsRange
	if len(tiers) > 0 {
		decorated, pr, err := h.listRewardsByTier(filter, tiers)
		if err != nil {
			respondError(c, response.CodeInternal, "error.reward_fetch_failed", err)
			return
		}
		total = int64(len(decorated))
		views = paginateViews(decorated, page, pageSize)
		pointsRange = pr
	} else {
		rewards, listTotal, pr, err := h.RewardService.ListPublic(filter)
		if err != nil {
			respondError(c, response.CodeInternal, "error.reward_fetch_failed", err)
			return
		}
		total = listTotal
		pointsRange = pr
		views = make([]PublicRewardView, 0, len(rewards))
		for i := range rewards {
			views = append(views, h.decorateReward(&rewards[i]))
		}
	}

	pagination := response.BuildPagination(page, pageSize, total)
	if cacheable {
		ttl := time.Duration(h.Config.Inventory.CatalogCacheTTL) * time.Second
		_ = cache.SetCatalogSnapshot(c.Request.Context(), catalogSnapshot{
			Rewards:     views,
			PointsRange: pointsRange,
			Pagination:  pagination,
		}, ttl)
	}
	response.SuccessWithPage(c, gin.H{
		"rewards":      views,
		"points_range": pointsRange,
	}, pagination)
}

// GetRewardByID 获取奖品详情
func (h *Handler) GetRewardByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.reward_invalid", nil)
		return
	}

	reward, err := h.RewardService.GetPublicByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRewardNotFound) {
			respondError(c, response.CodeNotFound, "error.reward_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.reward_fetch_failed", err)
		return
	}

	response.Success(c, h.decorateReward(reward))
}

// listRewardsByTier 档位筛选需要先取全量再分档，分页在内存完成
func (h *Handler) listRewardsByTier(filter repository.RewardListFilter, tiers []string) ([]PublicRewardView, *service.PointsRange, error) {
	full := filter
	full.Page = 1
	full.PageSize = 500
	rewards, _, pointsRange, err := h.RewardService.ListPublic(full)
	if err != nil {
		return nil, nil, err
	}
	wanted := make(map[string]bool, len(tiers))
	for _, tier := range tiers {
		wanted[strings.ToLower(tier)] = true
	}
	views := make([]PublicRewardView, 0, len(rewards))
	for i := range rewards {
		view := h.decorateReward(&rewards[i])
		if wanted[view.Tier] {
			views = append(views, view)
		}
	}
	return views, pointsRange, nil
}

func (h *Handler) decorateReward(reward *models.Reward) PublicRewardView {
	view := PublicRewardView{Reward: *reward}
	view.Tier = service.ClassifyTier(reward.Points.Decimal.IntPart(), reward.Name)
	threshold := reward.EffectiveLowStockThreshold(h.Config.Inventory.LowStockThreshold)
	switch {
	case reward.Quantity <= 0:
		view.StockStatus = constants.StockStatusOutOfStock
		view.IsSoldOut = true
	case reward.Quantity <= threshold:
		view.StockStatus = constants.StockStatusLowStock
	default:
		view.StockStatus = constants.StockStatusInStock
	}
	return view
}

func (h *Handler) isDefaultCatalogQuery(filter repository.RewardListFilter, tiers []string) bool {
	return filter.Page == 1 &&
		filter.PageSize == 20 &&
		len(filter.Categories) == 0 &&
		len(tiers) == 0 &&
		filter.Search == "" &&
		filter.MinPoints == nil &&
		filter.MaxPoints == nil &&
		filter.SortPoints == ""
}

func paginateViews(views []PublicRewardView, page, pageSize int) []PublicRewardView {
	start := (page - 1) * pageSize
	if start >= len(views) {
		return []PublicRewardView{}
	}
	end := start + pageSize
	if end > len(views) {
		end = len(views)
	}
	return views[start:end]
}

func splitMultiValue(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/time2claim/internal/cache"
	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/logger"
	"github.com/time2claim/internal/models"
	"github.com/time2claim/internal/queue"
	"github.com/time2claim/internal/repository"

	"gorm.io/gorm"
)

// InventoryService 库存服务
type InventoryService struct {
	rewardRepo        repository.RewardRepository
	restockRepo       repository.RestockRepository
	queueClient       *queue.Client
	lowStockThreshold int
}

// NewInventoryService 创建库存服务
func NewInventoryService(rewardRepo repository.RewardRepository, restockRepo repository.RestockRepository, queueClient *queue.Client, lowStockThreshold int) *InventoryService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = constants.DefaultLowStockThreshold
	}
	return &InventoryService{
		rewardRepo:        rewardRepo,
		restockRepo:       restockRepo,
		queueClient:       queueClient,
		lowStockThreshold: lowStockThreshold,
	}
}

// RestockResult 补货结果
type RestockResult struct {
	RewardID         uint   `json:"reward_id"`
	RewardName       string `json:"reward_name"`
	PreviousQuantity int    `json:"previous_quantity"`
	AddedQuantity    int    `json:"added_quantity"`
	NewQuantity      int    `json:"new_quantity"`
}

// Restock 补货：正增量原子累加，同事务写入补货流水
func (s *InventoryService) Restock(rewardID uint, quantity int, restockedBy, notes string) (*RestockResult, error) {
	if rewardID == 0 || quantity <= 0 {
		return nil, ErrRestockInvalid
	}
	reward, err := s.rewardRepo.GetByID(rewardID)
	if err != nil {
		return nil, ErrRewardFetchFailed
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}

	// 快照在事务内读取，保证流水的前后数量与库内一致
	var previous int
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		rewardRepo := s.rewardRepo.WithTx(tx)
		restockRepo := s.restockRepo.WithTx(tx)
		current, err := rewardRepo.GetByID(rewardID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrRewardNotFound
		}
		previous = current.Quantity
		affected, err := rewardRepo.IncrementQuantity(rewardID, quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrRewardNotFound
		}
		return restockRepo.Create(&models.RestockEntry{
			RewardID:         rewardID,
			PreviousQuantity: previous,
			AddedQuantity:    quantity,
			NewQuantity:      previous + quantity,
			RestockedBy:      strings.TrimSpace(restockedBy),
			Notes:            strings.TrimSpace(notes),
		})
	})
	if err != nil {
		if errors.Is(err, ErrRewardNotFound) {
			return nil, ErrRewardNotFound
		}
		logger.Errorw("inventory_restock_failed",
			"reward_id", rewardID,
			"quantity", quantity,
			"error", err,
		)
		return nil, ErrRestockInvalid
	}
	s.invalidateCatalog()
	s.enqueueLowStockScan()
	return &RestockResult{
		RewardID:         rewardID,
		RewardName:       reward.Name,
		PreviousQuantity: previous,
		AddedQuantity:    quantity,
		NewQuantity:      previous + quantity,
	}, nil
}

// BulkUpdateEntry 批量库存覆写条目
type BulkUpdateEntry struct {
	RewardID uint `json:"reward_id"`
	Quantity int  `json:"quantity"`
}

// BulkUpdateResult 批量覆写汇总，仅返回成功/失败数量
type BulkUpdateResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// BulkUpdate 批量绝对值覆写库存，条目之间相互隔离
func (s *InventoryService) BulkUpdate(entries []BulkUpdateEntry) (*BulkUpdateResult, error) {
	if len(entries) == 0 {
		return nil, ErrBulkUpdateInvalid
	}
	result := &BulkUpdateResult{}
	for _, entry := range entries {
		if entry.RewardID == 0 || entry.Quantity < 0 {
			result.Failed++
			continue
		}
		affected, err := s.rewardRepo.SetQuantity(entry.RewardID, entry.Quantity)
		if err != nil || affected == 0 {
			if err != nil {
				logger.Warnw("inventory_bulk_update_entry_failed",
					"reward_id", entry.RewardID,
					"quantity", entry.Quantity,
					"error", err,
				)
			}
			result.Failed++
			continue
		}
		result.Succeeded++
	}
	s.invalidateCatalog()
	return result, nil
}

// StockAlert 单个奖品库存告警条目
type StockAlert struct {
	RewardID  uint   `json:"reward_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

// AlertsSummary 库存告警汇总
type AlertsSummary struct {
	Threshold       int          `json:"threshold"`
	LowStock        []StockAlert `json:"low_stock"`
	OutOfStock      []StockAlert `json:"out_of_stock"`
	LowStockCount   int          `json:"low_stock_count"`
	OutOfStockCount int          `json:"out_of_stock_count"`
}

// StockAlerts 汇总上架奖品的低库存与缺货告警
func (s *InventoryService) StockAlerts() (*AlertsSummary, error) {
	rewards, err := s.rewardRepo.ListActive()
	if err != nil {
		return nil, ErrInventoryFetchFailed
	}
	summary := &AlertsSummary{
		Threshold:  s.lowStockThreshold,
		LowStock:   make([]StockAlert, 0),
		OutOfStock: make([]StockAlert, 0),
	}
	for _, reward := range rewards {
		threshold := reward.EffectiveLowStockThreshold(s.lowStockThreshold)
		alert := StockAlert{
			RewardID:  reward.ID,
			Name:      reward.Name,
			Category:  reward.Category,
			Quantity:  reward.Quantity,
			Threshold: threshold,
		}
		switch {
		case reward.Quantity <= 0:
			summary.OutOfStock = append(summary.OutOfStock, alert)
		case reward.Quantity <= threshold:
			summary.LowStock = append(summary.LowStock, alert)
		}
	}
	summary.LowStockCount = len(summary.LowStock)
	summary.OutOfStockCount = len(summary.OutOfStock)
	return summary, nil
}

// ToggleActive 切换奖品上下架
func (s *InventoryService) ToggleActive(rewardID uint, active bool) error {
	if rewardID == 0 {
		return ErrRewardInvalid
	}
	affected, err := s.rewardRepo.SetActive(rewardID, active)
	if err != nil {
		return ErrRewardUpdateFailed
	}
	if affected == 0 {
		return ErrRewardNotFound
	}
	s.invalidateCatalog()
	return nil
}

// RestockHistory 补货流水，按时间倒序
func (s *InventoryService) RestockHistory(filter repository.RestockListFilter) ([]models.RestockEntry, int64, error) {
	entries, total, err := s.restockRepo.List(filter)
	if err != nil {
		return nil, 0, ErrInventoryFetchFailed
	}
	return entries, total, nil
}

// LowStockThreshold 当前生效的默认阈值
func (s *InventoryService) LowStockThreshold() int {
	return s.lowStockThreshold
}

func (s *InventoryService) invalidateCatalog() {
	if err := cache.InvalidateCatalog(context.Background()); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}

// enqueueLowStockScan 补货成功后触发一次低库存巡检
func (s *InventoryService) enqueueLowStockScan() {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueLowStockAlertScan(queue.LowStockAlertScanPayload{}); err != nil {
		logger.Warnw("inventory_enqueue_low_stock_scan_failed", "error", err)
	}
}

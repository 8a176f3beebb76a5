package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/models"
	"github.com/time2claim/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupInventoryServiceTest(t *testing.T, threshold int) (*InventoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:inventory_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Reward{}, &models.RestockEntry{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewInventoryService(repository.NewRewardRepository(db), repository.NewRestockRepository(db), nil, threshold)
	return svc, db
}

func seedInventoryReward(t *testing.T, db *gorm.DB, name string, quantity, threshold int, active bool) models.Reward {
	t.Helper()
	reward := models.Reward{
		Name:              name,
		Category:          constants.CategoryMerch,
		Points:            models.NewPointsFromInt(300),
		Quantity:          quantity,
		LowStockThreshold: threshold,
		IsActive:          true,
	}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("create reward failed: %v", err)
	}
	if !active {
		reward.IsActive = false
		if err := db.Save(&reward).Error; err != nil {
			t.Fatalf("update inactive reward failed: %v", err)
		}
	}
	return reward
}

func TestRestockWritesAuditEntry(t *testing.T) {
	svc, db := setupInventoryServiceTest(t, 0)
	reward := seedInventoryReward(t, db, "Stainless Tumbler", 3, 0, true)

	result, err := svc.Restock(reward.ID, 7, "ops_admin", "monthly top-up")
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if result.PreviousQuantity != 3 || result.AddedQuantity != 7 || result.NewQuantity != 10 {
		t.Fatalf("unexpected restock result: %+v", result)
	}
	if result.RewardName != reward.Name {
		t.Fatalf("expected reward name %q, got %q", reward.Name, result.RewardName)
	}

	var stored models.Reward
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if stored.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", stored.Quantity)
	}

	var entry models.RestockEntry
	if err := db.Where("reward_id = ?", reward.ID).First(&entry).Error; err != nil {
		t.Fatalf("load restock entry failed: %v", err)
	}
	if entry.PreviousQuantity != 3 || entry.AddedQuantity != 7 || entry.NewQuantity != 10 {
		t.Fatalf("unexpected restock entry: %+v", entry)
	}
	if entry.RestockedBy != "ops_admin" || entry.Notes != "monthly top-up" {
		t.Fatalf("expected operator and notes recorded: %+v", entry)
	}
}

// staleCheckRewardRepo 在首次读取后扣减库存，模拟补货前一刻提交的并发审批
type staleCheckRewardRepo struct {
	repository.RewardRepository
	db    *gorm.DB
	reads int
}

func (r *staleCheckRewardRepo) GetByID(id uint) (*models.Reward, error) {
	reward, err := r.RewardRepository.GetByID(id)
	r.reads++
	if r.reads == 1 && err == nil && reward != nil {
		if err := r.db.Model(&models.Reward{}).Where("id = ?", id).
			Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
			return nil, err
		}
	}
	return reward, err
}

func TestRestockAuditUsesTransactionalSnapshot(t *testing.T) {
	svc, db := setupInventoryServiceTest(t, 0)
	reward := seedInventoryReward(t, db, "Mechanical Keyboard", 4, 0, true)

	svc.rewardRepo = &staleCheckRewardRepo{RewardRepository: svc.rewardRepo, db: db}

	result, err := svc.Restock(reward.ID, 6, "ops_admin", "")
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if result.PreviousQuantity != 3 || result.NewQuantity != 9 {
		t.Fatalf("expected audited quantities 3 -> 9, got %d -> %d", result.PreviousQuantity, result.NewQuantity)
	}

	var stored models.Reward
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if stored.Quantity != 9 {
		t.Fatalf("expected stored quantity 9, got %d", stored.Quantity)
	}

	var entry models.RestockEntry
	if err := db.Where("reward_id = ?", reward.ID).First(&entry).Error; err != nil {
		t.Fatalf("load restock entry failed: %v", err)
	}
	if entry.PreviousQuantity != 3 || entry.NewQuantity != 9 {
		t.Fatalf("expected entry quantities 3 -> 9, got %d -> %d", entry.PreviousQuantity, entry.NewQuantity)
	}
}

func TestRestockValidation(t *testing.T) {
	svc, db := setupInventoryServiceTest(t, 0)
	reward := seedInventoryReward(t, db, "Stainless Tumbler", 3, 0, true)

	if _, err := svc.Restock(reward.ID, 0, "ops_admin", ""); !errors.Is(err, ErrRestockInvalid) {
		t.Fatalf("expected zero quantity rejected, got %v", err)
	}
	if _, err := svc.Restock(reward.ID, -5, "ops_admin", ""); !errors.Is(err, ErrRestockInvalid) {
		t.Fatalf("expected negative quantity rejected, got %v", err)
	}
	if _, err := svc.Restock(99999, 5, "ops_admin", ""); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("expected missing reward rejected, got %v", err)
	}
}

func TestBulkUpdateEntryIsolation(t *testing.T) {
	svc, db := setupInventoryServiceTest(t, 0)
	first := seedInventoryReward(t, db, "Hoodie", 5, 0, true)
	second := seedInventoryReward(t, db, "Tumbler", 8, 0, true)

	// 混合提交：两条合法，一条不存在、一条非法 ID、一条负库存
	result, err := svc.BulkUpdate([]BulkUpdateEntry{
		{RewardID: first.ID, Quantity: 50},
		{RewardID: 99999, Quantity: 10},
		{RewardID: second.ID, Quantity: 0},
		{RewardID: 0, Quantity: 3},
		{RewardID: first.ID, Quantity: -1},
	})
	if err != nil {
		t.Fatalf("bulk update failed: %v", err)
	}
	if result.Succeeded != 2 || result.Failed != 3 {
		t.Fatalf("expected 2 succeeded / 3 failed, got %+v", result)
	}

	var storedFirst, storedSecond models.Reward
	if err := db.First(&storedFirst, first.ID).Error; err != nil {
		t.Fatalf("load first reward failed: %v", err)
	}
	if err := db.First(&storedSecond, second.ID).Error; err != nil {
		t.Fatalf("load second reward failed: %v", err)
	}
	if storedFirst.Quantity != 50 {
		t.Fatalf("expected first reward overwritten to 50, got %d", storedFirst.Quantity)
	}
	if storedSecond.Quantity != 0 {
		t.Fatalf("expected second reward overwritten to 0, got %d", storedSecond.Quantity)
	}

	if _, err := svc.BulkUpdate(nil); !errors.Is(err, ErrBulkUpdateInvalid) {
		t.Fatalf("expected empty entries rejected, got %v", err)
	}
}

func TestStockAlertsThresholds(t *testing.T) {
	svc, db := setupInventoryServiceTest(t, 5)
	seedInventoryReward(t, db, "Plenty", 50, 0, true)
	low := seedInventoryReward(t, db, "Running Low", 5, 0, true)
	custom := seedInventoryReward(t, db, "Custom Threshold", 9, 10, true)
	out := seedInventoryReward(t, db, "Gone", 0, 0, true)
	seedInventoryReward(t, db, "Hidden Gone", 0, 0, false) // 下架不参与告警

	summary, err := svc.StockAlerts()
	if err != nil {
		t.Fatalf("stock alerts failed: %v", err)
	}
	if summary.Threshold != 5 {
		t.Fatalf("expected default threshold 5, got %d", summary.Threshold)
	}
	if summary.LowStockCount != 2 || len(summary.LowStock) != 2 {
		t.Fatalf("expected 2 low stock alerts, got %+v", summary)
	}
	if summary.OutOfStockCount != 1 || len(summary.OutOfStock) != 1 {
		t.Fatalf("expected 1 out-of-stock alert, got %+v", summary)
	}
	if summary.OutOfStock[0].RewardID != out.ID {
		t.Fatalf("expected out-of-stock reward %d, got %d", out.ID, summary.OutOfStock[0].RewardID)
	}

	lowIDs := map[uint]int{}
	for _, alert := range summary.LowStock {
		lowIDs[alert.RewardID] = alert.Threshold
	}
	if lowIDs[low.ID] != 5 {
		t.Fatalf("expected default threshold alert for reward %d: %+v", low.ID, summary.LowStock)
	}
	if lowIDs[custom.ID] != 10 {
		t.Fatalf("expected per-reward threshold 10 for reward %d: %+v", custom.ID, summary.LowStock)
	}
}

func TestToggleActive(t *testing.T) {
	svc, db := setupInventoryServiceTest(t, 0)
	reward := seedInventoryReward(t, db, "Hoodie", 5, 0, true)

	if err := svc.ToggleActive(reward.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	var stored models.Reward
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected reward deactivated")
	}

	if err := svc.ToggleActive(99999, true); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("expected missing reward rejected, got %v", err)
	}
	if err := svc.ToggleActive(0, true); !errors.Is(err, ErrRewardInvalid) {
		t.Fatalf("expected invalid id rejected, got %v", err)
	}
}

func TestRestockHistoryFilter(t *testing.T) {
	svc, db := setupInventoryServiceTest(t, 0)
	first := seedInventoryReward(t, db, "Hoodie", 5, 0, true)
	second := seedInventoryReward(t, db, "Tumbler", 5, 0, true)

	if _, err := svc.Restock(first.ID, 5, "ops_admin", ""); err != nil {
		t.Fatalf("restock first failed: %v", err)
	}
	if _, err := svc.Restock(second.ID, 3, "ops_admin", ""); err != nil {
		t.Fatalf("restock second failed: %v", err)
	}
	if _, err := svc.Restock(first.ID, 2, "ops_admin", ""); err != nil {
		t.Fatalf("restock first again failed: %v", err)
	}

	entries, total, err := svc.RestockHistory(repository.RestockListFilter{Page: 1, PageSize: 20, RewardID: first.ID})
	if err != nil {
		t.Fatalf("restock history failed: %v", err)
	}
	if total != 2 || len(entries) != 2 {
		t.Fatalf("expected 2 entries for first reward, got total=%d len=%d", total, len(entries))
	}
	for _, entry := range entries {
		if entry.RewardID != first.ID {
			t.Fatalf("expected entries filtered to reward %d, got %+v", first.ID, entry)
		}
	}

	_, total, err = svc.RestockHistory(repository.RestockListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("restock history without filter failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 entries overall, got %d", total)
	}
}

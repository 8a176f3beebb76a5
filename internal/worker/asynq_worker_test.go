package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/time2claim/internal/constants"
	"github.com/time2claim/internal/models"
	"github.com/time2claim/internal/provider"
	"github.com/time2claim/internal/queue"
	"github.com/time2claim/internal/repository"
	"github.com/time2claim/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Reward{}, &models.Claim{}, &models.RestockEntry{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	rewardRepo := repository.NewRewardRepository(db)
	container := &provider.Container{
		ClaimRepo:        repository.NewClaimRepository(db),
		RestockRepo:      repository.NewRestockRepository(db),
		RewardRepo:       rewardRepo,
		InventoryService: service.NewInventoryService(rewardRepo, repository.NewRestockRepository(db), nil, 5),
	}
	return NewConsumer(container), db
}

func TestHandleClaimStatusEmailInvalidPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask(queue.TaskClaimStatusEmail, []byte("not-json"))
	if err := consumer.handleClaimStatusEmail(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}

	task, err := queue.NewClaimStatusEmailTask(queue.ClaimStatusEmailPayload{ClaimID: 0})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleClaimStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected zero claim id skipped, got %v", err)
	}
}

func TestHandleClaimStatusEmailSkips(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	// 领取单不存在时直接跳过，不触发重试
	task, err := queue.NewClaimStatusEmailTask(queue.ClaimStatusEmailPayload{ClaimID: 99999})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleClaimStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected missing claim skipped, got %v", err)
	}

	reward := models.Reward{
		Name:     "Stainless Tumbler",
		Category: constants.CategoryMerch,
		Points:   models.NewPointsFromInt(300),
		Quantity: 4,
		IsActive: true,
	}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("create reward failed: %v", err)
	}
	claim := models.Claim{
		ClaimID:  "CLM-TESTAAAAA",
		RewardID: reward.ID,
		Username: "jdoe",
		FullName: "John Doe",
		Phone:    "09171234567",
		Status:   constants.ClaimStatusApproved,
	}
	if err := db.Create(&claim).Error; err != nil {
		t.Fatalf("create claim failed: %v", err)
	}

	// 未填写邮箱时跳过
	task, err = queue.NewClaimStatusEmailTask(queue.ClaimStatusEmailPayload{ClaimID: claim.ID, Status: constants.ClaimStatusApproved})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleClaimStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected empty receiver skipped, got %v", err)
	}

	// 邮件服务未配置时跳过
	if err := db.Model(&models.Claim{}).Where("id = ?", claim.ID).Update("email", "jdoe@example.com").Error; err != nil {
		t.Fatalf("update claim email failed: %v", err)
	}
	if err := consumer.handleClaimStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected nil email service skipped, got %v", err)
	}
}

func TestHandleLowStockAlertScan(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	reward := models.Reward{
		Name:     "Limited Edition Hoodie",
		Category: constants.CategoryMerch,
		Points:   models.NewPointsFromInt(800),
		Quantity: 2,
		IsActive: true,
	}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("create reward failed: %v", err)
	}

	task, err := queue.NewLowStockAlertScanTask(queue.LowStockAlertScanPayload{})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleLowStockAlertScan(context.Background(), task); err != nil {
		t.Fatalf("low stock scan failed: %v", err)
	}

	task = asynq.NewTask(queue.TaskLowStockAlertScan, []byte("not-json"))
	if err := consumer.handleLowStockAlertScan(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

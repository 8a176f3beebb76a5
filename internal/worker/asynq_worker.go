package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/time2claim/internal/logger"
	"github.com/time2claim/internal/provider"
	"github.com/time2claim/internal/queue"
	"github.com/time2claim/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskClaimStatusEmail, c.handleClaimStatusEmail)
	mux.HandleFunc(queue.TaskLowStockAlertScan, c.handleLowStockAlertScan)
}

func (c *Consumer) handleClaimStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_claim_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ClaimStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_claim_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.ClaimID == 0 {
		logger.Debugw("worker_claim_status_email_skip_invalid_payload", "claim_id", payload.ClaimID)
		return nil
	}
	claim, err := c.ClaimRepo.GetByID(payload.ClaimID)
	if err != nil {
		logger.Warnw("worker_claim_status_email_fetch_claim_failed", "claim_id", payload.ClaimID, "error", err)
		return err
	}
	if claim == nil {
		logger.Debugw("worker_claim_status_email_skip_claim_not_found", "claim_id", payload.ClaimID)
		return nil
	}
	receiverEmail := strings.TrimSpace(claim.Email)
	if receiverEmail == "" {
		logger.Debugw("worker_claim_status_email_skip_empty_receiver", "claim_id", claim.ID, "claim_no", claim.ClaimID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_claim_status_email_skip_email_service_nil", "claim_id", claim.ID, "claim_no", claim.ClaimID)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = claim.Status
	}
	input := service.ClaimStatusEmailInput{
		ClaimID:         claim.ClaimID,
		FullName:        claim.FullName,
		RewardName:      claim.Reward.Name,
		Status:          status,
		RejectionReason: claim.RejectionReason,
	}
	if err := c.EmailService.SendClaimStatusEmail(receiverEmail, input, ""); err != nil {
		logger.Warnw("worker_claim_status_email_send_failed",
			"claim_id", claim.ID,
			"claim_no", claim.ClaimID,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleLowStockAlertScan(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_scan_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockAlertScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_scan_unmarshal_failed", "error", err)
		return err
	}
	return c.scanLowStock()
}

func (c *Consumer) scanLowStock() error {
	if c == nil || c.InventoryService == nil {
		logger.Warnw("worker_low_stock_scan_skip_inventory_service_nil")
		return nil
	}
	summary, err := c.InventoryService.StockAlerts()
	if err != nil {
		logger.Warnw("worker_low_stock_scan_failed", "error", err)
		return err
	}
	for _, alert := range summary.OutOfStock {
		logger.Warnw("worker_reward_out_of_stock",
			"reward_id", alert.RewardID,
			"reward_name", alert.Name,
			"category", alert.Category,
		)
	}
	for _, alert := range summary.LowStock {
		logger.Warnw("worker_reward_low_stock",
			"reward_id", alert.RewardID,
			"reward_name", alert.Name,
			"category", alert.Category,
			"quantity", alert.Quantity,
			"threshold", alert.Threshold,
		)
	}
	logger.Infow("worker_low_stock_scan_done",
		"low_stock_count", summary.LowStockCount,
		"out_of_stock_count", summary.OutOfStockCount,
	)
	return nil
}

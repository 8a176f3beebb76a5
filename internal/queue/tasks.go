package queue

import (
	"encoding/json"

	"github.com/time2claim/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskClaimStatusEmail 认领状态邮件通知任务
	TaskClaimStatusEmail = constants.TaskClaimStatusEmail
	// TaskLowStockAlertScan 低库存巡检任务
	TaskLowStockAlertScan = constants.TaskLowStockAlertScan
)

// ClaimStatusEmailPayload 认领状态邮件任务载荷
type ClaimStatusEmailPayload struct {
	ClaimID uint   `json:"claim_id"`
	Status  string `json:"status"`
}

// LowStockAlertScanPayload 低库存巡检任务载荷
type LowStockAlertScanPayload struct {
	Threshold int `json:"threshold"`
}

// NewClaimStatusEmailTask 创建认领状态邮件任务
func NewClaimStatusEmailTask(payload ClaimStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskClaimStatusEmail, body), nil
}

// NewLowStockAlertScanTask 创建低库存巡检任务
func NewLowStockAlertScanTask(payload LowStockAlertScanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlertScan, body), nil
}

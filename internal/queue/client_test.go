package queue

import (
	"testing"
)

func TestDisabledClientEnqueueIsNoop(t *testing.T) {
	client, err := NewClient(nil)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("expected client disabled without config")
	}
	if err := client.EnqueueClaimStatusEmail(ClaimStatusEmailPayload{ClaimID: 1, Status: "approved"}); err != nil {
		t.Fatalf("disabled claim status enqueue should be a no-op, got %v", err)
	}
	if err := client.EnqueueLowStockAlertScan(LowStockAlertScanPayload{}); err != nil {
		t.Fatalf("disabled low stock enqueue should be a no-op, got %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("expected nil client disabled")
	}
}

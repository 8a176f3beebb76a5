package service

import (
	"strings"

	"github.com/time2claim/internal/constants"
)

var allowedTransitions = map[string]map[string]bool{
	constants.ClaimStatusPending: {
		constants.ClaimStatusApproved: true,
		constants.ClaimStatusRejected: true,
	},
	constants.ClaimStatusApproved: {
		constants.ClaimStatusProcessing: true,
	},
	constants.ClaimStatusProcessing: {
		constants.ClaimStatusShipped: true,
	},
	constants.ClaimStatusShipped: {
		constants.ClaimStatusDelivered: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	if current == target {
		return false
	}
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

// IsTerminalClaimStatus 判断认领状态是否为终态
func IsTerminalClaimStatus(status string) bool {
	switch status {
	case constants.ClaimStatusRejected, constants.ClaimStatusDelivered:
		return true
	}
	return false
}

// NormalizeClaimStatus 规范化认领状态，非法值返回空串
func NormalizeClaimStatus(raw string) string {
	status := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range constants.ClaimStatuses {
		if status == known {
			return status
		}
	}
	return ""
}

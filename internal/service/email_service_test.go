package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/time2claim/internal/i18n"
)

func TestBuildClaimStatusContent(t *testing.T) {
	tests := []struct {
		name                string
		locale              string
		status              string
		reason              string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:   "approved_zh",
			locale: i18n.LocaleZH,
			status: "approved",
			wantSubjectContains: []string{
				"状态更新",
				"已批准",
			},
			wantBodyContains: []string{
				"CLM-APPROVED1",
				"已批准",
			},
		},
		{
			name:   "rejected_en",
			locale: i18n.LocaleEN,
			status: "rejected",
			reason: "Address could not be verified",
			wantSubjectContains: []string{
				"Your reward claim is now",
				"Rejected",
			},
			wantBodyContains: []string{
				"was rejected",
				"Address could not be verified",
			},
		},
		{
			name:   "delivered_en",
			locale: i18n.LocaleEN,
			status: "delivered",
			wantSubjectContains: []string{
				"Delivered",
			},
			wantBodyContains: []string{
				"has been delivered",
				"CLM-DELIVERED",
			},
		},
		{
			name:   "unknown_status_falls_back",
			locale: i18n.LocaleEN,
			status: "archived",
			wantSubjectContains: []string{
				"archived",
			},
			wantBodyContains: []string{
				"archived",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := ClaimStatusEmailInput{
				ClaimID:         pickClaimNo(tt.status),
				FullName:        "John Doe",
				RewardName:      "Stainless Tumbler",
				Status:          tt.status,
				RejectionReason: tt.reason,
			}
			subject, body := buildClaimStatusContent(input, tt.locale)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func pickClaimNo(status string) string {
	switch status {
	case "approved":
		return "CLM-APPROVED1"
	case "rejected":
		return "CLM-REJECTED1"
	default:
		return "CLM-DELIVERED"
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}

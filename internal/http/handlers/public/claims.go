package public

import (
	"errors"

	"github.com/time2claim/internal/constants"
	handlershared "github.com/time2claim/internal/http/handlers/shared"
	"github.com/time2claim/internal/http/response"
	"github.com/time2claim/internal/i18n"
	"github.com/time2claim/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitClaimRequest 提交领取单请求
type SubmitClaimRequest struct {
	RewardID        uint   `json:"reward_id" binding:"required"`
	VariantOption   string `json:"variant_option"`
	Username        string `json:"username" binding:"required"`
	FullName        string `json:"full_name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	Email           string `json:"email"`
	DeliveryAddress string `json:"delivery_address"`
	EwalletName     string `json:"ewallet_name"`
	EwalletAccount  string `json:"ewallet_account"`

	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// SubmitClaim 提交领取单
func (h *Handler) SubmitClaim(c *gin.Context) {
	var req SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.claim_invalid", err)
		return
	}

	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneSubmitClaim, req.CaptchaPayload.ToServicePayload()); err != nil {
			switch {
			case errors.Is(err, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
			case errors.Is(err, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
			default:
				respondError(c, response.CodeInternal, "error.captcha_config_invalid", err)
			}
			return
		}
	}

	claim, err := h.ClaimService.SubmitClaim(service.SubmitClaimInput{
		RewardID:        req.RewardID,
		VariantOption:   req.VariantOption,
		Username:        req.Username,
		FullName:        req.FullName,
		Phone:           req.Phone,
		Email:           req.Email,
		DeliveryAddress: req.DeliveryAddress,
		EwalletName:     req.EwalletName,
		EwalletAccount:  req.EwalletAccount,
	})
	if err != nil {
		respondSubmitClaimError(c, err)
		return
	}

	response.Success(c, gin.H{
		"claim_id":   claim.ClaimID,
		"status":     claim.Status,
		"created_at": claim.CreatedAt,
	})
}

// GetClaimStatus 根据领取单号查询进度
func (h *Handler) GetClaimStatus(c *gin.Context) {
	claim, err := h.ClaimService.GetByClaimID(c.Param("claim_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClaimInvalid):
			respondError(c, response.CodeBadRequest, "error.claim_invalid", nil)
		case errors.Is(err, service.ErrClaimNotFound):
			respondError(c, response.CodeNotFound, "error.claim_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.claim_fetch_failed", err)
		}
		return
	}

	locale := i18n.ResolveLocale(c)
	data := gin.H{
		"claim_id":       claim.ClaimID,
		"status":         claim.Status,
		"status_label":   i18n.T(locale, "claim.status."+claim.Status),
		"message":        i18n.T(locale, "claim.progress."+claim.Status),
		"reward_name":    claim.Reward.Name,
		"variant_option": claim.VariantOption,
		"created_at":     claim.CreatedAt,
		"updated_at":     claim.UpdatedAt,
	}
	if claim.Status == constants.ClaimStatusRejected {
		data["rejection_reason"] = claim.RejectionReason
	}
	response.Success(c, data)
}

package service

import "errors"

// 服务层哨兵错误，供 handler 层 errors.Is 映射使用
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAdminNotFound      = errors.New("admin not found")

	ErrRewardInvalid        = errors.New("invalid reward")
	ErrRewardNotFound       = errors.New("reward not found")
	ErrRewardFetchFailed    = errors.New("fetch reward failed")
	ErrRewardCreateFailed   = errors.New("create reward failed")
	ErrRewardUpdateFailed   = errors.New("update reward failed")
	ErrRewardDeleteFailed   = errors.New("delete reward failed")
	ErrRewardInactive       = errors.New("reward inactive")
	ErrRewardOutOfStock     = errors.New("reward out of stock")
	ErrGalleryTooLarge      = errors.New("gallery exceeds image limit")
	ErrVariantOptionInvalid = errors.New("invalid variant option")

	ErrClaimInvalid           = errors.New("invalid claim")
	ErrClaimNotFound          = errors.New("claim not found")
	ErrClaimFetchFailed       = errors.New("fetch claim failed")
	ErrClaimSubmitFailed      = errors.New("submit claim failed")
	ErrClaimUpdateFailed      = errors.New("update claim failed")
	ErrClaimTransitionInvalid = errors.New("invalid claim status transition")
	ErrClaimReasonRequired    = errors.New("rejection reason required")
	ErrClaimAddressRequired   = errors.New("delivery address required")
	ErrClaimEwalletRequired   = errors.New("e-wallet details required")

	ErrRestockInvalid       = errors.New("invalid restock request")
	ErrBulkUpdateInvalid    = errors.New("invalid bulk update request")
	ErrInventoryFetchFailed = errors.New("fetch inventory failed")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrInvalidEmail              = errors.New("invalid email address")
)

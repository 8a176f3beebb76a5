package public

import (
	"errors"

	"github.com/time2claim/internal/http/response"
	"github.com/time2claim/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var submitClaimErrorRules = []mappedHandlerError{
	{target: service.ErrClaimInvalid, code: response.CodeBadRequest, key: "error.claim_invalid"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.claim_invalid"},
	{target: service.ErrRewardNotFound, code: response.CodeNotFound, key: "error.reward_not_found"},
	{target: service.ErrRewardInactive, code: response.CodeBadRequest, key: "error.reward_inactive"},
	{target: service.ErrVariantOptionInvalid, code: response.CodeBadRequest, key: "error.variant_option_invalid"},
	{target: service.ErrClaimAddressRequired, code: response.CodeBadRequest, key: "error.claim_address_required"},
	{target: service.ErrClaimEwalletRequired, code: response.CodeBadRequest, key: "error.claim_ewallet_required"},
	{target: service.ErrRewardFetchFailed, code: response.CodeInternal, key: "error.reward_fetch_failed"},
}

func respondSubmitClaimError(c *gin.Context, err error) {
	respondWithMappedError(c, err, submitClaimErrorRules, response.CodeInternal, "error.claim_submit_failed")
}

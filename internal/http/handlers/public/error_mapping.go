package public

import (
	"errors"

	handlershared "github.com/affiliate-next/internal/http/handlers/shared"
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/service"

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

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var affiliateCommonErrorRules = []mappedHandlerError{
	{target: service.ErrAffiliateNotOpened, code: response.CodeForbidden, key: "error.affiliate_not_opened"},
	{target: service.ErrStorageUnavailable, code: response.CodeServiceUnavailable, key: "error.storage_unavailable"},
}

// 具体错误需排在其包装的通用校验错误之前
var affiliateCouponActivateErrorRules = []mappedHandlerError{
	{target: service.ErrAffiliateHandleRequired, code: response.CodeBadRequest, key: "error.affiliate_handle_required"},
	{target: service.ErrAffiliateCouponTemplateUnavailable, code: response.CodeBadRequest, key: "error.affiliate_coupon_template_unavailable"},
	{target: service.ErrAffiliateCouponValidation, code: response.CodeBadRequest, key: "error.affiliate_coupon_invalid"},
	{target: service.ErrAffiliateCouponCodeTaken, code: response.CodeConflict, key: "error.affiliate_coupon_code_taken"},
}

var affiliateCouponToggleErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.affiliate_coupon_not_found"},
}

var affiliateHandleErrorRules = []mappedHandlerError{
	{target: service.ErrAffiliateHandleRequired, code: response.CodeBadRequest, key: "error.affiliate_handle_required"},
	{target: service.ErrAffiliateHandleInvalid, code: response.CodeBadRequest, key: "error.affiliate_handle_invalid"},
}

func respondAffiliateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, affiliateCommonErrorRules, response.CodeInternal, "error.internal_error")
}

// respondAffiliateCouponActivateError 门槛未满足时在 data 中返回未满足条件列表
func respondAffiliateCouponActivateError(c *gin.Context, err error) {
	var eligibilityErr *service.EligibilityError
	if errors.As(err, &eligibilityErr) {
		handlershared.RespondErrorWithData(c, response.CodeUnprocessable, "error.affiliate_coupon_ineligible", gin.H{
			"product_id":         eligibilityErr.ProductID,
			"unmet_requirements": eligibilityErr.Unmet,
		}, nil)
		return
	}
	respondWithMappedError(c, err, concatMappedHandlerErrors(affiliateCommonErrorRules, affiliateCouponActivateErrorRules), response.CodeInternal, "error.internal_error")
}

func respondAffiliateCouponToggleError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(affiliateCommonErrorRules, affiliateCouponToggleErrorRules), response.CodeInternal, "error.internal_error")
}

func respondAffiliateHandleError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(affiliateCommonErrorRules, affiliateHandleErrorRules), response.CodeInternal, "error.internal_error")
}

package admin

import (
	"errors"

	handlershared "github.com/affiliate-next/internal/http/handlers/shared"
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// adminErrorRules 管理端业务错误映射
var adminErrorRules = []struct {
	target error
	code   int
	key    string
}{
	{target: service.ErrCouponTemplateInvalid, code: response.CodeBadRequest, key: "error.coupon_template_invalid"},
	{target: service.ErrCouponTemplateNotFound, code: response.CodeNotFound, key: "error.coupon_template_not_found"},
	{target: service.ErrEligibilityPolicyInvalid, code: response.CodeBadRequest, key: "error.eligibility_policy_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrStorageUnavailable, code: response.CodeServiceUnavailable, key: "error.storage_unavailable"},
}

func respondServiceError(c *gin.Context, err error, notFoundKey string) {
	if errors.Is(err, service.ErrNotFound) {
		respondError(c, response.CodeNotFound, notFoundKey, nil)
		return
	}
	for _, rule := range adminErrorRules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "error.internal_error", err)
}

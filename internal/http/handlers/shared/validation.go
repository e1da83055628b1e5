package shared

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterBindingValidators 向 gin 绑定校验器注册自定义规则，并使用 json 字段名输出错误
func RegisterBindingValidators() {
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = engine.RegisterValidation("coupon_kind", validateCouponKind)
		_ = engine.RegisterValidation("affiliate_handle", validateAffiliateHandle)
	})
}

func validateCouponKind(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case constants.CouponTemplateKindPercentage, constants.CouponTemplateKindFixedDays, constants.CouponTemplateKindFreeTrialDays:
		return true
	default:
		return false
	}
}

func validateAffiliateHandle(fl validator.FieldLevel) bool {
	return service.ValidAffiliateHandle(strings.TrimSpace(fl.Field().String()))
}

// RespondBindError 参数绑定失败：字段级错误放入 data.fields
func RespondBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		RequestLog(c).Debugw("handler_bind_failed", "error", err)
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fieldErrorMessage(fieldError))
	}
	RespondErrorWithData(c, response.CodeBadRequest, "error.bad_request", gin.H{"fields": fields}, nil)
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "coupon_kind":
		return fmt.Sprintf("%s must be one of [percentage fixed_days free_trial_days]", field)
	case "affiliate_handle":
		return fmt.Sprintf("%s must be 1-32 letters, digits, '_' or '-'", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}

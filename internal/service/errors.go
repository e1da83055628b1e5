package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在或不属于当前推广用户
	ErrNotFound = errors.New("not found")
	// ErrAffiliateNotOpened 推广档案不存在或已禁用
	ErrAffiliateNotOpened = errors.New("affiliate not opened")

	// ErrAffiliateCouponValidation 推广优惠券参数校验失败
	ErrAffiliateCouponValidation = errors.New("affiliate coupon validation failed")
	// ErrAffiliateHandleRequired 推广用户名未设置，无法生成优惠码
	ErrAffiliateHandleRequired = fmt.Errorf("%w: affiliate handle required", ErrAffiliateCouponValidation)
	// ErrAffiliateHandleInvalid 推广用户名格式错误
	ErrAffiliateHandleInvalid = fmt.Errorf("%w: affiliate handle invalid", ErrAffiliateCouponValidation)
	// ErrAffiliateCouponTemplateUnavailable 模板不存在、未启用或不属于该商品
	ErrAffiliateCouponTemplateUnavailable = fmt.Errorf("%w: coupon template unavailable", ErrAffiliateCouponValidation)

	// ErrAffiliateCouponIneligible 未满足开通门槛
	ErrAffiliateCouponIneligible = errors.New("affiliate coupon ineligible")

	// ErrAffiliateCouponConflict 唯一约束冲突
	ErrAffiliateCouponConflict = errors.New("affiliate coupon conflict")
	// ErrAffiliateCouponCodeTaken 同商品下已有其他模板占用该优惠码
	ErrAffiliateCouponCodeTaken = fmt.Errorf("%w: custom code taken", ErrAffiliateCouponConflict)

	// ErrStorageUnavailable 存储不可用，调用方可安全重试
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrEligibilityPolicyInvalid 开通门槛参数错误
	ErrEligibilityPolicyInvalid = errors.New("eligibility policy invalid")
	// ErrCouponTemplateInvalid 优惠券模板参数错误
	ErrCouponTemplateInvalid = errors.New("coupon template invalid")
	// ErrCouponTemplateNotFound 优惠券模板不存在
	ErrCouponTemplateNotFound = errors.New("coupon template not found")
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
)

// EligibilityError 开通门槛未满足，携带未满足条件列表
type EligibilityError struct {
	ProductID uint
	Unmet     []string
}

func (e *EligibilityError) Error() string {
	if e == nil || len(e.Unmet) == 0 {
		return ErrAffiliateCouponIneligible.Error()
	}
	return ErrAffiliateCouponIneligible.Error() + ": " + strings.Join(e.Unmet, "; ")
}

func (e *EligibilityError) Unwrap() error {
	return ErrAffiliateCouponIneligible
}

// storageError 将底层存储错误归类为可重试错误，保留原始错误链
func storageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

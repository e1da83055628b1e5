package constants

// 推广用户状态常量
const (
	AffiliateProfileStatusActive   = "active"
	AffiliateProfileStatusDisabled = "disabled"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 推广佣金状态常量
const (
	AffiliateCommissionStatusPendingConfirm = "pending_confirm"
	AffiliateCommissionStatusAvailable      = "available"
	AffiliateCommissionStatusPaid           = "paid"
	AffiliateCommissionStatusRejected       = "rejected"
)

// 优惠券模板类型常量
const (
	CouponTemplateKindPercentage    = "percentage"
	CouponTemplateKindFixedDays     = "fixed_days"
	CouponTemplateKindFreeTrialDays = "free_trial_days"
)

// 推广优惠券生命周期状态
const (
	AffiliateCouponStateActive   = "active"
	AffiliateCouponStateInactive = "inactive"
	AffiliateCouponStateDeleted  = "deleted"
)

// 推广优惠券审计动作
const (
	AffiliateCouponActionActivate   = "activate"
	AffiliateCouponActionDeactivate = "deactivate"
	AffiliateCouponActionReactivate = "reactivate"
	AffiliateCouponActionDelete     = "delete"
)

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskAffiliateCouponEvent = "affiliate:coupon_event"
)

// 缓存键
const (
	CacheKeyCouponCatalog = "coupon:catalog"
)

package repository

// CouponTemplateListFilter 查询优惠券模板列表的过滤条件
type CouponTemplateListFilter struct {
	Page       int
	PageSize   int
	ProductID  uint
	Search     string
	ActiveOnly bool
}

// AffiliateCouponListFilter 查询推广优惠券列表的过滤条件（管理端）
type AffiliateCouponListFilter struct {
	Page               int
	PageSize           int
	AffiliateProfileID uint
	ProductID          uint
	IncludeDeleted     bool
}

// AffiliateCouponEventListFilter 查询推广优惠券审计记录的过滤条件
type AffiliateCouponEventListFilter struct {
	Page               int
	PageSize           int
	AffiliateCouponID  uint
	AffiliateProfileID uint
	Action             string
}

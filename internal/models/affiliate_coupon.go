package models

import (
	"time"

	"gorm.io/gorm"
)

// AffiliateCoupon 推广用户已开通的个性化优惠券
// 同一推广用户对同一模板仅允许存在一条未删除记录；custom_code 创建后不可变更
type AffiliateCoupon struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                                                                                                                                // 主键
	AffiliateProfileID uint           `gorm:"not null;index;index:idx_affiliate_coupon_template,unique,where:deleted_at IS NULL;index:idx_affiliate_coupon_code,unique,where:deleted_at IS NULL" json:"affiliate_profile_id"` // 推广用户ID
	CouponTemplateID   uint           `gorm:"not null;index;index:idx_affiliate_coupon_template,unique,where:deleted_at IS NULL" json:"coupon_template_id"`                                                        // 模板ID
	ProductID          uint           `gorm:"not null;index;index:idx_affiliate_coupon_code,unique,where:deleted_at IS NULL" json:"product_id"`                                                                    // 商品ID（冗余，用于唯一性约束）
	CustomCode         string         `gorm:"type:varchar(128);not null;index:idx_affiliate_coupon_code,unique,where:deleted_at IS NULL" json:"custom_code"`                                                       // 个性化优惠码
	UsernameAtCreation string         `gorm:"type:varchar(64);not null;default:''" json:"username_at_creation"`                                                                                                    // 生成时的推广用户名快照
	BaseCodeAtCreation string         `gorm:"type:varchar(64);not null;default:''" json:"base_code_at_creation"`                                                                                                   // 生成时的模板基础码快照
	IsActive           bool           `gorm:"not null;default:true;index" json:"is_active"`                                                                                                                        // 是否启用
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                                                                                                                             // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                                                                                                                          // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                                                                                                                                      // 软删除时间

	CouponTemplate CouponTemplate `gorm:"foreignKey:CouponTemplateID" json:"coupon_template,omitempty"` // 模板信息
}

// TableName 指定表名
func (AffiliateCoupon) TableName() string {
	return "affiliate_coupons"
}

package models

import "time"

// AffiliateCouponEvent 推广优惠券生命周期审计记录
type AffiliateCouponEvent struct {
	ID                 uint      `gorm:"primarykey" json:"id"`                                          // 主键
	AffiliateCouponID  uint      `gorm:"not null;index" json:"affiliate_coupon_id"`                     // 推广优惠券ID
	AffiliateProfileID uint      `gorm:"not null;index" json:"affiliate_profile_id"`                    // 推广用户ID
	Action             string    `gorm:"type:varchar(32);not null;index" json:"action"`                 // 动作
	CustomCode         string    `gorm:"type:varchar(128);not null;default:''" json:"custom_code"`      // 优惠码快照
	OccurredAt         time.Time `gorm:"index;not null" json:"occurred_at"`                             // 发生时间
	CreatedAt          time.Time `gorm:"index;not null;default:CURRENT_TIMESTAMP" json:"created_at"`    // 写入时间
}

// TableName 指定表名
func (AffiliateCouponEvent) TableName() string {
	return "affiliate_coupon_events"
}

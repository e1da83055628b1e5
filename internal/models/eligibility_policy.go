package models

import "time"

// EligibilityPolicy 商品级推广优惠券开通门槛
type EligibilityPolicy struct {
	ID                       uint      `gorm:"primarykey" json:"id"`                                                  // 主键
	ProductID                uint      `gorm:"not null;uniqueIndex" json:"product_id"`                                // 商品ID
	MinimumCrossProductSales int64     `gorm:"not null;default:0" json:"minimum_cross_product_sales"`                 // 其他商品最低成交数
	RequiresPlanNameContains string    `gorm:"type:varchar(64);not null;default:''" json:"requires_plan_name_contains"` // 套餐名称需包含的标记（不区分大小写）
	CreatedAt                time.Time `gorm:"index" json:"created_at"`                                               // 创建时间
	UpdatedAt                time.Time `json:"updated_at"`                                                            // 更新时间
}

// TableName 指定表名
func (EligibilityPolicy) TableName() string {
	return "eligibility_policies"
}

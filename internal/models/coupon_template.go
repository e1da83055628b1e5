package models

import (
	"time"

	"gorm.io/gorm"
)

// CouponTemplate 管理端发布的推广优惠券模板
type CouponTemplate struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                   // 主键
	ProductID   uint           `gorm:"not null;index" json:"product_id"`                       // 所属商品
	Code        string         `gorm:"type:varchar(64);not null;default:''" json:"code"`       // 基础优惠码
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`                 // 名称
	Description string         `gorm:"type:text" json:"description"`                           // 描述
	Kind        string         `gorm:"type:varchar(32);not null" json:"kind"`                  // 类型（percentage/fixed_days/free_trial_days）
	Value       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"value"`     // 数值（按类型解释）
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`           // 是否对推广用户开放
	IsPrimary   bool           `gorm:"not null;default:false" json:"is_primary"`               // 是否主推券（优惠码仅为推广用户名）
	ValidUntil  *time.Time     `gorm:"index" json:"valid_until"`                               // 失效时间（仅展示）
	MaxUses     int            `gorm:"not null;default:0" json:"max_uses"`                     // 使用上限（0 表示不限制）
	CurrentUses int            `gorm:"not null;default:0" json:"current_uses"`                 // 已使用次数
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (CouponTemplate) TableName() string {
	return "coupon_templates"
}

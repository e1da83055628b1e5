package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（推广优惠券按商品划分作用域）
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                // 主键
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`                    // 唯一标识
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`              // 展示名称
	LandingPageURL string         `gorm:"type:varchar(1024);not null;default:''" json:"landing_page_url"` // 落地页基础地址（为空表示未配置）
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`                 // 是否上架
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                   // 排序权重
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// AffiliateProfile 推广用户档案
type AffiliateProfile struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                   // 主键
	UserID    uint           `gorm:"not null;uniqueIndex" json:"user_id"`                    // 用户ID
	Handle    string         `gorm:"type:varchar(64);not null;default:''" json:"handle"`     // 推广用户名（生成优惠码使用）
	PlanName  string         `gorm:"type:varchar(128);not null;default:''" json:"plan_name"` // 当前套餐展示名
	Status    string         `gorm:"type:varchar(20);not null;index" json:"status"`          // 状态
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 用户信息
}

// TableName 指定表名
func (AffiliateProfile) TableName() string {
	return "affiliate_profiles"
}

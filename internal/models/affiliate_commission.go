package models

import (
	"time"

	"gorm.io/gorm"
)

// AffiliateCommission 推广佣金记录（由结算系统写入，本服务只读统计）
type AffiliateCommission struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                            // 主键
	AffiliateProfileID uint           `gorm:"not null;index" json:"affiliate_profile_id"`                      // 推广用户ID
	ProductID          uint           `gorm:"not null;index" json:"product_id"`                                // 成交商品ID
	OrderNo            string         `gorm:"type:varchar(64);not null;default:''" json:"order_no"`            // 订单号
	CommissionAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"commission_amount"` // 佣金金额
	Status             string         `gorm:"type:varchar(32);not null;index" json:"status"`                   // 佣金状态
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                         // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间
}

// TableName 指定表名
func (AffiliateCommission) TableName() string {
	return "affiliate_commissions"
}

package repository

import (
	"github.com/affiliate-next/internal/models"

	"gorm.io/gorm"
)

// AffiliateCouponEventRepository 推广优惠券审计记录数据访问接口
type AffiliateCouponEventRepository interface {
	Create(event *models.AffiliateCouponEvent) error
	List(filter AffiliateCouponEventListFilter) ([]models.AffiliateCouponEvent, int64, error)
}

// GormAffiliateCouponEventRepository GORM 实现
type GormAffiliateCouponEventRepository struct {
	db *gorm.DB
}

// NewAffiliateCouponEventRepository 创建审计记录仓库
func NewAffiliateCouponEventRepository(db *gorm.DB) *GormAffiliateCouponEventRepository {
	return &GormAffiliateCouponEventRepository{db: db}
}

// Create 写入审计记录
func (r *GormAffiliateCouponEventRepository) Create(event *models.AffiliateCouponEvent) error {
	return r.db.Create(event).Error
}

// List 审计记录列表
func (r *GormAffiliateCouponEventRepository) List(filter AffiliateCouponEventListFilter) ([]models.AffiliateCouponEvent, int64, error) {
	query := r.db.Model(&models.AffiliateCouponEvent{})
	if filter.AffiliateCouponID != 0 {
		query = query.Where("affiliate_coupon_id = ?", filter.AffiliateCouponID)
	}
	if filter.AffiliateProfileID != 0 {
		query = query.Where("affiliate_profile_id = ?", filter.AffiliateProfileID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	var events []models.AffiliateCouponEvent
	if err := query.Order("occurred_at DESC, id DESC").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

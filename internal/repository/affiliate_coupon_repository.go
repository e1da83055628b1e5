package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/affiliate-next/internal/models"

	"gorm.io/gorm"
)

// AffiliateCouponRepository 推广优惠券数据访问接口
// 除 List(IncludeDeleted) 外，所有查询均排除已软删除记录
type AffiliateCouponRepository interface {
	Create(coupon *models.AffiliateCoupon) error
	GetByID(id uint) (*models.AffiliateCoupon, error)
	GetByAffiliateAndTemplate(affiliateID, templateID uint) (*models.AffiliateCoupon, error)
	GetByAffiliateProductCode(affiliateID, productID uint, code string) (*models.AffiliateCoupon, error)
	ListByAffiliate(affiliateID uint) ([]models.AffiliateCoupon, error)
	List(filter AffiliateCouponListFilter) ([]models.AffiliateCoupon, int64, error)
	UpdateActive(id uint, active bool, updatedAt time.Time) (int64, error)
	SoftDelete(id uint) (int64, error)
}

// GormAffiliateCouponRepository GORM 实现
type GormAffiliateCouponRepository struct {
	db *gorm.DB
}

// NewAffiliateCouponRepository 创建推广优惠券仓库
func NewAffiliateCouponRepository(db *gorm.DB) *GormAffiliateCouponRepository {
	return &GormAffiliateCouponRepository{db: db}
}

// Create 创建推广优惠券
func (r *GormAffiliateCouponRepository) Create(coupon *models.AffiliateCoupon) error {
	return r.db.Omit("CouponTemplate").Create(coupon).Error
}

// GetByID 根据 ID 获取推广优惠券
func (r *GormAffiliateCouponRepository) GetByID(id uint) (*models.AffiliateCoupon, error) {
	if id == 0 {
		return nil, nil
	}
	var coupon models.AffiliateCoupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByAffiliateAndTemplate 按推广用户与模板获取
func (r *GormAffiliateCouponRepository) GetByAffiliateAndTemplate(affiliateID, templateID uint) (*models.AffiliateCoupon, error) {
	if affiliateID == 0 || templateID == 0 {
		return nil, nil
	}
	var coupon models.AffiliateCoupon
	err := r.db.Where("affiliate_profile_id = ? AND coupon_template_id = ?", affiliateID, templateID).
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByAffiliateProductCode 按推广用户、商品与优惠码获取
func (r *GormAffiliateCouponRepository) GetByAffiliateProductCode(affiliateID, productID uint, code string) (*models.AffiliateCoupon, error) {
	code = strings.TrimSpace(code)
	if affiliateID == 0 || productID == 0 || code == "" {
		return nil, nil
	}
	var coupon models.AffiliateCoupon
	err := r.db.Where("affiliate_profile_id = ? AND product_id = ? AND custom_code = ?", affiliateID, productID, code).
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// preloadLinkSource 预加载模板与商品（含已软删除），用于拼接推广链接
func preloadLinkSource(query *gorm.DB) *gorm.DB {
	return query.
		Preload("CouponTemplate", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("CouponTemplate.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

// ListByAffiliate 推广用户的全部未删除优惠券，新创建的在前
func (r *GormAffiliateCouponRepository) ListByAffiliate(affiliateID uint) ([]models.AffiliateCoupon, error) {
	coupons := make([]models.AffiliateCoupon, 0)
	if affiliateID == 0 {
		return coupons, nil
	}
	err := preloadLinkSource(r.db.Where("affiliate_profile_id = ?", affiliateID)).
		Order("created_at DESC, id DESC").
		Find(&coupons).Error
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

// List 管理端列表
func (r *GormAffiliateCouponRepository) List(filter AffiliateCouponListFilter) ([]models.AffiliateCoupon, int64, error) {
	query := r.db.Model(&models.AffiliateCoupon{})
	if filter.IncludeDeleted {
		query = query.Unscoped()
	}
	if filter.AffiliateProfileID != 0 {
		query = query.Where("affiliate_profile_id = ?", filter.AffiliateProfileID)
	}
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	var coupons []models.AffiliateCoupon
	if err := preloadLinkSource(query).Order("created_at DESC, id DESC").Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

// UpdateActive 更新启用状态，返回受影响行数
func (r *GormAffiliateCouponRepository) UpdateActive(id uint, active bool, updatedAt time.Time) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.AffiliateCoupon{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SoftDelete 软删除，返回受影响行数
func (r *GormAffiliateCouponRepository) SoftDelete(id uint) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	result := r.db.Delete(&models.AffiliateCoupon{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

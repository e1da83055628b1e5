package repository

import (
	"errors"

	"github.com/affiliate-next/internal/models"

	"gorm.io/gorm"
)

// CouponTemplateRepository 优惠券模板数据访问接口
type CouponTemplateRepository interface {
	GetByID(id uint) (*models.CouponTemplate, error)
	ListCatalog() ([]models.CouponTemplate, error)
	List(filter CouponTemplateListFilter) ([]models.CouponTemplate, int64, error)
	Create(template *models.CouponTemplate) error
	Update(template *models.CouponTemplate) error
}

// GormCouponTemplateRepository GORM 实现
type GormCouponTemplateRepository struct {
	db *gorm.DB
}

// NewCouponTemplateRepository 创建优惠券模板仓库
func NewCouponTemplateRepository(db *gorm.DB) *GormCouponTemplateRepository {
	return &GormCouponTemplateRepository{db: db}
}

// GetByID 根据 ID 获取模板（含商品信息）
func (r *GormCouponTemplateRepository) GetByID(id uint) (*models.CouponTemplate, error) {
	if id == 0 {
		return nil, nil
	}
	var template models.CouponTemplate
	if err := r.db.Preload("Product").First(&template, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// ListCatalog 可开通模板目录：模板启用且所属商品上架、未删除
func (r *GormCouponTemplateRepository) ListCatalog() ([]models.CouponTemplate, error) {
	var templates []models.CouponTemplate
	err := r.db.Model(&models.CouponTemplate{}).
		Joins("JOIN products ON products.id = coupon_templates.product_id AND products.deleted_at IS NULL AND products.is_active = ?", true).
		Where("coupon_templates.is_active = ?", true).
		Preload("Product").
		Order("products.sort_order DESC, products.id ASC, coupon_templates.is_primary DESC, coupon_templates.id ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// List 模板列表（管理端）
func (r *GormCouponTemplateRepository) List(filter CouponTemplateListFilter) ([]models.CouponTemplate, int64, error) {
	query := r.db.Model(&models.CouponTemplate{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if condition, args := buildLikeCondition(r.db, filter.Search, "name", "code"); condition != "" {
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	var templates []models.CouponTemplate
	if err := query.Preload("Product").Order("id DESC").Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// Create 创建模板
func (r *GormCouponTemplateRepository) Create(template *models.CouponTemplate) error {
	return r.db.Omit("Product").Create(template).Error
}

// Update 更新模板
func (r *GormCouponTemplateRepository) Update(template *models.CouponTemplate) error {
	return r.db.Omit("Product").Save(template).Error
}

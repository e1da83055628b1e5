package service

import (
	"context"
	"time"

	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/repository"
)

// CatalogCache 目录缓存（Redis 实现见 cache.Store）
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CatalogTemplate 可开通模板及其商品展示信息
type CatalogTemplate struct {
	TemplateID     uint         `json:"template_id"`
	ProductID      uint         `json:"product_id"`
	ProductName    string       `json:"product_name"`
	LandingPageURL string       `json:"landing_page_url"`
	Code           string       `json:"code"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Kind           string       `json:"kind"`
	Value          models.Money `json:"value"`
	IsPrimary      bool         `json:"is_primary"`
	ValidUntil     *time.Time   `json:"valid_until"`
	MaxUses        int          `json:"max_uses"`
	CurrentUses    int          `json:"current_uses"`
}

// AffiliateCouponCatalogService 推广优惠券目录读取
type AffiliateCouponCatalogService struct {
	repo  repository.CouponTemplateRepository
	cache CatalogCache
	ttl   time.Duration
}

// NewAffiliateCouponCatalogService 创建目录服务，ttl<=0 或 cache 为 nil 时不缓存
func NewAffiliateCouponCatalogService(repo repository.CouponTemplateRepository, cache CatalogCache, ttl time.Duration) *AffiliateCouponCatalogService {
	return &AffiliateCouponCatalogService{repo: repo, cache: cache, ttl: ttl}
}

// ListTemplates 返回当前可开通的模板目录
func (s *AffiliateCouponCatalogService) ListTemplates(ctx context.Context) ([]CatalogTemplate, error) {
	if s.cachingEnabled() {
		var cached []CatalogTemplate
		hit, err := s.cache.GetJSON(ctx, constants.CacheKeyCouponCatalog, &cached)
		if err != nil {
			logger.FromContext(ctx).Warnw("coupon_catalog_cache_read_failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	templates, err := s.repo.ListCatalog()
	if err != nil {
		return nil, storageError(err)
	}
	catalog := make([]CatalogTemplate, 0, len(templates))
	for i := range templates {
		catalog = append(catalog, toCatalogTemplate(&templates[i]))
	}

	if s.cachingEnabled() {
		if err := s.cache.SetJSON(ctx, constants.CacheKeyCouponCatalog, catalog, s.ttl); err != nil {
			logger.FromContext(ctx).Warnw("coupon_catalog_cache_write_failed", "error", err)
		}
	}
	return catalog, nil
}

// Invalidate 清除目录缓存，模板变更后调用
func (s *AffiliateCouponCatalogService) Invalidate(ctx context.Context) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, constants.CacheKeyCouponCatalog); err != nil {
		logger.FromContext(ctx).Warnw("coupon_catalog_cache_invalidate_failed", "error", err)
	}
}

func (s *AffiliateCouponCatalogService) cachingEnabled() bool {
	return s != nil && s.cache != nil && s.ttl > 0
}

func toCatalogTemplate(template *models.CouponTemplate) CatalogTemplate {
	return CatalogTemplate{
		TemplateID:     template.ID,
		ProductID:      template.ProductID,
		ProductName:    template.Product.Name,
		LandingPageURL: template.Product.LandingPageURL,
		Code:           template.Code,
		Name:           template.Name,
		Description:    template.Description,
		Kind:           template.Kind,
		Value:          template.Value,
		IsPrimary:      template.IsPrimary,
		ValidUntil:     template.ValidUntil,
		MaxUses:        template.MaxUses,
		CurrentUses:    template.CurrentUses,
	}
}

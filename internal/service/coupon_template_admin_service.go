package service

import (
	"context"
	"strings"
	"time"

	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/repository"

	"github.com/shopspring/decimal"
)

// 百分比模板面值上限
var maxPercentageValue = decimal.NewFromInt(100)

// CouponTemplateAdminService 推广优惠券模板管理
type CouponTemplateAdminService struct {
	repo        repository.CouponTemplateRepository
	productRepo repository.ProductRepository
	catalog     *AffiliateCouponCatalogService
}

// NewCouponTemplateAdminService 创建模板管理服务
func NewCouponTemplateAdminService(repo repository.CouponTemplateRepository, productRepo repository.ProductRepository, catalog *AffiliateCouponCatalogService) *CouponTemplateAdminService {
	return &CouponTemplateAdminService{repo: repo, productRepo: productRepo, catalog: catalog}
}

// CouponTemplateInput 创建/更新模板输入
type CouponTemplateInput struct {
	ProductID   uint
	Code        string
	Name        string
	Description string
	Kind        string
	Value       models.Money
	IsActive    *bool
	IsPrimary   bool
	ValidUntil  *time.Time
	MaxUses     int
}

// List 模板列表
func (s *CouponTemplateAdminService) List(filter repository.CouponTemplateListFilter) ([]models.CouponTemplate, int64, error) {
	templates, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, storageError(err)
	}
	return templates, total, nil
}

// Create 创建模板
func (s *CouponTemplateAdminService) Create(ctx context.Context, input CouponTemplateInput) (*models.CouponTemplate, error) {
	template := &models.CouponTemplate{}
	if err := s.apply(template, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(template); err != nil {
		return nil, storageError(err)
	}
	// default:true 的布尔列在创建时会忽略 false
	if !template.IsActive {
		if err := s.repo.Update(template); err != nil {
			return nil, storageError(err)
		}
	}
	s.catalog.Invalidate(ctx)
	logger.FromContext(ctx).Infow("coupon_template_created",
		"template_id", template.ID,
		"product_id", template.ProductID,
		"code", template.Code,
	)
	return s.reload(template.ID)
}

// Update 更新模板；停用即下架，不影响已开通的推广优惠券
func (s *CouponTemplateAdminService) Update(ctx context.Context, id uint, input CouponTemplateInput) (*models.CouponTemplate, error) {
	if id == 0 {
		return nil, ErrCouponTemplateInvalid
	}
	template, err := s.repo.GetByID(id)
	if err != nil {
		return nil, storageError(err)
	}
	if template == nil {
		return nil, ErrCouponTemplateNotFound
	}
	if input.IsActive == nil {
		current := template.IsActive
		input.IsActive = &current
	}
	if err := s.apply(template, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(template); err != nil {
		return nil, storageError(err)
	}
	s.catalog.Invalidate(ctx)
	logger.FromContext(ctx).Infow("coupon_template_updated",
		"template_id", template.ID,
		"product_id", template.ProductID,
		"is_active", template.IsActive,
	)
	return s.reload(template.ID)
}

func (s *CouponTemplateAdminService) apply(template *models.CouponTemplate, input CouponTemplateInput) error {
	name := strings.TrimSpace(input.Name)
	code := strings.TrimSpace(input.Code)
	kind := strings.ToLower(strings.TrimSpace(input.Kind))
	if input.ProductID == 0 || name == "" || input.MaxUses < 0 {
		return ErrCouponTemplateInvalid
	}
	if code == "" && !input.IsPrimary {
		return ErrCouponTemplateInvalid
	}
	switch kind {
	case constants.CouponTemplateKindPercentage:
		if !input.Value.IsPositive() || input.Value.Decimal.GreaterThan(maxPercentageValue) {
			return ErrCouponTemplateInvalid
		}
	case constants.CouponTemplateKindFixedDays, constants.CouponTemplateKindFreeTrialDays:
		if !input.Value.IsPositive() || !input.Value.IsWhole() {
			return ErrCouponTemplateInvalid
		}
	default:
		return ErrCouponTemplateInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return storageError(err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	template.ProductID = input.ProductID
	template.Code = code
	template.Name = name
	template.Description = strings.TrimSpace(input.Description)
	template.Kind = kind
	template.Value = input.Value
	template.IsActive = isActive
	template.IsPrimary = input.IsPrimary
	template.ValidUntil = input.ValidUntil
	template.MaxUses = input.MaxUses
	return nil
}

func (s *CouponTemplateAdminService) reload(id uint) (*models.CouponTemplate, error) {
	template, err := s.repo.GetByID(id)
	if err != nil {
		return nil, storageError(err)
	}
	if template == nil {
		return nil, ErrCouponTemplateNotFound
	}
	return template, nil
}

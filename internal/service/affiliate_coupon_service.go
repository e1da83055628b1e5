package service

import (
	"context"
	"strings"
	"time"

	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/repository"
)

// ActivateInput 开通推广优惠券参数
type ActivateInput struct {
	AffiliateID uint
	TemplateID  uint
	ProductID   uint
	Handle      string // 开通时刻的推广用户名
}

// AffiliateCouponView 推广优惠券展示结构
type AffiliateCouponView struct {
	ID                 uint       `json:"id"`
	AffiliateID        uint       `json:"affiliate_id"`
	TemplateID         uint       `json:"template_id"`
	TemplateName       string     `json:"template_name"`
	ProductID          uint       `json:"product_id"`
	CustomCode         string     `json:"custom_code"`
	UsernameAtCreation string     `json:"username_at_creation"`
	BaseCodeAtCreation string     `json:"base_code_at_creation"`
	IsActive           bool       `json:"is_active"`
	State              string     `json:"state"`
	Link               string     `json:"link"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
}

// AffiliateCouponCatalogEntry 推广用户视角的目录条目
type AffiliateCouponCatalogEntry struct {
	CatalogTemplate
	Eligibility  EligibilityResult    `json:"eligibility"`
	Activation   *AffiliateCouponView `json:"activation"`
	CanActivate  bool                 `json:"can_activate"`
	ResolvedCode string               `json:"resolved_code"`
	IsPreview    bool                 `json:"is_preview"`
	Link         string               `json:"link"`
}

// AffiliateCouponState 推广优惠券生命周期状态
func AffiliateCouponState(coupon *models.AffiliateCoupon) string {
	switch {
	case coupon == nil:
		return ""
	case coupon.DeletedAt.Valid:
		return constants.AffiliateCouponStateDeleted
	case coupon.IsActive:
		return constants.AffiliateCouponStateActive
	default:
		return constants.AffiliateCouponStateInactive
	}
}

// AffiliateCouponService 推广优惠券开通与启停
type AffiliateCouponService struct {
	couponRepo    repository.AffiliateCouponRepository
	templateRepo  repository.CouponTemplateRepository
	policyRepo    repository.EligibilityPolicyRepository
	affiliateRepo repository.AffiliateRepository
	catalog       *AffiliateCouponCatalogService
	events        *AffiliateCouponEventService
	now           func() time.Time
}

// NewAffiliateCouponService 创建推广优惠券服务
func NewAffiliateCouponService(
	couponRepo repository.AffiliateCouponRepository,
	templateRepo repository.CouponTemplateRepository,
	policyRepo repository.EligibilityPolicyRepository,
	affiliateRepo repository.AffiliateRepository,
	catalog *AffiliateCouponCatalogService,
	events *AffiliateCouponEventService,
) *AffiliateCouponService {
	return &AffiliateCouponService{
		couponRepo:    couponRepo,
		templateRepo:  templateRepo,
		policyRepo:    policyRepo,
		affiliateRepo: affiliateRepo,
		catalog:       catalog,
		events:        events,
		now:           time.Now,
	}
}

// Activate 开通推广优惠券
// 同一推广用户对同一模板重复开通直接返回已有记录
func (s *AffiliateCouponService) Activate(ctx context.Context, input ActivateInput) (*models.AffiliateCoupon, error) {
	if input.AffiliateID == 0 || input.TemplateID == 0 || input.ProductID == 0 {
		return nil, ErrAffiliateCouponValidation
	}
	log := logger.FromContext(ctx)

	template, err := s.templateRepo.GetByID(input.TemplateID)
	if err != nil {
		return nil, storageError(err)
	}
	if template == nil || !template.IsActive || template.ProductID != input.ProductID ||
		template.Product.ID == 0 || !template.Product.IsActive {
		return nil, ErrAffiliateCouponTemplateUnavailable
	}

	existing, err := s.couponRepo.GetByAffiliateAndTemplate(input.AffiliateID, input.TemplateID)
	if err != nil {
		return nil, storageError(err)
	}
	if existing != nil {
		return existing, nil
	}

	eligibility, err := s.evaluateForAffiliate(input.AffiliateID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, &EligibilityError{ProductID: input.ProductID, Unmet: eligibility.Unmet}
	}

	handle := strings.TrimSpace(input.Handle)
	code := GenerateAffiliateCouponCode(handle, template.Code, template.IsPrimary)
	if handle == "" || code == "" {
		return nil, ErrAffiliateHandleRequired
	}

	now := s.now()
	coupon := &models.AffiliateCoupon{
		AffiliateProfileID: input.AffiliateID,
		CouponTemplateID:   template.ID,
		ProductID:          template.ProductID,
		CustomCode:         code,
		UsernameAtCreation: handle,
		BaseCodeAtCreation: template.Code,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		if isUniqueViolation(err) {
			return s.recoverActivateConflict(ctx, input, code)
		}
		return nil, storageError(err)
	}

	log.Infow("affiliate_coupon_activated",
		"affiliate_id", input.AffiliateID,
		"template_id", template.ID,
		"affiliate_coupon_id", coupon.ID,
		"custom_code", coupon.CustomCode,
	)
	s.events.Emit(ctx, coupon, constants.AffiliateCouponActionActivate, now)
	return coupon, nil
}

// recoverActivateConflict 唯一约束冲突：并发重复开通视为成功，优惠码被同商品其他模板占用则报错
func (s *AffiliateCouponService) recoverActivateConflict(ctx context.Context, input ActivateInput, code string) (*models.AffiliateCoupon, error) {
	existing, err := s.couponRepo.GetByAffiliateAndTemplate(input.AffiliateID, input.TemplateID)
	if err != nil {
		return nil, storageError(err)
	}
	if existing != nil {
		logger.FromContext(ctx).Infow("affiliate_coupon_activate_conflict_recovered",
			"affiliate_id", input.AffiliateID,
			"template_id", input.TemplateID,
			"affiliate_coupon_id", existing.ID,
		)
		return existing, nil
	}

	holder, err := s.couponRepo.GetByAffiliateProductCode(input.AffiliateID, input.ProductID, code)
	if err != nil {
		return nil, storageError(err)
	}
	if holder != nil {
		return nil, ErrAffiliateCouponCodeTaken
	}
	// 冲突行已被删除，调用方重试即可
	return nil, storageError(ErrAffiliateCouponConflict)
}

// Deactivate 停用推广优惠券，已停用时直接返回
func (s *AffiliateCouponService) Deactivate(ctx context.Context, affiliateID, couponID uint) (*models.AffiliateCoupon, error) {
	return s.setActive(ctx, affiliateID, couponID, false)
}

// Reactivate 重新启用推广优惠券，不再校验开通门槛
func (s *AffiliateCouponService) Reactivate(ctx context.Context, affiliateID, couponID uint) (*models.AffiliateCoupon, error) {
	return s.setActive(ctx, affiliateID, couponID, true)
}

func (s *AffiliateCouponService) setActive(ctx context.Context, affiliateID, couponID uint, active bool) (*models.AffiliateCoupon, error) {
	if affiliateID == 0 || couponID == 0 {
		return nil, ErrNotFound
	}
	coupon, err := s.couponRepo.GetByID(couponID)
	if err != nil {
		return nil, storageError(err)
	}
	if coupon == nil || coupon.AffiliateProfileID != affiliateID {
		return nil, ErrNotFound
	}
	if coupon.IsActive == active {
		return coupon, nil
	}

	now := s.now()
	affected, err := s.couponRepo.UpdateActive(coupon.ID, active, now)
	if err != nil {
		return nil, storageError(err)
	}
	if affected == 0 {
		// 读取后被并发删除
		return nil, ErrNotFound
	}
	coupon.IsActive = active
	coupon.UpdatedAt = now

	action := constants.AffiliateCouponActionDeactivate
	if active {
		action = constants.AffiliateCouponActionReactivate
	}
	s.events.Emit(ctx, coupon, action, now)
	return coupon, nil
}

// SoftDelete 软删除推广优惠券（管理端或注销账号时调用）
func (s *AffiliateCouponService) SoftDelete(ctx context.Context, couponID uint) error {
	coupon, err := s.couponRepo.GetByID(couponID)
	if err != nil {
		return storageError(err)
	}
	if coupon == nil {
		return ErrNotFound
	}
	affected, err := s.couponRepo.SoftDelete(coupon.ID)
	if err != nil {
		return storageError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	logger.FromContext(ctx).Infow("affiliate_coupon_deleted",
		"affiliate_coupon_id", coupon.ID,
		"affiliate_id", coupon.AffiliateProfileID,
	)
	s.events.Emit(ctx, coupon, constants.AffiliateCouponActionDelete, s.now())
	return nil
}

// ListForAffiliate 推广用户的未删除优惠券，新创建的在前
func (s *AffiliateCouponService) ListForAffiliate(ctx context.Context, affiliateID uint) ([]AffiliateCouponView, error) {
	coupons, err := s.couponRepo.ListByAffiliate(affiliateID)
	if err != nil {
		logger.FromContext(ctx).Errorw("affiliate_coupon_list_failed", "affiliate_id", affiliateID, "error", err)
		return nil, storageError(err)
	}
	views := make([]AffiliateCouponView, 0, len(coupons))
	for i := range coupons {
		views = append(views, buildAffiliateCouponView(&coupons[i], coupons[i].CouponTemplate.Product.LandingPageURL))
	}
	return views, nil
}

// ListForAdmin 管理端推广优惠券列表（可包含已删除记录）
func (s *AffiliateCouponService) ListForAdmin(filter repository.AffiliateCouponListFilter) ([]AffiliateCouponView, int64, error) {
	coupons, total, err := s.couponRepo.List(filter)
	if err != nil {
		return nil, 0, storageError(err)
	}
	views := make([]AffiliateCouponView, 0, len(coupons))
	for i := range coupons {
		views = append(views, buildAffiliateCouponView(&coupons[i], coupons[i].CouponTemplate.Product.LandingPageURL))
	}
	return views, total, nil
}

// ListCatalogForAffiliate 目录视图：门槛判定、已开通记录、优惠码（未开通时为预览）与推广链接
func (s *AffiliateCouponService) ListCatalogForAffiliate(ctx context.Context, affiliateID uint) ([]AffiliateCouponCatalogEntry, error) {
	profile, err := s.affiliateRepo.GetProfileByID(affiliateID)
	if err != nil {
		return nil, storageError(err)
	}
	if profile == nil {
		return nil, ErrAffiliateNotOpened
	}

	templates, err := s.catalog.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	coupons, err := s.couponRepo.ListByAffiliate(affiliateID)
	if err != nil {
		return nil, storageError(err)
	}
	byTemplate := make(map[uint]*models.AffiliateCoupon, len(coupons))
	for i := range coupons {
		byTemplate[coupons[i].CouponTemplateID] = &coupons[i]
	}

	productIDs := make([]uint, 0)
	seen := make(map[uint]struct{})
	for _, item := range templates {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}
	policies, err := s.policyRepo.ListByProductIDs(productIDs)
	if err != nil {
		return nil, storageError(err)
	}

	eligibilityByProduct := make(map[uint]EligibilityResult, len(productIDs))
	entries := make([]AffiliateCouponCatalogEntry, 0, len(templates))
	for _, item := range templates {
		eligibility, ok := eligibilityByProduct[item.ProductID]
		if !ok {
			eligibility, err = s.evaluateWithPolicy(profile, item.ProductID, policies)
			if err != nil {
				return nil, err
			}
			eligibilityByProduct[item.ProductID] = eligibility
		}

		entry := AffiliateCouponCatalogEntry{
			CatalogTemplate: item,
			Eligibility:     eligibility,
		}
		if coupon, ok := byTemplate[item.TemplateID]; ok {
			view := buildAffiliateCouponView(coupon, item.LandingPageURL)
			entry.Activation = &view
			entry.ResolvedCode = coupon.CustomCode
		} else {
			entry.CanActivate = eligibility.Eligible && strings.TrimSpace(profile.Handle) != ""
			if strings.TrimSpace(profile.Handle) != "" {
				entry.ResolvedCode = GenerateAffiliateCouponCode(profile.Handle, item.Code, item.IsPrimary)
				entry.IsPreview = true
			}
		}
		entry.Link = ComposeAffiliateCouponLink(item.LandingPageURL, entry.ResolvedCode)
		entries = append(entries, entry)
	}
	return entries, nil
}

// EvaluateEligibility 按推广用户当前套餐与成交数判定商品开通门槛
func (s *AffiliateCouponService) EvaluateEligibility(ctx context.Context, affiliateID, productID uint) (EligibilityResult, error) {
	if affiliateID == 0 || productID == 0 {
		return EligibilityResult{}, ErrAffiliateCouponValidation
	}
	result, err := s.evaluateForAffiliate(affiliateID, productID)
	if err != nil {
		logger.FromContext(ctx).Errorw("affiliate_coupon_eligibility_failed",
			"affiliate_id", affiliateID,
			"product_id", productID,
			"error", err,
		)
		return EligibilityResult{}, err
	}
	return result, nil
}

func (s *AffiliateCouponService) evaluateForAffiliate(affiliateID, productID uint) (EligibilityResult, error) {
	profile, err := s.affiliateRepo.GetProfileByID(affiliateID)
	if err != nil {
		return EligibilityResult{}, storageError(err)
	}
	policy, err := s.policyRepo.GetByProductID(productID)
	if err != nil {
		return EligibilityResult{}, storageError(err)
	}
	policies := map[uint]models.EligibilityPolicy{}
	if policy != nil {
		policies[productID] = *policy
	}
	return s.evaluateWithPolicy(profile, productID, policies)
}

func (s *AffiliateCouponService) evaluateWithPolicy(profile *models.AffiliateProfile, productID uint, policies map[uint]models.EligibilityPolicy) (EligibilityResult, error) {
	policy, ok := policies[productID]
	if !ok {
		return EvaluateAffiliateCouponEligibility(productID, nil, "", 0), nil
	}
	planName := ""
	var profileID uint
	if profile != nil {
		planName = profile.PlanName
		profileID = profile.ID
	}
	var sales int64
	if policy.MinimumCrossProductSales > 0 && profileID != 0 {
		count, err := s.affiliateRepo.CountCrossProductSales(profileID, productID, qualifyingCommissionStatuses)
		if err != nil {
			return EligibilityResult{}, storageError(err)
		}
		sales = count
	}
	return EvaluateAffiliateCouponEligibility(productID, &policy, planName, sales), nil
}

func buildAffiliateCouponView(coupon *models.AffiliateCoupon, landingPageURL string) AffiliateCouponView {
	view := AffiliateCouponView{
		ID:                 coupon.ID,
		AffiliateID:        coupon.AffiliateProfileID,
		TemplateID:         coupon.CouponTemplateID,
		TemplateName:       coupon.CouponTemplate.Name,
		ProductID:          coupon.ProductID,
		CustomCode:         coupon.CustomCode,
		UsernameAtCreation: coupon.UsernameAtCreation,
		BaseCodeAtCreation: coupon.BaseCodeAtCreation,
		IsActive:           coupon.IsActive,
		State:              AffiliateCouponState(coupon),
		CreatedAt:          coupon.CreatedAt,
		UpdatedAt:          coupon.UpdatedAt,
	}
	if coupon.DeletedAt.Valid {
		deletedAt := coupon.DeletedAt.Time
		view.DeletedAt = &deletedAt
	}
	view.Link = ComposeAffiliateCouponLink(landingPageURL, coupon.CustomCode)
	return view
}

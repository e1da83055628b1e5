package service

import (
	"context"
	"strings"

	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/repository"
)

// EligibilityPolicyService 商品开通门槛管理
type EligibilityPolicyService struct {
	repo        repository.EligibilityPolicyRepository
	productRepo repository.ProductRepository
}

// NewEligibilityPolicyService 创建门槛管理服务
func NewEligibilityPolicyService(repo repository.EligibilityPolicyRepository, productRepo repository.ProductRepository) *EligibilityPolicyService {
	return &EligibilityPolicyService{repo: repo, productRepo: productRepo}
}

// UpsertEligibilityPolicyInput 设置门槛输入
type UpsertEligibilityPolicyInput struct {
	ProductID                uint
	MinimumCrossProductSales int64
	RequiresPlanNameContains string
}

// List 门槛列表
func (s *EligibilityPolicyService) List() ([]models.EligibilityPolicy, error) {
	policies, err := s.repo.List()
	if err != nil {
		return nil, storageError(err)
	}
	return policies, nil
}

// Upsert 创建或覆盖商品门槛
func (s *EligibilityPolicyService) Upsert(ctx context.Context, input UpsertEligibilityPolicyInput) (*models.EligibilityPolicy, error) {
	if input.ProductID == 0 || input.MinimumCrossProductSales < 0 {
		return nil, ErrEligibilityPolicyInvalid
	}
	marker := strings.TrimSpace(input.RequiresPlanNameContains)
	if len(marker) > 64 {
		return nil, ErrEligibilityPolicyInvalid
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, storageError(err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	policy := &models.EligibilityPolicy{
		ProductID:                input.ProductID,
		MinimumCrossProductSales: input.MinimumCrossProductSales,
		RequiresPlanNameContains: marker,
	}
	if err := s.repo.Upsert(policy); err != nil {
		return nil, storageError(err)
	}
	saved, err := s.repo.GetByProductID(input.ProductID)
	if err != nil {
		return nil, storageError(err)
	}
	logger.FromContext(ctx).Infow("eligibility_policy_upserted",
		"product_id", input.ProductID,
		"minimum_cross_product_sales", input.MinimumCrossProductSales,
		"requires_plan_name_contains", marker,
	)
	return saved, nil
}

// Delete 删除商品门槛，删除后该商品无门槛
func (s *EligibilityPolicyService) Delete(ctx context.Context, productID uint) error {
	if productID == 0 {
		return ErrEligibilityPolicyInvalid
	}
	affected, err := s.repo.DeleteByProductID(productID)
	if err != nil {
		return storageError(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	logger.FromContext(ctx).Infow("eligibility_policy_deleted", "product_id", productID)
	return nil
}

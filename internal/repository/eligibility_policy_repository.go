package repository

import (
	"errors"
	"time"

	"github.com/affiliate-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EligibilityPolicyRepository 开通门槛数据访问接口
type EligibilityPolicyRepository interface {
	GetByProductID(productID uint) (*models.EligibilityPolicy, error)
	ListByProductIDs(productIDs []uint) (map[uint]models.EligibilityPolicy, error)
	List() ([]models.EligibilityPolicy, error)
	Upsert(policy *models.EligibilityPolicy) error
	DeleteByProductID(productID uint) (int64, error)
}

// GormEligibilityPolicyRepository GORM 实现
type GormEligibilityPolicyRepository struct {
	db *gorm.DB
}

// NewEligibilityPolicyRepository 创建开通门槛仓库
func NewEligibilityPolicyRepository(db *gorm.DB) *GormEligibilityPolicyRepository {
	return &GormEligibilityPolicyRepository{db: db}
}

// GetByProductID 获取商品的开通门槛，不存在返回 nil
func (r *GormEligibilityPolicyRepository) GetByProductID(productID uint) (*models.EligibilityPolicy, error) {
	if productID == 0 {
		return nil, nil
	}
	var policy models.EligibilityPolicy
	if err := r.db.Where("product_id = ?", productID).First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &policy, nil
}

// ListByProductIDs 批量获取，按商品ID索引
func (r *GormEligibilityPolicyRepository) ListByProductIDs(productIDs []uint) (map[uint]models.EligibilityPolicy, error) {
	result := make(map[uint]models.EligibilityPolicy, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var policies []models.EligibilityPolicy
	if err := r.db.Where("product_id IN ?", productIDs).Find(&policies).Error; err != nil {
		return nil, err
	}
	for _, policy := range policies {
		result[policy.ProductID] = policy
	}
	return result, nil
}

// List 全部开通门槛
func (r *GormEligibilityPolicyRepository) List() ([]models.EligibilityPolicy, error) {
	var policies []models.EligibilityPolicy
	if err := r.db.Order("product_id ASC").Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

// Upsert 按商品ID写入或覆盖
func (r *GormEligibilityPolicyRepository) Upsert(policy *models.EligibilityPolicy) error {
	if policy == nil {
		return nil
	}
	now := time.Now()
	if policy.CreatedAt.IsZero() {
		policy.CreatedAt = now
	}
	policy.UpdatedAt = now
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"minimum_cross_product_sales", "requires_plan_name_contains", "updated_at"}),
	}).Create(policy).Error
}

// DeleteByProductID 删除商品的开通门槛
func (r *GormEligibilityPolicyRepository) DeleteByProductID(productID uint) (int64, error) {
	if productID == 0 {
		return 0, nil
	}
	result := r.db.Where("product_id = ?", productID).Delete(&models.EligibilityPolicy{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

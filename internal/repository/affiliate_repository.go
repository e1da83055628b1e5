package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/affiliate-next/internal/models"

	"gorm.io/gorm"
)

// AffiliateRepository 推广用户与佣金数据访问接口
type AffiliateRepository interface {
	GetProfileByID(id uint) (*models.AffiliateProfile, error)
	GetProfileByUserID(userID uint) (*models.AffiliateProfile, error)
	CreateProfile(profile *models.AffiliateProfile) error
	UpdateProfileHandle(id uint, handle string, updatedAt time.Time) error

	CreateCommission(commission *models.AffiliateCommission) error
	CountCrossProductSales(profileID, excludeProductID uint, statuses []string) (int64, error)
}

// GormAffiliateRepository GORM 推广仓储
type GormAffiliateRepository struct {
	db *gorm.DB
}

// NewAffiliateRepository 创建推广仓储
func NewAffiliateRepository(db *gorm.DB) *GormAffiliateRepository {
	return &GormAffiliateRepository{db: db}
}

// GetProfileByID 按ID获取推广档案
func (r *GormAffiliateRepository) GetProfileByID(id uint) (*models.AffiliateProfile, error) {
	if id == 0 {
		return nil, nil
	}
	var profile models.AffiliateProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUserID 按用户获取推广档案
func (r *GormAffiliateRepository) GetProfileByUserID(userID uint) (*models.AffiliateProfile, error) {
	if userID == 0 {
		return nil, nil
	}
	var profile models.AffiliateProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// CreateProfile 创建推广档案
func (r *GormAffiliateRepository) CreateProfile(profile *models.AffiliateProfile) error {
	return r.db.Omit("User").Create(profile).Error
}

// UpdateProfileHandle 更新推广用户名（不影响已生成的优惠码）
func (r *GormAffiliateRepository) UpdateProfileHandle(id uint, handle string, updatedAt time.Time) error {
	if id == 0 {
		return nil
	}
	return r.db.Model(&models.AffiliateProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"handle":     strings.TrimSpace(handle),
			"updated_at": updatedAt,
		}).Error
}

// CreateCommission 写入佣金记录
func (r *GormAffiliateRepository) CreateCommission(commission *models.AffiliateCommission) error {
	return r.db.Create(commission).Error
}

// CountCrossProductSales 统计推广用户在其他商品上的有效成交数
func (r *GormAffiliateRepository) CountCrossProductSales(profileID, excludeProductID uint, statuses []string) (int64, error) {
	if profileID == 0 {
		return 0, nil
	}
	query := r.db.Model(&models.AffiliateCommission{}).
		Where("affiliate_profile_id = ?", profileID)
	if excludeProductID != 0 {
		query = query.Where("product_id <> ?", excludeProductID)
	}
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

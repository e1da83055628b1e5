package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/repository"
)

// affiliateHandlePattern 推广用户名：字母数字开头，允许 _ 与 -，最长 32 位
var affiliateHandlePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,31}$`)

// ValidAffiliateHandle 校验推广用户名格式
func ValidAffiliateHandle(handle string) bool {
	return affiliateHandlePattern.MatchString(handle)
}

// AffiliateProfileService 推广档案读取与用户名维护
// 档案的开通与套餐变更由外部系统负责
type AffiliateProfileService struct {
	repo repository.AffiliateRepository
	now  func() time.Time
}

// NewAffiliateProfileService 创建推广档案服务
func NewAffiliateProfileService(repo repository.AffiliateRepository) *AffiliateProfileService {
	return &AffiliateProfileService{repo: repo, now: time.Now}
}

// GetByUserID 获取用户的推广档案，未开通或已禁用返回 ErrAffiliateNotOpened
func (s *AffiliateProfileService) GetByUserID(userID uint) (*models.AffiliateProfile, error) {
	if userID == 0 {
		return nil, ErrAffiliateNotOpened
	}
	profile, err := s.repo.GetProfileByUserID(userID)
	if err != nil {
		return nil, storageError(err)
	}
	if profile == nil || profile.Status != constants.AffiliateProfileStatusActive {
		return nil, ErrAffiliateNotOpened
	}
	return profile, nil
}

// UpdateHandle 修改推广用户名；已生成的优惠码保持不变
func (s *AffiliateProfileService) UpdateHandle(ctx context.Context, userID uint, handle string) (*models.AffiliateProfile, error) {
	profile, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, ErrAffiliateHandleRequired
	}
	if !ValidAffiliateHandle(handle) {
		return nil, ErrAffiliateHandleInvalid
	}
	if handle == profile.Handle {
		return profile, nil
	}
	now := s.now()
	if err := s.repo.UpdateProfileHandle(profile.ID, handle, now); err != nil {
		return nil, storageError(err)
	}
	logger.FromContext(ctx).Infow("affiliate_handle_updated",
		"affiliate_id", profile.ID,
		"previous_handle", profile.Handle,
		"handle", handle,
	)
	profile.Handle = handle
	profile.UpdatedAt = now
	return profile, nil
}

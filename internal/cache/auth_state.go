package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/affiliate-next/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// 鉴权主体类型
const (
	AuthSubjectUser  = "user"
	AuthSubjectAdmin = "admin"
)

// AuthState 鉴权快照，供 JWT 中间件校验 token 是否被吊销
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
type AuthState struct {
	Subject            string `json:"subject"`
	ID                 uint   `json:"id"`
	Status             string `json:"status,omitempty"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	IsSuper            bool   `json:"is_super,omitempty"`
}

func authStateKey(subject string, id uint) string {
	return fmt.Sprintf("auth:%s:%d", subject, id)
}

// BuildUserAuthState 从用户模型构建鉴权快照
func BuildUserAuthState(user *models.User) *AuthState {
	if user == nil {
		return nil
	}
	state := &AuthState{
		Subject:      AuthSubjectUser,
		ID:           user.ID,
		Status:       user.Status,
		TokenVersion: user.TokenVersion,
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// BuildAdminAuthState 从管理员模型构建鉴权快照
func BuildAdminAuthState(admin *models.Admin) *AuthState {
	if admin == nil {
		return nil
	}
	state := &AuthState{
		Subject:      AuthSubjectAdmin,
		ID:           admin.ID,
		TokenVersion: admin.TokenVersion,
		IsSuper:      admin.IsSuper,
	}
	if admin.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = admin.TokenInvalidBefore.Unix()
	}
	return state
}

// GetAuthState 获取鉴权快照
func (s *Store) GetAuthState(ctx context.Context, subject string, id uint) (*AuthState, bool, error) {
	if id == 0 {
		return nil, false, nil
	}
	var state AuthState
	hit, err := s.GetJSON(ctx, authStateKey(subject, id), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAuthState 写入鉴权快照
func (s *Store) SetAuthState(ctx context.Context, state *AuthState) error {
	if state == nil || state.ID == 0 {
		return nil
	}
	return s.SetJSON(ctx, authStateKey(state.Subject, state.ID), state, authStateCacheTTL)
}

// DelAuthState 删除鉴权快照
func (s *Store) DelAuthState(ctx context.Context, subject string, id uint) error {
	if id == 0 {
		return nil
	}
	return s.Del(ctx, authStateKey(subject, id))
}

// Revoked 判断 token 是否已失效
func (a *AuthState) Revoked(tokenVersion uint64, issuedAt time.Time) bool {
	if a == nil {
		return false
	}
	if tokenVersion != a.TokenVersion {
		return true
	}
	if a.TokenInvalidBefore > 0 && !issuedAt.IsZero() && issuedAt.Unix() < a.TokenInvalidBefore {
		return true
	}
	return false
}

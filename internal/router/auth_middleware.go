package router

import (
	"strings"
	"time"

	"github.com/affiliate-next/internal/authz"
	"github.com/affiliate-next/internal/cache"
	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/i18n"
	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/repository"
	"github.com/affiliate-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const adminIsSuperContextKey = "admin_is_super"

// authStateLoader 缓存未命中时从数据库构建鉴权快照，主体不存在返回 nil
type authStateLoader func() (*cache.AuthState, error)

// resolveAuthState 读取鉴权快照（先缓存后数据库）并校验吊销，失败时返回错误键
func resolveAuthState(c *gin.Context, store *cache.Store, subject string, id uint, tokenVersion uint64, issuedAt *jwt.NumericDate, load authStateLoader) (*cache.AuthState, string) {
	ctx := c.Request.Context()
	state, hit, err := store.GetAuthState(ctx, subject, id)
	if err != nil || !hit || state == nil {
		state, err = load()
		if err != nil || state == nil {
			return nil, "error.token_invalid"
		}
		if err := store.SetAuthState(ctx, state); err != nil {
			logger.Debugw("auth_state_cache_set_failed", "subject", subject, "id", id, "error", err)
		}
	}
	if subject == cache.AuthSubjectUser && !strings.EqualFold(strings.TrimSpace(state.Status), constants.UserStatusActive) {
		return nil, "error.user_disabled"
	}
	iat := time.Time{}
	if issuedAt != nil {
		iat = issuedAt.Time
	}
	if state.Revoked(tokenVersion, iat) {
		return nil, "error.token_revoked"
	}
	return state, ""
}

// JWTAuthMiddleware 管理员 JWT 鉴权
func JWTAuthMiddleware(secretKey string, adminRepo repository.AdminRepository, store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		tokenString, key := bearerToken(c)
		if key != "" {
			abortUnauthorized(c, key)
			return
		}
		claims, err := service.ParseAdminToken(secretKey, tokenString)
		if err != nil || claims.AdminID == 0 || adminRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		state, key := resolveAuthState(c, store, cache.AuthSubjectAdmin, claims.AdminID, claims.TokenVersion, claims.IssuedAt, func() (*cache.AuthState, error) {
			admin, err := adminRepo.GetByID(claims.AdminID)
			if err != nil {
				return nil, err
			}
			return cache.BuildAdminAuthState(admin), nil
		})
		if key != "" {
			abortUnauthorized(c, key)
			return
		}
		c.Set("admin_id", claims.AdminID)
		c.Set("username", claims.Username)
		c.Set(adminIsSuperContextKey, state.IsSuper)
		c.Next()
	}
}

// UserJWTAuthMiddleware 推广用户 JWT 鉴权，已禁用用户直接拒绝
func UserJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository, store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		tokenString, key := bearerToken(c)
		if key != "" {
			abortUnauthorized(c, key)
			return
		}
		claims, err := service.ParseUserToken(secretKey, tokenString)
		if err != nil || claims.UserID == 0 || userRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		_, key = resolveAuthState(c, store, cache.AuthSubjectUser, claims.UserID, claims.TokenVersion, claims.IssuedAt, func() (*cache.AuthState, error) {
			user, err := userRepo.GetByID(claims.UserID)
			if err != nil {
				return nil, err
			}
			return cache.BuildUserAuthState(user), nil
		})
		if key != "" {
			abortUnauthorized(c, key)
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// AdminRBACMiddleware 管理端 RBAC，超级管理员跳过策略判定
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if c.GetBool(adminIsSuperContextKey) {
			c.Next()
			return
		}
		adminID := c.GetUint("admin_id")
		if adminID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceAdmin(adminID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerToken 提取 Bearer token，失败时返回对应错误键
func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "error.auth_header_missing"
	}
	scheme, token, found := strings.Cut(authHeader, " ")
	token = strings.TrimSpace(token)
	if !found || scheme != "Bearer" || token == "" {
		return "", "error.auth_header_invalid"
	}
	return token, ""
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/affiliate-next/internal/authz"
	"github.com/affiliate-next/internal/config"
	adminhandlers "github.com/affiliate-next/internal/http/handlers/admin"
	publichandlers "github.com/affiliate-next/internal/http/handlers/public"
	handlershared "github.com/affiliate-next/internal/http/handlers/shared"
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions(""))
	}
	handlershared.RegisterBindingValidators()
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "aff"
	}
	activateRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:coupon_activate", redisPrefix),
		WindowSeconds: cfg.Security.ActivationRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ActivationRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.ActivationRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
		}

		// 推广用户接口（需鉴权）
		affiliate := apiV1.Group("/affiliate")
		affiliate.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo, c.Cache))
		{
			affiliate.GET("/profile", publicHandler.GetAffiliateProfile)
			affiliate.PUT("/profile/handle", publicHandler.UpdateAffiliateHandle)
			affiliate.GET("/coupon-catalog", publicHandler.GetAffiliateCouponCatalog)
			affiliate.GET("/coupons", publicHandler.ListAffiliateCoupons)
			affiliate.GET("/coupons/eligibility", publicHandler.GetAffiliateCouponEligibility)
			affiliate.POST("/coupons", RateLimitMiddleware(c.Cache.Client(), activateRule, KeyByUserID), publicHandler.ActivateAffiliateCoupon)
			affiliate.POST("/coupons/:id/deactivate", publicHandler.DeactivateAffiliateCoupon)
			affiliate.POST("/coupons/:id/reactivate", publicHandler.ReactivateAffiliateCoupon)
		}

		// 管理员接口（登录由外部认证服务处理）
		admin := apiV1.Group("/admin")
		{
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo, c.Cache), AdminRBACMiddleware(c.AuthzService))
			{
				// 商品
				authorized.GET("/products", adminHandler.GetProducts)

				// 优惠券模板
				authorized.GET("/coupon-templates", adminHandler.GetCouponTemplates)
				authorized.POST("/coupon-templates", adminHandler.CreateCouponTemplate)
				authorized.PUT("/coupon-templates/:id", adminHandler.UpdateCouponTemplate)

				// 开通门槛
				authorized.GET("/eligibility-policies", adminHandler.GetEligibilityPolicies)
				authorized.PUT("/eligibility-policies/:product_id", adminHandler.PutEligibilityPolicy)
				authorized.DELETE("/eligibility-policies/:product_id", adminHandler.DeleteEligibilityPolicy)

				// 推广优惠券
				authorized.GET("/affiliate-coupons", adminHandler.GetAffiliateCoupons)
				authorized.DELETE("/affiliate-coupons/:id", adminHandler.DeleteAffiliateCoupon)
				authorized.GET("/affiliate-coupon-events", adminHandler.GetAffiliateCouponEvents)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.GetAuthzRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.GET("/admins", adminHandler.GetAdmins)
				authorized.PUT("/admins/:id/roles", adminHandler.SetAdminRoles)
			}
		}
	}

	// 健康检查
	r.GET("/health", publicHandler.Health)

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}

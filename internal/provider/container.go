package provider

import (
	"fmt"
	"time"

	"github.com/affiliate-next/internal/authz"
	"github.com/affiliate-next/internal/cache"
	"github.com/affiliate-next/internal/config"
	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/queue"
	"github.com/affiliate-next/internal/repository"
	"github.com/affiliate-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Cache       *cache.Store

	// Repositories
	AdminRepo                repository.AdminRepository
	UserRepo                 repository.UserRepository
	ProductRepo              repository.ProductRepository
	CouponTemplateRepo       repository.CouponTemplateRepository
	AffiliateRepo            repository.AffiliateRepository
	AffiliateCouponRepo      repository.AffiliateCouponRepository
	AffiliateCouponEventRepo repository.AffiliateCouponEventRepository
	EligibilityPolicyRepo    repository.EligibilityPolicyRepository

	// Services
	AuthzService                *authz.Service
	AffiliateProfileService     *service.AffiliateProfileService
	AffiliateCouponCatalog      *service.AffiliateCouponCatalogService
	AffiliateCouponEventService *service.AffiliateCouponEventService
	AffiliateCouponService      *service.AffiliateCouponService
	CouponTemplateAdminService  *service.CouponTemplateAdminService
	EligibilityPolicyService    *service.EligibilityPolicyService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c, err := Build(cfg, models.DB, cache.Default(), queueClient)
	if err != nil {
		logger.Errorw("provider_init_services_failed", "error", err)
		panic(err)
	}
	return c
}

// Build 基于给定的数据库与缓存组装容器（测试可直接注入内存实现）
func Build(cfg *config.Config, db *gorm.DB, store *cache.Store, queueClient *queue.Client) (*Container, error) {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Cache:       store,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CouponTemplateRepo = repository.NewCouponTemplateRepository(db)
	c.AffiliateRepo = repository.NewAffiliateRepository(db)
	c.AffiliateCouponRepo = repository.NewAffiliateCouponRepository(db)
	c.AffiliateCouponEventRepo = repository.NewAffiliateCouponEventRepository(db)
	c.EligibilityPolicyRepo = repository.NewEligibilityPolicyRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		return fmt.Errorf("init authz: %w", err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		return fmt.Errorf("bootstrap builtin roles: %w", err)
	}

	catalogTTL := time.Duration(c.Config.Coupon.CatalogCacheTTLSeconds) * time.Second
	c.AffiliateCouponCatalog = service.NewAffiliateCouponCatalogService(c.CouponTemplateRepo, c.Cache, catalogTTL)
	c.AffiliateCouponEventService = service.NewAffiliateCouponEventService(c.AffiliateCouponEventRepo, c.QueueClient)
	c.AffiliateProfileService = service.NewAffiliateProfileService(c.AffiliateRepo)
	c.AffiliateCouponService = service.NewAffiliateCouponService(
		c.AffiliateCouponRepo,
		c.CouponTemplateRepo,
		c.EligibilityPolicyRepo,
		c.AffiliateRepo,
		c.AffiliateCouponCatalog,
		c.AffiliateCouponEventService,
	)
	c.CouponTemplateAdminService = service.NewCouponTemplateAdminService(c.CouponTemplateRepo, c.ProductRepo, c.AffiliateCouponCatalog)
	c.EligibilityPolicyService = service.NewEligibilityPolicyService(c.EligibilityPolicyRepo, c.ProductRepo)
	return nil
}

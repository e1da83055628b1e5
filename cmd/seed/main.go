package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/affiliate-next/internal/config"
	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const devTokenTTL = 24 * time.Hour

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions(""))
	log := logger.S()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		log.Fatalw("seed_database_connect_failed", "error", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		log.Fatalw("seed_database_migrate_failed", "error", err)
	}

	// 添加商品
	products := []models.Product{
		{Slug: "vpn-pro", Name: "VPN Pro", LandingPageURL: "https://shop.example.com/vpn-pro", IsActive: true},
		{Slug: "cloud-backup", Name: "Cloud Backup", LandingPageURL: "https://shop.example.com/cloud-backup", IsActive: true},
		{Slug: "password-vault", Name: "Password Vault", LandingPageURL: "", IsActive: true},
	}
	productIDs := map[string]uint{}
	for i := range products {
		product := products[i]
		var existing models.Product
		err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error
		switch {
		case err == nil:
			log.Infow("seed_product_exists", "slug", product.Slug)
			productIDs[product.Slug] = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := models.DB.Create(&product).Error; err != nil {
				log.Fatalw("seed_product_create_failed", "slug", product.Slug, "error", err)
			}
			log.Infow("seed_product_created", "slug", product.Slug, "product_id", product.ID)
			productIDs[product.Slug] = product.ID
		default:
			log.Fatalw("seed_product_lookup_failed", "slug", product.Slug, "error", err)
		}
	}

	// 添加优惠券模板
	templates := []models.CouponTemplate{
		{ProductID: productIDs["vpn-pro"], Code: "", Name: "VPN Pro 主推券", Kind: constants.CouponTemplateKindPercentage, Value: money(15), IsPrimary: true},
		{ProductID: productIDs["vpn-pro"], Code: "TRIAL7", Name: "VPN Pro 7 天试用", Kind: constants.CouponTemplateKindFreeTrialDays, Value: money(7)},
		{ProductID: productIDs["cloud-backup"], Code: "SAVE20", Name: "Cloud Backup 八折", Kind: constants.CouponTemplateKindPercentage, Value: money(20)},
		{ProductID: productIDs["password-vault"], Code: "EXTRA30", Name: "Password Vault 加赠 30 天", Kind: constants.CouponTemplateKindFixedDays, Value: money(30)},
	}
	for i := range templates {
		template := templates[i]
		var existing models.CouponTemplate
		err := models.DB.Where("product_id = ? AND name = ?", template.ProductID, template.Name).First(&existing).Error
		if err == nil {
			log.Infow("seed_template_exists", "name", template.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalw("seed_template_lookup_failed", "name", template.Name, "error", err)
		}
		if err := models.DB.Create(&template).Error; err != nil {
			log.Fatalw("seed_template_create_failed", "name", template.Name, "error", err)
		}
		log.Infow("seed_template_created", "name", template.Name, "template_id", template.ID)
	}

	// 开通门槛：Cloud Backup 需 GOLD 套餐且其他商品成交 2 单
	policy := models.EligibilityPolicy{
		ProductID:                productIDs["cloud-backup"],
		MinimumCrossProductSales: 2,
		RequiresPlanNameContains: "GOLD",
	}
	if err := models.DB.Where("product_id = ?", policy.ProductID).FirstOrCreate(&policy).Error; err != nil {
		log.Fatalw("seed_policy_create_failed", "error", err)
	}

	// 推广用户与佣金记录
	user := models.User{Email: "affiliate@example.com", DisplayName: "Demo Affiliate", Status: constants.UserStatusActive}
	if err := models.DB.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
		log.Fatalw("seed_user_create_failed", "error", err)
	}
	profile := models.AffiliateProfile{UserID: user.ID, Handle: "demo", PlanName: "Gold Monthly", Status: constants.AffiliateProfileStatusActive}
	if err := models.DB.Where("user_id = ?", user.ID).FirstOrCreate(&profile).Error; err != nil {
		log.Fatalw("seed_affiliate_create_failed", "error", err)
	}
	seedCommissions(log, profile.ID, productIDs["vpn-pro"])

	// 超级管理员
	if err := models.InitDefaultAdmin("admin"); err != nil {
		log.Fatalw("seed_admin_create_failed", "error", err)
	}
	var admin models.Admin
	if err := models.DB.Where("username = ?", "admin").First(&admin).Error; err != nil {
		log.Fatalw("seed_admin_lookup_failed", "error", err)
	}

	// 开发环境 Token（线上由认证服务签发）
	userToken, _, err := service.SignUserToken(cfg.UserJWT.SecretKey, &user, devTokenTTL)
	if err != nil {
		log.Fatalw("seed_user_token_failed", "error", err)
	}
	adminToken, _, err := service.SignAdminToken(cfg.JWT.SecretKey, &admin, devTokenTTL)
	if err != nil {
		log.Fatalw("seed_admin_token_failed", "error", err)
	}
	fmt.Printf("affiliate token: %s\n", userToken)
	fmt.Printf("admin token:     %s\n", adminToken)
	log.Infow("seed_completed", "affiliate_profile_id", profile.ID, "admin_id", admin.ID)
}

// seedCommissions 写入已结算佣金，使推广用户满足跨商品成交门槛
func seedCommissions(log *zap.SugaredLogger, affiliateID, productID uint) {
	var count int64
	if err := models.DB.Model(&models.AffiliateCommission{}).Where("affiliate_profile_id = ?", affiliateID).Count(&count).Error; err != nil {
		log.Fatalw("seed_commission_count_failed", "error", err)
	}
	if count > 0 {
		log.Infow("seed_commissions_exist", "count", count)
		return
	}
	statuses := []string{
		constants.AffiliateCommissionStatusAvailable,
		constants.AffiliateCommissionStatusPaid,
		constants.AffiliateCommissionStatusPendingConfirm,
	}
	for i, status := range statuses {
		commission := models.AffiliateCommission{
			AffiliateProfileID: affiliateID,
			ProductID:          productID,
			OrderNo:            fmt.Sprintf("SEED-%03d", i+1),
			CommissionAmount:   money(9.9),
			Status:             status,
		}
		if err := models.DB.Create(&commission).Error; err != nil {
			log.Fatalw("seed_commission_create_failed", "order_no", commission.OrderNo, "error", err)
		}
	}
	log.Infow("seed_commissions_created", "count", len(statuses))
}

func money(value float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(value))
}

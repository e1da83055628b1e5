//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.AffiliateCouponEvent{},
		&models.AffiliateCoupon{},
		&models.AffiliateCommission{},
		&models.EligibilityPolicy{},
		&models.CouponTemplate{},
		&models.Product{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Product{},
		&models.CouponTemplate{},
		&models.EligibilityPolicy{},
		&models.AffiliateCommission{},
		&models.AffiliateCoupon{},
		&models.AffiliateCouponEvent{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresAffiliateCouponPartialUniqueIndexes(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	product := &models.Product{Slug: "pg-vpn", Name: "PG VPN", IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	first := &models.CouponTemplate{ProductID: product.ID, Code: "SAVE", Name: "Save", Kind: constants.CouponTemplateKindPercentage, Value: models.NewMoneyFromInt(10)}
	second := &models.CouponTemplate{ProductID: product.ID, Code: "", Name: "Primary", Kind: constants.CouponTemplateKindPercentage, IsPrimary: true, Value: models.NewMoneyFromInt(5)}
	for _, tpl := range []*models.CouponTemplate{first, second} {
		if err := db.Create(tpl).Error; err != nil {
			t.Fatalf("create template failed: %v", err)
		}
	}

	repo := NewAffiliateCouponRepository(db)
	coupon := &models.AffiliateCoupon{AffiliateProfileID: 7, CouponTemplateID: first.ID, ProductID: product.ID, CustomCode: "ALICESAVE", IsActive: true}
	if err := repo.Create(coupon); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	dupTemplate := &models.AffiliateCoupon{AffiliateProfileID: 7, CouponTemplateID: first.ID, ProductID: product.ID, CustomCode: "OTHER", IsActive: true}
	if err := repo.Create(dupTemplate); err == nil {
		t.Fatalf("duplicate (affiliate, template) should violate unique index")
	}
	dupCode := &models.AffiliateCoupon{AffiliateProfileID: 7, CouponTemplateID: second.ID, ProductID: product.ID, CustomCode: "ALICESAVE", IsActive: true}
	if err := repo.Create(dupCode); err == nil {
		t.Fatalf("duplicate (affiliate, product, code) should violate unique index")
	}

	if affected, err := repo.SoftDelete(coupon.ID); err != nil || affected != 1 {
		t.Fatalf("soft delete failed: affected=%d err=%v", affected, err)
	}
	again := &models.AffiliateCoupon{AffiliateProfileID: 7, CouponTemplateID: first.ID, ProductID: product.ID, CustomCode: "ALICESAVE", IsActive: true}
	if err := repo.Create(again); err != nil {
		t.Fatalf("create after soft delete should succeed: %v", err)
	}
}

func TestPostgresCouponTemplateSearchAndSalesCount(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	product := &models.Product{Slug: "pg-backup", Name: "PG Backup", IsActive: true}
	other := &models.Product{Slug: "pg-vault", Name: "PG Vault", IsActive: true}
	for _, p := range []*models.Product{product, other} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}
	templateRepo := NewCouponTemplateRepository(db)
	if err := templateRepo.Create(&models.CouponTemplate{ProductID: product.ID, Code: "Spring20", Name: "Spring Sale", Kind: constants.CouponTemplateKindPercentage, Value: models.NewMoneyFromInt(20)}); err != nil {
		t.Fatalf("create template failed: %v", err)
	}
	rows, total, err := templateRepo.List(CouponTemplateListFilter{Page: 1, PageSize: 20, Search: "spring"})
	if err != nil {
		t.Fatalf("search templates failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("case-insensitive search want 1 got total=%d len=%d", total, len(rows))
	}

	now := time.Now()
	commissions := []models.AffiliateCommission{
		{AffiliateProfileID: 3, ProductID: other.ID, OrderNo: "PG-1", Status: constants.AffiliateCommissionStatusAvailable, CreatedAt: now},
		{AffiliateProfileID: 3, ProductID: other.ID, OrderNo: "PG-2", Status: constants.AffiliateCommissionStatusPaid, CreatedAt: now},
		{AffiliateProfileID: 3, ProductID: other.ID, OrderNo: "PG-3", Status: constants.AffiliateCommissionStatusRejected, CreatedAt: now},
		{AffiliateProfileID: 3, ProductID: product.ID, OrderNo: "PG-4", Status: constants.AffiliateCommissionStatusPaid, CreatedAt: now},
	}
	if err := db.Create(&commissions).Error; err != nil {
		t.Fatalf("create commissions failed: %v", err)
	}
	count, err := NewAffiliateRepository(db).CountCrossProductSales(3, product.ID, []string{
		constants.AffiliateCommissionStatusAvailable,
		constants.AffiliateCommissionStatusPaid,
	})
	if err != nil {
		t.Fatalf("count sales failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("cross product sales want 2 got %d", count)
	}
}

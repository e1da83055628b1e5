package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/repository"

	"github.com/shopspring/decimal"
)

func TestCouponTemplateAdminCreateAndRetire(t *testing.T) {
	env := setupAffiliateCouponServiceTest(t)
	product := env.product(t, "vpn", "")
	cache := newFakeCatalogCache()
	catalog := NewAffiliateCouponCatalogService(repository.NewCouponTemplateRepository(env.db), cache, time.Minute)
	svc := NewCouponTemplateAdminService(repository.NewCouponTemplateRepository(env.db), repository.NewProductRepository(env.db), catalog)

	if _, err := catalog.ListTemplates(context.Background()); err != nil {
		t.Fatalf("warm catalog failed: %v", err)
	}
	created, err := svc.Create(context.Background(), CouponTemplateInput{
		ProductID: product.ID,
		Code:      " welcome10 ",
		Name:      "Welcome",
		Kind:      "PERCENTAGE",
		Value:     models.NewMoneyFromInt(10),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Code != "welcome10" || created.Kind != constants.CouponTemplateKindPercentage || !created.IsActive {
		t.Fatalf("unexpected template: %+v", created)
	}
	if _, ok := cache.items[constants.CacheKeyCouponCatalog]; ok {
		t.Fatalf("expected catalog invalidated after create")
	}

	inactive := false
	retired, err := svc.Update(context.Background(), created.ID, CouponTemplateInput{
		ProductID: product.ID,
		Code:      created.Code,
		Name:      created.Name,
		Kind:      created.Kind,
		Value:     created.Value,
		IsActive:  &inactive,
	})
	if err != nil || retired.IsActive {
		t.Fatalf("retire failed: %+v %v", retired, err)
	}

	draft, err := svc.Create(context.Background(), CouponTemplateInput{
		ProductID: product.ID,
		Name:      "Primary",
		Kind:      constants.CouponTemplateKindFreeTrialDays,
		Value:     models.NewMoneyFromInt(7),
		IsPrimary: true,
		IsActive:  &inactive,
	})
	if err != nil {
		t.Fatalf("create inactive primary failed: %v", err)
	}
	if draft.IsActive {
		t.Fatalf("expected inactive template persisted")
	}
}

func TestCouponTemplateAdminValidation(t *testing.T) {
	env := setupAffiliateCouponServiceTest(t)
	product := env.product(t, "vpn", "")
	svc := NewCouponTemplateAdminService(repository.NewCouponTemplateRepository(env.db), repository.NewProductRepository(env.db), env.catalog)
	ten := models.NewMoneyFromInt(10)

	cases := []struct {
		name  string
		input CouponTemplateInput
		want  error
	}{
		{name: "missing code", input: CouponTemplateInput{ProductID: product.ID, Name: "x", Kind: constants.CouponTemplateKindPercentage, Value: ten}, want: ErrCouponTemplateInvalid},
		{name: "unknown kind", input: CouponTemplateInput{ProductID: product.ID, Code: "A", Name: "x", Kind: "bogus", Value: ten}, want: ErrCouponTemplateInvalid},
		{name: "percentage above 100", input: CouponTemplateInput{ProductID: product.ID, Code: "A", Name: "x", Kind: constants.CouponTemplateKindPercentage, Value: models.NewMoneyFromInt(120)}, want: ErrCouponTemplateInvalid},
		{name: "fractional days", input: CouponTemplateInput{ProductID: product.ID, Code: "A", Name: "x", Kind: constants.CouponTemplateKindFixedDays, Value: models.NewMoneyFromDecimal(decimal.RequireFromString("1.5"))}, want: ErrCouponTemplateInvalid},
		{name: "unknown product", input: CouponTemplateInput{ProductID: 999, Code: "A", Name: "x", Kind: constants.CouponTemplateKindPercentage, Value: ten}, want: ErrProductNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if _, err := svc.Update(context.Background(), 999, CouponTemplateInput{}); !errors.Is(err, ErrCouponTemplateNotFound) {
		t.Fatalf("expected template not found, got %v", err)
	}
}

func TestEligibilityPolicyServiceUpsertAndDelete(t *testing.T) {
	env := setupAffiliateCouponServiceTest(t)
	product := env.product(t, "vpn", "")
	svc := NewEligibilityPolicyService(repository.NewEligibilityPolicyRepository(env.db), repository.NewProductRepository(env.db))

	if _, err := svc.Upsert(context.Background(), UpsertEligibilityPolicyInput{ProductID: product.ID, MinimumCrossProductSales: -1}); !errors.Is(err, ErrEligibilityPolicyInvalid) {
		t.Fatalf("expected invalid policy, got %v", err)
	}
	if _, err := svc.Upsert(context.Background(), UpsertEligibilityPolicyInput{ProductID: 999}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}

	if _, err := svc.Upsert(context.Background(), UpsertEligibilityPolicyInput{ProductID: product.ID, MinimumCrossProductSales: 3}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	updated, err := svc.Upsert(context.Background(), UpsertEligibilityPolicyInput{ProductID: product.ID, MinimumCrossProductSales: 1, RequiresPlanNameContains: " pro "})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if updated.MinimumCrossProductSales != 1 || updated.RequiresPlanNameContains != "pro" {
		t.Fatalf("unexpected policy: %+v", updated)
	}
	policies, err := svc.List()
	if err != nil || len(policies) != 1 {
		t.Fatalf("expected single policy, got %d %v", len(policies), err)
	}

	if err := svc.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on repeated delete, got %v", err)
	}
}

func TestAffiliateProfileServiceUpdateHandle(t *testing.T) {
	env := setupAffiliateCouponServiceTest(t)
	profile := env.affiliate(t, "bob@example.com", "bob", "")

	if _, err := env.profiles.UpdateHandle(context.Background(), profile.UserID, "bad handle!"); !errors.Is(err, ErrAffiliateHandleInvalid) {
		t.Fatalf("expected invalid handle, got %v", err)
	}
	if _, err := env.profiles.UpdateHandle(context.Background(), profile.UserID, " "); !errors.Is(err, ErrAffiliateHandleRequired) {
		t.Fatalf("expected handle required, got %v", err)
	}
	updated, err := env.profiles.UpdateHandle(context.Background(), profile.UserID, "robert_01")
	if err != nil || updated.Handle != "robert_01" {
		t.Fatalf("update failed: %+v %v", updated, err)
	}

	if err := env.db.Model(profile).Update("status", constants.AffiliateProfileStatusDisabled).Error; err != nil {
		t.Fatalf("disable profile failed: %v", err)
	}
	if _, err := env.profiles.GetByUserID(profile.UserID); !errors.Is(err, ErrAffiliateNotOpened) {
		t.Fatalf("expected not opened for disabled profile, got %v", err)
	}
}

func TestAuthTokensRoundTrip(t *testing.T) {
	user := &models.User{ID: 7, Email: "bob@example.com", TokenVersion: 2}
	token, _, err := SignUserToken("secret", user, time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	claims, err := ParseUserToken("secret", token)
	if err != nil || claims.UserID != 7 || claims.TokenVersion != 2 {
		t.Fatalf("unexpected claims: %+v %v", claims, err)
	}
	if _, err := ParseUserToken("other", token); err == nil {
		t.Fatalf("expected signature mismatch")
	}
	if _, _, err := SignAdminToken("", &models.Admin{ID: 1}, time.Hour); err == nil {
		t.Fatalf("expected empty secret rejected")
	}
}

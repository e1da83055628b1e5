package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/affiliate-next/internal/cache"
	"github.com/affiliate-next/internal/config"
	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/provider"
	"github.com/affiliate-next/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	testAdminSecret = "admin-secret"
	testUserSecret  = "user-secret"
)

type routerTestEnv struct {
	db        *gorm.DB
	engine    *gin.Engine
	container *provider.Container
	mr        *miniredis.Miniredis
	userToken string
	product   *models.Product
	template  *models.CouponTemplate
}

type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupRouterTest(t *testing.T, rateLimit config.RateLimitConfig) *routerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.SecretKey = testAdminSecret
	cfg.UserJWT.SecretKey = testUserSecret
	cfg.Redis.Prefix = "test"
	cfg.Security.ActivationRateLimit = rateLimit
	cfg.Coupon.CatalogCacheTTLSeconds = 60

	container, err := provider.Build(cfg, db, cache.NewStore(client, "test"), nil)
	if err != nil {
		t.Fatalf("build container failed: %v", err)
	}

	user := &models.User{Email: "alice@example.com", Status: constants.UserStatusActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	profile := &models.AffiliateProfile{UserID: user.ID, Handle: "alice", Status: constants.AffiliateProfileStatusActive}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile failed: %v", err)
	}
	product := &models.Product{Slug: "pro", Name: "Pro", LandingPageURL: "https://shop.example.com/pro/", IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	template := &models.CouponTemplate{
		ProductID: product.ID,
		Code:      "save 10",
		Name:      "Save 10",
		Kind:      constants.CouponTemplateKindPercentage,
		Value:     models.NewMoneyFromInt(10),
		IsActive:  true,
	}
	if err := db.Create(template).Error; err != nil {
		t.Fatalf("create template failed: %v", err)
	}

	token, _, err := service.SignUserToken(testUserSecret, user, time.Hour)
	if err != nil {
		t.Fatalf("sign user token failed: %v", err)
	}

	return &routerTestEnv{
		db:        db,
		engine:    SetupRouter(cfg, container),
		container: container,
		mr:        mr,
		userToken: token,
		product:   product,
		template:  template,
	}
}

func (env *routerTestEnv) do(t *testing.T, method, path, token string, body interface{}) apiResponse {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func (env *routerTestEnv) adminToken(t *testing.T, username string, roles ...string) string {
	t.Helper()
	admin := &models.Admin{Username: username}
	if err := env.db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if len(roles) > 0 {
		if err := env.container.AuthzService.SetAdminRoles(admin.ID, roles); err != nil {
			t.Fatalf("set admin roles failed: %v", err)
		}
	}
	token, _, err := service.SignAdminToken(testAdminSecret, admin, time.Hour)
	if err != nil {
		t.Fatalf("sign admin token failed: %v", err)
	}
	return token
}

func TestAffiliateCatalogPreviewThenActivate(t *testing.T) {
	env := setupRouterTest(t, config.RateLimitConfig{})

	resp := env.do(t, http.MethodGet, "/api/v1/affiliate/coupon-catalog", env.userToken, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("catalog status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var entries []struct {
		TemplateID   uint   `json:"template_id"`
		ResolvedCode string `json:"resolved_code"`
		IsPreview    bool   `json:"is_preview"`
		CanActivate  bool   `json:"can_activate"`
		Link         string `json:"link"`
	}
	if err := json.Unmarshal(resp.Data, &entries); err != nil {
		t.Fatalf("decode catalog failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("catalog entries want 1 got %d", len(entries))
	}
	if !entries[0].IsPreview || !entries[0].CanActivate || entries[0].ResolvedCode != "ALICESAVE10" {
		t.Fatalf("unexpected catalog entry: %+v", entries[0])
	}
	if entries[0].Link != "https://shop.example.com/pro/ALICESAVE10" {
		t.Fatalf("unexpected preview link: %s", entries[0].Link)
	}

	body := gin.H{"template_id": env.template.ID, "product_id": env.product.ID}
	first := env.do(t, http.MethodPost, "/api/v1/affiliate/coupons", env.userToken, body)
	if first.StatusCode != 0 {
		t.Fatalf("activate status_code want 0 got %d msg=%s", first.StatusCode, first.Msg)
	}
	var created struct {
		ID         uint   `json:"id"`
		CustomCode string `json:"custom_code"`
		State      string `json:"state"`
	}
	if err := json.Unmarshal(first.Data, &created); err != nil {
		t.Fatalf("decode activation failed: %v", err)
	}
	if created.CustomCode != "ALICESAVE10" || created.State != constants.AffiliateCouponStateActive {
		t.Fatalf("unexpected activation: %+v", created)
	}

	second := env.do(t, http.MethodPost, "/api/v1/affiliate/coupons", env.userToken, body)
	var again struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(second.Data, &again); err != nil {
		t.Fatalf("decode second activation failed: %v", err)
	}
	if second.StatusCode != 0 || again.ID != created.ID {
		t.Fatalf("repeat activation should return the same row, got status=%d id=%d", second.StatusCode, again.ID)
	}

	var count int64
	env.db.Model(&models.AffiliateCoupon{}).Count(&count)
	if count != 1 {
		t.Fatalf("activation rows want 1 got %d", count)
	}
}

func TestAffiliateActivateIneligibleReturnsUnmetRequirements(t *testing.T) {
	env := setupRouterTest(t, config.RateLimitConfig{})
	policy := &models.EligibilityPolicy{ProductID: env.product.ID, MinimumCrossProductSales: 2, RequiresPlanNameContains: "gold"}
	if err := env.db.Create(policy).Error; err != nil {
		t.Fatalf("create policy failed: %v", err)
	}

	resp := env.do(t, http.MethodPost, "/api/v1/affiliate/coupons", env.userToken, gin.H{
		"template_id": env.template.ID,
		"product_id":  env.product.ID,
	})
	if resp.StatusCode != 422 {
		t.Fatalf("status_code want 422 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var data struct {
		ProductID uint     `json:"product_id"`
		Unmet     []string `json:"unmet_requirements"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
	if data.ProductID != env.product.ID || len(data.Unmet) != 2 {
		t.Fatalf("unexpected unmet data: %+v", data)
	}
}

func TestAffiliateCouponEligibilityEndpoint(t *testing.T) {
	env := setupRouterTest(t, config.RateLimitConfig{})
	path := fmt.Sprintf("/api/v1/affiliate/coupons/eligibility?product_id=%d", env.product.ID)

	resp := env.do(t, http.MethodGet, path, env.userToken, nil)
	var result struct {
		ProductID uint     `json:"product_id"`
		Eligible  bool     `json:"eligible"`
		Unmet     []string `json:"unmet_requirements"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("decode eligibility failed: %v", err)
	}
	if resp.StatusCode != 0 || !result.Eligible || len(result.Unmet) != 0 {
		t.Fatalf("ungated product should be eligible, got status=%d %+v", resp.StatusCode, result)
	}

	policy := &models.EligibilityPolicy{ProductID: env.product.ID, RequiresPlanNameContains: "gold"}
	if err := env.db.Create(policy).Error; err != nil {
		t.Fatalf("create policy failed: %v", err)
	}
	resp = env.do(t, http.MethodGet, path, env.userToken, nil)
	result.Unmet = nil
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("decode eligibility failed: %v", err)
	}
	if resp.StatusCode != 0 || result.Eligible || result.ProductID != env.product.ID || len(result.Unmet) != 1 {
		t.Fatalf("unexpected gated eligibility: status=%d %+v", resp.StatusCode, result)
	}

	if resp := env.do(t, http.MethodGet, "/api/v1/affiliate/coupons/eligibility", env.userToken, nil); resp.StatusCode != 400 {
		t.Fatalf("missing product_id status_code want 400 got %d", resp.StatusCode)
	}
	if resp := env.do(t, http.MethodGet, "/api/v1/affiliate/coupons/eligibility?product_id=9999", env.userToken, nil); resp.StatusCode != 404 {
		t.Fatalf("unknown product status_code want 404 got %d", resp.StatusCode)
	}
}

func TestAffiliateActivateRateLimited(t *testing.T) {
	env := setupRouterTest(t, config.RateLimitConfig{WindowSeconds: 60, MaxAttempts: 1})
	body := gin.H{"template_id": env.template.ID, "product_id": env.product.ID}

	if resp := env.do(t, http.MethodPost, "/api/v1/affiliate/coupons", env.userToken, body); resp.StatusCode != 0 {
		t.Fatalf("first activation status_code want 0 got %d", resp.StatusCode)
	}
	resp := env.do(t, http.MethodPost, "/api/v1/affiliate/coupons", env.userToken, body)
	if resp.StatusCode != 429 {
		t.Fatalf("second activation status_code want 429 got %d", resp.StatusCode)
	}
}

func TestAffiliateRoutesRequireToken(t *testing.T) {
	env := setupRouterTest(t, config.RateLimitConfig{})
	resp := env.do(t, http.MethodGet, "/api/v1/affiliate/coupons", "", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestUserTokenRevokedAfterVersionBump(t *testing.T) {
	env := setupRouterTest(t, config.RateLimitConfig{})
	if resp := env.do(t, http.MethodGet, "/api/v1/affiliate/coupons", env.userToken, nil); resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}

	env.db.Model(&models.User{}).Where("email = ?", "alice@example.com").Update("token_version", 1)
	env.mr.FlushAll()

	resp := env.do(t, http.MethodGet, "/api/v1/affiliate/coupons", env.userToken, nil)
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestAdminRBACOnAffiliateCouponRoutes(t *testing.T) {
	env := setupRouterTest(t, config.RateLimitConfig{})
	body := gin.H{"template_id": env.template.ID, "product_id": env.product.ID}
	activation := env.do(t, http.MethodPost, "/api/v1/affiliate/coupons", env.userToken, body)
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(activation.Data, &created); err != nil {
		t.Fatalf("decode activation failed: %v", err)
	}
	path := fmt.Sprintf("/api/v1/admin/affiliate-coupons/%d", created.ID)

	auditor := env.adminToken(t, "auditor", "readonly_auditor")
	if resp := env.do(t, http.MethodGet, "/api/v1/admin/affiliate-coupons", auditor, nil); resp.StatusCode != 0 {
		t.Fatalf("auditor list status_code want 0 got %d", resp.StatusCode)
	}
	if resp := env.do(t, http.MethodDelete, path, auditor, nil); resp.StatusCode != 403 {
		t.Fatalf("auditor delete status_code want 403 got %d", resp.StatusCode)
	}

	operator := env.adminToken(t, "operator", "coupon_operator")
	if resp := env.do(t, http.MethodDelete, path, operator, nil); resp.StatusCode != 0 {
		t.Fatalf("operator delete status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}

	var remaining int64
	env.db.Model(&models.AffiliateCoupon{}).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("soft deleted activation should be hidden, got %d", remaining)
	}

	again := env.do(t, http.MethodPost, "/api/v1/affiliate/coupons", env.userToken, body)
	var recreated struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(again.Data, &recreated); err != nil {
		t.Fatalf("decode recreated activation failed: %v", err)
	}
	if again.StatusCode != 0 || recreated.ID == created.ID {
		t.Fatalf("activation after delete should create a new row, got status=%d id=%d", again.StatusCode, recreated.ID)
	}
}

func TestAdminPermissionCatalogListsAdminRoutes(t *testing.T) {
	env := setupRouterTest(t, config.RateLimitConfig{})
	items := buildAdminPermissionCatalog(env.engine)
	found := false
	for _, item := range items {
		if item.Permission == "PUT:/admin/coupon-templates/:id" {
			found = item.Module == "coupon-templates"
		}
	}
	if !found {
		t.Fatalf("expected coupon template update permission in catalog: %+v", items)
	}
}

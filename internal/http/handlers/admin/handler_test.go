package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/affiliate-next/internal/cache"
	"github.com/affiliate-next/internal/config"
	handlershared "github.com/affiliate-next/internal/http/handlers/shared"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type adminTestResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupAdminHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handlershared.RegisterBindingValidators()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	container, err := provider.Build(&config.Config{}, db, cache.NewStore(nil, "test"), nil)
	if err != nil {
		t.Fatalf("build container failed: %v", err)
	}

	h := New(container)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("admin_id", uint(1))
		c.Next()
	})
	r.GET("/coupon-templates", h.GetCouponTemplates)
	r.POST("/coupon-templates", h.CreateCouponTemplate)
	r.PUT("/coupon-templates/:id", h.UpdateCouponTemplate)
	r.PUT("/eligibility-policies/:product_id", h.PutEligibilityPolicy)
	r.DELETE("/eligibility-policies/:product_id", h.DeleteEligibilityPolicy)
	r.PUT("/admins/:id/roles", h.SetAdminRoles)
	return r, db
}

func doAdminRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) adminTestResponse {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp adminTestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func TestCouponTemplateCreateUpdateAndList(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	product := &models.Product{Slug: "pro", Name: "Pro", IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	created := doAdminRequest(t, r, http.MethodPost, "/coupon-templates", gin.H{
		"product_id": product.ID,
		"code":       "SAVE10",
		"name":       "Save 10",
		"kind":       "percentage",
		"value":      "10",
	})
	if created.StatusCode != 0 {
		t.Fatalf("create status_code want 0 got %d msg=%s", created.StatusCode, created.Msg)
	}
	var template models.CouponTemplate
	if err := json.Unmarshal(created.Data, &template); err != nil {
		t.Fatalf("decode template failed: %v", err)
	}
	if !template.IsActive {
		t.Fatalf("new template should default to active")
	}

	retired := doAdminRequest(t, r, http.MethodPut, fmt.Sprintf("/coupon-templates/%d", template.ID), gin.H{
		"product_id": product.ID,
		"code":       "SAVE10",
		"name":       "Save 10",
		"kind":       "percentage",
		"value":      "10",
		"is_active":  false,
	})
	if retired.StatusCode != 0 {
		t.Fatalf("update status_code want 0 got %d msg=%s", retired.StatusCode, retired.Msg)
	}

	list := doAdminRequest(t, r, http.MethodGet, "/coupon-templates?active_only=true", nil)
	var items []models.CouponTemplate
	if err := json.Unmarshal(list.Data, &items); err != nil {
		t.Fatalf("decode list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("retired template should be excluded from active list, got %d", len(items))
	}
}

func TestCouponTemplateCreateRejectsUnknownKind(t *testing.T) {
	r, _ := setupAdminHandlerTest(t)
	resp := doAdminRequest(t, r, http.MethodPost, "/coupon-templates", gin.H{
		"product_id": 1,
		"name":       "Broken",
		"kind":       "cashback",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Data), "kind") {
		t.Fatalf("expected field error for kind, got %s", string(resp.Data))
	}
}

func TestEligibilityPolicyUpsertAndDelete(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	product := &models.Product{Slug: "pro", Name: "Pro", IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	path := fmt.Sprintf("/eligibility-policies/%d", product.ID)

	for _, minimum := range []int{3, 5} {
		resp := doAdminRequest(t, r, http.MethodPut, path, gin.H{"minimum_cross_product_sales": minimum, "requires_plan_name_contains": "gold"})
		if resp.StatusCode != 0 {
			t.Fatalf("upsert status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
		}
	}
	var policies []models.EligibilityPolicy
	db.Find(&policies)
	if len(policies) != 1 || policies[0].MinimumCrossProductSales != 5 {
		t.Fatalf("upsert should keep a single policy with latest values, got %+v", policies)
	}

	if resp := doAdminRequest(t, r, http.MethodDelete, path, nil); resp.StatusCode != 0 {
		t.Fatalf("delete status_code want 0 got %d", resp.StatusCode)
	}
	if resp := doAdminRequest(t, r, http.MethodDelete, path, nil); resp.StatusCode != 404 {
		t.Fatalf("second delete status_code want 404 got %d", resp.StatusCode)
	}
}

func TestSetAdminRolesRejectsUnknownRole(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	admin := &models.Admin{Username: "ops"}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	path := fmt.Sprintf("/admins/%d/roles", admin.ID)

	if resp := doAdminRequest(t, r, http.MethodPut, path, gin.H{"roles": []string{"nope"}}); resp.StatusCode != 400 {
		t.Fatalf("unknown role status_code want 400 got %d", resp.StatusCode)
	}
	resp := doAdminRequest(t, r, http.MethodPut, path, gin.H{"roles": []string{"coupon_operator"}})
	if resp.StatusCode != 0 {
		t.Fatalf("set roles status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var view AdminView
	if err := json.Unmarshal(resp.Data, &view); err != nil {
		t.Fatalf("decode admin view failed: %v", err)
	}
	if len(view.Roles) != 1 || view.Roles[0] != "role:coupon_operator" {
		t.Fatalf("unexpected roles: %v", view.Roles)
	}
}

package admin

import (
	"strings"
	"time"

	handlershared "github.com/affiliate-next/internal/http/handlers/shared"
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/repository"
	"github.com/affiliate-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponTemplateRequest 创建/更新推广优惠券模板请求
type CouponTemplateRequest struct {
	ProductID   uint         `json:"product_id" binding:"required,gt=0"`
	Code        string       `json:"code" binding:"max=64"`
	Name        string       `json:"name" binding:"required,max=255"`
	Description string       `json:"description"`
	Kind        string       `json:"kind" binding:"required,coupon_kind"`
	Value       models.Money `json:"value"`
	IsActive    *bool        `json:"is_active"`
	IsPrimary   bool         `json:"is_primary"`
	ValidUntil  string       `json:"valid_until"`
	MaxUses     int          `json:"max_uses" binding:"gte=0"`
}

func (r CouponTemplateRequest) toInput() (service.CouponTemplateInput, error) {
	validUntil, err := parseTimeNullable(strings.TrimSpace(r.ValidUntil))
	if err != nil {
		return service.CouponTemplateInput{}, err
	}
	return service.CouponTemplateInput{
		ProductID:   r.ProductID,
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		Kind:        r.Kind,
		Value:       r.Value,
		IsActive:    r.IsActive,
		IsPrimary:   r.IsPrimary,
		ValidUntil:  validUntil,
		MaxUses:     r.MaxUses,
	}, nil
}

// GetCouponTemplates 模板列表
func (h *Handler) GetCouponTemplates(c *gin.Context) {
	page, pageSize := pageParams(c)
	productID, ok := parseOptionalUintQuery(c, "product_id")
	if !ok {
		return
	}
	templates, total, err := h.CouponTemplateAdminService.List(repository.CouponTemplateListFilter{
		Page:       page,
		PageSize:   pageSize,
		ProductID:  productID,
		Search:     strings.TrimSpace(c.Query("search")),
		ActiveOnly: c.Query("active_only") == "true",
	})
	if err != nil {
		respondServiceError(c, err, "error.coupon_template_not_found")
		return
	}
	response.SuccessWithPage(c, templates, response.NewPagination(page, pageSize, total))
}

// CreateCouponTemplate 创建模板
func (h *Handler) CreateCouponTemplate(c *gin.Context) {
	var req CouponTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	template, err := h.CouponTemplateAdminService.Create(requestContext(c), input)
	if err != nil {
		respondServiceError(c, err, "error.coupon_template_not_found")
		return
	}
	response.Success(c, template)
}

// UpdateCouponTemplate 更新模板（is_active=false 即下架）
func (h *Handler) UpdateCouponTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CouponTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	template, err := h.CouponTemplateAdminService.Update(requestContext(c), id, input)
	if err != nil {
		respondServiceError(c, err, "error.coupon_template_not_found")
		return
	}
	response.Success(c, template)
}

// GetProducts 商品列表（模板与门槛配置时选择）
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.ProductRepo.List(false)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, products)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

package public

import (
	"context"

	handlershared "github.com/affiliate-next/internal/http/handlers/shared"
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/logger"
	"github.com/affiliate-next/internal/models"
	"github.com/affiliate-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ActivateAffiliateCouponRequest 开通推广优惠券请求
type ActivateAffiliateCouponRequest struct {
	TemplateID uint `json:"template_id" binding:"required,gt=0"`
	ProductID  uint `json:"product_id" binding:"required,gt=0"`
}

// UpdateAffiliateHandleRequest 修改推广用户名请求
type UpdateAffiliateHandleRequest struct {
	Handle string `json:"handle" binding:"required,affiliate_handle"`
}

// currentAffiliate 读取当前用户的推广档案，失败时已写响应
func (h *Handler) currentAffiliate(c *gin.Context) (*models.AffiliateProfile, bool) {
	uid, ok := getUserID(c)
	if !ok {
		return nil, false
	}
	profile, err := h.AffiliateProfileService.GetByUserID(uid)
	if err != nil {
		respondAffiliateError(c, err)
		return nil, false
	}
	return profile, true
}

// requestContext 携带 request_id 日志的请求上下文
func requestContext(c *gin.Context) context.Context {
	return logger.WithContext(c.Request.Context(), requestLog(c))
}

// GetAffiliateProfile 获取推广档案
func (h *Handler) GetAffiliateProfile(c *gin.Context) {
	profile, ok := h.currentAffiliate(c)
	if !ok {
		return
	}
	response.Success(c, profile)
}

// UpdateAffiliateHandle 修改推广用户名（已生成的优惠码不变）
func (h *Handler) UpdateAffiliateHandle(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateAffiliateHandleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	ctx := requestContext(c)
	profile, err := h.AffiliateProfileService.UpdateHandle(ctx, uid, req.Handle)
	if err != nil {
		respondAffiliateHandleError(c, err)
		return
	}
	response.Success(c, profile)
}

// GetAffiliateCouponCatalog 推广优惠券目录（含门槛判定、预览优惠码与推广链接）
func (h *Handler) GetAffiliateCouponCatalog(c *gin.Context) {
	profile, ok := h.currentAffiliate(c)
	if !ok {
		return
	}
	ctx := requestContext(c)
	entries, err := h.AffiliateCouponService.ListCatalogForAffiliate(ctx, profile.ID)
	if err != nil {
		respondAffiliateError(c, err)
		return
	}
	response.Success(c, entries)
}

// GetAffiliateCouponEligibility 查询指定商品的开通门槛判定（含未满足条件）
func (h *Handler) GetAffiliateCouponEligibility(c *gin.Context) {
	profile, ok := h.currentAffiliate(c)
	if !ok {
		return
	}
	productID, ok := parseIDQuery(c, "product_id")
	if !ok {
		return
	}
	product, err := h.ProductRepo.GetByID(productID)
	if err != nil {
		respondError(c, response.CodeServiceUnavailable, "error.storage_unavailable", err)
		return
	}
	if product == nil {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	ctx := requestContext(c)
	result, err := h.AffiliateCouponService.EvaluateEligibility(ctx, profile.ID, product.ID)
	if err != nil {
		respondAffiliateError(c, err)
		return
	}
	response.Success(c, result)
}

// ListAffiliateCoupons 我的推广优惠券
func (h *Handler) ListAffiliateCoupons(c *gin.Context) {
	profile, ok := h.currentAffiliate(c)
	if !ok {
		return
	}
	ctx := requestContext(c)
	items, err := h.AffiliateCouponService.ListForAffiliate(ctx, profile.ID)
	if err != nil {
		respondAffiliateError(c, err)
		return
	}
	response.Success(c, items)
}

// ActivateAffiliateCoupon 开通推广优惠券，重复开通返回已有记录
func (h *Handler) ActivateAffiliateCoupon(c *gin.Context) {
	profile, ok := h.currentAffiliate(c)
	if !ok {
		return
	}
	var req ActivateAffiliateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	ctx := requestContext(c)
	coupon, err := h.AffiliateCouponService.Activate(ctx, service.ActivateInput{
		AffiliateID: profile.ID,
		TemplateID:  req.TemplateID,
		ProductID:   req.ProductID,
		Handle:      profile.Handle,
	})
	if err != nil {
		respondAffiliateCouponActivateError(c, err)
		return
	}
	h.respondAffiliateCoupon(c, coupon)
}

// DeactivateAffiliateCoupon 停用推广优惠券
func (h *Handler) DeactivateAffiliateCoupon(c *gin.Context) {
	h.toggleAffiliateCoupon(c, false)
}

// ReactivateAffiliateCoupon 重新启用推广优惠券
func (h *Handler) ReactivateAffiliateCoupon(c *gin.Context) {
	h.toggleAffiliateCoupon(c, true)
}

func (h *Handler) toggleAffiliateCoupon(c *gin.Context, active bool) {
	profile, ok := h.currentAffiliate(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := requestContext(c)
	var (
		coupon *models.AffiliateCoupon
		err    error
	)
	if active {
		coupon, err = h.AffiliateCouponService.Reactivate(ctx, profile.ID, id)
	} else {
		coupon, err = h.AffiliateCouponService.Deactivate(ctx, profile.ID, id)
	}
	if err != nil {
		respondAffiliateCouponToggleError(c, err)
		return
	}
	h.respondAffiliateCoupon(c, coupon)
}

// respondAffiliateCoupon 补全推广链接后返回
func (h *Handler) respondAffiliateCoupon(c *gin.Context, coupon *models.AffiliateCoupon) {
	landing := ""
	product, err := h.ProductRepo.GetByID(coupon.ProductID)
	if err != nil {
		requestLog(c).Warnw("affiliate_coupon_product_fetch_failed", "product_id", coupon.ProductID, "error", err)
	} else if product != nil {
		landing = product.LandingPageURL
	}
	response.Success(c, gin.H{
		"id":                    coupon.ID,
		"template_id":           coupon.CouponTemplateID,
		"product_id":            coupon.ProductID,
		"custom_code":           coupon.CustomCode,
		"username_at_creation":  coupon.UsernameAtCreation,
		"base_code_at_creation": coupon.BaseCodeAtCreation,
		"is_active":             coupon.IsActive,
		"state":                 service.AffiliateCouponState(coupon),
		"link":                  service.ComposeAffiliateCouponLink(landing, coupon.CustomCode),
		"created_at":            coupon.CreatedAt,
		"updated_at":            coupon.UpdatedAt,
	})
}

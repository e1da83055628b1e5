package admin

import (
	"strings"

	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAffiliateCoupons 推广优惠券列表（include_deleted=true 时包含已删除记录）
func (h *Handler) GetAffiliateCoupons(c *gin.Context) {
	page, pageSize := pageParams(c)
	affiliateID, ok := parseOptionalUintQuery(c, "affiliate_id")
	if !ok {
		return
	}
	productID, ok := parseOptionalUintQuery(c, "product_id")
	if !ok {
		return
	}
	items, total, err := h.AffiliateCouponService.ListForAdmin(repository.AffiliateCouponListFilter{
		Page:               page,
		PageSize:           pageSize,
		AffiliateProfileID: affiliateID,
		ProductID:          productID,
		IncludeDeleted:     c.Query("include_deleted") == "true",
	})
	if err != nil {
		respondServiceError(c, err, "error.affiliate_coupon_not_found")
		return
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// DeleteAffiliateCoupon 软删除推广优惠券，之后推广用户可重新开通
func (h *Handler) DeleteAffiliateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AffiliateCouponService.SoftDelete(requestContext(c), id); err != nil {
		respondServiceError(c, err, "error.affiliate_coupon_not_found")
		return
	}
	if adminID, exists := c.Get("admin_id"); exists {
		requestLog(c).Infow("admin_affiliate_coupon_deleted", "admin_id", adminID, "affiliate_coupon_id", id)
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAffiliateCouponEvents 推广优惠券生命周期审计记录
func (h *Handler) GetAffiliateCouponEvents(c *gin.Context) {
	page, pageSize := pageParams(c)
	couponID, ok := parseOptionalUintQuery(c, "affiliate_coupon_id")
	if !ok {
		return
	}
	affiliateID, ok := parseOptionalUintQuery(c, "affiliate_id")
	if !ok {
		return
	}
	events, total, err := h.AffiliateCouponEventService.List(repository.AffiliateCouponEventListFilter{
		Page:               page,
		PageSize:           pageSize,
		AffiliateCouponID:  couponID,
		AffiliateProfileID: affiliateID,
		Action:             strings.TrimSpace(c.Query("action")),
	})
	if err != nil {
		respondServiceError(c, err, "error.not_found")
		return
	}
	response.SuccessWithPage(c, events, response.NewPagination(page, pageSize, total))
}

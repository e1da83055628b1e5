package admin

import (
	handlershared "github.com/affiliate-next/internal/http/handlers/shared"
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/service"

	"github.com/gin-gonic/gin"
)

// EligibilityPolicyRequest 设置开通门槛请求
type EligibilityPolicyRequest struct {
	MinimumCrossProductSales int64  `json:"minimum_cross_product_sales" binding:"gte=0"`
	RequiresPlanNameContains string `json:"requires_plan_name_contains" binding:"max=64"`
}

// GetEligibilityPolicies 门槛列表
func (h *Handler) GetEligibilityPolicies(c *gin.Context) {
	policies, err := h.EligibilityPolicyService.List()
	if err != nil {
		respondServiceError(c, err, "error.eligibility_policy_not_found")
		return
	}
	response.Success(c, policies)
}

// PutEligibilityPolicy 设置商品门槛（存在则覆盖）
func (h *Handler) PutEligibilityPolicy(c *gin.Context) {
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	var req EligibilityPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	policy, err := h.EligibilityPolicyService.Upsert(requestContext(c), service.UpsertEligibilityPolicyInput{
		ProductID:                productID,
		MinimumCrossProductSales: req.MinimumCrossProductSales,
		RequiresPlanNameContains: req.RequiresPlanNameContains,
	})
	if err != nil {
		respondServiceError(c, err, "error.eligibility_policy_not_found")
		return
	}
	response.Success(c, policy)
}

// DeleteEligibilityPolicy 删除商品门槛
func (h *Handler) DeleteEligibilityPolicy(c *gin.Context) {
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.EligibilityPolicyService.Delete(requestContext(c), productID); err != nil {
		respondServiceError(c, err, "error.eligibility_policy_not_found")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

package service

import (
	"fmt"
	"strings"

	"github.com/affiliate-next/internal/constants"
	"github.com/affiliate-next/internal/models"
)

// qualifyingCommissionStatuses 计入跨商品成交数的佣金状态
var qualifyingCommissionStatuses = []string{
	constants.AffiliateCommissionStatusAvailable,
	constants.AffiliateCommissionStatusPaid,
}

// EligibilityResult 开通门槛判定结果
type EligibilityResult struct {
	ProductID uint     `json:"product_id"`
	Eligible  bool     `json:"eligible"`
	Unmet     []string `json:"unmet_requirements"`
}

// EvaluateAffiliateCouponEligibility 判定推广用户是否满足商品的开通门槛
// crossProductSales 由调用方统计，不得包含该商品自身的成交
func EvaluateAffiliateCouponEligibility(productID uint, policy *models.EligibilityPolicy, planName string, crossProductSales int64) EligibilityResult {
	result := EligibilityResult{ProductID: productID, Eligible: true, Unmet: []string{}}
	if policy == nil {
		return result
	}

	marker := strings.ToUpper(strings.TrimSpace(policy.RequiresPlanNameContains))
	if marker != "" && !strings.Contains(strings.ToUpper(planName), marker) {
		result.Unmet = append(result.Unmet, fmt.Sprintf("requires %s plan", marker))
	}

	if crossProductSales < policy.MinimumCrossProductSales {
		remaining := policy.MinimumCrossProductSales - crossProductSales
		result.Unmet = append(result.Unmet, fmt.Sprintf("requires %d more sales of other products", remaining))
	}

	result.Eligible = len(result.Unmet) == 0
	return result
}

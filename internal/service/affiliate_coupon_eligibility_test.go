package service

import (
	"reflect"
	"testing"

	"github.com/affiliate-next/internal/models"
)

func TestEvaluateAffiliateCouponEligibility(t *testing.T) {
	cases := []struct {
		name     string
		policy   *models.EligibilityPolicy
		planName string
		sales    int64
		want     []string
	}{
		{name: "no policy", policy: nil, planName: "", sales: 0, want: []string{}},
		{
			name:     "plan marker matched case insensitive",
			policy:   &models.EligibilityPolicy{RequiresPlanNameContains: "pro"},
			planName: "Affiliate PRO Monthly",
			want:     []string{},
		},
		{
			name:     "plan marker missing",
			policy:   &models.EligibilityPolicy{RequiresPlanNameContains: "pro"},
			planName: "Basic",
			want:     []string{"requires PRO plan"},
		},
		{
			name:   "sales short",
			policy: &models.EligibilityPolicy{MinimumCrossProductSales: 5},
			sales:  2,
			want:   []string{"requires 3 more sales of other products"},
		},
		{
			name:   "sales exactly at minimum",
			policy: &models.EligibilityPolicy{MinimumCrossProductSales: 5},
			sales:  5,
			want:   []string{},
		},
		{
			name:     "both gates reported",
			policy:   &models.EligibilityPolicy{MinimumCrossProductSales: 2, RequiresPlanNameContains: "Gold"},
			planName: "silver",
			sales:    0,
			want:     []string{"requires GOLD plan", "requires 2 more sales of other products"},
		},
		{
			name:     "empty marker disables plan gate",
			policy:   &models.EligibilityPolicy{RequiresPlanNameContains: "  "},
			planName: "",
			want:     []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := EvaluateAffiliateCouponEligibility(7, tc.policy, tc.planName, tc.sales)
			if result.ProductID != 7 {
				t.Fatalf("expected product id 7, got %d", result.ProductID)
			}
			if !reflect.DeepEqual(result.Unmet, tc.want) {
				t.Fatalf("expected unmet %v, got %v", tc.want, result.Unmet)
			}
			if result.Eligible != (len(tc.want) == 0) {
				t.Fatalf("eligible flag mismatch: %+v", result)
			}
		})
	}
}

func TestEvaluateAffiliateCouponEligibilityDoesNotMutatePolicy(t *testing.T) {
	policy := &models.EligibilityPolicy{ID: 1, ProductID: 3, MinimumCrossProductSales: 4, RequiresPlanNameContains: "pro"}
	snapshot := *policy
	_ = EvaluateAffiliateCouponEligibility(3, policy, "basic", 1)
	if *policy != snapshot {
		t.Fatalf("policy mutated: %+v", policy)
	}
}

package repository

import "testing"

func TestBuildLikeConditionByDialect(t *testing.T) {
	cases := []struct {
		dialect string
		want    string
	}{
		{"sqlite", "(coupon_templates.name LIKE ? OR coupon_templates.code LIKE ?)"},
		{"postgres", "(coupon_templates.name ILIKE ? OR coupon_templates.code ILIKE ?)"},
	}
	for _, tc := range cases {
		condition, args := buildLikeConditionByDialect(tc.dialect, " vip ", "coupon_templates.name", "", "coupon_templates.code")
		if condition != tc.want {
			t.Fatalf("%s condition mismatch, want %s got %s", tc.dialect, tc.want, condition)
		}
		if len(args) != 2 || args[0] != "%vip%" {
			t.Fatalf("%s args mismatch: %v", tc.dialect, args)
		}
	}
}

func TestBuildLikeConditionEmptyKeyword(t *testing.T) {
	condition, args := buildLikeCondition(nil, "   ", "name")
	if condition != "" || args != nil {
		t.Fatalf("expected empty condition, got %q %v", condition, args)
	}
}

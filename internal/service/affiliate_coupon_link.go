package service

import "strings"

// ComposeAffiliateCouponLink 拼接推广链接：落地页地址为空时直接返回优惠码
func ComposeAffiliateCouponLink(landingPageBaseURL, resolvedCode string) string {
	if resolvedCode == "" {
		return ""
	}
	base := strings.TrimRight(strings.TrimSpace(landingPageBaseURL), "/")
	if base == "" {
		return resolvedCode
	}
	return base + "/" + resolvedCode
}

package service

import (
	"strings"
	"unicode"
)

// GenerateAffiliateCouponCode 生成推广优惠码
// 主推券只使用推广用户名；其余为 用户名+模板基础码，均转大写并去除空白
func GenerateAffiliateCouponCode(handle, baseCode string, isPrimary bool) string {
	normalizedHandle := normalizeCouponCodePart(handle)
	if isPrimary {
		return normalizedHandle
	}
	return normalizedHandle + normalizeCouponCodePart(baseCode)
}

func normalizeCouponCodePart(raw string) string {
	if raw == "" {
		return ""
	}
	var builder strings.Builder
	builder.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		builder.WriteRune(unicode.ToUpper(r))
	}
	return builder.String()
}

package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":                           "Invalid request parameters",
		"error.unauthorized":                          "Unauthorized",
		"error.forbidden":                             "Forbidden",
		"error.not_found":                             "Resource not found",
		"error.internal_error":                        "Internal server error",
		"error.too_many_requests":                     "Too many requests, please retry in %d seconds",
		"error.token_invalid":                         "Invalid or expired token",
		"error.token_revoked":                         "Token has been revoked",
		"error.auth_header_missing":                   "Authorization header is missing",
		"error.auth_header_invalid":                   "Authorization header is invalid",
		"error.jwt_secret_missing":                    "JWT secret is not configured",
		"error.user_disabled":                         "Account is disabled",
		"error.affiliate_not_opened":                  "Affiliate profile is not opened",
		"error.affiliate_handle_required":             "Set your affiliate handle before activating coupons",
		"error.affiliate_handle_invalid":              "Handle must be 1-32 letters, digits, '_' or '-'",
		"error.rate_limited":                          "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable":                "Rate limiter unavailable, please retry later",
		"error.eligibility_policy_not_found":          "Eligibility policy not found",
		"error.affiliate_coupon_invalid":              "Invalid coupon activation request",
		"error.affiliate_coupon_template_unavailable": "Coupon template is not available for this product",
		"error.affiliate_coupon_ineligible":           "You are not eligible for this coupon yet",
		"error.affiliate_coupon_code_taken":           "This coupon code is already used by another of your coupons for this product",
		"error.affiliate_coupon_not_found":            "Coupon activation not found",
		"error.storage_unavailable":                   "Storage temporarily unavailable, please retry",
		"error.eligibility_policy_invalid":            "Invalid eligibility policy",
		"error.coupon_template_invalid":               "Invalid coupon template",
		"error.coupon_template_not_found":             "Coupon template not found",
		"error.product_not_found":                     "Product not found",
		"error.admin_not_found":                       "Admin not found",
		"error.role_invalid":                          "Invalid role",
	},
	LocaleZH: {
		"error.bad_request":                           "请求参数错误",
		"error.unauthorized":                          "未授权",
		"error.forbidden":                             "无权限访问",
		"error.not_found":                             "资源不存在",
		"error.internal_error":                        "服务器内部错误",
		"error.too_many_requests":                     "请求过于频繁，请 %d 秒后重试",
		"error.token_invalid":                         "Token 无效或已过期",
		"error.token_revoked":                         "Token 已失效",
		"error.auth_header_missing":                   "缺少认证信息",
		"error.auth_header_invalid":                   "认证信息格式错误",
		"error.jwt_secret_missing":                    "JWT 密钥未配置",
		"error.user_disabled":                         "账号已被禁用",
		"error.affiliate_not_opened":                  "尚未开通推广",
		"error.affiliate_handle_required":             "请先设置推广用户名",
		"error.affiliate_handle_invalid":              "推广用户名需为 1-32 位字母、数字、下划线或连字符",
		"error.rate_limited":                          "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":                "限流服务不可用，请稍后重试",
		"error.eligibility_policy_not_found":          "开通门槛不存在",
		"error.affiliate_coupon_invalid":              "优惠券开通参数错误",
		"error.affiliate_coupon_template_unavailable": "该优惠券模板不可用",
		"error.affiliate_coupon_ineligible":           "暂不满足开通条件",
		"error.affiliate_coupon_code_taken":           "该优惠码已被您在同一商品下的其他优惠券占用",
		"error.affiliate_coupon_not_found":            "推广优惠券不存在",
		"error.storage_unavailable":                   "存储暂不可用，请稍后重试",
		"error.eligibility_policy_invalid":            "开通门槛配置错误",
		"error.coupon_template_invalid":               "优惠券模板参数错误",
		"error.coupon_template_not_found":             "优惠券模板不存在",
		"error.product_not_found":                     "商品不存在",
		"error.admin_not_found":                       "管理员不存在",
		"error.role_invalid":                          "角色无效",
	},
	LocaleTW: {
		"error.bad_request":                           "請求參數錯誤",
		"error.unauthorized":                          "未授權",
		"error.forbidden":                             "無權限訪問",
		"error.not_found":                             "資源不存在",
		"error.internal_error":                        "伺服器內部錯誤",
		"error.too_many_requests":                     "請求過於頻繁，請 %d 秒後重試",
		"error.token_invalid":                         "Token 無效或已過期",
		"error.token_revoked":                         "Token 已失效",
		"error.auth_header_missing":                   "缺少認證資訊",
		"error.auth_header_invalid":                   "認證資訊格式錯誤",
		"error.affiliate_not_opened":                  "尚未開通推廣",
		"error.affiliate_handle_required":             "請先設定推廣用戶名",
		"error.affiliate_handle_invalid":              "推廣用戶名需為 1-32 位字母、數字、底線或連字號",
		"error.rate_limited":                          "請求過於頻繁，請 %d 秒後重試",
		"error.rate_limit_unavailable":                "限流服務不可用，請稍後重試",
		"error.eligibility_policy_not_found":          "開通門檻不存在",
		"error.affiliate_coupon_ineligible":           "暫不符合開通條件",
		"error.affiliate_coupon_code_taken":           "該優惠碼已被您在同一商品下的其他優惠券佔用",
		"error.affiliate_coupon_not_found":            "推廣優惠券不存在",
		"error.affiliate_coupon_template_unavailable": "該優惠券模板不可用",
		"error.storage_unavailable":                   "儲存暫不可用，請稍後重試",
		"error.user_disabled":                         "帳號已被停用",
		"error.affiliate_coupon_invalid":              "優惠券開通參數錯誤",
		"error.eligibility_policy_invalid":            "開通門檻設定錯誤",
		"error.coupon_template_invalid":               "優惠券模板參數錯誤",
		"error.coupon_template_not_found":             "優惠券模板不存在",
		"error.product_not_found":                     "商品不存在",
		"error.admin_not_found":                       "管理員不存在",
		"error.role_invalid":                          "角色無效",
	},
}

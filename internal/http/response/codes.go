package response

const (
	CodeOK                 = 0
	CodeBadRequest         = 400
	CodeUnauthorized       = 401
	CodeForbidden          = 403
	CodeNotFound           = 404
	CodeConflict           = 409
	CodeUnprocessable      = 422 // 业务条件未满足（如推广优惠券开通门槛）
	CodeTooManyRequests    = 429
	CodeInternal           = 500
	CodeServiceUnavailable = 503 // 存储暂不可用，可重试
)

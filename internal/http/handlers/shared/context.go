package shared

import (
	"github.com/affiliate-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ContextUint 读取认证中间件写入的主体 ID（user_id / admin_id），缺失时返回 401
func ContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		RespondError(c, response.CodeInternal, "error.internal_error", nil)
		return 0, false
	}
	return id, true
}

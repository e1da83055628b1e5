package shared

import (
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/i18n"
	"github.com/affiliate-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := c.GetString("request_id"); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 返回国际化错误响应；err 非空时记录日志，5xx 记为 error，其余为 warn
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithData(c, code, key, nil, err)
}

// RespondErrorWithData 同 RespondError，并在 data 中附带业务数据
func RespondErrorWithData(c *gin.Context, code int, key string, data interface{}, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	if err != nil {
		log := RequestLog(c)
		if code >= response.CodeInternal {
			log.Errorw("handler_error", "code", code, "key", key, "error", err)
		} else {
			log.Warnw("handler_error", "code", code, "key", key, "error", err)
		}
	}
	response.ErrorWithData(c, code, msg, data)
}

package admin

import (
	"context"
	"strconv"
	"strings"

	handlershared "github.com/affiliate-next/internal/http/handlers/shared"
	"github.com/affiliate-next/internal/http/response"
	"github.com/affiliate-next/internal/logger"

	"github.com/gin-gonic/gin"
)

func requestContext(c *gin.Context) context.Context {
	return logger.WithContext(c.Request.Context(), requestLog(c))
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalUintQuery 解析可选的正整数查询参数，空值返回 0
func parseOptionalUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(parsed), true
}

func pageParams(c *gin.Context) (int, int) {
	return handlershared.PageParams(c)
}

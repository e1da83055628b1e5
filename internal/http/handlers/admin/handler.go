package admin

import "github.com/affiliate-next/internal/provider"

// Handler 管理端接口：优惠券模板、开通门槛、推广优惠券与角色授权
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

package public

import (
	"github.com/affiliate-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PublicProductView 公开商品信息
type PublicProductView struct {
	ID             uint   `json:"id"`
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	LandingPageURL string `json:"landing_page_url"`
}

// GetProducts 获取上架商品（推广落地页地址）
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.ProductRepo.List(true)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	items := make([]PublicProductView, 0, len(products))
	for _, product := range products {
		items = append(items, PublicProductView{
			ID:             product.ID,
			Slug:           product.Slug,
			Name:           product.Name,
			LandingPageURL: product.LandingPageURL,
		})
	}
	response.Success(c, items)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	status := gin.H{"status": "ok", "redis": "disabled"}
	if h.Cache != nil && h.Cache.Enabled() {
		if err := h.Cache.Ping(c.Request.Context()); err != nil {
			requestLog(c).Warnw("health_redis_ping_failed", "error", err)
			status["redis"] = "unavailable"
		} else {
			status["redis"] = "ok"
		}
	}
	response.Success(c, status)
}

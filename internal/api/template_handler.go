package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumecraft/internal/render"
	"resumecraft/internal/resume"
	"resumecraft/internal/template"
)

// TemplateHandler 暴露只读的模板目录。
// 目录是编译期数据，不走数据库。
type TemplateHandler struct {
	catalog  *template.Catalog
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewTemplateHandler 构造模板目录处理器。
func NewTemplateHandler(catalog *template.Catalog, renderer *render.Renderer, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
	}
}

// ListTemplates 按目录顺序返回全部模板配置。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.catalog.List()})
}

// GetTemplate 返回单个模板配置。
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id := c.Param("id")
	cfg, ok := h.catalog.Get(id)
	if !ok {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PreviewTemplate 用示例数据渲染模板，返回完整 HTML 页面。
func (h *TemplateHandler) PreviewTemplate(c *gin.Context) {
	id := c.Param("id")

	html, err := h.renderer.Render(render.Context{
		Data:       resume.Sample(),
		TemplateID: id,
	})
	if err != nil {
		if errors.Is(err, render.ErrTemplateNotFound) {
			NotFound(c, "template not found")
			return
		}
		h.logger.Error("render template preview failed",
			slog.String("template_id", id),
			slog.Any("error", err),
		)
		Internal(c, "failed to render preview")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumecraft/internal/database"
	"resumecraft/internal/render"
)

// PrintHandler 为导出 worker 提供打印视图。
// 路由挂在 /internal 下，由 InternalSecretMiddleware 保护，
// 不做用户鉴权：worker 持有密钥即可读任意简历。
type PrintHandler struct {
	db       *gorm.DB
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewPrintHandler 构造打印处理器。
func NewPrintHandler(db *gorm.DB, renderer *render.Renderer, logger *slog.Logger) *PrintHandler {
	return &PrintHandler{
		db:       db,
		renderer: renderer,
		logger:   logger,
	}
}

// PrintResume 渲染指定简历的静态 HTML（无编辑覆盖层）。
func (h *PrintHandler) PrintResume(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	var record database.Resume
	if err := h.db.WithContext(c.Request.Context()).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "resume not found")
			return
		}
		h.logger.Error("query resume for print failed",
			slog.Uint64("resume_id", id),
			slog.Any("error", err),
		)
		Internal(c, "internal error")
		return
	}

	html, err := renderStoredResume(h.renderer, record, false)
	if err != nil {
		if errors.Is(err, render.ErrTemplateNotFound) {
			Error(c, http.StatusUnprocessableEntity, "resume references unknown template")
			return
		}
		h.logger.Error("render print view failed",
			slog.Uint64("resume_id", id),
			slog.Any("error", err),
		)
		Internal(c, "failed to render resume")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumecraft/internal/api/middleware"
	"resumecraft/internal/database"
	"resumecraft/internal/editor"
	"resumecraft/internal/render"
	"resumecraft/internal/resume"
	"resumecraft/internal/tasks"
	"resumecraft/internal/template"
)

// ResumeHandler 负责主简历记录：保存、字段级更新、照片、渲染与导出。
type ResumeHandler struct {
	db          *gorm.DB
	asynqClient *asynq.Client
	storage     objectStore
	renderer    *render.Renderer
	catalog     *template.Catalog
	logger      *slog.Logger
	clamdAddr   string
}

// objectStore 抽象出本处理器用到的对象存储能力，便于测试注入。
type objectStore interface {
	GeneratePresignedURLWithParams(ctx context.Context, objectKey string, duration time.Duration, params map[string]string) (string, error)
}

// NewResumeHandler 构造简历处理器。
func NewResumeHandler(
	db *gorm.DB,
	asynqClient *asynq.Client,
	storage objectStore,
	renderer *render.Renderer,
	catalog *template.Catalog,
	logger *slog.Logger,
	clamdAddr string,
) *ResumeHandler {
	return &ResumeHandler{
		db:          db,
		asynqClient: asynqClient,
		storage:     storage,
		renderer:    renderer,
		catalog:     catalog,
		logger:      logger,
		clamdAddr:   clamdAddr,
	}
}

type saveResumeRequest struct {
	Title          string                  `json:"title" binding:"max=255"`
	TemplateID     string                  `json:"template_id"`
	Content        resume.Data             `json:"content"`
	Customizations template.Customizations `json:"customizations"`
}

type resumeResponse struct {
	ID             uint                    `json:"id"`
	Title          string                  `json:"title"`
	TemplateID     string                  `json:"template_id"`
	Content        resume.Data             `json:"content"`
	Customizations template.Customizations `json:"customizations"`
	ExportStatus   string                  `json:"export_status,omitempty"`
	ExportFormat   string                  `json:"export_format,omitempty"`
	UpdatedAt      string                  `json:"updated_at"`
}

// GetLatestResume 返回当前用户最近更新的简历。
func (h *ResumeHandler) GetLatestResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, found, err := h.latestResume(c, userID)
	if err != nil {
		h.loggerFromContext(c).Error("query latest resume failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if !found {
		NotFound(c, "no resume yet")
		return
	}

	resp, err := resumeToResponse(record)
	if err != nil {
		h.loggerFromContext(c).Error("decode resume payload failed",
			slog.Uint64("resume_id", uint64(record.ID)),
			slog.Any("error", err),
		)
		Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveResume 整体保存主简历（不存在则创建）。
func (h *ResumeHandler) SaveResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.TemplateID != "" {
		if _, ok := h.catalog.Get(req.TemplateID); !ok {
			BadRequest(c, "unknown template id")
			return
		}
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	content, err := json.Marshal(req.Content)
	if err != nil {
		logger.Error("marshal resume content failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	customizations, err := json.Marshal(req.Customizations)
	if err != nil {
		logger.Error("marshal customizations failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	record, found, err := h.latestResume(c, userID)
	if err != nil {
		logger.Error("query latest resume failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if !found {
		record = database.Resume{UserID: userID}
	}
	record.Title = req.Title
	if req.TemplateID != "" {
		record.TemplateID = req.TemplateID
	}
	record.Content = datatypes.JSON(content)
	record.Customizations = datatypes.JSON(customizations)

	if err := h.db.WithContext(ctx).Save(&record).Error; err != nil {
		logger.Error("save resume failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("resume saved", slog.Uint64("resume_id", uint64(record.ID)))
	c.JSON(http.StatusOK, gin.H{"id": record.ID})
}

type updateFieldRequest struct {
	FieldPath string          `json:"field_path" binding:"required"`
	Value     json.RawMessage `json:"value"`
}

// UpdateField 按字段路径更新简历内容中的单个值。
// 路径不合法（中间节点缺失、列表 id 不存在）返回 422，内容保持不变。
func (h *ResumeHandler) UpdateField(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var value any
	if len(req.Value) > 0 {
		if err := json.Unmarshal(req.Value, &value); err != nil {
			BadRequest(c, "invalid value")
			return
		}
	}

	logger := h.loggerFromContext(c).With(
		slog.Uint64("user_id", uint64(userID)),
		slog.String("field_path", req.FieldPath),
	)

	record, found, err := h.latestResume(c, userID)
	if err != nil {
		logger.Error("query latest resume failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if !found {
		NotFound(c, "no resume yet")
		return
	}

	var data resume.Data
	if len(record.Content) > 0 {
		if err := json.Unmarshal(record.Content, &data); err != nil {
			logger.Error("decode resume content failed", slog.Any("error", err))
			Internal(c, "internal error")
			return
		}
	}

	updated, err := resume.Apply(data, req.FieldPath, value)
	if err != nil {
		logger.Info("field update rejected", slog.Any("error", err))
		Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	content, err := json.Marshal(updated)
	if err != nil {
		logger.Error("marshal updated content failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&record).
		Update("content", datatypes.JSON(content)).Error; err != nil {
		logger.Error("persist field update failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPhoto 接收头像文件，校验类型和大小、扫描病毒，
// 然后以 data URL 形式写进简历内容。
func (h *ResumeHandler) UploadPhoto(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}

	logger := h.loggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	contentType := file.Header.Get("Content-Type")
	if err := editor.ValidatePhoto(contentType, file.Size); err != nil {
		BadRequest(c, err.Error())
		return
	}

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	if err := scanWithClamd(logger, h.clamdAddr, reader); err != nil {
		reader.Close()
		if errors.Is(err, errMaliciousFile) {
			BadRequest(c, "malicious file detected")
			return
		}
		logger.Error("scan photo failed", slog.Any("error", err))
		Internal(c, "failed to scan file")
		return
	}
	reader.Close()

	reader, err = file.Open()
	if err != nil {
		Internal(c, "failed to reopen file")
		return
	}
	defer reader.Close()

	raw, err := io.ReadAll(io.LimitReader(reader, editor.MaxPhotoBytes))
	if err != nil {
		Internal(c, "failed to read file")
		return
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(raw))

	record, found, err := h.latestResume(c, userID)
	if err != nil {
		logger.Error("query latest resume failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if !found {
		NotFound(c, "no resume yet")
		return
	}

	var data resume.Data
	if len(record.Content) > 0 {
		if err := json.Unmarshal(record.Content, &data); err != nil {
			logger.Error("decode resume content failed", slog.Any("error", err))
			Internal(c, "internal error")
			return
		}
	}

	updated, err := resume.Apply(data, "personalInfo.photo", dataURL)
	if err != nil {
		logger.Error("apply photo failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	content, err := json.Marshal(updated)
	if err != nil {
		logger.Error("marshal updated content failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if err := h.db.WithContext(c.Request.Context()).
		Model(&record).
		Update("content", datatypes.JSON(content)).Error; err != nil {
		logger.Error("persist photo failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo": dataURL})
}

// RenderResume 返回当前简历的完整 HTML。
// edit_mode=true 时输出可编辑覆盖层标记。
func (h *ResumeHandler) RenderResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, found, err := h.latestResume(c, userID)
	if err != nil {
		h.loggerFromContext(c).Error("query latest resume failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if !found {
		NotFound(c, "no resume yet")
		return
	}

	html, err := renderStoredResume(h.renderer, record, c.Query("edit_mode") == "true")
	if err != nil {
		if errors.Is(err, render.ErrTemplateNotFound) {
			Error(c, http.StatusUnprocessableEntity, "resume references unknown template")
			return
		}
		h.loggerFromContext(c).Error("render resume failed",
			slog.Uint64("resume_id", uint64(record.ID)),
			slog.Any("error", err),
		)
		Internal(c, "failed to render resume")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// ExportResume 将导出任务入列，结果通过 WebSocket 通知。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "pdf"))
	if format != "pdf" && format != "docx" {
		BadRequest(c, "format must be pdf or docx")
		return
	}

	logger := h.loggerFromContext(c).With(
		slog.Uint64("user_id", uint64(userID)),
		slog.String("format", format),
	)

	record, found, err := h.latestResume(c, userID)
	if err != nil {
		logger.Error("query latest resume failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if !found {
		NotFound(c, "no resume yet")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	var task *asynq.Task
	if format == "pdf" {
		task, err = tasks.NewExportPDFTask(record.ID, correlationID)
	} else {
		task, err = tasks.NewExportDOCXTask(record.ID, correlationID)
	}
	if err != nil {
		logger.Error("build export task failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Model(&record).Updates(map[string]any{
		"export_status": database.ExportStatusProcessing,
		"export_format": format,
	}).Error; err != nil {
		logger.Error("mark export processing failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if _, err := h.asynqClient.EnqueueContext(c.Request.Context(), task); err != nil {
		logger.Error("enqueue export task failed", slog.Any("error", err))
		Internal(c, "failed to enqueue export")
		return
	}

	logger.Info("export task enqueued", slog.Uint64("resume_id", uint64(record.ID)))
	c.JSON(http.StatusAccepted, gin.H{
		"resume_id":      record.ID,
		"format":         format,
		"correlation_id": correlationID,
	})
}

// GetDownloadLink 为最近一次导出产物签发限时下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	record, found, err := h.latestResume(c, userID)
	if err != nil {
		h.loggerFromContext(c).Error("query latest resume failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if !found {
		NotFound(c, "no resume yet")
		return
	}
	if record.ExportStatus != database.ExportStatusCompleted || record.ExportObjectKey == "" {
		NotFound(c, "no completed export")
		return
	}

	filename := downloadFilename(record.Title, record.ExportFormat)
	url, err := h.storage.GeneratePresignedURLWithParams(
		c.Request.Context(),
		record.ExportObjectKey,
		10*time.Minute,
		map[string]string{
			"response-content-disposition": fmt.Sprintf("attachment; filename=%q", filename),
		},
	)
	if err != nil {
		h.loggerFromContext(c).Error("generate download link failed", slog.Any("error", err))
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "filename": filename})
}

func (h *ResumeHandler) latestResume(c *gin.Context, userID uint) (database.Resume, bool, error) {
	var record database.Resume
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.Resume{}, false, nil
		}
		return database.Resume{}, false, err
	}
	return record, true, nil
}

func renderStoredResume(renderer *render.Renderer, record database.Resume, editMode bool) (string, error) {
	var data resume.Data
	if len(record.Content) > 0 {
		if err := json.Unmarshal(record.Content, &data); err != nil {
			return "", fmt.Errorf("decode resume content: %w", err)
		}
	}
	var cust template.Customizations
	if len(record.Customizations) > 0 {
		if err := json.Unmarshal(record.Customizations, &cust); err != nil {
			return "", fmt.Errorf("decode customizations: %w", err)
		}
	}

	return renderer.Render(render.Context{
		Data:           data,
		TemplateID:     record.TemplateID,
		Customizations: cust,
		EditMode:       editMode,
	})
}

func (h *ResumeHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	return h.logger
}

func downloadFilename(title, format string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = "resume"
	}
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\n', '\r':
			return '-'
		}
		return r
	}, base)
	if format == "" {
		format = "pdf"
	}
	return base + "." + format
}

func resumeToResponse(record database.Resume) (resumeResponse, error) {
	resp := resumeResponse{
		ID:           record.ID,
		Title:        record.Title,
		TemplateID:   record.TemplateID,
		ExportStatus: record.ExportStatus,
		ExportFormat: record.ExportFormat,
		UpdatedAt:    record.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if len(record.Content) > 0 {
		if err := json.Unmarshal(record.Content, &resp.Content); err != nil {
			return resumeResponse{}, err
		}
	}
	if len(record.Customizations) > 0 {
		if err := json.Unmarshal(record.Customizations, &resp.Customizations); err != nil {
			return resumeResponse{}, err
		}
	}
	return resp, nil
}

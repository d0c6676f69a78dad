package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumecraft/internal/api/middleware"
	"resumecraft/internal/database"
	"resumecraft/internal/resume"
	"resumecraft/internal/template"
)

// DraftHandler 负责编辑器草稿的增删改查。
// 草稿与主简历相互独立：主简历是"当前简历"的单一真相，
// 草稿是向导流程的中间存档，可以有多份。
type DraftHandler struct {
	db        *gorm.DB
	catalog   *template.Catalog
	logger    *slog.Logger
	maxDrafts int
}

// NewDraftHandler 构造草稿处理器。
func NewDraftHandler(db *gorm.DB, catalog *template.Catalog, logger *slog.Logger, maxDrafts int) *DraftHandler {
	return &DraftHandler{
		db:        db,
		catalog:   catalog,
		logger:    logger,
		maxDrafts: maxDrafts,
	}
}

type draftRequest struct {
	Name           string                  `json:"name" binding:"required,max=255"`
	TemplateID     string                  `json:"template_id"`
	Content        resume.Data             `json:"content"`
	Customizations template.Customizations `json:"customizations"`
	Step           int                     `json:"step"`
}

type draftResponse struct {
	ID             uint                    `json:"id"`
	Name           string                  `json:"name"`
	TemplateID     string                  `json:"template_id"`
	Content        resume.Data             `json:"content"`
	Customizations template.Customizations `json:"customizations"`
	Step           int                     `json:"step"`
	UpdatedAt      string                  `json:"updated_at"`
}

type draftSummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	TemplateID string `json:"template_id"`
	Step       int    `json:"step"`
	UpdatedAt  string `json:"updated_at"`
}

// CreateDraft 保存一份新草稿，超出配额时返回 409。
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if !h.validTemplateID(req.TemplateID) {
		BadRequest(c, "unknown template id")
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	var count int64
	if err := h.db.WithContext(ctx).Model(&database.Draft{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		logger.Error("count drafts failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	if count >= int64(h.maxDrafts) {
		Conflict(c, "draft limit reached")
		return
	}

	draft := database.Draft{
		Name:       req.Name,
		TemplateID: h.templateIDOrDefault(req.TemplateID),
		Step:       req.Step,
		UserID:     userID,
	}
	if err := marshalDraftPayload(&draft, req); err != nil {
		logger.Error("marshal draft payload failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if err := h.db.WithContext(ctx).Create(&draft).Error; err != nil {
		logger.Error("create draft failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	logger.Info("draft created", slog.Uint64("draft_id", uint64(draft.ID)))
	c.JSON(http.StatusCreated, gin.H{"id": draft.ID})
}

// ListDrafts 按更新时间倒序返回草稿摘要。
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var drafts []database.Draft
	if err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&drafts).Error; err != nil {
		h.loggerFromContext(c).Error("list drafts failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	items := make([]draftSummary, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, draftSummary{
			ID:         d.ID,
			Name:       d.Name,
			TemplateID: d.TemplateID,
			Step:       d.Step,
			UpdatedAt:  d.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"drafts": items})
}

// GetDraft 返回完整草稿内容，供编辑器恢复状态。
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, ok := h.lookupDraft(c)
	if !ok {
		return
	}

	resp, err := draftToResponse(draft)
	if err != nil {
		h.loggerFromContext(c).Error("decode draft payload failed",
			slog.Uint64("draft_id", uint64(draft.ID)),
			slog.Any("error", err),
		)
		Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateDraft 整体覆盖一份已有草稿。
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	draft, ok := h.lookupDraft(c)
	if !ok {
		return
	}

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if !h.validTemplateID(req.TemplateID) {
		BadRequest(c, "unknown template id")
		return
	}

	draft.Name = req.Name
	draft.TemplateID = h.templateIDOrDefault(req.TemplateID)
	draft.Step = req.Step
	if err := marshalDraftPayload(&draft, req); err != nil {
		h.loggerFromContext(c).Error("marshal draft payload failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&draft).Error; err != nil {
		h.loggerFromContext(c).Error("update draft failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteDraft 删除一份草稿。
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	draft, ok := h.lookupDraft(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&draft).Error; err != nil {
		h.loggerFromContext(c).Error("delete draft failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DraftHandler) lookupDraft(c *gin.Context) (database.Draft, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return database.Draft{}, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid draft id")
		return database.Draft{}, false
	}

	var draft database.Draft
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "draft not found")
			return database.Draft{}, false
		}
		h.loggerFromContext(c).Error("query draft failed", slog.Any("error", err))
		Internal(c, "internal error")
		return database.Draft{}, false
	}
	return draft, true
}

func (h *DraftHandler) validTemplateID(id string) bool {
	if id == "" {
		return true
	}
	_, ok := h.catalog.Get(id)
	return ok
}

func (h *DraftHandler) templateIDOrDefault(id string) string {
	if id == "" {
		return "chikorita"
	}
	return id
}

func (h *DraftHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	return h.logger
}

func marshalDraftPayload(draft *database.Draft, req draftRequest) error {
	content, err := json.Marshal(req.Content)
	if err != nil {
		return err
	}
	customizations, err := json.Marshal(req.Customizations)
	if err != nil {
		return err
	}
	draft.Content = datatypes.JSON(content)
	draft.Customizations = datatypes.JSON(customizations)
	return nil
}

func draftToResponse(draft database.Draft) (draftResponse, error) {
	resp := draftResponse{
		ID:         draft.ID,
		Name:       draft.Name,
		TemplateID: draft.TemplateID,
		Step:       draft.Step,
		UpdatedAt:  draft.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if len(draft.Content) > 0 {
		if err := json.Unmarshal(draft.Content, &resp.Content); err != nil {
			return draftResponse{}, err
		}
	}
	if len(draft.Customizations) > 0 {
		if err := json.Unmarshal(draft.Customizations, &resp.Customizations); err != nil {
			return draftResponse{}, err
		}
	}
	return resp, nil
}

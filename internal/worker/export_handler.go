package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumecraft/internal/database"
	"resumecraft/internal/errcode"
	"resumecraft/internal/export"
	"resumecraft/internal/pdf"
	"resumecraft/internal/resume"
	"resumecraft/internal/tasks"
)

// ExportTaskHandler 消费导出任务：渲染简历并把产物写进对象存储。
// PDF 通过内部打印接口拿 HTML 再走无头浏览器；
// DOCX 直接从简历内容构建，不经过浏览器。
type ExportTaskHandler struct {
	db                 *gorm.DB
	storage            objectUploader
	redisClient        *redis.Client
	logger             *slog.Logger
	internalSecret     string
	internalAPIBaseURL string
}

// objectUploader 抽象对象存储操作，便于测试注入。
type objectUploader interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// NewExportTaskHandler 构造导出任务处理器。
func NewExportTaskHandler(
	db *gorm.DB,
	storage objectUploader,
	redisClient *redis.Client,
	logger *slog.Logger,
	internalSecret string,
	internalAPIBaseURL string,
) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:                 db,
		storage:            storage,
		redisClient:        redisClient,
		logger:             logger,
		internalSecret:     internalSecret,
		internalAPIBaseURL: strings.TrimRight(strings.TrimSpace(internalAPIBaseURL), "/"),
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.ExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal export payload failed", slog.Any("error", err))
		return err
	}

	format := "pdf"
	if t.Type() == tasks.TypeExportDOCX {
		format = "docx"
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
		slog.String("format", format),
	)
	log.Info("starting resume export task")

	var record database.Resume
	if err := h.db.WithContext(ctx).First(&record, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(record.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		if err := h.db.WithContext(ctx).Model(&record).
			Update("export_status", database.ExportStatusFailed).Error; err != nil {
			log.Error("mark export failed errored", slog.Any("error", err))
		}

		notify := ExportNotifyMessage{
			Status:        NotifyStatusFailed,
			ResumeID:      record.ID,
			Format:        format,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, record.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	var (
		artifact    []byte
		contentType string
		err         error
	)
	switch format {
	case "docx":
		artifact, err = h.buildDOCX(record)
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		artifact, err = h.buildPDF(ctx, record.ID, payload.CorrelationID)
		contentType = "application/pdf"
	}
	if err != nil {
		log.Error("build export artifact failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("exports/%d/%s.%s", record.UserID, uuid.NewString(), format)
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(artifact), int64(len(artifact)), contentType); err != nil {
		log.Error("upload export artifact failed", slog.Any("error", err))
		return err
	}

	previousKey := record.ExportObjectKey

	update := map[string]any{
		"export_object_key": objectName,
		"export_format":     format,
		"export_status":     database.ExportStatusCompleted,
	}
	if err := h.db.WithContext(ctx).Model(&record).Updates(update).Error; err != nil {
		log.Error("update resume export state failed", slog.Any("error", err))
		return err
	}

	// 上一份产物不再被引用，尽力回收；失败只记日志。
	if previousKey != "" && previousKey != objectName {
		if err := h.storage.DeleteObject(ctx, previousKey); err != nil {
			log.Warn("delete previous export artifact failed",
				slog.String("object_key", previousKey),
				slog.Any("error", err),
			)
		}
	}

	notify := ExportNotifyMessage{
		Status:        NotifyStatusCompleted,
		ResumeID:      record.ID,
		Format:        format,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishExportNotify(ctx, record.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("resume export task completed")
	return nil
}

func (h *ExportTaskHandler) buildPDF(ctx context.Context, resumeID uint, correlationID string) ([]byte, error) {
	html, err := fetchPrintHTML(ctx, h.internalAPIBaseURL, resumeID, h.internalSecret, correlationID)
	if err != nil {
		return nil, err
	}
	return pdf.GeneratePDFFromHTML(html)
}

func (h *ExportTaskHandler) buildDOCX(record database.Resume) ([]byte, error) {
	var data resume.Data
	if len(record.Content) > 0 {
		if err := json.Unmarshal(record.Content, &data); err != nil {
			return nil, fmt.Errorf("decode resume content: %w", err)
		}
	}
	return export.BuildDOCX(data)
}

func (h *ExportTaskHandler) publishExportNotify(ctx context.Context, userID uint, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}

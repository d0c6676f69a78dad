package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumecraft/internal/api/middleware"
	"resumecraft/internal/extract"
	"resumecraft/internal/resume"
)

// 每个用户每天最多解析这么多份 PDF，防止刷爆抽取服务。
const importDailyLimit = 20

// %PDF- 魔数，文件类型以内容为准而不是扩展名。
var pdfMagic = []byte("%PDF-")

// resumeParser 抽象抽取客户端，便于测试注入假实现。
type resumeParser interface {
	Parse(ctx context.Context, filename string, pdfBytes []byte) (resume.Data, error)
}

// ImportHandler 负责 PDF 简历导入：扫描、限频、调用抽取服务。
type ImportHandler struct {
	parser    resumeParser
	redis     redis.UniversalClient
	logger    *slog.Logger
	clamdAddr string
	maxBytes  int64
}

// NewImportHandler 构造导入处理器。
func NewImportHandler(parser resumeParser, redisClient redis.UniversalClient, logger *slog.Logger, clamdAddr string, maxBytes int64) *ImportHandler {
	return &ImportHandler{
		parser:    parser,
		redis:     redisClient,
		logger:    logger,
		clamdAddr: clamdAddr,
		maxBytes:  maxBytes,
	}
}

// ImportResume 接收 PDF 文件并返回结构化简历数据。
// 返回的数据不落库：前端先让用户检查抽取结果，确认后再保存。
func (h *ImportHandler) ImportResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	logger := h.loggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))
	ctx := c.Request.Context()

	rateKey := fmt.Sprintf("rate:import:%d:%s", userID, time.Now().UTC().Format("20060102"))
	count, err := incrWithTTL(ctx, h.redis, rateKey, 24*time.Hour)
	if err != nil {
		logger.Warn("import rate counter unavailable", slog.Any("error", err))
	}
	if count > importDailyLimit {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily import limit reached"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > h.maxBytes {
		BadRequest(c, fmt.Sprintf("file exceeds maximum size of %d bytes", h.maxBytes))
		return
	}

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	defer reader.Close()

	pdfBytes, err := io.ReadAll(io.LimitReader(reader, h.maxBytes))
	if err != nil {
		Internal(c, "failed to read file")
		return
	}
	if !bytes.HasPrefix(pdfBytes, pdfMagic) {
		BadRequest(c, "file is not a PDF")
		return
	}

	if err := scanWithClamd(logger, h.clamdAddr, bytes.NewReader(pdfBytes)); err != nil {
		if errors.Is(err, errMaliciousFile) {
			BadRequest(c, "malicious file detected")
			return
		}
		logger.Error("scan import failed", slog.Any("error", err))
		Internal(c, "failed to scan file")
		return
	}

	data, err := h.parser.Parse(ctx, sanitizeFilename(file.Filename), pdfBytes)
	if err != nil {
		var extractErr *extract.Error
		if errors.As(err, &extractErr) {
			logger.Info("extraction rejected file", slog.String("reason", extractErr.Message))
			Error(c, http.StatusUnprocessableEntity, extractErr.Message)
			return
		}
		logger.Error("extraction failed", slog.Any("error", err))
		Error(c, http.StatusBadGateway, "extraction service unavailable")
		return
	}

	logger.Info("resume imported",
		slog.Int("experience_count", len(data.Experience)),
		slog.Int("education_count", len(data.Education)),
		slog.Int("skill_count", len(data.Skills)),
	)
	c.JSON(http.StatusOK, gin.H{"content": data})
}

func (h *ImportHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	return h.logger
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "resume.pdf"
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '\n', '\r', 0:
			return '-'
		}
		return r
	}, name)
	return name
}

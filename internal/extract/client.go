// Package extract 封装对外部 PDF 解析服务的调用。
// 服务返回的 JSON 先经 schema 校验再进入内部模型，
// 避免上游字段漂移悄悄污染简历数据。
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"resumecraft/internal/resume"
)

// responseSchema 描述解析服务 data 字段的最小契约。
// 只约束类型，不约束必填：服务对缺失信息返回空串/空数组。
const responseSchema = `{
  "type": "object",
  "properties": {
    "personal_info": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "title": {"type": "string"},
        "email": {"type": "string"},
        "phone": {"type": "string"},
        "location": {"type": "string"},
        "website": {"type": "string"},
        "linkedin": {"type": "string"}
      }
    },
    "summary": {"type": "string"},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "company": {"type": "string"},
          "position": {"type": "string"},
          "start_date": {"type": "string"},
          "end_date": {"type": "string"},
          "current": {"type": "boolean"},
          "description": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "degree": {"type": "string"},
          "school": {"type": "string"},
          "location": {"type": "string"},
          "start_date": {"type": "string"},
          "end_date": {"type": "string"},
          "gpa": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "level": {"type": "string"}
        }
      }
    },
    "certifications": {"type": "array"},
    "languages": {"type": "array"}
  }
}`

// Error 表示解析服务明确拒绝了这份文件（而非传输失败）。
// 调用方据此返回 422 而不是 502。
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client 是解析服务的 HTTP 客户端。
type Client struct {
	baseURL    string
	httpClient *http.Client
	schema     *gojsonschema.Schema
}

// NewClient 预编译响应 schema 并构造客户端。
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("extractor base url missing")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("compile extractor response schema: %w", err)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		schema:     schema,
	}, nil
}

type parseEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Parse 上传 PDF 字节并返回结构化简历数据。
func (c *Client) Parse(ctx context.Context, filename string, pdfBytes []byte) (resume.Data, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return resume.Data{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(pdfBytes); err != nil {
		return resume.Data{}, fmt.Errorf("write multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return resume.Data{}, fmt.Errorf("close multipart body: %w", err)
	}

	targetURL := c.baseURL + "/api/v1/parse"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, &body)
	if err != nil {
		return resume.Data{}, fmt.Errorf("build extractor request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return resume.Data{}, fmt.Errorf("request extractor: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return resume.Data{}, fmt.Errorf("read extractor response: %w", err)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return resume.Data{}, &Error{Message: extractorMessage(raw)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resume.Data{}, fmt.Errorf("extractor status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var envelope parseEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return resume.Data{}, fmt.Errorf("decode extractor response: %w", err)
	}
	if !envelope.Success {
		return resume.Data{}, &Error{Message: firstNonEmpty(envelope.Error, "extraction rejected")}
	}
	if len(envelope.Data) == 0 {
		return resume.Data{}, &Error{Message: "extraction returned no data"}
	}

	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(envelope.Data))
	if err != nil {
		return resume.Data{}, fmt.Errorf("validate extractor response: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return resume.Data{}, fmt.Errorf("extractor response schema violation: %s", strings.Join(details, "; "))
	}

	var extracted resume.Extracted
	if err := json.Unmarshal(envelope.Data, &extracted); err != nil {
		return resume.Data{}, fmt.Errorf("decode extracted resume: %w", err)
	}

	return resume.FromExtracted(extracted), nil
}

func extractorMessage(raw []byte) string {
	var envelope parseEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return "file could not be parsed as a resume"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeExportPDF  = "export:pdf"
	TypeExportDOCX = "export:docx"
)

// ExportPayload 描述导出简历文档所需的最小信息。
type ExportPayload struct {
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewExportPDFTask 构造一个新的简历 PDF 导出任务。
func NewExportPDFTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportPayload{
		ResumeID:      id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExportPDF, payload), nil
}

// NewExportDOCXTask 构造一个新的简历 DOCX 导出任务。
func NewExportDOCXTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportPayload{
		ResumeID:      id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExportDOCX, payload), nil
}

package worker

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"testing"

	"gorm.io/datatypes"

	"resumecraft/internal/database"
	"resumecraft/internal/resume"
)

func TestBuildDOCX_FromStoredContent(t *testing.T) {
	content, err := json.Marshal(resume.Sample())
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	h := &ExportTaskHandler{}

	artifact, err := h.buildDOCX(database.Resume{Content: datatypes.JSON(content)})
	if err != nil {
		t.Fatalf("build docx: %v", err)
	}
	if _, err := zip.NewReader(bytes.NewReader(artifact), int64(len(artifact))); err != nil {
		t.Fatalf("artifact is not a zip package: %v", err)
	}
}

func TestBuildDOCX_EmptyContent(t *testing.T) {
	h := &ExportTaskHandler{}
	if _, err := h.buildDOCX(database.Resume{}); err != nil {
		t.Fatalf("empty content must still produce a document: %v", err)
	}
}

func TestBuildDOCX_CorruptContent(t *testing.T) {
	h := &ExportTaskHandler{}
	if _, err := h.buildDOCX(database.Resume{Content: datatypes.JSON(`{broken`)}); err == nil {
		t.Fatal("corrupt content must fail the build")
	}
}

func TestExportNotifyMessage_WireFormat(t *testing.T) {
	raw, err := json.Marshal(ExportNotifyMessage{
		Status:        NotifyStatusCompleted,
		ResumeID:      7,
		Format:        "pdf",
		CorrelationID: "corr-1",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"status", "resume_id", "format", "correlation_id", "error_code"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("wire message missing %q", key)
		}
	}
}

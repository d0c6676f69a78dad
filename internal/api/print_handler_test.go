package api

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resumecraft/internal/resume"
)

func TestPrintResume(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	record := seedResume(t, db, 7, "chikorita", resume.Sample())
	h := NewPrintHandler(db, newTestRenderer(t), testLogger())

	router := gin.New()
	router.GET("/v1/internal/resumes/:id/print", h.PrintResume)

	w := doJSON(t, router, http.MethodGet, "/v1/internal/resumes/"+strconv.FormatUint(uint64(record.ID), 10)+"/print", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Jordan Lee") {
		t.Fatal("print view must contain the resume content")
	}
	if strings.Contains(w.Body.String(), "data-field=") {
		t.Fatal("print view must never include editable markers")
	}
}

func TestPrintResume_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPrintHandler(newTestDB(t), newTestRenderer(t), testLogger())

	router := gin.New()
	router.GET("/v1/internal/resumes/:id/print", h.PrintResume)

	if w := doJSON(t, router, http.MethodGet, "/v1/internal/resumes/999/print", nil); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/v1/internal/resumes/abc/print", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumecraft/internal/database"
	"resumecraft/internal/render"
	"resumecraft/internal/resume"
	"resumecraft/internal/template"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Resume{}, &database.Draft{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New(template.Builtin(), testLogger())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// asUser 模拟认证中间件注入用户身份。
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

type fakeObjectStore struct {
	url    string
	params map[string]string
	keys   []string
}

func (s *fakeObjectStore) GeneratePresignedURLWithParams(_ context.Context, objectKey string, _ time.Duration, params map[string]string) (string, error) {
	s.keys = append(s.keys, objectKey)
	s.params = params
	if s.url != "" {
		return s.url, nil
	}
	return "https://example.invalid/" + objectKey, nil
}

func newResumeHandler(t *testing.T, db *gorm.DB, store objectStore) *ResumeHandler {
	t.Helper()
	return NewResumeHandler(db, nil, store, newTestRenderer(t), template.Builtin(), testLogger(), "")
}

func seedResume(t *testing.T, db *gorm.DB, userID uint, templateID string, data resume.Data) database.Resume {
	t.Helper()
	content, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	record := database.Resume{
		Title:      "My Resume",
		TemplateID: templateID,
		Content:    datatypes.JSON(content),
		UserID:     userID,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return record
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSaveResume_CreateThenFetch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newResumeHandler(t, db, &fakeObjectStore{})

	router := gin.New()
	router.PUT("/v1/resume", asUser(1), h.SaveResume)
	router.GET("/v1/resume/latest", asUser(1), h.GetLatestResume)

	w := doJSON(t, router, http.MethodPut, "/v1/resume", gin.H{
		"title":       "Backend CV",
		"template_id": "onyx",
		"content":     resume.Sample(),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/v1/resume/latest", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", w.Code, w.Body.String())
	}
	var resp resumeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Title != "Backend CV" || resp.TemplateID != "onyx" {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Content.PersonalInfo.Name != "Jordan Lee" {
		t.Fatalf("content round trip lost data: %+v", resp.Content.PersonalInfo)
	}
}

func TestSaveResume_UnknownTemplateRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newResumeHandler(t, newTestDB(t), &fakeObjectStore{})

	router := gin.New()
	router.PUT("/v1/resume", asUser(1), h.SaveResume)

	w := doJSON(t, router, http.MethodPut, "/v1/resume", gin.H{"template_id": "no-such"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetLatestResume_NoneYet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newResumeHandler(t, newTestDB(t), &fakeObjectStore{})

	router := gin.New()
	router.GET("/v1/resume/latest", asUser(1), h.GetLatestResume)

	if w := doJSON(t, router, http.MethodGet, "/v1/resume/latest", nil); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUpdateField_Persists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newResumeHandler(t, db, &fakeObjectStore{})
	record := seedResume(t, db, 1, "chikorita", resume.Sample())

	router := gin.New()
	router.PATCH("/v1/resume/field", asUser(1), h.UpdateField)

	w := doJSON(t, router, http.MethodPatch, "/v1/resume/field", gin.H{
		"field_path": "personalInfo.name",
		"value":      "Robin Okafor",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var reloaded database.Resume
	if err := db.First(&reloaded, record.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	var data resume.Data
	if err := json.Unmarshal(reloaded.Content, &data); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if data.PersonalInfo.Name != "Robin Okafor" {
		t.Fatalf("name = %q", data.PersonalInfo.Name)
	}
	if data.Summary != resume.Sample().Summary {
		t.Fatal("untouched fields must survive")
	}
}

func TestUpdateField_BadPathLeavesContentIntact(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newResumeHandler(t, db, &fakeObjectStore{})
	record := seedResume(t, db, 1, "chikorita", resume.Sample())

	router := gin.New()
	router.PATCH("/v1/resume/field", asUser(1), h.UpdateField)

	w := doJSON(t, router, http.MethodPatch, "/v1/resume/field", gin.H{
		"field_path": "experience.no-such-id.position",
		"value":      "x",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	var reloaded database.Resume
	if err := db.First(&reloaded, record.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !bytes.Equal(reloaded.Content, record.Content) {
		t.Fatal("rejected update must not change stored content")
	}
}

func TestUpdateField_NoResume(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newResumeHandler(t, newTestDB(t), &fakeObjectStore{})

	router := gin.New()
	router.PATCH("/v1/resume/field", asUser(1), h.UpdateField)

	w := doJSON(t, router, http.MethodPatch, "/v1/resume/field", gin.H{
		"field_path": "summary",
		"value":      "x",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRenderResume_EditModeToggle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newResumeHandler(t, db, &fakeObjectStore{})
	seedResume(t, db, 1, "chikorita", resume.Sample())

	router := gin.New()
	router.GET("/v1/resume/render", asUser(1), h.RenderResume)

	w := doJSON(t, router, http.MethodGet, "/v1/resume/render", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if strings.Contains(w.Body.String(), "data-field=") {
		t.Fatal("default render must not include editable markers")
	}

	w = doJSON(t, router, http.MethodGet, "/v1/resume/render?edit_mode=true", nil)
	if !strings.Contains(w.Body.String(), `data-field="personalInfo.name"`) {
		t.Fatal("edit_mode render must include editable markers")
	}
}

func TestExportResume_InvalidFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newResumeHandler(t, newTestDB(t), &fakeObjectStore{})

	router := gin.New()
	router.POST("/v1/resume/export", asUser(1), h.ExportResume)

	w := doJSON(t, router, http.MethodPost, "/v1/resume/export?format=odt", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetDownloadLink_RequiresCompletedExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	store := &fakeObjectStore{}
	h := newResumeHandler(t, db, store)
	record := seedResume(t, db, 1, "chikorita", resume.Sample())

	router := gin.New()
	router.GET("/v1/resume/download-link", asUser(1), h.GetDownloadLink)

	w := doJSON(t, router, http.MethodGet, "/v1/resume/download-link", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 before export completes", w.Code)
	}

	if err := db.Model(&record).Updates(map[string]any{
		"export_status":     database.ExportStatusCompleted,
		"export_format":     "pdf",
		"export_object_key": "exports/1/abc.pdf",
	}).Error; err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	w = doJSON(t, router, http.MethodGet, "/v1/resume/download-link", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(store.keys) != 1 || store.keys[0] != "exports/1/abc.pdf" {
		t.Fatalf("presigned keys = %v", store.keys)
	}
	disposition := store.params["response-content-disposition"]
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "My Resume.pdf") {
		t.Fatalf("disposition = %q", disposition)
	}
}

func newPhotoUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadPhoto_StoresDataURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newResumeHandler(t, db, &fakeObjectStore{})
	record := seedResume(t, db, 1, "chikorita", resume.Sample())

	router := gin.New()
	router.POST("/v1/resume/photo", asUser(1), h.UploadPhoto)

	body, contentType := newPhotoUpload(t, "avatar.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	req := httptest.NewRequest(http.MethodPost, "/v1/resume/photo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var reloaded database.Resume
	if err := db.First(&reloaded, record.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	var data resume.Data
	if err := json.Unmarshal(reloaded.Content, &data); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	if !strings.HasPrefix(data.PersonalInfo.Photo, "data:image/png;base64,") {
		t.Fatalf("photo = %q, want data URL", data.PersonalInfo.Photo)
	}
}

func TestUploadPhoto_RejectsWrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newResumeHandler(t, db, &fakeObjectStore{})
	seedResume(t, db, 1, "chikorita", resume.Sample())

	router := gin.New()
	router.POST("/v1/resume/photo", asUser(1), h.UploadPhoto)

	body, contentType := newPhotoUpload(t, "avatar.gif", "image/gif", []byte("GIF89a"))
	req := httptest.NewRequest(http.MethodPost, "/v1/resume/photo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestResumeScoping_OtherUsersInvisible(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := newResumeHandler(t, db, &fakeObjectStore{})
	seedResume(t, db, 2, "chikorita", resume.Sample())

	router := gin.New()
	router.GET("/v1/resume/latest", asUser(1), h.GetLatestResume)

	if w := doJSON(t, router, http.MethodGet, "/v1/resume/latest", nil); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, another user's resume leaked", w.Code)
	}
}

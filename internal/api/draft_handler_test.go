package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumecraft/internal/database"
	"resumecraft/internal/resume"
	"resumecraft/internal/template"
)

func newDraftRouter(t *testing.T, db *gorm.DB, maxDrafts int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewDraftHandler(db, template.Builtin(), testLogger(), maxDrafts)

	router := gin.New()
	g := router.Group("/v1/drafts", asUser(1))
	g.POST("", h.CreateDraft)
	g.GET("", h.ListDrafts)
	g.GET("/:id", h.GetDraft)
	g.PUT("/:id", h.UpdateDraft)
	g.DELETE("/:id", h.DeleteDraft)
	return router
}

func TestCreateDraft_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	router := newDraftRouter(t, db, 20)

	w := doJSON(t, router, http.MethodPost, "/v1/drafts", gin.H{
		"name":        "wizard step 2",
		"template_id": "azurill",
		"content":     resume.Sample(),
		"step":        2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/drafts/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", w.Code, w.Body.String())
	}
	var resp draftResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	if resp.Name != "wizard step 2" || resp.TemplateID != "azurill" || resp.Step != 2 {
		t.Fatalf("draft = %+v", resp)
	}
	if resp.Content.PersonalInfo.Name != "Jordan Lee" {
		t.Fatal("draft content lost in round trip")
	}
}

func TestCreateDraft_DefaultsTemplate(t *testing.T) {
	db := newTestDB(t)
	router := newDraftRouter(t, db, 20)

	w := doJSON(t, router, http.MethodPost, "/v1/drafts", gin.H{"name": "untitled"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var draft database.Draft
	if err := db.First(&draft).Error; err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if draft.TemplateID != "chikorita" {
		t.Fatalf("template id = %q, want default", draft.TemplateID)
	}
}

func TestCreateDraft_UnknownTemplate(t *testing.T) {
	router := newDraftRouter(t, newTestDB(t), 20)

	w := doJSON(t, router, http.MethodPost, "/v1/drafts", gin.H{
		"name":        "bad",
		"template_id": "no-such",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateDraft_QuotaEnforced(t *testing.T) {
	db := newTestDB(t)
	router := newDraftRouter(t, db, 2)

	for i := 0; i < 2; i++ {
		w := doJSON(t, router, http.MethodPost, "/v1/drafts", gin.H{"name": fmt.Sprintf("draft %d", i)})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed draft %d: status %d", i, w.Code)
		}
	}

	w := doJSON(t, router, http.MethodPost, "/v1/drafts", gin.H{"name": "one too many"})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 at quota", w.Code)
	}
}

func TestListDrafts_SummariesOnly(t *testing.T) {
	db := newTestDB(t)
	router := newDraftRouter(t, db, 20)

	for _, name := range []string{"first", "second"} {
		if w := doJSON(t, router, http.MethodPost, "/v1/drafts", gin.H{"name": name}); w.Code != http.StatusCreated {
			t.Fatalf("create %s: %d", name, w.Code)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/v1/drafts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Drafts []draftSummary `json:"drafts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Drafts) != 2 {
		t.Fatalf("drafts = %d, want 2", len(resp.Drafts))
	}
}

func TestUpdateDraft_Overwrites(t *testing.T) {
	db := newTestDB(t)
	router := newDraftRouter(t, db, 20)

	w := doJSON(t, router, http.MethodPost, "/v1/drafts", gin.H{"name": "before"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var created struct {
		ID uint `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/v1/drafts/%d", created.ID), gin.H{
		"name": "after",
		"step": 3,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	var draft database.Draft
	if err := db.First(&draft, created.ID).Error; err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if draft.Name != "after" || draft.Step != 3 {
		t.Fatalf("draft = %+v", draft)
	}
}

func TestDeleteDraft(t *testing.T) {
	db := newTestDB(t)
	router := newDraftRouter(t, db, 20)

	w := doJSON(t, router, http.MethodPost, "/v1/drafts", gin.H{"name": "doomed"})
	var created struct {
		ID uint `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	if w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/v1/drafts/%d", created.ID), nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/drafts/%d", created.ID), nil); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", w.Code)
	}
}

func TestDraftScoping_OtherUsersHidden(t *testing.T) {
	db := newTestDB(t)
	router := newDraftRouter(t, db, 20)

	other := database.Draft{Name: "not yours", TemplateID: "chikorita", UserID: 2}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed draft: %v", err)
	}

	if w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/v1/drafts/%d", other.ID), nil); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, another user's draft leaked", w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/v1/drafts", nil)
	var resp struct {
		Drafts []draftSummary `json:"drafts"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Drafts) != 0 {
		t.Fatalf("list leaked %d foreign drafts", len(resp.Drafts))
	}
}

func TestDraft_InvalidID(t *testing.T) {
	router := newDraftRouter(t, newTestDB(t), 20)

	if w := doJSON(t, router, http.MethodGet, "/v1/drafts/abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newParseServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, srv
}

func TestParse_Success(t *testing.T) {
	c, _ := newParseServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/parse" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("file part missing: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": {
			"personal_info": {"name": " Ada Lovelace ", "email": "ada@example.com"},
			"summary": "Mathematician.",
			"experience": [{"position": "Analyst", "company": "Babbage & Co", "description": ["wrote the first program"]}],
			"skills": [{"name": "Mathematics", "level": "Expert"}]
		}}`))
	})

	data, err := c.Parse(context.Background(), "cv.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.PersonalInfo.Name != "Ada Lovelace" {
		t.Fatalf("name = %q", data.PersonalInfo.Name)
	}
	if len(data.Experience) != 1 || data.Experience[0].ID == "" {
		t.Fatalf("experience = %+v, want one entry with generated id", data.Experience)
	}
	if data.Experience[0].Description[0] != "wrote the first program" {
		t.Fatalf("description = %v", data.Experience[0].Description)
	}
}

func TestParse_UnprocessableBecomesTypedError(t *testing.T) {
	c, _ := newParseServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success": false, "error": "not a resume"}`))
	})

	_, err := c.Parse(context.Background(), "cv.pdf", []byte("%PDF-1.4"))
	var extractErr *Error
	if !errors.As(err, &extractErr) {
		t.Fatalf("err = %T %v, want *Error", err, err)
	}
	if extractErr.Message != "not a resume" {
		t.Fatalf("message = %q", extractErr.Message)
	}
}

func TestParse_SuccessFalseBecomesTypedError(t *testing.T) {
	c, _ := newParseServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "no text layer"}`))
	})

	_, err := c.Parse(context.Background(), "cv.pdf", []byte("%PDF-1.4"))
	var extractErr *Error
	if !errors.As(err, &extractErr) {
		t.Fatalf("err = %T %v, want *Error", err, err)
	}
}

func TestParse_ServerErrorIsNotTyped(t *testing.T) {
	c, _ := newParseServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Parse(context.Background(), "cv.pdf", []byte("%PDF-1.4"))
	if err == nil {
		t.Fatal("expected error")
	}
	var extractErr *Error
	if errors.As(err, &extractErr) {
		t.Fatal("transport failures must not look like rejection")
	}
}

func TestParse_SchemaViolation(t *testing.T) {
	c, _ := newParseServer(t, func(w http.ResponseWriter, r *http.Request) {
		// summary 应该是字符串。
		w.Write([]byte(`{"success": true, "data": {"summary": 42}}`))
	})

	_, err := c.Parse(context.Background(), "cv.pdf", []byte("%PDF-1.4"))
	if err == nil {
		t.Fatal("expected schema violation error")
	}
	if !strings.Contains(err.Error(), "schema violation") {
		t.Fatalf("err = %v, want schema violation", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("  ", time.Second); err == nil {
		t.Fatal("empty base url must be rejected")
	}
	c, err := NewClient("http://localhost:8600/", time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if c.baseURL != "http://localhost:8600" {
		t.Fatalf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
}

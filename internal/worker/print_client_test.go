package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchPrintHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/internal/resumes/42/print" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("X-Internal-Secret") != "hunter2" {
			t.Errorf("secret header = %q", r.Header.Get("X-Internal-Secret"))
		}
		if r.Header.Get("X-Correlation-ID") != "corr-1" {
			t.Errorf("correlation header = %q", r.Header.Get("X-Correlation-ID"))
		}
		w.Write([]byte("<html>print view</html>"))
	}))
	defer srv.Close()

	html, err := fetchPrintHTML(context.Background(), srv.URL, 42, "hunter2", "corr-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(html, "print view") {
		t.Fatalf("html = %q", html)
	}
}

func TestFetchPrintHTML_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "resume not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fetchPrintHTML(context.Background(), srv.URL, 1, "hunter2", "")
	if err == nil {
		t.Fatal("expected error on non-2xx status")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("err = %v, want status in message", err)
	}
}

func TestFetchPrintHTML_RequiresSecretAndBaseURL(t *testing.T) {
	if _, err := fetchPrintHTML(context.Background(), "http://localhost:8080", 1, "  ", ""); err == nil {
		t.Fatal("empty secret must be rejected before any request")
	}
	if _, err := fetchPrintHTML(context.Background(), "", 1, "hunter2", ""); err == nil {
		t.Fatal("empty base url must be rejected before any request")
	}
}

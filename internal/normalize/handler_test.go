package normalize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"legaldocs-backend/internal/documents"
)

func newTestRouter(t *testing.T) (*gin.Engine, *documents.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := documents.NewMemoryRepo()
	router := gin.New()
	NewHandler(&Service{Repo: repo}).RegisterRoutes(router.Group("/api/v1"))
	return router, repo
}

func TestHandlerNormalizeOneDryRun(t *testing.T) {
	router, repo := newTestRouter(t)

	created, err := repo.Create(context.Background(), documents.Document{
		FileName: "doc.pdf",
		AreaData: json.RawMessage(`[{"key":"court","value":"X"}]`),
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/1/normalize?dryRun=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report ChangeReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !report.HasChanges || !report.DryRun || report.Persisted {
		t.Fatalf("unexpected report %+v", report)
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(stored.AreaData), "[") {
		t.Fatalf("dry run modified the store: %s", stored.AreaData)
	}
}

func TestHandlerNormalizeOneNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/42/normalize", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerNormalizeAll(t *testing.T) {
	router, repo := newTestRouter(t)

	if _, err := repo.Create(context.Background(), documents.Document{
		FileName: "doc.pdf",
		Metadata: json.RawMessage(`[{"key":"a","value":"1"}]`),
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/normalize",
		strings.NewReader(`{"includeDetails":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if summary.Scanned != 1 || summary.Changed != 1 || summary.Persisted != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.Reports) != 1 {
		t.Fatalf("expected detailed reports, got %+v", summary.Reports)
	}
}

func TestHandlerNormalizeAllEmptyBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/normalize", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty body, got %d: %s", rec.Code, rec.Body.String())
	}
}

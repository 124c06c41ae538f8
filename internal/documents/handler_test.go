package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"legaldocs-backend/internal/filekind"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	svc := &Service{
		Repo: repo,
		Extract: func(data []byte, kind filekind.Kind) (string, error) {
			_ = data
			_ = kind
			return "extracted text", nil
		},
	}

	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreateDocument(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/documents",
		`{"fileName":"ruling.pdf","title":"Smith v. Jones","metadata":"{\"docket\":\"22-cv-104\"}"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp documentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if resp.Title == nil || *resp.Title != "Smith v. Jones" {
		t.Fatalf("expected title, got %v", resp.Title)
	}
	if resp.Metadata == nil || !strings.Contains(*resp.Metadata, "docket") {
		t.Fatalf("expected metadata JSON string, got %v", resp.Metadata)
	}
}

func TestHandlerCreateRequiresFileName(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/documents", `{"title":"No Name"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "validation_error") {
		t.Fatalf("expected validation_error code, got %s", rec.Body.String())
	}
}

func uploadRequest(t *testing.T, fileName, contentType, fileBody, fields string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(fileBody)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if fields != "" {
		if err := writer.WriteField("fields", fields); err != nil {
			t.Fatalf("write fields: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandlerUploadDocument(t *testing.T) {
	router, _ := newTestRouter(t)

	req := uploadRequest(t, "brief.pdf", "application/pdf", "%PDF-1.4 body",
		`{"title":"Uploaded Title"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp documentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.FileName != "brief.pdf" {
		t.Fatalf("expected fileName brief.pdf, got %q", resp.FileName)
	}
	if resp.Title == nil || *resp.Title != "Uploaded Title" {
		t.Fatalf("expected caller title, got %v", resp.Title)
	}
	if resp.Metadata == nil || !strings.Contains(*resp.Metadata, "originalFileName") {
		t.Fatalf("expected provenance in metadata, got %v", resp.Metadata)
	}
}

func TestHandlerUploadUnsupportedKind(t *testing.T) {
	router, _ := newTestRouter(t)

	req := uploadRequest(t, "notes.txt", "text/plain", "plain text", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "unsupported_media_type") {
		t.Fatalf("expected unsupported_media_type code, got %s", rec.Body.String())
	}
}

func TestHandlerUploadMissingFile(t *testing.T) {
	router, _ := newTestRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("fields", `{}`)
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerGetNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/documents/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_found") {
		t.Fatalf("expected not_found code, got %s", rec.Body.String())
	}
}

func TestHandlerGetInvalidID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/documents/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerUpdateEmptyBody(t *testing.T) {
	router, repo := newTestRouter(t)

	if _, err := repo.Create(context.Background(), Document{FileName: "doc.pdf"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/documents/1", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty update, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlerUpdateAndDelete(t *testing.T) {
	router, repo := newTestRouter(t)

	if _, err := repo.Create(context.Background(), Document{FileName: "doc.pdf"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/documents/1", `{"title":"Amended"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp documentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Title == nil || *resp.Title != "Amended" {
		t.Fatalf("expected amended title, got %v", resp.Title)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/documents/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/documents/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestHandlerListClampsLimit(t *testing.T) {
	router, repo := newTestRouter(t)

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(context.Background(), Document{FileName: "doc.pdf"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/documents?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []documentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(resp))
	}
}

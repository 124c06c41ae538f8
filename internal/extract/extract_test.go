package extract

import (
	"errors"
	"strings"
	"testing"

	"legaldocs-backend/internal/filekind"
)

func TestFromHTMLBodyText(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head><title>Ignored Title</title><style>body { color: red; }</style></head>
<body>
  <h1>Judgment</h1>
  <p>The   court finds
  in favor of the   plaintiff.</p>
  <script>console.log("ignored")</script>
</body>
</html>`

	got, err := FromHTML([]byte(page))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	want := "Judgment The court finds in favor of the plaintiff."
	if got != want {
		t.Fatalf("FromHTML = %q, want %q", got, want)
	}
}

func TestFromHTMLWithoutBody(t *testing.T) {
	got, err := FromHTML([]byte("<p>Order granted</p>"))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if !strings.Contains(got, "Order granted") {
		t.Fatalf("expected fragment text, got %q", got)
	}
}

func TestFromHTMLEmpty(t *testing.T) {
	if _, err := FromHTML(nil); !errors.Is(err, ErrEmptyStream) {
		t.Fatalf("expected ErrEmptyStream, got %v", err)
	}
}

func TestFromPDFEmpty(t *testing.T) {
	if _, err := FromPDF(nil); !errors.Is(err, ErrEmptyStream) {
		t.Fatalf("expected ErrEmptyStream, got %v", err)
	}
}

func TestFromPDFMalformed(t *testing.T) {
	if _, err := FromPDF([]byte("this is not a pdf")); err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
}

func TestMaterialize(t *testing.T) {
	data, err := Materialize(strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("Materialize = %q", data)
	}
}

func TestTextUnknownKind(t *testing.T) {
	if _, err := Text([]byte("x"), filekind.Unknown); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"legaldocs-backend/internal/filekind"
)

// ErrEmptyStream reports an upload that materialized to zero bytes.
var ErrEmptyStream = errors.New("empty upload stream")

// Materialize consumes the whole stream into memory. Upload size limits are
// enforced at the transport boundary, so a full read is acceptable here.
func Materialize(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload stream: %w", err)
	}
	return data, nil
}

// Text extracts plain text from a materialized buffer for the given kind.
func Text(data []byte, kind filekind.Kind) (string, error) {
	switch kind {
	case filekind.PDF:
		return FromPDF(data)
	case filekind.HTML:
		return FromHTML(data)
	default:
		return "", fmt.Errorf("no extractor for file kind %q", kind)
	}
}

// FromPDF extracts the text of all pages in order.
func FromPDF(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyStream
	}

	// The pdf package panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parse pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

package filekind

import (
	"errors"
	"path/filepath"
	"strings"
)

// Kind classifies an upload for extractor selection.
type Kind string

const (
	PDF     Kind = "pdf"
	HTML    Kind = "html"
	Unknown Kind = "unknown"
)

// ErrBlankFileName reports a classification attempt without a file name.
var ErrBlankFileName = errors.New("fileName is required")

// Classify decides the file kind from the file name extension and the
// declared MIME type. The MIME type is optional; the extension alone is
// enough. Unrecognized inputs yield Unknown rather than an error.
func Classify(fileName, mimeType string) (Kind, error) {
	if strings.TrimSpace(fileName) == "" {
		return Unknown, ErrBlankFileName
	}

	name := strings.ToLower(fileName)
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	ext := filepath.Ext(name)

	switch {
	case strings.Contains(mime, "pdf") || ext == ".pdf":
		return PDF, nil
	case strings.Contains(mime, "html") || ext == ".html" || ext == ".htm":
		return HTML, nil
	default:
		return Unknown, nil
	}
}

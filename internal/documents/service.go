package documents

import (
	"context"
	"fmt"
	"io"
	"strings"

	"legaldocs-backend/internal/extract"
	"legaldocs-backend/internal/filekind"
	"legaldocs-backend/internal/llm"
	"legaldocs-backend/internal/shared/telemetry"
	"legaldocs-backend/internal/shared/util"
)

// Service orchestrates the create, read, update, and delete paths for
// documents. Enricher may be nil; the upload path then behaves as if
// the capability reported itself unavailable.
type Service struct {
	Repo     Repo
	Enricher llm.Enricher
	// Extract is overridable for tests; nil falls back to extract.Text.
	Extract func(data []byte, kind filekind.Kind) (string, error)
}

// CreateInput is the explicit-create request: a required file name plus
// any caller-supplied business fields.
type CreateInput struct {
	FileName string
	Fields
}

// UploadInput is the upload-create request. Explicit fields may ride
// along and take precedence over anything derived from the file.
type UploadInput struct {
	FileName string
	MimeType string
	Body     io.Reader
	Fields
}

// UpdateInput carries a partial update; only fields present in the
// request are touched.
type UpdateInput struct {
	FileName NullableString
	Fields
}

// CreateExplicit creates a document from caller-supplied fields only.
func (s *Service) CreateExplicit(ctx context.Context, in CreateInput) (Document, error) {
	fileName, err := util.SanitizeFileName(in.FileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: fileName is required", ErrInvalidInput)
	}

	doc, err := Merge(in.Fields, nil, nil)
	if err != nil {
		return Document{}, err
	}
	doc.FileName = fileName

	return s.Repo.Create(ctx, doc)
}

// CreateFromUpload classifies, extracts, optionally enriches, merges,
// and persists an uploaded file. Classification happens before the
// stream is materialized so unsupported uploads fail without any I/O.
func (s *Service) CreateFromUpload(ctx context.Context, in UploadInput) (Document, error) {
	fileName, err := util.SanitizeFileName(in.FileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	kind, err := filekind.Classify(fileName, in.MimeType)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if kind == filekind.Unknown {
		return Document{}, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFileKind, fileName, in.MimeType)
	}

	data, err := extract.Materialize(in.Body)
	if err != nil {
		return Document{}, &DataError{Field: "file", Err: err}
	}
	if len(data) == 0 {
		return Document{}, &DataError{Field: "file", Err: extract.ErrEmptyStream}
	}

	extractFn := s.Extract
	if extractFn == nil {
		extractFn = extract.Text
	}
	text, err := extractFn(data, kind)
	if err != nil {
		return Document{}, &DataError{Field: "file", Err: err}
	}

	var enr *llm.Enrichment
	if text != "" && s.Enricher != nil {
		if got, ok := s.Enricher.Enrich(ctx, text); ok {
			enr = got
		}
	}

	prov := Provenance{
		OriginalFileName: fileName,
		MimeType:         strings.TrimSpace(in.MimeType),
		ExtractedText:    text,
		Checksum:         util.HashContent(data),
	}
	if enr != nil {
		prov.AIRaw = enr.Raw
	}

	doc, err := Merge(in.Fields, enr, &prov)
	if err != nil {
		return Document{}, err
	}
	doc.FileName = fileName

	created, err := s.Repo.Create(ctx, doc)
	if err != nil {
		return Document{}, err
	}

	telemetry.Info("document.ingested", map[string]any{
		"document_id": created.ID,
		"file_kind":   string(kind),
		"file_name":   fileName,
		"bytes":       len(data),
		"text_chars":  len(text),
		"enriched":    enr != nil,
	})
	return created, nil
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id int64) (Document, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns documents ordered newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Document, error) {
	return s.Repo.List(ctx, limit, offset)
}

// UpdateDocument applies a partial update. Presence in the request, not
// non-nilness, decides whether a field is touched; a request touching
// nothing is a usage error rejected before any persistence call.
func (s *Service) UpdateDocument(ctx context.Context, id int64, in UpdateInput) (Document, error) {
	upd, err := s.buildUpdate(in)
	if err != nil {
		return Document{}, err
	}
	if upd.Empty() {
		return Document{}, fmt.Errorf("%w: update touches no fields", ErrInvalidInput)
	}
	return s.Repo.Update(ctx, id, upd)
}

// Delete removes a document by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

func (s *Service) buildUpdate(in UpdateInput) (Update, error) {
	var upd Update

	if in.FileName.Set {
		if in.FileName.Value == nil {
			return Update{}, fmt.Errorf("%w: fileName cannot be blank", ErrInvalidInput)
		}
		sanitized, err := util.SanitizeFileName(*in.FileName.Value)
		if err != nil {
			return Update{}, fmt.Errorf("%w: fileName cannot be blank", ErrInvalidInput)
		}
		upd.FileName = stringValue(sanitized)
	}

	upd.Title = in.Title
	upd.Court = in.Court
	upd.CaseNumber = in.CaseNumber
	upd.Summary = in.Summary
	upd.CaseType = in.CaseType
	upd.Area = in.Area
	upd.Date = in.Date

	metadata, err := jsonChangeFrom("metadata", in.Metadata)
	if err != nil {
		return Update{}, err
	}
	upd.Metadata = metadata

	areaData, err := jsonChangeFrom("areaData", in.AreaData)
	if err != nil {
		return Update{}, err
	}
	upd.AreaData = areaData

	return upd, nil
}

// jsonChangeFrom routes a JSON-string field through the codec,
// preserving the present/null/value distinction.
func jsonChangeFrom(field string, in NullableString) (JSONChange, error) {
	if !in.Set {
		return JSONChange{}, nil
	}
	if in.Value == nil {
		return JSONChange{Set: true}, nil
	}
	value, has, err := DecodeJSONField(field, *in.Value)
	if err != nil {
		return JSONChange{}, err
	}
	if !has {
		return JSONChange{Set: true}, nil
	}
	raw, err := marshalStored(value)
	if err != nil {
		return JSONChange{}, &DataError{Field: field, Err: err}
	}
	return JSONChange{Set: true, Value: raw}, nil
}

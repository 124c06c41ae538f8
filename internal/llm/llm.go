package llm

import (
	"context"
	"encoding/json"
	"time"
)

// Pair is a single {key, value} entry of the flat string maps the
// enrichment service is asked to return for area/metadata fields.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Enrichment is the field set derived from extracted document text.
// Every field may be nil; absence of the whole result means the
// enrichment capability was unavailable or its output unusable.
type Enrichment struct {
	Title      *string
	Court      *string
	CaseNumber *string
	Summary    *string
	CaseType   *string
	Area       *string
	Date       *time.Time
	// DateRaw keeps the service's original date string for audit even
	// when it fails to parse.
	DateRaw  *string
	AreaData []Pair
	Metadata []Pair
	// Raw echoes the validated response payload for audit logging.
	Raw json.RawMessage
}

// Enricher derives structured metadata from document text.
//
// Enrich never fails: misconfiguration, transport errors, and
// schema-invalid output all degrade to (nil, false). Callers branch on
// the second return value instead of handling errors.
type Enricher interface {
	Enrich(ctx context.Context, text string) (*Enrichment, bool)
}

// Disabled is an Enricher that is always unavailable.
type Disabled struct{}

// Enrich reports the capability as unavailable.
func (Disabled) Enrich(ctx context.Context, text string) (*Enrichment, bool) {
	_ = ctx
	_ = text
	return nil, false
}

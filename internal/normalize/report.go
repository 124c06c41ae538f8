package normalize

import "encoding/json"

// FieldChange records the before/after encoding of one converted field.
type FieldChange struct {
	Field  string          `json:"field"`
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
}

// ChangeReport is the outcome of normalizing one record. Changes is
// only populated when details are requested; dry runs always carry it
// so the would-be after-state is visible.
type ChangeReport struct {
	ID         int64         `json:"id"`
	FileName   string        `json:"fileName"`
	HasChanges bool          `json:"hasChanges"`
	DryRun     bool          `json:"dryRun"`
	Persisted  bool          `json:"persisted"`
	Changes    []FieldChange `json:"changes,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// Summary aggregates a batch run. A record that failed to persist is
// counted in Failed and detailed in Reports; it never aborts the batch.
type Summary struct {
	Scanned   int            `json:"scanned"`
	Changed   int            `json:"changed"`
	Persisted int            `json:"persisted"`
	Skipped   int            `json:"skipped"`
	Failed    int            `json:"failed"`
	DryRun    bool           `json:"dryRun"`
	Reports   []ChangeReport `json:"reports,omitempty"`
}

// Options controls a batch run.
type Options struct {
	DryRun bool
	// Limit caps how many records are scanned; zero means no cap.
	Limit int
	// LegacyMetadata / LegacyAreaData filter the batch to records whose
	// named field is still legacy-pairs shaped. Both unset means no
	// filter.
	LegacyMetadata bool
	LegacyAreaData bool
	// IncludeDetails attaches per-record reports to the summary.
	IncludeDetails bool
}

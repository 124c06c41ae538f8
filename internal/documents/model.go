package documents

import (
	"encoding/json"
	"time"
)

// Document is the persisted record for an ingested legal document.
// FileName is always present; every other business field is
// independently nullable.
type Document struct {
	ID         int64
	FileName   string
	Title      *string
	Court      *string
	CaseNumber *string
	Summary    *string
	CaseType   *string
	Area       *string
	Date       *time.Time
	Metadata   json.RawMessage
	AreaData   json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type resultPayload struct {
	Title      *string `json:"title"`
	Date       *string `json:"date"`
	Court      *string `json:"court"`
	CaseNumber *string `json:"caseNumber"`
	Summary    *string `json:"summary"`
	CaseType   *string `json:"caseType"`
	Area       *string `json:"area"`
	AreaData   []Pair  `json:"areaData"`
	Metadata   []Pair  `json:"metadata"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseResult maps a schema-valid payload into an Enrichment. String
// fields are trimmed and blanks dropped; an unparseable date becomes nil
// while the raw string is retained for audit.
func ParseResult(data []byte) (*Enrichment, error) {
	var payload resultPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode enrichment payload: %w", err)
	}

	enr := &Enrichment{
		Title:      cleanString(payload.Title),
		Court:      cleanString(payload.Court),
		CaseNumber: cleanString(payload.CaseNumber),
		Summary:    cleanString(payload.Summary),
		CaseType:   cleanString(payload.CaseType),
		Area:       cleanString(payload.Area),
		AreaData:   payload.AreaData,
		Metadata:   payload.Metadata,
		Raw:        json.RawMessage(data),
	}

	if raw := cleanString(payload.Date); raw != nil {
		enr.DateRaw = raw
		enr.Date = parseDate(*raw)
	}

	return enr, nil
}

func cleanString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseDate(raw string) *time.Time {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			ts = ts.UTC()
			return &ts
		}
	}
	return nil
}

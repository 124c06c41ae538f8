package documents

import (
	"encoding/json"
	"time"

	"legaldocs-backend/internal/llm"
)

// Fields carries the caller-supplied business fields of a create or
// update request. Metadata and AreaData arrive as JSON-encoded strings
// and go through the codec before storage.
type Fields struct {
	Title      NullableString `json:"title"`
	Court      NullableString `json:"court"`
	CaseNumber NullableString `json:"caseNumber"`
	Summary    NullableString `json:"summary"`
	CaseType   NullableString `json:"caseType"`
	Area       NullableString `json:"area"`
	Date       NullableTime   `json:"date"`
	Metadata   NullableString `json:"metadata"`
	AreaData   NullableString `json:"areaData"`
}

// Provenance is what the upload path itself knows about a document,
// independent of caller input and enrichment output. Its keys always
// win when spread into the metadata object.
type Provenance struct {
	OriginalFileName string
	MimeType         string
	ExtractedText    string
	Checksum         string
	AIRaw            json.RawMessage
}

// Merge combines explicit caller fields, enrichment-derived fields, and
// upload provenance into one record. Precedence per scalar field:
// caller (when the field was supplied, even as null) over enrichment
// over null. The returned Document carries business fields only.
func Merge(fields Fields, enr *llm.Enrichment, prov *Provenance) (Document, error) {
	var doc Document

	doc.Title = mergeScalar(fields.Title, enrString(enr, func(e *llm.Enrichment) *string { return e.Title }))
	doc.Court = mergeScalar(fields.Court, enrString(enr, func(e *llm.Enrichment) *string { return e.Court }))
	doc.CaseNumber = mergeScalar(fields.CaseNumber, enrString(enr, func(e *llm.Enrichment) *string { return e.CaseNumber }))
	doc.Summary = mergeScalar(fields.Summary, enrString(enr, func(e *llm.Enrichment) *string { return e.Summary }))
	doc.CaseType = mergeScalar(fields.CaseType, enrString(enr, func(e *llm.Enrichment) *string { return e.CaseType }))
	doc.Area = mergeScalar(fields.Area, enrString(enr, func(e *llm.Enrichment) *string { return e.Area }))
	doc.Date = mergeDate(fields.Date, enr)

	metadata, err := mergeMetadata(fields.Metadata, enr, prov)
	if err != nil {
		return Document{}, err
	}
	doc.Metadata = metadata

	areaData, err := mergeAreaData(fields.AreaData, enr)
	if err != nil {
		return Document{}, err
	}
	doc.AreaData = areaData

	return doc, nil
}

func mergeScalar(explicit NullableString, ai *string) *string {
	if explicit.Set {
		return explicit.Value
	}
	return ai
}

func mergeDate(explicit NullableTime, enr *llm.Enrichment) *time.Time {
	if explicit.Set {
		return explicit.Value
	}
	if enr != nil {
		return enr.Date
	}
	return nil
}

func enrString(enr *llm.Enrichment, pick func(*llm.Enrichment) *string) *string {
	if enr == nil {
		return nil
	}
	return pick(enr)
}

// mergeMetadata builds the metadata JSON blob. The caller's decoded
// metadata is the base: an object is used as-is, a non-object scalar is
// wrapped as {"value": scalar}, nothing yields an empty base.
// Enrichment pairs fill keys the caller left unset; provenance keys
// overwrite everything.
func mergeMetadata(explicit NullableString, enr *llm.Enrichment, prov *Provenance) (json.RawMessage, error) {
	var base map[string]any
	callerValue, callerHas, err := decodeExplicitJSON("metadata", explicit)
	if err != nil {
		return nil, err
	}
	if callerHas {
		if obj, ok := callerValue.(map[string]any); ok {
			base = obj
		} else {
			base = map[string]any{"value": callerValue}
		}
	}

	if enr != nil && len(enr.Metadata) > 0 {
		if base == nil {
			base = make(map[string]any, len(enr.Metadata))
		}
		for _, p := range enr.Metadata {
			if _, taken := base[p.Key]; !taken {
				base[p.Key] = p.Value
			}
		}
	}

	if prov != nil {
		if base == nil {
			base = make(map[string]any, 5)
		}
		base["originalFileName"] = prov.OriginalFileName
		if prov.MimeType != "" {
			base["mimeType"] = prov.MimeType
		}
		base["extractedText"] = prov.ExtractedText
		if prov.Checksum != "" {
			base["checksum"] = prov.Checksum
		}
		if len(prov.AIRaw) > 0 {
			var echo any
			if err := json.Unmarshal(prov.AIRaw, &echo); err == nil {
				base["enrichmentRaw"] = echo
			}
		}
	}

	if base == nil {
		return nil, nil
	}
	return marshalStored(base)
}

// mergeAreaData applies simple override semantics: explicit caller
// value (including explicit null) wins, else enrichment pairs folded to
// a canonical object, else null. No structural merge.
func mergeAreaData(explicit NullableString, enr *llm.Enrichment) (json.RawMessage, error) {
	if explicit.Set {
		value, has, err := decodeExplicitJSON("areaData", explicit)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, nil
		}
		return marshalStored(value)
	}
	if enr != nil && len(enr.AreaData) > 0 {
		return marshalStored(foldPairs(enr.AreaData))
	}
	return nil, nil
}

// foldPairs converts an enrichment pair list into the canonical
// key-indexed object so the legacy array shape never enters storage.
func foldPairs(pairs []llm.Pair) map[string]any {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		out[p.Key] = p.Value
	}
	return out
}

func decodeExplicitJSON(field string, explicit NullableString) (any, bool, error) {
	if !explicit.Set || explicit.Value == nil {
		return nil, false, nil
	}
	return DecodeJSONField(field, *explicit.Value)
}

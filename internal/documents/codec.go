package documents

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSONField parses a caller-supplied JSON-encoded string field.
// A blank input is "no value" (nil, false, nil); a non-blank input that
// is not valid JSON is a DataError naming the field. Input-side
// strictness: bad JSON never reaches storage.
func DecodeJSONField(field, raw string) (any, bool, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, false, nil
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false, &DataError{Field: field, Err: fmt.Errorf("not valid JSON: %w", err)}
	}
	return value, true, nil
}

// EncodeJSONField serializes a structured value back to its JSON-text
// form for output. A value that is already a string passes through
// unchanged; a serialization failure yields nil rather than an error
// (output-side leniency).
func EncodeJSONField(value any) *string {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok {
		return &s
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	out := string(raw)
	return &out
}

// EncodeStoredJSON renders a stored JSON column for output. nil and
// SQL-null columns yield nil.
func EncodeStoredJSON(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	out := string(raw)
	return &out
}

// marshalStored converts a decoded value into its storage representation.
func marshalStored(value any) (json.RawMessage, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

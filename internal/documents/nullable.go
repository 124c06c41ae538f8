package documents

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// NullableString distinguishes an omitted JSON field from an explicit
// null: Set reports presence in the request, Value is nil for null.
// Update semantics depend on this three-way state.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only invoked for present fields, so Set is always
// recorded.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// String returns the value or "" when unset/null.
func (n NullableString) String() string {
	if n.Value == nil {
		return ""
	}
	return *n.Value
}

// NullableTime is NullableString's calendar counterpart. Accepts
// RFC 3339 timestamps and plain dates.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			ts = ts.UTC()
			n.Value = &ts
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// stringValue builds a set NullableString, used by non-JSON surfaces
// (multipart form fields) that cannot express explicit null.
func stringValue(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}

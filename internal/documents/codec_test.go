package documents

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeJSONFieldBlankIsNoValue(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n"} {
		value, present, err := DecodeJSONField("metadata", raw)
		if err != nil {
			t.Fatalf("DecodeJSONField(%q): %v", raw, err)
		}
		if present || value != nil {
			t.Fatalf("expected no value for blank input %q", raw)
		}
	}
}

func TestDecodeJSONFieldInvalidNamesField(t *testing.T) {
	_, _, err := DecodeJSONField("areaData", "{not json")
	if err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
	var dataErr *DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected DataError, got %T", err)
	}
	if dataErr.Field != "areaData" {
		t.Fatalf("expected field areaData, got %q", dataErr.Field)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	value, present, err := DecodeJSONField("metadata", `{"court":"X","pages":12}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !present {
		t.Fatalf("expected value present")
	}

	encoded := EncodeJSONField(value)
	if encoded == nil {
		t.Fatalf("expected encoded output")
	}

	back, present2, err := DecodeJSONField("metadata", *encoded)
	if err != nil || !present2 {
		t.Fatalf("re-decode: present=%v err=%v", present2, err)
	}
	if !reflect.DeepEqual(value, back) {
		t.Fatalf("round trip mismatch: %v vs %v", value, back)
	}
}

func TestEncodeJSONFieldStringPassThrough(t *testing.T) {
	got := EncodeJSONField("already a string")
	if got == nil || *got != "already a string" {
		t.Fatalf("expected pass-through, got %v", got)
	}
}

func TestEncodeJSONFieldNil(t *testing.T) {
	if got := EncodeJSONField(nil); got != nil {
		t.Fatalf("expected nil for nil value, got %q", *got)
	}
}

func TestEncodeStoredJSON(t *testing.T) {
	if got := EncodeStoredJSON(nil); got != nil {
		t.Fatalf("expected nil for empty column")
	}
	if got := EncodeStoredJSON([]byte("null")); got != nil {
		t.Fatalf("expected nil for SQL null")
	}
	got := EncodeStoredJSON([]byte(`{"a":1}`))
	if got == nil || *got != `{"a":1}` {
		t.Fatalf("unexpected output: %v", got)
	}
}

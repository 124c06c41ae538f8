package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// fieldShape classifies how a stored JSON field is encoded.
type fieldShape int

const (
	shapeAbsent fieldShape = iota
	// shapeCanonical is the current encoding: an object keyed by name.
	shapeCanonical
	// shapeLegacyPairs is the historical encoding: an array of
	// {key, value} string objects.
	shapeLegacyPairs
	// shapeOther is anything else (scalar, mixed array). Left alone.
	shapeOther
)

type legacyPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// classifyShape inspects a stored field without fully decoding it.
func classifyShape(raw json.RawMessage) (fieldShape, []legacyPair) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return shapeAbsent, nil
	}
	switch trimmed[0] {
	case '{':
		return shapeCanonical, nil
	case '[':
		pairs, ok := decodeLegacyPairs(raw)
		if !ok {
			return shapeOther, nil
		}
		return shapeLegacyPairs, pairs
	default:
		return shapeOther, nil
	}
}

// decodeLegacyPairs accepts an array only when every element is a
// {key, value} object with string members.
func decodeLegacyPairs(raw json.RawMessage) ([]legacyPair, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	pairs := make([]legacyPair, 0, len(elems))
	for _, elem := range elems {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil {
			return nil, false
		}
		keyRaw, hasKey := fields["key"]
		valueRaw, hasValue := fields["value"]
		if !hasKey || !hasValue {
			return nil, false
		}
		var pair legacyPair
		if err := json.Unmarshal(keyRaw, &pair.Key); err != nil {
			return nil, false
		}
		if err := json.Unmarshal(valueRaw, &pair.Value); err != nil {
			return nil, false
		}
		pairs = append(pairs, pair)
	}
	return pairs, true
}

// foldLegacyPairs converts the legacy array into the canonical object,
// coercing each string value on the way.
func foldLegacyPairs(pairs []legacyPair) map[string]any {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		out[pair.Key] = coerceValue(pair.Value)
	}
	return out
}

// coerceValue recovers the typed value a legacy pair stringified.
// Checked in order: null, bool, integer, float; anything else stays a
// string.
func coerceValue(s string) any {
	switch s {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

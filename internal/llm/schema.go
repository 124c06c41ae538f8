package llm

// ResultSchema returns the JSON Schema (draft 2020-12 subset) the
// enrichment response must satisfy: a single object with exactly the
// closed key set, every field nullable, and area/metadata restricted to
// null or an array of {key, value} string pairs. The same map is passed
// to the provider as a structured-output constraint and compiled locally
// for validation.
func ResultSchema() map[string]any {
	nullableString := map[string]any{"type": []string{"string", "null"}}
	pairList := map[string]any{
		"type": []string{"array", "null"},
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"key":   map[string]any{"type": "string"},
				"value": map[string]any{"type": "string"},
			},
			"required": []string{"key", "value"},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"title":      nullableString,
			"date":       nullableString,
			"court":      nullableString,
			"caseNumber": nullableString,
			"summary":    nullableString,
			"caseType":   nullableString,
			"area":       nullableString,
			"areaData":   pairList,
			"metadata":   pairList,
		},
		"required": []string{
			"title", "date", "court", "caseNumber", "summary",
			"caseType", "area", "areaData", "metadata",
		},
	}
}

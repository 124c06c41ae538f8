package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ValidateResult validates an enrichment payload against ResultSchema.
// The schema is compiled once and reused across calls.
func ValidateResult(data []byte) error {
	compileOnce.Do(func() {
		compiledSchema, compileErr = compileResultSchema()
	})
	if compileErr != nil {
		return fmt.Errorf("compile schema: %w", compileErr)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("payload does not match schema: %w", err)
	}
	return nil
}

func compileResultSchema() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(ResultSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("enrichment.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("enrichment.json")
}

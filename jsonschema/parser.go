// Package jsonschema validates ranking-oracle output against a JSON Schema.
package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/handbook"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Ensure Parser implements handbook.LabelParser at compile time.
var _ handbook.LabelParser = (*Parser)(nil)

const schemaURL = "https://schemas.handbook.local/section-labels.json"

// labelsSchema accepts a JSON array of strings and nothing else.
const labelsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {"type": "string"}
}`

// Parser turns raw oracle output into a list of section labels.
// The output is treated strictly as data; anything that is not a JSON
// array of strings is rejected.
type Parser struct {
	schema *jsonschema.Schema
}

// NewParser compiles the label list schema.
func NewParser() (*Parser, error) {
	var doc any
	if err := json.Unmarshal([]byte(labelsSchema), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode label schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add label schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile label schema: %w", err)
	}

	return &Parser{schema: schema}, nil
}

// Parse decodes output as a list of labels. It reports false if the output is
// not valid JSON or does not match the schema.
func (p *Parser) Parse(output string) ([]string, bool) {
	body := stripFence(strings.TrimSpace(output))
	if body == "" {
		return nil, false
	}

	v, err := decode(body)
	if err != nil {
		return nil, false
	}
	if err := p.schema.Validate(v); err != nil {
		return nil, false
	}

	items := v.([]any)
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.(string))
	}
	return labels, true
}

// stripFence removes a surrounding markdown code fence such as ```json ... ```.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	// Drop the info string, e.g. "json".
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "[\"") {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// decode reads exactly one JSON value from s.
func decode(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

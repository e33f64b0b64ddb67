// Package redact removes named fields from response payloads before they are
// serialized to clients, so that secrets such as credential hashes never
// leave the server.
package redact

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Canonicalizer is implemented by records that expose a canonical attribute
// form. Redaction applies to the canonical form; the record itself is never
// mutated.
type Canonicalizer interface {
	Attributes() map[string]any
}

// Fields returns a copy of data with the named fields removed. Data may be a
// single record or a slice of records; for slices, element order and length
// are preserved. Fields absent from a record are silently ignored.
func Fields(data any, fields ...string) (any, error) {
	value := reflect.ValueOf(data)
	if value.Kind() == reflect.Slice {
		records := make([]map[string]any, value.Len())
		for i := 0; i < value.Len(); i++ {
			record, err := canonicalize(value.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			records[i] = removeFields(record, fields)
		}
		return records, nil
	}

	record, err := canonicalize(data)
	if err != nil {
		return nil, err
	}
	return removeFields(record, fields), nil
}

// canonicalize produces a fresh attribute map for the record: via its
// Attributes method when it has one, otherwise through a JSON round-trip.
func canonicalize(record any) (map[string]any, error) {
	switch r := record.(type) {
	case Canonicalizer:
		return copyAttributes(r.Attributes()), nil
	case map[string]any:
		return copyAttributes(r), nil
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize record: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("failed to canonicalize record: %w", err)
	}
	return attrs, nil
}

func copyAttributes(attrs map[string]any) map[string]any {
	cloned := make(map[string]any, len(attrs))
	for key, value := range attrs {
		cloned[key] = value
	}
	return cloned
}

func removeFields(attrs map[string]any, fields []string) map[string]any {
	for _, field := range fields {
		delete(attrs, field)
	}
	return attrs
}

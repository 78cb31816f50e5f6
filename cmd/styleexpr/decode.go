package main

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeDocument accepts either JSON or YAML bytes and returns the decoded
// value as the plain interface{} tree the parser expects (nil, bool,
// float64, string, []interface{}, map[string]interface{}). YAML's mapping
// keys decode as string when possible, matching JSON's object shape; a
// document using non-string keys is rejected rather than silently
// stringified.
//
// Grounded on the teacher's builtins_yaml.go decode-to-tagged-value path:
// here the encoding is resolved once, at the boundary, before anything in
// internal/parser ever sees the raw document.
func decodeDocument(raw []byte) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return normalizeYAML(v)
}

// normalizeYAML walks a yaml.v3-decoded tree and converts
// map[string]interface{} keys that yaml.v3 may have produced as
// map[interface{}]interface{} in older encodings, and coerces integers to
// float64 so the decoded shape matches encoding/json's output exactly.
func normalizeYAML(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			nv, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("decode: mapping key %v is not a string", k)
			}
			nv, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			nv, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	default:
		return v, nil
	}
}

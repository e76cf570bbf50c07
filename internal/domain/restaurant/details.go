package restaurant

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Details is a free-form JSON object attached 1:1 to a restaurant.
type Details struct {
	raw json.RawMessage
}

// NewDetails validates that raw is a JSON object.
func NewDetails(raw []byte) (Details, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Details{}, errors.New("details must be a JSON object")
	}
	if !json.Valid(trimmed) {
		return Details{}, errors.New("details must be valid JSON")
	}
	return Details{raw: bytes.Clone(trimmed)}, nil
}

// ReconstructDetails wraps stored JSON without validation.
func ReconstructDetails(raw []byte) Details {
	return Details{raw: bytes.Clone(raw)}
}

// Raw returns the JSON encoding.
func (d Details) Raw() json.RawMessage { return d.raw }

// MarshalJSON emits the document verbatim.
func (d Details) MarshalJSON() ([]byte, error) {
	if len(d.raw) == 0 {
		return []byte("null"), nil
	}
	return d.raw, nil
}

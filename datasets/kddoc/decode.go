package kddoc

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// DecodeFloats decodes a JSON array of numbers such as "[-0.0056, -5.43]".
// A null element is malformed.
func DecodeFloats(s string) ([]float64, error) {
	var raw []*float64
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, errors.Wrapf(ErrMalformedColumn, "%q: %v", s, err)
	}
	if raw == nil {
		return nil, errors.Wrapf(ErrMalformedColumn, "%q is not an array", s)
	}
	var out = make([]float64, len(raw))
	for i, v := range raw {
		if v == nil {
			return nil, errors.Wrapf(ErrMalformedColumn, "%q: element %d is null", s, i)
		}
		out[i] = *v
	}
	return out, nil
}

// DecodeLabels decodes a JSON array of label names such as `["cu:other", "cu:ask_Location"]`.
// Null and empty names are malformed.
func DecodeLabels(s string) ([]string, error) {
	var raw []*string
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, errors.Wrapf(ErrMalformedColumn, "%q: %v", s, err)
	}
	if raw == nil {
		return nil, errors.Wrapf(ErrMalformedColumn, "%q is not an array", s)
	}
	var out = make([]string, len(raw))
	for i, v := range raw {
		if v == nil {
			return nil, errors.Wrapf(ErrMalformedColumn, "%q: element %d is null", s, i)
		}
		if *v == "" {
			return nil, errors.Wrapf(ErrMalformedColumn, "%q: element %d is empty", s, i)
		}
		out[i] = *v
	}
	return out, nil
}

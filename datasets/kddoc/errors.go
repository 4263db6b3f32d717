package kddoc

import "github.com/pkg/errors"

var (
	// ErrMalformedColumn is returned when a JSON list column can't be decoded
	ErrMalformedColumn = errors.New("malformed column")

	// ErrLengthMismatch is returned when score vectors and label lists differ in length
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrLabelNotFound is returned when a label is missing from a label list
	ErrLabelNotFound = errors.New("label not found")

	// ErrLabelOverflow is returned when a label index does not fit a sample's 16 bit output
	ErrLabelOverflow = errors.New("label index overflows uint16")

	// ErrNoLabels is returned when batching before the label list is known
	ErrNoLabels = errors.New("label list is empty")
)

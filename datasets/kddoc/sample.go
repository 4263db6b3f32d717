package kddoc

import (
	"math"

	"github.com/pkg/errors"

	"github.com/neurlang/distill/datasets"
)

// Sample is an Example reduced to hashed word features and a label index
type Sample struct {
	WordIDs []uint32
	Label   uint16
}

// Feature cycles through the word ids, 0 for an empty text
func (s Sample) Feature(n int) uint32 {
	if len(s.WordIDs) == 0 {
		return 0
	}
	return s.WordIDs[n%len(s.WordIDs)]
}

func (s Sample) Parity() uint16 {
	return 0
}

func (s Sample) Output() uint16 {
	return s.Label
}

// Dataslice holds samples in example order
type Dataslice []Sample

func (d Dataslice) Get(n int) datasets.Sample {
	return d[n]
}

func (d Dataslice) Len() int {
	return len(d)
}

// Dataslice resolves the doc label of every example against the canonical label list
func (h *Handler) Dataslice(examples []Example) (Dataslice, error) {
	if len(h.labels) == 0 {
		return nil, ErrNoLabels
	}
	var out = make(Dataslice, len(examples))
	for i, ex := range examples {
		label, err := h.LabelIndex(ex.DocLabel)
		if err != nil {
			return nil, errors.Wrapf(err, "example %d", i)
		}
		if label > math.MaxUint16 {
			return nil, errors.Wrapf(ErrLabelOverflow, "example %d: %q has index %d", i, ex.DocLabel, label)
		}
		out[i] = Sample{WordIDs: ex.WordIDs, Label: uint16(label)}
	}
	return out, nil
}

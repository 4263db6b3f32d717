package kddoc

import "github.com/pkg/errors"

// AlignTargetLabel reorders every score vector in targets from the label order of its
// batchLabels entry into the order of labels, so that out[i][j] is the score of labels[j].
// The inputs are not modified.
func AlignTargetLabel(targets [][]float64, labels []string, batchLabels [][]string) ([][]float64, error) {
	if len(targets) != len(batchLabels) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d targets but %d label lists", len(targets), len(batchLabels))
	}
	var out = make([][]float64, len(targets))
	for i, target := range targets {
		order := batchLabels[i]
		if len(order) != len(labels) || len(target) != len(order) {
			return nil, errors.Wrapf(ErrLengthMismatch, "example %d: %d scores, %d batch labels, %d labels",
				i, len(target), len(order), len(labels))
		}
		position := make(map[string]int, len(order))
		for k, label := range order {
			position[label] = k
		}
		aligned := make([]float64, len(labels))
		for j, label := range labels {
			k, ok := position[label]
			if !ok {
				return nil, errors.Wrapf(ErrLabelNotFound, "example %d: %q not in %q", i, label, order)
			}
			aligned[j] = target[k]
		}
		out[i] = aligned
	}
	return out, nil
}

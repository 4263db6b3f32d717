package kddoc

import (
	"github.com/pkg/errors"

	"github.com/neurlang/distill/config"
	"github.com/neurlang/distill/datasets"
	"github.com/neurlang/distill/parallel"
)

// Example is one preprocessed row
type Example struct {
	Text     string   `json:"text"`
	Tokens   []string `json:"tokens"`
	WordIDs  []uint32 `json:"word_ids"`
	DocLabel string   `json:"doc_label"`

	// teacher outputs, positionally aligned to TargetLabels; only set when training on probabilities
	TargetProbs  []float64 `json:"target_probs,omitempty"`
	TargetLogits []float64 `json:"target_logits,omitempty"`
	TargetLabels []string  `json:"target_labels,omitempty"`
}

func column(row datasets.Row, c config.Column) (string, error) {
	v, ok := row[string(c)]
	if !ok {
		return "", errors.Wrapf(ErrMalformedColumn, "column %q missing", c)
	}
	return v, nil
}

// PreprocessRow tokenizes the text and decodes the teacher columns of one row
func (h *Handler) PreprocessRow(row datasets.Row) (ex Example, err error) {
	if ex.Text, err = column(row, config.ColumnText); err != nil {
		return ex, err
	}
	if ex.DocLabel, err = column(row, config.ColumnDocLabel); err != nil {
		return ex, err
	}
	features := h.featurizer.Featurize(ex.Text)
	ex.Tokens = features.Tokens
	ex.WordIDs = features.WordIDs

	if !h.cfg.Target.TargetProb {
		return ex, nil
	}

	var raw string
	if raw, err = column(row, config.ColumnTargetProbs); err != nil {
		return ex, err
	}
	if ex.TargetProbs, err = DecodeFloats(raw); err != nil {
		return ex, errors.Wrap(err, string(config.ColumnTargetProbs))
	}
	if raw, err = column(row, config.ColumnTargetLogits); err != nil {
		return ex, err
	}
	if ex.TargetLogits, err = DecodeFloats(raw); err != nil {
		return ex, errors.Wrap(err, string(config.ColumnTargetLogits))
	}
	if raw, err = column(row, config.ColumnTargetLabels); err != nil {
		return ex, err
	}
	if ex.TargetLabels, err = DecodeLabels(raw); err != nil {
		return ex, errors.Wrap(err, string(config.ColumnTargetLabels))
	}
	if len(ex.TargetProbs) != len(ex.TargetLabels) || len(ex.TargetLogits) != len(ex.TargetLabels) {
		return ex, errors.Wrapf(ErrLengthMismatch, "%d probs, %d logits, %d labels",
			len(ex.TargetProbs), len(ex.TargetLogits), len(ex.TargetLabels))
	}
	return ex, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedColumn):
		return "malformed"
	case errors.Is(err, ErrLengthMismatch):
		return "length"
	}
	return "other"
}

// Preprocess preprocesses all rows concurrently, keeping their order.
// The first failing row aborts the whole call.
func (h *Handler) Preprocess(rows []datasets.Row) ([]Example, error) {
	var out = make([]Example, len(rows))
	err := parallel.ForEach(len(rows), h.workers(), func(i int) error {
		ex, err := h.PreprocessRow(rows[i])
		if err != nil {
			h.metrics.RowsRejected.WithLabelValues(rejectReason(err)).Inc()
			h.logger.Warn("rejected row", "row", i+1, "error", err)
			return errors.Wrapf(err, "row %d", i+1)
		}
		out[i] = ex
		return nil
	})
	if err != nil {
		return nil, err
	}
	h.logger.Debug("preprocessed rows", "rows", len(rows))
	return out, nil
}

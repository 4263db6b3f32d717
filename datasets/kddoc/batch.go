package kddoc

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Batch is a group of examples ready for a model; targets are in canonical label order
type Batch struct {
	Tokens    [][]string
	WordIDs   [][]uint32
	SeqLens   []int
	DocLabels []int

	// only set when training on probabilities
	TargetProbs  [][]float64
	TargetLogits [][]float64
}

// Len is the number of examples in the batch
func (b *Batch) Len() int {
	return len(b.SeqLens)
}

// Batches splits examples into batches of the configured size, shuffling first if configured.
// The label list must be known, either pinned by config or from BuildLabels.
func (h *Handler) Batches(examples []Example) ([]Batch, error) {
	if len(h.labels) == 0 {
		return nil, ErrNoLabels
	}
	var order = make([]int, len(examples))
	for i := range order {
		order[i] = i
	}
	if h.cfg.DataHandler.Shuffle {
		rng := rand.New(rand.NewSource(h.cfg.DataHandler.Seed))
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	size := h.cfg.DataHandler.BatchSize
	var batches []Batch
	for start := 0; start < len(order); start += size {
		end := start + size
		if end > len(order) {
			end = len(order)
		}
		batch, err := h.batch(examples, order[start:end])
		if err != nil {
			return nil, errors.Wrapf(err, "batch %d", len(batches))
		}
		batches = append(batches, batch)
	}
	h.logger.Debug("built batches", "examples", len(examples), "batches", len(batches))
	return batches, nil
}

func (h *Handler) batch(examples []Example, order []int) (b Batch, err error) {
	maxLen := h.cfg.DataHandler.MaxSeqLen
	kd := h.cfg.Target.TargetProb

	var probs, logits [][]float64
	var teacherLabels [][]string
	for _, i := range order {
		ex := &examples[i]
		tokens, ids := ex.Tokens, ex.WordIDs
		if maxLen > 0 && len(tokens) > maxLen {
			tokens, ids = tokens[:maxLen], ids[:maxLen]
		}
		label, err := h.LabelIndex(ex.DocLabel)
		if err != nil {
			return b, errors.Wrap(err, "doc label")
		}
		b.Tokens = append(b.Tokens, tokens)
		b.WordIDs = append(b.WordIDs, ids)
		b.SeqLens = append(b.SeqLens, len(tokens))
		b.DocLabels = append(b.DocLabels, label)
		if kd {
			probs = append(probs, ex.TargetProbs)
			logits = append(logits, ex.TargetLogits)
			teacherLabels = append(teacherLabels, ex.TargetLabels)
		}
	}
	h.metrics.Batches.Inc()
	if !kd {
		return b, nil
	}
	if b.TargetProbs, err = AlignTargetLabel(probs, h.labels, teacherLabels); err != nil {
		return b, errors.Wrap(err, "target probs")
	}
	if b.TargetLogits, err = AlignTargetLabel(logits, h.labels, teacherLabels); err != nil {
		return b, errors.Wrap(err, "target logits")
	}
	h.metrics.ExamplesAligned.Add(float64(len(order)))
	return b, nil
}

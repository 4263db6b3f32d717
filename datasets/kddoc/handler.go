package kddoc

import (
	"log/slog"
	"runtime"

	"github.com/pkg/errors"

	"github.com/neurlang/distill/config"
	"github.com/neurlang/distill/datasets"
	"github.com/neurlang/distill/featurizer"
)

// Handler reads, featurizes and batches distillation data.
// BuildLabels mutates the handler; the rest may be called concurrently once labels are known.
type Handler struct {
	cfg        config.File
	featurizer *featurizer.Simple
	logger     *slog.Logger
	metrics    *Metrics

	labels     []string
	labelIndex map[string]int
	pinned     bool
}

// Option customizes a Handler
type Option func(*Handler)

// WithLogger sets the logger, slog.Default() otherwise
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithMetrics sets the metrics, unregistered counters otherwise
func WithMetrics(m *Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithFeaturizer overrides the featurizer built from the word_feat config
func WithFeaturizer(f *featurizer.Simple) Option {
	return func(h *Handler) {
		h.featurizer = f
	}
}

// FromConfig validates cfg and builds a Handler
func FromConfig(cfg *config.File, opts ...Option) (*Handler, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Handler{cfg: *cfg}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.metrics == nil {
		h.metrics = NewMetrics(nil)
	}
	if h.featurizer == nil {
		f, err := featurizer.New(cfg.ModelInput.WordFeat)
		if err != nil {
			return nil, err
		}
		h.featurizer = f
	}
	if len(cfg.Target.Labels) > 0 {
		h.setLabels(cfg.Target.Labels)
		h.pinned = true
	}
	return h, nil
}

// RawColumns returns the columns read from each row, in file order
func (h *Handler) RawColumns() []config.Column {
	return append([]config.Column(nil), h.cfg.DataHandler.ColumnsToRead...)
}

// Config returns a copy of the handler configuration
func (h *Handler) Config() config.File {
	return h.cfg
}

// ReadFromFile reads the raw rows of a tab separated file
func (h *Handler) ReadFromFile(path string) ([]datasets.Row, error) {
	rows, err := datasets.ReadColumnsFromFile(path, h.cfg.DataHandler.ColumnNames())
	if err != nil {
		return nil, err
	}
	h.metrics.RowsRead.Add(float64(len(rows)))
	h.logger.Debug("read data file", "path", path, "rows", len(rows), "columns", len(h.cfg.DataHandler.ColumnsToRead))
	return rows, nil
}

func (h *Handler) workers() int {
	if h.cfg.DataHandler.Workers > 0 {
		return h.cfg.DataHandler.Workers
	}
	return runtime.NumCPU()
}

func (h *Handler) setLabels(labels []string) {
	h.labels = append([]string(nil), labels...)
	h.labelIndex = make(map[string]int, len(labels))
	for i, l := range h.labels {
		h.labelIndex[l] = i
	}
}

// Labels returns the canonical label order
func (h *Handler) Labels() []string {
	return append([]string(nil), h.labels...)
}

// LabelIndex returns the position of label in the canonical label order
func (h *Handler) LabelIndex(label string) (int, error) {
	i, ok := h.labelIndex[label]
	if !ok {
		return 0, errors.Wrapf(ErrLabelNotFound, "%q", label)
	}
	return i, nil
}

package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/neurlang/distill/config"
	"github.com/neurlang/distill/datasets/kddoc"
)

type options struct {
	configPath      string
	logLevel        string
	metricsTextfile string
	out             string
	split           string

	logger   *slog.Logger
	registry *prometheus.Registry
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "kd_preprocess",
		Short:        "Prepare knowledge distillation document classification data",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
				return errors.Wrap(err, "log level")
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			opts.registry = prometheus.NewRegistry()
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.metricsTextfile == "" {
				return nil
			}
			return errors.Wrap(prometheus.WriteToTextfile(opts.metricsTextfile, opts.registry), "writing metrics")
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file, defaults are used when empty")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	root.PersistentFlags().StringVar(&opts.split, "split", "train", "configured data file to use when FILE is omitted: train, eval or test")
	root.PersistentFlags().StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write prometheus metrics to this file when done")

	root.AddCommand(newInspectCmd(opts), newRunCmd(opts))
	return root
}

// splitPath returns the configured data file of a split
func splitPath(cfg *config.File, split string) (string, error) {
	var path string
	switch split {
	case "train":
		path = cfg.DataHandler.TrainPath
	case "eval":
		path = cfg.DataHandler.EvalPath
	case "test":
		path = cfg.DataHandler.TestPath
	default:
		return "", errors.Errorf("unknown split %q, want train, eval or test", split)
	}
	if path == "" {
		return "", errors.Errorf("no data file given and %s_path is not configured", split)
	}
	return path, nil
}

// handler loads the config and resolves the data file, falling back to the split's path next to the config
func (o *options) handler(args []string) (*kddoc.Handler, string, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, "", err
		}
	}
	h, err := kddoc.FromConfig(cfg, kddoc.WithLogger(o.logger), kddoc.WithMetrics(kddoc.NewMetrics(o.registry)))
	if err != nil {
		return nil, "", err
	}
	if len(args) > 0 {
		return h, args[0], nil
	}
	path, err := splitPath(cfg, o.split)
	if err != nil {
		return nil, "", err
	}
	if !filepath.IsAbs(path) && o.configPath != "" {
		path = filepath.Join(filepath.Dir(o.configPath), path)
	}
	return h, path, nil
}

type summary struct {
	File    string          `json:"file"`
	Rows    int             `json:"rows"`
	Columns []config.Column `json:"columns"`
	Labels  []string        `json:"labels"`
}

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [FILE]",
		Short: "Read a data file and report its rows and label list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, path, err := opts.handler(args)
			if err != nil {
				return err
			}
			rows, err := h.ReadFromFile(path)
			if err != nil {
				return err
			}
			examples, err := h.Preprocess(rows)
			if err != nil {
				return err
			}
			labels := h.BuildLabels(examples)
			opts.logger.Info("inspected", "file", path, "rows", len(rows), "labels", len(labels))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary{File: path, Rows: len(rows), Columns: h.RawColumns(), Labels: labels})
		},
	}
}

type record struct {
	Tokens       []string  `json:"tokens"`
	WordIDs      []uint32  `json:"word_ids"`
	DocLabel     string    `json:"doc_label"`
	LabelIndex   int       `json:"label_index"`
	TargetProbs  []float64 `json:"target_probs,omitempty"`
	TargetLogits []float64 `json:"target_logits,omitempty"`
}

func writeBatches(w io.Writer, labels []string, batches []kddoc.Batch) (n int, err error) {
	enc := json.NewEncoder(w)
	for _, b := range batches {
		for i := 0; i < b.Len(); i++ {
			rec := record{
				Tokens:     b.Tokens[i],
				WordIDs:    b.WordIDs[i],
				DocLabel:   labels[b.DocLabels[i]],
				LabelIndex: b.DocLabels[i],
			}
			if b.TargetProbs != nil {
				rec.TargetProbs = b.TargetProbs[i]
				rec.TargetLogits = b.TargetLogits[i]
			}
			if err := enc.Encode(rec); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// writeOutput writes examples to stdout, or to the --out file which is closed before returning
func (o *options) writeOutput(stdout io.Writer, labels []string, batches []kddoc.Batch) (n int, err error) {
	if o.out == "" || o.out == "-" {
		return writeBatches(stdout, labels, batches)
	}
	file, err := os.Create(o.out)
	if err != nil {
		return 0, errors.Wrap(err, "creating output")
	}
	n, err = writeBatches(file, labels, batches)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "closing output")
	}
	return n, err
}

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [FILE]",
		Short: "Preprocess a data file and write aligned examples as JSON lines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, path, err := opts.handler(args)
			if err != nil {
				return err
			}
			rows, err := h.ReadFromFile(path)
			if err != nil {
				return err
			}
			examples, err := h.Preprocess(rows)
			if err != nil {
				return err
			}
			labels := h.BuildLabels(examples)
			batches, err := h.Batches(examples)
			if err != nil {
				return err
			}

			n, err := opts.writeOutput(cmd.OutOrStdout(), labels, batches)
			if err != nil {
				return errors.Wrap(err, "writing examples")
			}
			opts.logger.Info("wrote examples", "file", path, "examples", n, "batches", len(batches))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

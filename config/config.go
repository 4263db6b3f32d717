// Package config holds the configuration of the distillation data handler.
//
// Configuration is a YAML document with three sections:
//
//	data_handler:
//	  columns_to_read: [text, target_probs, target_logits, target_labels, doc_label]
//	  batch_size: 32
//	target:
//	  target_prob: true
//	model_input:
//	  word_feat:
//	    lowercase: true
//
// Defaults are applied first, then the document, then validation.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/neurlang/distill/featurizer"
)

// Column names a recognized input column and its role
type Column string

const (
	// ColumnText is the raw document text
	ColumnText Column = "text"
	// ColumnTargetProbs is a JSON array of teacher probabilities
	ColumnTargetProbs Column = "target_probs"
	// ColumnTargetLogits is a JSON array of teacher logits
	ColumnTargetLogits Column = "target_logits"
	// ColumnTargetLabels is a JSON array of label names, the order the teacher emitted its scores in
	ColumnTargetLabels Column = "target_labels"
	// ColumnDocLabel is the hard document label
	ColumnDocLabel Column = "doc_label"
)

// AllColumns lists the recognized columns in their default file order
var AllColumns = []Column{
	ColumnText,
	ColumnTargetProbs,
	ColumnTargetLogits,
	ColumnTargetLabels,
	ColumnDocLabel,
}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// ParseColumn maps a column name to a Column
func ParseColumn(name string) (Column, error) {
	for _, c := range AllColumns {
		if string(c) == name {
			return c, nil
		}
	}
	return "", errors.Wrapf(ErrInvalid, "unknown column %q", name)
}

// UnmarshalYAML rejects unknown column names while decoding
func (c *Column) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	col, err := ParseColumn(name)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*c = col
	return nil
}

// DataHandler selects the columns to read and how examples are batched
type DataHandler struct {
	ColumnsToRead []Column `yaml:"columns_to_read" json:"columns_to_read" validate:"required,min=1,unique,dive,column"`
	TrainPath     string   `yaml:"train_path,omitempty" json:"train_path,omitempty"`
	EvalPath      string   `yaml:"eval_path,omitempty" json:"eval_path,omitempty"`
	TestPath      string   `yaml:"test_path,omitempty" json:"test_path,omitempty"`
	BatchSize     int      `yaml:"batch_size" json:"batch_size" validate:"gte=1"`
	Shuffle       bool     `yaml:"shuffle" json:"shuffle"`
	Seed          int64    `yaml:"seed" json:"seed"`
	// Workers bounds concurrent row preprocessing, 0 means one per CPU
	Workers   int `yaml:"workers" json:"workers" validate:"gte=0"`
	MaxSeqLen int `yaml:"max_seq_len" json:"max_seq_len" validate:"gte=0"`
}

// Target configures the training targets
type Target struct {
	// TargetProb trains on teacher probabilities instead of only the hard label
	TargetProb bool `yaml:"target_prob" json:"target_prob"`
	// Labels pins the canonical label order, otherwise it is built from the data
	Labels []string `yaml:"labels,omitempty" json:"labels,omitempty" validate:"omitempty,unique,dive,required"`
}

// ModelInput configures the model input fields
type ModelInput struct {
	WordFeat featurizer.Config `yaml:"word_feat" json:"word_feat"`
}

// File is the whole configuration document
type File struct {
	DataHandler DataHandler `yaml:"data_handler" json:"data_handler"`
	Target      Target      `yaml:"target" json:"target"`
	ModelInput  ModelInput  `yaml:"model_input" json:"model_input"`
}

// Default returns the configuration used when nothing is overridden
func Default() *File {
	return &File{
		DataHandler: DataHandler{
			ColumnsToRead: append([]Column(nil), AllColumns...),
			BatchSize:     128,
		},
	}
}

// HasColumn reports whether c is among the columns to read
func (d DataHandler) HasColumn(c Column) bool {
	for _, col := range d.ColumnsToRead {
		if col == c {
			return true
		}
	}
	return false
}

// ColumnNames returns the columns to read as plain strings
func (d DataHandler) ColumnNames() []string {
	var out = make([]string, len(d.ColumnsToRead))
	for i, c := range d.ColumnsToRead {
		out[i] = string(c)
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("column", func(fl validator.FieldLevel) bool {
		_, err := ParseColumn(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks field rules and the rules spanning sections
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var msgs []string
			for _, fe := range verrs {
				msgs = append(msgs, fe.Namespace()+" failed "+fe.Tag())
			}
			return errors.Wrap(ErrInvalid, strings.Join(msgs, "; "))
		}
		return errors.Wrap(ErrInvalid, err.Error())
	}

	required := []Column{ColumnText, ColumnDocLabel}
	if f.Target.TargetProb {
		required = append(required, ColumnTargetProbs, ColumnTargetLogits, ColumnTargetLabels)
	}
	for _, c := range required {
		if !f.DataHandler.HasColumn(c) {
			return errors.Wrapf(ErrInvalid, "column %q must be read", c)
		}
	}
	return nil
}

// Parse decodes a YAML document over the defaults and validates it
func Parse(data []byte) (*File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads and parses the config file at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return f, nil
}

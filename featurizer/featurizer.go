// Package featurizer turns raw text into tokens and hashed word features
package featurizer

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/neurlang/distill/hash"
)

// DefaultSplitRegex splits on runs of whitespace
const DefaultSplitRegex = `\s+`

// DefaultBuckets is the size of the word feature space
const DefaultBuckets = 1 << 20

// Config configures the simple featurizer
type Config struct {
	Lowercase  *bool  `yaml:"lowercase,omitempty" json:"lowercase,omitempty"`
	SplitRegex string `yaml:"split_regex,omitempty" json:"split_regex,omitempty"`
	Buckets    uint32 `yaml:"buckets,omitempty" json:"buckets,omitempty" validate:"omitempty,gt=1"`
}

// Lower reports whether tokens are lower-cased, true unless disabled
func (c Config) Lower() bool {
	return c.Lowercase == nil || *c.Lowercase
}

// Features is the featurized form of one text
type Features struct {
	Tokens []string
	// TokenRanges are byte offsets of each token in the original text
	TokenRanges [][2]int
	WordIDs     []uint32
}

// Simple splits on a regex and optionally lower-cases, without language specific rules
type Simple struct {
	split   *regexp.Regexp
	lower   bool
	buckets uint32
}

// New compiles the split regex of cfg
func New(cfg Config) (*Simple, error) {
	pattern := cfg.SplitRegex
	if pattern == "" {
		pattern = DefaultSplitRegex
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling split regex %q", pattern)
	}
	buckets := cfg.Buckets
	if buckets == 0 {
		buckets = DefaultBuckets
	}
	return &Simple{split: re, lower: cfg.Lower(), buckets: buckets}, nil
}

// Buckets is the exclusive upper bound of word ids
func (s *Simple) Buckets() uint32 {
	return s.buckets
}

// Featurize tokenizes text
func (s *Simple) Featurize(text string) (f Features) {
	var start int
	emit := func(end int) {
		if end <= start {
			return
		}
		tok := text[start:end]
		if s.lower {
			tok = strings.ToLower(tok)
		}
		f.Tokens = append(f.Tokens, tok)
		f.TokenRanges = append(f.TokenRanges, [2]int{start, end})
	}
	for _, sep := range s.split.FindAllStringIndex(text, -1) {
		emit(sep[0])
		start = sep[1]
	}
	emit(len(text))

	f.WordIDs = make([]uint32, len(f.Tokens))
	hash.HashTokens(f.WordIDs, f.Tokens, 0, s.buckets)
	return
}

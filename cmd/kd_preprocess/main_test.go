package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixtureConfig = filepath.Join("..", "..", "testdata", "kd_doc_classification.yaml")
	fixtureData   = filepath.Join("..", "..", "testdata", "knowledge_distillation_test_tiny.tsv")
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestInspect(t *testing.T) {
	out, err := execute(t, "inspect", "--config", fixtureConfig, "--log-level", "error")
	require.NoError(t, err)

	var s summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 10, s.Rows)
	assert.Len(t, s.Columns, 5)
	assert.Equal(t, []string{"cu:ask_Location", "cu:other"}, s.Labels)
	// train_path is resolved next to the config
	assert.Equal(t, fixtureData, s.File)
}

func TestRunWritesAlignedExamples(t *testing.T) {
	out, err := execute(t, "run", fixtureData, "--config", fixtureConfig, "--log-level", "error")
	require.NoError(t, err)

	var records []record
	scanner := bufio.NewScanner(bytes.NewBufferString(out))
	for scanner.Scan() {
		var rec record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 10)
	assert.Equal(t, []string{"who", "r", "u", "?"}, records[0].Tokens)
	assert.Equal(t, "cu:other", records[0].DocLabel)
	assert.Equal(t, 1, records[0].LabelIndex)
	assert.Equal(t, []float64{-5.430975914001465, -0.005602254066616297}, records[0].TargetProbs)
	assert.Equal(t, []float64{-2.1000370979309082, 3.3254384994506836}, records[0].TargetLogits)
}

func TestRunToFileWithMetrics(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.jsonl")
	metricsPath := filepath.Join(dir, "kddoc.prom")
	_, err := execute(t, "run", fixtureData, "--config", fixtureConfig, "--log-level", "error",
		"--out", outPath, "--metrics-textfile", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 10, bytes.Count(data, []byte("\n")))

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "kddoc_rows_read_total 10")
	assert.Contains(t, string(metrics), "kddoc_batches_total 3")
}

func TestRunDefaultsWithoutConfig(t *testing.T) {
	out, err := execute(t, "run", fixtureData, "--log-level", "error")
	require.NoError(t, err)
	// default config reads all five columns but trains on hard labels only
	assert.NotContains(t, out, "target_probs")
	assert.Equal(t, 10, bytes.Count([]byte(out), []byte("\n")))
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run", "--log-level", "error")
	assert.Error(t, err, "no file and no train_path")

	_, err = execute(t, "run", filepath.Join("..", "..", "testdata", "missing.tsv"), "--log-level", "error")
	assert.Error(t, err)

	_, err = execute(t, "inspect", fixtureData, "--log-level", "loud")
	assert.Error(t, err)

	if _, statErr := os.Stat("/dev/full"); statErr == nil {
		_, err = execute(t, "run", fixtureData, "--log-level", "error", "--out", "/dev/full")
		assert.ErrorContains(t, err, "writing examples")
	}
}

func TestSplitSelectsConfiguredFile(t *testing.T) {
	out, err := execute(t, "inspect", "--config", fixtureConfig, "--log-level", "error", "--split", "eval")
	require.NoError(t, err)
	var s summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, fixtureData, s.File)
	assert.Equal(t, 10, s.Rows)

	_, err = execute(t, "run", "--config", fixtureConfig, "--log-level", "error", "--split", "test")
	assert.ErrorContains(t, err, "test_path is not configured")

	_, err = execute(t, "run", "--config", fixtureConfig, "--log-level", "error", "--split", "dev")
	assert.ErrorContains(t, err, `unknown split "dev"`)

	// an explicit FILE wins over the split
	_, err = execute(t, "run", fixtureData, "--config", fixtureConfig, "--log-level", "error", "--split", "test")
	assert.NoError(t, err)
}

func TestWriteOutputClosesFile(t *testing.T) {
	dir := t.TempDir()
	o := &options{out: filepath.Join(dir, "out.jsonl")}
	n, err := o.writeOutput(nil, []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	// the file was closed, so it can be removed and recreated
	require.NoError(t, os.Remove(o.out))

	o.out = filepath.Join(dir, "missing", "out.jsonl")
	_, err = o.writeOutput(nil, nil, nil)
	assert.ErrorContains(t, err, "creating output")
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestApply_TrainsThenPredictsCSV(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}
	pipe := write("pipeline.yml", `steps:
  - { name: impute, transform: impute_mean, args: [x] }
`)
	train := write("train.csv", "x\n1\n3\n")
	predict := write("predict.csv", "id,x\na,\nb,10\n")

	out, err := run(t, "apply", "-p", pipe, train, predict)
	require.NoError(t, err)
	assert.Equal(t, "id,x\na,2\nb,10\n", out)

	out, err = run(t, "apply", "-p", pipe, "-f", "json", train, predict)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","x":2},{"id":"b","x":10}]`, strings.TrimSpace(out))
}

func TestApply_RejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "apply", "-f", "xml", "a.csv", "b.csv")
	assert.ErrorContains(t, err, "unknown format")
}

func TestTransforms_ListsBuiltins(t *testing.T) {
	out, err := run(t, "transforms")
	require.NoError(t, err)
	for _, name := range []string{"impute_mean", "min_max", "scale", "standardize"} {
		assert.Contains(t, out, name+"\n")
	}
}

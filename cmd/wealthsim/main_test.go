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

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSimulate_Summary(t *testing.T) {
	out, err := runCLI(t, "simulate")
	require.NoError(t, err)
	assert.Contains(t, out, "Выигрывает:")
}

func TestSimulate_CSVFromScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("years_to_simulate: 3\n"), 0o600))

	out, err := runCLI(t, "simulate", "--scenario", path, "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
}

func TestSimulate_Errors(t *testing.T) {
	_, err := runCLI(t, "simulate", "--format", "xml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deposit: 2000000\n"), 0o600))
	_, err = runCLI(t, "simulate", "--scenario", path)
	assert.Error(t, err)
}

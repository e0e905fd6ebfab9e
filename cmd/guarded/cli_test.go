package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ib-77/guarded/internal/config"
)

func testCommand(t *testing.T, stdin string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()

	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestCalc(t *testing.T) {
	cmd, out, _ := testCommand(t, "")

	require.NoError(t, runCalc(cmd, []string{"percent", "50", "100"}))
	assert.Equal(t, "50\n", out.String())
}

func TestCalc_Failures(t *testing.T) {
	tests := []struct {
		args []string
		code int
	}{
		{[]string{"percent", "1", "0"}, ExitInvalidArgument},
		{[]string{"difference", "4", "5"}, ExitInvalidArgument},
		{[]string{"percent", "1"}, ExitInvalidArgument},
		{[]string{"modulo", "1", "2"}, ExitInvalidArgument},
		{[]string{"sqrt", "nine"}, ExitParseFailure},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cmd, out, _ := testCommand(t, "")

			err := runCalc(cmd, tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(err))
			assert.Empty(t, out.String())
		})
	}
}

func TestCalc_JSON(t *testing.T) {
	cmd, out, _ := testCommand(t, "")
	jsonOutput = true
	defer func() { jsonOutput = false }()

	err := runCalc(cmd, []string{"percent", "7", "0"})
	require.Error(t, err)
	var reported *reportedError
	require.ErrorAs(t, err, &reported)
	assert.Equal(t, ExitInvalidArgument, exitCode(err))

	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, "INVALID_INPUT", body["code"])
	assert.Equal(t, "whole must be non-zero", body["message"])
	assert.Equal(t, "PERMANENT", body["classification"])
}

func TestBatch_Stdin(t *testing.T) {
	cmd, out, errOut := testCommand(t, "percent 50 100\n# skip\ndifference 9 4\n")

	require.NoError(t, runBatch(cmd, nil))
	assert.Equal(t, "1\tpercent 50 100\t50\n3\tdifference 9 4\t5\n", out.String())
	assert.Contains(t, errOut.String(), "2 expressions: 2 ok")
}

func TestBatch_FileWithFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("sqrt x\npercent 1 0\nsqrt 4\n"), 0644))

	cmd, out, _ := testCommand(t, "")
	batchWorkers = 2
	defer func() { batchWorkers = 0 }()

	err := runBatch(cmd, []string{path})
	require.Error(t, err)
	assert.Equal(t, ExitParseFailure, exitCode(err), "first failing line decides the exit code")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1\tsqrt x\terror: cannot parse \"x\"", lines[0])
	assert.Equal(t, "2\tpercent 1 0\terror: whole must be non-zero", lines[1])
	assert.Equal(t, "3\tsqrt 4\t2", lines[2])
}

func TestBatch_MissingFile(t *testing.T) {
	cmd, _, _ := testCommand(t, "")

	err := runBatch(cmd, []string{filepath.Join(t.TempDir(), "nope.txt")})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, exitCode(err))
}

func TestPrompt(t *testing.T) {
	cmd, out, _ := testCommand(t, "two\n2\n")

	require.NoError(t, runPrompt(cmd, []string{"sqrt"}))
	assert.True(t, strings.HasSuffix(out.String(), "1.4142135623730951\n"), out.String())
	assert.Contains(t, out.String(), "try again")
}

func TestPrompt_DefaultFromConfig(t *testing.T) {
	cmd, out, _ := testCommand(t, "-1\n")
	cfg.Defaults = map[string]string{"area": "0"}

	require.NoError(t, runPrompt(cmd, []string{"area"}))
	assert.Equal(t, "radius must be non-negative, using default 0\n0\n", out.String())
}

func TestPrompt_UnknownOperation(t *testing.T) {
	cmd, _, _ := testCommand(t, "")

	err := runPrompt(cmd, []string{"modulo"})
	assert.Equal(t, ExitInvalidArgument, exitCode(err))
}

func TestOps(t *testing.T) {
	cmd, out, _ := testCommand(t, "")

	require.NoError(t, opsCmd.RunE(cmd, nil))
	for _, name := range []string{"percent", "difference", "quotient", "sqrt", "area", "charat"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestRoot_LoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guarded.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 7\nlogging:\n  level: error\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", path, "calc", "difference", "5", "5"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "0\n", out.String())
	assert.Equal(t, 7, cfg.Workers)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, exitCode(nil))
	assert.Equal(t, ExitFailure, exitCode(fmt.Errorf("plain")))
}

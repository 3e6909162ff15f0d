package cmdutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutsig/internal/apperr"
	"mutsig/internal/version"
)

func testCommand(runE func(*cobra.Command, []string) error) *cobra.Command {
	cmd := NewCommand("tool", "test tool")
	cmd.Flags().String("input", "", "")
	_ = cmd.MarkFlagRequired("input")
	cmd.RunE = runE
	return cmd
}

func TestRunExitCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, 0},
		{"invalid", apperr.InvalidParameter("bad"), 2},
		{"missing input", apperr.New(apperr.CodeInputNotFound, "gone"), 2},
		{"metric", apperr.UnsupportedMetric("x"), 2},
		{"output", apperr.New(apperr.CodeOutputError, "disk"), 3},
		{"cancelled", context.Canceled, ExitInterrupted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := testCommand(func(*cobra.Command, []string) error { return tc.err })
			var stderr bytes.Buffer
			code := Run(context.Background(), cmd, []string{"--input", "x"}, &bytes.Buffer{}, &stderr)
			assert.Equal(t, tc.want, code)
			if tc.err != nil {
				assert.Contains(t, stderr.String(), "tool: ")
			} else {
				assert.Empty(t, stderr.String())
			}
		})
	}
}

func TestRunUsageErrors(t *testing.T) {
	called := false
	run := func(*cobra.Command, []string) error { called = true; return nil }

	for _, argv := range [][]string{
		{},                          // required flag missing
		{"--input", "x", "--bogus"}, // unknown flag
	} {
		var stderr bytes.Buffer
		code := Run(context.Background(), testCommand(run), argv, &bytes.Buffer{}, &stderr)
		assert.Equal(t, 2, code, "%v", argv)
		assert.NotEmpty(t, stderr.String())
	}
	assert.False(t, called)
}

func TestRunVersionAndHelp(t *testing.T) {
	var stdout bytes.Buffer
	code := Run(context.Background(), testCommand(nil), []string{"--version"}, &stdout, &bytes.Buffer{})
	assert.Equal(t, 0, code)
	assert.Equal(t, "tool version "+version.Version+"\n", stdout.String())

	stdout.Reset()
	code = Run(context.Background(), testCommand(nil), []string{"-h"}, &stdout, &bytes.Buffer{})
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "--input")
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := testCommand(func(c *cobra.Command, _ []string) error { return c.Context().Err() })
	code := Run(ctx, cmd, []string{"--input", "x"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, ExitInterrupted, code)
}

func TestSetupAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mutsig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cluster:\n  dpi: 72\n"), 0o644))

	f := CommonFlags{ConfigPath: path, LogLevel: "debug", LogFormat: "json"}
	var stderr bytes.Buffer
	cfg, log, err := f.Setup(&stderr)
	require.NoError(t, err)
	assert.Equal(t, 72, cfg.Cluster.DPI)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	log.Debug("hello")
	_ = log.Sync()
	assert.Contains(t, stderr.String(), `"msg":"hello"`)
}

func TestSetupRejectsBadLevel(t *testing.T) {
	f := CommonFlags{LogLevel: "loud"}
	_, _, err := f.Setup(&bytes.Buffer{})
	assert.ErrorIs(t, err, apperr.ErrInvalidParameter)
}

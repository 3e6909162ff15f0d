// internal/cmdutil/run.go
//
// Package cmdutil holds the plumbing every mutsig command shares: running a
// cobra command inside the RunContext contract and mapping its outcome to
// an exit status.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mutsig/internal/apperr"
	"mutsig/internal/version"
)

// ExitInterrupted is returned when the context is cancelled.
const ExitInterrupted = 130

// NewCommand returns a root command with the settings all tools share.
func NewCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return apperr.Wrap(err, apperr.CodeInvalidParameter, "%s", c.CommandPath())
	})
	return cmd
}

// Run executes cmd with argv and returns the process exit status:
// 0 ok, 2 usage or bad input, 3 output or internal failure, 130 interrupted.
func Run(ctx context.Context, cmd *cobra.Command, argv []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		if ctx.Err() != nil {
			return ExitInterrupted
		}
		return 0
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		_, _ = fmt.Fprintf(stderr, "%s: interrupted\n", cmd.Name())
		return ExitInterrupted
	}
	_, _ = fmt.Fprintf(stderr, "%s: %v\n", cmd.Name(), err)

	// Errors that are not *apperr.Error come from cobra itself: missing
	// required flags, stray arguments, unknown subcommands.
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return 2
	}
	return apperr.ExitCode(err)
}

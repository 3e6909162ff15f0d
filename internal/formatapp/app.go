// internal/formatapp/app.go
//
// Package formatapp is the format-signature-table command: it converts a
// comma-separated signature definition table into the tab-separated,
// one-row-per-signature layout, or back with --restore.
package formatapp

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mutsig/internal/cmdutil"
	"mutsig/internal/sigtable"
)

type options struct {
	common      cmdutil.CommonFlags
	synapse     string
	deconstruct string
	restore     bool
}

func newCommand() *cobra.Command {
	var o options
	cmd := cmdutil.NewCommand("format-signature-table",
		"Reformat a signature definition table (Type, SubType, one column per signature)")
	cmd.Example = "  format-signature-table --synapse sigProfiler_SBS_signatures.csv --deconstruct sigProfiler_SBS_deconstructsigs.tsv"
	cmd.Args = cobra.NoArgs

	fl := cmd.Flags()
	fl.StringVar(&o.synapse, "synapse", "", "comma-separated definition table (.gz ok, - for stdin)")
	fl.StringVar(&o.deconstruct, "deconstruct", "", "tab-separated output table (- for stdout)")
	fl.BoolVar(&o.restore, "restore", false, "inverse conversion: read --deconstruct and write --synapse")
	_ = cmd.MarkFlagRequired("synapse")
	_ = cmd.MarkFlagRequired("deconstruct")
	o.common.Bind(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		_, log, err := o.common.Setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		return run(cmd.Context(), log, o)
	}
	return cmd
}

func run(ctx context.Context, log *zap.Logger, o options) error {
	if o.restore {
		err := sigtable.RestoreFile(ctx, log, o.deconstruct, o.synapse)
		if err != nil {
			log.Debug("restore failed", zap.Error(err))
		}
		return err
	}
	err := sigtable.ConvertFile(ctx, log, o.synapse, o.deconstruct)
	if err != nil {
		log.Debug("convert failed", zap.Error(err))
	}
	return err
}

// RunContext runs the command with argv and returns the exit status.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return cmdutil.Run(ctx, newCommand(), argv, stdout, stderr)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

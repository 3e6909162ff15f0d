// internal/cmdutil/setup.go
package cmdutil

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mutsig/internal/config"
	"mutsig/internal/logging"
)

// CommonFlags are the flags every tool accepts.
type CommonFlags struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// Bind registers --config, --log-level and --log-format on cmd.
func (f *CommonFlags) Bind(cmd *cobra.Command) {
	fl := cmd.PersistentFlags()
	fl.StringVar(&f.ConfigPath, "config", "", "YAML settings file (MUTSIG_* environment variables override it)")
	fl.StringVar(&f.LogLevel, "log-level", "", "debug | info | warn | error (default from config: warn)")
	fl.StringVar(&f.LogFormat, "log-format", "", "console | json (default from config: console)")
}

// Setup loads the configuration, applies the logging flags and builds the
// logger writing to stderr.
func (f *CommonFlags) Setup(stderr io.Writer) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFormat != "" {
		cfg.Log.Format = f.LogFormat
	}
	log, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

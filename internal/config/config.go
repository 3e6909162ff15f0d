// internal/config/config.go
//
// Package config loads tool settings from defaults, an optional YAML file and
// MUTSIG_* environment variables (highest precedence). Command-line flags
// are applied on top by each app.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"mutsig/internal/apperr"
	"mutsig/internal/logging"
	"mutsig/internal/palette"
)

// envPrefix maps nested keys like "cluster.dpi" to MUTSIG_CLUSTER_DPI.
const envPrefix = "MUTSIG"

// Config is the full settings tree.
type Config struct {
	Log     logging.Config `mapstructure:"log"`
	Cluster ClusterConfig  `mapstructure:"cluster"`
	Simplex SimplexConfig  `mapstructure:"simplex"`
}

// ClusterConfig controls the clustered heatmap figure.
type ClusterConfig struct {
	DPI    int     `mapstructure:"dpi"`
	Width  float64 `mapstructure:"width"`  // inches
	Height float64 `mapstructure:"height"` // inches
	// Colormap is a ColorBrewer sequential palette name.
	Colormap string `mapstructure:"colormap"`
	// BurdenColor is the saturated end of the mutation-burden strip.
	BurdenColor string `mapstructure:"burden_color"`
}

// SimplexConfig controls the ternary contour figures.
type SimplexConfig struct {
	DPI       int     `mapstructure:"dpi"`
	Width     float64 `mapstructure:"width"`
	Height    float64 `mapstructure:"height"`
	Levels    int     `mapstructure:"levels"`
	Subdiv    int     `mapstructure:"subdiv"`
	Tolerance float64 `mapstructure:"tolerance"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load returns the effective configuration. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(err, apperr.CodeInputNotFound, "config file %s", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperr.Wrap(err, apperr.CodeParseError, "read config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeParseError, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default is the configuration with nothing but built-in defaults.
func Default() *Config {
	cfg := &Config{}
	_ = newViper().Unmarshal(cfg)
	return cfg
}

// Validate checks ranges; it is re-run by apps after flag overrides.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return apperr.InvalidParameter("log.format must be console or json, got %q", c.Log.Format)
	}

	if err := validateFigure("cluster", c.Cluster.DPI, c.Cluster.Width, c.Cluster.Height); err != nil {
		return err
	}
	if strings.TrimSpace(c.Cluster.Colormap) == "" {
		return apperr.InvalidParameter("cluster.colormap must not be empty")
	}
	if _, err := palette.ParseHex(c.Cluster.BurdenColor); err != nil {
		return apperr.InvalidParameter("cluster.burden_color: %v", err)
	}

	if err := validateFigure("simplex", c.Simplex.DPI, c.Simplex.Width, c.Simplex.Height); err != nil {
		return err
	}
	if c.Simplex.Levels < 2 {
		return apperr.InvalidParameter("simplex.levels must be ≥ 2, got %d", c.Simplex.Levels)
	}
	if c.Simplex.Subdiv < 0 || c.Simplex.Subdiv > 10 {
		return apperr.InvalidParameter("simplex.subdiv must be in [0,10], got %d", c.Simplex.Subdiv)
	}
	if !(c.Simplex.Tolerance > 0 && c.Simplex.Tolerance < 1.0/3) {
		return apperr.InvalidParameter("simplex.tolerance must be in (0, 1/3), got %g", c.Simplex.Tolerance)
	}
	return nil
}

func validateFigure(section string, dpi int, w, h float64) error {
	if dpi < 10 || dpi > 2400 {
		return apperr.InvalidParameter("%s.dpi must be in [10,2400], got %d", section, dpi)
	}
	if !(w > 0) || !(h > 0) {
		return apperr.InvalidParameter("%s.width and %s.height must be > 0", section, section)
	}
	return nil
}

// internal/config/defaults.go
package config

import "github.com/spf13/viper"

// Figure defaults: a 20x10 in clustermap saved at
// 300 dpi, and ternary contours saved at 200 dpi with 200 levels over an
// 8-fold refined mesh.
const (
	DefaultClusterDPI    = 300
	DefaultClusterWidth  = 20.0
	DefaultClusterHeight = 10.0
	DefaultColormap      = "YlGnBu"
	DefaultBurdenColor   = "#FF4500" // orangered

	DefaultSimplexDPI       = 200
	DefaultSimplexWidth     = 6.4
	DefaultSimplexHeight    = 6.0
	DefaultSimplexLevels    = 200
	DefaultSimplexSubdiv    = 8
	DefaultSimplexTolerance = 1e-3
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("cluster.dpi", DefaultClusterDPI)
	v.SetDefault("cluster.width", DefaultClusterWidth)
	v.SetDefault("cluster.height", DefaultClusterHeight)
	v.SetDefault("cluster.colormap", DefaultColormap)
	v.SetDefault("cluster.burden_color", DefaultBurdenColor)

	v.SetDefault("simplex.dpi", DefaultSimplexDPI)
	v.SetDefault("simplex.width", DefaultSimplexWidth)
	v.SetDefault("simplex.height", DefaultSimplexHeight)
	v.SetDefault("simplex.levels", DefaultSimplexLevels)
	v.SetDefault("simplex.subdiv", DefaultSimplexSubdiv)
	v.SetDefault("simplex.tolerance", DefaultSimplexTolerance)
}

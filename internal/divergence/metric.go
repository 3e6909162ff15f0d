// internal/divergence/metric.go
package divergence

import (
	"strings"

	"mutsig/internal/apperr"
)

// Func is a pairwise dissimilarity between two equal-length vectors.
type Func func(x, y []float64) float64

// Metric names a supported pairwise measure.
type Metric int

const (
	Cosine Metric = iota
	JensenShannon
)

var metricNames = [...]string{
	Cosine:        "cosine",
	JensenShannon: "jensen-shannon",
}

// Metrics lists every supported metric in CLI order.
func Metrics() []Metric { return []Metric{Cosine, JensenShannon} }

// Names lists the CLI spellings, e.g. for help text.
func Names() []string {
	out := make([]string, 0, len(metricNames))
	for _, m := range Metrics() {
		out = append(out, m.String())
	}
	return out
}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return "unknown"
	}
	return metricNames[m]
}

// ParseMetric resolves a CLI name. Unknown names are an UnsupportedMetric
// error rather than a silent fallthrough.
func ParseMetric(name string) (Metric, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Metrics() {
		if m.String() == n {
			return m, nil
		}
	}
	return 0, apperr.UnsupportedMetric("unsupported metric %q (want %s)", name, strings.Join(Names(), " | "))
}

// Func returns the strategy behind m: cosine → CosineDistance,
// jensen-shannon → JS.
func (m Metric) Func() Func {
	switch m {
	case Cosine:
		return CosineDistance
	case JensenShannon:
		return JS
	}
	panic("divergence: unknown metric " + m.String())
}

// RequiresDistributions reports whether rows must be non-negative with a
// positive total for the metric to be defined.
func (m Metric) RequiresDistributions() bool { return m == JensenShannon }

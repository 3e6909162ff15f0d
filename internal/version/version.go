// internal/version/version.go
package version

// Version is overridden at build time via -ldflags "-X mutsig/internal/version.Version=...".
var Version = "0.3.0"

// Package buildinfo holds version metadata injected at build time.
package buildinfo

// Set via -ldflags "-X github.com/accountflow/accountflow/internal/buildinfo.Version=..." etc.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Marquee is the canonical application identifier used for filesystem paths and CLI branding.
	Marquee = "marquee"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is the HTTP User-Agent string sent with every catalog and image request.
	UserAgent = Marquee + "/" + Version + " (+https://github.com/marquee-cli/marquee)"
)

// Build metadata, populated through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

package version

// Set at build time with -ldflags, e.g.
// go build -ldflags "-X github.com/alexiusacademia/gobridge/internal/version.Version=0.2.0"
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"

	// Author and Year appear in the banner
	Author = "Alexius Academia"
	Year   = "2026"
)

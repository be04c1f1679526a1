package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/labws/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/labws/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/labws/internal/version.Date={{.Date}}
)

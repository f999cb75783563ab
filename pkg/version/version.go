package version

import "runtime/debug"

// Build variables to be set via ldflags during compilation, e.g.:
// -X 'github.com/francis-ohara/model-garden-agent/pkg/version.Version=v1.0.0'
// -X 'github.com/francis-ohara/model-garden-agent/pkg/version.CommitHash=abc123'
// -X 'github.com/francis-ohara/model-garden-agent/pkg/version.BuildDate=2024-01-01T00:00:00Z'
var (
	// Version is the semantic version of the binary (e.g., "1.0.0")
	Version = "unknown"
	// CommitHash is the git commit hash used to build the binary
	CommitHash = "unknown"
	// BuildDate is the timestamp when the binary was built (RFC3339 format)
	BuildDate = "unknown"
)

// Info returns build information in a structured format
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildDate  string `json:"build_date"`
}

// Get returns the current build information, falling back to the module
// build info when ldflags were not set (go install / go run builds).
func Get() Info {
	info := Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildDate:  BuildDate,
	}
	if info.Version != "unknown" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.CommitHash == "unknown" {
					info.CommitHash = setting.Value
				}
			case "vcs.time":
				if info.BuildDate == "unknown" {
					info.BuildDate = setting.Value
				}
			}
		}
	}
	return info
}

// GetVersion returns just the version string
func GetVersion() string {
	return Get().Version
}

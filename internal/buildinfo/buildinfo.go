package buildinfo

import "time"

// Set via -ldflags at build time
var (
	BuildTime  string // when the binary was compiled
	CommitTime string // last git commit time
	CommitHash string // short git commit hash
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC().Format(time.RFC3339)

// Info is the build description reported by /api/status and slotctl version
type Info struct {
	BuildTime  string `json:"buildTime" yaml:"buildTime"`
	CommitTime string `json:"commitTime" yaml:"commitTime"`
	CommitHash string `json:"commitHash" yaml:"commitHash"`
	StartTime  string `json:"startTime" yaml:"startTime"`
}

// Current returns the values linked into this binary; unset ones read "dev"
func Current() Info {
	return Info{
		BuildTime:  orDev(BuildTime),
		CommitTime: orDev(CommitTime),
		CommitHash: orDev(CommitHash),
		StartTime:  StartTime,
	}
}

func orDev(s string) string {
	if s == "" {
		return "dev"
	}
	return s
}

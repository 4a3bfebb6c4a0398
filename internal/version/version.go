// Package version carries build metadata stamped in at link time:
//
//	go build -ldflags "-X image-resizer/internal/version.Version=v1.2.0 -X image-resizer/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

var (
	Version = "dev"
	Commit  = "unknown"
)

func GetVersion() string {
	return Version
}

// String is the version with the commit appended when one was stamped.
func String() string {
	if Commit == "" || Commit == "unknown" {
		return Version
	}
	return Version + "+" + Commit
}

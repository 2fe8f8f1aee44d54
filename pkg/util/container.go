package util

import "os"

// containerMarkers are files container runtimes drop into the root fs
var containerMarkers = []string{
	"/.dockerenv",
	"/run/.containerenv", // podman
}

// InContainer reports whether the process runs inside a docker or
// podman container
func InContainer() bool {
	return hasAny(containerMarkers)
}

func hasAny(paths []string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}

	return false
}

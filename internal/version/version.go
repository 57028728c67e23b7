// Package version carries the build metadata stamped into the binary.
package version

import (
	"fmt"
	"runtime"
)

// Stamped at build time, e.g.
//
//	go build -ldflags "-X github.com/ShyamendraHazra/home-config/internal/version.Version=0.3.0"
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Short returns just the version number, for cobra's --version flag.
func Short() string {
	return Version
}

// String returns the full human-readable version line.
func String() string {
	s := fmt.Sprintf("themectl %s (%s, %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if c := shortCommit(); c != "" {
		s += ", commit " + c
	}
	if Date != "" {
		s += ", built " + Date
	}
	return s
}

// shortCommit abbreviates a full hash; anything already short is kept as is.
func shortCommit() string {
	if len(Commit) > 8 {
		return Commit[:8]
	}
	return Commit
}

// Package build provides domain entities for build information.
package build

import "fmt"

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// String returns a one-line version string.
func (i Info) String() string {
	version := i.Version
	if version == "" {
		version = "dev"
	}
	if i.Commit == "" || i.Commit == "unknown" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, i.Commit)
}

// Contributors returns the list of project contributors.
func Contributors() []string {
	return []string{"bnema"}
}

// RepoURL returns the GitHub repository URL.
func RepoURL() string {
	return "https://github.com/bnema/dockable"
}

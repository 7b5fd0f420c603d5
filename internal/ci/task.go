// Package ci generates the CI configuration that builds and publishes releases.
package ci

import (
	"strings"

	"github.com/AndreyAkinshin/dist/internal/runner"
)

// ArtifactMode selects which artifacts one "dist build" invocation produces.
type ArtifactMode string

const (
	// ArtifactsGlobal builds artifacts that do not depend on a platform.
	ArtifactsGlobal ArtifactMode = "global"
	// ArtifactsLocal builds artifacts for the listed targets.
	ArtifactsLocal ArtifactMode = "local"
)

// Args are the arguments passed to "dist build" by one CI job.
type Args struct {
	Artifacts ArtifactMode
	Targets   []string
}

// String renders the arguments as command-line flags, e.g.
// "--artifacts=local --target=x86_64-apple-darwin".
func (a Args) String() string {
	parts := []string{"--artifacts=" + string(a.Artifacts)}
	for _, t := range a.Targets {
		parts = append(parts, "--target="+t)
	}
	return strings.Join(parts, " ")
}

// MarshalText encodes the arguments as a single flag string.
func (a Args) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Task is one CI build job.
type Task struct {
	Runner      runner.Runner `json:"runner"`
	Args        Args          `json:"dist_args"`
	InstallDist string        `json:"install_dist"`
}

// Matrix is a GitHub Actions job matrix of build tasks.
type Matrix struct {
	Include []Task `json:"include"`
}

// Package config provides configuration loading and validation for .dist/config.json.
package config

// Config represents the complete config.json configuration.
type Config struct {
	Project  ProjectConfig   `json:"project"`
	Dist     *DistConfig     `json:"dist,omitempty"`
	Releases []ReleaseConfig `json:"releases,omitempty"`
}

// ProjectConfig contains project metadata.
type ProjectConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	Repository  string `json:"repository,omitempty"`
	License     string `json:"license,omitempty"`
}

// DistConfig configures how releases are built and published in CI.
type DistConfig struct {
	Version       string   `json:"version,omitempty"`        // dist version installed in CI (default: this binary's)
	Toolchain     string   `json:"toolchain,omitempty"`      // Deprecated: toolchain version installed before building
	CI            []string `json:"ci,omitempty"`             // CI backends to generate ("github")
	MergeTasks    bool     `json:"merge_tasks,omitempty"`    // Build all targets of one runner in a single job
	FailFast      bool     `json:"fail_fast,omitempty"`      // Cancel remaining build jobs when one fails
	CreateRelease *bool    `json:"create_release,omitempty"` // Create the GitHub release (default: true)
	AllowDirty    []string `json:"allow_dirty,omitempty"`    // CI backends whose generated files may be hand-edited
	PRRunMode     string   `json:"pr_run_mode,omitempty"`    // "skip", "plan", or "upload"
	Tap           string   `json:"tap,omitempty"`            // Homebrew tap repository ("owner/homebrew-tap")
	PublishJobs   []string `json:"publish_jobs,omitempty"`   // "homebrew" or "./custom-job"
	InstallerURL  string   `json:"installer_url,omitempty"`  // Base URL of dist release downloads
}

// ReleaseConfig describes one application released from the workspace.
type ReleaseConfig struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Targets    []string `json:"targets,omitempty"`    // Platform triples to build
	Installers []string `json:"installers,omitempty"` // "shell", "powershell", "npm", "homebrew"
}

// CIStyle names a CI backend.
type CIStyle string

const (
	CIGitHub CIStyle = "github"
)

// PRRunMode selects what the release workflow does on pull requests.
type PRRunMode string

const (
	// PRRunSkip does not run on pull requests.
	PRRunSkip PRRunMode = "skip"
	// PRRunPlan only computes the release plan.
	PRRunPlan PRRunMode = "plan"
	// PRRunUpload builds and uploads artifacts to the workflow run.
	PRRunUpload PRRunMode = "upload"
)

// Installer kinds. Each produces one global artifact per release.
const (
	InstallerShell      = "shell"
	InstallerPowerShell = "powershell"
	InstallerNpm        = "npm"
	InstallerHomebrew   = "homebrew"
)

// PublishHomebrew is the built-in publish job that pushes formulae to Tap.
const PublishHomebrew = "homebrew"

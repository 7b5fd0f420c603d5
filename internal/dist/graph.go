// Package dist builds the release graph: which applications are released,
// which targets they are built for, and which artifacts each release produces.
package dist

import (
	"slices"
	"strings"

	"github.com/AndreyAkinshin/dist/internal/config"
)

// Release is one application released from the workspace.
type Release struct {
	Name    string
	Version string
	Targets []string

	// GlobalArtifacts are built once, on any machine (installers, formulae).
	GlobalArtifacts []string
	// LocalArtifacts are built once per target, on a machine for that target.
	LocalArtifacts []string
}

// PublishJob is a job that runs after the release is hosted.
// It is either "homebrew" or a custom job "./<name>".
type PublishJob string

// String returns the job as written in configuration.
func (j PublishJob) String() string {
	return string(j)
}

// IsCustom reports whether the job is a user-provided reusable workflow.
func (j PublishJob) IsCustom() bool {
	return strings.HasPrefix(string(j), "./")
}

// Graph is everything the CI backends need to know about a release.
type Graph struct {
	WorkspaceDir string
	Releases     []Release

	DesiredToolchain   string
	DesiredDistVersion string // empty means this binary's version
	InstallerURL       string

	MergeTasks    bool
	FailFast      bool
	CreateRelease bool

	CIStyles    []config.CIStyle
	AllowDirty  []config.CIStyle
	PRRunMode   config.PRRunMode
	Tap         string
	PublishJobs []PublishJob
}

// FromConfig builds the release graph for the project at root.
// cfg must already be validated and have defaults applied.
func FromConfig(root string, cfg *config.Config) *Graph {
	d := cfg.Dist
	if d == nil {
		d = &config.DistConfig{}
	}

	g := &Graph{
		WorkspaceDir:       root,
		DesiredToolchain:   d.Toolchain,
		DesiredDistVersion: d.Version,
		InstallerURL:       strings.TrimSuffix(d.InstallerURL, "/"),
		MergeTasks:         d.MergeTasks,
		FailFast:           d.FailFast,
		CreateRelease:      d.CreateRelease == nil || *d.CreateRelease,
		PRRunMode:          config.PRRunMode(d.PRRunMode),
		Tap:                d.Tap,
	}
	if g.InstallerURL == "" {
		g.InstallerURL = config.DefaultInstallerURL
	}
	if g.PRRunMode == "" {
		g.PRRunMode = config.DefaultPRRunMode
	}
	for _, s := range d.CI {
		g.CIStyles = append(g.CIStyles, config.CIStyle(s))
	}
	for _, s := range d.AllowDirty {
		g.AllowDirty = append(g.AllowDirty, config.CIStyle(s))
	}
	for _, j := range d.PublishJobs {
		g.PublishJobs = append(g.PublishJobs, PublishJob(j))
	}

	for _, rc := range cfg.Releases {
		g.Releases = append(g.Releases, newRelease(rc))
	}

	return g
}

func newRelease(rc config.ReleaseConfig) Release {
	r := Release{
		Name:    rc.Name,
		Version: rc.Version,
		Targets: slices.Clone(rc.Targets),
	}
	for _, installer := range rc.Installers {
		r.GlobalArtifacts = append(r.GlobalArtifacts, installerArtifact(rc.Name, installer))
	}
	for _, target := range rc.Targets {
		r.LocalArtifacts = append(r.LocalArtifacts, archiveArtifact(rc.Name, target))
	}
	return r
}

func installerArtifact(name, installer string) string {
	switch installer {
	case config.InstallerShell:
		return name + "-installer.sh"
	case config.InstallerPowerShell:
		return name + "-installer.ps1"
	case config.InstallerNpm:
		return name + "-npm-package.tar.gz"
	case config.InstallerHomebrew:
		return name + ".rb"
	default:
		return name + "-" + installer
	}
}

func archiveArtifact(name, target string) string {
	if strings.Contains(target, "windows") {
		return name + "-" + target + ".zip"
	}
	return name + "-" + target + ".tar.xz"
}

// UsesCI reports whether style is one of the configured CI backends.
func (g *Graph) UsesCI(style config.CIStyle) bool {
	return slices.Contains(g.CIStyles, style)
}

// AllowsDirty reports whether generated files of style may differ from a fresh render.
func (g *Graph) AllowsDirty(style config.CIStyle) bool {
	return slices.Contains(g.AllowDirty, style)
}

// NeedsGlobalBuild reports whether any release has global artifacts.
func (g *Graph) NeedsGlobalBuild() bool {
	for _, r := range g.Releases {
		if len(r.GlobalArtifacts) > 0 {
			return true
		}
	}
	return false
}

// LocalTargets returns the union of all release targets, sorted and de-duplicated.
func (g *Graph) LocalTargets() []string {
	var targets []string
	for _, r := range g.Releases {
		targets = append(targets, r.Targets...)
	}
	slices.Sort(targets)
	return slices.Compact(targets)
}

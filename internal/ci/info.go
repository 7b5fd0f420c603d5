package ci

import (
	"fmt"
	"log/slog"

	"github.com/AndreyAkinshin/dist/internal/config"
	"github.com/AndreyAkinshin/dist/internal/dist"
	"github.com/AndreyAkinshin/dist/internal/jobgraph"
	"github.com/AndreyAkinshin/dist/internal/runner"
	"github.com/AndreyAkinshin/dist/internal/version"
)

// Info is everything the GitHub workflow template needs.
type Info struct {
	ToolchainVersion string           `json:"toolchain_version,omitempty"` // Deprecated
	DistVersion      string           `json:"dist_version"`
	InstallDistSh    string           `json:"install_dist_sh"`
	InstallDistPs1   string           `json:"install_dist_ps1"`
	FailFast         bool             `json:"fail_fast"`
	CreateRelease    bool             `json:"create_release"`
	AllowDirty       bool             `json:"allow_dirty"`
	GlobalTask       *Task            `json:"global_task,omitempty"`
	ArtifactsMatrix  Matrix           `json:"artifacts_matrix"`
	PRRunMode        config.PRRunMode `json:"pr_run_mode"`
	Tap              string           `json:"tap,omitempty"`
	PublishJobs      []string         `json:"publish_jobs"`
}

// NewGitHubInfo computes the workflow data for g. Targets that no runner
// is known for are built on runner.Fallback and reported to logger.
func NewGitHubInfo(g *dist.Graph, logger *slog.Logger) *Info {
	distVersion := version.Resolve(g.DesiredDistVersion)
	installSh := InstallDistSh(g.InstallerURL, distVersion)
	installPs1 := InstallDistPs1(g.InstallerURL, distVersion)

	info := &Info{
		ToolchainVersion: g.DesiredToolchain,
		DistVersion:      distVersion,
		InstallDistSh:    installSh,
		InstallDistPs1:   installPs1,
		FailFast:         g.FailFast,
		CreateRelease:    g.CreateRelease,
		AllowDirty:       g.AllowsDirty(config.CIGitHub),
		ArtifactsMatrix:  Matrix{Include: []Task{}},
		PRRunMode:        g.PRRunMode,
		Tap:              g.Tap,
		PublishJobs:      []string{},
	}
	for _, job := range g.PublishJobs {
		info.PublishJobs = append(info.PublishJobs, job.String())
	}

	if g.NeedsGlobalBuild() {
		info.GlobalTask = &Task{
			Runner:      runner.Linux,
			Args:        Args{Artifacts: ArtifactsGlobal},
			InstallDist: installSh,
		}
	}

	for _, a := range runner.Distribute(g.LocalTargets(), g.MergeTasks, logger) {
		info.ArtifactsMatrix.Include = append(info.ArtifactsMatrix.Include, Task{
			Runner:      a.Runner,
			Args:        Args{Artifacts: ArtifactsLocal, Targets: a.Targets},
			InstallDist: runner.InstallerFor(a.Runner, installSh, installPs1),
		})
	}

	return info
}

// InstallDistSh returns the shell command that installs dist version ver.
func InstallDistSh(baseURL, ver string) string {
	return fmt.Sprintf("curl --proto '=https' --tlsv1.2 -LsSf %s/v%s/dist-installer.sh | sh", baseURL, ver)
}

// InstallDistPs1 returns the PowerShell command that installs dist version ver.
func InstallDistPs1(baseURL, ver string) string {
	return fmt.Sprintf(`powershell -c "irm %s/v%s/dist-installer.ps1 | iex"`, baseURL, ver)
}

// GlobalNeeds lists the jobs the global build job waits for.
func (i *Info) GlobalNeeds() []string {
	needs := []string{"plan"}
	if len(i.ArtifactsMatrix.Include) > 0 {
		needs = append(needs, "build-local-artifacts")
	}
	return needs
}

// HostNeeds lists the jobs the host job waits for.
func (i *Info) HostNeeds() []string {
	needs := []string{"plan"}
	if len(i.ArtifactsMatrix.Include) > 0 {
		needs = append(needs, "build-local-artifacts")
	}
	if i.GlobalTask != nil {
		needs = append(needs, "build-global-artifacts")
	}
	return needs
}

// AnnounceNeeds lists the jobs the announce job waits for.
func (i *Info) AnnounceNeeds() []string {
	needs := []string{"plan", "host"}
	for _, job := range i.PublishJobs {
		needs = append(needs, PublishJobID(job))
	}
	return needs
}

// Jobs returns the workflow's job ids with the jobs each one needs.
func (i *Info) Jobs() jobgraph.Graph {
	g := jobgraph.Graph{"plan": nil}
	if len(i.ArtifactsMatrix.Include) > 0 {
		g["build-local-artifacts"] = []string{"plan"}
	}
	if i.GlobalTask != nil {
		g["build-global-artifacts"] = i.GlobalNeeds()
	}
	g["host"] = i.HostNeeds()
	for _, job := range i.PublishJobs {
		g[PublishJobID(job)] = []string{"plan", "host"}
	}
	g["announce"] = i.AnnounceNeeds()
	return g
}

// PublishJobID returns the workflow job id for a publish job.
func PublishJobID(job string) string {
	if dist.PublishJob(job).IsCustom() {
		return "custom-" + job[len("./"):]
	}
	return "publish-" + job + "-formula"
}

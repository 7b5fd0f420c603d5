package cli

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/dist/internal/ci"
	"github.com/AndreyAkinshin/dist/internal/dist"
	"github.com/AndreyAkinshin/dist/internal/errors"
	"github.com/AndreyAkinshin/dist/internal/jobgraph"
	"github.com/AndreyAkinshin/dist/internal/version"
)

// planManifest is the machine-readable plan printed by "dist plan --json".
// The generated workflow reads it with jq and fromJson.
type planManifest struct {
	DistVersion              string              `json:"dist_version"`
	AnnouncementTag          string              `json:"announcement_tag,omitempty"`
	AnnouncementTitle        string              `json:"announcement_title,omitempty"`
	AnnouncementIsPrerelease bool                `json:"announcement_is_prerelease"`
	PublishPrereleases       bool                `json:"publish_prereleases"`
	Releases                 []planRelease       `json:"releases"`
	CI                       map[string]*ci.Info `json:"ci"`
}

type planRelease struct {
	AppName         string   `json:"app_name"`
	AppVersion      string   `json:"app_version"`
	Targets         []string `json:"targets"`
	GlobalArtifacts []string `json:"global_artifacts"`
	LocalArtifacts  []string `json:"local_artifacts"`
}

// cmdPlan prints the releases, their artifacts, and the CI build tasks.
func cmdPlan(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printPlanUsage()
		return 0
	}

	flags := newFlagSet("plan")
	merge := flags.Bool("merge-tasks", false, "build all targets of a runner in one job")
	split := flags.Bool("split-tasks", false, "build every target in its own job")
	asJSON := flags.Bool("json", false, "print the plan as JSON")
	tag := flags.String("tag", "", "git tag being released")
	if err := flags.Parse(args); err != nil {
		return reportError(errors.Configf("plan: %v", err))
	}
	if *merge && *split {
		return reportError(errors.Config("plan: --merge-tasks and --split-tasks are mutually exclusive"))
	}
	if flags.NArg() > 0 {
		return reportError(errors.Configf("plan: unexpected argument %q", flags.Arg(0)))
	}

	proj, exitCode := loadProject()
	if proj == nil {
		return exitCode
	}

	graph := proj.Graph()
	switch {
	case *merge:
		graph.MergeTasks = true
	case *split:
		graph.MergeTasks = false
	}

	info := ci.NewGitHubInfo(graph, newLogger(opts, "plan"))
	manifest := buildManifest(graph, info, *tag)

	if *asJSON {
		enc := json.NewEncoder(out.Out())
		enc.SetIndent("", "  ")
		if err := enc.Encode(manifest); err != nil {
			return reportError(errors.Wrap(err, "failed to encode plan"))
		}
		return 0
	}

	if err := printPlan(graph, info); err != nil {
		return reportError(err)
	}
	return 0
}

func buildManifest(g *dist.Graph, info *ci.Info, tag string) *planManifest {
	m := &planManifest{
		DistVersion:     info.DistVersion,
		AnnouncementTag: tag,
		Releases:        []planRelease{},
		CI:              map[string]*ci.Info{"github": info},
	}

	var titles []string
	for _, r := range g.Releases {
		m.Releases = append(m.Releases, planRelease{
			AppName:         r.Name,
			AppVersion:      r.Version,
			Targets:         nonNil(r.Targets),
			GlobalArtifacts: nonNil(r.GlobalArtifacts),
			LocalArtifacts:  nonNil(r.LocalArtifacts),
		})
		titles = append(titles, r.Name+" "+r.Version)
		if version.IsPrerelease(r.Version) {
			m.AnnouncementIsPrerelease = true
		}
	}

	switch {
	case tag != "":
		m.AnnouncementTitle = tag
	case len(titles) > 0:
		m.AnnouncementTitle = strings.Join(titles, ", ")
	}
	return m
}

func printPlan(g *dist.Graph, info *ci.Info) error {
	stages, err := jobgraph.Stages(info.Jobs())
	if err != nil {
		return errors.Wrap(err, "invalid github workflow jobs")
	}

	heading := cases.Title(language.English)

	out.Section(heading.String("releases"))
	if len(g.Releases) == 0 {
		out.Info("(none)")
	}
	for _, r := range g.Releases {
		out.Release(r.Name, r.Version)
		if len(r.Targets) > 0 {
			out.Detail("targets", strings.Join(r.Targets, ", "))
		}
		for _, a := range r.GlobalArtifacts {
			out.Detail("global", a)
		}
		for _, a := range r.LocalArtifacts {
			out.Detail("local", a)
		}
	}

	out.Section(heading.String("build tasks"))
	var rows [][]string
	if info.GlobalTask != nil {
		rows = append(rows, taskRow(*info.GlobalTask))
	}
	for _, task := range info.ArtifactsMatrix.Include {
		rows = append(rows, taskRow(task))
	}
	out.Table([]string{"Runner", "OS", "Arguments"}, rows)

	out.Section(heading.String("workflow jobs"))
	jobs := info.Jobs()
	var stageRows [][]string
	for i, stage := range stages {
		for _, id := range stage {
			stageRows = append(stageRows, []string{strconv.Itoa(i + 1), id, strings.Join(jobs[id], ", ")})
		}
	}
	out.Table([]string{"Stage", "Job", "Needs"}, stageRows)

	mode := "split"
	if g.MergeTasks {
		mode = "merged"
	}
	out.Info("")
	out.Hint("%d build job(s), %s tasks, dist %s", len(rows), mode, info.DistVersion)
	return nil
}

func taskRow(task ci.Task) []string {
	return []string{task.Runner.String(), task.Runner.Family().String(), task.Args.String()}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func printPlanUsage() {
	w := out

	w.HelpTitle("dist plan - show what a release would build")

	w.HelpSection("Usage:")
	w.HelpUsage("dist plan [--merge-tasks | --split-tasks] [--json] [--tag <tag>]")

	w.HelpSection("Options:")
	w.HelpFlag("--merge-tasks", "One build job per runner", helpFlagWidthGlobal)
	w.HelpFlag("--split-tasks", "One build job per target", helpFlagWidthGlobal)
	w.HelpFlag("--json", "Print the plan as JSON", helpFlagWidthGlobal)
	w.HelpFlag("--tag <tag>", "Tag being released (used for the announcement)", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)
	w.Println("")
}

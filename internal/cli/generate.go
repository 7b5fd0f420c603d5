package cli

import (
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/AndreyAkinshin/dist/internal/asset"
	"github.com/AndreyAkinshin/dist/internal/ci"
	"github.com/AndreyAkinshin/dist/internal/config"
	"github.com/AndreyAkinshin/dist/internal/dist"
	"github.com/AndreyAkinshin/dist/internal/errors"
	"github.com/AndreyAkinshin/dist/internal/templates"
)

// cmdGenerate writes, or with --check verifies, the CI configuration of
// every configured backend.
func cmdGenerate(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printGenerateUsage()
		return 0
	}

	flags := newFlagSet("generate")
	check := flags.Bool("check", false, "fail if generated files are out of date")
	styles := flags.StringSlice("ci", nil, "CI backends to generate")
	if err := flags.Parse(args); err != nil {
		return reportError(errors.Configf("generate: %v", err))
	}
	if flags.NArg() > 0 {
		return reportError(errors.Configf("generate: unexpected argument %q", flags.Arg(0)))
	}

	selected := make([]config.CIStyle, 0, len(*styles))
	for _, s := range *styles {
		style := config.CIStyle(s)
		if style != config.CIGitHub {
			return reportError(errors.Configf("generate: unknown CI backend %q (valid values: %s)", s, config.CIGitHub))
		}
		selected = append(selected, style)
	}

	proj, exitCode := loadProject()
	if proj == nil {
		return exitCode
	}

	graph := proj.Graph()
	if len(selected) == 0 {
		selected = graph.CIStyles
	}
	if len(selected) == 0 {
		out.Warning("no CI backends configured; add \"ci\": [\"github\"] to the dist section of %s", proj.ConfigPath())
		return 0
	}
	slices.Sort(selected)
	selected = slices.Compact(selected)

	logger := newLogger(opts, "generate")
	engine := templates.New()
	store := asset.NewLocal()

	for _, style := range selected {
		gen := newGenerator(style, graph, engine, store, logger)
		rel := relPath(proj.Root, gen.Path())

		if *check {
			if err := gen.Check(); err != nil {
				return reportError(err)
			}
			out.FileUpToDate(rel)
			continue
		}

		text, err := gen.Write()
		if err != nil {
			return reportError(err)
		}
		out.FileWritten(rel, asset.ShortDigest(text))
	}

	return 0
}

// newGenerator returns the generator for a CI backend.
func newGenerator(style config.CIStyle, g *dist.Graph, r ci.Renderer, s ci.FileStore, logger *slog.Logger) *ci.Generator {
	switch style {
	case config.CIGitHub:
		return ci.NewGenerator(ci.NewGitHubInfo(g, logger), g.WorkspaceDir, r, s, logger)
	default:
		panic("internal error: no generator for CI backend " + string(style))
	}
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func printGenerateUsage() {
	w := out

	w.HelpTitle("dist generate - generate CI configuration")

	w.HelpSection("Usage:")
	w.HelpUsage("dist generate [--check] [--ci <backend>]")

	w.HelpSection("Options:")
	w.HelpFlag("--check", "Do not write; fail with exit code 4 if a file is out of date", helpFlagWidthGlobal)
	w.HelpFlag("--ci <backend>", "Only generate the given backend (github)", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)

	w.HelpSection("Examples:")
	w.HelpExample("dist generate", "Write .github/workflows/release.yml")
	w.HelpExample("dist generate --check", "Verify the workflow in CI")
	w.Println("")
}

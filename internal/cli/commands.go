package cli

import (
	stderrors "errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/AndreyAkinshin/dist/internal/errors"
	"github.com/AndreyAkinshin/dist/internal/logging"
	"github.com/AndreyAkinshin/dist/internal/output"
	"github.com/AndreyAkinshin/dist/internal/project"
)

// out is the global output writer for CLI commands.
var out = output.New()

// Help text alignment widths for consistent formatting.
const (
	helpCommandWidth    = 18 // Width for commands like "completion <shell>"
	helpFlagWidthShort  = 10 // Width for short flags like "-h, --help"
	helpFlagWidthGlobal = 14 // Width for global flags like "-v, --verbose"
)

// newLogger returns the diagnostic logger for a command.
func newLogger(opts *GlobalOptions, command string) *slog.Logger {
	return logging.New(out.Err(), opts.Verbose).With("command", command)
}

// newFlagSet returns a flag set that reports errors instead of printing them.
func newFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.SortFlags = false
	return flags
}

// loadProject loads the project configuration and handles errors uniformly.
// Returns the project and exit code 0 on success, or nil and appropriate exit code on failure.
func loadProject() (*project.Project, int) {
	proj, err := project.LoadProject()
	if err != nil {
		return nil, reportError(err)
	}
	for _, w := range proj.Warnings {
		out.Warning("%s", w)
	}
	return proj, 0
}

// reportError prints err with any detail it carries and returns its exit code.
func reportError(err error) int {
	out.ErrorPrefix("%v", err)

	var de *errors.DistError
	if stderrors.As(err, &de) {
		if de.Cause != nil && !strings.Contains(de.Message, de.Cause.Error()) {
			out.ErrorDetail("%v", de.Cause)
		}
		if de.Detail != "" {
			out.ErrorDetail("%s", de.Detail)
		}
	}
	return errors.GetExitCode(err)
}

func cmdConfig(args []string) int {
	if len(args) == 0 {
		return reportError(errors.Config("config: subcommand required (validate)"))
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate()
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		return reportError(errors.Configf("config: unknown subcommand %q", args[0]))
	}
}

func cmdConfigValidate() int {
	proj, exitCode := loadProject()
	if proj == nil {
		return exitCode
	}

	g := proj.Graph()
	targets := g.LocalTargets()

	out.Success("Configuration is valid.")
	out.Detail("Project", proj.Config.Project.Name)
	out.Detail("Releases", strconv.Itoa(len(g.Releases)))
	out.Detail("Targets", strconv.Itoa(len(targets)))
	if len(proj.Warnings) > 0 {
		out.Detail("Warnings", strconv.Itoa(len(proj.Warnings)))
	}
	return 0
}

func printConfigUsage() {
	w := out

	w.HelpTitle("dist config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpUsage("dist config validate")

	w.HelpSection("Commands:")
	w.HelpCommand("validate", "Check .dist/config.json against the schema and validation rules", helpFlagWidthShort)
	w.Println("")
}

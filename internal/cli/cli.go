// Package cli provides command-line interface functionality for dist.
package cli

import (
	"fmt"

	"github.com/AndreyAkinshin/dist/internal/errors"
	"github.com/AndreyAkinshin/dist/internal/output"
	"github.com/AndreyAkinshin/dist/internal/version"
)

// Version is set at build time.
var Version = version.Current

// wantsHelp returns true if args contain -h or --help before any -- separator.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		out.Println("dist %s", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "generate":
		return cmdGenerate(cmdArgs, opts)
	case "plan":
		return cmdPlan(cmdArgs, opts)
	case "config":
		return cmdConfig(cmdArgs)
	case "completion":
		return cmdCompletion(cmdArgs)
	case "help":
		printUsage()
		return 0
	case "version":
		out.Println("dist %s", Version)
		return 0
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Hint("Run 'dist help' for usage.")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet   bool
	Verbose bool
}

// parseGlobalFlags extracts global flags from anywhere in the argument list.
//
// Global flags may appear before or after the command, so they are picked
// out by hand; each command parses its own flags from what remains.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-q", "--quiet":
			opts.Quiet = true
		case "-v", "--verbose":
			opts.Verbose = true
		case "--":
			remaining = append(remaining, args[i:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
		}
	}

	if opts.Quiet && opts.Verbose {
		return nil, nil, fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}

	out.SetQuiet(opts.Quiet)

	return opts, remaining, nil
}

func printUsage() {
	w := out

	w.HelpTitle("dist - generate release workflows for multi-platform binaries")

	w.HelpSection("Usage:")
	w.HelpUsage("dist <command> [flags]")

	w.HelpSection("Commands:")
	w.HelpCommand("generate", "Generate CI configuration (.github/workflows/release.yml)", helpCommandWidth)
	w.HelpCommand("plan", "Show releases, artifacts, and build tasks", helpCommandWidth)
	w.HelpCommand("config validate", "Validate project configuration", helpCommandWidth)
	w.HelpCommand("completion <shell>", "Generate shell completion (bash, zsh, fish)", helpCommandWidth)
	w.HelpCommand("version", "Show version information", helpCommandWidth)
	w.HelpCommand("help", "Show this help", helpCommandWidth)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("dist generate", "Write the release workflow")
	w.HelpExample("dist generate --check", "Fail if the release workflow is out of date")
	w.HelpExample("dist plan --merge-tasks", "Show one build job per runner")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", helpFlagWidthGlobal)
	w.HelpFlag("-v, --verbose", "Debug diagnostics on stderr", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show help", helpFlagWidthGlobal)
	w.HelpFlag("--version", "Show version", helpFlagWidthGlobal)
}

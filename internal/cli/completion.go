package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/dist/internal/errors"
)

type commandDesc struct {
	name string
	desc string
}

// builtinCommands returns the CLI commands with their descriptions.
func builtinCommands() []commandDesc {
	return []commandDesc{
		{"generate", "Generate CI configuration"},
		{"plan", "Show releases, artifacts, and build tasks"},
		{"config", "Configuration utilities"},
		{"completion", "Generate shell completion"},
		{"version", "Show version information"},
		{"help", "Show help"},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []string {
	return []string{"--quiet", "--verbose", "--help", "--version"}
}

// commandFlags returns the flags of commands that take any.
func commandFlags() map[string][]string {
	return map[string][]string{
		"generate": {"--check", "--ci"},
		"plan":     {"--merge-tasks", "--split-tasks", "--json", "--tag"},
	}
}

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			out.ErrorPrefix("completion: --alias requires a value (--alias=<name>)")
			return errors.ExitConfigError
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown flag: %s", arg)
			return errors.ExitConfigError
		default:
			if shell != "" {
				out.ErrorPrefix("completion: unexpected argument: %s", arg)
				return errors.ExitConfigError
			}
			shell = arg
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required (bash, zsh, fish)")
		return errors.ExitConfigError
	}

	cmdName := "dist"
	if alias != "" {
		cmdName = alias
	}

	switch shell {
	case "bash":
		out.Print("%s", generateBashCompletion(cmdName))
	case "zsh":
		out.Print("%s", generateZshCompletion(cmdName))
	case "fish":
		out.Print("%s", generateFishCompletion(cmdName))
	default:
		out.ErrorPrefix("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return errors.ExitConfigError
	}

	return 0
}

// printCompletionUsage prints the help text for the completion command.
func printCompletionUsage() {
	w := out

	w.HelpTitle("dist completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpUsage("dist completion <shell> [--alias=<name>]")

	w.HelpSection("Arguments:")
	w.HelpFlag("<shell>", "Shell type: bash, zsh, or fish", helpFlagWidthShort)

	w.HelpSection("Options:")
	w.HelpFlag("--alias=<name>", "Generate completion for command alias", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)

	w.HelpSection("Installation:")
	w.Println("  Bash:  eval \"$(dist completion bash)\"")
	w.Println("  Zsh:   eval \"$(dist completion zsh)\"")
	w.Println("  Fish:  dist completion fish | source")
	w.Println("")
}

func commandNames() []string {
	var names []string
	for _, c := range builtinCommands() {
		names = append(names, c.name)
	}
	return names
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"
	cmdFlags := commandFlags()

	return fmt.Sprintf(`# dist bash completion
# Add to ~/.bashrc: eval "$(dist completion bash)"

%s() {
    local cur prev words cword
    _init_completion || return

    local commands="%s"
    local flags="%s"

    case "${prev}" in
        %s)
            COMPREPLY=($(compgen -W "${commands} ${flags}" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "validate" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        --ci)
            COMPREPLY=($(compgen -W "github" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        generate)
            COMPREPLY=($(compgen -W "%s ${flags}" -- "${cur}"))
            ;;
        plan)
            COMPREPLY=($(compgen -W "%s ${flags}" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
            ;;
    esac
}

complete -F %s %s
`, funcName, strings.Join(commandNames(), " "), strings.Join(globalFlags(), " "), cmdName,
		strings.Join(cmdFlags["generate"], " "), strings.Join(cmdFlags["plan"], " "), funcName, cmdName)
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var commands strings.Builder
	for _, c := range builtinCommands() {
		fmt.Fprintf(&commands, "        '%s:%s'\n", c.name, c.desc)
	}

	return fmt.Sprintf(`#compdef %s
# dist zsh completion
# Add to ~/.zshrc: eval "$(dist completion zsh)"

%s() {
    local -a commands flags

    commands=(
%s    )

    flags=(
        '(-q --quiet)'{-q,--quiet}'[Minimal output]'
        '(-v --verbose)'{-v,--verbose}'[Debug diagnostics]'
        '--help[Show help]'
        '--version[Show version]'
    )

    if (( CURRENT == 2 )); then
        _describe -t commands 'command' commands
        _arguments -s $flags[@]
        return
    fi

    case "${words[2]}" in
        generate)
            _arguments -s $flags[@] '--check[Fail if generated files are out of date]' '--ci[CI backend]:backend:(github)'
            ;;
        plan)
            _arguments -s $flags[@] '(--split-tasks)--merge-tasks[One job per runner]' '(--merge-tasks)--split-tasks[One job per target]' '--json[Print JSON]' '--tag[Tag being released]:tag:'
            ;;
        config)
            _values 'config subcommand' 'validate[Validate configuration]'
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        *)
            _arguments -s $flags[@]
            ;;
    esac
}

compdef %s %s
`, cmdName, funcName, commands.String(), funcName, cmdName)
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `# dist fish completion
# Add to config: dist completion fish | source

# Disable file completion by default
complete -c %s -f

`, cmdName)

	for _, c := range builtinCommands() {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n", cmdName, c.name, c.desc)
	}

	sb.WriteString("\n# Global flags\n")
	fmt.Fprintf(&sb, "complete -c %s -s q -l quiet -d 'Minimal output'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -s v -l verbose -d 'Debug diagnostics'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l help -d 'Show help'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l version -d 'Show version'\n", cmdName)

	sb.WriteString("\n# generate flags\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from generate' -l check -d 'Fail if generated files are out of date'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from generate' -l ci -d 'CI backend' -xa 'github'\n", cmdName)

	sb.WriteString("\n# plan flags\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from plan' -l merge-tasks -d 'One job per runner'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from plan' -l split-tasks -d 'One job per target'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from plan' -l json -d 'Print JSON'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from plan' -l tag -d 'Tag being released' -x\n", cmdName)

	sb.WriteString("\n# config subcommands\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from config' -a 'validate' -d 'Validate configuration'\n", cmdName)

	sb.WriteString("\n# completion subcommands\n")
	for _, shell := range []string{"bash", "zsh", "fish"} {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from completion' -a '%s' -d 'Generate %s completion'\n", cmdName, shell, shell)
	}

	return sb.String()
}

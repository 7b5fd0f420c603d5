// Package dist provides public constants for external tools integrating
// with the dist CLI.
package dist

// Exit codes returned by the dist CLI.
// These constants allow CI scripts and wrappers to check exit codes
// symbolically rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (render failed, write failed, etc.).
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid config, validation failure, etc.).
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (no project root found, etc.).
	ExitEnvError = 3

	// ExitDriftDetected indicates that 'dist generate --check' found a
	// generated file whose on-disk content differs from a fresh render.
	ExitDriftDetected = 4
)

package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/AndreyAkinshin/dist/internal/version"
)

// Validation patterns.
var (
	// Project name: must start with lowercase letter, may contain lowercase, digits, hyphens.
	// Hyphens must not be consecutive or trailing.
	projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

	// Release name: crate/package style names.
	releaseNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

	// Custom publish job: "./" followed by a workflow file stem.
	customJobPattern = regexp.MustCompile(`^\./[a-zA-Z0-9_-]+$`)

	// Homebrew tap: "owner/repo".
	tapPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
)

var (
	validCIStyles   = []string{string(CIGitHub)}
	validPRRunModes = []string{string(PRRunSkip), string(PRRunPlan), string(PRRunUpload)}
	validInstallers = []string{InstallerShell, InstallerPowerShell, InstallerNpm, InstallerHomebrew}
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateProject(cfg); err != nil {
		return nil, err
	}

	if cfg.Dist != nil {
		if err := validateDist(cfg.Dist); err != nil {
			return nil, err
		}
		if cfg.Dist.Toolchain != "" {
			warnings = append(warnings, "dist.toolchain is deprecated; pin the toolchain in the repository instead")
		}
	}

	if err := validateReleases(cfg.Releases); err != nil {
		return nil, err
	}
	if len(cfg.Releases) == 0 {
		warnings = append(warnings, "no releases configured; the generated workflow will not build anything")
	}

	return warnings, nil
}

func validateProject(cfg *Config) error {
	return ValidateProjectName(cfg.Project.Name)
}

func validateDist(d *DistConfig) error {
	if d.Version != "" {
		if err := version.Validate(d.Version); err != nil {
			return &ValidationError{Field: "dist.version", Message: err.Error()}
		}
	}

	if err := validateEnumList("dist.ci", d.CI, validCIStyles); err != nil {
		return err
	}
	if err := validateEnumList("dist.allow_dirty", d.AllowDirty, validCIStyles); err != nil {
		return err
	}

	if d.PRRunMode != "" && !slices.Contains(validPRRunModes, d.PRRunMode) {
		return &ValidationError{
			Field:   "dist.pr_run_mode",
			Message: fmt.Sprintf("must be one of %s", strings.Join(validPRRunModes, ", ")),
		}
	}

	if d.Tap != "" && !tapPattern.MatchString(d.Tap) {
		return &ValidationError{Field: "dist.tap", Message: `must have the form "owner/repo"`}
	}

	for i, job := range d.PublishJobs {
		if err := ValidatePublishJob(job); err != nil {
			return &ValidationError{Field: fmt.Sprintf("dist.publish_jobs[%d]", i), Message: err.Error()}
		}
		if job == PublishHomebrew && d.Tap == "" {
			return &ValidationError{Field: "dist.tap", Message: `is required when publish_jobs contains "homebrew"`}
		}
	}

	return nil
}

func validateReleases(releases []ReleaseConfig) error {
	seen := make(map[string]bool)
	for i, r := range releases {
		field := fmt.Sprintf("releases[%d]", i)
		if r.Name == "" {
			return &ValidationError{Field: field + ".name", Message: "is required"}
		}
		if !releaseNamePattern.MatchString(r.Name) {
			return &ValidationError{Field: field + ".name", Message: "must match pattern ^[a-zA-Z][a-zA-Z0-9_-]*$"}
		}
		if seen[r.Name] {
			return &ValidationError{Field: field + ".name", Message: fmt.Sprintf("duplicate release %q", r.Name)}
		}
		seen[r.Name] = true

		if r.Version == "" {
			return &ValidationError{Field: field + ".version", Message: "is required"}
		}
		if err := version.Validate(r.Version); err != nil {
			return &ValidationError{Field: field + ".version", Message: err.Error()}
		}

		for j, target := range r.Targets {
			if strings.TrimSpace(target) == "" || strings.ContainsAny(target, " \t\n") {
				return &ValidationError{
					Field:   fmt.Sprintf("%s.targets[%d]", field, j),
					Message: fmt.Sprintf("invalid target triple %q", target),
				}
			}
		}

		if err := validateEnumList(field+".installers", r.Installers, validInstallers); err != nil {
			return err
		}
	}
	return nil
}

func validateEnumList(field string, values, allowed []string) error {
	for i, v := range values {
		if !slices.Contains(allowed, v) {
			return &ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("unknown value %q (valid values: %s)", v, strings.Join(allowed, ", ")),
			}
		}
	}
	return nil
}

// ValidateProjectName checks if a project name is valid.
// Returns a ValidationError if the name is empty, too long (>128 chars),
// or doesn't match the required pattern.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project.name", Message: "is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "project.name", Message: "must be 128 characters or less"}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "project.name",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, non-consecutive hyphens)",
		}
	}
	return nil
}

// ValidatePublishJob checks that job is "homebrew" or a custom "./name" job.
func ValidatePublishJob(job string) error {
	if job == PublishHomebrew || customJobPattern.MatchString(job) {
		return nil
	}
	return fmt.Errorf(`unknown publish job %q (use "homebrew" or "./<job-name>")`, job)
}

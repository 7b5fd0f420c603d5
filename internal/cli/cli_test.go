package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/dist/internal/errors"
	"github.com/AndreyAkinshin/dist/internal/output"
	"github.com/AndreyAkinshin/dist/internal/version"
)

// captureOutput redirects the global writer for the duration of the test.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	original := out
	out = output.NewWithWriters(stdout, stderr, false)
	t.Cleanup(func() { out = original })
	return stdout, stderr
}

const testConfig = `{
	// release configuration
	"project": {"name": "axolotlsay"},
	"dist": {
		"ci": ["github"],
		"installer_url": "https://example.com/dl",
	},
	"releases": [
		{
			"name": "axolotlsay",
			"version": "1.0.0",
			"targets": ["x86_64-unknown-linux-gnu", "aarch64-apple-darwin", "x86_64-apple-darwin", "x86_64-pc-windows-msvc"],
			"installers": ["shell", "powershell"],
		},
	],
}`

// setupProject creates a project with the given config and changes into it.
func setupProject(t *testing.T, config string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".dist"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".dist", "config.json"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)
	return root
}

func workflowPath(root string) string {
	return filepath.Join(root, ".github", "workflows", "release.yml")
}

func TestParseGlobalFlags(t *testing.T) {
	captureOutput(t)

	tests := []struct {
		name      string
		args      []string
		wantOpts  GlobalOptions
		wantRest  []string
		wantError bool
	}{
		{"no flags", []string{"generate"}, GlobalOptions{}, []string{"generate"}, false},
		{"quiet before", []string{"-q", "generate"}, GlobalOptions{Quiet: true}, []string{"generate"}, false},
		{"verbose after", []string{"generate", "--verbose", "--check"}, GlobalOptions{Verbose: true}, []string{"generate", "--check"}, false},
		{"separator", []string{"plan", "--", "-q"}, GlobalOptions{}, []string{"plan", "--", "-q"}, false},
		{"quiet and verbose", []string{"-q", "-v", "plan"}, GlobalOptions{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, rest, err := parseGlobalFlags(tt.args)
			if tt.wantError {
				if err == nil {
					t.Error("parseGlobalFlags() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGlobalFlags() error = %v", err)
			}
			if *opts != tt.wantOpts {
				t.Errorf("opts = %+v, want %+v", *opts, tt.wantOpts)
			}
			if strings.Join(rest, " ") != strings.Join(tt.wantRest, " ") {
				t.Errorf("remaining = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}, {"-h"}, {"--help"}} {
		stdout, _ := captureOutput(t)
		if code := Run(args); code != 0 {
			t.Errorf("Run(%v) = %d, want 0", args, code)
		}
		if !strings.Contains(stdout.String(), "generate") {
			t.Errorf("Run(%v) help should list generate", args)
		}
	}
}

func TestRun_Version(t *testing.T) {
	stdout, _ := captureOutput(t)
	if code := Run([]string{"version"}); code != 0 {
		t.Errorf("Run(version) = %d, want 0", code)
	}
	if got := stdout.String(); got != "dist "+version.Current+"\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	_, stderr := captureOutput(t)
	if code := Run([]string{"deploy"}); code != errors.ExitConfigError {
		t.Errorf("Run(deploy) = %d, want %d", code, errors.ExitConfigError)
	}
	if !strings.Contains(stderr.String(), `unknown command "deploy"`) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_NoProject(t *testing.T) {
	captureOutput(t)
	t.Chdir(t.TempDir())

	if code := Run([]string{"generate"}); code != errors.ExitEnvironmentError {
		t.Errorf("Run(generate) outside a project = %d, want %d", code, errors.ExitEnvironmentError)
	}
}

func TestGenerate_ThenCheck(t *testing.T) {
	stdout, _ := captureOutput(t)
	root := setupProject(t, testConfig)

	if code := Run([]string{"generate"}); code != 0 {
		t.Fatalf("generate = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "wrote .github/workflows/release.yml") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if _, err := os.Stat(workflowPath(root)); err != nil {
		t.Fatalf("workflow not written: %v", err)
	}

	if code := Run([]string{"generate", "--check"}); code != 0 {
		t.Errorf("generate --check after generate = %d, want 0", code)
	}
}

func TestGenerate_CheckDetectsEdit(t *testing.T) {
	_, stderr := captureOutput(t)
	root := setupProject(t, testConfig)

	if code := Run([]string{"generate"}); code != 0 {
		t.Fatalf("generate = %d", code)
	}
	f, err := os.OpenFile(workflowPath(root), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("# hand edit\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if code := Run([]string{"generate", "--check"}); code != errors.ExitDriftDetected {
		t.Errorf("generate --check after edit = %d, want %d", code, errors.ExitDriftDetected)
	}
	if !strings.Contains(stderr.String(), "out of date") || !strings.Contains(stderr.String(), "blake3") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestGenerate_CheckMissingFile(t *testing.T) {
	captureOutput(t)
	setupProject(t, testConfig)

	if code := Run([]string{"generate", "--check"}); code != errors.ExitDriftDetected {
		t.Errorf("generate --check without file = %d, want %d", code, errors.ExitDriftDetected)
	}
}

func TestGenerate_CheckAllowDirty(t *testing.T) {
	captureOutput(t)
	cfg := strings.Replace(testConfig, `"ci": ["github"],`, `"ci": ["github"], "allow_dirty": ["github"],`, 1)
	root := setupProject(t, cfg)

	if err := os.MkdirAll(filepath.Dir(workflowPath(root)), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(workflowPath(root), []byte("name: Custom\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if code := Run([]string{"generate", "--check"}); code != 0 {
		t.Errorf("generate --check with allow_dirty = %d, want 0", code)
	}
}

func TestGenerate_NoBackendsConfigured(t *testing.T) {
	_, stderr := captureOutput(t)
	root := setupProject(t, `{"project": {"name": "p"}}`)

	if code := Run([]string{"generate"}); code != 0 {
		t.Errorf("generate = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "no CI backends configured") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if _, err := os.Stat(workflowPath(root)); !os.IsNotExist(err) {
		t.Error("nothing should be written without a backend")
	}

	if code := Run([]string{"generate", "--ci", "github"}); code != 0 {
		t.Errorf("generate --ci github = %d, want 0", code)
	}
	if _, err := os.Stat(workflowPath(root)); err != nil {
		t.Errorf("--ci github should write the workflow: %v", err)
	}
}

func TestGenerate_InvalidFlags(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"generate", "--ci", "gitlab"}, `generate: unknown CI backend "gitlab"`},
		{[]string{"generate", "--bogus"}, "generate: unknown flag: --bogus"},
		{[]string{"generate", "extra"}, `generate: unexpected argument "extra"`},
	}
	for _, tt := range tests {
		_, stderr := captureOutput(t)
		if code := Run(tt.args); code != errors.ExitConfigError {
			t.Errorf("Run(%v) = %d, want %d", tt.args, code, errors.ExitConfigError)
		}
		if !strings.Contains(stderr.String(), tt.want) {
			t.Errorf("Run(%v) stderr = %q, want %q", tt.args, stderr.String(), tt.want)
		}
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	captureOutput(t)
	setupProject(t, `{"project": {"name": "p"}, "dist": {"pr_run_mode": "always"}}`)

	if code := Run([]string{"generate"}); code != errors.ExitConfigError {
		t.Errorf("generate with invalid config = %d, want %d", code, errors.ExitConfigError)
	}
}

func TestGenerate_FallbackWarningOnStderr(t *testing.T) {
	_, stderr := captureOutput(t)
	cfg := strings.Replace(testConfig, `"x86_64-unknown-linux-gnu",`, `"x86_64-unknown-linux-gnu", "wasm32-unknown-unknown",`, 1)
	setupProject(t, cfg)

	if code := Run([]string{"generate"}); code != 0 {
		t.Fatalf("generate = %d", code)
	}
	if !strings.Contains(stderr.String(), "wasm32-unknown-unknown") {
		t.Errorf("expected fallback warning, stderr = %q", stderr.String())
	}
}

func TestPlan_JSON(t *testing.T) {
	stdout, _ := captureOutput(t)
	setupProject(t, testConfig)

	if code := Run([]string{"plan", "--json", "--merge-tasks", "--tag", "v1.0.0"}); code != 0 {
		t.Fatalf("plan = %d", code)
	}

	var manifest struct {
		AnnouncementTag   string `json:"announcement_tag"`
		AnnouncementTitle string `json:"announcement_title"`
		Releases          []struct {
			AppName         string   `json:"app_name"`
			GlobalArtifacts []string `json:"global_artifacts"`
		} `json:"releases"`
		CI struct {
			GitHub struct {
				ArtifactsMatrix struct {
					Include []struct {
						Runner   string `json:"runner"`
						DistArgs string `json:"dist_args"`
					} `json:"include"`
				} `json:"artifacts_matrix"`
			} `json:"github"`
		} `json:"ci"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &manifest); err != nil {
		t.Fatalf("plan --json output is not JSON: %v\n%s", err, stdout.String())
	}

	if manifest.AnnouncementTag != "v1.0.0" || manifest.AnnouncementTitle != "v1.0.0" {
		t.Errorf("announcement = %q / %q", manifest.AnnouncementTag, manifest.AnnouncementTitle)
	}
	if len(manifest.Releases) != 1 || manifest.Releases[0].AppName != "axolotlsay" || len(manifest.Releases[0].GlobalArtifacts) != 2 {
		t.Errorf("releases = %+v", manifest.Releases)
	}
	include := manifest.CI.GitHub.ArtifactsMatrix.Include
	if len(include) != 3 {
		t.Fatalf("merged matrix has %d entries, want 3", len(include))
	}
	if include[0].Runner != "macos-11" || include[0].DistArgs != "--artifacts=local --target=aarch64-apple-darwin --target=x86_64-apple-darwin" {
		t.Errorf("first task = %+v", include[0])
	}
}

func TestPlan_JSONPrerelease(t *testing.T) {
	stdout, _ := captureOutput(t)
	setupProject(t, strings.Replace(testConfig, `"version": "1.0.0"`, `"version": "1.0.0-rc.1"`, 1))

	if code := Run([]string{"plan", "--json"}); code != 0 {
		t.Fatalf("plan = %d", code)
	}

	var manifest struct {
		AnnouncementTitle        string `json:"announcement_title"`
		AnnouncementIsPrerelease bool   `json:"announcement_is_prerelease"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &manifest); err != nil {
		t.Fatalf("plan --json output is not JSON: %v\n%s", err, stdout.String())
	}
	if !manifest.AnnouncementIsPrerelease {
		t.Error("announcement_is_prerelease = false for 1.0.0-rc.1")
	}
	if manifest.AnnouncementTitle != "axolotlsay 1.0.0-rc.1" {
		t.Errorf("announcement_title = %q", manifest.AnnouncementTitle)
	}
}

func TestPlan_Text(t *testing.T) {
	stdout, _ := captureOutput(t)
	setupProject(t, testConfig)

	if code := Run([]string{"plan", "--split-tasks"}); code != 0 {
		t.Fatalf("plan = %d", code)
	}
	text := stdout.String()
	for _, want := range []string{
		"=== Releases ===",
		"axolotlsay 1.0.0",
		"axolotlsay-installer.sh",
		"=== Build Tasks ===",
		"windows-2019",
		"windows",
		"--artifacts=global",
		"=== Workflow Jobs ===",
		"build-global-artifacts",
		"5 build job(s), split tasks",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("plan output missing %q:\n%s", want, text)
		}
	}
}

func TestPlan_ConflictingFlags(t *testing.T) {
	_, stderr := captureOutput(t)
	if code := Run([]string{"plan", "--merge-tasks", "--split-tasks"}); code != errors.ExitConfigError {
		t.Errorf("plan with both task flags = %d, want %d", code, errors.ExitConfigError)
	}
	if !strings.Contains(stderr.String(), "mutually exclusive") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestCmdConfig(t *testing.T) {
	captureOutput(t)
	if code := cmdConfig(nil); code != errors.ExitConfigError {
		t.Errorf("cmdConfig() = %d, want %d", code, errors.ExitConfigError)
	}
	if code := cmdConfig([]string{"fix"}); code != errors.ExitConfigError {
		t.Errorf("cmdConfig(fix) = %d, want %d", code, errors.ExitConfigError)
	}
}

func TestCmdConfigValidate(t *testing.T) {
	stdout, _ := captureOutput(t)
	setupProject(t, testConfig)

	if code := Run([]string{"config", "validate"}); code != 0 {
		t.Fatalf("config validate = %d", code)
	}
	if !strings.Contains(stdout.String(), "Configuration is valid.") || !strings.Contains(stdout.String(), "Targets: 4") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestCmdConfigValidate_Invalid(t *testing.T) {
	captureOutput(t)
	setupProject(t, `{"project": {"name": "Bad Name"}}`)

	if code := Run([]string{"config", "validate"}); code != errors.ExitConfigError {
		t.Errorf("config validate = %d, want %d", code, errors.ExitConfigError)
	}
}

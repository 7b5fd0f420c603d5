package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary compiles the CLI into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "dist")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build main package: %v\n%s", err, out)
	}
	return bin
}

func TestMain_HelpAndVersion(t *testing.T) {
	t.Parallel()
	bin := buildBinary(t)

	out, err := exec.Command(bin, "--help").CombinedOutput()
	if err != nil {
		t.Fatalf("--help failed: %v\noutput: %s", err, out)
	}
	if !strings.Contains(string(out), "generate") {
		t.Errorf("--help output missing commands:\n%s", out)
	}

	out, err = exec.Command(bin, "--version").CombinedOutput()
	if err != nil {
		t.Fatalf("--version failed: %v\noutput: %s", err, out)
	}
	if !strings.HasPrefix(string(out), "dist ") {
		t.Errorf("--version output = %q", out)
	}
}

func TestMain_GenerateCheckExitCodes(t *testing.T) {
	t.Parallel()
	bin := buildBinary(t)

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".dist"), 0755); err != nil {
		t.Fatal(err)
	}
	config := `{"project": {"name": "demo"}, "dist": {"ci": ["github"]},
		"releases": [{"name": "demo", "version": "0.1.0", "targets": ["x86_64-unknown-linux-gnu"], "installers": ["shell"]}]}`
	if err := os.WriteFile(filepath.Join(root, ".dist", "config.json"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) int {
		cmd := exec.Command(bin, args...)
		cmd.Dir = root
		err := cmd.Run()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return 0
	}

	if code := run("generate", "--check"); code != 4 {
		t.Errorf("check before generate = %d, want 4", code)
	}
	if code := run("generate"); code != 0 {
		t.Fatalf("generate = %d, want 0", code)
	}
	if code := run("generate", "--check"); code != 0 {
		t.Errorf("check after generate = %d, want 0", code)
	}
}

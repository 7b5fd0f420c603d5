package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestSchemaValidConfig(t *testing.T) {
	for _, name := range []string{"minimal.json", "full.json"} {
		t.Run(name, func(t *testing.T) {
			if err := ValidateConfig(readFixture(t, name)); err != nil {
				t.Errorf("expected valid config, got error: %v", err)
			}
		})
	}
}

func TestSchemaValidConfigSemanticErrors(t *testing.T) {
	// Structurally valid; the semantic problems are caught by config.Validate.
	if err := ValidateConfig(readFixture(t, "semantic-only.json")); err != nil {
		t.Errorf("expected schema-valid config, got error: %v", err)
	}
}

func TestSchemaInvalidConfigs(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"not an object", `"string"`},
		{"missing name", `{"project": {}}`},
		{"malformed JSON", `{"project": `},
		{"wrong flag type", `{"project": {"name": "p"}, "dist": {"fail_fast": "true"}}`},
		{"unknown ci", `{"project": {"name": "p"}, "dist": {"ci": ["gitlab"]}}`},
		{"unknown pr_run_mode", `{"project": {"name": "p"}, "dist": {"pr_run_mode": "never"}}`},
		{"release without version", `{"project": {"name": "p"}, "releases": [{"name": "a"}]}`},
		{"unknown installer", `{"project": {"name": "p"}, "releases": [{"name": "a", "version": "1.0.0", "installers": ["msi"]}]}`},
		{"targets not array", `{"project": {"name": "p"}, "releases": [{"name": "a", "version": "1.0.0", "targets": "x86_64-apple-darwin"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateConfig([]byte(tt.data)); err == nil {
				t.Errorf("expected validation error, got nil")
			}
		})
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	err := ValidateConfig([]byte(`{"project": {"name": "p"}, "dist": {"merge_tasks": 1}}`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.HasPrefix(err.Error(), "config validation failed") {
		t.Errorf("error = %v", err)
	}
}

// Package templates renders the embedded templates used for generated files.
//
// Templates use "[[" and "]]" as action delimiters so that GitHub Actions
// expressions such as "${{ github.ref_name }}" pass through untouched.
package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	embedded "github.com/AndreyAkinshin/dist/templates"
)

const templateExt = ".tmpl"

// Engine renders named templates from a file system. A template's name is
// its path without the ".tmpl" suffix, e.g. "ci/github_ci.yml".
type Engine struct {
	fsys fs.FS

	once  sync.Once
	root  *template.Template
	parse error
}

// New returns an engine over the templates embedded in the binary.
func New() *Engine {
	return NewFromFS(embedded.FS)
}

// NewFromFS returns an engine over the templates in fsys.
func NewFromFS(fsys fs.FS) *Engine {
	return &Engine{fsys: fsys}
}

// Render executes the template called name with data and returns the
// cleaned output: trailing whitespace is removed from every line and the
// text ends with exactly one newline.
func (e *Engine) Render(name string, data any) (string, error) {
	if err := e.load(); err != nil {
		return "", err
	}

	tmpl := e.root.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return clean(buf.String()), nil
}

// Names returns the names of all loaded templates, sorted.
func (e *Engine) Names() ([]string, error) {
	if err := e.load(); err != nil {
		return nil, err
	}
	var names []string
	for _, t := range e.root.Templates() {
		if t.Name() != "" {
			names = append(names, t.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func (e *Engine) load() error {
	e.once.Do(func() {
		root := template.New("").Delims("[[", "]]").Funcs(funcs())
		e.parse = fs.WalkDir(e.fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, templateExt) {
				return nil
			}
			data, err := fs.ReadFile(e.fsys, path)
			if err != nil {
				return fmt.Errorf("read template %s: %w", path, err)
			}
			name := strings.TrimSuffix(path, templateExt)
			if _, err := root.New(name).Parse(string(data)); err != nil {
				return fmt.Errorf("parse template %s: %w", path, err)
			}
			return nil
		})
		e.root = root
	})
	return e.parse
}

func funcs() template.FuncMap {
	title := cases.Title(language.English)
	return template.FuncMap{
		"toJSON":     toJSON,
		"toYAML":     toYAML,
		"title":      title.String,
		"join":       strings.Join,
		"indent":     indent,
		"trimPrefix": func(prefix, s string) string { return strings.TrimPrefix(s, prefix) },
	}
}

// toJSON encodes v as compact JSON without HTML escaping.
func toJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// toYAML encodes v as block YAML without the trailing newline.
func toYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func clean(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

package ci

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/AndreyAkinshin/dist/internal/asset"
	"github.com/AndreyAkinshin/dist/internal/errors"
	"github.com/AndreyAkinshin/dist/internal/jobgraph"
	"github.com/AndreyAkinshin/dist/internal/logging"
)

const (
	githubCIDir      = ".github/workflows"
	githubCIFile     = "release.yml"
	githubCITemplate = "ci/github_ci.yml"
)

// Renderer renders a named template with data.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// FileStore reads and writes text files. ReadText must return an error
// matching fs.ErrNotExist for a missing file; WriteText creates parent
// directories.
type FileStore interface {
	ReadText(path string) (string, error)
	WriteText(path, content string) error
}

// Generator renders the GitHub release workflow and keeps it in sync
// with the file on disk.
type Generator struct {
	info      *Info
	workspace string
	renderer  Renderer
	store     FileStore
	logger    *slog.Logger
}

// NewGenerator returns a generator for the workflow of the workspace rooted
// at workspaceDir. A nil logger discards records.
func NewGenerator(info *Info, workspaceDir string, renderer Renderer, store FileStore, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{
		info:      info,
		workspace: workspaceDir,
		renderer:  renderer,
		store:     store,
		logger:    logger.With("ci", "github"),
	}
}

// Path returns the location of the generated workflow.
func (g *Generator) Path() string {
	return filepath.Join(g.workspace, githubCIDir, githubCIFile)
}

// Generate renders the workflow.
func (g *Generator) Generate() (string, error) {
	if err := jobgraph.Validate(g.info.Jobs()); err != nil {
		return "", errors.Wrap(err, "invalid github workflow jobs")
	}
	text, err := g.renderer.Render(githubCITemplate, g.info)
	if err != nil {
		return "", errors.Wrap(err, "failed to render github workflow")
	}
	return text, nil
}

// Write renders the workflow and writes it to Path, replacing any
// existing file. It returns the text that was written.
func (g *Generator) Write() (string, error) {
	text, err := g.Generate()
	if err != nil {
		return "", err
	}
	path := g.Path()
	if err := g.store.WriteText(path, text); err != nil {
		return "", &errors.DistError{
			Kind:    errors.KindRuntime,
			Message: "failed to write github workflow",
			Path:    path,
			Cause:   err,
		}
	}
	g.logger.Debug("wrote workflow", "path", path, "blake3", asset.ShortDigest(text))
	return text, nil
}

// Check compares the rendered workflow with the file at Path. A missing
// file compares as empty. When they differ it returns a drift error unless
// the workflow may be edited by hand.
func (g *Generator) Check() error {
	expected, err := g.Generate()
	if err != nil {
		return err
	}

	path := g.Path()
	actual, err := g.store.ReadText(path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return &errors.DistError{
				Kind:    errors.KindRuntime,
				Message: "failed to read github workflow",
				Path:    path,
				Cause:   err,
			}
		}
		actual = ""
	}

	if actual == expected {
		g.logger.Debug("workflow is up to date", "path", path)
		return nil
	}
	if g.info.AllowDirty {
		g.logger.Debug("workflow differs but allow_dirty is set", "path", path)
		return nil
	}

	drift := errors.CheckFileMismatch(path)
	drift.Detail = "expected blake3 " + asset.ShortDigest(expected) + ", found " + asset.ShortDigest(actual)
	return drift
}

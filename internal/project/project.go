package project

import (
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/AndreyAkinshin/dist/internal/config"
	"github.com/AndreyAkinshin/dist/internal/dist"
	"github.com/AndreyAkinshin/dist/internal/errors"
	"github.com/AndreyAkinshin/dist/internal/version"
)

// Project represents a loaded dist project.
type Project struct {
	Root     string
	Config   *config.Config
	Warnings []string
}

// LoadProject finds and loads a project from the current directory.
func LoadProject() (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// LoadProjectFrom loads a project from a specified root directory.
func LoadProjectFrom(root string) (*Project, error) {
	configPath := filepath.Join(root, ConfigDirName, ConfigFileName)

	cfg, warnings, err := config.LoadAndValidate(configPath)
	if err != nil {
		kind := errors.KindConfig
		var ve *config.ValidationError
		if stderrors.As(err, &ve) {
			kind = errors.KindValidation
		}
		return nil, &errors.DistError{
			Kind:    kind,
			Message: fmt.Sprintf("failed to load configuration: %v", err),
			Path:    configPath,
			Cause:   err,
		}
	}

	if w := version.MismatchWarning(pinnedVersion(cfg)); w != "" {
		warnings = append(warnings, w)
	}

	return &Project{
		Root:     root,
		Config:   cfg,
		Warnings: warnings,
	}, nil
}

func pinnedVersion(cfg *config.Config) string {
	if cfg.Dist == nil {
		return ""
	}
	return cfg.Dist.Version
}

// ConfigPath returns the full path to the project configuration file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, ConfigDirName, ConfigFileName)
}

// Graph returns the release graph of the project.
func (p *Project) Graph() *dist.Graph {
	return dist.FromConfig(p.Root, p.Config)
}

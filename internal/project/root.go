// Package project provides project discovery and loading functionality.
package project

import (
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/dist/internal/errors"
)

// ConfigDirName is the name of the dist configuration directory.
const ConfigDirName = ".dist"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.json"

// ErrNoProjectRoot is returned when .dist/config.json is not found.
var ErrNoProjectRoot = errors.Environment(".dist/config.json not found: not a dist project (or any parent up to the root)")

// FindRoot walks up from the current working directory until it finds .dist/config.json.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds .dist/config.json.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ConfigDirName, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}

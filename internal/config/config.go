package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file looked up in the working directory.
const FileName = ".ptcommit.yaml"

// File represents .ptcommit.yaml.
type File struct {
	Version      int    `yaml:"version"`
	PtRootPath   string `yaml:"pt_root_path,omitempty"`
	PiPtRootPath string `yaml:"pi_pt_root_path,omitempty"`
	Backend      string `yaml:"backend,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// Backend names a repository access implementation.
type Backend string

const (
	BackendGoGit Backend = "go-git"
	BackendGit   Backend = "git"
)

// ParseBackend parses a backend name, defaulting to go-git.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendGoGit, "":
		return BackendGoGit, nil
	case BackendGit:
		return BackendGit, nil
	default:
		return "", fmt.Errorf("unknown backend: %q (must be go-git or git)", s)
	}
}

// Load reads and validates a config file. Relative root paths are resolved
// against the directory containing the file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	cf.PtRootPath = resolve(base, cf.PtRootPath)
	cf.PiPtRootPath = resolve(base, cf.PiPtRootPath)
	return cf, nil
}

// LoadOptional loads path if it exists and returns nil, nil otherwise.
func LoadOptional(path string) (*File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Load(path)
}

// Parse parses and validates config content.
func Parse(data []byte) (*File, error) {
	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := Validate(&cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Validate checks the config for errors.
func Validate(cf *File) error {
	if cf.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", cf.Version)
	}
	if _, err := ParseBackend(cf.Backend); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cf.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cf.LogLevel); err != nil {
			return fmt.Errorf("config: log_level: %w", err)
		}
	}
	return nil
}

// Save validates and writes a config file.
func Save(path string, cf *File) error {
	if err := Validate(cf); err != nil {
		return err
	}
	data, err := yaml.Marshal(cf)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // config file needs to be readable
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

package spec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Project file names searched by LoadProject, in order of preference.
const (
	YAMLFile = "city.yaml"
	TOMLFile = "city.toml"
)

// Load reads a project from a YAML or TOML file, chosen by extension.
// Fields missing from the file keep their Default values.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	p := &Project{SpecVersion: CurrentVersion, City: Default()}
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		if err := toml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing spec TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parsing spec YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported spec file extension %q", ext)
	}

	return p, nil
}

// LoadProject loads a project from a project directory.
// It looks for city.yaml, then city.toml, in the given directory.
func LoadProject(projectDir string) (*Project, error) {
	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(projectDir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("checking spec file: %w", err)
		}
		return Load(path)
	}
	return nil, fmt.Errorf("no %s or %s in %s: %w", YAMLFile, TOMLFile, projectDir, os.ErrNotExist)
}

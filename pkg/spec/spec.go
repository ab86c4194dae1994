package spec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ProjectFiles are the file names LoadProject looks for, in order.
var ProjectFiles = []string{"wren.yaml", "wren.yml", "wren.toml", "wren.json"}

// Load reads a panel spec from a YAML, TOML or JSON file, chosen by extension.
func Load(path string) (*PanelSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	var spec PanelSpec
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parsing spec YAML: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parsing spec TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parsing spec JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported spec format %q", ext)
	}

	return &spec, nil
}

// FindProject returns the spec file inside projectDir. If projectDir is
// itself a file it is returned unchanged. A leading ~ is expanded to the
// user's home directory.
func FindProject(projectDir string) (string, error) {
	projectDir, err := homedir.Expand(projectDir)
	if err != nil {
		return "", fmt.Errorf("expanding project path: %w", err)
	}
	info, err := os.Stat(projectDir)
	if err != nil {
		return "", fmt.Errorf("opening project: %w", err)
	}
	if !info.IsDir() {
		return projectDir, nil
	}
	for _, name := range ProjectFiles {
		p := filepath.Join(projectDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", p, err)
		}
	}
	return "", fmt.Errorf("no %s in %s: %w", strings.Join(ProjectFiles, ", "), projectDir, fs.ErrNotExist)
}

// LoadProject loads a panel spec from a project directory or spec file.
func LoadProject(projectDir string) (*PanelSpec, error) {
	specPath, err := FindProject(projectDir)
	if err != nil {
		return nil, err
	}
	return Load(specPath)
}

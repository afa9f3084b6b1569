package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings are optional project-level defaults read from .sweep.yaml at
// the project root. Every field yields to the corresponding CLI flag or
// environment variable.
type Settings struct {
	// Feature is the default configuration namespace.
	Feature string `yaml:"feature"`

	// ConfigTool overrides the config-store executable name or path.
	ConfigTool string `yaml:"config_tool"`

	// CommitPrefix overrides the auto-commit message prefix.
	CommitPrefix string `yaml:"commit_prefix"`
}

// LoadSettings reads the settings file at root. A missing file is not an
// error and yields zero-valued settings; a malformed file is an error.
func LoadSettings(root string) (Settings, error) {
	var s Settings

	path := filepath.Join(root, SettingsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

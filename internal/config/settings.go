package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/clic/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPrompt is shown by the shell when settings.yaml does not override it.
const DefaultPrompt = "> "

// Settings are user preferences read from settings.yaml in the config directory.
// The program never writes this file.
type Settings struct {
	// Prompt printed before each shell line.
	Prompt string `yaml:"prompt"`
	// Precision is the number of decimals for results; negative means shortest exact form.
	Precision int `yaml:"precision"`
	// LogLevel enables diagnostics on stderr (debug, info, warn, error). Empty disables them.
	LogLevel string `yaml:"log_level"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Prompt:    DefaultPrompt,
		Precision: -1,
	}
}

// LoadSettings reads settings.yaml from dir.
// A missing file yields the defaults; a malformed one returns the defaults and an error.
func LoadSettings(dir string) (Settings, error) {
	settings := DefaultSettings()

	path := filepath.Join(dir, domain.SettingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read %s: %w", domain.SettingsFile, err)
	}

	// Decode on top of the defaults so omitted keys keep their default value.
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse %s: %w", domain.SettingsFile, err)
	}

	if settings.Prompt == "" {
		settings.Prompt = DefaultPrompt
	}

	return settings, nil
}

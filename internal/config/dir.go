package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/clic/pkg/domain"
)

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "CLIC_CONFIG_DIR"

// Dir resolves the per-user configuration directory.
// Precedence: explicit flag value, CLIC_CONFIG_DIR, then the OS config dir
// (e.g. ~/.config/clic on Linux, ~/Library/Application Support/clic on macOS,
// %AppData%\clic on Windows).
func Dir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, domain.AppName), nil
}

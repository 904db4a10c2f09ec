package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFile(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettings_Partial(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "precision: 3\n")

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, settings.Precision)
	assert.Equal(t, DefaultPrompt, settings.Prompt)
	assert.Empty(t, settings.LogLevel)
}

func TestLoadSettings_Full(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "prompt: \"clic> \"\nprecision: 2\nlog_level: debug\n")

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, Settings{Prompt: "clic> ", Precision: 2, LogLevel: "debug"}, settings)
}

func TestLoadSettings_EmptyPromptFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "prompt: \"\"\n")

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt, settings.Prompt)
}

func TestLoadSettings_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "precision: [not, a, number\n")

	settings, err := LoadSettings(dir)
	assert.Error(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestDir_Precedence(t *testing.T) {
	t.Setenv(EnvConfigDir, "/from/env")

	dir, err := Dir("/from/flag")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", dir)

	dir, err = Dir("")
	require.NoError(t, err)
	assert.Equal(t, "/from/env", dir)
}

func TestDir_UserConfigDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	base, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir on this platform: %v", err)
	}

	dir, err := Dir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "clic"), dir)
}

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(content), 0o644))
}

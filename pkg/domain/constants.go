package domain

// Record keys used with ports.ConfigStore.
// Each key maps to "<key>.json" in the configuration directory.
const (
	// RecordConstants holds the user-defined constants ({"variables": {...}}).
	RecordConstants = "context"

	// RecordColors holds the color profile ({"primary": ..., "secondary": ..., "failure": ...}).
	RecordColors = "colors"
)

// HistoryFile is the name of the shell history file inside the configuration directory.
const HistoryFile = "history.txt"

// SettingsFile is the name of the optional, user-edited settings file.
const SettingsFile = "settings.yaml"

// AppName names the per-user configuration directory.
const AppName = "clic"

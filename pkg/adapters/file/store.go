package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/clic/pkg/domain"
)

// Store implements ports.ConfigStore using the local filesystem.
// Each record is stored as "<key>.json" inside BasePath.
type Store struct {
	BasePath string
}

// New creates a new Store rooted at basePath.
func New(basePath string) *Store {
	return &Store{BasePath: basePath}
}

// EnsureDir creates the configuration directory (and parents) if it does not exist.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// Path returns the absolute location of a file inside the configuration directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.BasePath, name)
}

// Save persists value as JSON atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := s.EnsureDir(); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	destPath := s.Path(key + ".json")

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+key+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename fails on Windows when the destination exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing %s for overwrite: %w", key, err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", destPath, err)
	}

	return nil
}

// Load decodes the JSON record stored under key into out.
func (s *Store) Load(ctx context.Context, key string, out any) error {
	if err := validateKey(key); err != nil {
		return err
	}

	data, err := os.ReadFile(s.Path(key + ".json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrRecordNotFound
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return nil
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("record key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("record key %q must be a plain file name", key)
	}
	return nil
}

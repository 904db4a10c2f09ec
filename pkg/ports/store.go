package ports

import (
	"context"
)

// ConfigStore defines the interface for persisting named configuration records.
// A record is any JSON-serializable value addressed by a logical key.
type ConfigStore interface {
	// Save persists value under key, replacing any previous record.
	Save(ctx context.Context, key string, value any) error

	// Load decodes the record stored under key into out.
	// Returns domain.ErrRecordNotFound if the record does not exist.
	Load(ctx context.Context, key string, out any) error
}

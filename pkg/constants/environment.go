package constants

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/aretw0/clic/internal/logging"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
)

// record is the persisted shape of the environment: {"variables": {...}}.
type record struct {
	Variables map[string]float64 `json:"variables"`
}

// Environment is the set of user-defined constants available to expressions.
// Every mutation is persisted synchronously through the ConfigStore.
type Environment struct {
	store     ports.ConfigStore
	logger    *slog.Logger
	variables map[string]float64
}

// Option configures the Environment.
type Option func(*Environment)

// WithLogger configures a logger for load and persist events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Environment) {
		e.logger = logger
	}
}

// Build loads the persisted constants from store.
// A missing or malformed record yields an empty environment; Build never fails.
func Build(ctx context.Context, store ports.ConfigStore, opts ...Option) *Environment {
	e := &Environment{
		store:     store,
		logger:    logging.NewNop(),
		variables: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(e)
	}

	var rec record
	err := store.Load(ctx, domain.RecordConstants, &rec)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		e.logger.Debug("No persisted constants, starting empty")
	case err != nil:
		e.logger.Warn("Failed to load constants, starting empty", "err", err)
	default:
		for name, value := range rec.Variables {
			e.variables[name] = value
		}
		e.logger.Debug("Constants loaded", "count", len(e.variables))
	}

	return e
}

// Set binds name to value and persists the full mapping.
// If persisting fails the previous binding is restored and the error returned.
func (e *Environment) Set(ctx context.Context, name string, value float64) error {
	if name == "" {
		return fmt.Errorf("constant name cannot be empty")
	}
	// JSON has no representation for NaN or infinities.
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidValue, value)
	}

	previous, existed := e.variables[name]
	e.variables[name] = value

	if err := e.store.Save(ctx, domain.RecordConstants, record{Variables: e.variables}); err != nil {
		if existed {
			e.variables[name] = previous
		} else {
			delete(e.variables, name)
		}
		return fmt.Errorf("failed to persist constants: %w", err)
	}

	e.logger.Debug("Constant set", "name", name, "value", value)
	return nil
}

// Get returns the value bound to name.
func (e *Environment) Get(name string) (float64, bool) {
	v, ok := e.variables[name]
	return v, ok
}

// Constants returns a copy of the current mapping.
func (e *Environment) Constants() map[string]float64 {
	return maps.Clone(e.variables)
}

// Names returns the constant names in lexical order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.variables))
}

// Bindings exposes the constants in the shape the evaluator resolves identifiers from.
func (e *Environment) Bindings() map[string]any {
	bindings := make(map[string]any, len(e.variables))
	for name, value := range e.variables {
		bindings[name] = value
	}
	return bindings
}

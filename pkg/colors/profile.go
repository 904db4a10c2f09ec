package colors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/clic/internal/logging"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/ports"
	"github.com/mitchellh/mapstructure"
	"github.com/muesli/termenv"
)

// Slot names.
const (
	Primary   = "primary"
	Secondary = "secondary"
	Failure   = "failure"
)

// Slots lists the recognized slot names.
var Slots = []string{Primary, Secondary, Failure}

// Defaults applied when nothing (or nothing valid) is persisted.
const (
	DefaultPrimary   = "cyan"
	DefaultSecondary = "yellow"
	DefaultFailure   = "red"
)

// fallback is used when a slot holds an identifier the renderer cannot resolve.
const fallback = "7"

// named maps color names to ANSI indexes. Lookup is case-insensitive and
// treats "_" and "-" like spaces, so "bright_blue" and "Bright Blue" both work.
var named = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"purple":         "5",
	"cyan":           "6",
	"white":          "7",
	"bright black":   "8",
	"bright red":     "9",
	"bright green":   "10",
	"bright yellow":  "11",
	"bright blue":    "12",
	"bright magenta": "13",
	"bright purple":  "13",
	"bright cyan":    "14",
	"bright white":   "15",
}

type record struct {
	Primary   string `json:"primary" mapstructure:"primary"`
	Secondary string `json:"secondary" mapstructure:"secondary"`
	Failure   string `json:"failure" mapstructure:"failure"`
}

func defaults() record {
	return record{
		Primary:   DefaultPrimary,
		Secondary: DefaultSecondary,
		Failure:   DefaultFailure,
	}
}

// Profile holds the three output color slots.
type Profile struct {
	store  ports.ConfigStore
	logger *slog.Logger
	output *termenv.Output
	slots  record
}

// Option configures the Profile.
type Option func(*Profile)

// WithLogger configures a logger for load and persist events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Profile) {
		p.logger = logger
	}
}

// WithOutput renders for the given termenv output instead of stdout.
// Tests use it to pin a color profile.
func WithOutput(o *termenv.Output) Option {
	return func(p *Profile) {
		p.output = o
	}
}

// WithWriter renders for w, detecting its color support.
func WithWriter(w io.Writer) Option {
	return func(p *Profile) {
		p.output = termenv.NewOutput(w)
	}
}

// Build loads the persisted color profile from store.
// Unknown keys, wrong types or unreadable files yield the defaults.
func Build(ctx context.Context, store ports.ConfigStore, opts ...Option) *Profile {
	p := &Profile{
		store:  store,
		logger: logging.NewNop(),
		slots:  defaults(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.output == nil {
		p.output = termenv.NewOutput(os.Stdout)
	}

	var raw map[string]any
	err := store.Load(ctx, domain.RecordColors, &raw)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		p.logger.Debug("No persisted colors, using defaults")
		return p
	case err != nil:
		p.logger.Warn("Failed to load colors, using defaults", "err", err)
		return p
	}

	slots, err := decode(raw)
	if err != nil {
		p.logger.Warn("Invalid colors record, using defaults", "err", err)
		return p
	}
	p.slots = slots
	return p
}

// decode applies raw on top of the defaults, rejecting unknown keys and non-string values.
func decode(raw map[string]any) (record, error) {
	out := defaults()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &out,
	})
	if err != nil {
		return record{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return record{}, err
	}
	return out, nil
}

// Set assigns value to slot and persists the profile.
// An unknown slot returns domain.ErrInvalidSlot without touching the store.
func (p *Profile) Set(ctx context.Context, slot, value string) error {
	target := p.slot(slot)
	if target == nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSlot, slot)
	}

	previous := *target
	*target = value

	if err := p.store.Save(ctx, domain.RecordColors, p.slots); err != nil {
		*target = previous
		return fmt.Errorf("failed to persist colors: %w", err)
	}

	p.logger.Debug("Color set", "slot", slot, "value", value)
	return nil
}

// Get returns the color identifier stored in slot.
func (p *Profile) Get(slot string) (string, bool) {
	target := p.slot(slot)
	if target == nil {
		return "", false
	}
	return *target, true
}

// Render decorates text with the color of slot.
// Unknown slots and unresolvable colors render white.
func (p *Profile) Render(slot, text string) string {
	id := fallback
	if target := p.slot(slot); target != nil {
		id = *target
	}
	return p.output.String(text).Foreground(p.resolve(id)).String()
}

// Primary renders text in the primary color.
func (p *Profile) Primary(text string) string {
	return p.Render(Primary, text)
}

// Secondary renders text in the secondary color.
func (p *Profile) Secondary(text string) string {
	return p.Render(Secondary, text)
}

// Failure renders text in the failure color.
func (p *Profile) Failure(text string) string {
	return p.Render(Failure, text)
}

func (p *Profile) slot(name string) *string {
	switch name {
	case Primary:
		return &p.slots.Primary
	case Secondary:
		return &p.slots.Secondary
	case Failure:
		return &p.slots.Failure
	default:
		return nil
	}
}

// resolve turns a name, an ANSI index or a "#rrggbb" value into a termenv color.
func (p *Profile) resolve(id string) termenv.Color {
	key := strings.ToLower(strings.TrimSpace(id))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	if idx, ok := named[key]; ok {
		key = idx
	}
	if c := p.output.Color(key); c != nil {
		return c
	}
	return p.output.Color(fallback)
}

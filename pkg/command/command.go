package command

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aretw0/clic/pkg/domain"
)

// Reserved command names. Matching is exact and case-sensitive.
const (
	NameHelp   = "help"
	NameSet    = "set"
	NameConsts = "consts"
	NameColor  = "color"
)

// Usage lines reported when a command is missing arguments.
const (
	UsageSet   = "set <name> <value>"
	UsageColor = "color <primary/secondary/failure> <color>"
)

// Names lists every reserved command name.
var Names = []string{NameHelp, NameSet, NameConsts, NameColor}

// Command is a parsed request. The set of implementations is closed:
// Help, SetConstant, ListConstants, SetColor and Expression.
type Command interface {
	command()
}

// Help prints usage. Topic is accepted but does not change the output.
type Help struct {
	Topic string
}

// SetConstant binds Name to Value in the constant environment.
type SetConstant struct {
	Name  string
	Value float64
}

// ListConstants prints the user-defined constants.
type ListConstants struct{}

// SetColor assigns Value to the color Slot.
type SetColor struct {
	Slot  string
	Value string
}

// Expression is evaluated as math.
type Expression struct {
	Text string
}

func (Help) command()          {}
func (SetConstant) command()   {}
func (ListConstants) command() {}
func (SetColor) command()      {}
func (Expression) command()    {}

// UsageError reports a command invoked with too few arguments.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "Usage: " + e.Usage
}

// Is lets errors.Is(err, domain.ErrUsage) match.
func (e *UsageError) Is(target error) bool {
	return target == domain.ErrUsage
}

// IsReserved reports whether name is one of the reserved command names.
func IsReserved(name string) bool {
	switch name {
	case NameHelp, NameSet, NameConsts, NameColor:
		return true
	}
	return false
}

// Parse turns a token list into a Command.
// The first token selects a reserved command; any other first token is taken
// as the complete expression text. Extra arguments are ignored.
func Parse(tokens []string) (Command, error) {
	if len(tokens) == 0 {
		return nil, domain.ErrEmptyInput
	}

	args := tokens[1:]
	switch tokens[0] {
	case NameHelp:
		var topic string
		if len(args) > 0 {
			topic = args[0]
		}
		return Help{Topic: topic}, nil

	case NameSet:
		if len(args) < 2 {
			return nil, &UsageError{Usage: UsageSet}
		}
		value, err := ParseValue(args[1])
		if err != nil {
			return nil, err
		}
		return SetConstant{Name: args[0], Value: value}, nil

	case NameConsts:
		return ListConstants{}, nil

	case NameColor:
		if len(args) < 2 {
			return nil, &UsageError{Usage: UsageColor}
		}
		return SetColor{Slot: args[0], Value: args[1]}, nil

	default:
		return Expression{Text: tokens[0]}, nil
	}
}

// ParseValue parses a constant value as a finite 64-bit float.
func ParseValue(s string) (float64, error) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidValue, s)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", domain.ErrInvalidValue, s)
	}
	return value, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/clic/internal/logging"
	"github.com/aretw0/clic/pkg/colors"
	"github.com/aretw0/clic/pkg/command"
	"github.com/aretw0/clic/pkg/constants"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/aretw0/clic/pkg/eval"
)

// Dispatcher routes parsed commands to the constant environment, the color
// profile or the evaluator, and prints the outcome.
// User errors are reported on the output and never returned.
type Dispatcher struct {
	constants *constants.Environment
	colors    *colors.Profile
	evaluate  eval.Evaluator
	out       io.Writer
	logger    *slog.Logger
	precision int
}

// DispatcherOption configures the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithOutput redirects everything the dispatcher prints.
func WithOutput(w io.Writer) DispatcherOption {
	return func(d *Dispatcher) {
		d.out = w
	}
}

// WithEvaluator replaces the expression evaluator.
func WithEvaluator(fn eval.Evaluator) DispatcherOption {
	return func(d *Dispatcher) {
		d.evaluate = fn
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithPrecision sets the number of decimals printed for results (negative: shortest form).
func WithPrecision(precision int) DispatcherOption {
	return func(d *Dispatcher) {
		d.precision = precision
	}
}

// NewDispatcher creates a dispatcher over the given state.
func NewDispatcher(env *constants.Environment, profile *colors.Profile, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		constants: env,
		colors:    profile,
		evaluate:  eval.Default,
		out:       os.Stdout,
		logger:    logging.NewNop(),
		precision: -1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch parses tokens and executes the resulting command.
func (d *Dispatcher) Dispatch(ctx context.Context, tokens []string) {
	cmd, err := command.Parse(tokens)
	if err != nil {
		d.reportParseError(err)
		return
	}
	d.Execute(ctx, cmd)
}

// Execute runs a parsed command.
func (d *Dispatcher) Execute(ctx context.Context, cmd command.Command) {
	switch c := cmd.(type) {
	case command.Help:
		d.printHelp(c.Topic)
	case command.SetConstant:
		d.setConstant(ctx, c)
	case command.ListConstants:
		d.printConstants()
	case command.SetColor:
		d.setColor(ctx, c)
	case command.Expression:
		d.evaluateExpression(c.Text)
	default:
		panic(fmt.Sprintf("cli: unhandled command %T", cmd))
	}
}

func (d *Dispatcher) reportParseError(err error) {
	var usage *command.UsageError
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return
	case errors.As(err, &usage):
		d.fail(usage.Error())
	case errors.Is(err, domain.ErrInvalidValue):
		d.logger.Debug("Rejected constant value", "err", err)
		d.fail("Error: Invalid constant value")
	default:
		d.fail("Error: " + err.Error())
	}
}

// printHelp ignores topic: there is a single help page.
func (d *Dispatcher) printHelp(topic string) {
	if topic != "" {
		d.logger.Debug("Help topic ignored", "topic", topic)
	}

	c := d.colors
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", c.Primary("Clic - A simple CLI calculator"))

	fmt.Fprintf(&b, "%s\n", c.Secondary("Basic usage"))
	b.WriteString("    clic - enter shell mode\n")
	b.WriteString("    clic \"sqrt(3)\" - evaluate a math expression\n")
	b.WriteString("    clic help [topic] - view help\n\n")

	fmt.Fprintf(&b, "%s\n", c.Secondary("Constants"))
	b.WriteString("    clic set <name> <value> - create a custom constant\n")
	b.WriteString("    clic consts - view custom constants\n\n")

	fmt.Fprintf(&b, "%s\n", c.Secondary("Colors"))
	b.WriteString("    clic color <primary/secondary/failure> <color> - set a color\n")
	fmt.Fprintf(&b, "    ~ Colors are names (%s), \"bright <name>\", an ANSI index (0-255) or #rrggbb\n\n",
		strings.Join([]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}, ", "))

	fmt.Fprintf(&b, "%s\n", c.Secondary("Built-ins"))
	fmt.Fprintf(&b, "    %s\n", strings.Join(eval.Names(), ", "))
	b.WriteString("    ~ Operators: + - * / % ^ ( ), plus abs, ceil, floor, round, max, min")

	fmt.Fprintln(d.out, b.String())
}

func (d *Dispatcher) setConstant(ctx context.Context, c command.SetConstant) {
	if eval.IsReserved(c.Name) {
		d.fail(fmt.Sprintf("Error: '%s' is a built-in name and cannot be redefined", c.Name))
		return
	}
	if err := d.constants.Set(ctx, c.Name, c.Value); err != nil {
		d.logger.Error("Failed to set constant", "name", c.Name, "err", err)
		if errors.Is(err, domain.ErrInvalidValue) {
			d.fail("Error: Invalid constant value")
			return
		}
		d.fail("Error: " + err.Error())
	}
}

func (d *Dispatcher) printConstants() {
	fmt.Fprintln(d.out, d.colors.Primary("Custom constants"))
	for _, name := range d.constants.Names() {
		value, _ := d.constants.Get(name)
		fmt.Fprintf(d.out, "    %s = %s\n", name, FormatNumber(value, -1))
	}
	fmt.Fprintf(d.out, "For built-in constants, please refer to %s\n", d.colors.Secondary("clic help"))
}

func (d *Dispatcher) setColor(ctx context.Context, c command.SetColor) {
	err := d.colors.Set(ctx, c.Slot, c.Value)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidSlot):
		d.fail(fmt.Sprintf("Error: Invalid color key '%s' (expected %s)", c.Slot, strings.Join(colors.Slots, ", ")))
	default:
		d.logger.Error("Failed to set color", "slot", c.Slot, "err", err)
		d.fail("Error: " + err.Error())
	}
}

func (d *Dispatcher) evaluateExpression(text string) {
	result, err := d.evaluate(text, d.constants.Bindings())
	if err != nil {
		d.logger.Debug("Evaluation failed", "expr", text, "err", err)
		d.fail(err.Error())
		return
	}
	fmt.Fprintln(d.out, d.colors.Primary("= "+FormatNumber(result, d.precision)))
}

func (d *Dispatcher) fail(msg string) {
	fmt.Fprintln(d.out, d.colors.Failure(msg))
}

// FormatNumber renders v for display. A negative precision selects the
// shortest representation that round-trips; very large or very small
// magnitudes switch to exponent notation.
func FormatNumber(v float64, precision int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}

	if precision >= 0 {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}

	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e21 || abs < 1e-7) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package eval

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/builtin"
)

// Evaluator computes the numeric value of an expression.
// Identifiers are resolved from bindings before the built-in constants.
type Evaluator func(text string, bindings map[string]any) (float64, error)

// ErrNotNumeric is returned when an expression yields something other than a number.
var ErrNotNumeric = errors.New("expression did not produce a number")

// Builtin constants available to every expression.
var builtinConstants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
	"phi": math.Phi,
}

type unary func(float64) float64

// Builtin single-argument functions. abs, ceil, floor, round, max and min are
// provided by the expression language itself.
var builtinFuncs = map[string]unary{
	"sqrt":   math.Sqrt,
	"cbrt":   math.Cbrt,
	"exp":    math.Exp,
	"ln":     math.Log,
	"log2":   math.Log2,
	"log10":  math.Log10,
	"sin":    math.Sin,
	"cos":    math.Cos,
	"tan":    math.Tan,
	"asin":   math.Asin,
	"acos":   math.Acos,
	"atan":   math.Atan,
	"sinh":   math.Sinh,
	"cosh":   math.Cosh,
	"tanh":   math.Tanh,
	"asinh":  math.Asinh,
	"acosh":  math.Acosh,
	"atanh":  math.Atanh,
	"signum": signum,
}

func signum(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Names returns the names of all built-in constants and functions, sorted.
func Names() []string {
	names := slices.Collect(maps.Keys(builtinConstants))
	names = append(names, slices.Collect(maps.Keys(builtinFuncs))...)
	names = append(names, "atan2", "fmod")
	slices.Sort(names)
	return names
}

// Constants returns a copy of the built-in constants.
func Constants() map[string]float64 {
	return maps.Clone(builtinConstants)
}

// keywords of the expression language; none of them can name a constant.
var keywords = []string{
	"true", "false", "nil", "not", "and", "or", "in", "matches",
	"contains", "startsWith", "endsWith", "let", "if", "else",
}

// IsReserved reports whether name is a function or keyword of the evaluator.
// Built-in constants such as pi are not reserved: user bindings may shadow them.
func IsReserved(name string) bool {
	if _, ok := builtinFuncs[name]; ok {
		return true
	}
	if _, ok := builtin.Index[name]; ok {
		return true
	}
	return name == "atan2" || name == "fmod" || slices.Contains(keywords, name)
}

// Default evaluates text with the expr language, extended with the built-in math table.
// All arithmetic is float64: integer literals are compiled as floats and % is math.Mod.
func Default(text string, bindings map[string]any) (float64, error) {
	env := make(map[string]any, len(builtinConstants)+len(bindings))
	for name, value := range builtinConstants {
		env[name] = value
	}
	for name, value := range bindings {
		// A binding named like a function would make the function uncallable.
		if IsReserved(name) {
			continue
		}
		env[name] = value
	}

	opts := []expr.Option{
		expr.Env(env),
		expr.Patch(floatLiterals{}),
	}
	for name, fn := range builtinFuncs {
		opts = append(opts, unaryFunction(name, fn))
	}
	opts = append(opts,
		binaryFunction("atan2", math.Atan2),
		binaryFunction("fmod", math.Mod, new(func(any, any) float64)),
		expr.Operator("%", "fmod"),
	)

	program, err := expr.Compile(widenLiterals(text), opts...)
	if err != nil {
		return 0, err
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return 0, err
	}

	return toFloat(out)
}

// floatLiterals compiles integer literals as float64 so results never wrap around.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

// widenLiterals rewrites decimal integer literals that overflow int64 as float
// literals ("1" followed by 20 zeros becomes "100000000000000000000.0"), since
// the parser rejects them before any patch runs.
func widenLiterals(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			j := i + 1
			for j < len(text) && text[j] != c {
				if text[j] == '\\' && c != '`' {
					j++
				}
				j++
			}
			j = min(j+1, len(text))
			b.WriteString(text[i:j])
			i = j
		case isDigit(c) && (i == 0 || text[i-1] != '.'):
			j := i
			for j < len(text) && (isDigit(text[j]) || text[j] == '_') {
				j++
			}
			b.WriteString(widenInteger(text[i:j], text[j:]))
			i = j
		case isWordByte(c):
			j := i
			for j < len(text) && isWordByte(text[j]) {
				j++
			}
			b.WriteString(text[i:j])
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// widenInteger returns literal unchanged unless it is a whole decimal integer
// too large for int64, in which case it becomes a float literal.
func widenInteger(literal, rest string) string {
	if rest != "" && strings.ContainsRune(".eExXoObB", rune(rest[0])) {
		return literal
	}
	digits := strings.ReplaceAll(literal, "_", "")
	if _, err := strconv.ParseInt(digits, 10, 64); errors.Is(err, strconv.ErrRange) {
		return digits + ".0"
	}
	return literal
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func binaryFunction(name string, fn func(float64, float64) float64, types ...any) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		y, err := toFloat(params[1])
		if err != nil {
			return nil, err
		}
		return fn(x, y), nil
	}, types...)
}

func unaryFunction(name string, fn unary) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	})
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: got %T", ErrNotNumeric, v)
	}
}

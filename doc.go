/*
Package clic is a small command-line calculator with persistent constants and colors.

It evaluates math expressions passed as a single argument or typed inside an
interactive shell. User-defined constants and output colors are stored as JSON
documents in the per-user configuration directory and survive between runs.

# Concept

The program is split into a few owned components built once at process entry:

  - ConfigStore (pkg/ports, pkg/adapters/file): named JSON records on disk.
  - Constant environment (pkg/constants): name -> value bindings for expressions.
  - Color profile (pkg/colors): primary, secondary and failure output colors.
  - Dispatcher (internal/cli): parses a token list into a command and runs it.
  - Shell (internal/cli): the read-eval-print loop with persistent history.

# Usage

	clic                       # enter shell mode
	clic "sqrt(3)"             # evaluate a math expression
	clic set x 2               # create a custom constant
	clic consts                # list custom constants
	clic color primary green   # change a color

In shell mode, lines starting with help, set or color are split on whitespace.
Every other line is evaluated as a whole, so expressions may contain spaces
without quoting.
*/
package clic

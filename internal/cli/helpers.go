package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/aretw0/clic/internal/logging"
	"github.com/aretw0/clic/pkg/colors"
	"github.com/aretw0/clic/pkg/command"
	"github.com/aretw0/clic/pkg/constants"
	"github.com/aretw0/clic/pkg/eval"
	"github.com/peterh/liner"
)

// createLogger configures the application logger.
// Debug forces debug level; otherwise level (from settings.yaml) enables
// logging at that level. Without either, logging is disabled.
func createLogger(debug bool, level string) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	if level == "" {
		return logging.NewNop()
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		logger := logging.New(slog.LevelWarn)
		logger.Warn("Ignoring log_level from settings", "err", err)
		return logger
	}
	return logging.New(lvl)
}

// isInterrupted reports whether err is the editor's way of saying the user is done.
func isInterrupted(err error) bool {
	return errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF)
}

// newCompleter completes command names at the start of a line, color slots
// after "color", and constant or built-in names anywhere else.
func newCompleter(env *constants.Environment) liner.Completer {
	return func(line string) []string {
		fields := strings.Fields(line)
		trailingSpace := strings.HasSuffix(line, " ")

		if len(fields) == 0 || (len(fields) == 1 && !trailingSpace) {
			var out []string
			word := strings.TrimSpace(line)
			for _, name := range command.Names {
				if strings.HasPrefix(name, word) {
					out = append(out, name)
				}
			}
			return append(out, completeWord(line, env)...)
		}

		if fields[0] == command.NameColor && (len(fields) == 1 || (len(fields) == 2 && !trailingSpace)) {
			word := ""
			if len(fields) == 2 {
				word = fields[1]
			}
			var out []string
			for _, slot := range colors.Slots {
				if strings.HasPrefix(slot, word) {
					out = append(out, command.NameColor+" "+slot)
				}
			}
			return out
		}

		if command.IsReserved(fields[0]) {
			return nil
		}
		return completeWord(line, env)
	}
}

// completeWord completes the identifier under the cursor (end of line).
func completeWord(line string, env *constants.Environment) []string {
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	}) + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, names := range [][]string{env.Names(), eval.Names()} {
		for _, name := range names {
			if strings.HasPrefix(name, word) && !seen[name] {
				seen[name] = true
				out = append(out, prefix+name)
			}
		}
	}
	return out
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/clic/internal/config"
	"github.com/aretw0/clic/internal/logging"
	"github.com/aretw0/clic/pkg/colors"
	"github.com/aretw0/clic/pkg/command"
)

// LineEditor is the line-editing collaborator of the shell.
// *liner.State satisfies it.
type LineEditor interface {
	// Prompt blocks until a full line is entered.
	// It returns liner.ErrPromptAborted on Ctrl-C and io.EOF on Ctrl-D.
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// Shell is the read-eval-print loop.
// History is loaded when Run starts and written back when it ends.
type Shell struct {
	editor      LineEditor
	dispatcher  *Dispatcher
	colors      *colors.Profile
	historyPath string
	prompt      string
	out         io.Writer
	logger      *slog.Logger
}

// ShellOption configures the Shell.
type ShellOption func(*Shell)

// WithPrompt sets the prompt printed before each line.
func WithPrompt(prompt string) ShellOption {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithShellOutput redirects the shell's own messages.
func WithShellOutput(w io.Writer) ShellOption {
	return func(s *Shell) {
		s.out = w
	}
}

// WithShellLogger configures the structured logger.
func WithShellLogger(logger *slog.Logger) ShellOption {
	return func(s *Shell) {
		s.logger = logger
	}
}

// NewShell creates a shell reading from editor and dispatching to dispatcher.
func NewShell(editor LineEditor, dispatcher *Dispatcher, profile *colors.Profile, historyPath string, opts ...ShellOption) *Shell {
	s := &Shell{
		editor:      editor,
		dispatcher:  dispatcher,
		colors:      profile,
		historyPath: historyPath,
		prompt:      config.DefaultPrompt,
		out:         os.Stdout,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops until the user interrupts (Ctrl-C), ends input (Ctrl-D) or the
// editor fails. History is saved on every exit path; only a failure to save
// it is returned.
func (s *Shell) Run(ctx context.Context) error {
	s.loadHistory()

	for ctx.Err() == nil {
		line, err := s.editor.Prompt(s.prompt)
		if err != nil {
			if !isInterrupted(err) {
				fmt.Fprintln(s.out, s.colors.Failure(fmt.Sprintf("Unexpected error: %v", err)))
				s.logger.Error("Line editor failed", "err", err)
			}
			break
		}

		clean, err := command.SanitizeLine(line)
		if err != nil {
			fmt.Fprintln(s.out, s.colors.Failure(fmt.Sprintf("Error: %v", err)))
			continue
		}

		tokens := command.Tokenize(clean)
		if len(tokens) == 0 {
			continue
		}

		s.editor.AppendHistory(strings.TrimSpace(clean))
		s.dispatcher.Dispatch(ctx, tokens)
	}

	return s.saveHistory()
}

// loadHistory treats a missing or unreadable history file as empty.
func (s *Shell) loadHistory() {
	f, err := os.Open(s.historyPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Failed to open history, starting empty", "path", s.historyPath, "err", err)
		}
		return
	}
	defer f.Close()

	n, err := s.editor.ReadHistory(f)
	if err != nil {
		s.logger.Warn("Failed to read history", "path", s.historyPath, "err", err)
		return
	}
	s.logger.Debug("History loaded", "path", s.historyPath, "entries", n)
}

func (s *Shell) saveHistory() error {
	f, err := os.Create(s.historyPath)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}

	n, err := s.editor.WriteHistory(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}

	s.logger.Debug("History saved", "path", s.historyPath, "entries", n)
	return nil
}

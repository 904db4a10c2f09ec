package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/clic/internal/config"
	"github.com/aretw0/clic/internal/presentation/tui"
	"github.com/aretw0/clic/pkg/adapters/file"
	"github.com/aretw0/clic/pkg/colors"
	"github.com/aretw0/clic/pkg/constants"
	"github.com/aretw0/clic/pkg/domain"
	"github.com/peterh/liner"
)

// RunOptions contains all the configuration for a clic invocation.
type RunOptions struct {
	ConfigDir   string // Empty: CLIC_CONFIG_DIR or the OS config dir
	Debug       bool
	Interactive bool // Stdin is a terminal; enables the shell banner
	Version     string
	Out         io.Writer // Defaults to os.Stdout
}

// Execute builds the persistent state and either dispatches args once or,
// when args is empty, runs the shell.
func Execute(ctx context.Context, opts RunOptions, args []string) error {
	dir, err := config.Dir(opts.ConfigDir)
	if err != nil {
		return err
	}

	store := file.New(dir)
	if err := store.EnsureDir(); err != nil {
		return err
	}

	settings, settingsErr := config.LoadSettings(dir)
	logger := createLogger(opts.Debug, settings.LogLevel)
	if settingsErr != nil {
		logger.Warn("Using default settings", "err", settingsErr)
	}
	logger.Debug("Config directory", "path", dir)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	env := constants.Build(ctx, store, constants.WithLogger(logger))
	profile := colors.Build(ctx, store, colors.WithLogger(logger), colors.WithWriter(out))

	dispatcher := NewDispatcher(env, profile,
		WithOutput(out),
		WithLogger(logger),
		WithPrecision(settings.Precision),
	)

	if len(args) > 0 {
		dispatcher.Dispatch(ctx, args)
		return nil
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(newCompleter(env))

	if opts.Interactive {
		tui.PrintBanner(out, opts.Version)
	}

	shell := NewShell(line, dispatcher, profile, store.Path(domain.HistoryFile),
		WithPrompt(settings.Prompt),
		WithShellOutput(out),
		WithShellLogger(logger),
	)
	if err := shell.Run(ctx); err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}

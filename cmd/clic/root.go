package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/clic"
	"github.com/aretw0/clic/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "clic [command|expression] [args...]",
	Short: "Clic is a simple CLI calculator",
	Long: `Clic evaluates math expressions, either once from the command line or
interactively in shell mode (run without arguments).

Commands:
  help [topic]                               view help
  set <name> <value>                         create a custom constant
  consts                                     view custom constants
  color <primary/secondary/failure> <color>  set a color

Anything else is evaluated as an expression. Flags must come before the
expression. An expression starting with "-" followed by a digit, "." or "("
(such as -3+2) is never read as a flag.`,
	Version:       strings.TrimSpace(clic.Version),
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, _ := cmd.Flags().GetString("config-dir")
		debug, _ := cmd.Flags().GetBool("debug")

		opts := cli.RunOptions{
			ConfigDir:   configDir,
			Debug:       debug,
			Interactive: term.IsTerminal(int(os.Stdin.Fd())),
			Version:     clic.Version,
		}
		return cli.Execute(cmd.Context(), opts, args)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd.SetArgs(expressionArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// expressionArgs inserts "--" before a leading negative expression so cobra
// treats it as a positional instead of an unknown shorthand flag.
func expressionArgs(args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case isNegativeExpression(arg):
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		case arg == "--config-dir":
			i++ // value
		case strings.HasPrefix(arg, "-"):
			// other flag
		default:
			return args
		}
	}
	return args
}

func isNegativeExpression(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	c := arg[1]
	return (c >= '0' && c <= '9') || c == '.' || c == '('
}

func init() {
	rootCmd.Flags().String("config-dir", "", "Directory holding constants, colors and history (default: $CLIC_CONFIG_DIR or the OS config dir)")
	rootCmd.Flags().Bool("debug", false, "Write debug logs to stderr")

	// Stop flag parsing at the first positional so expression text is never taken as flags.
	rootCmd.Flags().SetInterspersed(false)
}

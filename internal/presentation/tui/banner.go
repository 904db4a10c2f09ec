package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner greets the user when the shell starts on a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.EnvColorProfile()

	// Cyan to teal, matching the default primary color.
	s1 := out.String("      _ _      ").Foreground(p.Color("#22d3ee"))
	s2 := out.String("  ___| (_) ___ ").Foreground(p.Color("#2dd4bf"))
	s3 := out.String(" / __| | |/ __|").Foreground(p.Color("#34d399"))
	s4 := out.String("| (__| | | (__ ").Foreground(p.Color("#4ade80"))
	s5 := out.String(" \\___|_|_|\\___|").Foreground(p.Color("#a3e635"))

	fmt.Fprintln(w)
	for _, s := range []termenv.Style{s1, s2, s3, s4, s5} {
		fmt.Fprintln(w, s)
	}
	fmt.Fprintf(w, "\n clic %s - Ctrl-D or Ctrl-C to exit, \"help\" for usage\n\n", strings.TrimSpace(version))
}

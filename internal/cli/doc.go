// Package cli wires clic together: it resolves the configuration directory,
// builds the persisted state and runs either a single command or the
// interactive shell.
package cli

/*
Package ports defines the driven ports (interfaces) used by clic.

These interfaces decouple the calculator from where its state lives, allowing
the constant environment and the color profile to work against the filesystem
in production and an in-memory backend in tests.

# Key Interfaces

  - ConfigStore: persists and loads named JSON records (constants, colors).
*/
package ports

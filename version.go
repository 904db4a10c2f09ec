package clic

import (
	_ "embed"
)

// Version is the current release of clic, read from the VERSION file.
//
//go:embed VERSION
var Version string

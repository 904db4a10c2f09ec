// Package eval evaluates math expressions against user constants.
package eval

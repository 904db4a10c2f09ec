package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpressionArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"Negative Expression", []string{"-3+2"}, []string{"--", "-3+2"}},
		{"Negative Parenthesis", []string{"-(1+2)"}, []string{"--", "-(1+2)"}},
		{"After Flags", []string{"--debug", "-3+2"}, []string{"--debug", "--", "-3+2"}},
		{"After Config Dir", []string{"--config-dir", "/tmp/c", "-.5*2"}, []string{"--config-dir", "/tmp/c", "--", "-.5*2"}},
		{"Positive Expression", []string{"3+2"}, []string{"3+2"}},
		{"Set Negative Value", []string{"set", "x", "-3"}, []string{"set", "x", "-3"}},
		{"Already Separated", []string{"--", "-3"}, []string{"--", "-3"}},
		{"Flag Only", []string{"--version"}, []string{"--version"}},
		{"Shorthand Flag", []string{"-h"}, []string{"-h"}},
		{"No Args", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expressionArgs(tt.args))
		})
	}
}

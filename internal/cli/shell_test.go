package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/clic/pkg/colors"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T, h *harness, editor *fakeEditor, historyPath string) *Shell {
	t.Helper()
	return NewShell(editor, h.dispatcher, h.profile, historyPath, WithShellOutput(h.out))
}

func readLines(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestShell_ExpressionLineIsNotSplit(t *testing.T) {
	var seen []string
	h := newHarness(t, WithEvaluator(func(text string, _ map[string]any) (float64, error) {
		seen = append(seen, text)
		return 4, nil
	}))
	editor := &fakeEditor{lines: []string{"sqrt( 9 ) + 1"}}

	err := newTestShell(t, h, editor, filepath.Join(t.TempDir(), "history.txt")).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"sqrt( 9 ) + 1"}, seen)
	assert.Contains(t, h.out.String(), "= 4")
}

func TestShell_SetLineIsSplit(t *testing.T) {
	h := newHarness(t)
	editor := &fakeEditor{lines: []string{"set x 4", "x * 2", "consts"}}

	err := newTestShell(t, h, editor, filepath.Join(t.TempDir(), "history.txt")).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"x": 4}, h.env.Constants())
	assert.Contains(t, h.out.String(), "= 8")
	assert.Contains(t, h.out.String(), "    x = 4")
}

func TestShell_ColorLine(t *testing.T) {
	h := newHarness(t)
	editor := &fakeEditor{lines: []string{"color secondary magenta", "color nope blue"}}

	require.NoError(t, newTestShell(t, h, editor, filepath.Join(t.TempDir(), "history.txt")).Run(context.Background()))

	got, _ := h.profile.Get(colors.Secondary)
	assert.Equal(t, "magenta", got)
	assert.Contains(t, h.out.String(), "Invalid color key 'nope'")
}

func TestShell_EndSignalsSaveHistory(t *testing.T) {
	tests := []struct {
		name  string
		final error
	}{
		{"EOF", nil},
		{"Interrupt", liner.ErrPromptAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			path := filepath.Join(t.TempDir(), "history.txt")
			editor := &fakeEditor{lines: []string{"1 + 1", "set y 3"}, final: tt.final}

			err := newTestShell(t, h, editor, path).Run(context.Background())

			require.NoError(t, err)
			assert.Equal(t, "1 + 1\nset y 3\n", readLines(t, path))
			assert.NotContains(t, h.out.String(), "Unexpected error")
			assert.Len(t, editor.prompts, 3, "the loop reads until the end signal")
		})
	}
}

func TestShell_UnexpectedErrorEndsLoop(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "history.txt")
	editor := &fakeEditor{lines: []string{"2 ^ 3"}, final: errors.New("terminal went away")}

	err := newTestShell(t, h, editor, path).Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Unexpected error: terminal went away")
	assert.Equal(t, "2 ^ 3\n", readLines(t, path), "history is still saved")
}

func TestShell_LoadsExistingHistory(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "history.txt")
	require.NoError(t, os.WriteFile(path, []byte("old one\nold two\n"), 0o644))
	editor := &fakeEditor{lines: []string{"3 * 3"}}

	require.NoError(t, newTestShell(t, h, editor, path).Run(context.Background()))

	assert.Equal(t, 2, editor.loaded)
	assert.Equal(t, "old one\nold two\n3 * 3\n", readLines(t, path))
}

func TestShell_MissingHistoryStartsEmpty(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "history.txt")
	editor := &fakeEditor{}

	require.NoError(t, newTestShell(t, h, editor, path).Run(context.Background()))

	assert.Zero(t, editor.loaded)
	assert.Empty(t, readLines(t, path))
}

func TestShell_BlankLinesSkipped(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "history.txt")
	editor := &fakeEditor{lines: []string{"", "   ", "\t", "  4 / 2  "}}

	require.NoError(t, newTestShell(t, h, editor, path).Run(context.Background()))

	assert.Contains(t, h.out.String(), "= 2")
	assert.NotContains(t, h.out.String(), "Error")
	assert.Equal(t, "4 / 2\n", readLines(t, path))
}

func TestShell_OversizedLineRejected(t *testing.T) {
	t.Setenv("CLIC_MAX_INPUT_SIZE", "8")
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "history.txt")
	editor := &fakeEditor{lines: []string{"1 + 2 + 3 + 4", "1 + 2"}}

	require.NoError(t, newTestShell(t, h, editor, path).Run(context.Background()))

	assert.Contains(t, h.out.String(), "input exceeds maximum allowed size")
	assert.Contains(t, h.out.String(), "= 3")
	assert.Equal(t, "1 + 2\n", readLines(t, path))
}

func TestShell_CancelledContext(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "history.txt")
	editor := &fakeEditor{lines: []string{"1"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, newTestShell(t, h, editor, path).Run(ctx))
	assert.Empty(t, editor.prompts)
	_, err := os.Stat(path)
	assert.NoError(t, err, "history is written even when no line was read")
}

func TestShell_HistorySaveFailure(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "missing-dir", "history.txt")
	editor := &fakeEditor{lines: []string{"1"}}

	err := newTestShell(t, h, editor, path).Run(context.Background())
	assert.Error(t, err)
}

func TestShell_Prompt(t *testing.T) {
	h := newHarness(t)
	editor := &fakeEditor{}
	shell := NewShell(editor, h.dispatcher, h.profile, filepath.Join(t.TempDir(), "h.txt"), WithPrompt("calc> "))

	require.NoError(t, shell.Run(context.Background()))
	assert.Equal(t, []string{"calc> "}, editor.prompts)
}

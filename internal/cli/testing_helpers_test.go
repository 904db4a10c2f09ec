package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/aretw0/clic/pkg/adapters/memory"
	"github.com/aretw0/clic/pkg/colors"
	"github.com/aretw0/clic/pkg/constants"
	"github.com/muesli/termenv"
)

// harness bundles a dispatcher wired to in-memory state and a plain-text output.
type harness struct {
	store      *memory.Store
	env        *constants.Environment
	profile    *colors.Profile
	out        *bytes.Buffer
	dispatcher *Dispatcher
}

func newHarness(t *testing.T, opts ...DispatcherOption) *harness {
	t.Helper()
	ctx := context.Background()

	h := &harness{
		store: memory.NewStore(),
		out:   &bytes.Buffer{},
	}
	h.env = constants.Build(ctx, h.store)
	h.profile = colors.Build(ctx, h.store,
		colors.WithOutput(termenv.NewOutput(h.out, termenv.WithProfile(termenv.Ascii))))

	opts = append([]DispatcherOption{WithOutput(h.out)}, opts...)
	h.dispatcher = NewDispatcher(h.env, h.profile, opts...)
	return h
}

func (h *harness) run(tokens ...string) string {
	h.out.Reset()
	h.dispatcher.Dispatch(context.Background(), tokens)
	return h.out.String()
}

// fakeEditor replays scripted lines, then returns final (io.EOF by default).
type fakeEditor struct {
	lines   []string
	final   error
	prompts []string
	history []string
	loaded  int
}

func (f *fakeEditor) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		if f.final != nil {
			return "", f.final
		}
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeEditor) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func (f *fakeEditor) ReadHistory(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		f.history = append(f.history, scanner.Text())
		n++
	}
	f.loaded = n
	return n, scanner.Err()
}

func (f *fakeEditor) WriteHistory(w io.Writer) (int, error) {
	for i, item := range f.history {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return i, err
		}
	}
	return len(f.history), nil
}

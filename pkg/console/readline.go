package console

import (
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// ReadlineReader is a LineReader with line editing. One readline instance
// serves every prompt, so input typed or piped ahead of a prompt is kept for
// the next one. Redirected input is read the same way without raw mode.
type ReadlineReader struct {
	in    *os.File
	out   io.Writer
	rl    *readline.Instance
	state *term.State
}

// NewReadlineReader returns a LineReader reading from in and echoing to out.
func NewReadlineReader(in *os.File, out io.Writer) *ReadlineReader {
	return &ReadlineReader{in: in, out: out}
}

// ReadLine implements LineReader.
func (r *ReadlineReader) ReadLine(prompt string, size int) (string, error) {
	rl, err := r.instance()
	if err != nil {
		return "", err
	}
	rl.SetPrompt(prompt)
	rl.Config.SetListener(capListener(size))

	line, err := rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
		return "", ErrInputAborted
	case err != nil:
		return "", err
	}
	return TruncateLine(line, size), nil
}

// instance creates the readline instance on the first prompt.
func (r *ReadlineReader) instance() (*readline.Instance, error) {
	if r.rl != nil {
		return r.rl, nil
	}
	rl, err := readline.NewEx(&readline.Config{
		// The instance closes its input on Close; the file belongs to the caller.
		Stdin:                  io.NopCloser(r.in),
		Stdout:                 r.out,
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
		FuncIsTerminal:         r.isTerminal,
		FuncMakeRaw:            r.makeRaw,
		FuncExitRaw:            r.exitRaw,
	})
	if err != nil {
		return nil, err
	}
	r.rl = rl
	return rl, nil
}

func (r *ReadlineReader) isTerminal() bool {
	return term.IsTerminal(int(r.in.Fd()))
}

func (r *ReadlineReader) makeRaw() error {
	if r.state != nil || !r.isTerminal() {
		return nil
	}
	state, err := term.MakeRaw(int(r.in.Fd()))
	if err != nil {
		return err
	}
	r.state = state
	return nil
}

func (r *ReadlineReader) exitRaw() error {
	if r.state == nil {
		return nil
	}
	state := r.state
	r.state = nil
	return term.Restore(int(r.in.Fd()), state)
}

// Close implements LineReader. Input already buffered for later prompts is dropped.
func (r *ReadlineReader) Close() error {
	if r.rl == nil {
		return nil
	}
	err := r.rl.Close()
	r.rl = nil
	return err
}

// capListener drops keystrokes that would grow the line past size-1 runes.
func capListener(size int) func(line []rune, pos int, key rune) ([]rune, int, bool) {
	return func(line []rune, pos int, _ rune) ([]rune, int, bool) {
		limit := size - 1
		if size <= 0 || len(line) <= limit {
			return nil, 0, false
		}
		line = line[:limit]
		if pos > limit {
			pos = limit
		}
		return line, pos, true
	}
}

// TruncateLine keeps at most size-1 runes of s; size <= 0 keeps everything.
func TruncateLine(s string, size int) string {
	if size <= 0 {
		return s
	}
	if r := []rune(s); len(r) > size-1 {
		return string(r[:size-1])
	}
	return s
}

package console

import (
	"errors"
	"io"
	"os"
	"unicode/utf8"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// errKeysCanceled is what ReadKey returns after Cancel.
var errKeysCanceled = errors.New("key read canceled")

// TerminalKeys reads single keys from a terminal in raw mode. When the input
// is not a terminal, bytes are read as they arrive without changing modes.
type TerminalKeys struct {
	in    *os.File
	state *term.State
	cr    cancelreader.CancelReader
	buf   []byte
}

// NewTerminalKeys returns a key source reading from in.
func NewTerminalKeys(in *os.File) *TerminalKeys {
	return &TerminalKeys{in: in}
}

// Open implements KeySource.
func (t *TerminalKeys) Open() error {
	cr, err := cancelreader.NewReader(t.in)
	if err != nil {
		return err
	}
	if fd := int(t.in.Fd()); term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			_ = cr.Close()
			return err
		}
		t.state = state
	}
	t.cr = cr
	t.buf = t.buf[:0]
	return nil
}

// Raw reports whether Open switched the terminal to raw mode.
func (t *TerminalKeys) Raw() bool { return t.state != nil }

// ReadKey implements KeySource. A CSI or SS3 sequence, such as an arrow
// key, is reported as a single KeyEscape.
func (t *TerminalKeys) ReadKey() (rune, error) {
	for {
		if r, ok := t.next(); ok {
			return r, nil
		}
		chunk := make([]byte, 64)
		n, err := t.cr.Read(chunk)
		if n > 0 {
			t.buf = append(t.buf, chunk[:n]...)
			continue
		}
		if errors.Is(err, cancelreader.ErrCanceled) {
			return 0, errKeysCanceled
		}
		if err != nil {
			return 0, err
		}
	}
}

// next pops one complete rune from the buffer.
func (t *TerminalKeys) next() (rune, bool) {
	if len(t.buf) == 0 || !utf8.FullRune(t.buf) {
		return 0, false
	}
	if t.buf[0] == KeyEscape {
		t.buf = t.buf[escapeLen(t.buf):]
		return KeyEscape, true
	}
	r, size := utf8.DecodeRune(t.buf)
	t.buf = t.buf[size:]
	return r, true
}

// escapeLen is the length of the escape sequence at the start of b. Bytes
// that do not continue a CSI or SS3 sequence are left for the next key.
func escapeLen(b []byte) int {
	if len(b) < 2 {
		return 1
	}
	switch b[1] {
	case '[':
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				return i + 1
			}
		}
		return len(b)
	case 'O':
		return min(3, len(b))
	}
	return 1
}

// Cancel implements KeySource.
func (t *TerminalKeys) Cancel() {
	if t.cr != nil {
		t.cr.Cancel()
	}
}

// Close implements KeySource and restores the terminal mode.
func (t *TerminalKeys) Close() error {
	var err error
	if t.cr != nil {
		err = t.cr.Close()
		t.cr = nil
	}
	if t.state != nil {
		if rerr := term.Restore(int(t.in.Fd()), t.state); err == nil {
			err = rerr
		}
		t.state = nil
	}
	return err
}

// NewTerminal creates a Console on the process's standard streams. Key
// polling is only set up when standard input is a terminal; redirected input
// feeds the line prompts alone.
func NewTerminal(opts Options) *Console {
	return newTerminal(os.Stdin, os.Stdout, opts)
}

func newTerminal(in *os.File, out io.Writer, opts Options) *Console {
	if opts.Lines == nil {
		opts.Lines = NewReadlineReader(in, out)
	}
	if opts.Keys == nil && term.IsTerminal(int(in.Fd())) {
		opts.Keys = NewTerminalKeys(in)
	}
	if opts.Out == nil {
		opts.Out = out
	}
	return New(opts)
}

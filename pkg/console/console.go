// Package console provides prompted line input and single-key polling for
// programs driven by cmdline tables.
//
// A Console owns two input paths. Line prompts go through a LineReader with
// editing support. Keys come from a KeySource that a single pump goroutine
// drains into a queue; the pump starts on the first key operation and is
// stopped before every line prompt so the two never read the same stream.
package console

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"cmdline/internal/logger"
	"cmdline/internal/output"
)

var (
	// ErrInvalidInput wraps the converter error for a line that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInputAborted is returned when a prompt was interrupted or input ended.
	ErrInputAborted = errors.New("input aborted")
	// ErrNoInput is returned when no key source is available or it failed.
	ErrNoInput = errors.New("no key input available")
)

// LineReader reads one edited line.
type LineReader interface {
	// ReadLine shows prompt and returns the entered line without its
	// terminator. Implementations keep the line to at most size-1 runes when
	// size is positive, and return ErrInputAborted on interrupt or end of input.
	ReadLine(prompt string, size int) (string, error)
	Close() error
}

// KeySource delivers single key presses.
type KeySource interface {
	// Open prepares the device, for example by entering raw mode.
	Open() error
	// ReadKey blocks until a key arrives or Cancel is called.
	ReadKey() (rune, error)
	// Cancel unblocks a pending ReadKey.
	Cancel()
	// Close undoes Open. It is only called after ReadKey has returned.
	Close() error
}

// rawSource is implemented by key sources that put the terminal in raw mode.
type rawSource interface {
	Raw() bool
}

// Options configures a Console.
type Options struct {
	// Lines serves the typed input prompts. Required for StringInput and friends.
	Lines LineReader
	// Keys serves WaitKeyPress and CheckProgAbort. Nil disables both.
	Keys KeySource
	// Out receives prompts and echoed keys; nil means standard output.
	Out io.Writer
	// Styles colours prompts; nil means plain text.
	Styles output.StyleProvider
}

// Console is the interactive input subsystem. Its methods are meant to be
// called from one goroutine.
type Console struct {
	lines  LineReader
	keys   KeySource
	out    io.Writer
	styles output.StyleProvider
	log    *log.Logger

	mu      sync.Mutex
	queue   []rune
	pumping bool
	pumpErr error
	done    chan struct{}
	notify  chan struct{}
}

// New creates a Console from explicit readers.
func New(opts Options) *Console {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		lines:  opts.Lines,
		keys:   opts.Keys,
		out:    out,
		styles: opts.Styles,
		log:    logger.NewStyledLogger("console"),
		notify: make(chan struct{}, 1),
	}
}

// Printer returns a printer for console text. While a raw key source is
// active it translates newlines to CRLF.
func (c *Console) Printer() *output.Printer {
	opts := []output.Option{output.WithWriter(c.out), output.WithStyles(c.styles)}
	c.mu.Lock()
	raw := c.pumping && isRaw(c.keys)
	c.mu.Unlock()
	if raw {
		opts = append(opts, output.RawMode())
	}
	return output.NewPrinter(opts...)
}

func isRaw(k KeySource) bool {
	r, ok := k.(rawSource)
	return ok && r.Raw()
}

// Close stops key polling and releases both readers.
func (c *Console) Close() error {
	err := c.stopKeys()
	if c.lines != nil {
		if cerr := c.lines.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

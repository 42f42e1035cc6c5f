package console

import (
	"context"
	"fmt"
	"strings"
)

// Abort keys recognized by CheckProgAbort.
const (
	KeyCtrlC  = '\x03'
	KeyEscape = '\x1b'
)

// KeyFilter selects which keys WaitKeyPress accepts.
type KeyFilter struct {
	// Keys lists the acceptable keys; empty accepts any key.
	Keys []rune
	// Echo writes the accepted key to the console.
	Echo bool
}

// AnyKey accepts the first key pressed.
func AnyKey() KeyFilter { return KeyFilter{} }

// KeyList accepts only the runes in keys.
func KeyList(keys string, echo bool) KeyFilter {
	return KeyFilter{Keys: []rune(keys), Echo: echo}
}

// Accepts reports whether r passes the filter.
func (f KeyFilter) Accepts(r rune) bool {
	if len(f.Keys) == 0 {
		return true
	}
	for _, k := range f.Keys {
		if k == r {
			return true
		}
	}
	return false
}

func (f KeyFilter) String() string {
	if len(f.Keys) == 0 {
		return "any"
	}
	return string(f.Keys)
}

func isAbortKey(r rune) bool {
	return r == KeyCtrlC || r == KeyEscape
}

// WaitKeyPress shows prompt and blocks until a key passing filter arrives.
// Keys the filter rejects are discarded. It returns ctx.Err() when ctx ends
// first and ErrNoInput when the key source is missing or fails.
func (c *Console) WaitKeyPress(ctx context.Context, prompt string, filter KeyFilter) (rune, error) {
	if err := c.startKeys(); err != nil {
		return 0, err
	}
	p := c.Printer()
	if prompt != "" {
		p.Prompt(prompt)
		p.Print(" ")
	}

	for {
		c.mu.Lock()
		for len(c.queue) > 0 {
			r := c.queue[0]
			c.queue = c.queue[1:]
			if filter.Accepts(r) {
				c.mu.Unlock()
				c.log.Debug("Key accepted", "key", fmt.Sprintf("%q", r), "filter", filter)
				if filter.Echo {
					p.Value(string(r))
				}
				p.Println("")
				return r, nil
			}
			c.log.Debug("Key discarded", "key", fmt.Sprintf("%q", r), "filter", filter)
		}
		err := c.pumpErr
		c.mu.Unlock()

		if err != nil {
			p.Println("")
			return 0, fmt.Errorf("%w: %w", ErrNoInput, err)
		}

		select {
		case <-ctx.Done():
			p.Println("")
			return 0, ctx.Err()
		case <-c.notify:
		}
	}
}

// CheckProgAbort reports whether an abort key (Esc or Ctrl-C) is pending,
// consuming it. It never blocks, and other pending keys stay queued for
// WaitKeyPress. Without a key source it always returns false.
func (c *Console) CheckProgAbort() bool {
	if err := c.startKeys(); err != nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, r := range c.queue {
		if isAbortKey(r) {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			c.log.Debug("Abort key pending", "key", fmt.Sprintf("%q", r))
			return true
		}
	}
	return false
}

// Pending returns the queued keys without consuming them.
func (c *Console) Pending() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var b strings.Builder
	for _, r := range c.queue {
		b.WriteRune(r)
	}
	return b.String()
}

// startKeys opens the key source and starts the pump once.
func (c *Console) startKeys() error {
	if c.keys == nil {
		return ErrNoInput
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pumping {
		return nil
	}
	if err := c.keys.Open(); err != nil {
		c.log.Warn("Key source unavailable", "error", err)
		return fmt.Errorf("%w: %w", ErrNoInput, err)
	}
	c.pumping = true
	c.pumpErr = nil
	c.done = make(chan struct{})
	go c.pump(c.done)
	c.log.Debug("Key polling started")
	return nil
}

func (c *Console) pump(done chan<- struct{}) {
	defer close(done)
	for {
		r, err := c.keys.ReadKey()
		c.mu.Lock()
		if err != nil {
			c.pumpErr = err
		} else {
			c.queue = append(c.queue, r)
		}
		c.mu.Unlock()

		select {
		case c.notify <- struct{}{}:
		default:
		}
		if err != nil {
			return
		}
	}
}

// stopKeys cancels the pump, waits for it and restores the device.
// Queued keys are kept.
func (c *Console) stopKeys() error {
	c.mu.Lock()
	if !c.pumping {
		c.mu.Unlock()
		return nil
	}
	done := c.done
	c.mu.Unlock()

	c.keys.Cancel()
	<-done

	c.mu.Lock()
	c.pumping = false
	c.pumpErr = nil
	c.mu.Unlock()
	c.log.Debug("Key polling stopped")
	return c.keys.Close()
}

package console

import (
	"errors"
	"fmt"

	"cmdline/pkg/cmdline"
)

// numberInputSize bounds numeric prompts; it fits any int64 with its sign.
const numberInputSize = 22

// StringInput prompts for a line of at most size-1 characters.
func (c *Console) StringInput(prompt string, size int) (string, error) {
	line, err := c.readLine(prompt, size)
	if err != nil {
		return "", err
	}
	v, err := cmdline.ParseString(line, size)
	if err != nil {
		return "", invalidInput(err)
	}
	return v, nil
}

// DecimalInput prompts for an unsigned decimal number.
func (c *Console) DecimalInput(prompt string) (uint64, error) {
	line, err := c.readLine(prompt, numberInputSize)
	if err != nil {
		return 0, err
	}
	v, err := cmdline.ParseDecimal(line)
	if err != nil {
		return 0, invalidInput(err)
	}
	return v, nil
}

// HexInput prompts for a hexadecimal number, with or without a 0x prefix.
func (c *Console) HexInput(prompt string) (uint64, error) {
	line, err := c.readLine(prompt, numberInputSize)
	if err != nil {
		return 0, err
	}
	v, err := cmdline.ParseHex(line)
	if err != nil {
		return 0, invalidInput(err)
	}
	return v, nil
}

// IntegerInput prompts for a signed decimal number.
func (c *Console) IntegerInput(prompt string) (int64, error) {
	line, err := c.readLine(prompt, numberInputSize)
	if err != nil {
		return 0, err
	}
	v, err := cmdline.ParseInteger(line)
	if err != nil {
		return 0, invalidInput(err)
	}
	return v, nil
}

// Retry runs fn up to attempts times while it fails with ErrInvalidInput,
// printing each rejection. Other errors and success return immediately.
func (c *Console) Retry(attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); !errors.Is(err, ErrInvalidInput) {
			return err
		}
		c.Printer().Error(err.Error())
		c.log.Debug("Input rejected", "attempt", i+1, "of", attempts, "error", err)
	}
	return err
}

// readLine stops key polling, then reads one line with surrounding spaces kept.
func (c *Console) readLine(prompt string, size int) (string, error) {
	if c.lines == nil {
		return "", fmt.Errorf("%w: console has no line reader", ErrInputAborted)
	}
	if err := c.stopKeys(); err != nil {
		c.log.Warn("Failed to stop key polling", "error", err)
	}
	line, err := c.lines.ReadLine(c.styledPrompt(prompt), size)
	if err != nil {
		c.log.Debug("Prompt ended", "state", "Aborted", "error", err)
		if errors.Is(err, ErrInputAborted) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrInputAborted, err)
	}
	c.log.Debug("Line read", "token", line)
	return line, nil
}

func (c *Console) styledPrompt(prompt string) string {
	if c.styles == nil || !c.styles.IsAvailable() {
		return prompt
	}
	return c.styles.GetStyle("prompt").Render(prompt)
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// Package output is the console text-output primitive shared by the parser,
// the interactive console and the demo commands. Styling is injected through
// a StyleProvider so the engine never depends on a terminal library directly.
package output

// StyleProvider supplies a TextStyle per semantic type.
// The output package depends only on this interface, not on a theme implementation.
type StyleProvider interface {
	// GetStyle returns a TextStyle for the given semantic type, such as
	// "error", "prompt" or "switch".
	GetStyle(semantic string) TextStyle

	// IsAvailable returns true if the provider can style text on its terminal.
	// The printer falls back to plain text otherwise.
	IsAvailable() bool
}

// TextStyle renders text with styling. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(text string) string
}

// Mode defines different output modes the printer can operate in.
type Mode int

const (
	// ModeAuto styles text when a provider is available
	ModeAuto Mode = iota

	// ModeStyled forces styled output (with colors, formatting)
	ModeStyled

	// ModePlain forces plain text output with semantic prefixes
	ModePlain
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain represents plain text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess represents success or completion text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning represents warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents parse errors and rejected input.
	SemanticError SemanticType = "error"

	// SemanticPrompt represents an interactive input prompt.
	SemanticPrompt SemanticType = "prompt"
	// SemanticSwitch represents a switch name.
	SemanticSwitch SemanticType = "switch"
	// SemanticValue represents a parsed or entered value.
	SemanticValue SemanticType = "value"

	// SemanticHighlight represents highlighted or emphasized text.
	SemanticHighlight SemanticType = "highlight"
	// SemanticBold represents bold text styling.
	SemanticBold SemanticType = "bold"
)

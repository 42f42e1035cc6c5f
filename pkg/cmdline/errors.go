package cmdline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a parse was aborted.
type ErrorKind int

const (
	// KindUnknownSwitch is a switch-prefixed token that matches no declared name.
	KindUnknownSwitch ErrorKind = iota + 1
	// KindMissingSwitchValue is a value-bearing switch given as the last token.
	KindMissingSwitchValue
	// KindInvalidValue is a token rejected by a numeric converter.
	KindInvalidValue
	// KindInvalidEnumValue is a token that names no registry entry.
	KindInvalidEnumValue
	// KindValueTooLong is a string value that does not fit its destination.
	KindValueTooLong
	// KindUnexpectedArgument is a positional token with no slot left to claim it.
	KindUnexpectedArgument
	// KindMissingMandatorySwitch is a required switch that never appeared.
	KindMissingMandatorySwitch
	// KindMissingParameter is fewer positional tokens than Command.MinParams.
	KindMissingParameter
	// KindInvalidCommandLine is a raw line the tokenizer could not split.
	KindInvalidCommandLine
)

// Sentinel errors matched by [Error] through errors.Is.
var (
	ErrUnknownSwitch          = errors.New("unknown switch")
	ErrMissingSwitchValue     = errors.New("missing switch value")
	ErrInvalidValue           = errors.New("invalid value")
	ErrInvalidEnumValue       = errors.New("invalid enum value")
	ErrValueTooLong           = errors.New("value too long")
	ErrUnexpectedArgument     = errors.New("unexpected positional argument")
	ErrMissingMandatorySwitch = errors.New("missing mandatory switch")
	ErrMissingParameter       = errors.New("missing parameter")
	ErrInvalidCommandLine     = errors.New("invalid command line")

	// ErrHelp is returned with an Aborted outcome when the help switch was given.
	ErrHelp = errors.New("help requested")

	// ErrInvalidTable reports a programming mistake in the declared tables.
	ErrInvalidTable = errors.New("invalid table declaration")
)

var kindSentinels = map[ErrorKind]error{
	KindUnknownSwitch:          ErrUnknownSwitch,
	KindMissingSwitchValue:     ErrMissingSwitchValue,
	KindInvalidValue:           ErrInvalidValue,
	KindInvalidEnumValue:       ErrInvalidEnumValue,
	KindValueTooLong:           ErrValueTooLong,
	KindUnexpectedArgument:     ErrUnexpectedArgument,
	KindMissingMandatorySwitch: ErrMissingMandatorySwitch,
	KindMissingParameter:       ErrMissingParameter,
	KindInvalidCommandLine:     ErrInvalidCommandLine,
}

// String returns the name of the kind as used in log lines.
func (k ErrorKind) String() string {
	switch k {
	case KindUnknownSwitch:
		return "UnknownSwitch"
	case KindMissingSwitchValue:
		return "MissingSwitchValue"
	case KindInvalidValue:
		return "InvalidValue"
	case KindInvalidEnumValue:
		return "InvalidEnumValue"
	case KindValueTooLong:
		return "ValueTooLong"
	case KindUnexpectedArgument:
		return "UnexpectedPositionalArgument"
	case KindMissingMandatorySwitch:
		return "MissingMandatorySwitch"
	case KindMissingParameter:
		return "MissingParameter"
	case KindInvalidCommandLine:
		return "InvalidCommandLine"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the structured failure reported for an Aborted parse.
// Converters fill Kind, Token, Bound and Accepted; the dispatcher adds Name.
type Error struct {
	Kind     ErrorKind
	Token    string   // offending token, empty when the problem is an absence
	Name     string   // switch names ("-d/-dec") or parameter tag ("[str]")
	Bound    string   // valid range or maximum length for range errors
	Accepted []string // permitted values for enum errors
	Err      error    // underlying cause, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	switch e.Kind {
	case KindUnknownSwitch:
		fmt.Fprintf(&b, "unknown switch '%s'", e.Token)
	case KindMissingSwitchValue:
		fmt.Fprintf(&b, "switch '%s' requires a value", e.Name)
	case KindInvalidValue:
		fmt.Fprintf(&b, "invalid value '%s'", e.Token)
		e.writeSubject(&b)
		if e.Bound != "" {
			fmt.Fprintf(&b, " (valid range: %s)", e.Bound)
		}
	case KindInvalidEnumValue:
		fmt.Fprintf(&b, "invalid value '%s'", e.Token)
		e.writeSubject(&b)
		if len(e.Accepted) > 0 {
			fmt.Fprintf(&b, ". Valid values: %s", strings.Join(e.Accepted, ", "))
		}
	case KindValueTooLong:
		fmt.Fprintf(&b, "value '%s'", e.Token)
		e.writeSubject(&b)
		fmt.Fprintf(&b, " is too long (maximum %s characters)", e.Bound)
	case KindUnexpectedArgument:
		fmt.Fprintf(&b, "unexpected argument '%s'", e.Token)
	case KindMissingMandatorySwitch:
		fmt.Fprintf(&b, "mandatory switch '%s' not specified", e.Name)
	case KindMissingParameter:
		fmt.Fprintf(&b, "missing parameter %s", e.Name)
		if e.Bound != "" {
			fmt.Fprintf(&b, " (at least %s required)", e.Bound)
		}
	case KindInvalidCommandLine:
		b.WriteString("invalid command line")
		if e.Err != nil {
			fmt.Fprintf(&b, ": %v", e.Err)
		}
	default:
		b.WriteString("parse error")
	}
	return b.String()
}

func (e *Error) writeSubject(b *strings.Builder) {
	if e.Name != "" {
		fmt.Fprintf(b, " for %s", e.Name)
	}
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a parse error, or zero if err is not an [*Error].
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

func tableError(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTable, fmt.Sprintf(format, a...))
}

package cmdline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SwitchPrefix starts every switch token.
const SwitchPrefix = "-"

// ValueKind is the value type carried by a switch.
type ValueKind int

const (
	// KindFlag records presence only.
	KindFlag ValueKind = iota + 1
	// KindFlagWithDefault writes a constant when the switch appears.
	KindFlagWithDefault
	// KindEnum takes a value resolved through an [EnumTable].
	KindEnum
	// KindDecimal8 takes a decimal value in 0-255.
	KindDecimal8
	// KindHex takes a hexadecimal value.
	KindHex
	// KindInt16 takes a signed 16-bit decimal value.
	KindInt16
	// KindString takes a bounded text value.
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindFlagWithDefault:
		return "flagval"
	case KindEnum:
		return "enum"
	case KindDecimal8:
		return "dec8"
	case KindHex:
		return "hex"
	case KindInt16:
		return "int16"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// switchValue is the closed set of switch variants, each holding exactly the
// destination and constants its kind needs.
type switchValue interface {
	kind() ValueKind
	takesValue() bool
	apply(token string) (commit func(), err error)
	validate() error
	accepted() []string
}

// Switch is one entry of a switch table. Build it with one of the kind
// constructors and refine it with [Switch.Required] and [Switch.WithPresence].
type Switch struct {
	Short string
	Long  string
	Help  string

	mandatory bool
	present   *bool
	value     switchValue
}

// Required marks the switch as mandatory.
func (s Switch) Required() Switch {
	s.mandatory = true
	return s
}

// WithPresence sets a destination that reports whether the switch appeared.
func (s Switch) WithPresence(present *bool) Switch {
	s.present = present
	return s
}

// Kind reports the switch's value type.
func (s Switch) Kind() ValueKind {
	if s.value == nil {
		return 0
	}
	return s.value.kind()
}

// Mandatory reports whether the switch must appear.
func (s Switch) Mandatory() bool { return s.mandatory }

// TakesValue reports whether the switch consumes the following token.
func (s Switch) TakesValue() bool { return s.value != nil && s.value.takesValue() }

// Accepted lists the permitted values of an enum switch.
func (s Switch) Accepted() []string {
	if s.value == nil {
		return nil
	}
	return s.value.accepted()
}

// Names joins the declared names for messages, e.g. "-d/-dec".
func (s Switch) Names() string {
	switch {
	case s.Short != "" && s.Long != "":
		return s.Short + "/" + s.Long
	case s.Short != "":
		return s.Short
	default:
		return s.Long
	}
}

func (s Switch) matches(token string) bool {
	return token != "" && (token == s.Short || token == s.Long)
}

// Flag declares a switch without a value; dst is set when it appears and
// cleared otherwise.
func Flag(short, long string, dst *bool, help string) Switch {
	return Switch{Short: short, Long: long, Help: help, present: dst, value: flagValue{}}
}

type flagValue struct{}

func (flagValue) kind() ValueKind              { return KindFlag }
func (flagValue) takesValue() bool             { return false }
func (flagValue) apply(string) (func(), error) { return func() {}, nil }
func (flagValue) accepted() []string           { return nil }
func (flagValue) validate() error              { return nil }

// FlagValue declares a switch without a value that writes def into dst when it appears.
func FlagValue(short, long string, dst *uint64, def uint64, help string) Switch {
	return Switch{Short: short, Long: long, Help: help, value: flagDefaultValue{dst: dst, def: def}}
}

type flagDefaultValue struct {
	dst *uint64
	def uint64
}

func (flagDefaultValue) kind() ValueKind    { return KindFlagWithDefault }
func (flagDefaultValue) takesValue() bool   { return false }
func (flagDefaultValue) accepted() []string { return nil }

func (v flagDefaultValue) apply(string) (func(), error) {
	return func() { *v.dst = v.def }, nil
}

func (v flagDefaultValue) validate() error {
	if v.dst == nil {
		return errors.New("flag with default has no destination")
	}
	return nil
}

// Default returns the constant written by a [FlagValue] switch.
func (s Switch) Default() (uint64, bool) {
	if v, ok := s.value.(flagDefaultValue); ok {
		return v.def, true
	}
	return 0, false
}

// Enum declares a switch whose value is one of the names in table.
func Enum[T ~int](short, long string, dst *T, table *EnumTable[T], help string) Switch {
	return Switch{Short: short, Long: long, Help: help, value: enumValue[T]{dst: dst, table: table}}
}

type enumValue[T ~int] struct {
	dst   *T
	table *EnumTable[T]
}

func (enumValue[T]) kind() ValueKind  { return KindEnum }
func (enumValue[T]) takesValue() bool { return true }

func (v enumValue[T]) apply(token string) (func(), error) {
	val, err := ParseEnum(token, v.table)
	if err != nil {
		return nil, err
	}
	return func() { *v.dst = val }, nil
}

func (v enumValue[T]) accepted() []string {
	if v.table == nil {
		return nil
	}
	return v.table.Names()
}

func (v enumValue[T]) validate() error {
	if v.dst == nil {
		return errors.New("enum switch has no destination")
	}
	if v.table == nil || v.table.Len() == 0 {
		return errors.New("enum switch has no values")
	}
	return nil
}

// Dec8 declares a switch taking a decimal value in 0-255.
func Dec8(short, long string, dst *uint8, help string) Switch {
	return Switch{Short: short, Long: long, Help: help, value: dec8Value{dst: dst}}
}

type dec8Value struct{ dst *uint8 }

func (dec8Value) kind() ValueKind    { return KindDecimal8 }
func (dec8Value) takesValue() bool   { return true }
func (dec8Value) accepted() []string { return nil }

func (v dec8Value) apply(token string) (func(), error) {
	val, err := ParseDecimal8(token)
	if err != nil {
		return nil, err
	}
	return func() { *v.dst = val }, nil
}

func (v dec8Value) validate() error {
	if v.dst == nil {
		return errors.New("decimal switch has no destination")
	}
	return nil
}

// Hex declares a switch taking a hexadecimal value.
func Hex(short, long string, dst *uint64, help string) Switch {
	return Switch{Short: short, Long: long, Help: help, value: hexValue{dst: dst}}
}

type hexValue struct{ dst *uint64 }

func (hexValue) kind() ValueKind    { return KindHex }
func (hexValue) takesValue() bool   { return true }
func (hexValue) accepted() []string { return nil }

func (v hexValue) apply(token string) (func(), error) {
	val, err := ParseHex(token)
	if err != nil {
		return nil, err
	}
	return func() { *v.dst = val }, nil
}

func (v hexValue) validate() error {
	if v.dst == nil {
		return errors.New("hex switch has no destination")
	}
	return nil
}

// Int16 declares a switch taking a signed 16-bit decimal value.
func Int16(short, long string, dst *int16, help string) Switch {
	return Switch{Short: short, Long: long, Help: help, value: int16Value{dst: dst}}
}

type int16Value struct{ dst *int16 }

func (int16Value) kind() ValueKind    { return KindInt16 }
func (int16Value) takesValue() bool   { return true }
func (int16Value) accepted() []string { return nil }

func (v int16Value) apply(token string) (func(), error) {
	val, err := ParseInt16(token)
	if err != nil {
		return nil, err
	}
	return func() { *v.dst = val }, nil
}

func (v int16Value) validate() error {
	if v.dst == nil {
		return errors.New("integer switch has no destination")
	}
	return nil
}

// String declares a switch taking a text value of at most capacity-1 characters.
func String(short, long string, dst *string, capacity int, help string) Switch {
	return Switch{Short: short, Long: long, Help: help, value: stringValue{dst: dst, capacity: capacity}}
}

type stringValue struct {
	dst      *string
	capacity int
}

func (stringValue) kind() ValueKind    { return KindString }
func (stringValue) takesValue() bool   { return true }
func (stringValue) accepted() []string { return nil }

func (v stringValue) apply(token string) (func(), error) {
	val, err := ParseString(token, v.capacity)
	if err != nil {
		return nil, err
	}
	return func() { *v.dst = val }, nil
}

func (v stringValue) validate() error {
	if v.dst == nil {
		return errors.New("string switch has no destination")
	}
	if v.capacity < 2 {
		return fmt.Errorf("string switch has capacity %d", v.capacity)
	}
	return nil
}

// SwitchTag returns the metavariable shown after a value-bearing switch.
func SwitchTag(s Switch) string {
	if !s.TakesValue() {
		return ""
	}
	if tag, _ := splitHelp(s.Help); tag != "" {
		return tag
	}
	switch s.Kind() {
	case KindEnum:
		return "[val]"
	case KindString:
		return "[str]"
	default:
		return "[num]"
	}
}

func isSwitchToken(token string) bool {
	return len(token) > len(SwitchPrefix) && strings.HasPrefix(token, SwitchPrefix)
}

func isHelpToken(token string) bool {
	for _, h := range helpSwitches {
		if token == h {
			return true
		}
	}
	return false
}

// helpSwitches are reserved and recognized only as the first token.
var helpSwitches = [...]string{"-h", "-?"}

// validateSwitches checks names and destinations once per parse.
func validateSwitches(switches []Switch) error {
	seen := make(map[string]int)
	for i, s := range switches {
		if s.value == nil {
			return tableError("switch %d was not built with a kind constructor", i)
		}
		if s.Short == "" && s.Long == "" {
			return tableError("switch %d has no name", i)
		}
		for _, name := range []string{s.Short, s.Long} {
			if name == "" {
				continue
			}
			if !isSwitchToken(name) {
				return tableError("switch name %q must start with %q", name, SwitchPrefix)
			}
			if isHelpToken(name) {
				return tableError("switch name %q is reserved for help", name)
			}
			if j, dup := seen[name]; dup {
				return tableError("switch name %q declared by switches %d and %d", name, j, i)
			}
			seen[name] = i
		}
		if s.value.kind() == KindFlag && s.present == nil {
			return tableError("flag %s has no destination", s.Names())
		}
		if err := s.value.validate(); err != nil {
			return tableError("%s: %v", s.Names(), err)
		}
	}
	return nil
}

// switchMatcher tracks which switches have been seen during one scan.
type switchMatcher struct {
	switches []Switch
	seen     []bool
}

func newSwitchMatcher(switches []Switch) *switchMatcher {
	return &switchMatcher{switches: switches, seen: make([]bool, len(switches))}
}

// match returns the index of the switch named by token, or -1.
func (m *switchMatcher) match(token string) int {
	for i := range m.switches {
		if m.switches[i].matches(token) {
			return i
		}
	}
	return -1
}

// missingMandatory returns the first mandatory switch that was never seen.
func (m *switchMatcher) missingMandatory() (Switch, bool) {
	for i, s := range m.switches {
		if s.mandatory && !m.seen[i] {
			return s, true
		}
	}
	return Switch{}, false
}

// commitPresence writes every presence destination; absent switches read false.
func (m *switchMatcher) commitPresence() {
	for i, s := range m.switches {
		if s.present != nil {
			*s.present = m.seen[i]
		}
	}
}

// describeDefault renders a FlagValue constant for help text.
func describeDefault(s Switch) string {
	if def, ok := s.Default(); ok {
		return strconv.FormatUint(def, 10)
	}
	return ""
}

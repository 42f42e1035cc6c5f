package cmdline

import "strings"

// ParamKind is the value type of a positional slot.
type ParamKind int

const (
	// ParamString stores the token text, bounded by a capacity.
	ParamString ParamKind = iota + 1
	// ParamHex8 stores a hexadecimal byte.
	ParamHex8
	// ParamDecimal stores an unsigned decimal number.
	ParamDecimal
)

func (k ParamKind) String() string {
	switch k {
	case ParamString:
		return "string"
	case ParamHex8:
		return "hex8"
	case ParamDecimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// Param is one positional slot of a parameter table. The concrete variants
// are created by [StringParam], [Hex8Param] and [DecimalParam].
type Param interface {
	// Kind reports the slot's value type.
	Kind() ParamKind
	// Help returns the raw help fragment, "[tag]description".
	Help() string

	claim(token string) (commit func(), err error)
	validate() error
}

type stringParam struct {
	dst      *string
	capacity int
	help     string
}

// StringParam declares a text slot holding at most capacity-1 characters.
func StringParam(dst *string, capacity int, help string) Param {
	return &stringParam{dst: dst, capacity: capacity, help: help}
}

func (p *stringParam) Kind() ParamKind { return ParamString }
func (p *stringParam) Help() string    { return p.help }

func (p *stringParam) claim(token string) (func(), error) {
	v, err := ParseString(token, p.capacity)
	if err != nil {
		return nil, err
	}
	return func() { *p.dst = v }, nil
}

func (p *stringParam) validate() error {
	if p.dst == nil {
		return tableError("string parameter %q has no destination", p.help)
	}
	if p.capacity < 2 {
		return tableError("string parameter %q has capacity %d", p.help, p.capacity)
	}
	return nil
}

type hex8Param struct {
	dst  *uint8
	help string
}

// Hex8Param declares a slot holding one hexadecimal byte.
func Hex8Param(dst *uint8, help string) Param {
	return &hex8Param{dst: dst, help: help}
}

func (p *hex8Param) Kind() ParamKind { return ParamHex8 }
func (p *hex8Param) Help() string    { return p.help }

func (p *hex8Param) claim(token string) (func(), error) {
	v, err := ParseHex8(token)
	if err != nil {
		return nil, err
	}
	return func() { *p.dst = v }, nil
}

func (p *hex8Param) validate() error {
	if p.dst == nil {
		return tableError("hex parameter %q has no destination", p.help)
	}
	return nil
}

type decimalParam struct {
	dst  *uint64
	help string
}

// DecimalParam declares a slot holding an unsigned decimal number.
func DecimalParam(dst *uint64, help string) Param {
	return &decimalParam{dst: dst, help: help}
}

func (p *decimalParam) Kind() ParamKind { return ParamDecimal }
func (p *decimalParam) Help() string    { return p.help }

func (p *decimalParam) claim(token string) (func(), error) {
	v, err := ParseDecimal(token)
	if err != nil {
		return nil, err
	}
	return func() { *p.dst = v }, nil
}

func (p *decimalParam) validate() error {
	if p.dst == nil {
		return tableError("decimal parameter %q has no destination", p.help)
	}
	return nil
}

// paramCursor walks the slots in declaration order.
type paramCursor struct {
	params []Param
	next   int
}

// claim offers token to the next free slot. ok is false when every slot is taken.
func (c *paramCursor) claim(token string) (commit func(), ok bool, err error) {
	if c.next >= len(c.params) {
		return nil, false, nil
	}
	p := c.params[c.next]
	commit, err = p.claim(token)
	if err != nil {
		return nil, true, annotate(err, ParamTag(p))
	}
	c.next++
	return commit, true, nil
}

// ParamTag returns the metavariable shown for a slot, such as "[str]".
func ParamTag(p Param) string {
	if tag, _ := splitHelp(p.Help()); tag != "" {
		return tag
	}
	switch p.Kind() {
	case ParamHex8:
		return "[hex]"
	case ParamDecimal:
		return "[num]"
	default:
		return "[str]"
	}
}

// splitHelp separates a leading "[tag]" from the free text of a help fragment.
func splitHelp(help string) (tag, text string) {
	if strings.HasPrefix(help, "[") {
		if end := strings.IndexByte(help, ']'); end > 0 {
			return help[:end+1], strings.TrimSpace(help[end+1:])
		}
	}
	return "", strings.TrimSpace(help)
}

// annotate attaches the switch or parameter name to a converter error.
func annotate(err error, name string) error {
	if pe, ok := err.(*Error); ok {
		pe.Name = name
		return pe
	}
	return err
}

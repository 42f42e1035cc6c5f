package schema

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"cmdline/pkg/cmdline"
)

// Result is one bound destination after a parse.
type Result struct {
	Name    string
	Kind    string
	Present bool
	Value   string
}

// Binding is a Command whose destinations are owned by the schema package.
type Binding struct {
	Command *cmdline.Command
	Outcome cmdline.Outcome

	params   []boundValue
	switches []boundValue
}

type boundValue struct {
	name    string
	kind    string
	present *bool
	render  func() string
}

const defaultCapacity = 128

// Bind builds the tables described by d.
func (d *Document) Bind() (*Binding, error) {
	enums, err := d.enumTables()
	if err != nil {
		return nil, err
	}

	b := &Binding{Command: &cmdline.Command{
		Name:        d.Name,
		Description: d.Description,
		MinParams:   d.MinParams,
	}}
	if d.IgnoreExtra {
		b.Command.Options |= cmdline.IgnoreExtraParams
	}

	for i, spec := range d.Params {
		p, bv, err := bindParam(spec)
		if err != nil {
			return nil, fmt.Errorf("params[%d]: %w", i, err)
		}
		b.Command.Params = append(b.Command.Params, p)
		b.params = append(b.params, bv)
	}
	for i, spec := range d.Switches {
		s, bv, err := bindSwitch(spec, enums)
		if err != nil {
			return nil, fmt.Errorf("switches[%d]: %w", i, err)
		}
		b.Command.Switches = append(b.Command.Switches, s)
		b.switches = append(b.switches, bv)
	}
	if err := b.Command.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func bindParam(spec ParamSpec) (cmdline.Param, boundValue, error) {
	bv := boundValue{name: spec.Name, kind: spec.Kind}
	if bv.name == "" {
		bv.name = spec.Help
	}
	switch spec.Kind {
	case "", "string":
		bv.kind = "string"
		v := spec.Initial
		bv.render = func() string { return strconv.Quote(v) }
		return cmdline.StringParam(&v, capacityOr(spec.Capacity), spec.Help), bv, nil
	case "hex8":
		var v uint8
		bv.render = func() string { return fmt.Sprintf("%d, 0x%02x", v, v) }
		return cmdline.Hex8Param(&v, spec.Help), bv, nil
	case "decimal":
		var v uint64
		bv.render = func() string { return fmt.Sprintf("%d, 0x%02x", v, v) }
		return cmdline.DecimalParam(&v, spec.Help), bv, nil
	default:
		return nil, bv, fmt.Errorf("unknown parameter kind %q", spec.Kind)
	}
}

func bindSwitch(spec SwitchSpec, enums map[string]*cmdline.EnumTable[int]) (cmdline.Switch, boundValue, error) {
	present := new(bool)
	bv := boundValue{name: spec.Long, kind: spec.Kind, present: present}
	if bv.name == "" {
		bv.name = spec.Short
	}

	var s cmdline.Switch
	switch spec.Kind {
	case "flag":
		s = cmdline.Flag(spec.Short, spec.Long, present, spec.Help)
		bv.render = func() string { return strconv.FormatBool(*present) }
	case "flagval":
		var v uint64
		s = cmdline.FlagValue(spec.Short, spec.Long, &v, spec.Default, spec.Help)
		bv.render = func() string { return strconv.FormatUint(v, 10) }
	case "enum":
		table, ok := enums[spec.Enum]
		if !ok {
			return s, bv, fmt.Errorf("switch %s refers to undeclared enum %q", bv.name, spec.Enum)
		}
		var v int
		s = cmdline.Enum(spec.Short, spec.Long, &v, table, spec.Help)
		bv.render = func() string {
			name, _ := table.Name(v)
			return fmt.Sprintf("%d (%s)", v, name)
		}
	case "dec8":
		var v uint8
		s = cmdline.Dec8(spec.Short, spec.Long, &v, spec.Help)
		bv.render = func() string { return strconv.FormatUint(uint64(v), 10) }
	case "hex":
		var v uint64
		s = cmdline.Hex(spec.Short, spec.Long, &v, spec.Help)
		bv.render = func() string { return fmt.Sprintf("%d, 0x%02x", v, v) }
	case "int16":
		var v int16
		s = cmdline.Int16(spec.Short, spec.Long, &v, spec.Help)
		bv.render = func() string { return strconv.FormatInt(int64(v), 10) }
	case "string":
		var v string
		s = cmdline.String(spec.Short, spec.Long, &v, capacityOr(spec.Capacity), spec.Help)
		bv.render = func() string { return strconv.Quote(v) }
	default:
		return s, bv, fmt.Errorf("unknown switch kind %q", spec.Kind)
	}

	if spec.Kind != "flag" {
		s = s.WithPresence(present)
	}
	if spec.Mandatory {
		s = s.Required()
	}
	return s, bv, nil
}

func capacityOr(capacity int) int {
	if capacity == 0 {
		return defaultCapacity
	}
	return capacity
}

// Parse runs the bound command over args.
func (b *Binding) Parse(args []string) error {
	outcome, err := b.Command.Parse(args)
	b.Outcome = outcome
	return err
}

// ParseLine tokenizes line and runs the bound command over the tokens.
func (b *Binding) ParseLine(line string) error {
	outcome, err := b.Command.ParseLine(line)
	b.Outcome = outcome
	return err
}

// Results lists every destination in declaration order: the positional slots,
// then the switches. A slot counts as present when it was filled.
func (b *Binding) Results() []Result {
	results := make([]Result, 0, len(b.params)+len(b.switches))
	for i, bv := range b.params {
		results = append(results, Result{
			Name:    bv.name,
			Kind:    bv.kind,
			Present: i < b.Outcome.ParamCount,
			Value:   bv.render(),
		})
	}
	for _, bv := range b.switches {
		results = append(results, Result{Name: bv.name, Kind: bv.kind, Present: *bv.present, Value: bv.render()})
	}
	return results
}

// WriteResults prints the results table, marking present entries with '*'.
func (b *Binding) WriteResults(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Parameters (%d):\n", b.Outcome.ParamCount)
	results := b.Results()
	for i, r := range results {
		if i == len(b.params) {
			fmt.Fprint(tw, "Switches:\n")
		}
		mark := ' '
		if r.Present {
			mark = '*'
		}
		fmt.Fprintf(tw, "%c %s\t%s\t%s\n", mark, r.Name, r.Kind, r.Value)
	}
	return tw.Flush()
}

package cmdline

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Help renders usage text from the tables. It has no side effects.
func (c *Command) Help() string {
	var b strings.Builder
	_ = c.WriteHelp(&b)
	return b.String()
}

// WriteHelp writes usage text to w: the usage line, the description, the
// positional slots in declared order and then every switch.
func (c *Command) WriteHelp(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Usage: %s\n", c.usageLine()); err != nil {
		return err
	}
	if c.Description != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", c.Description); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	if len(c.Params) > 0 {
		fmt.Fprint(tw, "\nParameters:\n")
		for _, p := range c.Params {
			_, text := splitHelp(p.Help())
			fmt.Fprintf(tw, "  %s\t%s\n", ParamTag(p), text)
		}
	}

	fmt.Fprint(tw, "\nSwitches:\n")
	for _, s := range c.Switches {
		_, text := splitHelp(s.Help)
		if s.mandatory {
			text += " (mandatory)"
		}
		if def := describeDefault(s); def != "" {
			text += fmt.Sprintf(" (sets %s)", def)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", switchForms(s, ", "), text)
		if accepted := s.Accepted(); len(accepted) > 0 {
			fmt.Fprintf(tw, "  \tvalues: %s\n", strings.Join(accepted, ", "))
		}
	}
	fmt.Fprintf(tw, "  %s\t%s\n", strings.Join(helpSwitches[:], ", "), "display this help")

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// switchForms renders the declared names joined by sep, followed by the
// metavariable: "-c, -colour [val]".
func switchForms(s Switch, sep string) string {
	var names []string
	if s.Short != "" {
		names = append(names, s.Short)
	}
	if s.Long != "" {
		names = append(names, s.Long)
	}
	forms := strings.Join(names, sep)
	if tag := SwitchTag(s); tag != "" {
		forms += " " + tag
	}
	return forms
}

func (c *Command) usageLine() string {
	parts := []string{c.Name}
	for _, p := range c.Params {
		parts = append(parts, ParamTag(p))
	}
	for _, s := range c.Switches {
		form := switchForms(s, "|")
		if !s.mandatory {
			form = "[" + form + "]"
		}
		parts = append(parts, form)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

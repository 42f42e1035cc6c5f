// Package cmdline parses one flat command line against declarative tables of
// positional parameters and named switches.
//
// Callers own every destination. Tables only hold pointers to them, and the
// engine writes through those pointers once a parse has fully succeeded; an
// aborted parse leaves them untouched.
package cmdline

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"cmdline/internal/logger"
	"cmdline/internal/output"
)

// Status is the terminal state of a parse.
type Status int

const (
	// Success means every token was accepted and destinations were written.
	Success Status = iota
	// Aborted means the caller should not continue normal execution.
	Aborted
)

func (s Status) String() string {
	if s == Success {
		return "Success"
	}
	return "Aborted"
}

// Outcome is returned by every parse.
type Outcome struct {
	Status     Status
	ParamCount int // positional slots filled, valid on Success
}

// Options tune dispatcher behaviour.
type Options uint

// NoOpt makes surplus positional tokens fatal.
const NoOpt Options = 0

const (
	// IgnoreExtraParams drops positional tokens beyond the declared slots.
	IgnoreExtraParams Options = 1 << iota
	// Quiet suppresses error and help text on the console.
	Quiet
)

// Command bundles the tables and help text for one program.
type Command struct {
	Name        string
	Description string
	Params      []Param
	Switches    []Switch
	Options     Options

	// MinParams, when positive, aborts a scan that filled fewer slots.
	MinParams int

	// Out receives error and help text; nil means standard output.
	Out io.Writer
	// Styles renders error text; nil means plain text.
	Styles output.StyleProvider
}

// Parse is the table-driven entry point: it builds a [Command] writing to
// standard output and parses args with it.
func Parse(params []Param, switches []Switch, name, description string, opts Options, args []string) (Outcome, error) {
	c := &Command{
		Name:        name,
		Description: description,
		Params:      params,
		Switches:    switches,
		Options:     opts,
	}
	return c.Parse(args)
}

// ParseLine tokenizes a raw command line and parses the tokens.
func (c *Command) ParseLine(line string) (Outcome, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		c.report(err)
		return Outcome{Status: Aborted}, err
	}
	return c.Parse(tokens)
}

// Parse validates and converts args, which must not include the program name.
//
// On Success the returned error is nil. A help request returns Aborted with
// [ErrHelp]; any other abort returns an [*Error] after printing its message
// followed by the help text.
func (c *Command) Parse(args []string) (Outcome, error) {
	l := logger.NewStyledLogger("cmdline")

	if err := c.Validate(); err != nil {
		l.Error("Rejected table declaration", "command", c.Name, "error", err)
		return Outcome{Status: Aborted}, err
	}

	if len(args) > 0 && isHelpToken(args[0]) {
		l.Debug("Help requested", "token", args[0], "state", "HelpRequested")
		c.printer().Print(c.Help())
		return Outcome{Status: Aborted}, ErrHelp
	}

	s := &scan{
		params:   paramCursor{params: c.Params},
		switches: newSwitchMatcher(c.Switches),
		opts:     c.Options,
		log:      l,
	}
	if err := s.run(args); err != nil {
		l.Debug("Parse aborted", "state", "Aborted", "error", err)
		c.report(err)
		return Outcome{Status: Aborted}, err
	}
	if c.MinParams > 0 && s.filled < c.MinParams {
		err := &Error{
			Kind:  KindMissingParameter,
			Name:  c.missingTag(s.filled),
			Bound: strconv.Itoa(c.MinParams),
		}
		c.report(err)
		return Outcome{Status: Aborted}, err
	}

	s.commit()
	l.Debug("Parse complete", "state", "Success", "params", s.filled)
	return Outcome{Status: Success, ParamCount: s.filled}, nil
}

// Validate checks the tables for declaration mistakes.
func (c *Command) Validate() error {
	for i, p := range c.Params {
		if p == nil {
			return tableError("parameter %d is nil", i)
		}
		if err := p.validate(); err != nil {
			return err
		}
	}
	if c.MinParams > len(c.Params) {
		return tableError("MinParams %d exceeds %d declared parameters", c.MinParams, len(c.Params))
	}
	return validateSwitches(c.Switches)
}

func (c *Command) missingTag(filled int) string {
	if filled < len(c.Params) {
		return ParamTag(c.Params[filled])
	}
	return ""
}

// printer writes to Out, styled when Styles is set and silent under Quiet.
func (c *Command) printer() *output.Printer {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	opts := []output.Option{output.WithWriter(out), output.PlainText()}
	if c.Styles != nil {
		opts = []output.Option{output.WithWriter(out), output.WithStyles(c.Styles), output.WithMode(output.ModeStyled)}
	}
	if c.Options&Quiet != 0 {
		opts = append(opts, output.Silent())
	}
	return output.NewPrinter(opts...)
}

// report prints an abort message followed by the help text.
func (c *Command) report(err error) {
	p := c.printer()
	p.Error(err.Error())
	p.Print(c.Help())
}

// scan is the per-call dispatcher state. Writes are staged as closures and run
// by commit only after the whole token stream was accepted.
type scan struct {
	params   paramCursor
	switches *switchMatcher
	opts     Options
	log      *log.Logger

	staged []func()
	filled int
}

func (s *scan) run(args []string) error {
	for i := 0; i < len(args); i++ {
		token := args[i]

		if idx := s.switches.match(token); idx >= 0 {
			sw := s.switches.switches[idx]
			var value string
			if sw.TakesValue() {
				if i+1 >= len(args) {
					return &Error{Kind: KindMissingSwitchValue, Name: sw.Names()}
				}
				i++
				value = args[i]
			}
			commit, err := sw.value.apply(value)
			if err != nil {
				return annotate(err, sw.Names())
			}
			s.log.Debug("Switch matched", "state", "SwitchMatch", "switch", sw.Names(), "token", value)
			s.staged = append(s.staged, commit)
			s.switches.seen[idx] = true
			continue
		}

		if isSwitchToken(token) {
			return &Error{Kind: KindUnknownSwitch, Token: token}
		}

		commit, claimed, err := s.params.claim(token)
		if err != nil {
			return err
		}
		if !claimed {
			if s.opts&IgnoreExtraParams != 0 {
				s.log.Debug("Ignored surplus argument", "token", token)
				continue
			}
			return &Error{Kind: KindUnexpectedArgument, Token: token}
		}
		s.log.Debug("Parameter claimed", "state", "PositionalClaim", "slot", s.filled, "token", token)
		s.staged = append(s.staged, commit)
		s.filled++
	}

	if sw, missing := s.switches.missingMandatory(); missing {
		return &Error{Kind: KindMissingMandatorySwitch, Name: sw.Names()}
	}
	return nil
}

func (s *scan) commit() {
	for _, f := range s.staged {
		f()
	}
	s.switches.commitPresence()
}

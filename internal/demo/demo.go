// Package demo declares the sample cmdline tables and runs the interactive
// checks they drive: the line listing with abort polling, the typed input
// prompts and the key press test.
package demo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cmdline/internal/logger"
	"cmdline/internal/output"
	"cmdline/pkg/cmdline"
	"cmdline/pkg/console"
)

// Program identity shown in help text.
const (
	ProgramName = "CmdLine"
	Description = "Application to test command line parser"
)

const (
	stringCapacity = 20
	inputCapacity  = 128
	separator      = "========================================"
)

// Colour is the value of the -colour switch.
type Colour int

// Colours accepted by -colour.
const (
	ColourBlack Colour = iota
	ColourRed
	ColourGreen
	ColourBlue
	ColourWhite
)

// InputType selects the prompt run by -input.
type InputType int

// Prompt kinds accepted by -input.
const (
	InputString InputType = iota
	InputDecimal
	InputHex
	InputInteger
)

// Colours maps -colour values to their names.
var Colours = cmdline.MustEnumTable(
	cmdline.EnumEntry[Colour]{Value: ColourBlack, Name: "black"},
	cmdline.EnumEntry[Colour]{Value: ColourRed, Name: "red"},
	cmdline.EnumEntry[Colour]{Value: ColourGreen, Name: "green"},
	cmdline.EnumEntry[Colour]{Value: ColourBlue, Name: "blue"},
	cmdline.EnumEntry[Colour]{Value: ColourWhite, Name: "white"},
)

// InputTypes maps -input values to their names.
var InputTypes = cmdline.MustEnumTable(
	cmdline.EnumEntry[InputType]{Value: InputString, Name: "str"},
	cmdline.EnumEntry[InputType]{Value: InputDecimal, Name: "dec"},
	cmdline.EnumEntry[InputType]{Value: InputHex, Name: "hex"},
	cmdline.EnumEntry[InputType]{Value: InputInteger, Name: "int"},
)

// State holds every destination written by the demo tables, plus the results
// of the interactive checks.
type State struct {
	Param1 string
	Param2 uint8
	Param3 uint64

	Flag        bool
	Flag2       uint64
	Colour      Colour
	DecValue    uint8
	HexValue    uint64
	IntValue    int16
	StringValue string
	Lines       int16
	Input       InputType
	KeyList     string

	ColourPresent bool
	DecPresent    bool
	HexPresent    bool
	IntPresent    bool
	StringPresent bool
	LinesPresent  bool
	InputPresent  bool
	KeyPresent    bool

	Outcome cmdline.Outcome

	// LinesShown counts the lines printed before the listing ended or was aborted.
	LinesShown  int
	InputText   string
	InputNumber uint64
	InputErr    error
	Key         rune
	KeyErr      error
}

// NewState returns destinations holding their initial values.
func NewState() *State {
	return &State{
		Param1:      "default string",
		StringValue: "not initialised",
	}
}

// Command declares the demo tables over s. At least one parameter is required.
func (s *State) Command() *cmdline.Command {
	return &cmdline.Command{
		Name:        ProgramName,
		Description: Description,
		MinParams:   1,
		Params: []cmdline.Param{
			cmdline.StringParam(&s.Param1, stringCapacity, "[str]string parameter"),
			cmdline.Hex8Param(&s.Param2, "[num1]hexidecimal parameter"),
			cmdline.DecimalParam(&s.Param3, "[num2]decimal parameter"),
		},
		Switches: []cmdline.Switch{
			cmdline.Flag("-f", "", &s.Flag, "boolean flag"),
			cmdline.FlagValue("", "-flag2", &s.Flag2, 12345678, "flag with default value assigned"),
			cmdline.Enum("-c", "-colour", &s.Colour, Colours, "[val]named option").WithPresence(&s.ColourPresent),
			cmdline.Dec8("-d", "-dec", &s.DecValue, "[num]decimal value (0-255)").Required().WithPresence(&s.DecPresent),
			cmdline.Hex("-x", "-hex", &s.HexValue, "[num]hexidecimal value").WithPresence(&s.HexPresent),
			cmdline.Int16("-i", "", &s.IntValue, "[num]integer value").WithPresence(&s.IntPresent),
			cmdline.String("-s", "-string", &s.StringValue, stringCapacity, "[str]string value").WithPresence(&s.StringPresent),
			cmdline.Int16("-l", "-lines", &s.Lines, "[num]display 'num' lines - test break/abort").WithPresence(&s.LinesPresent),
			cmdline.Enum("", "-input", &s.Input, InputTypes, "[type]test User input").WithPresence(&s.InputPresent),
			cmdline.String("", "-key", &s.KeyList, stringCapacity, "[keylist]test key press").WithPresence(&s.KeyPresent),
		},
	}
}

// Runner parses one command line with the demo tables and runs the checks it
// selects on Console.
type Runner struct {
	Console *console.Console
	// Styles colours parser errors; nil means plain text.
	Styles output.StyleProvider
}

// Run parses args, runs the selected checks and prints the status dump.
// Parse failures return the parser error and print no dump.
func (r *Runner) Run(ctx context.Context, args []string) (*State, error) {
	l := logger.NewStyledLogger("demo")
	s := NewState()

	cmd := s.Command()
	cmd.Out = r.Console.Printer().Writer()
	cmd.Styles = r.Styles

	outcome, err := cmd.Parse(args)
	s.Outcome = outcome
	if err != nil {
		l.Debug("Parse did not succeed", "state", outcome.Status, "error", err)
		return s, err
	}

	if s.LinesPresent {
		r.showLines(s)
	}
	if s.InputPresent {
		r.readInput(s)
	}
	if s.KeyPresent {
		r.waitKey(ctx, s)
	}
	l.Debug("Checks complete", "lines", s.LinesShown, "input", s.InputErr, "key", s.KeyErr)

	r.writeStatus(s)
	return s, nil
}

// ExitCode maps a Run error to a process status. A help request is not a failure.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, cmdline.ErrHelp) {
		return 0
	}
	return 1
}

func (r *Runner) showLines(s *State) {
	for i := 0; i < int(s.Lines); i++ {
		r.Console.Printer().Printf("Line %d\n", i)
		s.LinesShown++
		if r.Console.CheckProgAbort() {
			break
		}
	}
}

func (r *Runner) readInput(s *State) {
	c := r.Console
	switch s.Input {
	case InputString:
		s.InputText, s.InputErr = c.StringInput("Enter string: ", inputCapacity)
	case InputDecimal:
		s.InputNumber, s.InputErr = c.DecimalInput("Enter decimal number: ")
	case InputHex:
		s.InputNumber, s.InputErr = c.HexInput("Enter hexidecimal number: ")
	case InputInteger:
		var v int64
		v, s.InputErr = c.IntegerInput("Enter integer number: ")
		s.InputNumber = uint64(v)
	}
}

func (r *Runner) waitKey(ctx context.Context, s *State) {
	if s.KeyList == "" {
		s.Key, s.KeyErr = r.Console.WaitKeyPress(ctx, "Press any key", console.AnyKey())
		return
	}
	s.Key, s.KeyErr = r.Console.WaitKeyPress(ctx, "Press key in list", console.KeyList(s.KeyList, true))
}

// writeStatus prints every destination, marking the ones the command line set.
func (r *Runner) writeStatus(s *State) {
	p := r.Console.Printer()
	w := statusWriter{p: p}
	count := s.Outcome.ParamCount

	p.Println(separator)
	p.Bold(fmt.Sprintf("Parameters (%d):", count))
	p.Println("")
	w.param(count >= 1, "Param1", "'%s'", s.Param1)
	w.param(count >= 2, "Param2", "%d, 0x%02x", s.Param2, s.Param2)
	w.param(count >= 3, "Param3", "%d, 0x%02x", s.Param3, s.Param3)
	p.Bold("Options:")
	p.Println("")
	w.option(s.Flag, "Flag", "%t", s.Flag)
	w.option(s.Flag2 != 0, "Flag2", "%d", s.Flag2)
	w.option(s.ColourPresent, "Colour", "%s", enumName(Colours, s.Colour))
	w.option(s.DecPresent, "DecValue", "%d", s.DecValue)
	w.option(s.HexPresent, "HexValue", "%d, 0x%02x", s.HexValue, s.HexValue)
	w.option(s.IntPresent, "IntValue", "%d, 0x%04x", s.IntValue, uint16(s.IntValue))
	w.option(s.StringPresent, "StringValue", "'%s'", s.StringValue)
	w.option(s.LinesPresent, "Lines", "%d", s.Lines)
	w.option(s.InputPresent, "Input", "%s", enumName(InputTypes, s.Input))
	w.option(s.KeyPresent, "Key", "'%s'", s.KeyList)
	p.Success(fmt.Sprintf("Status        = %s", s.Outcome.Status))
	p.Println(separator)

	if !s.InputPresent && !s.KeyPresent {
		return
	}
	if s.InputPresent {
		if s.Input == InputString {
			w.result(s.InputErr, "String Input: '%s'", s.InputText)
		} else {
			w.result(s.InputErr, "Number Input: %s, 0x%02X", formatNumber(s), s.InputNumber)
		}
	}
	if s.KeyPresent {
		w.result(s.KeyErr, "Key Pressed: %d:%q", s.Key, s.Key)
	}
	p.Println(separator)
}

// statusWriter renders the rows of the status dump.
type statusWriter struct {
	p *output.Printer
}

func (w statusWriter) param(set bool, name, format string, args ...interface{}) {
	w.row(set, name, w.p.Highlight, format, args...)
}

func (w statusWriter) option(set bool, name, format string, args ...interface{}) {
	w.row(set, name, w.p.Switch, format, args...)
}

// row prints "* Name        = value" with the name padded to one column.
func (w statusWriter) row(set bool, name string, label func(string), format string, args ...interface{}) {
	w.p.Printf("%c ", mark(set))
	label(fmt.Sprintf("%-11s", name))
	w.p.Print(" = ")
	w.p.Value(fmt.Sprintf(format, args...))
	w.p.Println("")
}

// result prints the outcome of an interactive check.
func (w statusWriter) result(err error, format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...) + " - " + statusText(err)
	if err != nil {
		w.p.Warning(text)
		return
	}
	w.p.Success(text)
}

func mark(set bool) rune {
	if set {
		return '*'
	}
	return ' '
}

func enumName[T ~int](table *cmdline.EnumTable[T], v T) string {
	if name, ok := table.Name(v); ok {
		return name
	}
	return fmt.Sprint(int(v))
}

func formatNumber(s *State) string {
	if s.Input == InputInteger {
		return fmt.Sprint(int64(s.InputNumber))
	}
	return fmt.Sprint(s.InputNumber)
}

func statusText(err error) string {
	if err == nil {
		return "Success"
	}
	return strings.TrimSpace(err.Error())
}

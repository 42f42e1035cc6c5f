package cmdline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdline/internal/output"
)

// exampleTable is one String slot, a flag and a mandatory Decimal8 switch.
type exampleTable struct {
	text    string
	flag    bool
	dec     uint8
	decSeen bool
	cmd     *Command
	out     *output.CaptureBuffer
}

func newExampleTable(opts Options) *exampleTable {
	e := &exampleTable{text: "initial", out: output.NewCaptureBuffer()}
	e.cmd = &Command{
		Name:        "example",
		Description: "Example program",
		Params: []Param{
			StringParam(&e.text, 20, "[str]some text"),
		},
		Switches: []Switch{
			Flag("-f", "", &e.flag, "a flag"),
			Dec8("-d", "-dec", &e.dec, "[num]a decimal").Required().WithPresence(&e.decSeen),
		},
		Options: opts,
		Out:     e.out,
	}
	return e
}

func TestParseExamples(t *testing.T) {
	t.Run("positional and mandatory switch", func(t *testing.T) {
		e := newExampleTable(NoOpt)
		e.flag = true

		outcome, err := e.cmd.Parse([]string{"abc", "-d", "200"})

		require.NoError(t, err)
		assert.Equal(t, Outcome{Status: Success, ParamCount: 1}, outcome)
		assert.Equal(t, "abc", e.text)
		assert.Equal(t, uint8(200), e.dec)
		assert.True(t, e.decSeen)
		assert.False(t, e.flag, "absent flag must read false")
		assert.Empty(t, e.out.String())
	})

	t.Run("decimal out of range", func(t *testing.T) {
		e := newExampleTable(NoOpt)

		outcome, err := e.cmd.Parse([]string{"-d", "300"})

		assert.Equal(t, Aborted, outcome.Status)
		require.ErrorIs(t, err, ErrInvalidValue)
		var pe *Error
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "300", pe.Token)
		assert.Equal(t, "-d/-dec", pe.Name)
		assert.Equal(t, "0-255", pe.Bound)
		assert.Equal(t, "initial", e.text)
		assert.Contains(t, e.out.String(), "invalid value '300' for -d/-dec (valid range: 0-255)")
		assert.Contains(t, e.out.String(), "Usage: example")
	})

	t.Run("mandatory switch missing", func(t *testing.T) {
		e := newExampleTable(NoOpt)

		outcome, err := e.cmd.Parse([]string{"abc"})

		assert.Equal(t, Aborted, outcome.Status)
		require.ErrorIs(t, err, ErrMissingMandatorySwitch)
		assert.Contains(t, err.Error(), "-d/-dec")
		assert.Equal(t, "initial", e.text, "aborted parse must not write destinations")
	})
}

func TestParseUnknownSwitch(t *testing.T) {
	for _, token := range []string{"-z", "-flag", "-D", "--dec"} {
		t.Run(token, func(t *testing.T) {
			e := newExampleTable(NoOpt)

			outcome, err := e.cmd.Parse([]string{"-d", "1", token})

			assert.Equal(t, Aborted, outcome.Status)
			require.ErrorIs(t, err, ErrUnknownSwitch)
			assert.Equal(t, KindUnknownSwitch, KindOf(err))
			assert.Contains(t, err.Error(), "'"+token+"'")
			assert.Zero(t, e.dec)
		})
	}
}

func TestParseBareDashIsPositional(t *testing.T) {
	e := newExampleTable(NoOpt)

	outcome, err := e.cmd.Parse([]string{"-", "-d", "7"})

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.ParamCount)
	assert.Equal(t, "-", e.text)
}

func TestParseMissingSwitchValue(t *testing.T) {
	e := newExampleTable(NoOpt)

	_, err := e.cmd.Parse([]string{"abc", "-dec"})

	require.ErrorIs(t, err, ErrMissingSwitchValue)
	assert.Equal(t, "switch '-d/-dec' requires a value", err.Error())
}

func TestParseValueTokenIsNotRescanned(t *testing.T) {
	var s string
	var n uint8
	cmd := &Command{
		Name:     "t",
		Switches: []Switch{String("-s", "", &s, 10, ""), Dec8("-d", "", &n, "")},
		Out:      output.NewCaptureBuffer(),
	}

	_, err := cmd.Parse([]string{"-s", "-d", "-d", "5"})

	require.NoError(t, err)
	assert.Equal(t, "-d", s)
	assert.Equal(t, uint8(5), n)
}

func TestParseOverflow(t *testing.T) {
	t.Run("fatal by default", func(t *testing.T) {
		e := newExampleTable(NoOpt)

		outcome, err := e.cmd.Parse([]string{"abc", "def", "-d", "1"})

		assert.Equal(t, Aborted, outcome.Status)
		require.ErrorIs(t, err, ErrUnexpectedArgument)
		assert.Contains(t, err.Error(), "'def'")
		assert.Equal(t, "initial", e.text)
	})

	t.Run("ignored with IgnoreExtraParams", func(t *testing.T) {
		e := newExampleTable(IgnoreExtraParams)

		outcome, err := e.cmd.Parse([]string{"abc", "def", "ghi", "-d", "1"})

		require.NoError(t, err)
		assert.Equal(t, 1, outcome.ParamCount)
		assert.Equal(t, "abc", e.text)
	})
}

func TestParseFirstErrorStops(t *testing.T) {
	e := newExampleTable(NoOpt)

	_, err := e.cmd.Parse([]string{"-d", "999", "-zzz", "a", "b"})

	assert.Equal(t, KindInvalidValue, KindOf(err))
	assert.Equal(t, 1, strings.Count(e.out.String(), "✗ "), "exactly one error message")
}

func TestParseHelp(t *testing.T) {
	for _, token := range []string{"-h", "-?"} {
		t.Run(token, func(t *testing.T) {
			e := newExampleTable(NoOpt)

			outcome, err := e.cmd.Parse([]string{token, "abc", "-d", "1"})

			assert.Equal(t, Aborted, outcome.Status)
			require.ErrorIs(t, err, ErrHelp)
			assert.Equal(t, "initial", e.text)
			assert.Zero(t, e.dec)
			assert.Contains(t, e.out.String(), "Usage: example [str]")
			assert.NotContains(t, e.out.String(), "✗")
		})
	}

	t.Run("only as first token", func(t *testing.T) {
		e := newExampleTable(NoOpt)

		_, err := e.cmd.Parse([]string{"-d", "1", "-h"})

		require.ErrorIs(t, err, ErrUnknownSwitch)
	})

	t.Run("quiet", func(t *testing.T) {
		e := newExampleTable(Quiet)

		_, err := e.cmd.Parse([]string{"-h"})

		require.ErrorIs(t, err, ErrHelp)
		assert.Empty(t, e.out.String())
	})

	t.Run("quiet styled errors", func(t *testing.T) {
		e := newExampleTable(Quiet)
		e.cmd.Styles = output.NewMockStyleProvider()

		_, err := e.cmd.Parse([]string{"-z"})

		require.ErrorIs(t, err, ErrUnknownSwitch)
		assert.Empty(t, e.out.String())
	})
}

func TestParseIdempotent(t *testing.T) {
	args := []string{"hello", "-f", "-dec", "42"}

	first := newExampleTable(NoOpt)
	o1, err1 := first.cmd.Parse(args)
	second := newExampleTable(NoOpt)
	o2, err2 := second.cmd.Parse(args)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, o1, o2)
	assert.Equal(t, first.text, second.text)
	assert.Equal(t, first.flag, second.flag)
	assert.Equal(t, first.dec, second.dec)
	assert.Equal(t, first.decSeen, second.decSeen)

	// The same Command may be reused; no state survives between calls.
	o3, err3 := first.cmd.Parse(args)
	require.NoError(t, err3)
	assert.Equal(t, o1, o3)
}

func TestParseAllKinds(t *testing.T) {
	type colour int
	const (
		black colour = iota
		red
		blue colour = 7
	)
	colours := MustEnumTable(
		EnumEntry[colour]{black, "black"},
		EnumEntry[colour]{red, "red"},
		EnumEntry[colour]{blue, "blue"},
	)

	var (
		str    = "default"
		hex8   uint8
		num    uint64
		flag   bool
		flag2  uint64
		f2Seen bool
		col    colour
		colSet bool
		d8     uint8
		hx     uint64
		i16    int16
		s      string
		sSeen  bool
	)
	cmd := &Command{
		Name: "all",
		Params: []Param{
			StringParam(&str, 20, "[str]"),
			Hex8Param(&hex8, "[num1]"),
			DecimalParam(&num, "[num2]"),
		},
		Switches: []Switch{
			Flag("-f", "", &flag, "flag"),
			FlagValue("", "-flag2", &flag2, 12345678, "flag with value").WithPresence(&f2Seen),
			Enum("-c", "-colour", &col, colours, "[val]colour").WithPresence(&colSet),
			Dec8("-d", "-dec", &d8, "[num]dec"),
			Hex("-x", "-hex", &hx, "[num]hex"),
			Int16("-i", "", &i16, "[num]int"),
			String("-s", "-string", &s, 20, "[str]string").WithPresence(&sSeen),
		},
		Out: output.NewCaptureBuffer(),
	}

	outcome, err := cmd.Parse([]string{
		"text", "0xfe", "-flag2", "-colour", "BLUE", "1234",
		"-x", "0XdeadBEEF", "-i", "-32768", "-d", "255",
	})

	require.NoError(t, err)
	assert.Equal(t, Outcome{Status: Success, ParamCount: 3}, outcome)
	assert.Equal(t, "text", str)
	assert.Equal(t, uint8(0xfe), hex8)
	assert.Equal(t, uint64(1234), num)
	assert.False(t, flag)
	assert.Equal(t, uint64(12345678), flag2)
	assert.True(t, f2Seen)
	assert.Equal(t, blue, col)
	assert.True(t, colSet)
	assert.Equal(t, uint8(255), d8)
	assert.Equal(t, uint64(0xdeadbeef), hx)
	assert.Equal(t, int16(-32768), i16)
	assert.Empty(t, s)
	assert.False(t, sSeen)
}

func TestParseSlotsBeyondCountUntouched(t *testing.T) {
	a, b := "a-initial", "b-initial"
	cmd := &Command{
		Name:   "two",
		Params: []Param{StringParam(&a, 10, ""), StringParam(&b, 10, "")},
		Out:    output.NewCaptureBuffer(),
	}

	outcome, err := cmd.Parse([]string{"first"})

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.ParamCount)
	assert.Equal(t, "first", a)
	assert.Equal(t, "b-initial", b)
}

func TestParseAbortLeavesEverythingUntouched(t *testing.T) {
	e := newExampleTable(NoOpt)
	e.flag = true
	e.decSeen = true
	e.dec = 9

	_, err := e.cmd.Parse([]string{"abc", "-f", "-d", "12", "-d", "x"})

	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "initial", e.text)
	assert.True(t, e.flag)
	assert.True(t, e.decSeen)
	assert.Equal(t, uint8(9), e.dec)
}

func TestParseEnumError(t *testing.T) {
	type mode int
	var m mode
	modes := MustEnumTable(EnumEntry[mode]{0, "str"}, EnumEntry[mode]{1, "dec"})
	cmd := &Command{
		Name:     "enum",
		Switches: []Switch{Enum("", "-input", &m, modes, "")},
		Out:      output.NewCaptureBuffer(),
	}

	_, err := cmd.Parse([]string{"-input", "bin"})

	require.ErrorIs(t, err, ErrInvalidEnumValue)
	var pe *Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"str", "dec"}, pe.Accepted)
	assert.Equal(t, "invalid value 'bin' for -input. Valid values: str, dec", err.Error())
}

func TestParseStringTooLong(t *testing.T) {
	var s string
	cmd := &Command{
		Name:   "long",
		Params: []Param{StringParam(&s, 5, "[name]")},
		Out:    output.NewCaptureBuffer(),
	}

	_, err := cmd.Parse([]string{"abcde"})

	require.ErrorIs(t, err, ErrValueTooLong)
	assert.Equal(t, "value 'abcde' for [name] is too long (maximum 4 characters)", err.Error())

	outcome, err := cmd.Parse([]string{"abcd"})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.ParamCount)
	assert.Equal(t, "abcd", s)
}

func TestParseMinParams(t *testing.T) {
	var a, b string
	cmd := &Command{
		Name:      "min",
		Params:    []Param{StringParam(&a, 10, "[first]"), StringParam(&b, 10, "[second]")},
		MinParams: 2,
		Out:       output.NewCaptureBuffer(),
	}

	_, err := cmd.Parse([]string{"one"})
	require.ErrorIs(t, err, ErrMissingParameter)
	assert.Equal(t, "missing parameter [second] (at least 2 required)", err.Error())
	assert.Empty(t, a)

	outcome, err := cmd.Parse([]string{"one", "two"})
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.ParamCount)
}

func TestParseLine(t *testing.T) {
	t.Run("quoted positional", func(t *testing.T) {
		e := newExampleTable(NoOpt)

		outcome, err := e.cmd.ParseLine(`"hello world" -d 3`)

		require.NoError(t, err)
		assert.Equal(t, 1, outcome.ParamCount)
		assert.Equal(t, "hello world", e.text)
	})

	t.Run("quoted token is not re-split", func(t *testing.T) {
		e := newExampleTable(NoOpt)

		_, err := e.cmd.ParseLine(`'-d 3'`)

		require.ErrorIs(t, err, ErrUnknownSwitch)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		e := newExampleTable(NoOpt)

		outcome, err := e.cmd.ParseLine(`"abc -d 3`)

		assert.Equal(t, Aborted, outcome.Status)
		require.ErrorIs(t, err, ErrInvalidCommandLine)
		assert.Contains(t, e.out.String(), "invalid command line")
	})

	t.Run("blank line", func(t *testing.T) {
		e := newExampleTable(NoOpt)

		_, err := e.cmd.ParseLine("   ")

		require.ErrorIs(t, err, ErrMissingMandatorySwitch)
	})
}

func TestParseInvalidTables(t *testing.T) {
	var (
		b   bool
		n   uint8
		s   string
		col int
	)
	colours := MustEnumTable(EnumEntry[int]{0, "black"})

	tests := []struct {
		name     string
		params   []Param
		switches []Switch
		min      int
	}{
		{"duplicate name", nil, []Switch{Flag("-a", "", &b, ""), Dec8("-b", "-a", &n, "")}, 0},
		{"no names", nil, []Switch{Flag("", "", &b, "")}, 0},
		{"missing prefix", nil, []Switch{Flag("a", "", &b, "")}, 0},
		{"reserved help name", nil, []Switch{Flag("-h", "", &b, "")}, 0},
		{"reserved question name", nil, []Switch{Flag("", "-?", &b, "")}, 0},
		{"zero switch", nil, []Switch{{Short: "-a"}}, 0},
		{"nil flag destination", nil, []Switch{Flag("-a", "", nil, "")}, 0},
		{"nil value destination", nil, []Switch{Dec8("-a", "", nil, "")}, 0},
		{"enum without table", nil, []Switch{Enum[int]("-a", "", &col, nil, "")}, 0},
		{"enum destination nil", nil, []Switch{Enum[int]("-a", "", nil, colours, "")}, 0},
		{"string capacity", nil, []Switch{String("-a", "", &s, 1, "")}, 0},
		{"nil param", []Param{nil}, nil, 0},
		{"param capacity", []Param{StringParam(&s, 0, "")}, nil, 0},
		{"param destination", []Param{Hex8Param(nil, "")}, nil, 0},
		{"min above slots", []Param{StringParam(&s, 4, "")}, nil, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := output.NewCaptureBuffer()
			cmd := &Command{Name: "bad", Params: tt.params, Switches: tt.switches, MinParams: tt.min, Out: out}

			outcome, err := cmd.Parse(nil)

			assert.Equal(t, Aborted, outcome.Status)
			require.ErrorIs(t, err, ErrInvalidTable)
			assert.Zero(t, KindOf(err))
			assert.Empty(t, out.String(), "table errors are not user errors")
		})
	}
}

func TestPackageParse(t *testing.T) {
	var text string
	var level uint8
	outcome, err := Parse(
		[]Param{StringParam(&text, 8, "")},
		[]Switch{Dec8("-l", "", &level, "")},
		"pkg", "package entry point", Quiet,
		[]string{"-l", "3", "x"},
	)

	require.NoError(t, err)
	assert.Equal(t, Success, outcome.Status)
	assert.Equal(t, "x", text)
	assert.Equal(t, uint8(3), level)
}

func TestParseStyledErrors(t *testing.T) {
	e := newExampleTable(NoOpt)
	e.cmd.Styles = output.NewMockStyleProvider()

	_, err := e.cmd.Parse([]string{"-q"})

	require.Error(t, err)
	assert.Contains(t, e.out.String(), "[error]unknown switch '-q'[/error]")
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "Aborted", Aborted.String())
}

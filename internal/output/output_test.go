package output

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterBasicOutput(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), PlainText())

	printer.Print("hello")
	printer.Println("world")
	printer.Printf("number: %d", 42)

	assert.Equal(t, "helloworld\nnumber: 42", buffer.String())
}

func TestPrinterSemanticOutput(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), PlainText())

	printer.Info("information")
	printer.Success("completed")
	printer.Warning("careful")
	printer.Error("unknown switch '-z'")

	assert.Equal(t, []string{
		"ℹ information",
		"✓ completed",
		"⚠ careful",
		"✗ unknown switch '-z'",
	}, buffer.Lines())
}

func TestPrinterDomainSemanticsArePlainWithoutStyles(t *testing.T) {
	out := CaptureOutput(func(p *Printer) {
		p.Prompt("Enter a value: ")
		p.Switch("-colour")
		p.Value("red")
	})
	assert.Equal(t, "Enter a value: -colourred", out)
}

func TestPrinterWithMockStyleProvider(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), WithStyles(NewMockStyleProvider()))

	printer.Error("bad value")
	printer.Prompt("> ")

	assert.Equal(t, "[error]bad value[/error]\n[prompt]> [/prompt]", buffer.String())
	assert.True(t, printer.IsStylable())
}

func TestPrinterWithUnavailableStyleProvider(t *testing.T) {
	buffer := NewCaptureBuffer()
	provider := NewMockStyleProvider()
	provider.SetAvailable(false)

	printer := NewPrinter(WithWriter(buffer), WithStyles(provider))
	printer.Info("test message")

	assert.Equal(t, "ℹ test message\n", buffer.String())
	assert.False(t, printer.IsStylable())
}

func TestPrinterPlainModeIgnoresProvider(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), WithStyles(NewMockStyleProvider()), PlainText())

	printer.Success("success message")

	assert.Equal(t, "✓ success message\n", buffer.String())
	assert.NotContains(t, buffer.String(), "[success]")
}

func TestPrinterSilentMode(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), Silent())

	printer.Info("test message")
	printer.Print("another message")

	assert.Empty(t, buffer.String())
}

func TestPrinterRawModeTranslatesNewlines(t *testing.T) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(RawMode(), WithWriter(buffer), PlainText())

	printer.Println("line one")
	printer.Print("a\nb\r\n")

	assert.Equal(t, "line one\r\na\r\nb\r\n", buffer.String())
}

func TestCRLFWriter(t *testing.T) {
	tests := []struct {
		name   string
		writes []string
		want   string
	}{
		{"no newline", []string{"abc"}, "abc"},
		{"bare newline", []string{"a\nb\n"}, "a\r\nb\r\n"},
		{"already crlf", []string{"a\r\n"}, "a\r\n"},
		{"cr split from lf", []string{"a\r", "\nb"}, "a\r\nb"},
		{"leading newline", []string{"\n"}, "\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewCRLFWriter(&buf)
			for _, s := range tt.writes {
				n, err := w.Write([]byte(s))
				require.NoError(t, err)
				assert.Equal(t, len(s), n)
			}
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestThemeStyleProvider(t *testing.T) {
	t.Run("embedded themes", func(t *testing.T) {
		assert.Equal(t, []string{"dark", "default", "light"}, ThemeNames())
	})

	t.Run("unknown theme", func(t *testing.T) {
		_, err := NewThemeStyleProvider("neon", &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dark, default, light")
	})

	t.Run("plain theme disables styling", func(t *testing.T) {
		p, err := NewThemeStyleProvider("plain", &bytes.Buffer{})
		require.NoError(t, err)
		assert.Nil(t, p)
		assert.False(t, p.IsAvailable())
	})

	t.Run("ascii profile is unavailable", func(t *testing.T) {
		p, err := NewThemeStyleProvider("dark", &bytes.Buffer{})
		require.NoError(t, err)
		p.SetProfile(termenv.Ascii)
		assert.False(t, p.IsAvailable())

		buffer := NewCaptureBuffer()
		printer := NewPrinter(WithWriter(buffer), WithStyles(p))
		printer.Error("oops")
		assert.Equal(t, "✗ oops\n", buffer.String())
	})

	t.Run("ansi profile styles text", func(t *testing.T) {
		p, err := NewThemeStyleProvider("dark", &bytes.Buffer{})
		require.NoError(t, err)
		p.SetProfile(termenv.ANSI256)
		require.True(t, p.IsAvailable())
		assert.Equal(t, "dark", p.Name())

		rendered := p.GetStyle("error").Render("oops")
		assert.Contains(t, rendered, "oops")
		assert.Contains(t, rendered, "\x1b[")
		assert.Equal(t, "plain", p.GetStyle("plain").Render("plain"))
	})
}

func TestMockStyleProvider(t *testing.T) {
	provider := NewMockStyleProvider()
	assert.True(t, provider.IsAvailable())
	assert.Equal(t, "[info]test[/info]", provider.GetStyle("info").Render("test"))

	provider.SetAvailable(false)
	assert.False(t, provider.IsAvailable())

	provider.SetStyle("switch", &MockTextStyle{semantic: "custom"})
	assert.Equal(t, "[custom]-f[/custom]", provider.GetStyle("switch").Render("-f"))
}

func TestCaptureBufferMethods(t *testing.T) {
	buffer := NewCaptureBuffer()
	assert.Empty(t, buffer.String())
	assert.Empty(t, buffer.Lines())
	assert.Zero(t, buffer.Len())

	_, err := buffer.Write([]byte("line1\nline2\nline3"))
	require.NoError(t, err)

	assert.Equal(t, []string{"line1", "line2", "line3"}, buffer.Lines())
	assert.True(t, buffer.Contains("line2"))
	assert.False(t, buffer.Contains("nonexistent"))

	buffer.Reset()
	assert.Empty(t, buffer.String())
}

func BenchmarkPrinterPlainOutput(b *testing.B) {
	buffer := &bytes.Buffer{}
	printer := NewPrinter(WithWriter(buffer), PlainText())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		printer.Error("unknown switch '-z'")
		buffer.Reset()
	}
}

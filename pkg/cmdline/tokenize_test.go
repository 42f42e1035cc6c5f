package cmdline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"  \t ", nil},
		{"abc -d 200", []string{"abc", "-d", "200"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{`"two words" -s 'single quoted'`, []string{"two words", "-s", "single quoted"}},
		{`back\ slash`, []string{"back slash"}},
		{`""`, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Tokenize(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeUnterminated(t *testing.T) {
	for _, line := range []string{`"open`, `'open`, `trailing\`} {
		_, err := Tokenize(line)
		require.ErrorIs(t, err, ErrInvalidCommandLine, line)
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	tokens := []string{"plain", "with space", "it's", "-d", ""}

	got, err := Tokenize(Quote(tokens...))

	require.NoError(t, err)
	assert.Equal(t, tokens, got)
}

package cmdline

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Tokenize splits a raw command line on whitespace. Single quotes, double
// quotes and backslash escapes keep whitespace inside one token; quotes are
// removed and the resulting tokens are never re-split.
func Tokenize(line string) ([]string, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	tokens, err := shellquote.Split(line)
	if err != nil {
		return nil, &Error{Kind: KindInvalidCommandLine, Token: line, Err: err}
	}
	return tokens, nil
}

// Quote joins tokens back into a line that [Tokenize] splits into the same tokens.
func Quote(tokens ...string) string {
	return shellquote.Join(tokens...)
}

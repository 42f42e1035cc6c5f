package cmdline

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Bounds shown in range errors.
const (
	boundDecimal8 = "0-255"
	boundHex8     = "0x00-0xFF"
	boundInt16    = "-32768-32767"
)

var (
	boundDecimal = "0-" + strconv.FormatUint(math.MaxUint64, 10)
	boundHex     = "0x0-0x" + strings.ToUpper(strconv.FormatUint(math.MaxUint64, 16))
	boundInteger = strconv.FormatInt(math.MinInt64, 10) + "-" + strconv.FormatInt(math.MaxInt64, 10)
)

func invalid(token, bound string) *Error {
	return &Error{Kind: KindInvalidValue, Token: token, Bound: bound}
}

func isDecimalDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isSignedDigits allows a single leading sign before the digits.
func isSignedDigits(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return isDecimalDigits(s)
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// ParseDecimal converts an unsigned decimal token. Signs and spaces are rejected.
func ParseDecimal(token string) (uint64, error) {
	if !isDecimalDigits(token) {
		return 0, invalid(token, boundDecimal)
	}
	v, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, invalid(token, boundDecimal)
	}
	return v, nil
}

// ParseDecimal8 converts a decimal token in the range 0-255.
func ParseDecimal8(token string) (uint8, error) {
	if !isDecimalDigits(token) {
		return 0, invalid(token, boundDecimal8)
	}
	v, err := strconv.ParseUint(token, 10, 8)
	if err != nil {
		return 0, invalid(token, boundDecimal8)
	}
	return uint8(v), nil
}

// ParseHex converts a hexadecimal token with an optional 0x or 0X prefix.
func ParseHex(token string) (uint64, error) {
	digits := trimHexPrefix(token)
	if !isHexDigits(digits) {
		return 0, invalid(token, boundHex)
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, invalid(token, boundHex)
	}
	return v, nil
}

// ParseHex8 converts a hexadecimal token in the range 0x00-0xFF.
func ParseHex8(token string) (uint8, error) {
	digits := trimHexPrefix(token)
	if !isHexDigits(digits) {
		return 0, invalid(token, boundHex8)
	}
	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0, invalid(token, boundHex8)
	}
	return uint8(v), nil
}

func trimHexPrefix(token string) string {
	if len(token) > 2 && token[0] == '0' && (token[1] == 'x' || token[1] == 'X') {
		return token[2:]
	}
	return token
}

// ParseInt16 converts a decimal token with an optional sign into the 16-bit signed range.
func ParseInt16(token string) (int16, error) {
	if !isSignedDigits(token) {
		return 0, invalid(token, boundInt16)
	}
	v, err := strconv.ParseInt(token, 10, 16)
	if err != nil {
		return 0, invalid(token, boundInt16)
	}
	return int16(v), nil
}

// ParseInteger converts a signed decimal token into the 64-bit range.
func ParseInteger(token string) (int64, error) {
	if !isSignedDigits(token) {
		return 0, invalid(token, boundInteger)
	}
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, invalid(token, boundInteger)
	}
	return v, nil
}

// ParseString checks that token fits a destination of capacity characters,
// one of which is reserved as in a terminated buffer. Longer tokens are an
// error, never truncated.
func ParseString(token string, capacity int) (string, error) {
	if limit := capacity - 1; utf8.RuneCountInString(token) > limit {
		return "", &Error{Kind: KindValueTooLong, Token: token, Bound: strconv.Itoa(limit)}
	}
	return token, nil
}

// ParseEnum resolves token through table, ignoring case.
func ParseEnum[T ~int](token string, table *EnumTable[T]) (T, error) {
	v, ok := table.Lookup(token)
	if !ok {
		return v, &Error{Kind: KindInvalidEnumValue, Token: token, Accepted: table.Names()}
	}
	return v, nil
}

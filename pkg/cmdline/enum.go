package cmdline

import "strings"

// EnumEntry pairs a symbolic value with the string shown to and typed by users.
type EnumEntry[T ~int] struct {
	Value T
	Name  string
}

// EnumTable maps enumerated values to display strings and back.
// Entries keep declaration order; values need not be contiguous.
type EnumTable[T ~int] struct {
	entries []EnumEntry[T]
}

// NewEnumTable builds a table, rejecting empty or duplicate display strings.
// Names are compared without case because [EnumTable.Lookup] folds case.
func NewEnumTable[T ~int](entries ...EnumEntry[T]) (*EnumTable[T], error) {
	for i, e := range entries {
		if e.Name == "" {
			return nil, tableError("enum entry %d has an empty name", i)
		}
		for _, prev := range entries[:i] {
			if strings.EqualFold(prev.Name, e.Name) {
				return nil, tableError("duplicate enum name %q", e.Name)
			}
		}
	}
	return &EnumTable[T]{entries: append([]EnumEntry[T](nil), entries...)}, nil
}

// MustEnumTable is like [NewEnumTable] but panics on a bad declaration.
// It is intended for package-level table variables.
func MustEnumTable[T ~int](entries ...EnumEntry[T]) *EnumTable[T] {
	t, err := NewEnumTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the display string for value.
func (t *EnumTable[T]) Name(value T) (string, bool) {
	for _, e := range t.entries {
		if e.Value == value {
			return e.Name, true
		}
	}
	return "", false
}

// Lookup returns the value whose display string equals text, ignoring case.
func (t *EnumTable[T]) Lookup(text string) (T, bool) {
	for _, e := range t.entries {
		if strings.EqualFold(e.Name, text) {
			return e.Value, true
		}
	}
	var zero T
	return zero, false
}

// Names lists the display strings in declaration order.
func (t *EnumTable[T]) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the table entries.
func (t *EnumTable[T]) Entries() []EnumEntry[T] {
	return append([]EnumEntry[T](nil), t.entries...)
}

// Len returns the number of entries.
func (t *EnumTable[T]) Len() int { return len(t.entries) }

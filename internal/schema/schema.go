// Package schema loads parameter and switch tables from YAML or TOML
// documents and binds them to destinations it allocates itself, so a table can
// be tried out without writing a Go caller.
package schema

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"cmdline/internal/version"
	"cmdline/pkg/cmdline"
)

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Document is the on-disk table declaration.
type Document struct {
	Name        string              `yaml:"name" toml:"name"`
	Description string              `yaml:"description" toml:"description"`
	Requires    string              `yaml:"requires" toml:"requires"`
	MinParams   int                 `yaml:"min-params" toml:"min-params"`
	IgnoreExtra bool                `yaml:"ignore-extra" toml:"ignore-extra"`
	Enums       map[string][]string `yaml:"enums" toml:"enums"`
	Params      []ParamSpec         `yaml:"params" toml:"params"`
	Switches    []SwitchSpec        `yaml:"switches" toml:"switches"`
}

// ParamSpec declares one positional slot.
type ParamSpec struct {
	Name     string `yaml:"name" toml:"name"`
	Kind     string `yaml:"kind" toml:"kind"` // string, hex8 or decimal
	Capacity int    `yaml:"capacity" toml:"capacity"`
	Help     string `yaml:"help" toml:"help"`
	Initial  string `yaml:"initial" toml:"initial"`
}

// SwitchSpec declares one switch.
type SwitchSpec struct {
	Short     string `yaml:"short" toml:"short"`
	Long      string `yaml:"long" toml:"long"`
	Kind      string `yaml:"kind" toml:"kind"` // flag, flagval, enum, dec8, hex, int16 or string
	Enum      string `yaml:"enum" toml:"enum"`
	Default   uint64 `yaml:"default" toml:"default"`
	Capacity  int    `yaml:"capacity" toml:"capacity"`
	Mandatory bool   `yaml:"mandatory" toml:"mandatory"`
	Help      string `yaml:"help" toml:"help"`
}

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported schema file extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// LoadFile reads and decodes a schema document.
func LoadFile(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Decode parses a document. Unknown keys are rejected in both formats.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML schema: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML schema: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown schema key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unknown schema format %q", format)
	}
	return &doc, nil
}

// CheckVersion verifies the document's requires constraint against this build.
func (d *Document) CheckVersion() error {
	ok, err := version.Satisfies(d.Requires)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("schema %s requires cmdline %s, this is %s", d.Name, d.Requires, version.Version)
	}
	return nil
}

// enumTables builds one registry per declared enum. Values are the list positions.
func (d *Document) enumTables() (map[string]*cmdline.EnumTable[int], error) {
	tables := make(map[string]*cmdline.EnumTable[int], len(d.Enums))
	for name, values := range d.Enums {
		entries := make([]cmdline.EnumEntry[int], len(values))
		for i, v := range values {
			entries[i] = cmdline.EnumEntry[int]{Value: i, Name: v}
		}
		table, err := cmdline.NewEnumTable(entries...)
		if err != nil {
			return nil, fmt.Errorf("enum %s: %w", name, err)
		}
		tables[name] = table
	}
	return tables, nil
}

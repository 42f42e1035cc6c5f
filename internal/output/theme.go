package output

import (
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:embed themes/*.yaml
var themeFiles embed.FS

// themeFile is the YAML layout of one embedded theme.
type themeFile struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Styles      map[string]styleConfig `yaml:"styles"`
}

// styleConfig is one semantic style. Colours are either a single lipgloss
// colour string or a {light, dark} pair.
type styleConfig struct {
	Foreground interface{} `yaml:"foreground,omitempty"`
	Background interface{} `yaml:"background,omitempty"`
	Bold       *bool       `yaml:"bold,omitempty"`
	Italic     *bool       `yaml:"italic,omitempty"`
	Underline  *bool       `yaml:"underline,omitempty"`
}

// lipglossStyle adapts lipgloss.Style to TextStyle.
type lipglossStyle struct {
	lipgloss.Style
}

func (s lipglossStyle) Render(text string) string {
	return s.Style.Render(text)
}

// ThemeStyleProvider styles text with a named lipgloss theme. It reports
// itself unavailable when the writer's colour profile is plain ASCII, so
// redirected output stays free of escape sequences.
type ThemeStyleProvider struct {
	name     string
	renderer *lipgloss.Renderer
	styles   map[string]lipgloss.Style
}

// ThemeNames lists the embedded themes.
func ThemeNames() []string {
	entries, err := themeFiles.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// NewThemeStyleProvider loads theme name for output written to w.
// The names "plain" and "none" return a nil provider and no error.
func NewThemeStyleProvider(name string, w io.Writer) (*ThemeStyleProvider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "plain", "none":
		return nil, nil
	case "":
		name = "default"
	}

	data, err := themeFiles.ReadFile("themes/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse theme %q: %w", name, err)
	}

	t := &ThemeStyleProvider{
		name:     tf.Name,
		renderer: lipgloss.NewRenderer(w),
		styles:   make(map[string]lipgloss.Style, len(tf.Styles)),
	}
	for semantic, cfg := range tf.Styles {
		t.styles[semantic] = t.createStyle(cfg)
	}
	return t, nil
}

// Name returns the loaded theme's name.
func (t *ThemeStyleProvider) Name() string { return t.name }

// SetProfile overrides the detected colour profile.
func (t *ThemeStyleProvider) SetProfile(profile termenv.Profile) {
	t.renderer.SetColorProfile(profile)
}

// GetStyle implements StyleProvider.GetStyle. Semantics the theme does not
// define render unstyled.
func (t *ThemeStyleProvider) GetStyle(semantic string) TextStyle {
	if style, ok := t.styles[semantic]; ok {
		return lipglossStyle{style}
	}
	return lipglossStyle{t.renderer.NewStyle()}
}

// IsAvailable implements StyleProvider.IsAvailable.
func (t *ThemeStyleProvider) IsAvailable() bool {
	return t != nil && t.renderer.ColorProfile() != termenv.Ascii
}

func (t *ThemeStyleProvider) createStyle(cfg styleConfig) lipgloss.Style {
	style := t.renderer.NewStyle()
	if c := parseColor(cfg.Foreground); c != nil {
		style = style.Foreground(c)
	}
	if c := parseColor(cfg.Background); c != nil {
		style = style.Background(c)
	}
	if cfg.Bold != nil && *cfg.Bold {
		style = style.Bold(true)
	}
	if cfg.Italic != nil && *cfg.Italic {
		style = style.Italic(true)
	}
	if cfg.Underline != nil && *cfg.Underline {
		style = style.Underline(true)
	}
	return style
}

// parseColor accepts a colour string or a map with light and dark keys.
func parseColor(value interface{}) lipgloss.TerminalColor {
	switch v := value.(type) {
	case string:
		return lipgloss.Color(v)
	case map[string]interface{}:
		light, hasLight := v["light"].(string)
		dark, hasDark := v["dark"].(string)
		if hasLight && hasDark {
			return lipgloss.AdaptiveColor{Light: light, Dark: dark}
		}
	}
	return nil
}

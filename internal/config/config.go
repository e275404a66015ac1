package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/tacboard/internal/theme"
)

// Tools holds the initial toolbar selection.
type Tools struct {
	Tool  string // pencil, eraser, square or circle
	Color string // palette name, SVG color name or #RRGGBB[AA]
	Width int
}

// Notify holds desktop notification settings.
type Notify struct {
	Background bool // the background could not be loaded
	Save       bool // settings were written to the config file
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	Background string // file path, http(s) URL, or empty for the built-in map
	// Fallback is painted under the background and used by the eraser.
	// A zero alpha means unset.
	Fallback  color.RGBA
	MaxWidth  int
	MaxHeight int
	Tools     Tools
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Default to empty to allow fallback to Env/Default
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Background != "" {
		fmt.Fprintf(&sb, "background = %s\n", c.Background)
	}
	if c.Fallback.A != 0 {
		fmt.Fprintf(&sb, "fallback_color = %s\n", theme.Hex(c.Fallback))
	}
	if c.MaxWidth > 0 {
		fmt.Fprintf(&sb, "max_width = %d\n", c.MaxWidth)
	}
	if c.MaxHeight > 0 {
		fmt.Fprintf(&sb, "max_height = %d\n", c.MaxHeight)
	}
	sb.WriteString("\n")

	if c.Tools != (Tools{}) {
		sb.WriteString("[tools]\n")
		if c.Tools.Tool != "" {
			fmt.Fprintf(&sb, "tool = %s\n", c.Tools.Tool)
		}
		if c.Tools.Color != "" {
			fmt.Fprintf(&sb, "color = %s\n", c.Tools.Color)
		}
		if c.Tools.Width > 0 {
			fmt.Fprintf(&sb, "width = %d\n", c.Tools.Width)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "background = %v\n", c.Notify.Background)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

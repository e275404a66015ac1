package main

import (
	"flag"
	"fmt"

	"github.com/example/tacboard/assets"
	"github.com/example/tacboard/internal/appstate"
	"github.com/example/tacboard/internal/theme"
)

type catalogCmd struct {
	*root
	fs   *flag.FlagSet
	file string
}

func parseCatalogCmd(args []string, r *root) (*catalogCmd, error) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	cmd := &catalogCmd{root: r.subcommand("catalog"), fs: fs}
	fs.StringVar(&cmd.file, "file", "", "list the icons of this YAML catalog instead of the built-in one")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *catalogCmd) Run() error {
	cat, err := loadCatalog(c.file)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "strategy icons (drag from the toolbar onto the board):")
	for _, e := range cat.Entries() {
		glyph := e.Glyph
		if glyph == "" {
			glyph = "-"
		}
		fmt.Fprintf(c.stdout, "  %-10s %-10s %s %s %s\n", e.ID, e.Label, glyph, theme.Hex(e.Color), swatch(e.Color.R, e.Color.G, e.Color.B))
	}
	return nil
}

func (c *catalogCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r.subcommand("colors"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := appstate.PaletteColors()
	if len(palette) == 0 {
		fmt.Fprintln(c.stdout, "no colors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available palette colors (* marks the default color):")
	defaultIdx := clampIndex(appstate.DefaultColorIndex(), len(palette))
	for idx, entry := range palette {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		hex := theme.Hex(entry.Color)
		name := entry.Name
		if name == "" {
			name = hex
		}
		fmt.Fprintf(c.stdout, "%s %2d: %-12s %s %s\n", marker, idx, name, hex, swatch(entry.Color.R, entry.Color.G, entry.Color.B))
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type widthsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	fs := flag.NewFlagSet("widths", flag.ExitOnError)
	cmd := &widthsCmd{root: r.subcommand("widths"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	widths := appstate.WidthOptions()
	if len(widths) == 0 {
		fmt.Fprintln(c.stdout, "no widths available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available brush sizes (* marks the default size):")
	defaultIdx := clampIndex(appstate.DefaultWidthIndex(), len(widths))
	for idx, width := range widths {
		marker := " "
		if idx == defaultIdx {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %3dpx\n", marker, width)
	}
	return nil
}

func (c *widthsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type mapsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMapsCmd(args []string, r *root) (*mapsCmd, error) {
	fs := flag.NewFlagSet("maps", flag.ExitOnError)
	cmd := &mapsCmd{root: r.subcommand("maps"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *mapsCmd) Run() error {
	names := assets.MapNames()
	if len(names) == 0 {
		fmt.Fprintln(c.stdout, "no maps available")
		return nil
	}
	fmt.Fprintln(c.stdout, "built-in maps (pass as -background map:<name>, * marks the default):")
	for _, name := range names {
		marker := " "
		if name == assets.DefaultMap {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %s%s\n", marker, assets.MapScheme, name)
	}
	return nil
}

func (c *mapsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ExitOnError)
	cmd := &monitorsCmd{root: r.subcommand("monitors"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *monitorsCmd) Run() error {
	monitors, err := c.monitors()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "connected monitors (the board window fits the primary one):")
	for _, m := range monitors {
		fmt.Fprintf(c.stdout, "  %s\n", m)
	}
	return nil
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

// swatch is a two-cell block in a 24-bit terminal background colour.
func swatch(r, g, b uint8) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
}

func clampIndex(idx, n int) int {
	if n == 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

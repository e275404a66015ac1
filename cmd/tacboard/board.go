package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"
	"time"

	"github.com/example/tacboard/assets"
	"github.com/example/tacboard/internal/appstate"
	"github.com/example/tacboard/internal/board"
	"github.com/example/tacboard/internal/theme"
)

type boardCmd struct {
	*root
	fs *flag.FlagSet

	background  string
	tool        string
	catalogFile string
	maxWidth    int
	maxHeight  int
	color      string
	width      int
	timeout    time.Duration
	remember   bool
	fitScreen  bool

	colorIdx int
	widthIdx int
	initTool board.Tool
	catalog  *board.Catalog
}

func parseBoardCmd(args []string, r *root) (*boardCmd, error) {
	fs := flag.NewFlagSet("board", flag.ExitOnError)
	cmd := &boardCmd{root: r.subcommand("board"), fs: fs}
	cfg := r.config

	maxW, maxH := cfg.MaxWidth, cfg.MaxHeight
	if maxW <= 0 {
		maxW = board.DefaultMaxWidth
	}
	if maxH <= 0 {
		maxH = board.DefaultMaxHeight
	}
	fs.StringVar(&cmd.background, "background", "", "background image: file, http(s) URL or map:<name>")
	fs.IntVar(&cmd.maxWidth, "max-width", maxW, "largest board width; bigger backgrounds are scaled down")
	fs.IntVar(&cmd.maxHeight, "max-height", maxH, "largest board height; bigger backgrounds are scaled down")
	tool := cfg.Tools.Tool
	if tool == "" {
		tool = board.ToolPencil.String()
	}
	fs.StringVar(&cmd.tool, "tool", tool, "initial tool: pencil, eraser, square or circle")
	fs.StringVar(&cmd.catalogFile, "catalog", "", "YAML file replacing the built-in strategy icons")
	fs.StringVar(&cmd.color, "color", cfg.Tools.Color, "initial drawing color (palette name, SVG name or #RRGGBB)")
	fs.IntVar(&cmd.width, "width", cfg.Tools.Width, "initial brush size in pixels")
	fs.DurationVar(&cmd.timeout, "timeout", 30*time.Second, "time limit for downloading a background")
	fs.BoolVar(&cmd.remember, "remember", false, "save the last color and width to the config on exit")
	fs.BoolVar(&cmd.fitScreen, "fit-screen", true, "shrink the window to fit the primary monitor")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.maxWidth < 1 || cmd.maxHeight < 1 {
		return nil, fmt.Errorf("max size must be positive, got %dx%d", cmd.maxWidth, cmd.maxHeight)
	}

	if cmd.background == "" {
		cmd.background = r.getenv(envBackground)
	}
	if cmd.background == "" {
		cmd.background = cfg.Background
	}

	t, err := board.ParseTool(cmd.tool)
	if err != nil || t == board.ToolIcon {
		return nil, fmt.Errorf("invalid tool %q: use pencil, eraser, square or circle", cmd.tool)
	}
	cmd.initTool = t
	if cmd.catalog, err = loadCatalog(cmd.catalogFile); err != nil {
		return nil, err
	}

	cmd.colorIdx = appstate.DefaultColorIndex()
	if cmd.color != "" {
		idx, err := resolveColor(cmd.color)
		if err != nil {
			return nil, err
		}
		cmd.colorIdx = idx
	}
	cmd.widthIdx = appstate.DefaultWidthIndex()
	if cmd.width > 0 {
		cmd.widthIdx = appstate.EnsureWidth(cmd.width)
	}
	return cmd, nil
}

// loadCatalog reads an icon catalog file. An empty path is the built-in
// catalog.
func loadCatalog(path string) (*board.Catalog, error) {
	if path == "" {
		return board.DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := board.ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// resolveColor finds value in the palette by name, or parses it as an SVG
// color name or hex value and adds it to the palette.
func resolveColor(value string) (int, error) {
	if idx, ok := appstate.PaletteIndexByName(value); ok {
		return idx, nil
	}
	col, err := theme.ParseColor(value)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", value, err)
	}
	col.A = 255
	name := ""
	if !strings.HasPrefix(strings.TrimSpace(value), "#") {
		name = strings.ToLower(strings.TrimSpace(value))
	}
	return appstate.EnsurePaletteColor(col, name), nil
}

func (b *boardCmd) FlagSet() *flag.FlagSet {
	return b.fs
}

func (b *boardCmd) maxSize() image.Point {
	return image.Pt(b.maxWidth, b.maxHeight)
}

// newBoard builds the board the window will drive.
func (b *boardCmd) newBoard() *board.Board {
	opts := []board.Option{
		board.WithMaxSize(b.maxSize()),
		board.WithCatalog(b.catalog),
		board.WithTool(b.initTool),
		board.WithColor(appstate.Palette()[b.colorIdx]),
		board.WithBrushSize(appstate.WidthOptions()[b.widthIdx]),
	}
	if fb := b.config.Fallback; fb.A != 0 {
		opts = append(opts, board.WithFallback(fb))
	}
	return board.New(opts...)
}

func (b *boardCmd) newState() *appstate.AppState {
	opts := []appstate.Option{
		appstate.WithBoard(b.newBoard()),
		appstate.WithBackground(b.background),
		appstate.WithLoader(assets.NewLoader(b.timeout)),
		appstate.WithColorIndex(b.colorIdx),
		appstate.WithWidthIndex(b.widthIdx),
		appstate.WithTheme(b.activeTheme),
		appstate.WithBackgroundListener(b.notifyBackground),
	}
	if b.fitScreen {
		if size, err := b.screenSize(); err != nil {
			log.Printf("screen size: %v", err)
		} else {
			opts = append(opts, appstate.WithScreenSize(size))
		}
	}
	if b.remember {
		opts = append(opts,
			appstate.WithSettingsListener(b.recordSettings),
			appstate.WithOnClose(b.saveSettings),
		)
	}
	return appstate.New(opts...)
}

func (b *boardCmd) recordSettings(colorIdx, widthIdx int) {
	colors := appstate.PaletteColors()
	if colorIdx >= 0 && colorIdx < len(colors) {
		b.config.Tools.Color = colors[colorIdx].Name
	}
	widths := appstate.WidthOptions()
	if widthIdx >= 0 && widthIdx < len(widths) {
		b.config.Tools.Width = widths[widthIdx]
	}
}

func (b *boardCmd) saveSettings() {
	path, err := b.loader.Save(b.config)
	if err != nil {
		log.Printf("save settings: %v", err)
		return
	}
	log.Printf("settings saved to %s", path)
	b.notifySave(path)
}

func (b *boardCmd) Run() error {
	st := b.newState()
	st.Run()
	return nil
}

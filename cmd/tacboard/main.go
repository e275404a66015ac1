package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/example/tacboard/internal/config"
	"github.com/example/tacboard/internal/display"
	"github.com/example/tacboard/internal/notify"
	"github.com/example/tacboard/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

const (
	envTheme      = "TACBOARD_THEME"
	envBackground = "TACBOARD_BACKGROUND"
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	config      *config.Config
	loader      *config.Loader
	themeName   string
	activeTheme *theme.Theme
	stdout      io.Writer
	getenv      func(string) string
	screenSize  func() (image.Point, error)
	monitors    func() ([]display.Monitor, error)

	notifier         *notify.Notifier
	backgroundAlerts bool
	saveAlerts       bool
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	sub := *r
	sub.program = program
	return &sub
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:      flag.NewFlagSet("tacboard", flag.ExitOnError),
		program: "tacboard",
		config:  cfg,
		loader:  loader,
		stdout:  os.Stdout,
		getenv:  os.Getenv,

		screenSize: display.PrimarySize,
		monitors:   display.Monitors,
	}
	r.notifier = notify.New(notify.LoadPreferences(r.getenv))
	r.fs.BoolVar(&r.backgroundAlerts, "notify-background", cfg.Notify.Background, "show a desktop notification when the background cannot be loaded")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving settings")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.NewLoader().Names(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

// resolveTheme picks the window theme by name from the config, then the
// theme search path, falling back to the default theme.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = r.getenv(envTheme)
	}
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventBackground, r.backgroundAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "board":
		cmd, err = parseBoardCmd(subArgs, r)
	case "catalog":
		cmd, err = parseCatalogCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "maps":
		cmd, err = parseMapsCmd(subArgs, r)
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) notifyBackground(ref string, err error) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Background(ref, err)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

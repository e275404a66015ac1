package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when no source provides the requested theme.
var ErrNotFound = errors.New("theme not found")

const themeExt = ".theme"

// Loader finds themes by name. Embedded themes win over Dirs, which are
// searched in order.
type Loader struct {
	Dirs []string
}

// NewLoader searches the user config dir, then the system dir.
func NewLoader() *Loader {
	l := &Loader{}
	if home, err := os.UserHomeDir(); err == nil {
		l.Dirs = append(l.Dirs, filepath.Join(home, ".config", "tacboard", "themes"))
	}
	l.Dirs = append(l.Dirs, "/usr/share/tacboard/themes")
	return l
}

func (l *Loader) sources() []fs.FS {
	var out []fs.FS
	if sub, err := fs.Sub(EmbeddedThemes, "defaults"); err == nil {
		out = append(out, sub)
	}
	for _, d := range l.Dirs {
		out = append(out, os.DirFS(d))
	}
	return out
}

// Load resolves name as a file path first, then as a theme name. An empty
// name is the default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	file := strings.ToLower(strings.TrimSuffix(name, themeExt)) + themeExt
	for _, src := range l.sources() {
		th, err := parseFile(src, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", name, err)
		}
		return th, nil
	}
	return nil, fmt.Errorf("theme %q: %w", name, ErrNotFound)
}

// Names lists every theme reachable by name, without duplicates.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	var names []string
	for _, src := range l.sources() {
		matches, _ := fs.Glob(src, "*"+themeExt)
		for _, m := range matches {
			n := strings.TrimSuffix(m, themeExt)
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

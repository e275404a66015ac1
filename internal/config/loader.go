package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDir       = "tacboard"
	configFile   = "config.rc"
	legacyFile   = "tacboard.rc"
	devLocalFile = ".tacboardrc"
)

// Loader finds, reads and writes the rc file.
type Loader struct {
	Version      string // "dev" builds also read ./.tacboardrc
	OverridePath string // set at link time to pin the config location
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first config file that exists. With none, it returns the
// defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// candidates lists config locations in lookup order.
func (l *Loader) candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, devLocalFile))
		}
	}
	if dir := userDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, configFile), filepath.Join(dir, legacyFile))
	}
	return paths
}

func userDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// GetConfigPath returns the config file in use, or "" when none exists.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// SavePath returns where Save writes: the override path when set, otherwise
// the user config dir.
func (l *Loader) SavePath() string {
	if l.OverridePath != "" {
		return l.OverridePath
	}
	return filepath.Join(userDir(), configFile)
}

// Save writes cfg in rc format to SavePath, creating parent directories.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.SavePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

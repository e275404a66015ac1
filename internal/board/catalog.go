package board

import (
	_ "embed"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CatalogEntry describes one strategy marker.
type CatalogEntry struct {
	ID    string
	Label string
	Glyph string
	Color color.RGBA
}

// Catalog is the fixed set of markers that can be dropped on the board.
type Catalog struct {
	entries []CatalogEntry
	index   map[string]int
}

type catalogDoc struct {
	Icons []struct {
		ID    string `yaml:"id"`
		Label string `yaml:"label"`
		Glyph string `yaml:"glyph"`
		Color string `yaml:"color"`
	} `yaml:"icons"`
}

var defaultCatalog = mustParseCatalog(catalogYAML)

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog { return defaultCatalog }

// ParseCatalog decodes a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{index: make(map[string]int, len(doc.Icons))}
	for i, raw := range doc.Icons {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, id)
		}
		col, err := parseHexColor(raw.Color)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", id, err)
		}
		label := raw.Label
		if label == "" {
			label = id
		}
		c.index[id] = len(c.entries)
		c.entries = append(c.entries, CatalogEntry{ID: id, Label: label, Glyph: raw.Glyph, Color: col})
	}
	if len(c.entries) == 0 {
		return nil, fmt.Errorf("parse catalog: no icons defined")
	}
	return c, nil
}

func mustParseCatalog(data []byte) *Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Entries returns the markers in palette order.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of markers.
func (c *Catalog) Len() int { return len(c.entries) }

// Lookup finds a marker by id.
func (c *Catalog) Lookup(id string) (CatalogEntry, bool) {
	i, ok := c.index[id]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i], true
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 6:
		hex += "FF"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}

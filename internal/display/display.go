// Package display reports the monitor layout so the board window can open
// at a size the screen can show.
package display

import (
	"errors"
	"fmt"
	"image"
)

type platformBackend interface {
	Monitors() ([]Monitor, error)
}

var backend platformBackend = newBackend()

var errNoMonitors = errors.New("no monitors available")

// Monitor describes one output in the display layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

func (m Monitor) String() string {
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("monitor %d", m.Index)
	}
	s := fmt.Sprintf("%d: %s %dx%d+%d+%d", m.Index, name, m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y)
	if m.Primary {
		s += " (primary)"
	}
	return s
}

// Monitors lists the connected monitors.
func Monitors() ([]Monitor, error) {
	monitors, err := backend.Monitors()
	if err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}

// Primary returns the primary monitor, or the first one when none is marked.
func Primary(monitors []Monitor) (Monitor, bool) {
	if len(monitors) == 0 {
		return Monitor{}, false
	}
	for _, m := range monitors {
		if m.Primary {
			return m, true
		}
	}
	return monitors[0], true
}

// PrimarySize is the size of the primary monitor.
func PrimarySize() (image.Point, error) {
	monitors, err := Monitors()
	if err != nil {
		return image.Point{}, err
	}
	m, _ := Primary(monitors)
	return m.Rect.Size(), nil
}

// FitWindow shrinks want so that it fits inside screen less margin on every
// side. A zero screen leaves want unchanged.
func FitWindow(want, screen image.Point, margin int) image.Point {
	if screen.X <= 0 || screen.Y <= 0 {
		return want
	}
	maxW := screen.X - 2*margin
	maxH := screen.Y - 2*margin
	if maxW < 1 {
		maxW = screen.X
	}
	if maxH < 1 {
		maxH = screen.Y
	}
	if want.X > maxW {
		want.X = maxW
	}
	if want.Y > maxH {
		want.Y = maxH
	}
	return want
}

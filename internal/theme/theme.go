package theme

import (
	"image/color"
)

// Theme defines the color palette for the board window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the board
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground color.RGBA
	SectionText       color.RGBA // Headings above the palettes

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonSelected        color.RGBA // Active tool
	ButtonText            color.RGBA
	ButtonTextHover       color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Palettes
	SwatchBorder   color.RGBA
	SwatchSelected color.RGBA

	// Board
	BoardBorder color.RGBA
	DropTarget  color.RGBA // Board outline while an icon is dragged over it

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		SectionText:           color.RGBA{60, 60, 60, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonSelected:        color.RGBA{120, 160, 220, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextHover:       color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		SwatchBorder:          color.RGBA{90, 90, 90, 255},
		SwatchSelected:        color.RGBA{255, 255, 255, 255},
		BoardBorder:           color.RGBA{90, 90, 90, 255},
		DropTarget:            color.RGBA{34, 197, 94, 255},
		StatusBackground:      color.RGBA{200, 200, 200, 255},
		StatusText:            color.RGBA{0, 0, 0, 255},
	}
}

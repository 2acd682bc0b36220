package theme

import (
	"image/color"
)

// Theme holds the editor colors.
type Theme struct {
	Name string

	// Window
	Background      color.RGBA // Behind the page image
	Foreground      color.RGBA // Text
	Sidebar         color.RGBA // Location tree background
	SidebarSelected color.RGBA // Selected tree row

	// Shapes
	Outline         color.RGBA
	OutlineSelected color.RGBA
	Hole            color.RGBA
	NewShape        color.RGBA // Contour being drawn
	NewShapeFill    color.RGBA

	// Handles and cues
	Vertex      color.RGBA
	VertexHover color.RGBA
	EdgeHover   color.RGBA
	Label       color.RGBA
	Guide       color.RGBA
}

// Default returns the built in theme used when nothing else is configured.
func Default() *Theme {
	return &Theme{
		Name:            "Default",
		Background:      color.RGBA{64, 64, 64, 255},
		Foreground:      color.RGBA{0, 0, 0, 255},
		Sidebar:         color.RGBA{220, 220, 220, 255},
		SidebarSelected: color.RGBA{150, 180, 230, 255},
		Outline:         color.RGBA{255, 255, 0, 255},
		OutlineSelected: color.RGBA{255, 0, 0, 255},
		Hole:            color.RGBA{255, 128, 0, 255},
		NewShape:        color.RGBA{0, 255, 0, 255},
		NewShapeFill:    color.RGBA{0, 255, 0, 96},
		Vertex:          color.RGBA{255, 255, 255, 255},
		VertexHover:     color.RGBA{255, 0, 255, 255},
		EdgeHover:       color.RGBA{0, 255, 255, 255},
		Label:           color.RGBA{255, 255, 255, 255},
		Guide:           color.RGBA{160, 160, 160, 255},
	}
}

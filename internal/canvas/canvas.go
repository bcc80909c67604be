// Package canvas provides the drawable surface the progress ring paints
// on, and a terminal implementation that rasterizes to braille dots.
//
// Coordinates passed to a Surface are logical pixels. The braille
// implementation scales them to dots, two dots wide and four tall per
// terminal cell.
package canvas

import (
	"github.com/charmbracelet/lipgloss"
)

// Surface is a 2D drawing context.
type Surface interface {
	// Resize sets the drawable area to width × height pixels and clears it.
	Resize(width, height int)
	// Clear erases everything drawn so far.
	Clear()
	// StrokeArc strokes the arc of radius r centered on (cx, cy) from
	// angle start to end, in radians, clockwise, with 0 pointing right.
	StrokeArc(cx, cy, r, start, end, lineWidth float64, color lipgloss.TerminalColor)
	// FillText draws text centered on (cx, cy). size is the font size in
	// pixels.
	FillText(text string, cx, cy, size float64, color lipgloss.TerminalColor)
}

// Canvas hands out its drawing surface. Context2D fails when the surface
// cannot be obtained.
type Canvas interface {
	Context2D() (Surface, error)
}

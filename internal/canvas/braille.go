package canvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DefaultScale maps logical pixels to braille dots when no scale is set.
const DefaultScale = 0.25

const brailleBase = 0x2800

// dotBits[x][y] is the braille bit for the dot at column x, row y of a cell.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type glyph struct {
	r     rune
	color lipgloss.TerminalColor
	bold  bool
	// cont marks the right half of a double-width rune.
	cont bool
}

type cell struct {
	bits  uint8
	color lipgloss.TerminalColor
	text  *glyph
}

// Braille is a Canvas and Surface that rasterizes to braille characters.
// The last color drawn into a cell wins.
type Braille struct {
	scale      float64
	dotsW      int
	dotsH      int
	cols, rows int
	cells      []cell
}

// NewBraille creates an empty braille canvas. A scale of zero or less uses
// DefaultScale.
func NewBraille(scale float64) *Braille {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Braille{scale: scale}
}

// Context2D returns the canvas itself.
func (b *Braille) Context2D() (Surface, error) {
	return b, nil
}

// Resize implements Surface.
func (b *Braille) Resize(width, height int) {
	b.dotsW, b.dotsH = b.dots(width), b.dots(height)
	b.cols, b.rows = b.Measure(width, height)
	b.cells = make([]cell, b.cols*b.rows)
}

// Measure returns the size in terminal cells that a width × height pixel
// surface takes, without resizing.
func (b *Braille) Measure(width, height int) (cols, rows int) {
	return (b.dots(width) + 1) / 2, (b.dots(height) + 3) / 4
}

func (b *Braille) dots(px int) int {
	return int(math.Ceil(float64(max(px, 0)) * b.scale))
}

// Clear implements Surface.
func (b *Braille) Clear() {
	clear(b.cells)
}

// Size returns the canvas size in terminal cells.
func (b *Braille) Size() (cols, rows int) {
	return b.cols, b.rows
}

// StrokeArc implements Surface.
func (b *Braille) StrokeArc(cx, cy, r, start, end, lineWidth float64, color lipgloss.TerminalColor) {
	if end == start || r <= 0 {
		return
	}
	dcx, dcy, dr := cx*b.scale, cy*b.scale, r*b.scale
	half := math.Max(lineWidth*b.scale, 1) / 2

	// Enough angular steps that neighbouring samples on the outer edge
	// are at most half a dot apart.
	steps := int(math.Ceil(math.Abs(end-start) * (dr + half) * 2))
	steps = max(steps, 1)

	for i := 0; i <= steps; i++ {
		a := start + (end-start)*float64(i)/float64(steps)
		cos, sin := math.Cos(a), math.Sin(a)
		for rr := dr - half; rr <= dr+half; rr += 0.5 {
			b.set(int(math.Round(dcx+rr*cos)), int(math.Round(dcy+rr*sin)), color)
		}
	}
}

// FillText implements Surface. Text is laid out on the cell row holding
// cy; sizes of two cell rows or more render bold.
func (b *Braille) FillText(text string, cx, cy, size float64, color lipgloss.TerminalColor) {
	if b.cols == 0 || b.rows == 0 {
		return
	}
	row := int(cy*b.scale) / 4
	if row < 0 || row >= b.rows {
		return
	}
	bold := size*b.scale >= 8

	col := int(cx*b.scale)/2 - runewidth.StringWidth(text)/2
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= b.cols {
			b.cells[row*b.cols+col].text = &glyph{r: r, color: color, bold: bold}
			if w == 2 {
				b.cells[row*b.cols+col+1].text = &glyph{cont: true}
			}
		}
		col += w
	}
}

func (b *Braille) set(x, y int, color lipgloss.TerminalColor) {
	if x < 0 || y < 0 || x >= b.dotsW || y >= b.dotsH {
		return
	}
	c := &b.cells[(y/4)*b.cols+x/2]
	c.bits |= dotBits[x%2][y%4]
	c.color = color
}

// dot reports whether the dot at (x, y) is set.
func (b *Braille) dot(x, y int) bool {
	if x < 0 || y < 0 || x >= b.dotsW || y >= b.dotsH {
		return false
	}
	return b.cells[(y/4)*b.cols+x/2].bits&dotBits[x%2][y%4] != 0
}

// Render returns the canvas as lines of styled braille characters. Empty
// cells render as spaces.
func (b *Braille) Render() string {
	lines := make([]string, b.rows)
	for y := 0; y < b.rows; y++ {
		var line strings.Builder
		var run strings.Builder
		var runStyle lipgloss.Style
		var runKey string

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runKey == "" {
				line.WriteString(run.String())
			} else {
				line.WriteString(runStyle.Render(run.String()))
			}
			run.Reset()
		}

		for x := 0; x < b.cols; x++ {
			c := b.cells[y*b.cols+x]
			var ch string
			var style lipgloss.Style
			var key string

			switch {
			case c.text != nil && c.text.cont:
				continue
			case c.text != nil:
				ch = string(c.text.r)
				style, key = styleFor(c.text.color, c.text.bold)
			case c.bits != 0:
				ch = string(rune(brailleBase + int(c.bits)))
				style, key = styleFor(c.color, false)
			default:
				ch = " "
			}

			if key != runKey {
				flush()
				runStyle, runKey = style, key
			}
			run.WriteString(ch)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// styleFor returns the style for a color and a key identifying it, empty
// when unstyled.
func styleFor(color lipgloss.TerminalColor, bold bool) (lipgloss.Style, string) {
	style := lipgloss.NewStyle()
	key := ""
	if color != nil {
		style = style.Foreground(color)
		key = colorKey(color)
	}
	if bold {
		style = style.Bold(true)
		key += "+b"
	}
	return style, key
}

func colorKey(color lipgloss.TerminalColor) string {
	switch c := color.(type) {
	case lipgloss.Color:
		return string(c)
	case lipgloss.AdaptiveColor:
		return c.Light + "/" + c.Dark
	default:
		r, g, bl, a := c.RGBA()
		return fmt.Sprintf("%d,%d,%d,%d", r, g, bl, a)
	}
}

package progress

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/trek/internal/canvas"
	"github.com/henri123lemoine/trek/internal/debug"
	"github.com/henri123lemoine/trek/internal/reactive"
	"github.com/henri123lemoine/trek/internal/theme"
	"github.com/henri123lemoine/trek/internal/ui"
)

// ErrSurfaceUnavailable is returned by Initialize when the canvas cannot
// hand out a drawing surface.
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

const (
	// DefaultDuration is how long one animation runs.
	DefaultDuration = 3500 * time.Millisecond
	// DefaultFPS is the default frame rate.
	DefaultFPS = 60
	// MinRadius is the smallest ring radius, in pixels.
	MinRadius = 50

	ringInset = 10
	ringWidth = 10
	// startAngle puts 0% at twelve o'clock.
	startAngle = -math.Pi / 2
)

// DefaultColor is the arc color when none is given.
var DefaultColor = lipgloss.Color("#6a5acd")

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// State is the engine lifecycle state.
type State int

const (
	Idle State = iota
	DrawingBackground
	Animating
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DrawingBackground:
		return "drawing-background"
	case Animating:
		return "animating"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FrameMsg requests one animation frame. Frames whose Run is not the
// engine's current run are stale and ignored.
type FrameMsg struct {
	ID   int
	Run  int
	Time time.Time
}

// CompleteMsg is sent when an animation settles at 100% or more.
type CompleteMsg struct {
	ID    int
	Value float64
}

// Options configures an Engine.
type Options struct {
	// Duration of one animation. Zero means DefaultDuration.
	Duration time.Duration
	// FPS is the frame rate. Zero means DefaultFPS.
	FPS int
	// Scale maps pixels to braille dots for the Model's canvas. Zero
	// means canvas.DefaultScale.
	Scale float64
	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
	// Log receives state transitions. Nil discards them.
	Log debug.Logger
}

// Engine draws a progress ring onto a canvas surface and animates it
// from 0 to a target value over a fixed duration. It is driven by
// FrameMsg values delivered to Update.
type Engine struct {
	id    int
	run   int
	state State

	surface canvas.Surface
	radius  float64
	color   lipgloss.TerminalColor
	theme   theme.Theme
	size    theme.Size

	target   float64
	start    time.Time
	duration time.Duration
	interval time.Duration
	now      func() time.Time

	values *reactive.Signal[float64]
	log    debug.Logger
}

// NewEngine creates an idle engine.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		id:       nextID(),
		duration: opts.Duration,
		now:      opts.Clock,
		log:      opts.Log,
		values:   reactive.NewComparableSignal(0.0),
	}
	if e.duration <= 0 {
		e.duration = DefaultDuration
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	e.interval = time.Second / time.Duration(fps)
	if e.now == nil {
		e.now = time.Now
	}
	if e.log == nil {
		e.log = debug.Discard
	}
	return e
}

// ID returns the engine's unique id, carried on its messages.
func (e *Engine) ID() int {
	return e.id
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Values publishes the value drawn on every frame.
func (e *Engine) Values() *reactive.Signal[float64] {
	return e.values
}

// Radius returns the effective radius after clamping.
func (e *Engine) Radius() float64 {
	return e.radius
}

// Initialize binds the engine to c and draws the empty ring. The radius
// is raised to MinRadius if smaller; a nil color uses DefaultColor. Any
// animation in flight is cancelled.
func (e *Engine) Initialize(c canvas.Canvas, radius float64, color lipgloss.TerminalColor, t theme.Theme, size theme.Size) error {
	if c == nil {
		return fmt.Errorf("%w: no canvas", ErrSurfaceUnavailable)
	}
	surface, err := c.Context2D()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	if surface == nil {
		return fmt.Errorf("%w: nil surface", ErrSurfaceUnavailable)
	}

	e.run++
	e.surface = surface
	e.radius = math.Max(radius, MinRadius)
	e.color = color
	if e.color == nil {
		e.color = DefaultColor
	}
	e.theme = t
	e.size = size

	e.setState(DrawingBackground)
	side := int(math.Ceil(2 * e.radius))
	e.surface.Resize(side, side)
	e.drawBackground()
	return nil
}

// Animate starts a new run toward target, clamped to [0, 100], cancelling
// any previous run. It returns the command for the first frame, or nil if
// the engine has not been initialized.
func (e *Engine) Animate(target float64) tea.Cmd {
	if e.surface == nil {
		e.log("animate(%v) ignored: not initialized", target)
		return nil
	}
	e.run++
	e.target = clamp(target)
	e.start = e.now()
	e.setState(Animating)
	return e.frame()
}

// Update handles FrameMsg for this engine's current run.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	f, ok := msg.(FrameMsg)
	if !ok || f.ID != e.id || f.Run != e.run || e.state != Animating {
		return nil
	}

	fraction := math.Min(float64(e.now().Sub(e.start))/float64(e.duration), 1)
	fraction = math.Max(fraction, 0)
	value := fraction * e.target
	e.draw(value)

	if fraction < 1 {
		return e.frame()
	}

	e.setState(Settled)
	if value < 100 {
		return nil
	}
	id := e.id
	return func() tea.Msg {
		return CompleteMsg{ID: id, Value: value}
	}
}

// DrawValue draws a single frame at value without animating.
func (e *Engine) DrawValue(value float64) {
	if e.surface == nil {
		return
	}
	e.run++
	e.target = clamp(value)
	e.draw(e.target)
	e.setState(Settled)
}

// Destroy cancels any pending frame and releases the surface. It is safe
// to call more than once.
func (e *Engine) Destroy() {
	e.run++
	e.surface = nil
	e.setState(Idle)
}

func (e *Engine) frame() tea.Cmd {
	id, run := e.id, e.run
	return tea.Tick(e.interval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Run: run, Time: t}
	})
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.log("ring %d: %s -> %s", e.id, e.state, s)
	e.state = s
}

func (e *Engine) drawBackground() {
	e.surface.Clear()
	r := e.radius
	e.surface.StrokeArc(r, r, r-ringInset, 0, 2*math.Pi, ringWidth, trackColor(e.theme))
}

func (e *Engine) draw(value float64) {
	e.drawBackground()

	r := e.radius
	sweep := 2 * math.Pi * value / 100
	e.surface.StrokeArc(r, r, r-ringInset, startAngle, startAngle+sweep, ringWidth, e.color)
	e.surface.FillText(Label(value), r, r, r*fontFactor(e.size), labelColor(e.theme))

	e.values.Set(value)
}

// Label formats value as a rounded percentage.
func Label(value float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(value)))
}

func fontFactor(s theme.Size) float64 {
	switch s {
	case theme.Small:
		return 0.3
	case theme.Medium:
		return 0.4
	case theme.Large:
		return 0.5
	default:
		return 0.6
	}
}

func trackColor(t theme.Theme) lipgloss.TerminalColor {
	return ui.PaletteFor(t).Track
}

func labelColor(t theme.Theme) lipgloss.TerminalColor {
	return ui.PaletteFor(t).Text
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, 0), 100)
}

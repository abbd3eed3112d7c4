package imagecrop

import "math"

// Display box the source image is fitted into, aspect-preserving.
const (
	MaxDisplayWidth  = 600
	MaxDisplayHeight = 500
)

// Crop circle limits, in display pixels.
const (
	MinRadius = 50
	MaxRadius = 500

	// Pointer-down within this distance of the circle edge grabs a resize.
	edgeGrabTolerance = 20
)

// State is the editor interaction state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizing
)

// Point is a position in display coordinates.
type Point struct {
	X float64
	Y float64
}

// Editor models the interactive crop circle over a displayed image. All
// pointer coordinates are display pixels; Render maps the selection back to
// natural pixels.
type Editor struct {
	naturalW int
	naturalH int

	displayW float64
	displayH float64

	center Point
	radius float64

	rotation int // degrees, multiple of 90 in [0, 360)

	state      State
	grabOffset Point // pointer offset from center at drag start
}

// NewEditor fits the natural image into the display box and centers the
// crop circle at the largest radius that fits.
func NewEditor(naturalW, naturalH int) *Editor {
	e := &Editor{naturalW: naturalW, naturalH: naturalH}

	scale := math.Min(1, math.Min(
		MaxDisplayWidth/float64(naturalW),
		MaxDisplayHeight/float64(naturalH),
	))
	e.displayW = float64(naturalW) * scale
	e.displayH = float64(naturalH) * scale

	e.center = Point{X: e.displayW / 2, Y: e.displayH / 2}
	e.radius = e.clampRadius(math.Min(e.displayW, e.displayH) / 2)
	return e
}

// DisplaySize returns the fitted display dimensions.
func (e *Editor) DisplaySize() (w, h float64) {
	return e.displayW, e.displayH
}

// Circle returns the crop circle's center and radius in display pixels.
func (e *Editor) Circle() (center Point, radius float64) {
	return e.center, e.radius
}

// State returns the current interaction state.
func (e *Editor) State() State {
	return e.state
}

// Rotation returns the accumulated rotation in degrees, in [0, 360).
func (e *Editor) Rotation() int {
	return e.rotation
}

// PointerDown starts a drag when pressed inside the circle or a resize
// when pressed near its edge.
func (e *Editor) PointerDown(p Point) {
	dist := distance(p, e.center)
	switch {
	case math.Abs(dist-e.radius) <= edgeGrabTolerance:
		e.state = StateResizing
	case dist < e.radius-edgeGrabTolerance:
		e.state = StateDragging
		e.grabOffset = Point{X: p.X - e.center.X, Y: p.Y - e.center.Y}
	}
}

// PointerMove updates the circle while dragging or resizing.
func (e *Editor) PointerMove(p Point) {
	switch e.state {
	case StateDragging:
		e.center = e.clampCenter(Point{X: p.X - e.grabOffset.X, Y: p.Y - e.grabOffset.Y})
	case StateResizing:
		// Radius follows the pointer; the center stays fixed.
		e.radius = e.clampRadius(distance(p, e.center))
	}
}

// PointerUp ends any drag or resize.
func (e *Editor) PointerUp() {
	e.state = StateIdle
}

// PointerLeave ends any drag or resize, same as release.
func (e *Editor) PointerLeave() {
	e.state = StateIdle
}

// RotateClockwise adds 90 degrees, wrapping modulo 360.
func (e *Editor) RotateClockwise() {
	e.rotate(90)
}

// RotateCounterClockwise subtracts 90 degrees, wrapping modulo 360.
func (e *Editor) RotateCounterClockwise() {
	e.rotate(-90)
}

func (e *Editor) rotate(delta int) {
	e.rotation = ((e.rotation+delta)%360 + 360) % 360
}

// CropRect returns the square bounding the crop circle in display pixels.
func (e *Editor) CropRect() (x, y, size float64) {
	return e.center.X - e.radius, e.center.Y - e.radius, 2 * e.radius
}

// clampCenter keeps the whole circle inside the displayed image bounds.
func (e *Editor) clampCenter(c Point) Point {
	c.X = clamp(c.X, e.radius, e.displayW-e.radius)
	c.Y = clamp(c.Y, e.radius, e.displayH-e.radius)
	return c
}

// clampRadius bounds the radius to [MinRadius, MaxRadius] and to the
// largest circle that still fits around the current center.
func (e *Editor) clampRadius(r float64) float64 {
	fit := math.Min(
		math.Min(e.center.X, e.displayW-e.center.X),
		math.Min(e.center.Y, e.displayH-e.center.Y),
	)
	r = math.Min(r, fit)
	return clamp(r, MinRadius, MaxRadius)
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

package imagecrop

import (
	"math"
	"testing"
)

func TestNewEditorFitsDisplayBox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		naturalW int
		naturalH int
		wantW    float64
		wantH    float64
	}{
		{name: "wide image", naturalW: 1200, naturalH: 500, wantW: 600, wantH: 250},
		{name: "tall image", naturalW: 500, naturalH: 1000, wantW: 250, wantH: 500},
		{name: "small image unscaled", naturalW: 400, naturalH: 300, wantW: 400, wantH: 300},
		{name: "exact fit", naturalW: 600, naturalH: 500, wantW: 600, wantH: 500},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := NewEditor(tt.naturalW, tt.naturalH)
			w, h := e.DisplaySize()
			if math.Abs(w-tt.wantW) > 1e-9 || math.Abs(h-tt.wantH) > 1e-9 {
				t.Fatalf("display = %.1fx%.1f, want %.1fx%.1f", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPointerDownStates(t *testing.T) {
	t.Parallel()

	e := NewEditor(600, 500)
	center, radius := e.Circle()

	// Inside the inner region starts a drag.
	e.PointerDown(Point{X: center.X, Y: center.Y})
	if e.State() != StateDragging {
		t.Fatalf("state = %v, want dragging", e.State())
	}
	e.PointerUp()
	if e.State() != StateIdle {
		t.Fatalf("state = %v, want idle after release", e.State())
	}

	// Within the edge annulus starts a resize.
	e.PointerDown(Point{X: center.X + radius - 5, Y: center.Y})
	if e.State() != StateResizing {
		t.Fatalf("state = %v, want resizing", e.State())
	}
	e.PointerLeave()
	if e.State() != StateIdle {
		t.Fatalf("state = %v, want idle after leave", e.State())
	}

	// Far outside the circle does nothing.
	e.PointerDown(Point{X: center.X + radius + edgeGrabTolerance + 10, Y: center.Y})
	if e.State() != StateIdle {
		t.Fatalf("state = %v, want idle for outside press", e.State())
	}
}

func TestDragClampsToBounds(t *testing.T) {
	t.Parallel()

	e := NewEditor(600, 500)
	center, radius := e.Circle()
	w, h := e.DisplaySize()

	e.PointerDown(center)
	e.PointerMove(Point{X: -1000, Y: -1000})
	got, _ := e.Circle()
	if got.X != radius || got.Y != radius {
		t.Fatalf("center = %+v, want clamped to (%.0f, %.0f)", got, radius, radius)
	}

	e.PointerMove(Point{X: w + 1000, Y: h + 1000})
	got, _ = e.Circle()
	if got.X != w-radius || got.Y != h-radius {
		t.Fatalf("center = %+v, want clamped to (%.0f, %.0f)", got, w-radius, h-radius)
	}
}

func TestResizeKeepsCenterAndClampsRadius(t *testing.T) {
	t.Parallel()

	e := NewEditor(600, 500)
	e.PointerDown(Point{X: 300, Y: 250}) // drag to ensure a known center
	e.PointerMove(Point{X: 300, Y: 250})
	e.PointerUp()

	center, radius := e.Circle()
	e.PointerDown(Point{X: center.X + radius, Y: center.Y})
	if e.State() != StateResizing {
		t.Fatalf("state = %v, want resizing", e.State())
	}

	// Shrink toward the center; radius hits the floor, center is unmoved.
	e.PointerMove(Point{X: center.X + 10, Y: center.Y})
	gotCenter, gotRadius := e.Circle()
	if gotCenter != center {
		t.Fatalf("center moved during resize: %+v -> %+v", center, gotCenter)
	}
	if gotRadius != MinRadius {
		t.Fatalf("radius = %.0f, want floor %d", gotRadius, MinRadius)
	}

	// Grow far past the image; radius clamps to the largest circle that fits.
	e.PointerMove(Point{X: center.X + 2000, Y: center.Y})
	gotCenter, gotRadius = e.Circle()
	if gotCenter != center {
		t.Fatalf("center moved during resize: %+v -> %+v", center, gotCenter)
	}
	if gotRadius != 250 {
		t.Fatalf("radius = %.0f, want 250 for 600x500 display", gotRadius)
	}
}

func TestRotationWrapsModulo360(t *testing.T) {
	t.Parallel()

	e := NewEditor(600, 500)
	if e.Rotation() != 0 {
		t.Fatalf("initial rotation = %d, want 0", e.Rotation())
	}

	for i := 0; i < 5; i++ {
		e.RotateClockwise()
	}
	if e.Rotation() != 90 {
		t.Fatalf("rotation after 5 clockwise turns = %d, want 90", e.Rotation())
	}

	e.RotateCounterClockwise()
	e.RotateCounterClockwise()
	if e.Rotation() != 270 {
		t.Fatalf("rotation = %d, want 270", e.Rotation())
	}

	// Rotation is independent of drag state.
	e.PointerDown(Point{X: 300, Y: 250})
	e.RotateClockwise()
	if e.Rotation() != 0 {
		t.Fatalf("rotation = %d, want 0", e.Rotation())
	}
	if e.State() != StateDragging {
		t.Fatalf("rotation changed interaction state to %v", e.State())
	}
}

package imagecrop

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

// quadImage builds an image with a distinct color per quadrant:
// top-left red, top-right green, bottom-left blue, bottom-right yellow.
func quadImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	colors := [2][2]color.RGBA{
		{{R: 255, A: 255}, {G: 255, A: 255}},
		{{B: 255, A: 255}, {R: 255, G: 255, A: 255}},
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, colors[2*y/h][2*x/w])
		}
	}
	return img
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	return img
}

func sameColor(got color.Color, want color.RGBA) bool {
	r, g, b, _ := got.RGBA()
	diff := func(a uint32, b uint8) int {
		d := int(a>>8) - int(b)
		if d < 0 {
			d = -d
		}
		return d
	}
	const tol = 64
	return diff(r, want.R) < tol && diff(g, want.G) < tol && diff(b, want.B) < tol
}

func TestRasterizeQuadrantMapping(t *testing.T) {
	t.Parallel()

	var (
		red    = color.RGBA{R: 255, A: 255}
		green  = color.RGBA{G: 255, A: 255}
		blue   = color.RGBA{B: 255, A: 255}
		yellow = color.RGBA{R: 255, G: 255, A: 255}
	)

	// Non-uniform mapping: natural 1200x1000 shown at 600x250 means the
	// horizontal scale is 2 and the vertical scale is 4.
	src := quadImage(1200, 1000)
	opts := RenderOptions{
		CropX:    0,
		CropY:    0,
		CropSize: 240,
		DisplayW: 600,
		DisplayH: 250,
	}

	tests := []struct {
		rotation                                   int
		topLeft, topRight, bottomLeft, bottomRight color.RGBA
	}{
		{rotation: 0, topLeft: red, topRight: green, bottomLeft: blue, bottomRight: yellow},
		{rotation: 90, topLeft: blue, topRight: red, bottomLeft: yellow, bottomRight: green},
		{rotation: 180, topLeft: yellow, topRight: blue, bottomLeft: green, bottomRight: red},
		{rotation: 270, topLeft: green, topRight: yellow, bottomLeft: red, bottomRight: blue},
	}

	// Center the crop on the quadrant intersection so each output quadrant
	// maps to one source quadrant.
	opts.CropX = 600/2 - 120
	opts.CropY = 250/2 - 120

	for _, tt := range tests {
		tt := tt
		opts.Rotation = tt.rotation
		data, err := Rasterize(src, opts)
		if err != nil {
			t.Fatalf("rasterize rotation %d: %v", tt.rotation, err)
		}
		out := decodeJPEG(t, data)

		side := out.Bounds().Dx()
		if side != 240 {
			t.Fatalf("output side = %d, want 240", side)
		}

		quarter := side / 4
		checks := []struct {
			x, y int
			want color.RGBA
			name string
		}{
			{quarter, quarter, tt.topLeft, "top-left"},
			{3 * quarter, quarter, tt.topRight, "top-right"},
			{quarter, 3 * quarter, tt.bottomLeft, "bottom-left"},
			{3 * quarter, 3 * quarter, tt.bottomRight, "bottom-right"},
		}
		for _, check := range checks {
			if !sameColor(out.At(check.x, check.y), check.want) {
				t.Fatalf("rotation %d: %s pixel = %v, want %v", tt.rotation, check.name, out.At(check.x, check.y), check.want)
			}
		}
	}
}

func TestRasterizeMasksOutsideCircle(t *testing.T) {
	t.Parallel()

	src := quadImage(400, 400)
	data, err := Rasterize(src, RenderOptions{
		CropX: 80, CropY: 80, CropSize: 200,
		DisplayW: 400, DisplayH: 400,
	})
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	out := decodeJPEG(t, data)

	// Corners of the square lie outside the circle and must be black.
	if !sameColor(out.At(2, 2), color.RGBA{A: 255}) {
		t.Fatalf("corner pixel = %v, want black", out.At(2, 2))
	}
}

func TestRasterizeRejectsBadInput(t *testing.T) {
	t.Parallel()

	src := quadImage(100, 100)
	if _, err := Rasterize(nil, RenderOptions{CropSize: 100, DisplayW: 100, DisplayH: 100}); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := Rasterize(src, RenderOptions{CropSize: 0, DisplayW: 100, DisplayH: 100}); err == nil {
		t.Fatal("expected error for zero crop size")
	}
	if _, err := Rasterize(src, RenderOptions{CropSize: 100, DisplayW: 100, DisplayH: 100, Rotation: 45}); err == nil {
		t.Fatal("expected error for non-right-angle rotation")
	}
}

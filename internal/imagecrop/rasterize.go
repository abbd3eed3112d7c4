package imagecrop

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"math"
)

const jpegQuality = 90

// Render rasterizes the editor's current selection from the full-resolution
// source image.
func (e *Editor) Render(src image.Image) ([]byte, error) {
	x, y, size := e.CropRect()
	return Rasterize(src, RenderOptions{
		CropX:    x,
		CropY:    y,
		CropSize: size,
		DisplayW: e.displayW,
		DisplayH: e.displayH,
		Rotation: e.rotation,
	})
}

// RenderOptions describes a crop selection in display coordinates against
// a source image of known natural size.
type RenderOptions struct {
	CropX    float64
	CropY    float64
	CropSize float64
	DisplayW float64
	DisplayH float64
	Rotation int
}

// Rasterize produces the rotated, circularly masked square crop as a JPEG.
// The on-screen crop rectangle is scaled to natural pixels independently per
// axis: when the displayed image is letterboxed against the fixed display
// box, horizontal and vertical scale differ and a uniform factor would
// sample the wrong region.
func Rasterize(src image.Image, opts RenderOptions) ([]byte, error) {
	if src == nil {
		return nil, errors.New("source image required")
	}
	if opts.CropSize <= 0 || opts.DisplayW <= 0 || opts.DisplayH <= 0 {
		return nil, errors.New("invalid crop geometry")
	}
	if opts.Rotation%90 != 0 {
		return nil, errors.New("rotation must be a multiple of 90")
	}

	bounds := src.Bounds()
	naturalW := float64(bounds.Dx())
	naturalH := float64(bounds.Dy())

	scaleX := naturalW / opts.DisplayW
	scaleY := naturalH / opts.DisplayH

	srcX := opts.CropX * scaleX
	srcY := opts.CropY * scaleY
	srcW := opts.CropSize * scaleX
	srcH := opts.CropSize * scaleY

	side := int(math.Round(opts.CropSize))
	out := image.NewRGBA(image.Rect(0, 0, side, side))

	center := float64(side) / 2
	theta := float64(opts.Rotation) * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)

	for oy := 0; oy < side; oy++ {
		for ox := 0; ox < side; ox++ {
			px := float64(ox) + 0.5
			py := float64(oy) + 0.5

			// Circular clip.
			if math.Hypot(px-center, py-center) > center {
				continue
			}

			// Invert the canvas rotation about its center.
			dx := px - center
			dy := py - center
			rx := dx*cos + dy*sin + center
			ry := -dx*sin + dy*cos + center

			// Map canvas coordinates onto the natural-pixel crop rectangle.
			sx := srcX + rx/float64(side)*srcW
			sy := srcY + ry/float64(side)*srcH

			ix := bounds.Min.X + int(math.Floor(sx))
			iy := bounds.Min.Y + int(math.Floor(sy))
			if ix < bounds.Min.X || ix >= bounds.Max.X || iy < bounds.Min.Y || iy >= bounds.Max.Y {
				continue
			}

			out.Set(ox, oy, src.At(ix, iy))
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, opaque(out), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// opaque flattens the masked RGBA onto black, matching how an alpha-less
// encoder treats untouched canvas pixels.
func opaque(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			if a == 0 {
				out.Set(x, y, color.Black)
				continue
			}
			out.Set(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255})
		}
	}
	return out
}

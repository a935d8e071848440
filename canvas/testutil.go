package canvas

import (
	"image"
	"image/color"
	"math"
)

// MeanSquaredError compares two same-sized images over the RGB
// channels. Images of different sizes compare as math.MaxFloat64.
func MeanSquaredError(a, b *image.RGBA) float64 {
	if a.Bounds().Size() != b.Bounds().Size() {
		return math.MaxFloat64
	}
	size := a.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return 0
	}
	var sum float64
	for y := 0; y < size.Y; y++ {
		ra := a.Pix[a.PixOffset(a.Bounds().Min.X, a.Bounds().Min.Y+y):][:size.X*4]
		rb := b.Pix[b.PixOffset(b.Bounds().Min.X, b.Bounds().Min.Y+y):][:size.X*4]
		for i := 0; i < len(ra); i += 4 {
			for ch := 0; ch < 3; ch++ {
				d := float64(ra[i+ch]) - float64(rb[i+ch])
				sum += d * d
			}
		}
	}
	return sum / float64(size.X*size.Y*3)
}

// Equal reports whether two images have identical bounds and pixels.
func Equal(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}

// CountColor returns how many pixels inside rect are exactly c.
func CountColor(img *image.RGBA, rect image.Rectangle, c color.RGBA) int {
	rect = rect.Intersect(img.Bounds())
	n := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

// InkBounds returns the smallest rectangle containing every pixel that
// differs from bg. The result is empty if the image is solid bg.
func InkBounds(img *image.RGBA, bg color.RGBA) image.Rectangle {
	var ink image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				ink = ink.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return ink
}

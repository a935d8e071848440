package canvas

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationSmooth uses Catmull-Rom, the highest quality kernel
	// x/image offers for downscaling supersampled output.
	InterpolationSmooth Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize scales the canvas to width x height using the given
// interpolation method and returns the result as a new Canvas.
func Resize(c *Canvas, width, height int, interp Interpolation) *Canvas {
	dst := &Canvas{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	interp.scaler().Scale(dst.RGBA, dst.Bounds(), c.RGBA, c.Bounds(), draw.Src, nil)
	return dst
}

// Downsample shrinks the canvas by an integer factor per axis with the
// smoothing filter. Factors below 2 return c unchanged.
func (c *Canvas) Downsample(factor int) *Canvas {
	if factor <= 1 {
		return c
	}
	return Resize(c, c.Width()/factor, c.Height()/factor, InterpolationSmooth)
}

package filters

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/colormath"
)

// pixelFunc maps one RGB triple in the 0..255 domain. Inputs and outputs are
// unclamped floats; mapPixels saturates the final result.
type pixelFunc func(r, g, b float64) (float64, float64, float64)

// mapPixels runs fn over every pixel of bm into a new bitmap, keeping alpha.
func mapPixels(bm *bitmap.Bitmap, fn pixelFunc) (*bitmap.Bitmap, error) {
	if err := bm.Validate(); err != nil {
		return nil, err
	}
	out := &bitmap.Bitmap{Width: bm.Width, Height: bm.Height, Pix: make([]uint8, len(bm.Pix))}
	stride := bm.Width * 4

	parallel.Line(bm.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i += 4 {
			r, g, b := fn(float64(bm.Pix[i]), float64(bm.Pix[i+1]), float64(bm.Pix[i+2]))
			out.Pix[i] = colormath.ClampByte(r)
			out.Pix[i+1] = colormath.ClampByte(g)
			out.Pix[i+2] = colormath.ClampByte(b)
			out.Pix[i+3] = bm.Pix[i+3]
		}
	})

	return out, nil
}

// Grayscale replaces each channel with the plain average (r+g+b)/3.
// This is intentionally not luma weighted.
func Grayscale(bm *bitmap.Bitmap) (*bitmap.Bitmap, error) {
	return mapPixels(bm, grayPixel)
}

// Sepia applies the classic sepia tone matrix.
func Sepia(bm *bitmap.Bitmap) (*bitmap.Bitmap, error) {
	return mapPixels(bm, sepiaPixel)
}

// SelectiveGray desaturates pixels whose saturation, measured as
// (max-min)/max*100, is at most threshold. Other pixels pass through
// unchanged. There is no blending at the boundary.
func SelectiveGray(bm *bitmap.Bitmap, threshold float64) (*bitmap.Bitmap, error) {
	return mapPixels(bm, selectiveGrayPixel(threshold))
}

// Invert replaces each color channel v with 255-v.
func Invert(bm *bitmap.Bitmap) (*bitmap.Bitmap, error) {
	return mapPixels(bm, invertPixel)
}

// HueRotate shifts the hue of every pixel by degrees through an HSL round
// trip. Negative angles rotate the other way.
func HueRotate(bm *bitmap.Bitmap, degrees float64) (*bitmap.Bitmap, error) {
	return HSLAdjust(bm, 0, degrees)
}

// SaturationAdjust scales HSL saturation by 1+percent/100, clamped to [0,1].
func SaturationAdjust(bm *bitmap.Bitmap, percent float64) (*bitmap.Bitmap, error) {
	return HSLAdjust(bm, percent, 0)
}

// HSLAdjust applies a saturation scale and a hue rotation with a single HSL
// conversion per pixel. When both are zero the result is an identical copy.
func HSLAdjust(bm *bitmap.Bitmap, saturationPct, hueDegrees float64) (*bitmap.Bitmap, error) {
	if saturationPct == 0 && hueDegrees == 0 {
		if err := bm.Validate(); err != nil {
			return nil, err
		}
		return bm.Clone(), nil
	}
	return mapPixels(bm, hslPixel(saturationPct, hueDegrees))
}

func grayPixel(r, g, b float64) (float64, float64, float64) {
	avg := (r + g + b) / 3
	return avg, avg, avg
}

func sepiaPixel(r, g, b float64) (float64, float64, float64) {
	return 0.393*r + 0.769*g + 0.189*b,
		0.349*r + 0.686*g + 0.168*b,
		0.272*r + 0.534*g + 0.131*b
}

func invertPixel(r, g, b float64) (float64, float64, float64) {
	return 255 - r, 255 - g, 255 - b
}

func selectiveGrayPixel(threshold float64) pixelFunc {
	return func(r, g, b float64) (float64, float64, float64) {
		hi := max(r, g, b)
		lo := min(r, g, b)
		sat := 0.0
		if hi != 0 {
			sat = (hi - lo) / hi * 100
		}
		if sat <= threshold {
			return grayPixel(r, g, b)
		}
		return r, g, b
	}
}

func hslPixel(saturationPct, hueDegrees float64) pixelFunc {
	satScale := 1 + saturationPct/100
	hueShift := hueDegrees / 360
	return func(r, g, b float64) (float64, float64, float64) {
		h, s, l := colormath.RGBToHSL(r/255, g/255, b/255)
		if saturationPct != 0 {
			s = colormath.Clamp01(s * satScale)
		}
		if hueDegrees != 0 {
			h = colormath.WrapUnit(h + hueShift)
		}
		r, g, b = colormath.HSLToRGB(h, s, l)
		return r * 255, g * 255, b * 255
	}
}

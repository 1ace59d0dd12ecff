// Package colormath provides the scalar color conversions used by the pixel
// pipeline and the color filters.
//
// All functions are pure and operate on normalized channel values in [0,1]
// unless documented otherwise.
//
// # Transfer Curve
//
// SRGBToLinear and LinearToSRGB implement the piecewise sRGB transfer function:
//
//	linear = c/12.92                     for c <= 0.04045
//	linear = ((c+0.055)/1.055)^2.4       otherwise
//
// The inverse uses the 0.0031308 breakpoint. The two functions round-trip to
// within 1e-6 across [0,1].
//
// # Luma
//
// Luma uses the Rec. 709 weights (0.2126, 0.7152, 0.0722). It is the
// brightness measure for auto exposure and the saturation stage. The grayscale
// filter deliberately does not use it.
package colormath

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Rec. 709 luma weights.
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// SRGBToLinear converts a gamma-encoded sRGB channel value to linear light.
func SRGBToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear-light channel value back to sRGB encoding.
func LinearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

// Clamp01 saturates v into [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v > 0 {
		return v
	}
	return 0
}

// ClampByte rounds v to the nearest integer and saturates it into [0,255].
func ClampByte(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if !(v > 0) {
		return 0
	}
	return uint8(v + 0.5)
}

// Clamp limits v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Luma returns the Rec. 709 weighted brightness of normalized r, g, b.
func Luma(r, g, b float64) float64 {
	return LumaR*r + LumaG*g + LumaB*b
}

// RGBToHSL converts normalized RGB into HSL with every component in [0,1].
// Hue is expressed as a fraction of a full turn.
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	h, s, l = colorful.Color{R: r, G: g, B: b}.Hsl()
	return h / 360, s, l
}

// HSLToRGB is the inverse of RGBToHSL. Hue is taken modulo 1.
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	c := colorful.Hsl(WrapUnit(h)*360, s, l)
	return c.R, c.G, c.B
}

// WrapUnit maps v into [0,1) by taking it modulo 1, wrapping negatives.
func WrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	if v >= 1 {
		v = 0
	}
	return v
}

// Hex formats 8-bit RGB as "#RRGGBB".
func Hex(r, g, b uint8) string {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return strings.ToUpper(c.Hex())
}

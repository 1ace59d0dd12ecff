package pipeline

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/colormath"
)

// White balance gains per unit of normalized temperature.
const (
	tempGainR = 0.40
	tempGainG = 0.10
	tempGainB = 0.40
)

// minGamma keeps 1/gamma finite.
const minGamma = 0.01

// coefficients is the per-render constant part of the pipeline.
type coefficients struct {
	rGain, gGain, bGain float64 // brightness folded into white balance
	exposure            float64
	contrast            float64
	invGamma            float64
	saturation          float64
}

func newCoefficients(p Params, auto *AutoContext) coefficients {
	bf := math.Max(0, p.BrightnessPct) / 100
	t := colormath.Clamp(p.Temperature, MinTemperature, MaxTemperature) / 100
	return coefficients{
		rGain:      bf * (1 + tempGainR*t),
		gGain:      bf * (1 + tempGainG*t),
		bGain:      bf * (1 - tempGainB*t),
		exposure:   math.Pow(2, EVTotal(p, auto)),
		contrast:   math.Max(0, p.ContrastPct) / 100,
		invGamma:   1 / math.Max(minGamma, p.Gamma),
		saturation: math.Max(0, p.SaturationPct) / 100,
	}
}

// Apply runs the adjustment chain over every pixel of bm and returns a new
// bitmap of the same size. The input is not modified.
//
// Stage order is fixed:
//  1. brightness and white balance gains (sRGB)
//  2. exposure, 2^EVTotal applied in linear light
//  3. contrast, a linear stretch around 0.5
//  4. gamma, v^(1/gamma) after clamping to [0,1]
//  5. saturation, scaling each channel's distance from luma
//
// Alpha is copied verbatim. auto may be nil; it only has an effect when
// p.Auto.Enabled is set.
//
// Returns an error wrapping bitmap.ErrInvalidArgument when bm violates its
// size invariant.
func Apply(bm *bitmap.Bitmap, p Params, auto *AutoContext) (*bitmap.Bitmap, error) {
	if err := bm.Validate(); err != nil {
		return nil, err
	}

	k := newCoefficients(p, auto)
	out := &bitmap.Bitmap{Width: bm.Width, Height: bm.Height, Pix: make([]uint8, len(bm.Pix))}
	stride := bm.Width * 4

	parallel.Line(bm.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i += 4 {
			r, g, b := k.pixel(
				float64(bm.Pix[i])/255,
				float64(bm.Pix[i+1])/255,
				float64(bm.Pix[i+2])/255,
			)
			out.Pix[i] = colormath.ClampByte(r * 255)
			out.Pix[i+1] = colormath.ClampByte(g * 255)
			out.Pix[i+2] = colormath.ClampByte(b * 255)
			out.Pix[i+3] = bm.Pix[i+3]
		}
	})

	return out, nil
}

// pixel applies stages 1-5 to one normalized RGB triple.
func (k coefficients) pixel(r, g, b float64) (float64, float64, float64) {
	r *= k.rGain
	g *= k.gGain
	b *= k.bGain

	r = colormath.LinearToSRGB(colormath.SRGBToLinear(colormath.Clamp01(r)) * k.exposure)
	g = colormath.LinearToSRGB(colormath.SRGBToLinear(colormath.Clamp01(g)) * k.exposure)
	b = colormath.LinearToSRGB(colormath.SRGBToLinear(colormath.Clamp01(b)) * k.exposure)

	r = (r-0.5)*k.contrast + 0.5
	g = (g-0.5)*k.contrast + 0.5
	b = (b-0.5)*k.contrast + 0.5

	r = math.Pow(colormath.Clamp01(r), k.invGamma)
	g = math.Pow(colormath.Clamp01(g), k.invGamma)
	b = math.Pow(colormath.Clamp01(b), k.invGamma)

	y := colormath.Luma(r, g, b)
	r = y + (r-y)*k.saturation
	g = y + (g-y)*k.saturation
	b = y + (b-y)*k.saturation

	return r, g, b
}

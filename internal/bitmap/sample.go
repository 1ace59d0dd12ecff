package bitmap

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/photo-batch-mcp/internal/colormath"
)

// RGBAColor is an 8-bit color with straight alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor is a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorSample describes one pixel in several representations.
type ColorSample struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`

	// Luma is the Rec. 709 luma of the sRGB-encoded channels, in [0,1].
	Luma float64 `json:"luma"`
}

// Sample returns the color of the pixel at (x, y).
//
// Coordinates are 0-based from the top-left corner. Returns an error
// wrapping ErrInvalidArgument when the point lies outside the bitmap.
func (b *Bitmap) Sample(x, y int) (*ColorSample, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return nil, fmt.Errorf("%w: coordinates (%d,%d) outside image bounds %dx%d",
			ErrInvalidArgument, x, y, b.Width, b.Height)
	}

	i := b.Offset(x, y)
	r, g, bl, a := b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(bl)/255
	h, s, l := colormath.RGBToHSL(rf, gf, bf)

	return &ColorSample{
		X:    x,
		Y:    y,
		Hex:  colormath.Hex(r, g, bl),
		RGBA: RGBAColor{R: r, G: g, B: bl, A: a},
		HSL: HSLColor{
			H: int(math.Round(h*360)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		Luma: colormath.Luma(rf, gf, bf),
	}, nil
}

// ColorFrequency is a quantized color and the share of pixels that have it.
type ColorFrequency struct {
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"` // 0-100
}

// DominantColors returns up to count of the most frequent colors, most
// common first. Channels are quantized to multiples of 16 so near-identical
// colors are grouped. Alpha is ignored. Ties are ordered by hex value so the
// result is deterministic.
func (b *Bitmap) DominantColors(count int) ([]ColorFrequency, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidArgument, count)
	}

	counts := make(map[[3]uint8]int)
	for i := 0; i < len(b.Pix); i += 4 {
		key := [3]uint8{b.Pix[i] &^ 15, b.Pix[i+1] &^ 15, b.Pix[i+2] &^ 15}
		counts[key]++
	}

	total := float64(b.Width * b.Height)
	colors := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        colormath.Hex(c[0], c[1], c[2]),
			Percentage: float64(n) / total * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})
	if len(colors) > count {
		colors = colors[:count]
	}
	return colors, nil
}

package filters

import (
	"fmt"
	"math"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
)

// Mode selects the recolor applied near the end of the editor chain.
type Mode string

const (
	ModeNone           Mode = "none"
	ModeGrayscale      Mode = "grayscale"
	ModeSepia          Mode = "sepia"
	ModeSaturationGray Mode = "saturation-gray"
)

// ParseMode validates a mode name. An empty string means ModeNone.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeNone:
		return ModeNone, nil
	case ModeGrayscale, ModeSepia, ModeSaturationGray:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown filter mode: %s", bitmap.ErrInvalidArgument, s)
	}
}

// DefaultThreshold is the selective gray threshold used when none is given.
const DefaultThreshold = 50

// Settings configures the single-image editor chain.
type Settings struct {
	// Brightness is an additive offset in percent of full scale, -100..100.
	Brightness float64 `json:"brightness"`

	// Contrast is -100..100; 0 leaves the image unchanged.
	Contrast float64 `json:"contrast"`

	// Saturation scales HSL saturation by 1+Saturation/100.
	Saturation float64 `json:"saturation"`

	// Hue rotates HSL hue, in degrees.
	Hue float64 `json:"hue"`

	Invert bool `json:"invert"`

	Mode Mode `json:"mode"`

	// Threshold is the saturation percentage at or below which
	// ModeSaturationGray desaturates a pixel.
	Threshold float64 `json:"threshold"`

	// Blur is the box blur radius; it is rounded to the nearest integer.
	Blur float64 `json:"blur"`

	// Sharpen is the extra center weight of the sharpen kernel.
	Sharpen float64 `json:"sharpen"`
}

// IsNeutral reports whether Apply would return the input unchanged.
func (s Settings) IsNeutral() bool {
	return s.Brightness == 0 && s.Contrast == 0 && s.Saturation == 0 && s.Hue == 0 &&
		s.Blur == 0 && s.Sharpen == 0 && !s.Invert && (s.Mode == "" || s.Mode == ModeNone)
}

// Apply runs the editor chain over bm.
//
// Per pixel, in order: brightness offset, contrast around 128, one HSL round
// trip for saturation and hue, invert, then the mode recolor. Intermediate
// values are not clamped between those steps, only when written back. The
// box blur and the sharpen kernel then run over the whole image, in that
// order.
func Apply(bm *bitmap.Bitmap, s Settings) (*bitmap.Bitmap, error) {
	if err := bm.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return nil, err
	}
	if s.IsNeutral() {
		return bm.Clone(), nil
	}

	out, err := mapPixels(bm, chainPixel(s))
	if err != nil {
		return nil, err
	}
	if s.Blur > 0 {
		if out, err = BoxBlur(out, int(math.Round(s.Blur))); err != nil {
			return nil, err
		}
	}
	if s.Sharpen > 0 {
		if out, err = Sharpen(out, s.Sharpen); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func chainPixel(s Settings) pixelFunc {
	offset := s.Brightness / 100 * 255
	c := s.Contrast * 2.55
	factor := (259 * (c + 255)) / (255 * (259 - c))
	hsl := hslPixel(s.Saturation, s.Hue)
	selective := selectiveGrayPixel(s.Threshold)

	return func(r, g, b float64) (float64, float64, float64) {
		if s.Brightness != 0 {
			r, g, b = r+offset, g+offset, b+offset
		}
		if s.Contrast != 0 {
			r = factor*(r-128) + 128
			g = factor*(g-128) + 128
			b = factor*(b-128) + 128
		}
		if s.Saturation != 0 || s.Hue != 0 {
			r, g, b = hsl(r, g, b)
		}
		if s.Invert {
			r, g, b = invertPixel(r, g, b)
		}
		switch s.Mode {
		case ModeGrayscale:
			r, g, b = grayPixel(r, g, b)
		case ModeSepia:
			r, g, b = sepiaPixel(r, g, b)
		case ModeSaturationGray:
			r, g, b = selective(r, g, b)
		}
		return r, g, b
	}
}

package pipeline

import "github.com/ironsheep/photo-batch-mcp/internal/colormath"

// Parameter ranges enforced by Params.Clamped.
const (
	MinTemperature = -100.0
	MaxTemperature = 100.0
	MinExposureEV  = -4.0
	MaxExposureEV  = 4.0
	MinGamma       = 0.1
	MaxGamma       = 3.0
)

// AutoExposure holds the knobs of dataset-wide brightness equalization.
type AutoExposure struct {
	// Enabled turns the EV correction on.
	Enabled bool `json:"enabled"`

	// PivotOffset shifts the equalization target away from the dataset mean.
	PivotOffset float64 `json:"pivot_offset"`

	// Strength scales the correction linearly. Values above 1 overshoot.
	Strength float64 `json:"strength"`
}

// Params is the full set of tone and color adjustments for one render.
//
// Percentages use 100 as identity. The zero value is NOT the identity; use
// DefaultParams.
type Params struct {
	BrightnessPct float64      `json:"brightness_pct"`
	Temperature   float64      `json:"temperature"`
	ExposureEV    float64      `json:"exposure_ev"`
	ContrastPct   float64      `json:"contrast_pct"`
	Gamma         float64      `json:"gamma"`
	SaturationPct float64      `json:"saturation_pct"`
	Auto          AutoExposure `json:"auto_exposure"`
}

// DefaultParams returns the identity adjustment.
func DefaultParams() Params {
	return Params{
		BrightnessPct: 100,
		Temperature:   0,
		ExposureEV:    0,
		ContrastPct:   100,
		Gamma:         1.0,
		SaturationPct: 100,
		Auto: AutoExposure{
			Enabled:     false,
			PivotOffset: 0,
			Strength:    1,
		},
	}
}

// Clamped returns a copy with every field limited to its documented range.
// Out-of-range values are saturated, never rejected.
func (p Params) Clamped() Params {
	p.BrightnessPct = nonNegative(p.BrightnessPct)
	p.Temperature = colormath.Clamp(p.Temperature, MinTemperature, MaxTemperature)
	p.ExposureEV = colormath.Clamp(p.ExposureEV, MinExposureEV, MaxExposureEV)
	p.ContrastPct = nonNegative(p.ContrastPct)
	p.Gamma = colormath.Clamp(p.Gamma, MinGamma, MaxGamma)
	p.SaturationPct = nonNegative(p.SaturationPct)
	return p
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

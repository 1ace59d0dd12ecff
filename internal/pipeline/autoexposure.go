package pipeline

import (
	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/colormath"
)

// autoGain converts a luma difference into stops.
const autoGain = 0.75

// AutoContext couples one image to the statistics of its dataset.
type AutoContext struct {
	ImageMean   float64
	DatasetMean float64
	PivotOffset float64
	Strength    float64
}

// NewAutoContext builds the context for an item from its cached mean luma,
// the current dataset mean and the item's auto exposure settings.
func NewAutoContext(imageMean, datasetMean float64, a AutoExposure) *AutoContext {
	return &AutoContext{
		ImageMean:   imageMean,
		DatasetMean: datasetMean,
		PivotOffset: a.PivotOffset,
		Strength:    a.Strength,
	}
}

// EVDelta returns the exposure correction, in stops, that moves an image
// with mean luma imageMean toward the pivot clamp01(datasetMean+pivotOffset).
// A positive result brightens.
func EVDelta(datasetMean, imageMean, pivotOffset, strength float64) float64 {
	pivot := colormath.Clamp01(datasetMean + pivotOffset)
	return autoGain * strength * (pivot - imageMean)
}

// EVTotal is the exposure applied by Apply: p.ExposureEV plus the auto
// correction when auto is non-nil and p.Auto.Enabled is set.
func EVTotal(p Params, auto *AutoContext) float64 {
	ev := p.ExposureEV
	if auto != nil && p.Auto.Enabled {
		ev += EVDelta(auto.DatasetMean, auto.ImageMean, auto.PivotOffset, auto.Strength)
	}
	return ev
}

// MeanLuma returns the unweighted average over all pixels of the Rec. 709
// luma of the normalized color channels. Alpha is ignored. An empty bitmap
// yields 0.
func MeanLuma(bm *bitmap.Bitmap) float64 {
	n := len(bm.Pix) / 4
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i+3 < len(bm.Pix); i += 4 {
		sum += colormath.Luma(
			float64(bm.Pix[i])/255,
			float64(bm.Pix[i+1])/255,
			float64(bm.Pix[i+2])/255,
		)
	}
	return sum / float64(n)
}

// DatasetMean returns the arithmetic mean of per-item mean lumas, or 0 for
// an empty set.
func DatasetMean(means []float64) float64 {
	if len(means) == 0 {
		return 0
	}
	var sum float64
	for _, m := range means {
		sum += m
	}
	return sum / float64(len(means))
}

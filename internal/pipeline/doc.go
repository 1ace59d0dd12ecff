// Package pipeline implements the per-pixel tone and color adjustment chain
// and the auto exposure statistics that feed it.
//
// # Stage Order
//
// Apply processes every pixel through a fixed sequence. Reordering the stages
// changes the output:
//
//	brightness x white balance  ->  exposure (linear light)  ->  contrast
//	  ->  gamma  ->  saturation  ->  8-bit
//
// # Auto Exposure
//
// Auto exposure equalizes brightness across a batch. Each image contributes
// its mean luma (MeanLuma); the batch contributes the mean of those means
// (DatasetMean). At render time an image is pushed toward the pivot
//
//	pivot = clamp01(datasetMean + pivotOffset)
//
// by 0.75 * strength * (pivot - imageMean) stops, added to the manual EV.
//
// # Layered Parameters
//
// Params is a plain value. Per-item overrides are expressed as a Patch whose
// present fields win over a shared base when resolved; nothing is merged
// destructively.
//
// # Thread Safety
//
// All functions are pure. Apply splits its rows across goroutines internally
// and may be called concurrently on different bitmaps.
package pipeline

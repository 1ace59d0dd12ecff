// Package filters provides neighborhood and recolor operations on bitmaps.
//
// Spatial filters:
//   - BoxBlur: clipped square mean, window shrinks at the borders
//   - Sharpen: 3x3 cross kernel, border ring untouched
//   - Swirl: radial twist with nearest-neighbor sampling
//
// Color filters:
//   - Grayscale: unweighted channel average
//   - Sepia: fixed 3x3 matrix
//   - SelectiveGray: desaturate low-saturation pixels only
//   - HueRotate, SaturationAdjust, HSLAdjust: HSL round trips
//   - Invert
//
// Apply chains the color filters with the additive brightness and contrast
// controls of the single-image editor, followed by blur and sharpen.
//
// Every function returns a new bitmap and leaves alpha untouched (Swirl moves
// alpha together with color). Rows are processed in parallel; results do not
// depend on scheduling.
package filters

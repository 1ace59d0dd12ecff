// Package bitmap defines the RGBA raster exchanged between the editing
// packages, together with the image acquisition and encoding glue around it.
//
// # Pixel Layout
//
// A Bitmap stores Width*Height pixels in row-major order, four interleaved
// bytes per pixel (R, G, B, A). Color channels are not premultiplied by alpha,
// which matches the layout of canvas ImageData and of *image.NRGBA.
//
//   - (0,0) is the top-left pixel
//   - Offset(x, y) = (y*Width + x) * 4
//
// # Acquisition
//
// Decode and Open accept PNG, JPEG and GIF through the standard library and
// BMP, TIFF and WebP through golang.org/x/image. EXIF orientation is applied
// while decoding. When target dimensions are given the decoded image is
// scaled with a Lanczos filter; the editing packages never resample on their
// own.
//
// # Transforms
//
// Crop, Rotate, Flip and Resize change the geometry of a source image before
// it enters the editing pipeline. They return new bitmaps.
//
// # Errors
//
// Precondition violations (non-positive dimensions, a pixel buffer whose
// length disagrees with the dimensions, crop rectangles outside the image)
// wrap ErrInvalidArgument and can be tested with errors.Is.
package bitmap

package bitmap

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

var imageNameRe = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif|bmp|tiff?)$`)

// IsImageName reports whether name carries an extension the decoder accepts.
func IsImageName(name string) bool {
	return imageNameRe.MatchString(name)
}

// Decode reads an encoded image and converts it into a Bitmap.
//
// Parameters:
//   - r: Encoded PNG, JPEG, GIF, BMP, TIFF or WebP data.
//   - width, height: Target dimensions. When both are positive the decoded
//     image is scaled to exactly width x height (aspect ratio is not
//     preserved). When either is zero or negative the native size is kept.
//
// EXIF orientation tags are honored so portrait photos arrive upright.
func Decode(r io.Reader, width, height int) (*Bitmap, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if width > 0 && height > 0 {
		b := img.Bounds()
		if b.Dx() != width || b.Dy() != height {
			img = imaging.Resize(img, width, height, imaging.Lanczos)
		}
	}
	return FromImage(img)
}

// Open decodes the image file at path. See Decode for the meaning of width
// and height.
func Open(path string, width, height int) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f, width, height)
}

// Resample scales the bitmap to width x height with a Lanczos filter.
func (b *Bitmap) Resample(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d must be positive", ErrInvalidArgument, width, height)
	}
	if width == b.Width && height == b.Height {
		return b.Clone(), nil
	}
	return FromImage(imaging.Resize(b.NRGBA(), width, height, imaging.Lanczos))
}

// EncodePNG encodes the bitmap as PNG.
func (b *Bitmap) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, b.NRGBA(), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG encodes the bitmap as JPEG at the given quality (1-100).
// Alpha is discarded by the encoder.
func (b *Bitmap) EncodeJPEG(quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, b.NRGBA(), imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

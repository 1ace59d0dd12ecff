package bitmap

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidArgument reports a violated caller precondition such as a pixel
// buffer whose length does not match its declared dimensions.
var ErrInvalidArgument = errors.New("invalid argument")

// Bitmap is a row-major, non-premultiplied RGBA raster.
//
// Pix holds Width*Height*4 bytes with channels interleaved as R, G, B, A.
// Operations in this module never mutate a Bitmap they receive; they return a
// fresh one.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed (transparent black) bitmap.
func New(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidArgument, width, height)
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}, nil
}

// Filled allocates a bitmap with every pixel set to the given color.
func Filled(width, height int, r, g, b, a uint8) (*Bitmap, error) {
	bm, err := New(width, height)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(bm.Pix); i += 4 {
		bm.Pix[i] = r
		bm.Pix[i+1] = g
		bm.Pix[i+2] = b
		bm.Pix[i+3] = a
	}
	return bm, nil
}

// Validate checks the Pix length invariant.
func (b *Bitmap) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil bitmap", ErrInvalidArgument)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidArgument, b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("%w: pixel buffer has %d bytes, %dx%d needs %d",
			ErrInvalidArgument, len(b.Pix), b.Width, b.Height, want)
	}
	return nil
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Bitmap{Width: b.Width, Height: b.Height, Pix: pix}
}

// Offset returns the index of the red channel of pixel (x, y).
func (b *Bitmap) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// Equal reports whether two bitmaps have the same dimensions and pixels.
// A nil bitmap equals only another nil bitmap.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// FromImage converts any image.Image into a Bitmap. The conversion goes
// through *image.NRGBA so alpha is never premultiplied into the color
// channels.
func FromImage(img image.Image) (*Bitmap, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	bm, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		copy(bm.Pix[y*w*4:(y+1)*w*4], src)
	}
	return bm, nil
}

// NRGBA exposes the bitmap as a standard library image. The pixel buffer is
// copied so the returned image can be modified freely.
func (b *Bitmap) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

package bitmap

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts the rectangle (x1,y1)-(x2,y2) from the bitmap.
// (x1,y1) is inclusive and (x2,y2) is exclusive.
func (b *Bitmap) Crop(x1, y1, x2, y2 int) (*Bitmap, error) {
	if x1 < 0 || y1 < 0 || x2 > b.Width || y2 > b.Height {
		return nil, fmt.Errorf("%w: crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			ErrInvalidArgument, x1, y1, x2, y2, b.Width, b.Height)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("%w: invalid crop region: x1 must be < x2, y1 must be < y2", ErrInvalidArgument)
	}
	return FromImage(imaging.Crop(b.NRGBA(), image.Rect(x1, y1, x2, y2)))
}

// CropNamed extracts a named region of the bitmap: top-left, top-right,
// bottom-left, bottom-right, top-half, bottom-half, left-half, right-half or
// center (the middle 50% in both directions).
func (b *Bitmap) CropNamed(region string) (*Bitmap, error) {
	w, h := b.Width, b.Height
	midX, midY := w/2, h/2

	var x1, y1, x2, y2 int
	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW, qH := w/4, h/4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return nil, fmt.Errorf("%w: unknown region: %s", ErrInvalidArgument, region)
	}

	return b.Crop(x1, y1, x2, y2)
}

// Rotate turns the bitmap clockwise by a multiple of 90 degrees. Negative
// angles rotate counter-clockwise.
func (b *Bitmap) Rotate(degrees int) (*Bitmap, error) {
	d := ((degrees % 360) + 360) % 360
	switch d {
	case 0:
		return b.Clone(), nil
	case 90:
		// imaging rotates counter-clockwise.
		return FromImage(imaging.Rotate270(b.NRGBA()))
	case 180:
		return FromImage(imaging.Rotate180(b.NRGBA()))
	case 270:
		return FromImage(imaging.Rotate90(b.NRGBA()))
	default:
		return nil, fmt.Errorf("%w: rotation %d is not a multiple of 90", ErrInvalidArgument, degrees)
	}
}

// Flip mirrors the bitmap. Axis "horizontal" swaps left and right,
// "vertical" swaps top and bottom.
func (b *Bitmap) Flip(axis string) (*Bitmap, error) {
	switch axis {
	case "horizontal", "x":
		return FromImage(imaging.FlipH(b.NRGBA()))
	case "vertical", "y":
		return FromImage(imaging.FlipV(b.NRGBA()))
	default:
		return nil, fmt.Errorf("%w: unknown flip axis: %s", ErrInvalidArgument, axis)
	}
}

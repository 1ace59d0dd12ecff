package filters

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/colormath"
)

// BoxBlur replaces every pixel with the unweighted mean of the
// (2*radius+1)^2 square around it.
//
// Samples outside the image are excluded from both the sum and the count, so
// windows shrink at the borders instead of replicating edge pixels. Each RGB
// channel is averaged independently and alpha is left untouched. All reads
// come from the unmodified source.
//
// A radius of zero or less returns an identical copy.
func BoxBlur(bm *bitmap.Bitmap, radius int) (*bitmap.Bitmap, error) {
	if err := bm.Validate(); err != nil {
		return nil, err
	}
	if radius <= 0 {
		return bm.Clone(), nil
	}

	w, h := bm.Width, bm.Height
	sat := newSummedArea(bm)
	out := bm.Clone()

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			y0, y1 := max(0, y-radius), min(h-1, y+radius)
			for x := 0; x < w; x++ {
				x0, x1 := max(0, x-radius), min(w-1, x+radius)
				count := float64((x1 - x0 + 1) * (y1 - y0 + 1))
				i := bm.Offset(x, y)
				for c := 0; c < 3; c++ {
					out.Pix[i+c] = colormath.ClampByte(float64(sat.sum(c, x0, y0, x1, y1)) / count)
				}
			}
		}
	})

	return out, nil
}

// summedArea holds inclusive prefix sums of the RGB channels with one row
// and one column of zero padding.
type summedArea struct {
	stride int
	table  [3][]int64
}

func newSummedArea(bm *bitmap.Bitmap) *summedArea {
	stride := bm.Width + 1
	s := &summedArea{stride: stride}
	for c := 0; c < 3; c++ {
		s.table[c] = make([]int64, stride*(bm.Height+1))
	}
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			i := bm.Offset(x, y)
			at := (y+1)*stride + x + 1
			for c := 0; c < 3; c++ {
				t := s.table[c]
				t[at] = int64(bm.Pix[i+c]) + t[at-1] + t[at-stride] - t[at-stride-1]
			}
		}
	}
	return s
}

// sum returns the channel total over the inclusive rectangle (x0,y0)-(x1,y1).
func (s *summedArea) sum(c, x0, y0, x1, y1 int) int64 {
	t := s.table[c]
	a := y0*s.stride + x0
	b := y0*s.stride + x1 + 1
	d := (y1+1)*s.stride + x0
	e := (y1+1)*s.stride + x1 + 1
	return t[e] - t[b] - t[d] + t[a]
}

// Sharpen applies a 3x3 kernel with weight 5+amount at the center and -1 on
// the four orthogonal neighbors. The outermost ring of pixels is left
// unmodified because the kernel needs all four neighbors. Results are
// saturated to the byte range; alpha is untouched.
//
// An amount of zero or less returns an identical copy.
func Sharpen(bm *bitmap.Bitmap, amount float64) (*bitmap.Bitmap, error) {
	if err := bm.Validate(); err != nil {
		return nil, err
	}
	out := bm.Clone()
	if amount <= 0 || bm.Width < 3 || bm.Height < 3 {
		return out, nil
	}

	w, h := bm.Width, bm.Height
	center := 5 + amount
	src := bm.Pix
	stride := w * 4

	parallel.Line(h-2, func(start, end int) {
		for y := start + 1; y < end+1; y++ {
			for x := 1; x < w-1; x++ {
				i := bm.Offset(x, y)
				for c := 0; c < 3; c++ {
					v := center*float64(src[i+c]) -
						float64(src[i+c-stride]) - float64(src[i+c+stride]) -
						float64(src[i+c-4]) - float64(src[i+c+4])
					out.Pix[i+c] = colormath.ClampByte(v)
				}
			}
		}
	})

	return out, nil
}

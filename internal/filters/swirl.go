package filters

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
)

// Swirl twists the image around its center. A pixel at distance d from the
// center samples the source at its own angle plus amount*d/maxDist radians,
// where maxDist is the half-diagonal. Sampling is nearest neighbor; output
// pixels whose source falls outside the image stay transparent black.
func Swirl(bm *bitmap.Bitmap, amount float64) (*bitmap.Bitmap, error) {
	if err := bm.Validate(); err != nil {
		return nil, err
	}
	if amount == 0 {
		return bm.Clone(), nil
	}

	w, h := bm.Width, bm.Height
	cx, cy := float64(w)/2, float64(h)/2
	maxDist := math.Hypot(cx, cy)
	out := &bitmap.Bitmap{Width: w, Height: h, Pix: make([]uint8, len(bm.Pix))}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				dx, dy := float64(x)-cx, float64(y)-cy
				dist := math.Hypot(dx, dy)
				angle := math.Atan2(dy, dx) + amount*dist/maxDist
				sx := int(math.Floor(cx + dist*math.Cos(angle) + 0.5))
				sy := int(math.Floor(cy + dist*math.Sin(angle) + 0.5))
				if sx < 0 || sx >= w || sy < 0 || sy >= h {
					continue
				}
				d, s := bm.Offset(x, y), bm.Offset(sx, sy)
				copy(out.Pix[d:d+4], bm.Pix[s:s+4])
			}
		}
	})

	return out, nil
}

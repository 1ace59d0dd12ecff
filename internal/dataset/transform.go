package dataset

import (
	"fmt"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/pipeline"
)

// Op is a geometric edit of an item's source image.
type Op struct {
	// Kind is one of "crop", "rotate", "flip" or "resize".
	Kind string `json:"kind"`

	// Crop rectangle; (X1,Y1) inclusive, (X2,Y2) exclusive. Ignored when
	// Region is set.
	X1 int `json:"x1,omitempty"`
	Y1 int `json:"y1,omitempty"`
	X2 int `json:"x2,omitempty"`
	Y2 int `json:"y2,omitempty"`

	// Region is a named crop such as "center" or "top-left".
	Region string `json:"region,omitempty"`

	// Degrees is the clockwise rotation, a multiple of 90.
	Degrees int `json:"degrees,omitempty"`

	// Axis is "horizontal" or "vertical" for flips.
	Axis string `json:"axis,omitempty"`

	// Width and Height are the resize target.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

func (op Op) apply(src *bitmap.Bitmap) (*bitmap.Bitmap, error) {
	switch op.Kind {
	case "crop":
		if op.Region != "" {
			return src.CropNamed(op.Region)
		}
		return src.Crop(op.X1, op.Y1, op.X2, op.Y2)
	case "rotate":
		return src.Rotate(op.Degrees)
	case "flip":
		return src.Flip(op.Axis)
	case "resize":
		return src.Resample(op.Width, op.Height)
	default:
		return nil, fmt.Errorf("%w: unknown transform: %s", ErrInvalidArgument, op.Kind)
	}
}

// Transform replaces an item's source with the result of op, rebuilds its
// preview and mean, and invalidates the dataset mean.
func (l *Library) Transform(id string, op Op) (Info, error) {
	l.mu.RLock()
	it, err := l.lookup(id)
	var src *bitmap.Bitmap
	size := l.previewSize
	if err == nil {
		src = it.source
	}
	l.mu.RUnlock()
	if err != nil {
		return Info{}, err
	}

	out, err := op.apply(src)
	if err != nil {
		return Info{}, fmt.Errorf("failed to %s %s: %w", op.Kind, id, err)
	}
	preview, err := out.Resample(size, size)
	if err != nil {
		return Info{}, fmt.Errorf("failed to build preview for %s: %w", id, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// The item may have been removed or edited concurrently.
	cur, ok := l.byID[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if cur.source != src {
		return Info{}, fmt.Errorf("item %s changed during transform", id)
	}
	if size != l.previewSize {
		if preview, err = out.Resample(l.previewSize, l.previewSize); err != nil {
			return Info{}, fmt.Errorf("failed to build preview for %s: %w", id, err)
		}
	}
	it.source = out
	it.preview = preview
	it.mean = pipeline.MeanLuma(preview)
	l.meanValid = false
	return it.info(), nil
}

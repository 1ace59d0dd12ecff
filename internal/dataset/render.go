package dataset

import (
	"context"
	"fmt"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/export"
	"github.com/ironsheep/photo-batch-mcp/internal/pipeline"
)

// View selects the resolution an item is rendered at.
type View string

const (
	// ViewPreview renders the square preview tile.
	ViewPreview View = "preview"

	// ViewDetail renders the source at a quarter of its size, at least 1px.
	ViewDetail View = "detail"

	// ViewFull renders the source at native resolution.
	ViewFull View = "full"
)

// ParseView validates a view name. An empty string means ViewPreview.
func ParseView(s string) (View, error) {
	switch View(s) {
	case "", ViewPreview:
		return ViewPreview, nil
	case ViewDetail, ViewFull:
		return View(s), nil
	default:
		return "", fmt.Errorf("%w: unknown view: %s", ErrInvalidArgument, s)
	}
}

// job is everything needed to render one item without the library lock.
type job struct {
	name   string
	source *bitmap.Bitmap
	params pipeline.Params
	auto   *pipeline.AutoContext
}

// snapshot captures an item's render inputs. Auto exposure always uses the
// preview mean, whatever the view, so every view of an item gets the same
// correction.
func (l *Library) snapshot(id string, view View) (job, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, err := l.lookup(id)
	if err != nil {
		return job{}, err
	}
	p := it.override.Resolve(l.base).Clamped()
	j := job{
		name:   it.name,
		source: it.source,
		params: p,
		auto:   pipeline.NewAutoContext(it.mean, l.datasetMeanLocked(), p.Auto),
	}
	if view == ViewPreview {
		j.source = it.preview
	}
	return j, nil
}

func (j job) render(ctx context.Context, view View) (*bitmap.Bitmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := j.source
	if view == ViewDetail {
		w, h := max(1, src.Width/4), max(1, src.Height/4)
		var err error
		if src, err = src.Resample(w, h); err != nil {
			return nil, fmt.Errorf("failed to scale %s: %w", j.name, err)
		}
	}
	out, err := pipeline.Apply(src, j.params, j.auto)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", j.name, err)
	}
	return out, nil
}

// Render applies the item's resolved parameters to the requested view.
func (l *Library) Render(ctx context.Context, id string, view View) (*bitmap.Bitmap, error) {
	view, err := ParseView(string(view))
	if err != nil {
		return nil, err
	}
	j, err := l.snapshot(id, view)
	if err != nil {
		return nil, err
	}
	return j.render(ctx, view)
}

// ExportItems prepares full resolution export items for ids. Parameters
// and statistics are captured now, so later edits do not change an export
// in progress.
func (l *Library) ExportItems(ids []string) ([]export.Item, error) {
	items := make([]export.Item, 0, len(ids))
	for _, id := range ids {
		j, err := l.snapshot(id, ViewFull)
		if err != nil {
			return nil, err
		}
		items = append(items, export.Item{
			SourceName: j.name,
			Params:     j.params,
			Render: func(ctx context.Context) (*bitmap.Bitmap, error) {
				return j.render(ctx, ViewFull)
			},
		})
	}
	return items, nil
}

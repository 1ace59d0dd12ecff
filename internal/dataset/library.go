package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/pipeline"
)

var (
	// ErrNotFound is returned when an item ID is not in the library.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidArgument is returned for malformed requests such as an
	// unknown scope, view or transform. It is the same value as
	// bitmap.ErrInvalidArgument.
	ErrInvalidArgument = bitmap.ErrInvalidArgument
)

// item is the library's private record of one image.
//
// Source and Preview are never modified in place; a transform swaps in new
// bitmaps. This lets renders work on a snapshot without holding the lock.
type item struct {
	id       string
	name     string
	path     string
	source   *bitmap.Bitmap
	preview  *bitmap.Bitmap
	mean     float64
	selected bool
	override *pipeline.Patch
}

// Info is a read-only summary of an item.
type Info struct {
	// ID identifies the item for every other library call.
	ID string `json:"id"`

	// Name is the file name the item was loaded from.
	Name string `json:"name"`

	// Path is the full path the item was loaded from, empty for in-memory
	// additions.
	Path string `json:"path,omitempty"`

	// Width and Height are the current source dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// MeanLuma is the cached mean luma of the preview, in [0,1].
	MeanLuma float64 `json:"mean_luma"`

	Selected bool `json:"selected"`

	// HasOverride is true once the item has been edited on its own.
	HasOverride bool `json:"has_override"`
}

// Library holds the working set of a batch edit: the loaded images, their
// previews and statistics, the shared base parameters, per-item overrides
// and the selection.
//
// Library is safe for concurrent use by multiple goroutines. Decoding and
// rendering happen outside the lock.
type Library struct {
	mu          sync.RWMutex
	items       []*item
	byID        map[string]*item
	nextID      int
	previewSize int
	base        pipeline.Params

	datasetMean float64
	meanValid   bool

	// anchor is the index of the last toggled item, or -1.
	anchor int
}

// New creates an empty library whose previews are previewSize x previewSize.
// A non-positive size is replaced by 256.
func New(previewSize int) *Library {
	if previewSize <= 0 {
		previewSize = 256
	}
	return &Library{
		byID:        make(map[string]*item),
		previewSize: previewSize,
		base:        pipeline.DefaultParams(),
		anchor:      -1,
	}
}

// Add decodes the image file at path and appends it to the library.
//
// The source is kept at native resolution (EXIF orientation applied). A
// square preview is built and its mean luma cached; the dataset mean is
// invalidated.
func (l *Library) Add(path string) (Info, error) {
	src, err := bitmap.Open(path, 0, 0)
	if err != nil {
		return Info{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return l.add(filepath.Base(path), path, src)
}

// AddBitmap appends an already decoded image under name.
func (l *Library) AddBitmap(name string, src *bitmap.Bitmap) (Info, error) {
	if err := src.Validate(); err != nil {
		return Info{}, err
	}
	return l.add(name, "", src.Clone())
}

func (l *Library) add(name, path string, src *bitmap.Bitmap) (Info, error) {
	l.mu.RLock()
	size := l.previewSize
	l.mu.RUnlock()

	preview, err := src.Resample(size, size)
	if err != nil {
		return Info{}, fmt.Errorf("failed to build preview for %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// The preview size may have changed while we were resampling.
	if size != l.previewSize {
		if preview, err = src.Resample(l.previewSize, l.previewSize); err != nil {
			return Info{}, fmt.Errorf("failed to build preview for %s: %w", name, err)
		}
	}

	l.nextID++
	it := &item{
		id:      "img-" + strconv.Itoa(l.nextID),
		name:    name,
		path:    path,
		source:  src,
		preview: preview,
		mean:    pipeline.MeanLuma(preview),
	}
	l.items = append(l.items, it)
	l.byID[it.id] = it
	l.meanValid = false

	return it.info(), nil
}

// Remove deletes an item and invalidates the dataset mean.
func (l *Library) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	it, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	idx := l.indexOf(it)
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	delete(l.byID, id)
	l.meanValid = false
	switch {
	case l.anchor == idx:
		l.anchor = -1
	case l.anchor > idx:
		l.anchor--
	}
	return nil
}

// Clear removes every item. Base parameters are kept.
func (l *Library) Clear() {
	l.mu.Lock()
	l.items = nil
	l.byID = make(map[string]*item)
	l.meanValid = false
	l.anchor = -1
	l.mu.Unlock()
}

// Get returns the summary of one item.
func (l *Library) Get(id string) (Info, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	it, ok := l.byID[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return it.info(), nil
}

// List returns summaries of all items in insertion order.
func (l *Library) List() []Info {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Info, len(l.items))
	for i, it := range l.items {
		out[i] = it.info()
	}
	return out
}

// Len returns the number of items.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// DatasetMean returns the mean of the cached item means. The value is
// recomputed lazily after the item set or a preview changes.
func (l *Library) DatasetMean() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.datasetMeanLocked()
}

// RecomputeMeans re-measures every preview and rebuilds the dataset mean.
func (l *Library) RecomputeMeans() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, it := range l.items {
		it.mean = pipeline.MeanLuma(it.preview)
	}
	l.meanValid = false
	return l.datasetMeanLocked()
}

func (l *Library) datasetMeanLocked() float64 {
	if !l.meanValid {
		means := make([]float64, len(l.items))
		for i, it := range l.items {
			means[i] = it.mean
		}
		l.datasetMean = pipeline.DatasetMean(means)
		l.meanValid = true
	}
	return l.datasetMean
}

// PreviewSize returns the current preview edge length.
func (l *Library) PreviewSize() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.previewSize
}

// SetPreviewSize changes the preview edge length and rebuilds every preview
// and cached mean. Means shift slightly with the resampling, so the dataset
// mean is invalidated too.
func (l *Library) SetPreviewSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: preview size must be positive, got %d", ErrInvalidArgument, size)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if size == l.previewSize {
		return nil
	}
	for _, it := range l.items {
		preview, err := it.source.Resample(size, size)
		if err != nil {
			return fmt.Errorf("failed to rebuild preview for %s: %w", it.id, err)
		}
		it.preview = preview
		it.mean = pipeline.MeanLuma(preview)
	}
	l.previewSize = size
	l.meanValid = false
	return nil
}

// lookup returns the item for id. Callers must hold l.mu.
func (l *Library) lookup(id string) (*item, error) {
	it, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return it, nil
}

func (l *Library) indexOf(it *item) int {
	for i, x := range l.items {
		if x == it {
			return i
		}
	}
	return -1
}

func (it *item) info() Info {
	return Info{
		ID:          it.id,
		Name:        it.name,
		Path:        it.path,
		Width:       it.source.Width,
		Height:      it.source.Height,
		MeanLuma:    it.mean,
		Selected:    it.selected,
		HasOverride: it.override != nil,
	}
}

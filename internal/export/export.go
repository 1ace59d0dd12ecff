// Package export renders a batch of items and packages the encoded results,
// either as individual files or, from ArchiveThreshold items on, as a single
// ZIP archive.
package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/photo-batch-mcp/internal/archive"
	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/pipeline"
)

// ArchiveThreshold is the item count at which an export is delivered as one
// ZIP archive instead of individual files.
const ArchiveThreshold = 8

// ArchiveName is the file name of the batch archive.
const ArchiveName = "export.zip"

// ErrInvalidArgument is returned for empty exports and unknown options. It is
// the same value as bitmap.ErrInvalidArgument.
var ErrInvalidArgument = bitmap.ErrInvalidArgument

// Format is the encoding of exported images.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// RenderFunc produces the full resolution bitmap of one item.
type RenderFunc func(ctx context.Context) (*bitmap.Bitmap, error)

// Item is one image to export.
type Item struct {
	// SourceName is the original file name; its extension is replaced.
	SourceName string

	// Params are the resolved adjustments, used for detail naming.
	Params pipeline.Params

	Render RenderFunc
}

// Options tunes an export run. The zero value is usable.
type Options struct {
	// Workers bounds concurrent renders. Zero or less means runtime.NumCPU().
	Workers int

	// Format defaults to FormatPNG.
	Format Format

	// JPEGQuality is used for FormatJPEG. Zero means 92.
	JPEGQuality int
}

// NamedBuffer is an encoded file ready to be written or sent.
type NamedBuffer struct {
	Name string
	Data []byte
}

// Result is the outcome of an export.
type Result struct {
	// Archived is true when Files holds a single ZIP archive.
	Archived bool

	// Count is the number of exported images.
	Count int

	Files []NamedBuffer
}

// Export renders and encodes every item.
//
// With fewer than ArchiveThreshold items the result holds one buffer per
// item; otherwise it holds a single archive named ArchiveName whose entries
// follow the input order. Renders run concurrently but output order and
// bytes do not depend on scheduling. Output names that collide get a -2, -3,
// ... suffix before the extension.
//
// Returns an error wrapping ErrInvalidArgument if items is empty. The first
// render or encode failure cancels the remaining work.
func Export(ctx context.Context, items []Item, mode NameMode, opts Options) (*Result, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: nothing to export", ErrInvalidArgument)
	}
	format, err := parseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	for i, it := range items {
		if it.Render == nil {
			return nil, fmt.Errorf("%w: item %d (%s) has no renderer", ErrInvalidArgument, i, it.SourceName)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = 92
	}

	names := uniqueNames(items, mode, format)
	files := make([]NamedBuffer, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, it := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			bm, err := it.Render(gctx)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", it.SourceName, err)
			}
			data, err := encode(bm, format, quality)
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", it.SourceName, err)
			}
			files[i] = NamedBuffer{Name: names[i], Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(files) < ArchiveThreshold {
		return &Result{Count: len(files), Files: files}, nil
	}

	entries := make([]archive.Entry, len(files))
	for i, f := range files {
		entries[i] = archive.Entry{Name: f.Name, Data: f.Data}
	}
	zipped, err := archive.Build(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build archive: %w", err)
	}
	return &Result{
		Archived: true,
		Count:    len(files),
		Files:    []NamedBuffer{{Name: ArchiveName, Data: zipped}},
	}, nil
}

// WriteResult writes every buffer of r into dir, creating it if needed, and
// returns the written paths in order.
func WriteResult(dir string, r *Result) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil result", ErrInvalidArgument)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		path := filepath.Join(dir, filepath.Base(f.Name))
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Printf("Exported %s (%d bytes)", path, len(f.Data))
		paths = append(paths, path)
	}
	return paths, nil
}

func parseFormat(f Format) (Format, error) {
	switch strings.ToLower(string(f)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format: %s", ErrInvalidArgument, f)
	}
}

func encode(bm *bitmap.Bitmap, format Format, quality int) ([]byte, error) {
	if format == FormatJPEG {
		return bm.EncodeJPEG(quality)
	}
	return bm.EncodePNG()
}

// uniqueNames builds the output name of every item, suffixing repeats.
func uniqueNames(items []Item, mode NameMode, format Format) []string {
	names := make([]string, len(items))
	used := make(map[string]bool, len(items))
	for i, it := range items {
		name := BuildFileName(it.SourceName, it.Params, mode)
		if format == FormatJPEG {
			name = strings.TrimSuffix(name, ".png") + ".jpg"
		}
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)

		candidate := name
		for n := 2; used[candidate]; n++ {
			candidate = stem + "-" + strconv.Itoa(n) + ext
		}
		used[candidate] = true
		names[i] = candidate
	}
	return names
}

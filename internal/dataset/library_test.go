package dataset

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ironsheep/photo-batch-mcp/internal/archive"
	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/export"
	"github.com/ironsheep/photo-batch-mcp/internal/pipeline"
)

// createTestImage writes a solid PNG into a temp dir and returns its path.
func createTestImage(t *testing.T, name string, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// addSolid adds an in-memory solid gray image to lib.
func addSolid(t *testing.T, lib *Library, name string, width, height int, v uint8) Info {
	t.Helper()
	bm, err := bitmap.Filled(width, height, v, v, v, 255)
	if err != nil {
		t.Fatalf("bitmap.Filled failed: %v", err)
	}
	info, err := lib.AddBitmap(name, bm)
	if err != nil {
		t.Fatalf("AddBitmap failed: %v", err)
	}
	return info
}

func TestLibrary_AddFromFile(t *testing.T) {
	lib := New(16)
	path := createTestImage(t, "white.png", 30, 20, color.White)

	info, err := lib.Add(path)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if info.Name != "white.png" || info.Path != path {
		t.Errorf("got name %q path %q", info.Name, info.Path)
	}
	if info.Width != 30 || info.Height != 20 {
		t.Errorf("size: got %dx%d, want 30x20", info.Width, info.Height)
	}
	if math.Abs(info.MeanLuma-1) > 1e-6 {
		t.Errorf("mean: got %v, want 1", info.MeanLuma)
	}
	if lib.Len() != 1 {
		t.Errorf("Len: got %d, want 1", lib.Len())
	}
}

func TestLibrary_AddMissingFile(t *testing.T) {
	lib := New(16)
	if _, err := lib.Add(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
	if lib.Len() != 0 {
		t.Error("failed add should not create an item")
	}
}

func TestLibrary_AddBitmapInvalid(t *testing.T) {
	lib := New(16)
	_, err := lib.AddBitmap("bad", &bitmap.Bitmap{Width: 2, Height: 2})
	if !errors.Is(err, bitmap.ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestLibrary_IDsAreUniqueAndOrdered(t *testing.T) {
	lib := New(8)
	a := addSolid(t, lib, "a.png", 4, 4, 10)
	b := addSolid(t, lib, "b.png", 4, 4, 20)
	if err := lib.Remove(a.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	c := addSolid(t, lib, "c.png", 4, 4, 30)
	if c.ID == a.ID || c.ID == b.ID {
		t.Errorf("ID %s reused", c.ID)
	}

	list := lib.List()
	if len(list) != 2 || list[0].ID != b.ID || list[1].ID != c.ID {
		t.Errorf("List: got %+v", list)
	}
}

func TestLibrary_RemoveUnknown(t *testing.T) {
	lib := New(8)
	if err := lib.Remove("img-99"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if _, err := lib.Get("img-99"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: got %v, want ErrNotFound", err)
	}
}

func TestLibrary_DatasetMeanTracksItemSet(t *testing.T) {
	lib := New(8)
	if got := lib.DatasetMean(); got != 0 {
		t.Errorf("empty: got %v, want 0", got)
	}

	addSolid(t, lib, "black.png", 6, 6, 0)
	white := addSolid(t, lib, "white.png", 6, 6, 255)
	if got := lib.DatasetMean(); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("black+white: got %v, want 0.5", got)
	}

	if err := lib.Remove(white.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got := lib.DatasetMean(); got != 0 {
		t.Errorf("after removing white: got %v, want 0", got)
	}

	lib.Clear()
	if lib.Len() != 0 || lib.DatasetMean() != 0 {
		t.Error("Clear should empty the library and reset the mean")
	}
}

func TestLibrary_RecomputeMeans(t *testing.T) {
	lib := New(8)
	addSolid(t, lib, "a.png", 4, 4, 255)
	if got := lib.RecomputeMeans(); math.Abs(got-1) > 1e-6 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestLibrary_SetPreviewSize(t *testing.T) {
	lib := New(8)
	info := addSolid(t, lib, "a.png", 40, 20, 128)

	if err := lib.SetPreviewSize(12); err != nil {
		t.Fatalf("SetPreviewSize failed: %v", err)
	}
	if lib.PreviewSize() != 12 {
		t.Errorf("PreviewSize: got %d", lib.PreviewSize())
	}
	out, err := lib.Render(context.Background(), info.ID, ViewPreview)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out.Width != 12 || out.Height != 12 {
		t.Errorf("preview: got %dx%d, want 12x12", out.Width, out.Height)
	}

	if err := lib.SetPreviewSize(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("size 0: got %v, want ErrInvalidArgument", err)
	}
}

func TestLibrary_RenderViews(t *testing.T) {
	lib := New(16)
	info := addSolid(t, lib, "a.png", 40, 22, 90)
	tiny := addSolid(t, lib, "tiny.png", 3, 2, 90)

	tests := []struct {
		name  string
		id    string
		view  View
		wantW int
		wantH int
	}{
		{"preview", info.ID, ViewPreview, 16, 16},
		{"default is preview", info.ID, "", 16, 16},
		{"detail quarter", info.ID, ViewDetail, 10, 5},
		{"detail at least one pixel", tiny.ID, ViewDetail, 1, 1},
		{"full", info.ID, ViewFull, 40, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := lib.Render(context.Background(), tt.id, tt.view)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if out.Width != tt.wantW || out.Height != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", out.Width, out.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLibrary_RenderErrors(t *testing.T) {
	lib := New(8)
	info := addSolid(t, lib, "a.png", 4, 4, 90)

	if _, err := lib.Render(context.Background(), info.ID, "poster"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad view: got %v, want ErrInvalidArgument", err)
	}
	if _, err := lib.Render(context.Background(), "img-42", ViewFull); !errors.Is(err, ErrNotFound) {
		t.Errorf("bad id: got %v, want ErrNotFound", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := lib.Render(ctx, info.ID, ViewFull); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: got %v, want context.Canceled", err)
	}
}

func TestInvalidArgumentIsSharedAcrossPackages(t *testing.T) {
	lib := New(8)
	info := addSolid(t, lib, "a.png", 4, 4, 90)

	_, viewErr := lib.Render(context.Background(), info.ID, "poster")
	_, bitmapErr := lib.AddBitmap("bad.png", &bitmap.Bitmap{Width: 2, Height: 2})
	_, exportErr := export.Export(context.Background(), nil, export.NameSimple, export.Options{})
	_, archiveErr := archive.Build([]archive.Entry{{Name: strings.Repeat("x", 70000)}})

	for name, err := range map[string]error{
		"dataset": viewErr,
		"bitmap":  bitmapErr,
		"export":  exportErr,
		"archive": archiveErr,
	} {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: got %v, want ErrInvalidArgument", name, err)
		}
	}
}

func TestLibrary_RenderAppliesBaseParams(t *testing.T) {
	lib := New(8)
	info := addSolid(t, lib, "a.png", 4, 4, 100)

	ev := 1.0
	lib.UpdateBase(&pipeline.Patch{ExposureEV: &ev})

	out, err := lib.Render(context.Background(), info.ID, ViewFull)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out.Pix[0] <= 100 {
		t.Errorf("+1 EV should brighten: got %d", out.Pix[0])
	}
}

func TestLibrary_AutoExposureEqualizes(t *testing.T) {
	lib := New(8)
	dark := addSolid(t, lib, "dark.png", 8, 8, 40)
	bright := addSolid(t, lib, "bright.png", 8, 8, 220)

	auto := true
	lib.UpdateBase(&pipeline.Patch{Auto: &pipeline.AutoPatch{Enabled: &auto}})

	darkOut, err := lib.Render(context.Background(), dark.ID, ViewFull)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	brightOut, err := lib.Render(context.Background(), bright.ID, ViewFull)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if darkOut.Pix[0] <= 40 {
		t.Errorf("dark image should be brightened: got %d", darkOut.Pix[0])
	}
	if brightOut.Pix[0] >= 220 {
		t.Errorf("bright image should be darkened: got %d", brightOut.Pix[0])
	}
}

func TestLibrary_ExportItems(t *testing.T) {
	lib := New(8)
	var ids []string
	for i := 0; i < export.ArchiveThreshold; i++ {
		ids = append(ids, addSolid(t, lib, "p.jpg", 5, 4, uint8(i*30)).ID)
	}

	items, err := lib.ExportItems(ids)
	if err != nil {
		t.Fatalf("ExportItems failed: %v", err)
	}
	res, err := export.Export(context.Background(), items, export.NameSimple, export.Options{Workers: 2})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !res.Archived || res.Count != export.ArchiveThreshold {
		t.Errorf("got archived=%v count=%d", res.Archived, res.Count)
	}

	if _, err := lib.ExportItems([]string{"img-404"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLibrary_ConcurrentAccess(t *testing.T) {
	lib := New(8)
	var ids []string
	for i := 0; i < 4; i++ {
		ids = append(ids, addSolid(t, lib, "c.png", 16, 16, uint8(50*i)).ID)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := ids[i%len(ids)]
			ev := float64(i) / 10
			lib.UpdateBase(&pipeline.Patch{ExposureEV: &ev})
			if _, err := lib.UpdateItem(id, &pipeline.Patch{Gamma: &ev}); err != nil {
				t.Errorf("UpdateItem failed: %v", err)
			}
			if _, err := lib.Render(context.Background(), id, ViewPreview); err != nil {
				t.Errorf("Render failed: %v", err)
			}
			lib.DatasetMean()
			lib.List()
		}(i)
	}
	wg.Wait()
}

package dataset

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name  string
		op    Op
		wantW int
		wantH int
	}{
		{"rotate 90", Op{Kind: "rotate", Degrees: 90}, 20, 30},
		{"rotate 180", Op{Kind: "rotate", Degrees: 180}, 30, 20},
		{"flip", Op{Kind: "flip", Axis: "horizontal"}, 30, 20},
		{"crop rect", Op{Kind: "crop", X1: 5, Y1: 2, X2: 15, Y2: 12}, 10, 10},
		{"crop region", Op{Kind: "crop", Region: "left-half"}, 15, 20},
		{"resize", Op{Kind: "resize", Width: 7, Height: 9}, 7, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := New(8)
			info := addSolid(t, lib, "a.png", 30, 20, 77)

			got, err := lib.Transform(info.ID, tt.op)
			if err != nil {
				t.Fatalf("Transform failed: %v", err)
			}
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", got.Width, got.Height, tt.wantW, tt.wantH)
			}

			full, err := lib.Render(context.Background(), info.ID, ViewFull)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if full.Width != tt.wantW || full.Height != tt.wantH {
				t.Errorf("render: got %dx%d", full.Width, full.Height)
			}
		})
	}
}

func TestTransform_RebuildsMean(t *testing.T) {
	lib := New(8)
	bm, err := bitmap.New(20, 10)
	if err != nil {
		t.Fatalf("bitmap.New failed: %v", err)
	}
	// Left half white, right half black.
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			copy(bm.Pix[bm.Offset(x, y):], []uint8{255, 255, 255, 255})
		}
		for x := 10; x < 20; x++ {
			copy(bm.Pix[bm.Offset(x, y):], []uint8{0, 0, 0, 255})
		}
	}
	info, err := lib.AddBitmap("half.png", bm)
	if err != nil {
		t.Fatalf("AddBitmap failed: %v", err)
	}

	got, err := lib.Transform(info.ID, Op{Kind: "crop", Region: "left-half"})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if math.Abs(got.MeanLuma-1) > 1e-6 {
		t.Errorf("mean after crop: got %v, want 1", got.MeanLuma)
	}
	if math.Abs(lib.DatasetMean()-1) > 1e-6 {
		t.Errorf("dataset mean after crop: got %v, want 1", lib.DatasetMean())
	}
}

func TestTransform_Errors(t *testing.T) {
	lib := New(8)
	info := addSolid(t, lib, "a.png", 10, 10, 1)

	tests := []struct {
		name string
		id   string
		op   Op
		want error
	}{
		{"unknown kind", info.ID, Op{Kind: "shear"}, ErrInvalidArgument},
		{"bad crop", info.ID, Op{Kind: "crop", X1: 0, Y1: 0, X2: 50, Y2: 5}, bitmap.ErrInvalidArgument},
		{"bad rotation", info.ID, Op{Kind: "rotate", Degrees: 45}, bitmap.ErrInvalidArgument},
		{"unknown item", "img-9", Op{Kind: "rotate", Degrees: 90}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := lib.Transform(tt.id, tt.op); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

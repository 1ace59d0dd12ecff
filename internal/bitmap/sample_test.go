package bitmap

import (
	"errors"
	"math"
	"testing"
)

func TestSample_Quadrants(t *testing.T) {
	bm := createPatternBitmap(t, 100, 100)

	tests := []struct {
		name    string
		x, y    int
		wantHex string
		wantH   int
		wantL   int
	}{
		{"red", 10, 10, "#FF0000", 0, 50},
		{"green", 90, 10, "#00FF00", 120, 50},
		{"blue", 10, 90, "#0000FF", 240, 50},
		{"white", 90, 90, "#FFFFFF", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bm.Sample(tt.x, tt.y)
			if err != nil {
				t.Fatalf("Sample failed: %v", err)
			}
			if got.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", got.Hex, tt.wantHex)
			}
			if got.HSL.H != tt.wantH || got.HSL.L != tt.wantL {
				t.Errorf("HSL: got %+v, want h=%d l=%d", got.HSL, tt.wantH, tt.wantL)
			}
			if got.X != tt.x || got.Y != tt.y {
				t.Errorf("coordinates: got (%d,%d)", got.X, got.Y)
			}
		})
	}
}

func TestSample_LumaAndAlpha(t *testing.T) {
	bm, err := Filled(2, 2, 0, 255, 0, 40)
	if err != nil {
		t.Fatalf("Filled failed: %v", err)
	}
	got, err := bm.Sample(1, 1)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if math.Abs(got.Luma-0.7152) > 1e-9 {
		t.Errorf("Luma: got %v, want 0.7152", got.Luma)
	}
	if got.RGBA != (RGBAColor{0, 255, 0, 40}) {
		t.Errorf("RGBA: got %+v", got.RGBA)
	}
}

func TestSample_OutOfBounds(t *testing.T) {
	bm := createPatternBitmap(t, 10, 10)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if _, err := bm.Sample(p[0], p[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("(%d,%d): got %v, want ErrInvalidArgument", p[0], p[1], err)
		}
	}
}

func TestDominantColors(t *testing.T) {
	bm := createPatternBitmap(t, 10, 10)
	// Make the bottom-right quadrant also red so red covers half the image.
	for y := 5; y < 10; y++ {
		for x := 5; x < 10; x++ {
			copy(bm.Pix[bm.Offset(x, y):], []uint8{250, 3, 1, 255})
		}
	}

	got, err := bm.DominantColors(2)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d colors, want 2", len(got))
	}
	// 250,3,1 and 255,0,0 both quantize to F0,00,00.
	if got[0].Hex != "#F00000" || got[0].Percentage != 50 {
		t.Errorf("first: got %+v, want #F00000 at 50%%", got[0])
	}
	// Green and blue tie at 25%; the lower hex sorts first.
	if got[1].Hex != "#0000F0" || got[1].Percentage != 25 {
		t.Errorf("second: got %+v, want #0000F0 at 25%%", got[1])
	}

	if _, err := bm.DominantColors(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("count 0: got %v, want ErrInvalidArgument", err)
	}
}

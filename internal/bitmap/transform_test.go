package bitmap

import (
	"errors"
	"testing"
)

func TestCrop(t *testing.T) {
	bm := createPatternBitmap(t, 100, 100)

	out, err := bm.Crop(0, 0, 50, 50)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if out.Width != 50 || out.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", out.Width, out.Height)
	}
	if got := pixelAt(out, 49, 49); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("cropped corner: got %v, want red", got)
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	bm := createPatternBitmap(t, 100, 100)

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 negative", -1, 0, 50, 50},
		{"y1 negative", 0, -1, 50, 50},
		{"x2 too large", 0, 0, 101, 50},
		{"y2 too large", 0, 0, 50, 101},
		{"inverted", 50, 50, 10, 10},
		{"empty", 10, 10, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bm.Crop(tt.x1, tt.y1, tt.x2, tt.y2)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestCropNamed(t *testing.T) {
	bm := createPatternBitmap(t, 100, 80)

	tests := []struct {
		region      string
		wantW       int
		wantH       int
		wantCorner  [4]uint8
	}{
		{"top-left", 50, 40, [4]uint8{255, 0, 0, 255}},
		{"top-right", 50, 40, [4]uint8{0, 255, 0, 255}},
		{"bottom-left", 50, 40, [4]uint8{0, 0, 255, 255}},
		{"bottom-right", 50, 40, [4]uint8{255, 255, 255, 255}},
		{"top-half", 100, 40, [4]uint8{255, 0, 0, 255}},
		{"bottom-half", 100, 40, [4]uint8{0, 0, 255, 255}},
		{"left-half", 50, 80, [4]uint8{255, 0, 0, 255}},
		{"right-half", 50, 80, [4]uint8{0, 255, 0, 255}},
		{"center", 50, 40, [4]uint8{255, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			out, err := bm.CropNamed(tt.region)
			if err != nil {
				t.Fatalf("CropNamed failed: %v", err)
			}
			if out.Width != tt.wantW || out.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", out.Width, out.Height, tt.wantW, tt.wantH)
			}
			if got := pixelAt(out, 0, 0); got != tt.wantCorner {
				t.Errorf("top-left pixel: got %v, want %v", got, tt.wantCorner)
			}
		})
	}

	if _, err := bm.CropNamed("middle-ish"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown region: got %v, want ErrInvalidArgument", err)
	}
}

func TestRotate(t *testing.T) {
	bm := createPatternBitmap(t, 4, 2)

	tests := []struct {
		degrees       int
		wantW, wantH  int
		wantTopLeft   [4]uint8
	}{
		{0, 4, 2, [4]uint8{255, 0, 0, 255}},
		{90, 2, 4, [4]uint8{0, 0, 255, 255}},
		{180, 4, 2, [4]uint8{255, 255, 255, 255}},
		{270, 2, 4, [4]uint8{0, 255, 0, 255}},
		{-90, 2, 4, [4]uint8{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		out, err := bm.Rotate(tt.degrees)
		if err != nil {
			t.Fatalf("Rotate(%d) failed: %v", tt.degrees, err)
		}
		if out.Width != tt.wantW || out.Height != tt.wantH {
			t.Errorf("Rotate(%d) dimensions: got %dx%d, want %dx%d", tt.degrees, out.Width, out.Height, tt.wantW, tt.wantH)
		}
		if got := pixelAt(out, 0, 0); got != tt.wantTopLeft {
			t.Errorf("Rotate(%d) top-left: got %v, want %v", tt.degrees, got, tt.wantTopLeft)
		}
	}

	if _, err := bm.Rotate(45); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Rotate(45): got %v, want ErrInvalidArgument", err)
	}
}

func TestFlip(t *testing.T) {
	bm := createPatternBitmap(t, 4, 4)

	h, err := bm.Flip("horizontal")
	if err != nil {
		t.Fatalf("Flip horizontal failed: %v", err)
	}
	if got := pixelAt(h, 0, 0); got != [4]uint8{0, 255, 0, 255} {
		t.Errorf("horizontal flip top-left: got %v, want green", got)
	}

	v, err := bm.Flip("vertical")
	if err != nil {
		t.Fatalf("Flip vertical failed: %v", err)
	}
	if got := pixelAt(v, 0, 0); got != [4]uint8{0, 0, 255, 255} {
		t.Errorf("vertical flip top-left: got %v, want blue", got)
	}

	if _, err := bm.Flip("diagonal"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Flip(diagonal): got %v, want ErrInvalidArgument", err)
	}
}

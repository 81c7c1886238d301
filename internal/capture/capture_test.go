package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
)

func stubDisplays(t *testing.T, rects ...image.Rectangle) *[]image.Rectangle {
	t.Helper()
	prevNum, prevBounds, prevCapture := numDisplaysFn, displayBoundsFn, captureRectFn
	t.Cleanup(func() {
		numDisplaysFn, displayBoundsFn, captureRectFn = prevNum, prevBounds, prevCapture
	})
	var grabbed []image.Rectangle
	numDisplaysFn = func() int { return len(rects) }
	displayBoundsFn = func(i int) image.Rectangle { return rects[i] }
	captureRectFn = func(r image.Rectangle) (*image.RGBA, error) {
		grabbed = append(grabbed, r)
		img := image.NewRGBA(r)
		img.Set(r.Min.X, r.Min.Y, color.RGBA{R: 255, A: 255})
		return img, nil
	}
	return &grabbed
}

func TestDisplaysNone(t *testing.T) {
	stubDisplays(t)
	if _, err := Displays(); !errors.Is(err, errNoDisplays) {
		t.Fatalf("expected errNoDisplays, got %v", err)
	}
	if _, err := (Screen{}).Fullscreen(context.Background()); !errors.Is(err, errNoDisplays) {
		t.Fatalf("expected errNoDisplays from Fullscreen, got %v", err)
	}
}

func TestScreenFullscreenRebases(t *testing.T) {
	second := image.Rect(1920, 0, 3200, 1024)
	grabbed := stubDisplays(t, image.Rect(0, 0, 1920, 1080), second)

	img, err := Screen{Display: 1}.Fullscreen(context.Background())
	if err != nil {
		t.Fatalf("Fullscreen: %v", err)
	}
	if (*grabbed)[0] != second {
		t.Fatalf("captured %v, want %v", (*grabbed)[0], second)
	}
	if img.Bounds() != image.Rect(0, 0, 1280, 1024) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if img.RGBAAt(0, 0).R != 255 {
		t.Fatalf("expected marker pixel at origin")
	}
}

func TestScreenAllDisplays(t *testing.T) {
	grabbed := stubDisplays(t, image.Rect(0, 0, 100, 100), image.Rect(100, 0, 250, 80))
	if _, err := (Screen{Display: AllDisplays}).Fullscreen(context.Background()); err != nil {
		t.Fatalf("Fullscreen: %v", err)
	}
	if want := image.Rect(0, 0, 250, 100); (*grabbed)[0] != want {
		t.Fatalf("captured %v, want %v", (*grabbed)[0], want)
	}
}

func TestScreenRegionIsDisplayRelative(t *testing.T) {
	grabbed := stubDisplays(t, image.Rect(0, 0, 100, 100), image.Rect(100, 0, 300, 200))

	img, err := Screen{Display: 1}.Region(context.Background(), image.Rect(150, 150, 10, 10))
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	if want := image.Rect(110, 10, 250, 150); (*grabbed)[0] != want {
		t.Fatalf("captured %v, want %v", (*grabbed)[0], want)
	}
	if img.Bounds().Dx() != 140 || img.Bounds().Dy() != 140 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}

	if _, err := (Screen{Display: 1}).Region(context.Background(), image.Rect(500, 500, 600, 600)); err == nil {
		t.Fatalf("expected error for region outside display")
	}
	if _, err := (Screen{Display: 1}).Region(context.Background(), image.Rectangle{}); !errors.Is(err, errEmptyRegion) {
		t.Fatalf("expected errEmptyRegion, got %v", err)
	}
}

func TestScreenDisplayOutOfRange(t *testing.T) {
	stubDisplays(t, image.Rect(0, 0, 10, 10))
	if _, err := (Screen{Display: 3}).Fullscreen(context.Background()); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestScreenCaptureErrorWrapped(t *testing.T) {
	stubDisplays(t, image.Rect(0, 0, 10, 10))
	boom := errors.New("boom")
	captureRectFn = func(image.Rectangle) (*image.RGBA, error) { return nil, boom }
	if _, err := (Screen{}).Fullscreen(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped capture error, got %v", err)
	}
}

func TestScreenHonoursCancelledContext(t *testing.T) {
	grabbed := stubDisplays(t, image.Rect(0, 0, 10, 10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Screen{}).Fullscreen(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(*grabbed) != 0 {
		t.Fatalf("did not expect a capture")
	}
}

func TestFindDisplay(t *testing.T) {
	displays := []Display{
		{Index: 0, Rect: image.Rect(0, 0, 10, 10)},
		{Index: 1, Rect: image.Rect(10, 0, 20, 10), Primary: true},
	}
	tests := []struct {
		sel     string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"primary", 1, false},
		{"0", 0, false},
		{"#1", 1, false},
		{"all", AllDisplays, false},
		{"2", 0, true},
		{"left", 0, true},
	}
	for _, tc := range tests {
		got, err := FindDisplay(displays, tc.sel)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("FindDisplay(%q) expected error", tc.sel)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("FindDisplay(%q) = %d, %v; want %d", tc.sel, got, err, tc.want)
		}
	}
	if _, err := FindDisplay(nil, ""); !errors.Is(err, errNoDisplays) {
		t.Fatalf("expected errNoDisplays, got %v", err)
	}
}

func TestCropToRect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	src.Set(4, 4, color.RGBA{G: 255, A: 255})
	out, err := cropToRect(src, image.Rect(3, 3, 20, 20))
	if err != nil {
		t.Fatalf("cropToRect: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 7, 7) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if out.RGBAAt(1, 1).G != 255 {
		t.Fatalf("expected shifted pixel")
	}
	if _, err := cropToRect(src, image.Rect(50, 50, 60, 60)); err == nil {
		t.Fatalf("expected error for region outside image")
	}
}

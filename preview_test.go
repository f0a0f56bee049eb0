package tilefish

import (
	"image"
	"image/color"
	"testing"
)

func TestPreviewRepeatsTile(t *testing.T) {
	src, err := FromBuffer(uniqueBuffer(5, 4), 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	tile := Compose(src, BothShift)
	img := Preview(tile, BothShift, PreviewOptions{Cols: 3, Rows: 2})

	if want := image.Rect(0, 0, 15, 8); img.Bounds() != want {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), want)
	}
	for y := range 8 {
		for x := range 15 {
			if got, want := img.NRGBAAt(x, y), tile.Get(x%5, y%4); got != want {
				t.Fatalf("(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPreviewScaleAndCaption(t *testing.T) {
	src, err := FromBuffer(gridBuffer(4, 4), 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	img := Preview(src, Base, PreviewOptions{Scale: 3, Caption: true})

	// Defaults: 2x2 repetitions.
	if want := image.Rect(0, 0, 24, 24+captionHeight); img.Bounds() != want {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), want)
	}
	if got, want := img.NRGBAAt(5, 8), src.Get(1, 2); got != want {
		t.Errorf("scaled pixel = %v, want %v", got, want)
	}

	var text bool
	for y := 24; y < 24+captionHeight; y++ {
		for x := range 24 {
			c := img.NRGBAAt(x, y)
			if c == (color.NRGBA{}) {
				t.Fatalf("caption pixel (%d, %d) left transparent", x, y)
			}
			if c != captionBackground {
				text = true
			}
		}
	}
	if !text {
		t.Error("caption strip has no glyph pixels")
	}
}

func TestPreviewOptionsNormalize(t *testing.T) {
	tests := []struct {
		in, want PreviewOptions
	}{
		{PreviewOptions{}, PreviewOptions{Cols: 2, Rows: 2, Scale: 1}},
		{PreviewOptions{Cols: 3, Rows: 2, Scale: 3}, PreviewOptions{Cols: 3, Rows: 2, Scale: 2}},
		{PreviewOptions{Cols: 2, Rows: 2, Scale: 4}, PreviewOptions{Cols: 2, Rows: 2, Scale: 4}},
		{PreviewOptions{Cols: 8, Rows: 8, Scale: 8}, PreviewOptions{Cols: 8, Rows: 8, Scale: 1}},
		{PreviewOptions{Cols: 1000, Rows: 1, Scale: 1000}, PreviewOptions{Cols: 8, Rows: 1, Scale: 2}},
		{PreviewOptions{Cols: -3, Rows: 9, Caption: true}, PreviewOptions{Cols: 2, Rows: 8, Scale: 1, Caption: true}},
	}
	for _, tt := range tests {
		got := tt.in.Normalize()
		if got != tt.want {
			t.Errorf("%+v.Normalize() = %+v, want %+v", tt.in, got, tt.want)
		}
		if cells := got.Cols * got.Rows * got.Scale * got.Scale; cells > MaxPreviewCells {
			t.Errorf("%+v.Normalize() uses %d cells", tt.in, cells)
		}
	}
}

func TestPreviewBounded(t *testing.T) {
	src, err := FromBuffer(gridBuffer(4, 4), 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	img := Preview(src, Base, PreviewOptions{Cols: 8, Rows: 8, Scale: 8})
	if want := image.Rect(0, 0, 8*4, 8*4); img.Bounds() != want {
		t.Errorf("bounds = %v, want %v", img.Bounds(), want)
	}
}

package tilefish

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func TestVariantOffset(t *testing.T) {
	tests := []struct {
		v    Variant
		w, h int
		want image.Point
	}{
		{Base, 4, 4, image.Pt(0, 0)},
		{VShift, 4, 4, image.Pt(0, 2)},
		{HShift, 4, 4, image.Pt(2, 0)},
		{BothShift, 4, 4, image.Pt(2, 2)},
		{BothShift, 256, 256, image.Pt(128, 128)},
		{BothShift, 5, 7, image.Pt(2, 3)},
		{Variant(9), 4, 4, image.Pt(0, 0)},
	}
	for _, tt := range tests {
		if got := tt.v.Offset(tt.w, tt.h); got != tt.want {
			t.Errorf("%v.Offset(%d, %d) = %v, want %v", tt.v, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants {
		got, err := ParseVariant(v.String())
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v.String(), got, err)
		}
	}
	if _, err := ParseVariant(" BothShift "); err != nil {
		t.Errorf("ParseVariant should ignore case and space: %v", err)
	}
	if _, err := ParseVariant("diagonal"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("ParseVariant(diagonal) error = %v, want ErrUnknownVariant", err)
	}
}

func TestVariantLabel(t *testing.T) {
	tests := map[Variant]string{
		Base:      "Base",
		VShift:    "Vertical Shift",
		HShift:    "Horizontal Shift",
		BothShift: "Both Shift",
	}
	for v, want := range tests {
		if got := v.Label(); got != want {
			t.Errorf("%v.Label() = %q, want %q", v, got, want)
		}
	}
	if got := Variant(7).String(); got != "Variant(7)" {
		t.Errorf("invalid variant String() = %q", got)
	}
}

func TestPlacementCount(t *testing.T) {
	want := map[Variant]int{Base: 1, VShift: 2, HShift: 2, BothShift: 4}
	for v, n := range want {
		if got := len(placements(v.Offset(4, 4), 4, 4)); got != n {
			t.Errorf("%v: %d placements, want %d", v, got, n)
		}
	}
}

func TestComposeToroidal(t *testing.T) {
	sizes := []struct{ w, h int }{{4, 4}, {5, 3}, {1, 1}, {7, 9}, {2, 6}}
	for _, s := range sizes {
		src, err := FromBuffer(uniqueBuffer(s.w, s.h), s.w, s.h)
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range Variants {
			off := v.Offset(s.w, s.h)
			got := Compose(src, v)
			for y := range s.h {
				for x := range s.w {
					want := src.Get(mod(x-off.X, s.w), mod(y-off.Y, s.h))
					if c := got.Get(x, y); c != want {
						t.Fatalf("%dx%d %v: (%d, %d) = %v, want %v", s.w, s.h, v, x, y, c, want)
					}
				}
			}
		}
	}
}

// TestComposeCoverage checks that the placements of every variant cover each
// destination pixel exactly once, for even and odd sizes.
func TestComposeCoverage(t *testing.T) {
	sizes := []struct{ w, h int }{{4, 4}, {5, 5}, {3, 8}, {256, 256}}
	for _, s := range sizes {
		bounds := image.Rect(0, 0, s.w, s.h)
		for _, v := range Variants {
			hits := make([]int, s.w*s.h)
			for _, p := range placements(v.Offset(s.w, s.h), s.w, s.h) {
				r := image.Rect(p.X, p.Y, p.X+s.w, p.Y+s.h).Intersect(bounds)
				for y := r.Min.Y; y < r.Max.Y; y++ {
					for x := r.Min.X; x < r.Max.X; x++ {
						hits[y*s.w+x]++
					}
				}
			}
			for i, n := range hits {
				if n != 1 {
					t.Fatalf("%dx%d %v: pixel (%d, %d) written %d times",
						s.w, s.h, v, i%s.w, i/s.w, n)
				}
			}
		}
	}
}

// TestComposeNoStaleValues fills the destination with a sentinel before the
// placements run and checks none survives.
func TestComposeNoStaleValues(t *testing.T) {
	const w, h = 5, 7
	src, err := FromBuffer(uniqueBuffer(w, h), w, h)
	if err != nil {
		t.Fatal(err)
	}
	sentinel := color.NRGBA{R: 250, G: 251, B: 252, A: 3}
	for _, v := range Variants {
		dst := NewPixmap(w, h)
		for y := range h {
			for x := range w {
				dst.Set(x, y, sentinel)
			}
		}
		for _, p := range placements(v.Offset(w, h), w, h) {
			dst.PutRegion(src, p.X, p.Y)
		}
		if !dst.Equal(Compose(src, v)) {
			t.Errorf("%v: sentinel-filled destination differs from Compose", v)
		}
	}
}

func TestComposeScenario(t *testing.T) {
	src, err := FromBuffer(gridBuffer(4, 4), 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	got := Compose(src, BothShift)

	if c, want := got.Get(0, 0), (color.NRGBA{R: 120, G: 120, B: 0, A: 255}); c != want {
		t.Errorf("variant(0, 0) = %v, want %v", c, want)
	}
	if c, want := got.Get(3, 3), (color.NRGBA{R: 60, G: 60, B: 0, A: 255}); c != want {
		t.Errorf("variant(3, 3) = %v, want %v", c, want)
	}
}

func TestComposeBaseIsIdentity(t *testing.T) {
	src, err := FromBuffer(uniqueBuffer(6, 4), 6, 4)
	if err != nil {
		t.Fatal(err)
	}
	before := src.Clone()
	all := ComposeAll(src)
	if !all[Base].Equal(src) {
		t.Error("Base variant should equal the source")
	}
	if !src.Equal(before) {
		t.Error("ComposeAll modified the source")
	}
	if all[Base] == src {
		t.Error("Base variant should be a new surface")
	}
}

// TestComposeSeamless tiles BothShift twice and checks the interior seam of
// the tiled strip reproduces the source's own neighbours.
func TestComposeSeamless(t *testing.T) {
	const w, h = 6, 6
	src, err := FromBuffer(uniqueBuffer(w, h), w, h)
	if err != nil {
		t.Fatal(err)
	}
	v := Compose(src, HShift)
	strip := NewPixmap(2*w, h)
	strip.PutRegion(v, 0, 0)
	strip.PutRegion(v, w, 0)
	// Columns w-1 and w of the strip must be neighbouring source columns.
	for y := range h {
		left, right := strip.Get(w-1, y), strip.Get(w, y)
		wantLeft := src.Get(mod(w-1-w/2, w), y)
		wantRight := src.Get(mod(w-1-w/2+1, w), y)
		if left != wantLeft || right != wantRight {
			t.Fatalf("row %d: seam (%v, %v), want (%v, %v)", y, left, right, wantLeft, wantRight)
		}
	}
}

func BenchmarkComposeAll(b *testing.B) {
	src, err := FromBuffer(uniqueBuffer(256, 256), 256, 256)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		_ = ComposeAll(src)
	}
}

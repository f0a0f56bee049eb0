package tilefish

import "image"

// placements returns the positions at which the source is written so that
// the destination holds the source wrapped by off. Only placements that
// overlap the destination are returned: one for a zero offset, two for a
// single-axis shift and four when both axes are shifted.
func placements(off image.Point, width, height int) []image.Point {
	xs := []int{off.X}
	if off.X != 0 {
		xs = []int{off.X - width, off.X}
	}
	ys := []int{off.Y}
	if off.Y != 0 {
		ys = []int{off.Y - height, off.Y}
	}
	pts := make([]image.Point, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			pts = append(pts, image.Pt(x, y))
		}
	}
	return pts
}

// Compose returns the toroidal shift of src for variant v.
//
// For every (x, y) in bounds the result satisfies
//
//	Compose(src, v).Get(x, y) == src.Get((x-dx) mod w, (y-dy) mod h)
//
// where (dx, dy) is v.Offset(w, h). Tiling the result shows no seam at the
// position of the source's former edges. src is not modified.
func Compose(src *Pixmap, v Variant) *Pixmap {
	w, h := src.Width(), src.Height()
	off := v.Offset(w, h)
	dst := NewPixmap(w, h)
	for _, p := range placements(off, w, h) {
		dst.PutRegion(src, p.X, p.Y)
	}
	return dst
}

// ComposeAll returns all four variants of src, indexed by Variant.
func ComposeAll(src *Pixmap) [NumVariants]*Pixmap {
	var out [NumVariants]*Pixmap
	for _, v := range Variants {
		out[v] = Compose(src, v)
	}
	return out
}

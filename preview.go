package tilefish

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PreviewOptions controls the repeat preview rendered by Preview.
type PreviewOptions struct {
	// Cols and Rows give the number of tile repetitions. Values below 1 mean 2;
	// values above MaxPreviewRepeat are clamped.
	Cols, Rows int

	// Scale enlarges every tile by an integer factor using nearest-neighbour
	// sampling. Values below 1 mean 1.
	Scale int

	// Caption adds a strip under the tiles with the variant label.
	Caption bool
}

// Preview limits. Cols*Rows*Scale*Scale never exceeds MaxPreviewCells, so a
// preview holds at most as many pixels as 64 unscaled tiles.
const (
	MaxPreviewRepeat = 8
	MaxPreviewScale  = 4
	MaxPreviewCells  = 64
)

const captionHeight = 18

var (
	captionBackground = color.NRGBA{R: 24, G: 24, B: 24, A: 255}
	captionForeground = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
)

// Normalize fills in defaults and clamps o to the preview limits.
// Scale gives way first when the cell budget is exceeded.
func (o PreviewOptions) Normalize() PreviewOptions {
	if o.Cols < 1 {
		o.Cols = 2
	}
	if o.Rows < 1 {
		o.Rows = 2
	}
	if o.Scale < 1 {
		o.Scale = 1
	}
	o.Cols = min(o.Cols, MaxPreviewRepeat)
	o.Rows = min(o.Rows, MaxPreviewRepeat)
	o.Scale = min(o.Scale, MaxPreviewScale)
	for o.Scale > 1 && o.Cols*o.Rows*o.Scale*o.Scale > MaxPreviewCells {
		o.Scale--
	}
	return o
}

// Preview renders tile repeated Cols x Rows times, so seams (or their
// absence) are visible before the tile is saved. opts is normalized first.
func Preview(tile *Pixmap, v Variant, opts PreviewOptions) *image.NRGBA {
	opts = opts.Normalize()

	tw, th := tile.Width()*opts.Scale, tile.Height()*opts.Scale
	gridH := th * opts.Rows
	height := gridH
	if opts.Caption {
		height += captionHeight
	}
	out := image.NewNRGBA(image.Rect(0, 0, tw*opts.Cols, height))

	src := tile.ToImage()
	cell := src
	if opts.Scale > 1 {
		cell = image.NewNRGBA(image.Rect(0, 0, tw, th))
		draw.NearestNeighbor.Scale(cell, cell.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
	for row := range opts.Rows {
		for col := range opts.Cols {
			r := image.Rect(col*tw, row*th, (col+1)*tw, (row+1)*th)
			draw.Draw(out, r, cell, image.Point{}, draw.Src)
		}
	}

	if opts.Caption {
		strip := image.Rect(0, gridH, out.Rect.Dx(), height)
		draw.Draw(out, strip, image.NewUniform(captionBackground), image.Point{}, draw.Src)
		d := font.Drawer{
			Dst:  out,
			Src:  image.NewUniform(captionForeground),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(4, gridH+basicfont.Face7x13.Ascent+2),
		}
		d.DrawString(v.Label())
	}
	return out
}

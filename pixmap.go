package tilefish

import (
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of interleaved bytes per pixel (R, G, B, A).
const Channels = 4

// Pixmap is an addressable 2-D surface over a contiguous RGBA byte buffer.
// Colors are stored non-premultiplied, 4 bytes per pixel, row-major.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*Channels),
	}
}

// FromBuffer materializes a raw raster buffer into a Pixmap.
//
// The buffer must hold exactly width*height*4 bytes; anything else is a
// broken generator contract and is reported as ErrContractViolation.
// The bytes are copied, so the caller may reuse data afterwards.
func FromBuffer(data []byte, width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrContractViolation, width, height)
	}
	if want := width * height * Channels; len(data) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d (%dx%dx%d)",
			ErrContractViolation, len(data), want, width, height, Channels)
	}
	pm := NewPixmap(width, height)
	copy(pm.data, data)
	return pm, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Get returns the color of a single pixel.
// Out-of-bounds coordinates return transparent black.
func (p *Pixmap) Get(x, y int) color.NRGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * Channels
	return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Set sets the color of a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) Set(x, y int, c color.NRGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * Channels
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// PutRegion copies src onto p with its top-left corner at (ox, oy).
//
// Source pixels that land outside p are discarded. Destination pixels not
// covered by src keep their prior value.
func (p *Pixmap) PutRegion(src *Pixmap, ox, oy int) {
	dst := image.Rect(ox, oy, ox+src.width, oy+src.height).Intersect(p.Bounds())
	if dst.Empty() {
		return
	}
	rowBytes := dst.Dx() * Channels
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		si := ((y-oy)*src.width + (dst.Min.X - ox)) * Channels
		di := (y*p.width + dst.Min.X) * Channels
		copy(p.data[di:di+rowBytes], src.data[si:si+rowBytes])
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := NewPixmap(p.width, p.height)
	copy(c.data, p.data)
	return c
}

// Equal reports whether p and q have the same dimensions and pixels.
func (p *Pixmap) Equal(q *Pixmap) bool {
	if p.width != q.width || p.height != q.height {
		return false
	}
	for i := range p.data {
		if p.data[i] != q.data[i] {
			return false
		}
	}
	return true
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())

	// Fast path: decoders for lossless formats usually hand back NRGBA.
	if n, ok := img.(*image.NRGBA); ok {
		for y := range pm.height {
			si := (y+bounds.Min.Y-n.Rect.Min.Y)*n.Stride + (bounds.Min.X-n.Rect.Min.X)*Channels
			copy(pm.data[y*pm.width*Channels:(y+1)*pm.width*Channels], n.Pix[si:si+pm.width*Channels])
		}
		return pm
	}

	for y := range pm.height {
		for x := range pm.width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			pm.Set(x, y, c)
		}
	}
	return pm
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.Get(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

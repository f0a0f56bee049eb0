package tilefish

import (
	"encoding/base64"
	"fmt"

	intImage "github.com/gogpu/tilefish/internal/image"
)

// Format identifies a lossless encoded image container.
type Format = intImage.Format

// Encoded formats.
const (
	// FormatPNG is deflate-compressed PNG. This is the default.
	FormatPNG = intImage.FormatPNG

	// FormatBMP is an uncompressed Windows bitmap.
	FormatBMP = intImage.FormatBMP

	// FormatTIFF is a deflate-compressed TIFF.
	FormatTIFF = intImage.FormatTIFF
)

// ParseFormat returns the format with the given name or extension.
func ParseFormat(s string) (Format, error) {
	return intImage.ParseFormat(s)
}

// EncodedImage is the self-contained encoding of one composited tile.
// It can be assigned directly to a display target or written to a file.
type EncodedImage struct {
	Variant Variant
	Format  Format
	Width   int
	Height  int
	Data    []byte
}

// IsZero reports whether the image holds no encoded data.
func (e EncodedImage) IsZero() bool {
	return len(e.Data) == 0
}

// MIMEType returns the media type of the encoded data.
func (e EncodedImage) MIMEType() string {
	return e.Format.MIMEType()
}

// DataURI returns the image as an RFC 2397 data URI suitable for an
// <img src> or a CSS url().
func (e EncodedImage) DataURI() string {
	return "data:" + e.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(e.Data)
}

// Filename returns "<prefix>-<variant><ext>", e.g. "tile-bothshift.png".
func (e EncodedImage) Filename(prefix string) string {
	return prefix + "-" + e.Variant.String() + e.Format.Ext()
}

// Encode serializes a composited surface losslessly.
// Failures are reported wrapped in ErrEncode.
func Encode(pm *Pixmap, v Variant, f Format) (EncodedImage, error) {
	data, err := intImage.EncodeBytes(pm.ToImage(), f)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("%w: %v: %w", ErrEncode, v, err)
	}
	return EncodedImage{
		Variant: v,
		Format:  f,
		Width:   pm.Width(),
		Height:  pm.Height(),
		Data:    data,
	}, nil
}

// EncodeAll encodes the four variants produced by ComposeAll.
// The first failure aborts the batch.
func EncodeAll(tiles [NumVariants]*Pixmap, f Format) ([NumVariants]EncodedImage, error) {
	var out [NumVariants]EncodedImage
	for _, v := range Variants {
		enc, err := Encode(tiles[v], v, f)
		if err != nil {
			return [NumVariants]EncodedImage{}, err
		}
		out[v] = enc
	}
	return out, nil
}

// Decode restores the surface held by an encoded image.
func Decode(e EncodedImage) (*Pixmap, error) {
	img, _, err := intImage.DecodeBytes(e.Data)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

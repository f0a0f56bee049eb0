package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")

	// ErrAlphaUnsupported is returned when a translucent image is encoded
	// in a format that would drop its alpha channel.
	ErrAlphaUnsupported = errors.New("image: format cannot store alpha")
)

var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// Encode writes img to w in the given format.
// Formats without an alpha channel reject translucent images with
// ErrAlphaUnsupported instead of flattening them.
func Encode(w io.Writer, img image.Image, f Format) error {
	if f.IsValid() && !f.Info().Alpha && !isOpaque(img) {
		return fmt.Errorf("%w: %v", ErrAlphaUnsupported, f)
	}
	var err error
	switch f {
	case FormatPNG:
		err = pngEncoder.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("image: encode %v: %w", f, err)
	}
	return nil
}

// isOpaque reports whether every pixel of img has full alpha.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// EncodeBytes encodes img in the given format and returns the bytes.
func EncodeBytes(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes an image in any supported format, auto-detecting it.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, 0, fmt.Errorf("image: decode: %w", err)
	}
	f, err := ParseFormat(name)
	if err != nil {
		return nil, 0, err
	}
	return img, f, nil
}

// DecodeBytes decodes an image from a byte slice, auto-detecting the format.
func DecodeBytes(data []byte) (image.Image, Format, error) {
	if len(data) == 0 {
		return nil, 0, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

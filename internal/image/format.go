// Package image provides the lossless still-image codecs used by tilefish.
//
// Every format offered here must reproduce each pixel exactly: encoded tiles
// are both displayed and saved, and a lossy step would make the saved file
// differ from the generated one.
package image

import (
	"fmt"
	"strings"
)

// Format identifies an encoded image container.
type Format uint8

const (
	// FormatPNG is deflate-compressed PNG. This is the default.
	FormatPNG Format = iota

	// FormatBMP is an uncompressed Windows bitmap.
	FormatBMP

	// FormatTIFF is a deflate-compressed TIFF.
	FormatTIFF

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about an encoded format.
type FormatInfo struct {
	// Name is the short name accepted by ParseFormat.
	Name string

	// Ext is the file extension including the leading dot.
	Ext string

	// MIMEType is the media type used in data URIs and HTTP responses.
	MIMEType string

	// Alpha reports whether the container keeps the alpha channel.
	// Formats without it accept only opaque images.
	Alpha bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatPNG:  {Name: "png", Ext: ".png", MIMEType: "image/png", Alpha: true},
	FormatBMP:  {Name: "bmp", Ext: ".bmp", MIMEType: "image/bmp"},
	FormatTIFF: {Name: "tiff", Ext: ".tiff", MIMEType: "image/tiff", Alpha: true},
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// Info returns the metadata for this format.
// Returns zero FormatInfo for invalid formats.
func (f Format) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Ext returns the file extension, e.g. ".png".
func (f Format) Ext() string {
	return f.Info().Ext
}

// MIMEType returns the media type, e.g. "image/png".
func (f Format) MIMEType() string {
	return f.Info().MIMEType
}

// String returns the short name of the format.
func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return formatInfoTable[f].Name
}

// ParseFormat returns the format with the given name or extension.
// "tif" and ".tif" are accepted as TIFF.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	if s == "tif" {
		return FormatTIFF, nil
	}
	for f := range formatCount {
		if formatInfoTable[f].Name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

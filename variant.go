package tilefish

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Variant names one of the four boundary phases of a generated tile.
type Variant uint8

const (
	// Base is the generated image itself, offset (0, 0).
	Base Variant = iota

	// VShift wraps the image by half its height, offset (0, h/2).
	VShift

	// HShift wraps the image by half its width, offset (w/2, 0).
	HShift

	// BothShift wraps the image along both axes, offset (w/2, h/2).
	BothShift

	// NumVariants is the number of tile variants.
	NumVariants = 4
)

// Variants lists every tile variant in presentation order.
var Variants = [NumVariants]Variant{Base, VShift, HShift, BothShift}

var variantNames = [NumVariants]string{
	Base:      "base",
	VShift:    "vshift",
	HShift:    "hshift",
	BothShift: "bothshift",
}

var variantLabels = [NumVariants]string{
	Base:      "base",
	VShift:    "vertical shift",
	HShift:    "horizontal shift",
	BothShift: "both shift",
}

// String returns the short machine name of the variant, e.g. "vshift".
func (v Variant) String() string {
	if !v.IsValid() {
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
	return variantNames[v]
}

// Label returns a human-readable title such as "Vertical Shift".
func (v Variant) Label() string {
	if !v.IsValid() {
		return v.String()
	}
	return cases.Title(language.English).String(variantLabels[v])
}

// IsValid reports whether v is one of the four defined variants.
func (v Variant) IsValid() bool {
	return v < NumVariants
}

// Offset returns the wrap offset of the variant for a width x height source.
// Halves use floor division so odd sizes still tile exactly.
func (v Variant) Offset(width, height int) image.Point {
	switch v {
	case VShift:
		return image.Pt(0, height/2)
	case HShift:
		return image.Pt(width/2, 0)
	case BothShift:
		return image.Pt(width/2, height/2)
	default:
		return image.Point{}
	}
}

// ParseVariant returns the variant with the given machine name.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, v := range Variants {
		if variantNames[v] == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

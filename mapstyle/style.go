// Package mapstyle defines MapStyle, the styling value object used when
// labeling or decorating rendered tiles. Color, font, and alignment are
// treated as the spec's external collaborators (plain stdlib/primitive
// types); MapStyle itself is the composition the spec asks for.
package mapstyle

import "image/color"

// HAlign is a horizontal text alignment.
type HAlign int

const (
	HAlignCenter HAlign = iota
	HAlignLeft
	HAlignRight
)

// VAlign is a vertical text alignment.
type VAlign int

const (
	VAlignMiddle VAlign = iota
	VAlignTop
	VAlignBottom
)

func (a HAlign) valid() bool {
	switch a {
	case HAlignCenter, HAlignLeft, HAlignRight:
		return true
	default:
		return false
	}
}

func (a VAlign) valid() bool {
	switch a {
	case VAlignMiddle, VAlignTop, VAlignBottom:
		return true
	default:
		return false
	}
}

// MapStyle is a mutable bundle of drawing style properties. Setters reject
// invalid values silently (best-effort configuration), per the spec's
// error-handling design: style is cosmetic, never worth failing a render
// over.
type MapStyle struct {
	Color       color.NRGBA
	BorderColor color.NRGBA
	BorderWidth float64

	FontName string
	FontSize float64

	HAlign HAlign
	VAlign VAlign

	// WrapWidth is the wrap width in pixels; 0 means no wrapping.
	WrapWidth int
}

// New returns a MapStyle with the documented defaults: center/middle
// alignment, opaque black color, no border, no wrap.
func New() *MapStyle {
	return &MapStyle{
		Color:  color.NRGBA{A: 255},
		HAlign: HAlignCenter,
		VAlign: VAlignMiddle,
	}
}

// SetColor sets the fill color.
func (s *MapStyle) SetColor(c color.NRGBA) { s.Color = c }

// SetBorder sets the border color and width; a negative width is rejected.
func (s *MapStyle) SetBorder(c color.NRGBA, width float64) {
	if width < 0 {
		return
	}
	s.BorderColor = c
	s.BorderWidth = width
}

// SetFont sets the font name and a positive size; non-positive sizes are
// rejected.
func (s *MapStyle) SetFont(name string, size float64) {
	if size <= 0 {
		return
	}
	s.FontName = name
	s.FontSize = size
}

// SetHAlign sets horizontal alignment; an unrecognized value is ignored.
func (s *MapStyle) SetHAlign(a HAlign) {
	if a.valid() {
		s.HAlign = a
	}
}

// SetVAlign sets vertical alignment; an unrecognized value is ignored.
func (s *MapStyle) SetVAlign(a VAlign) {
	if a.valid() {
		s.VAlign = a
	}
}

// SetWrapWidth sets the wrap width in pixels; 0 clears wrapping, negative
// values are rejected.
func (s *MapStyle) SetWrapWidth(width int) {
	if width < 0 {
		return
	}
	s.WrapWidth = width
}

// Clone returns a deep copy (MapStyle holds only value types, so a shallow
// struct copy already qualifies as deep).
func (s *MapStyle) Clone() *MapStyle {
	c := *s
	return &c
}

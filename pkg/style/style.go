// Package style defines the style record consumed by the box-model resolver
// and the widget renderers, the style-stack snapshot replayed from the
// operation tape, and the providers that cascade a snapshot into a record.
package style

import (
	"image/color"

	"weft/pkg/geom"
)

// Unit specifies how a Length is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // size from content
	UnitFixed               // absolute border-box size
	UnitPercent             // percentage of the available extent (0-100)
	UnitFill                // consume the available extent
)

// Length is a dimension that can be auto, fixed, a percentage or fill.
type Length struct {
	Value float64
	Unit  Unit
}

// Auto returns a content-sized Length.
func Auto() Length { return Length{Unit: UnitAuto} }

// Px returns a fixed Length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitFixed} }

// Percent returns a percentage Length on a 0-100 scale.
func Percent(p float64) Length { return Length{Value: p, Unit: UnitPercent} }

// Fill returns a Length that consumes the available extent.
func Fill() Length { return Length{Unit: UnitFill} }

// IsAuto reports whether the length is content sized.
func (l Length) IsAuto() bool { return l.Unit == UnitAuto }

// Resolve returns the concrete value for the given available extent.
// Auto yields fallback.
func (l Length) Resolve(available, fallback float64) float64 {
	switch l.Unit {
	case UnitFixed:
		return l.Value
	case UnitPercent:
		return available * l.Value / 100
	case UnitFill:
		return available
	default:
		return fallback
	}
}

// Align positions content inside a box along one axis.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// Prop is a bit per style field; a record only overrides the fields it set.
type Prop uint32

const (
	PropMargin Prop = 1 << iota
	PropBorder
	PropPadding
	PropWidth
	PropHeight
	PropMinWidth
	PropMinHeight
	PropMaxWidth
	PropMaxHeight
	PropBackground
	PropForeground
	PropBorderColor
	PropRadius
	PropFontSize
	PropFont
	PropBold
	PropTextAlign
	PropClip
)

// Style is a fully typed style record. Max sizes of zero mean unbounded.
type Style struct {
	Margin  geom.Edges
	Border  geom.Edges
	Padding geom.Edges

	Width     Length
	Height    Length
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64

	Background  color.RGBA
	Foreground  color.RGBA
	BorderColor color.RGBA
	Radius      float64

	FontSize  float64
	Font      string
	Bold      bool
	TextAlign Align

	// Clip makes a region clip its descendants to its padding box.
	Clip bool

	Props Prop
}

// Default returns the base record every cascade starts from.
func Default() Style {
	return Style{
		Width:      Auto(),
		Height:     Auto(),
		Foreground: color.RGBA{A: 255},
		FontSize:   14,
		Font:       "sans",
	}
}

// Has reports whether p was set on the record.
func (s *Style) Has(p Prop) bool { return s.Props&p != 0 }

// BoxEdges returns margin+border+padding per side.
func (s *Style) BoxEdges() geom.Edges {
	return s.Margin.Add(s.Border).Add(s.Padding)
}

// Merge copies every field set on src onto s.
func (s *Style) Merge(src *Style) {
	if src == nil {
		return
	}
	p := src.Props
	if p&PropMargin != 0 {
		s.Margin = src.Margin
	}
	if p&PropBorder != 0 {
		s.Border = src.Border
	}
	if p&PropPadding != 0 {
		s.Padding = src.Padding
	}
	if p&PropWidth != 0 {
		s.Width = src.Width
	}
	if p&PropHeight != 0 {
		s.Height = src.Height
	}
	if p&PropMinWidth != 0 {
		s.MinWidth = src.MinWidth
	}
	if p&PropMinHeight != 0 {
		s.MinHeight = src.MinHeight
	}
	if p&PropMaxWidth != 0 {
		s.MaxWidth = src.MaxWidth
	}
	if p&PropMaxHeight != 0 {
		s.MaxHeight = src.MaxHeight
	}
	if p&PropBackground != 0 {
		s.Background = src.Background
	}
	if p&PropForeground != 0 {
		s.Foreground = src.Foreground
	}
	if p&PropBorderColor != 0 {
		s.BorderColor = src.BorderColor
	}
	if p&PropRadius != 0 {
		s.Radius = src.Radius
	}
	if p&PropFontSize != 0 {
		s.FontSize = src.FontSize
	}
	if p&PropFont != 0 {
		s.Font = src.Font
	}
	if p&PropBold != 0 {
		s.Bold = src.Bold
	}
	if p&PropTextAlign != 0 {
		s.TextAlign = src.TextAlign
	}
	if p&PropClip != 0 {
		s.Clip = src.Clip
	}
	s.Props |= p
}

// Builder-style setters. Each marks its field as set.

func (s Style) WithMargin(e geom.Edges) Style {
	s.Margin = e
	s.Props |= PropMargin
	return s
}

func (s Style) WithBorder(e geom.Edges) Style {
	s.Border = e
	s.Props |= PropBorder
	return s
}

func (s Style) WithPadding(e geom.Edges) Style {
	s.Padding = e
	s.Props |= PropPadding
	return s
}

func (s Style) WithWidth(l Length) Style {
	s.Width = l
	s.Props |= PropWidth
	return s
}

func (s Style) WithHeight(l Length) Style {
	s.Height = l
	s.Props |= PropHeight
	return s
}

func (s Style) WithMinSize(w, h float64) Style {
	s.MinWidth, s.MinHeight = w, h
	s.Props |= PropMinWidth | PropMinHeight
	return s
}

func (s Style) WithMaxSize(w, h float64) Style {
	s.MaxWidth, s.MaxHeight = w, h
	s.Props |= PropMaxWidth | PropMaxHeight
	return s
}

func (s Style) WithBackground(c color.RGBA) Style {
	s.Background = c
	s.Props |= PropBackground
	return s
}

func (s Style) WithForeground(c color.RGBA) Style {
	s.Foreground = c
	s.Props |= PropForeground
	return s
}

func (s Style) WithBorderColor(c color.RGBA) Style {
	s.BorderColor = c
	s.Props |= PropBorderColor
	return s
}

func (s Style) WithRadius(r float64) Style {
	s.Radius = r
	s.Props |= PropRadius
	return s
}

func (s Style) WithFont(name string, size float64) Style {
	s.Font, s.FontSize = name, size
	s.Props |= PropFont | PropFontSize
	return s
}

func (s Style) WithBold(b bool) Style {
	s.Bold = b
	s.Props |= PropBold
	return s
}

func (s Style) WithTextAlign(a Align) Style {
	s.TextAlign = a
	s.Props |= PropTextAlign
	return s
}

func (s Style) WithClip(clip bool) Style {
	s.Clip = clip
	s.Props |= PropClip
	return s
}

// Package draw defines the renderer primitives every backend implements,
// plus the deferred queue and depth buckets the replayer draws through.
package draw

import (
	"image"
	"image/color"

	"weft/pkg/geom"
)

// Font selects the face used by subsequent Text calls.
type Font struct {
	Name string
	Size float64
	Bold bool
}

// Renderer is the small fixed set of primitives a backend provides.
// Coordinates are in frame space unless the renderer is a Queue.
type Renderer interface {
	Line(x1, y1, x2, y2, width float64, c color.RGBA)
	Rect(r geom.Rect, c color.RGBA)
	StrokeRect(r geom.Rect, width float64, c color.RGBA)
	RoundedRect(r geom.Rect, radius float64, c color.RGBA)
	Circle(cx, cy, radius float64, c color.RGBA)

	// Text draws s with its top-left corner at (x, y) in the current font.
	Text(s string, x, y float64, c color.RGBA)
	Image(img image.Image, r geom.Rect)

	PushClip(r geom.Rect)
	PopClip()
	PushFont(f Font)
	PopFont()
}

// Discard is a Renderer that draws nothing.
var Discard Renderer = discard{}

type discard struct{}

func (discard) Line(_, _, _, _, _ float64, _ color.RGBA) {}
func (discard) Rect(geom.Rect, color.RGBA) {}
func (discard) StrokeRect(geom.Rect, float64, color.RGBA) {}
func (discard) RoundedRect(geom.Rect, float64, color.RGBA) {}
func (discard) Circle(_, _, _ float64, _ color.RGBA) {}
func (discard) Text(string, float64, float64, color.RGBA) {}
func (discard) Image(image.Image, geom.Rect) {}
func (discard) PushClip(geom.Rect) {}
func (discard) PopClip() {}
func (discard) PushFont(Font) {}
func (discard) PopFont() {}

// Border paints the ring between border and padding, whose widths are e.
// Equal sides are stroked; uneven ones are filled one rectangle per side.
func Border(r Renderer, border, padding geom.Rect, e geom.Edges, c color.RGBA) {
	if e.Top == e.Right && e.Top == e.Bottom && e.Top == e.Left {
		if w := e.Top; w > 0 {
			r.StrokeRect(border.Inset(geom.EdgeAll(w/2)), w, c)
		}
		return
	}
	if h := padding.Y - border.Y; h > 0 {
		r.Rect(geom.R(border.X, border.Y, border.Width, h), c)
	}
	if h := border.Bottom() - padding.Bottom(); h > 0 {
		r.Rect(geom.R(border.X, padding.Bottom(), border.Width, h), c)
	}
	if w := padding.X - border.X; w > 0 {
		r.Rect(geom.R(border.X, padding.Y, w, padding.Height), c)
	}
	if w := border.Right() - padding.Right(); w > 0 {
		r.Rect(geom.R(padding.Right(), padding.Y, w, padding.Height), c)
	}
}

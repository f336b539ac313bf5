// Package boxmodel derives the nested margin, border, padding and content
// rectangles of one item from its style record.
//
// Width and Height in the style are border-box sizes. A fixed or percentage
// size is clamped to [min,max] (min wins when they conflict). Fill consumes
// the available extent minus margins. Anything else is content + padding +
// border. Every function here is pure and safe to call speculatively.
package boxmodel

import (
	"math"

	"weft/pkg/geom"
	"weft/pkg/style"
)

// Anchor says which edge of the available rectangle the margin box is
// pinned to on one axis.
type Anchor uint8

const (
	Leading  Anchor = iota // left / top
	Trailing               // right / bottom
)

// Request describes one resolution.
type Request struct {
	Avail   geom.Rect // where the margin box is placed
	Content geom.Size // requested content size, used for auto dimensions

	// Base is what percentage sizes resolve against. A zero axis falls
	// back to Avail.
	Base geom.Size

	FillX, FillY     bool
	AnchorX, AnchorY Anchor

	// Prefix and Suffix reserve slices of the content box at its leading and
	// trailing horizontal edges (check marks, icons). Text gets the rest.
	Prefix, Suffix float64
}

// BoxModel is the resolved geometry of one item.
type BoxModel struct {
	Margin  geom.Rect
	Border  geom.Rect
	Padding geom.Rect
	Content geom.Rect

	Prefix geom.Rect
	Suffix geom.Rect
	Text   geom.Rect
}

// Resolve computes the box model for st under req.
func Resolve(st *style.Style, req Request) BoxModel {
	m := st.Margin.NonNegative()
	base := req.Base
	if base.Width == 0 {
		base.Width = req.Avail.Width
	}
	if base.Height == 0 {
		base.Height = req.Avail.Height
	}
	bw := borderExtent(st.Width, st.MinWidth, st.MaxWidth,
		req.Avail.Width-m.Horizontal(), base.Width-m.Horizontal(),
		req.Content.Width+st.Padding.Horizontal()+st.Border.Horizontal(), req.FillX)
	bh := borderExtent(st.Height, st.MinHeight, st.MaxHeight,
		req.Avail.Height-m.Vertical(), base.Height-m.Vertical(),
		req.Content.Height+st.Padding.Vertical()+st.Border.Vertical(), req.FillY)

	mw := bw + m.Horizontal()
	mh := bh + m.Vertical()

	x := req.Avail.X
	if req.AnchorX == Trailing {
		x = req.Avail.Right() - mw
	}
	y := req.Avail.Y
	if req.AnchorY == Trailing {
		y = req.Avail.Bottom() - mh
	}

	bm := build(st, geom.R(x, y, mw, mh))
	bm.splitContent(req.Prefix, req.Suffix)
	return bm
}

// FromBorderBox rebuilds a box model around a border rectangle, as read back
// from an external solver.
func FromBorderBox(st *style.Style, border geom.Rect) BoxModel {
	return build(st, border.Outset(st.Margin.NonNegative()))
}

// Outer returns the margin-box size an item with the given content would
// take when it does not fill. Percentages resolve against base.
func Outer(st *style.Style, content, base geom.Size) geom.Size {
	m := st.Margin.NonNegative()
	bw := borderExtent(st.Width, st.MinWidth, st.MaxWidth, 0, base.Width-m.Horizontal(),
		content.Width+st.Padding.Horizontal()+st.Border.Horizontal(), false)
	bh := borderExtent(st.Height, st.MinHeight, st.MaxHeight, 0, base.Height-m.Vertical(),
		content.Height+st.Padding.Vertical()+st.Border.Vertical(), false)
	return geom.Size{Width: bw + m.Horizontal(), Height: bh + m.Vertical()}
}

func build(st *style.Style, margin geom.Rect) BoxModel {
	var bm BoxModel
	bm.Margin = margin
	bm.Border = bm.Margin.Inset(st.Margin)
	bm.Padding = bm.Border.Inset(st.Border)
	bm.Content = bm.Padding.Inset(st.Padding)
	bm.Text = bm.Content
	return bm
}

func (bm *BoxModel) splitContent(prefix, suffix float64) {
	c := bm.Content
	prefix = math.Min(math.Max(prefix, 0), c.Width)
	suffix = math.Min(math.Max(suffix, 0), c.Width-prefix)
	bm.Prefix = geom.R(c.X, c.Y, prefix, c.Height)
	bm.Suffix = geom.R(c.Right()-suffix, c.Y, suffix, c.Height)
	bm.Text = geom.R(c.X+prefix, c.Y, c.Width-prefix-suffix, c.Height)
}

// borderExtent resolves one axis of the border box.
func borderExtent(l style.Length, lo, hi, avail, base, auto float64, fill bool) float64 {
	avail = math.Max(avail, 0)
	var v float64
	switch {
	case l.Unit == style.UnitFixed:
		v = l.Value
	case l.Unit == style.UnitPercent:
		v = math.Max(base, 0) * l.Value / 100
	case l.Unit == style.UnitFill || fill:
		v = avail
	default:
		v = auto
	}
	return clamp(v, lo, hi)
}

// clamp bounds v to [lo,hi]; hi of zero is unbounded and lo wins over hi.
func clamp(v, lo, hi float64) float64 {
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return math.Max(v, 0)
}

// Translate moves every rectangle by (dx,dy).
func (bm BoxModel) Translate(dx, dy float64) BoxModel {
	bm.Margin = bm.Margin.Translate(dx, dy)
	bm.Border = bm.Border.Translate(dx, dy)
	bm.Padding = bm.Padding.Translate(dx, dy)
	bm.Content = bm.Content.Translate(dx, dy)
	bm.Prefix = bm.Prefix.Translate(dx, dy)
	bm.Suffix = bm.Suffix.Translate(dx, dy)
	bm.Text = bm.Text.Translate(dx, dy)
	return bm
}

// Nested reports whether margin ⊇ border ⊇ padding ⊇ content.
func (bm BoxModel) Nested() bool {
	return bm.Margin.ContainsRect(bm.Border) &&
		bm.Border.ContainsRect(bm.Padding) &&
		bm.Padding.ContainsRect(bm.Content)
}

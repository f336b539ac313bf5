package layout

import (
	"math"

	"weft/pkg/boxmodel"
	"weft/pkg/geom"
	"weft/pkg/style"
)

// axis maps main/cross coordinates of a flow onto x/y.
type axis struct{ horizontal bool }

func axisOf(k Kind) axis { return axis{horizontal: k == FlowHorizontal} }

func (a axis) main(s geom.Size) float64 {
	if a.horizontal {
		return s.Width
	}
	return s.Height
}

func (a axis) cross(s geom.Size) float64 {
	if a.horizontal {
		return s.Height
	}
	return s.Width
}

func (a axis) size(main, cross float64) geom.Size {
	if a.horizontal {
		return geom.Size{Width: main, Height: cross}
	}
	return geom.Size{Width: cross, Height: main}
}

func (a axis) rect(mainPos, crossPos, mainLen, crossLen float64) geom.Rect {
	if a.horizontal {
		return geom.R(mainPos, crossPos, mainLen, crossLen)
	}
	return geom.R(crossPos, mainPos, crossLen, mainLen)
}

func (a axis) point(mainPos, crossPos float64) (float64, float64) {
	if a.horizontal {
		return mainPos, crossPos
	}
	return crossPos, mainPos
}

func (a axis) expandMain(s Sizing) bool {
	if a.horizontal {
		return s.has(ExpandX)
	}
	return s.has(ExpandY)
}

func (a axis) trailing(s Sizing) bool {
	if a.horizontal {
		return s.has(FromRight)
	}
	return s.has(FromBottom)
}

func (a axis) crossAlign(s Sizing, def style.Align) style.Align {
	if a.horizontal {
		return s.alignY(def)
	}
	return s.alignX(def)
}

func (a axis) definite(c *Container) (main, cross bool) {
	if a.horizontal {
		return c.DefiniteX, c.DefiniteY
	}
	return c.DefiniteY, c.DefiniteX
}

func (a axis) request(fillMain, fillCross bool, it *Item, content geom.Size, avail geom.Rect, base geom.Size) boxmodel.Request {
	req := boxmodel.Request{Avail: avail, Base: base, Content: content, Prefix: it.Prefix, Suffix: it.Suffix}
	if a.horizontal {
		req.FillX, req.FillY = fillMain, fillCross
	} else {
		req.FillX, req.FillY = fillCross, fillMain
	}
	return req
}

// flowAdd places item on the current line of flow container ci, breaking
// to a new line first when the container wraps and the item does not fit.
// Cross-axis alignment waits for the close.
func (c *Context) flowAdd(ci, ii int32) {
	a := c.arena
	cont := &a.Containers[ci]
	it := &a.Items[ii]
	st := &a.Styles[it.Style]
	ax := axisOf(cont.Kind)

	capMain := ax.main(cont.Avail)
	capCross := ax.cross(cont.Avail)
	if cont.line < 0 {
		cont.line = c.newLine(cont, Line{First: -1, Next: -1})
		cont.lineFrom = cont.line
	}
	content := c.natural(it)
	outer := ax.main(boxmodel.Outer(st, content, cont.Avail))
	if cont.Overflow == OverflowWrap && a.Lines[cont.line].Count > 0 && cont.cursor+cont.trail+outer > capMain {
		c.breakLine(cont)
	}
	ln := &a.Lines[cont.line]

	mainLen := outer
	expand := ax.expandMain(it.Sizing)
	if expand {
		mainLen = math.Max(outer, capMain-cont.cursor-cont.trail)
	}
	bm := boxmodel.Resolve(st, ax.request(expand, false, it, content,
		ax.rect(0, 0, mainLen, capCross), cont.Avail))
	outer = ax.main(bm.Margin.Size())

	var pos float64
	if ax.trailing(it.Sizing) {
		cont.trail += outer
		pos = capMain - cont.trail
		ln.Trail = cont.trail
		cont.trail += cont.Spacing
	} else {
		pos = cont.cursor
		cont.cursor += outer
		ln.Lead = cont.cursor
		cont.cursor += cont.Spacing
	}
	dx, dy := ax.point(pos, ln.CrossPos)
	it.Box = bm.Translate(dx, dy)
	ln.Thick = math.Max(ln.Thick, ax.cross(bm.Margin.Size()))
	if ln.Count == 0 {
		ln.First = ii
	}
	it.Row = int32(lineIndex(a, cont, cont.line))
	it.Col = ln.Count
	ln.Count++
}

func lineIndex(a *FrameArena, cont *Container, target int32) int {
	n := 0
	for l := cont.lineFrom; l >= 0 && l != target; l = a.Lines[l].Next {
		n++
	}
	return n
}

func (c *Context) breakLine(cont *Container) {
	a := c.arena
	prev := &a.Lines[cont.line]
	next := c.newLine(cont, Line{First: -1, Next: -1, CrossPos: prev.CrossPos + prev.Thick + cont.Spacing})
	a.Lines[cont.line].Next = next
	cont.line = next
	cont.cursor = 0
	cont.trail = 0
}

// newLine takes a line record freed by cont's last reflow, or a new one.
func (c *Context) newLine(cont *Container, ln Line) int32 {
	a := c.arena
	if l := cont.reuse; l >= 0 {
		cont.reuse = a.Lines[l].Next
		a.Lines[l] = ln
		return l
	}
	return a.addLine(ln)
}

// natural is the content size it asks its owner for before any fill. A
// container slot that fills an axis reports its used size there, not the
// capacity it was opened with.
func (c *Context) natural(it *Item) geom.Size {
	s := it.Content
	if it.Container < 0 {
		return s
	}
	a := c.arena
	st := &a.Styles[it.Style]
	n := a.Containers[it.Container].Natural
	if it.Sizing.has(ExpandX) || st.Width.Unit == style.UnitFill {
		s.Width = n.Width
	}
	if it.Sizing.has(ExpandY) || st.Height.Unit == style.UnitFill {
		s.Height = n.Height
	}
	return s
}

func (ln *Line) used(spacing float64) float64 {
	u := ln.Lead + ln.Trail
	if ln.Lead > 0 && ln.Trail > 0 {
		u += spacing
	}
	return u
}

// finishFlow aligns every line of a closing flow container and computes its
// extent. Items larger than the container keep their start position.
func (c *Context) finishFlow(ci int32) {
	a := c.arena
	cont := &a.Containers[ci]
	ax := axisOf(cont.Kind)
	defMain, defCross := ax.definite(cont)
	if cont.Kind == Scroll {
		defMain = false
	}
	capMain := ax.main(cont.Avail)
	capCross := ax.cross(cont.Avail)

	if cont.line < 0 {
		cont.Natural = geom.Size{}
		cont.Extent = ax.size(0, 0)
		if defMain {
			cont.Extent = ax.size(capMain, ax.cross(cont.Extent))
		}
		if defCross {
			cont.Extent = ax.size(ax.main(cont.Extent), capCross)
		}
		return
	}

	var maxUsed, crossTotal float64
	nlines := 0
	for l := cont.lineFrom; l >= 0; l = a.Lines[l].Next {
		ln := &a.Lines[l]
		maxUsed = math.Max(maxUsed, ln.used(cont.Spacing))
		crossTotal = ln.CrossPos + ln.Thick
		nlines++
	}
	extMain := maxUsed
	if defMain {
		extMain = capMain
	}
	extCross := crossTotal
	if defCross {
		extCross = capCross
	}
	trailShift := extMain - capMain

	for l := cont.lineFrom; l >= 0; l = a.Lines[l].Next {
		ln := &a.Lines[l]
		thick := ln.Thick
		if nlines == 1 && defCross {
			thick = capCross
		}
		leftover := math.Max(extMain-ln.used(cont.Spacing), 0)

		var leading int
		for i, it := int32(0), ln.First; i < ln.Count; i, it = i+1, a.Items[it].Next {
			if !ax.trailing(a.Items[it].Sizing) {
				leading++
			}
		}

		k := 0
		for i, ii := int32(0), ln.First; i < ln.Count; i, ii = i+1, a.Items[ii].Next {
			it := &a.Items[ii]
			var shift float64
			if ax.trailing(it.Sizing) {
				shift = trailShift
			} else {
				switch cont.Align {
				case style.AlignCenter:
					shift = leftover / 2
				case style.AlignEnd:
					shift = leftover
				case style.AlignStretch:
					if leading > 1 {
						shift = float64(k) * leftover / float64(leading-1)
					}
				}
				k++
			}
			dx, dy := ax.point(shift, 0)
			it.Box = it.Box.Translate(dx, dy)
			c.alignCross(cont, ax, it, ln.CrossPos, thick)
			if it.Container >= 0 {
				c.reflow(it.Container, it.Box.Content.Size())
			}
		}
	}
	cont.Natural = ax.size(maxUsed, crossTotal)
	cont.Extent = ax.size(extMain, extCross)
}

// alignCross positions it inside the line's cross band.
func (c *Context) alignCross(cont *Container, ax axis, it *Item, crossPos, thick float64) {
	st := &c.arena.Styles[it.Style]
	size := ax.cross(it.Box.Margin.Size())
	var off float64
	switch ax.crossAlign(it.Sizing, cont.Cross) {
	case style.AlignCenter:
		off = (thick - size) / 2
	case style.AlignEnd:
		off = thick - size
	case style.AlignStretch:
		m := it.Box.Margin
		mainPos, mainLen := m.X, m.Width
		if !ax.horizontal {
			mainPos, mainLen = m.Y, m.Height
		}
		it.Box = boxmodel.Resolve(st, ax.request(true, true, it, it.Content,
			ax.rect(mainPos, crossPos, mainLen, thick), cont.Avail))
		return
	}
	off = math.Max(off, 0)
	dx, dy := ax.point(0, off)
	it.Box = it.Box.Translate(dx, dy)
}

// finishScroll lays the content out as a vertical flow, then clips the
// extent to the viewport and clamps the offset to the scrollable range.
func (c *Context) finishScroll(ci int32) {
	c.finishFlow(ci)
	cont := &c.arena.Containers[ci]
	cont.ContentSize = cont.Extent
	view := cont.Extent
	if cont.DefiniteX {
		view.Width = cont.Avail.Width
	}
	view.Height = math.Min(cont.Extent.Height, cont.Avail.Height)
	if cont.DefiniteY {
		view.Height = cont.Avail.Height
	}
	cont.Extent = view
	cont.Natural = geom.Size{
		Width:  cont.ContentSize.Width,
		Height: math.Min(cont.ContentSize.Height, cont.Avail.Height),
	}
	cont.ScrollOffset.X = clampScroll(cont.ScrollOffset.X, cont.ContentSize.Width-view.Width)
	cont.ScrollOffset.Y = clampScroll(cont.ScrollOffset.Y, cont.ContentSize.Height-view.Height)
}

func clampScroll(v, max float64) float64 {
	if max < 0 {
		max = 0
	}
	return math.Min(math.Max(v, 0), max)
}

// reflow lays container ci out again once its owner has settled the slot's
// content box at size, which is then definite on both axes. Container
// children reflow in turn as their own boxes settle.
func (c *Context) reflow(ci int32, size geom.Size) {
	a := c.arena
	cont := &a.Containers[ci]
	if cont.slotContent() == size || (cont.solverManaged() && cont.SolverRoot != ci) {
		return
	}
	cont.Avail = size
	cont.DefiniteX, cont.DefiniteY = true, true
	switch {
	case cont.solverManaged():
		slot := &a.Items[cont.Slot]
		c.solver.SetNode(cont.Node, containerNode(cont, nil, &a.Styles[cont.Style], slot.Sizing))
		c.runSolver(ci)
	case cont.Kind == Grid:
		c.finishGrid(ci)
	default:
		cont.reuse = cont.lineFrom
		cont.line, cont.lineFrom = -1, -1
		cont.cursor, cont.trail = 0, 0
		for ii := cont.First; ii >= 0; ii = a.Items[ii].Next {
			c.flowAdd(ci, ii)
		}
		if cont.Kind == Scroll {
			c.finishScroll(ci)
		} else {
			c.finishFlow(ci)
		}
	}
}

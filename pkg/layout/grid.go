package layout

import (
	"math"

	"weft/pkg/boxmodel"
	"weft/pkg/geom"
	"weft/pkg/style"
)

// placeCell gives a new child of grid gi its cell, either the pending
// explicit one or the next free cell in population order.
func (c *Context) placeCell(gi, ii int32) {
	a := c.arena
	g := &a.Containers[gi]
	cell := Cell{Item: ii, RowSpan: 1, ColSpan: 1}
	if g.hasPending {
		cell = g.pending
		cell.Item = ii
		g.hasPending = false
	} else {
		cell.Row, cell.Col = c.nextFree(g)
	}
	idx := a.addCell(cell)
	it := &a.Items[ii]
	it.Cell = idx
	it.Row, it.Col = cell.Row, cell.Col
}

// nextFree advances g's auto-placement cursor to the first cell no sibling
// covers.
func (c *Context) nextFree(g *Container) (int32, int32) {
	spec := g.Grid
	if spec.ColumnMajor {
		assert(spec.Rows > 0, "column-major grid %d needs Rows", g.ID)
	} else {
		assert(spec.Cols > 0, "row-major grid %d needs Cols", g.ID)
	}
	for {
		r, col := g.nextRow, g.nextCol
		if spec.ColumnMajor {
			g.nextRow++
			if int(g.nextRow) >= spec.Rows {
				g.nextRow = 0
				g.nextCol++
			}
			if spec.Cols > 0 {
				assert(int(col) < spec.Cols, "grid %d is full", g.ID)
			}
		} else {
			g.nextCol++
			if int(g.nextCol) >= spec.Cols {
				g.nextCol = 0
				g.nextRow++
			}
			if spec.Rows > 0 {
				assert(int(r) < spec.Rows, "grid %d is full", g.ID)
			}
		}
		if !c.occupied(g, r, col) {
			return r, col
		}
	}
}

func (c *Context) occupied(g *Container, row, col int32) bool {
	a := c.arena
	for it := g.First; it >= 0; it = a.Items[it].Next {
		ci := a.Items[it].Cell
		if ci < 0 {
			continue
		}
		cell := &a.Cells[ci]
		if row >= cell.Row && row < cell.Row+cell.RowSpan && col >= cell.Col && col < cell.Col+cell.ColSpan {
			return true
		}
	}
	return false
}

// track is one grid axis being sized.
type track struct {
	sizes []float64
	fixed []bool
}

// span returns the extent of tracks [from, from+n) including inner gaps.
func (t track) span(from, n int32, gap float64) float64 {
	var s float64
	for k := from; k < from+n; k++ {
		s += t.sizes[k]
	}
	return s + float64(n-1)*gap
}

// offset returns the start of track i.
func (t track) offset(i int32, gap float64) float64 {
	x := gap
	for k := int32(0); k < i; k++ {
		x += t.sizes[k] + gap
	}
	return x
}

func (t track) extent(gap float64) float64 {
	if len(t.sizes) == 0 {
		return 0
	}
	var s float64
	for _, v := range t.sizes {
		s += v
	}
	return s + float64(len(t.sizes)-1)*gap + 2*gap
}

// sizeTracks sizes n tracks. Explicit sizes win; a definite axis divides
// what is left equally; otherwise tracks grow to the largest single-span
// item and spanning items grow the last track they cover.
func sizeTracks(n int, explicit []float64, definite bool, avail, gap float64, spans func(visit func(start, span int32, outer float64))) track {
	t := track{sizes: make([]float64, n), fixed: make([]bool, n)}
	free := avail - 2*gap - float64(n-1)*gap
	open := 0
	for i := 0; i < n; i++ {
		if i < len(explicit) {
			t.sizes[i] = explicit[i]
			t.fixed[i] = true
			free -= explicit[i]
		} else {
			open++
		}
	}
	if open == 0 {
		return t
	}
	if definite {
		each := math.Max(free/float64(open), 0)
		for i := range t.sizes {
			if !t.fixed[i] {
				t.sizes[i] = each
			}
		}
		return t
	}
	spans(func(start, span int32, outer float64) {
		if span == 1 && !t.fixed[start] {
			t.sizes[start] = math.Max(t.sizes[start], outer)
		}
	})
	spans(func(start, span int32, outer float64) {
		if span < 2 {
			return
		}
		last := start + span - 1
		if have := t.span(start, span, gap); outer > have && !t.fixed[last] {
			t.sizes[last] += outer - have
		}
	})
	return t
}

// finishGrid sizes the tracks of a closing grid, places every child in its
// cell and computes the grid's extent.
func (c *Context) finishGrid(gi int32) {
	a := c.arena
	g := &a.Containers[gi]
	spec := g.Grid
	gap := g.Spacing

	rows, cols := int32(spec.Rows), int32(spec.Cols)
	for it := g.First; it >= 0; it = a.Items[it].Next {
		cell := &a.Cells[a.Items[it].Cell]
		rows = max(rows, cell.Row+cell.RowSpan)
		cols = max(cols, cell.Col+cell.ColSpan)
	}

	outer := func(it *Item) geom.Size { return boxmodel.Outer(&a.Styles[it.Style], c.natural(it), g.Avail) }
	colSpans := func(visit func(int32, int32, float64)) {
		for it := g.First; it >= 0; it = a.Items[it].Next {
			cell := &a.Cells[a.Items[it].Cell]
			visit(cell.Col, cell.ColSpan, outer(&a.Items[it]).Width)
		}
	}
	rowSpans := func(visit func(int32, int32, float64)) {
		for it := g.First; it >= 0; it = a.Items[it].Next {
			cell := &a.Cells[a.Items[it].Cell]
			visit(cell.Row, cell.RowSpan, outer(&a.Items[it]).Height)
		}
	}
	colT := sizeTracks(int(cols), spec.ColSizes, g.DefiniteX, g.Avail.Width, gap, colSpans)
	rowT := sizeTracks(int(rows), spec.RowSizes, g.DefiniteY, g.Avail.Height, gap, rowSpans)

	ext := geom.Size{Width: colT.extent(gap), Height: rowT.extent(gap)}
	g.Natural = ext
	if g.DefiniteX {
		g.Natural.Width = sizeTracks(int(cols), spec.ColSizes, false, g.Avail.Width, gap, colSpans).extent(gap)
	}
	if g.DefiniteY {
		g.Natural.Height = sizeTracks(int(rows), spec.RowSizes, false, g.Avail.Height, gap, rowSpans).extent(gap)
	}
	var ox, oy float64
	if g.DefiniteX {
		ox = alignOffset(g.Align, g.Avail.Width-ext.Width)
		ext.Width = g.Avail.Width
	}
	if g.DefiniteY {
		oy = alignOffset(g.Cross, g.Avail.Height-ext.Height)
		ext.Height = g.Avail.Height
	}

	for ii := g.First; ii >= 0; ii = a.Items[ii].Next {
		it := &a.Items[ii]
		cell := &a.Cells[it.Cell]
		cell.Rect = geom.R(
			ox+colT.offset(cell.Col, gap), oy+rowT.offset(cell.Row, gap),
			colT.span(cell.Col, cell.ColSpan, gap), rowT.span(cell.Row, cell.RowSpan, gap),
		)
		ax, ay := it.Sizing.alignX(style.AlignStart), it.Sizing.alignY(style.AlignStart)
		req := boxmodel.Request{
			Avail:   cell.Rect,
			Base:    g.Avail,
			Content: c.natural(it),
			FillX:   ax == style.AlignStretch,
			FillY:   ay == style.AlignStretch,
			Prefix:  it.Prefix,
			Suffix:  it.Suffix,
		}
		if ax == style.AlignEnd {
			req.AnchorX = boxmodel.Trailing
		}
		if ay == style.AlignEnd {
			req.AnchorY = boxmodel.Trailing
		}
		bm := boxmodel.Resolve(&a.Styles[it.Style], req)
		var dx, dy float64
		if ax == style.AlignCenter {
			dx = math.Max((cell.Rect.Width-bm.Margin.Width)/2, 0)
		}
		if ay == style.AlignCenter {
			dy = math.Max((cell.Rect.Height-bm.Margin.Height)/2, 0)
		}
		it.Box = bm.Translate(dx, dy)
		if it.Container >= 0 {
			c.reflow(it.Container, it.Box.Content.Size())
		}
	}
	g.Extent = ext
}

// declaredTrack sizes one axis of g from its declaration alone. It fails
// when some track would depend on the children.
func declaredTrack(n int, explicit []float64, definite bool, avail, gap float64) (track, bool) {
	if n == 0 || (!definite && len(explicit) < n) {
		return track{}, false
	}
	return sizeTracks(n, explicit, definite, avail, gap, nil), true
}

// cellAvail is the space a container opened in cell may size against. Axes
// whose tracks are not known yet get the whole grid's capacity; the slot
// is laid out again when the grid closes.
func (c *Context) cellAvail(g *Container, cell *Cell) geom.Size {
	avail := g.Avail
	gap := g.Spacing
	if t, ok := declaredTrack(g.Grid.Cols, g.Grid.ColSizes, g.DefiniteX, g.Avail.Width, gap); ok {
		avail.Width = t.span(cell.Col, cell.ColSpan, gap)
	}
	if t, ok := declaredTrack(g.Grid.Rows, g.Grid.RowSizes, g.DefiniteY, g.Avail.Height, gap); ok {
		avail.Height = t.span(cell.Row, cell.RowSpan, gap)
	}
	return avail
}

func alignOffset(a style.Align, free float64) float64 {
	if free <= 0 {
		return 0
	}
	switch a {
	case style.AlignCenter:
		return free / 2
	case style.AlignEnd:
		return free
	}
	return 0
}

package layout

import (
	"weft/pkg/boxmodel"
	"weft/pkg/geom"
)

// Frame is what a committed frame publishes: every identified item's final
// box model, scroll-adjusted, and what each widget's render entry point
// reported.
type Frame struct {
	Viewport geom.Rect
	Boxes    map[uint64]boxmodel.BoxModel
	Results  map[uint64]Result

	// Visible is each identified item's border box clipped to its scroll
	// viewports. Hit testing uses it.
	Visible map[uint64]geom.Rect
	Items    int

	// Arena is the frame's arena. It is only valid inside OnCommit.
	Arena *FrameArena
}

func newFrame() *Frame {
	return &Frame{
		Boxes:   make(map[uint64]boxmodel.BoxModel),
		Results: make(map[uint64]Result),
		Visible: make(map[uint64]geom.Rect),
	}
}

func (f *Frame) reset() {
	clear(f.Boxes)
	clear(f.Results)
	clear(f.Visible)
	f.Items = 0
	f.Arena = nil
}

// commit runs when the root closes: it converts every local box into frame
// space, replays the tape for geometry and rendering, and unwinds the
// frame.
func (c *Context) commit() {
	a := c.arena
	for k := range a.Containers {
		cont := &a.Containers[k]
		slot := a.Items[cont.Slot].Box
		if cont.Parent >= 0 {
			p := a.Containers[cont.Parent].Origin
			slot = slot.Translate(p.X, p.Y)
		}
		cont.Origin = slot.Content.Origin()
	}
	for i := range a.Items {
		it := &a.Items[i]
		if it.Owner < 0 {
			continue
		}
		o := a.Containers[it.Owner].Origin
		it.Box = it.Box.Translate(o.X, o.Y)
		if it.Cell >= 0 {
			cell := &a.Cells[it.Cell]
			cell.Rect = cell.Rect.Translate(o.X, o.Y)
		}
	}

	f := c.cur
	f.reset()
	f.Viewport = c.opts.Viewport
	rp := &Replayer{Arena: a, Provider: c.provider, Debug: c.opts.Debug}
	rp.Geometry(func(it *Item, box boxmodel.BoxModel, visible geom.Rect) {
		f.Items++
		if it.ID != 0 {
			f.Boxes[it.ID] = box
			f.Visible[it.ID] = visible
		}
	})
	rp.Render(c.target, c.buckets, c.input, func(id uint64, res Result) {
		if id != 0 {
			f.Results[id] = res
		}
	})
	if c.opts.OnCommit != nil {
		f.Arena = a
		c.opts.OnCommit(f)
		f.Arena = nil
	}
	c.prev, c.cur = f, c.prev
	c.unwind()
}

// unwind resets everything frame scoped. Stacks are already balanced back
// to the state they were in when the root opened.
func (c *Context) unwind() {
	c.arena.Reset()
	if c.solver != nil {
		c.solver.Reset()
	}
	c.stack = c.stack[:0]
	c.scrolls = c.scrolls[:0]
	c.regions = 0
}

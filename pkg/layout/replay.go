package layout

import (
	"math"

	"weft/pkg/boxmodel"
	"weft/pkg/draw"
	"weft/pkg/geom"
	"weft/pkg/style"
	"weft/pkg/tape"
)

// Replayer interprets a committed frame's tape. Geometry and Render can be
// run any number of times against the same arena and give the same result.
type Replayer struct {
	Arena    *FrameArena
	Provider style.Provider
	Debug    bool
}

// Geometry visits every widget and container slot in declaration order with
// its scroll-adjusted frame-space box and the part of its border box its
// scroll viewports leave visible.
func (rp *Replayer) Geometry(visit func(it *Item, box boxmodel.BoxModel, visible geom.Rect)) {
	a := rp.Arena
	offs := make([]geom.Point, 1, 8)
	emit := func(it *Item) {
		off := offs[len(offs)-1]
		box := it.Box.Translate(-off.X, -off.Y)
		visible := box.Border
		if view, ok := a.viewport(it.Scroll); ok {
			visible = visible.Intersect(view)
		}
		visit(it, box, visible)
	}
	for _, op := range a.Tape.Ops() {
		switch op.Kind {
		case tape.OpAddWidget:
			emit(&a.Items[op.Ref])
		case tape.OpAddLayout:
			emit(&a.Items[a.Containers[op.Ref].Slot])
		case tape.OpPushScrollRegion:
			off := offs[len(offs)-1]
			s := a.Containers[op.Ref].ScrollOffset
			offs = append(offs, geom.Point{X: off.X + s.X, Y: off.Y + s.Y})
		case tape.OpPopScrollRegion:
			assert(len(offs) > 1, "PopScrollRegion without PushScrollRegion")
			offs = offs[:len(offs)-1]
		}
	}
}

// paint is one open region or scroll region during the render replay.
type paint struct {
	cont  int32
	st    style.Style
	box   boxmodel.BoxModel
	clip  bool
	depth int
}

// renderState is the render replay's working set. Its stacks start from the
// arena's base snapshot.
type renderState struct {
	rp      *Replayer
	b       *draw.Buckets
	styles  []style.Entry
	texts   []style.TextType
	ignore  int
	offs    []geom.Point
	open    []paint
	depth   int
	clipped []bool // per open container: pushed a clip at AddLayout
}

func (s *renderState) snapshot() style.Snapshot {
	return style.Snapshot{Entries: s.styles, TextType: s.texts[len(s.texts)-1], Ignored: s.ignore > 0}
}

func (s *renderState) off() geom.Point { return s.offs[len(s.offs)-1] }

// Render replays the tape into b, calling each widget's render entry point
// with the cascaded style rebuilt from the replayed stack, then flushes b to
// target in depth order.
func (rp *Replayer) Render(target draw.Renderer, b *draw.Buckets, in Input, results func(id uint64, res Result)) {
	a := rp.Arena
	base := a.Base
	s := &renderState{
		rp:     rp,
		b:      b,
		styles: append(make([]style.Entry, 0, len(base.Entries)+16), base.Entries...),
		texts:  append(make([]style.TextType, 0, 8), base.TextType),
		offs:   make([]geom.Point, 1, 8),
	}
	if base.Ignored {
		s.ignore = 1
	}
	baseStyles, baseIgnore := len(s.styles), s.ignore

	for _, op := range a.Tape.Ops() {
		switch op.Kind {
		case tape.OpPushStyle:
			s.styles = append(s.styles, style.Entry{Style: &a.Styles[op.Entry], State: op.State})
		case tape.OpPopStyle:
			assert(len(s.styles) > baseStyles, "PopStyle underflows the style stack")
			s.styles = s.styles[:len(s.styles)-1]
		case tape.OpPushTextType:
			s.texts = append(s.texts, op.Text)
		case tape.OpPopTextType:
			assert(len(s.texts) > 1, "PopTextType underflows the text stack")
			s.texts = s.texts[:len(s.texts)-1]
		case tape.OpIgnoreStyleStack:
			s.ignore++
		case tape.OpRestoreStyleStack:
			assert(s.ignore > baseIgnore, "RestoreStyleStack without IgnoreStyleStack")
			s.ignore--

		case tape.OpAddWidget:
			res := s.widget(op.Ref, in)
			if results != nil {
				results(a.Items[op.Ref].ID, res)
			}
		case tape.OpAddLayout:
			s.addLayout(op.Ref)
		case tape.OpEndLayout:
			s.endLayout(op.Ref)
		case tape.OpPushRegion:
			s.pushRegion(op.Ref)
		case tape.OpPopRegion:
			s.popRegion()
		case tape.OpPushScrollRegion:
			s.pushScroll(op.Ref)
		case tape.OpPopScrollRegion:
			s.popScroll()
		}
	}
	assert(len(s.styles) == baseStyles, "tape leaves %d styles pushed", len(s.styles)-baseStyles)
	assert(len(s.texts) == 1, "tape leaves text types pushed")
	assert(s.ignore == baseIgnore, "tape leaves the style stack ignored")
	assert(len(s.open) == 0 && len(s.offs) == 1, "tape leaves regions open")
	b.Flush(target)
}

func (s *renderState) widget(ref int32, in Input) Result {
	a := s.rp.Arena
	it := &a.Items[ref]
	snap := s.snapshot()
	if s.rp.Debug {
		assert(snap.Equal(it.snap), "widget %d replayed with a different style snapshot", it.ID)
	}
	if it.Render == nil {
		return Result{}
	}
	st := s.rp.Provider.Style(style.Target{ID: it.ID, Kind: it.Kind}, snap, it.State)
	off := s.off()
	if view, ok := a.viewport(it.Scroll); ok && !view.Contains(in.Mouse.X, in.Mouse.Y) {
		in = offscreen(in)
	}
	return it.Render(it.ID, it.Data, &st, it.Box.Translate(-off.X, -off.Y), s.b.Depth(s.depth), in)
}

// offscreen is in as seen by a widget the pointer cannot reach.
func offscreen(in Input) Input {
	in.Mouse = geom.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	in.Down, in.Released = false, false
	return in
}

func (s *renderState) slotBox(ci int32) boxmodel.BoxModel {
	a := s.rp.Arena
	off := s.off()
	return a.Items[a.Containers[ci].Slot].Box.Translate(-off.X, -off.Y)
}

func (s *renderState) addLayout(ci int32) {
	cont := &s.rp.Arena.Containers[ci]
	clip := cont.Overflow == OverflowClip && cont.Kind != Scroll && !cont.Region
	if clip {
		s.b.PushClip(s.slotBox(ci).Padding)
	}
	s.clipped = append(s.clipped, clip)
}

func (s *renderState) endLayout(ci int32) {
	cont := &s.rp.Arena.Containers[ci]
	if !cont.Region && cont.Kind != Scroll {
		s.deferred(ci)
	}
	assert(len(s.clipped) > 0, "EndLayout without AddLayout")
	if s.clipped[len(s.clipped)-1] {
		s.b.PopClip()
	}
	s.clipped = s.clipped[:len(s.clipped)-1]
}

// deferred replays container ci's recorded drawing at its final origin.
func (s *renderState) deferred(ci int32) {
	a := s.rp.Arena
	cont := &a.Containers[ci]
	if cont.Queue < 0 {
		return
	}
	off := s.off()
	a.Queue(cont.Queue).Replay(s.b.Depth(s.depth), cont.Origin.X-off.X, cont.Origin.Y-off.Y)
}

// pushRegion paints the region's background into a new depth bucket so it
// covers everything painted outside the region before it.
func (s *renderState) pushRegion(ci int32) {
	a := s.rp.Arena
	cont := &a.Containers[ci]
	box := s.slotBox(ci)
	st := s.rp.Provider.Style(style.Target{ID: cont.ID, Kind: "region"}, s.snapshot(), 0)
	s.depth++
	layer := s.b.Depth(s.depth)
	if st.Background.A > 0 {
		if st.Radius > 0 {
			layer.RoundedRect(box.Border, st.Radius, st.Background)
		} else {
			layer.Rect(box.Border, st.Background)
		}
	}
	p := paint{cont: ci, st: st, box: box, depth: s.depth}
	if st.Clip || cont.Overflow == OverflowClip {
		s.b.PushClip(box.Padding)
		p.clip = true
	}
	s.open = append(s.open, p)
}

func (s *renderState) popRegion() {
	assert(len(s.open) > 0, "PopRegion without PushRegion")
	p := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	if s.rp.Arena.Containers[p.cont].Kind != Scroll {
		s.deferred(p.cont)
	}
	if p.clip {
		s.b.PopClip()
	}
	if p.st.BorderColor.A > 0 {
		draw.Border(s.b.Depth(p.depth), p.box.Border, p.box.Padding, p.st.Border, p.st.BorderColor)
	}
	s.depth--
}

func (s *renderState) pushScroll(ci int32) {
	a := s.rp.Arena
	cont := &a.Containers[ci]
	box := s.slotBox(ci)
	s.b.PushClip(box.Padding)
	s.open = append(s.open, paint{cont: ci, box: box, clip: true, depth: s.depth})
	off := s.off()
	s.offs = append(s.offs, geom.Point{X: off.X + cont.ScrollOffset.X, Y: off.Y + cont.ScrollOffset.Y})
}

func (s *renderState) popScroll() {
	assert(len(s.open) > 0 && len(s.offs) > 1, "PopScrollRegion without PushScrollRegion")
	p := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	s.deferred(p.cont)
	s.offs = s.offs[:len(s.offs)-1]
	s.b.PopClip()
}

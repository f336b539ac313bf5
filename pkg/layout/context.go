// Package layout is the frame engine: declaration code opens containers and
// declares widgets through a Context, each container's algorithm sizes its
// children when it closes, and once the outermost container closes the
// recorded operation tape is replayed against the final geometry.
package layout

import (
	"math"

	"weft/pkg/boxmodel"
	"weft/pkg/draw"
	"weft/pkg/geom"
	"weft/pkg/style"
	"weft/pkg/tape"
	"weft/pkg/text"
)

// Options configures a Context.
type Options struct {
	Capacity Capacity
	Viewport geom.Rect
	Provider style.Provider
	Measurer text.Measurer

	// Solver lays out flow containers when set; grids and scroll
	// containers always use the native algorithms.
	Solver Solver

	// Debug keeps every widget's declaration snapshot and checks it against
	// the replayed one. Each container's stretch of the tape is also
	// checked for balance when it closes.
	Debug bool

	// OnCommit runs after both replays and before the arena is reset.
	OnCommit func(f *Frame)
}

// Layout describes a container to open.
type Layout struct {
	ID       uint64
	Kind     Kind
	Sizing   Sizing
	Align    style.Align // main axis for flows, horizontal for grids
	Cross    style.Align
	Overflow Overflow
	Spacing  float64
	Grid     GridSpec
	Region   bool       // paint the container's own background and border
	Offset   geom.Point // scroll offset of a Scroll container
}

// WidgetDecl describes a widget to declare.
type WidgetDecl struct {
	ID     uint64
	Kind   string
	Sizing Sizing
	State  style.State

	// Content is the requested content size. When Measure is set it is
	// called with the cascaded style instead.
	Content geom.Size
	Measure func(st *style.Style) geom.Size

	Prefix, Suffix float64

	Data   any
	Render RenderFunc
}

// Context is the per-frame declaration API. It is not safe for concurrent
// use.
type Context struct {
	opts     Options
	arena    *FrameArena
	provider style.Provider
	measurer text.Measurer
	solver   Solver
	target   draw.Renderer
	buckets  *draw.Buckets

	stack   []int32
	styles  []style.Entry
	texts   []style.TextType
	ignore  int
	regions int
	scrolls []int32

	// outer holds styles pushed between frames. They become the next root's
	// base snapshot.
	outer []style.Style

	input     Input
	prev, cur *Frame
}

// New returns a Context ready for the first frame.
func New(opts Options) *Context {
	c := &Context{
		opts:     opts,
		arena:    NewFrameArena(opts.Capacity),
		provider: opts.Provider,
		measurer: opts.Measurer,
		solver:   opts.Solver,
		target:   draw.Discard,
		outer:    make([]style.Style, 0, 64),
		prev:     newFrame(),
		cur:      newFrame(),
	}
	if c.provider == nil {
		c.provider = style.NewCascade()
	}
	if c.measurer == nil {
		c.measurer = text.NewFaceMeasurer(text.FontConfig{})
	}
	capy := c.arena.Capacity()
	c.buckets = draw.NewBuckets(capy.QueueBlockSize, capy.QueueMaxBlocks)
	return c
}

// Arena exposes the frame arena, mainly for inspection in hooks and tests.
func (c *Context) Arena() *FrameArena { return c.arena }

// Measurer returns the text measurer widgets size themselves with.
func (c *Context) Measurer() text.Measurer { return c.measurer }

// SetRenderer sets the target of the render replay.
func (c *Context) SetRenderer(r draw.Renderer) {
	if r == nil {
		r = draw.Discard
	}
	c.target = r
}

// SetViewport changes the root's available rectangle for the next frame.
func (c *Context) SetViewport(r geom.Rect) { c.opts.Viewport = r }

// SetInput sets the pointer and focus state for the frame being declared.
func (c *Context) SetInput(in Input) { c.input = in }

// Input returns the pointer and focus state for the frame being declared.
func (c *Context) Input() Input { return c.input }

// Frame returns the last committed frame.
func (c *Context) Frame() *Frame { return c.prev }

// Depth returns the number of open containers.
func (c *Context) Depth() int { return len(c.stack) }

// StateOf derives a widget's interaction state from the previous frame's
// published geometry and the current input. Only the part of a widget
// inside its scroll viewports can be hovered.
func (c *Context) StateOf(id uint64) style.State {
	var s style.State
	if r, ok := c.prev.Visible[id]; ok && r.Contains(c.input.Mouse.X, c.input.Mouse.Y) {
		s |= style.StateHover
		if c.input.Down {
			s |= style.StateActive
		}
	}
	if c.input.Focus != 0 && c.input.Focus == id {
		s |= style.StateFocus
	}
	return s
}

// Clicked reports whether the pointer was released over the visible part
// of id this frame.
func (c *Context) Clicked(id uint64) bool {
	r, ok := c.prev.Visible[id]
	return ok && c.input.Released && r.Contains(c.input.Mouse.X, c.input.Mouse.Y)
}

// Snapshot returns the style context a widget declared now would see.
// The entries alias the live stack.
func (c *Context) Snapshot() style.Snapshot {
	snap := style.Snapshot{Entries: c.styles, Ignored: c.ignore > 0}
	if n := len(c.texts); n > 0 {
		snap.TextType = c.texts[n-1]
	}
	return snap
}

// Resolve returns the cascaded style a widget with the given id, kind and
// state would be sized with.
func (c *Context) Resolve(id uint64, kind string, state style.State) style.Style {
	return c.provider.Style(style.Target{ID: id, Kind: kind}, c.Snapshot(), state)
}

// MeasureText measures s in the font of st.
func (c *Context) MeasureText(s string, st *style.Style, wrap float64) geom.Size {
	w, h := c.measurer.MeasureText(s, FontOf(st), wrap)
	return geom.Size{Width: w, Height: h}
}

// FontOf returns the renderer font named by a style record.
func FontOf(st *style.Style) draw.Font {
	return draw.Font{Name: st.Font, Size: st.FontSize, Bold: st.Bold}
}

// PushStyle pushes st for widgets in state (0 for any state).
func (c *Context) PushStyle(st style.Style, state style.State) {
	if !c.open() {
		assert(len(c.outer) < cap(c.outer), "too many styles pushed outside a frame")
		c.outer = append(c.outer, st)
		c.styles = append(c.styles, style.Entry{Style: &c.outer[len(c.outer)-1], State: state})
		return
	}
	idx := c.arena.addStyle(st)
	c.styles = append(c.styles, style.Entry{Style: &c.arena.Styles[idx], State: state})
	c.arena.record(tape.PushStyle(int(idx), state))
}

// PopStyle pops the innermost style.
func (c *Context) PopStyle() {
	assert(len(c.styles) > c.floorStyles(), "PopStyle without matching PushStyle")
	c.styles = c.styles[:len(c.styles)-1]
	if !c.open() {
		c.outer = c.outer[:len(c.outer)-1]
		return
	}
	c.arena.record(tape.PopStyle())
}

// PushTextType sets the typographic role for text declared until the
// matching PopTextType.
func (c *Context) PushTextType(t style.TextType) {
	c.texts = append(c.texts, t)
	if c.open() {
		c.arena.record(tape.PushText(t))
	}
}

// PopTextType restores the previous text type.
func (c *Context) PopTextType() {
	assert(len(c.texts) > c.floorTexts(), "PopTextType without matching PushTextType")
	c.texts = c.texts[:len(c.texts)-1]
	if c.open() {
		c.arena.record(tape.PopText())
	}
}

// IgnoreStyles makes widgets use the provider's base style until
// RestoreStyles.
func (c *Context) IgnoreStyles() {
	c.ignore++
	if c.open() {
		c.arena.record(tape.IgnoreStyles())
	}
}

// RestoreStyles undoes IgnoreStyles.
func (c *Context) RestoreStyles() {
	assert(c.ignore > c.floorIgnore(), "RestoreStyles without matching IgnoreStyles")
	c.ignore--
	if c.open() {
		c.arena.record(tape.RestoreStyles())
	}
}

func (c *Context) open() bool { return len(c.stack) > 0 }

func (c *Context) top() *Container {
	assert(c.open(), "no open container")
	return &c.arena.Containers[c.stack[len(c.stack)-1]]
}

// floor* return the depth a pop may not go below: the depth at which the
// innermost open container was opened.
func (c *Context) floorStyles() int {
	if !c.open() {
		return 0
	}
	return int(c.top().StyleDepth)
}

func (c *Context) floorTexts() int {
	if !c.open() {
		return 0
	}
	return int(c.top().TextDepth)
}

func (c *Context) floorIgnore() int {
	if !c.open() {
		return 0
	}
	return int(c.top().IgnoreDepth)
}

func (c *Context) scroll() int32 {
	if n := len(c.scrolls); n > 0 {
		return c.scrolls[n-1]
	}
	return -1
}

// Begin opens a container and returns its index. The first Begin of a
// frame opens the root.
func (c *Context) Begin(l Layout) int {
	a := c.arena
	root := !c.open()
	if root {
		assert(a.Empty(), "frame arena not reset")
		a.Base = c.Snapshot().Clone()
	}

	kind := l.Kind.String()
	if l.Region {
		kind = "region"
	}
	st := c.provider.Style(style.Target{ID: l.ID, Kind: kind}, c.Snapshot(), 0)
	sidx := a.addStyle(st)
	ci := int32(len(a.Containers))

	parent := int32(-1)
	if !root {
		parent = c.stack[len(c.stack)-1]
	}

	slot := a.addItem(Item{
		Owner:     parent,
		Next:      -1,
		ID:        l.ID,
		Kind:      kind,
		Sizing:    l.Sizing,
		Style:     sidx,
		Cell:      -1,
		Node:      noNode,
		Scroll:    c.scroll(),
		Container: ci,
	})
	avail := c.opts.Viewport.Size()
	if !root {
		c.attach(parent, slot)
		avail = c.availFor(parent, slot)
	}

	cont := Container{
		Kind:        l.Kind,
		ID:          l.ID,
		Parent:      parent,
		Slot:        slot,
		Style:       sidx,
		Align:       l.Align,
		Cross:       l.Cross,
		Overflow:    l.Overflow,
		Spacing:     l.Spacing,
		Grid:        l.Grid,
		Region:      l.Region,
		First:       -1,
		Last:        -1,
		StyleDepth:  int32(len(c.styles)),
		TextDepth:   int32(len(c.texts)),
		IgnoreDepth: int32(c.ignore),
		RegionDepth: int32(c.regions),
		Node:        noNode,
		Inner:       noNode,
		SolverRoot:  -1,
		Queue:       -1,
		line:        -1,
		lineFrom:    -1,
		reuse:       -1,
	}
	if l.Kind == Scroll {
		cont.ScrollOffset = l.Offset
		cont.Overflow = OverflowClip
	}
	cont.Avail, cont.DefiniteX, cont.DefiniteY = capacity(&a.Styles[sidx], l.Sizing, avail)
	a.addContainer(cont)

	if c.solver != nil && (l.Kind == FlowHorizontal || l.Kind == FlowVertical) {
		c.openSolverNode(ci, parent, root)
	}

	cp := &a.Containers[ci]
	cp.TapeFrom = a.record(tape.AddLayout(int(ci)))
	if l.Region {
		a.record(tape.PushRegion(int(ci)))
		c.regions++
	}
	if l.Kind == Scroll {
		a.record(tape.PushScroll(int(ci)))
		c.scrolls = append(c.scrolls, ci)
	}
	c.stack = append(c.stack, ci)
	return int(ci)
}

// capacity returns the content capacity of a container whose slot may use
// avail, and which axes are definite.
func capacity(st *style.Style, sz Sizing, avail geom.Size) (geom.Size, bool, bool) {
	fillX := sz.has(ExpandX) || st.Width.Unit == style.UnitFill
	fillY := sz.has(ExpandY) || st.Height.Unit == style.UnitFill
	bm := boxmodel.Resolve(st, boxmodel.Request{
		Avail: geom.R(0, 0, avail.Width, avail.Height),
		FillX: fillX,
		FillY: fillY,
	})
	defX := fillX || st.Width.Unit == style.UnitFixed || st.Width.Unit == style.UnitPercent
	defY := fillY || st.Height.Unit == style.UnitFixed || st.Height.Unit == style.UnitPercent

	edges := st.BoxEdges().NonNegative()
	out := geom.Size{
		Width:  math.Max(avail.Width-edges.Horizontal(), 0),
		Height: math.Max(avail.Height-edges.Vertical(), 0),
	}
	if defX {
		out.Width = bm.Content.Width
	}
	if defY {
		out.Height = bm.Content.Height
	}
	return out, defX, defY
}

// availFor returns the space item, a new container slot in parent, may
// size against.
func (c *Context) availFor(parent, item int32) geom.Size {
	a := c.arena
	p := &a.Containers[parent]
	it := &a.Items[item]
	sz := it.Sizing
	avail := p.Avail
	switch p.Kind {
	case Grid:
		avail = c.cellAvail(p, &a.Cells[it.Cell])
	case FlowHorizontal:
		if sz.has(ExpandX) && !p.solverManaged() {
			avail.Width = math.Max(avail.Width-p.cursor-p.trail, 0)
		}
	case FlowVertical, Scroll:
		if sz.has(ExpandY) && !p.solverManaged() {
			avail.Height = math.Max(avail.Height-p.cursor-p.trail, 0)
		}
	}
	return avail
}

// attach links item as the next child of parent and classifies it for the
// parent's algorithm.
func (c *Context) attach(parent, item int32) {
	a := c.arena
	p := &a.Containers[parent]
	it := &a.Items[item]
	if p.First < 0 {
		p.First = item
	} else {
		a.Items[p.Last].Next = item
	}
	p.Last = item
	p.Children++

	switch {
	case p.Kind == Grid:
		c.placeCell(parent, item)
	case p.solverManaged():
		it.Node = c.solver.NewNode()
		c.solver.InsertChild(p.Inner, it.Node)
	}
}

// Widget declares a widget in the current container and returns its item
// index.
func (c *Context) Widget(d WidgetDecl) int {
	assert(c.open(), "widget %d declared outside any container", d.ID)
	a := c.arena
	parent := c.stack[len(c.stack)-1]

	snap := c.Snapshot()
	st := c.provider.Style(style.Target{ID: d.ID, Kind: d.Kind}, snap, d.State)
	content := d.Content
	if d.Measure != nil {
		content = d.Measure(&st)
	}
	it := Item{
		Owner:     parent,
		Next:      -1,
		ID:        d.ID,
		Kind:      d.Kind,
		Sizing:    d.Sizing,
		Content:   content,
		Prefix:    d.Prefix,
		Suffix:    d.Suffix,
		State:     d.State,
		Style:     a.addStyle(st),
		Cell:      -1,
		Node:      noNode,
		Scroll:    c.scroll(),
		Container: -1,
		Data:      d.Data,
		Render:    d.Render,
	}
	if c.opts.Debug {
		it.snap = snap.Clone()
	}
	idx := a.addItem(it)
	c.attach(parent, idx)
	a.record(tape.AddWidget(int(idx)))

	p := &a.Containers[parent]
	switch {
	case p.solverManaged():
		c.solver.SetNode(a.Items[idx].Node, leafNode(p, &a.Styles[a.Items[idx].Style], d.Sizing, content))
	case p.Kind != Grid:
		c.flowAdd(parent, idx)
	}
	return int(idx)
}

// Cell places the next child of the current grid explicitly.
func (c *Context) Cell(row, col, rowspan, colspan int) {
	g := c.top()
	assert(g.Kind == Grid, "Cell outside a grid")
	assert(row >= 0 && col >= 0 && rowspan >= 1 && colspan >= 1,
		"bad cell (%d,%d) span %dx%d", row, col, rowspan, colspan)
	assert(g.Grid.Rows == 0 || row+rowspan <= g.Grid.Rows,
		"cell rows %d..%d do not fit a %d-row grid", row, row+rowspan, g.Grid.Rows)
	assert(g.Grid.Cols == 0 || col+colspan <= g.Grid.Cols,
		"cell cols %d..%d do not fit a %d-column grid", col, col+colspan, g.Grid.Cols)
	g.pending = Cell{Row: int32(row), Col: int32(col), RowSpan: int32(rowspan), ColSpan: int32(colspan)}
	g.hasPending = true
}

// DrawDeferred records drawing in the current container's local
// coordinates. It is replayed at the container's final origin.
func (c *Context) DrawDeferred(fn func(r draw.Renderer)) {
	cont := c.top()
	if cont.Queue < 0 {
		cont.Queue = c.arena.queue()
	}
	fn(c.arena.Queue(cont.Queue))
}

// End closes the innermost container. Closing the root commits the frame.
func (c *Context) End() {
	assert(c.open(), "End with no open container")
	a := c.arena
	ci := c.stack[len(c.stack)-1]
	cont := &a.Containers[ci]

	assert(len(c.styles) == int(cont.StyleDepth), "container %d closed with %d unpopped styles", cont.ID, len(c.styles)-int(cont.StyleDepth))
	assert(len(c.texts) == int(cont.TextDepth), "container %d closed with unpopped text types", cont.ID)
	assert(c.ignore == int(cont.IgnoreDepth), "container %d closed inside IgnoreStyles", cont.ID)
	assert(!cont.hasPending, "grid %d closed with an unused Cell placement", cont.ID)

	if cont.Kind == Scroll {
		a.record(tape.PopScroll())
		c.scrolls = c.scrolls[:len(c.scrolls)-1]
	}
	if cont.Region {
		a.record(tape.PopRegion())
		c.regions--
	}
	a.record(tape.EndLayout(int(ci)))
	cont.TapeTo = int32(a.Tape.Len())
	if c.opts.Debug {
		err := tape.Validate(a.Tape.Slice(int(cont.TapeFrom), int(cont.TapeTo)))
		assert(err == nil, "container %d recorded an unbalanced tape: %v", cont.ID, err)
	}

	switch {
	case cont.solverManaged():
		if cont.SolverRoot == ci {
			c.solveNatural(ci)
			c.runSolver(ci)
		}
	case cont.Kind == Grid:
		c.finishGrid(ci)
	case cont.Kind == Scroll:
		c.finishScroll(ci)
	default:
		c.finishFlow(ci)
	}
	cont = &a.Containers[ci]
	cont.closed = true
	c.stack = c.stack[:len(c.stack)-1]

	slot := &a.Items[cont.Slot]
	slot.Content = cont.slotContent()
	st := &a.Styles[slot.Style]
	switch {
	case cont.Parent < 0:
		slot.Box = boxmodel.Resolve(st, boxmodel.Request{
			Avail:   c.opts.Viewport,
			Content: slot.Content,
			FillX:   slot.Sizing.has(ExpandX),
			FillY:   slot.Sizing.has(ExpandY),
		})
		c.commit()
	case a.Containers[cont.Parent].solverManaged():
		if !cont.solverManaged() {
			c.solver.SetNode(slot.Node, leafNode(&a.Containers[cont.Parent], st, slot.Sizing, c.natural(slot)))
		}
	case a.Containers[cont.Parent].Kind != Grid:
		c.flowAdd(cont.Parent, cont.Slot)
	}
}

// slotContent is the content size requested by a closed container's slot.
func (cont *Container) slotContent() geom.Size {
	s := cont.Extent
	if cont.DefiniteX {
		s.Width = cont.Avail.Width
	}
	if cont.DefiniteY {
		s.Height = cont.Avail.Height
	}
	return s
}

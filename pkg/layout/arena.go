package layout

import (
	"fmt"

	"weft/pkg/draw"
	"weft/pkg/geom"
	"weft/pkg/style"
	"weft/pkg/tape"
)

// Capacity bounds every per-frame arena. Exceeding a bound panics.
type Capacity struct {
	Items          int
	Containers     int
	Cells          int
	Tape           int
	Styles         int
	SolverNodes    int
	QueueBlockSize int
	QueueMaxBlocks int
}

// DefaultCapacity is large enough for a few thousand widgets.
var DefaultCapacity = Capacity{
	Items:          4096,
	Containers:     1024,
	Cells:          2048,
	Tape:           16384,
	Styles:         4096,
	SolverNodes:    4096,
	QueueBlockSize: 256,
	QueueMaxBlocks: 64,
}

func (c Capacity) orDefault() Capacity {
	d := DefaultCapacity
	pick := func(v, def int) int {
		if v > 0 {
			return v
		}
		return def
	}
	return Capacity{
		Items:          pick(c.Items, d.Items),
		Containers:     pick(c.Containers, d.Containers),
		Cells:          pick(c.Cells, d.Cells),
		Tape:           pick(c.Tape, d.Tape),
		Styles:         pick(c.Styles, d.Styles),
		SolverNodes:    pick(c.SolverNodes, d.SolverNodes),
		QueueBlockSize: pick(c.QueueBlockSize, d.QueueBlockSize),
		QueueMaxBlocks: pick(c.QueueMaxBlocks, d.QueueMaxBlocks),
	}
}

// FrameArena owns every frame-scoped record. It is reset when the
// outermost container closes; nothing in it survives into the next frame.
type FrameArena struct {
	Items      []Item
	Containers []Container
	Cells      []Cell
	Lines      []Line
	Tape       *tape.Tape

	// Styles holds pushed style entries and resolved item styles. It never
	// grows past its capacity so pointers into it stay valid for the frame.
	Styles []style.Style

	// Base is the style context in effect when the root container opened.
	Base style.Snapshot

	queues []*draw.Queue
	nq     int

	cap Capacity
}

// NewFrameArena preallocates every arena to its capacity.
func NewFrameArena(c Capacity) *FrameArena {
	c = c.orDefault()
	return &FrameArena{
		Items:      make([]Item, 0, c.Items),
		Containers: make([]Container, 0, c.Containers),
		Cells:      make([]Cell, 0, c.Cells),
		Lines:      make([]Line, 0, c.Items),
		Tape:       tape.New(c.Tape),
		Styles:     make([]style.Style, 0, c.Styles),
		cap:        c,
	}
}

// Capacity returns the bounds the arena was built with.
func (a *FrameArena) Capacity() Capacity { return a.cap }

// Reset clears every record. Deferred queues keep their blocks.
func (a *FrameArena) Reset() {
	for i := range a.Items {
		a.Items[i].Data = nil
		a.Items[i].Render = nil
		a.Items[i].snap = style.Snapshot{}
	}
	a.Items = a.Items[:0]
	a.Containers = a.Containers[:0]
	a.Cells = a.Cells[:0]
	a.Lines = a.Lines[:0]
	a.Tape.Reset()
	a.Styles = a.Styles[:0]
	a.Base = style.Snapshot{}
	for i := 0; i < a.nq; i++ {
		a.queues[i].Reset()
	}
	a.nq = 0
}

// Empty reports whether the arena holds no frame data.
func (a *FrameArena) Empty() bool {
	return len(a.Items) == 0 && len(a.Containers) == 0 && a.Tape.Len() == 0 &&
		len(a.Cells) == 0 && len(a.Styles) == 0
}

func (a *FrameArena) addItem(it Item) int32 {
	assert(len(a.Items) < cap(a.Items), "item arena full (%d)", cap(a.Items))
	a.Items = append(a.Items, it)
	return int32(len(a.Items) - 1)
}

func (a *FrameArena) addContainer(c Container) int32 {
	assert(len(a.Containers) < cap(a.Containers), "container arena full (%d)", cap(a.Containers))
	a.Containers = append(a.Containers, c)
	return int32(len(a.Containers) - 1)
}

func (a *FrameArena) addCell(c Cell) int32 {
	assert(len(a.Cells) < cap(a.Cells), "grid cell arena full (%d)", cap(a.Cells))
	a.Cells = append(a.Cells, c)
	return int32(len(a.Cells) - 1)
}

func (a *FrameArena) addLine(l Line) int32 {
	assert(len(a.Lines) < cap(a.Lines), "flow line arena full (%d)", cap(a.Lines))
	a.Lines = append(a.Lines, l)
	return int32(len(a.Lines) - 1)
}

func (a *FrameArena) addStyle(st style.Style) int32 {
	assert(len(a.Styles) < cap(a.Styles), "style pool full (%d)", cap(a.Styles))
	a.Styles = append(a.Styles, st)
	return int32(len(a.Styles) - 1)
}

func (a *FrameArena) record(op tape.Op) int32 {
	assert(a.Tape.Len() < a.cap.Tape, "operation tape full (%d)", a.cap.Tape)
	return int32(a.Tape.Append(op))
}

// queue hands out a deferred draw queue for this frame.
func (a *FrameArena) queue() int32 {
	if a.nq == len(a.queues) {
		a.queues = append(a.queues, draw.NewQueue(a.cap.QueueBlockSize, a.cap.QueueMaxBlocks))
	}
	a.nq++
	return int32(a.nq - 1)
}

// scrollShift is the total scroll offset applied to items inside scroll
// container s, nested scrolls included.
func (a *FrameArena) scrollShift(s int32) geom.Point {
	var p geom.Point
	for ; s >= 0; s = a.Items[a.Containers[s].Slot].Scroll {
		o := a.Containers[s].ScrollOffset
		p.X += o.X
		p.Y += o.Y
	}
	return p
}

// viewport is the frame-space rectangle through which the content of
// scroll container s is seen: its padding box, clipped by every enclosing
// scroll. It is only meaningful once the frame has committed.
func (a *FrameArena) viewport(s int32) (geom.Rect, bool) {
	if s < 0 {
		return geom.Rect{}, false
	}
	var view geom.Rect
	for first := true; s >= 0; first = false {
		slot := &a.Items[a.Containers[s].Slot]
		off := a.scrollShift(slot.Scroll)
		r := slot.Box.Padding.Translate(-off.X, -off.Y)
		if first {
			view = r
		} else {
			view = view.Intersect(r)
		}
		s = slot.Scroll
	}
	return view, true
}

// Queue returns deferred draw queue i.
func (a *FrameArena) Queue(i int32) *draw.Queue { return a.queues[i] }

// assert panics with a layout error. Every misuse of the declaration API
// ends here.
func assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("layout: "+format, args...))
	}
}

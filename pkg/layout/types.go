package layout

import (
	"weft/pkg/boxmodel"
	"weft/pkg/draw"
	"weft/pkg/geom"
	"weft/pkg/style"
)

// Kind is the sizing algorithm of a container.
type Kind uint8

const (
	FlowHorizontal Kind = iota
	FlowVertical
	Grid
	Scroll // vertical pass-through with a scroll offset
)

func (k Kind) String() string {
	switch k {
	case FlowHorizontal:
		return "row"
	case FlowVertical:
		return "column"
	case Grid:
		return "grid"
	case Scroll:
		return "scroll"
	}
	return "layout"
}

// Sizing is the per-item sizing and alignment bitmask.
type Sizing uint16

const (
	ExpandX Sizing = 1 << iota
	ExpandY
	ShrinkX
	ShrinkY
	AlignLeft
	AlignCenterX
	AlignRight
	AlignTop
	AlignMiddle
	AlignBottom
	FromRight  // pinned to the trailing edge of a horizontal line
	FromBottom // pinned to the trailing edge of a vertical line

	Expand = ExpandX | ExpandY
)

func (s Sizing) has(f Sizing) bool { return s&f != 0 }

// alignX returns the horizontal alignment named by the bitmask, or def.
func (s Sizing) alignX(def style.Align) style.Align {
	switch {
	case s.has(ExpandX):
		return style.AlignStretch
	case s.has(AlignLeft):
		return style.AlignStart
	case s.has(AlignCenterX):
		return style.AlignCenter
	case s.has(AlignRight):
		return style.AlignEnd
	}
	return def
}

// alignY returns the vertical alignment named by the bitmask, or def.
func (s Sizing) alignY(def style.Align) style.Align {
	switch {
	case s.has(ExpandY):
		return style.AlignStretch
	case s.has(AlignTop):
		return style.AlignStart
	case s.has(AlignMiddle):
		return style.AlignCenter
	case s.has(AlignBottom):
		return style.AlignEnd
	}
	return def
}

// Overflow says what a flow container does with children past its capacity.
type Overflow uint8

const (
	OverflowVisible Overflow = iota // place anyway
	OverflowWrap                    // break onto a new line
	OverflowClip                    // place anyway, clip when rendering
)

// NodeID is a handle into a Solver's node pool. -1 means none.
type NodeID int32

const noNode NodeID = -1

// Input is the host's pointer and focus state for one frame.
type Input struct {
	Mouse    geom.Point
	Down     bool // primary button held
	Released bool // primary button went up this frame
	Focus    uint64
}

// Result is what a widget render entry point reports back.
type Result struct {
	Hovered bool
	Active  bool
	Clicked bool
	Changed bool
}

// RenderFunc draws one widget. It runs only in the render replay, with the
// cascaded style and the final frame-space box model.
type RenderFunc func(id uint64, data any, st *style.Style, box boxmodel.BoxModel, r draw.Renderer, in Input) Result

// Item is one widget or nested-container slot.
type Item struct {
	Owner int32 // container that lays this item out, -1 for the root slot
	Next  int32 // next sibling in Owner, -1 at the end

	ID   uint64
	Kind string

	Sizing  Sizing
	Content geom.Size // requested content size
	Prefix  float64
	Suffix  float64
	State   style.State
	Style   int32 // resolved sizing style in the arena's style pool

	// Box is local to Owner's content origin until the frame commits, then
	// in frame space. Scroll offsets are applied by the replayer.
	Box boxmodel.BoxModel

	Row, Col  int32 // grid cell or flow line/position
	Cell      int32 // grid record, -1 outside grids
	Node      NodeID
	Scroll    int32 // innermost enclosing scroll container, -1 when none
	Container int32 // container this item is the slot of, -1 for widgets

	Data   any
	Render RenderFunc

	snap style.Snapshot // declaration-time snapshot, kept when debugging
}

// GridSpec describes a grid container.
type GridSpec struct {
	Rows, Cols         int       // 0 grows implicitly along the population order
	RowSizes, ColSizes []float64 // explicit track sizes, may be shorter than Rows/Cols
	ColumnMajor        bool
}

// Cell is the per-item grid record.
type Cell struct {
	Item             int32
	Row, Col         int32
	RowSpan, ColSpan int32
	Rect             geom.Rect // combined span rectangle, local
}

// Line is one flow line.
type Line struct {
	First    int32 // first item on the line
	Count    int32
	Lead     float64 // main extent of leading items incl. inner spacing
	Trail    float64 // main extent of trailing-anchored items incl. spacing
	Thick    float64
	CrossPos float64
	Next     int32 // next line of the same container, -1 at the end
}

// Container is one open or closed layout scope.
type Container struct {
	Kind   Kind
	ID     uint64
	Parent int32
	Slot   int32 // item index of this container's slot in Parent
	Style  int32

	// Avail is the local content capacity. Definite axes are fixed or fill;
	// indefinite ones are only a cap for wrapping and the final size comes
	// from Extent.
	Avail        geom.Size
	DefiniteX    bool
	DefiniteY    bool
	Extent       geom.Size // used content size, valid after close
	Natural      geom.Size // used content size ignoring definite axes
	ContentSize  geom.Size // unclipped content size of a scroll container
	ScrollOffset geom.Point

	Align    style.Align // main axis (flow) or horizontal (grid)
	Cross    style.Align
	Overflow Overflow
	Spacing  float64
	Grid     GridSpec
	Region   bool

	First, Last int32 // child item list
	Children    int32

	TapeFrom, TapeTo int32 // ops recorded while open, both brackets included
	StyleDepth       int32
	TextDepth        int32
	IgnoreDepth      int32
	RegionDepth      int32

	Node       NodeID
	Inner      NodeID // parent node of the children, Node unless spaced
	SolverRoot int32  // subtree root container when solver managed, -1 otherwise

	Queue int32 // deferred draw queue, -1 when none

	// Origin is the frame-space content origin, set at commit.
	Origin geom.Point

	// flow state
	cursor   float64
	trail    float64
	line     int32 // current line record, -1 before the first child
	lineFrom int32 // first line record
	reuse    int32 // line records freed by the last reflow

	// grid state
	nextRow, nextCol int32
	pending          Cell // explicit placement for the next child
	hasPending       bool

	closed bool
}

func (c *Container) solverManaged() bool { return c.SolverRoot >= 0 }

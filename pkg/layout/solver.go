package layout

import (
	"math"

	"weft/pkg/boxmodel"
	"weft/pkg/geom"
	"weft/pkg/style"
)

// Auto marks an unset NodeStyle dimension.
var Auto = math.NaN()

// Direction is a solver node's main axis.
type Direction uint8

const (
	Row Direction = iota
	Column
)

// Justify distributes free main-axis space in a solver node.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
)

// NodeAlign is cross-axis alignment in a solver node.
type NodeAlign uint8

const (
	NodeAlignAuto NodeAlign = iota
	NodeAlignStart
	NodeAlignCenter
	NodeAlignEnd
	NodeAlignStretch
)

// NodeStyle is everything the engine tells a solver about one node. Sizes
// are border-box; NaN means auto.
type NodeStyle struct {
	Direction  Direction
	Justify    Justify
	AlignItems NodeAlign
	AlignSelf  NodeAlign
	Wrap       bool

	Width, Height       float64
	MinWidth, MinHeight float64
	MaxWidth, MaxHeight float64 // 0 is unbounded
	Grow, Shrink        float64
	Basis               float64

	Margin, Padding, Border geom.Edges

	// Leaf nodes are measured: auto dimensions follow Content plus
	// padding and border. Leaves never get children.
	Leaf    bool
	Content geom.Size
}

// Solver is an external flexbox-style layout engine. Nodes live in a pool
// that is reset only when the frame unwinds.
type Solver interface {
	NewNode() NodeID
	SetNode(n NodeID, s NodeStyle)
	InsertChild(parent, child NodeID)

	// Run lays out the tree under root. NaN sizes mean size to content.
	Run(root NodeID, width, height float64)

	// NodeRect returns n's border box relative to its parent's border box.
	NodeRect(n NodeID) geom.Rect

	Reset()
}

func nodeAlign(a style.Align) NodeAlign {
	switch a {
	case style.AlignCenter:
		return NodeAlignCenter
	case style.AlignEnd:
		return NodeAlignEnd
	case style.AlignStretch:
		return NodeAlignStretch
	}
	return NodeAlignStart
}

func nodeJustify(a style.Align) Justify {
	switch a {
	case style.AlignCenter:
		return JustifyCenter
	case style.AlignEnd:
		return JustifyEnd
	case style.AlignStretch:
		return JustifySpaceBetween
	}
	return JustifyStart
}

// nodeLength turns a style length into a solver border-box size. Percents
// resolve against base, the same base the native algorithms use.
func nodeLength(l style.Length, base float64) float64 {
	switch l.Unit {
	case style.UnitFixed:
		return l.Value
	case style.UnitPercent:
		if !math.IsNaN(base) {
			return math.Max(base, 0) * l.Value / 100
		}
	}
	return Auto
}

// baseNode fills the parts of a node shared by leaves and containers.
func baseNode(parent *Container, st *style.Style, sz Sizing) NodeStyle {
	m := st.Margin.NonNegative()
	baseW, baseH := Auto, Auto
	if parent != nil {
		baseW = parent.Avail.Width - m.Horizontal()
		baseH = parent.Avail.Height - m.Vertical()
	}
	ns := NodeStyle{
		Width:     nodeLength(st.Width, baseW),
		Height:    nodeLength(st.Height, baseH),
		MinWidth:  st.MinWidth,
		MinHeight: st.MinHeight,
		MaxWidth:  st.MaxWidth,
		MaxHeight: st.MaxHeight,
		Basis:     Auto,
		Margin:    m,
		Padding:   st.Padding,
		Border:    st.Border,
	}
	if parent == nil {
		ns.Margin = geom.Edges{}
		return ns
	}
	fillX := sz.has(ExpandX) || st.Width.Unit == style.UnitFill
	fillY := sz.has(ExpandY) || st.Height.Unit == style.UnitFill
	expandMain, expandCross := fillX, fillY
	shrinkMain := sz.has(ShrinkX)
	if parent.Kind != FlowHorizontal {
		expandMain, expandCross = expandCross, expandMain
		shrinkMain = sz.has(ShrinkY)
	}
	if expandMain {
		ns.Grow = 1
	}
	if shrinkMain {
		ns.Shrink = 1
	}
	if parent.Kind == FlowHorizontal {
		ns.AlignSelf = selfAlign(sz.alignY(parent.Cross), parent.Cross, expandCross)
	} else {
		ns.AlignSelf = selfAlign(sz.alignX(parent.Cross), parent.Cross, expandCross)
	}
	gap(&ns.Margin, parent, parent.Spacing)
	return ns
}

// gap adds g after a node on parent's main axis, and below or beside it
// when parent wraps, so consecutive siblings and lines sit g apart.
func gap(e *geom.Edges, parent *Container, g float64) {
	if g == 0 {
		return
	}
	wrap := parent.Overflow == OverflowWrap
	if parent.Kind == FlowHorizontal {
		e.Right += g
		if wrap {
			e.Bottom += g
		}
		return
	}
	e.Bottom += g
	if wrap {
		e.Right += g
	}
}

func selfAlign(a, def style.Align, stretch bool) NodeAlign {
	if stretch {
		return NodeAlignStretch
	}
	if a == def {
		return NodeAlignAuto
	}
	return nodeAlign(a)
}

// leafNode describes a widget or a natively laid out container slot. The
// solver measures it from its content size.
func leafNode(parent *Container, st *style.Style, sz Sizing, content geom.Size) NodeStyle {
	ns := baseNode(parent, st, sz)
	ns.Leaf = true
	ns.Content = content
	return ns
}

func direction(k Kind) Direction {
	if k == FlowVertical {
		return Column
	}
	return Row
}

// containerNode describes a solver-managed flow container. A spaced
// container keeps its distribution on the inner node, so its own node only
// stacks that one child.
func containerNode(c *Container, parent *Container, st *style.Style, sz Sizing) NodeStyle {
	ns := baseNode(parent, st, sz)
	ns.Direction = direction(c.Kind)
	if c.Spacing > 0 {
		ns.AlignItems = NodeAlignStretch
	} else {
		ns.Justify = nodeJustify(c.Align)
		ns.AlignItems = nodeAlign(c.Cross)
		ns.Wrap = c.Overflow == OverflowWrap
	}
	if parent != nil {
		return ns
	}
	edges := st.Border.Add(st.Padding)
	if c.DefiniteX {
		ns.Width = c.Avail.Width + edges.Horizontal()
	}
	if c.DefiniteY {
		ns.Height = c.Avail.Height + edges.Vertical()
	}
	// An indefinite root still wraps at its capacity.
	if c.Overflow == OverflowWrap {
		if c.Kind == FlowHorizontal && !c.DefiniteX {
			ns.MaxWidth = c.Avail.Width + edges.Horizontal()
		}
		if c.Kind == FlowVertical && !c.DefiniteY {
			ns.MaxHeight = c.Avail.Height + edges.Vertical()
		}
	}
	return ns
}

// innerNode is the single child of a spaced container's node. Its children
// each carry a trailing gap, which the negative margin gives back so the
// last gap never counts toward the container's size.
func innerNode(c *Container) NodeStyle {
	ns := NodeStyle{
		Direction:  direction(c.Kind),
		Justify:    nodeJustify(c.Align),
		AlignItems: nodeAlign(c.Cross),
		AlignSelf:  NodeAlignStretch,
		Wrap:       c.Overflow == OverflowWrap,
		Width:      Auto,
		Height:     Auto,
		Basis:      Auto,
		Grow:       1,
	}
	// A wrapping inner node has to shrink to the container to break lines.
	if ns.Wrap {
		ns.Shrink = 1
	}
	gap(&ns.Margin, c, -c.Spacing)
	return ns
}

// openSolverNode gives a new flow container its node. It joins the parent's
// solver tree when the parent is solver managed and roots a new one
// otherwise.
func (c *Context) openSolverNode(ci, parent int32, root bool) {
	a := c.arena
	cont := &a.Containers[ci]
	slot := &a.Items[cont.Slot]
	var pc *Container
	if !root && a.Containers[parent].solverManaged() {
		pc = &a.Containers[parent]
		cont.SolverRoot = pc.SolverRoot
		cont.Node = slot.Node
	} else {
		cont.SolverRoot = ci
		cont.Node = c.solver.NewNode()
		slot.Node = cont.Node
	}
	c.solver.SetNode(cont.Node, containerNode(cont, pc, &a.Styles[cont.Style], slot.Sizing))
	cont.Inner = cont.Node
	if cont.Spacing > 0 {
		cont.Inner = c.solver.NewNode()
		c.solver.SetNode(cont.Inner, innerNode(cont))
		c.solver.InsertChild(cont.Node, cont.Inner)
	}
}

// solveNatural records the used size of a nested solver root on the axes
// its slot fills, by solving once with those axes left to the content.
func (c *Context) solveNatural(ci int32) {
	a := c.arena
	root := &a.Containers[ci]
	slot := &a.Items[root.Slot]
	st := &a.Styles[root.Style]
	fillX := slot.Sizing.has(ExpandX) || st.Width.Unit == style.UnitFill
	fillY := slot.Sizing.has(ExpandY) || st.Height.Unit == style.UnitFill
	if root.Parent < 0 || (!fillX && !fillY) {
		return
	}
	ns := containerNode(root, nil, st, slot.Sizing)
	if fillX {
		ns.Width, ns.MaxWidth = Auto, 0
	}
	if fillY {
		ns.Height, ns.MaxHeight = Auto, 0
	}
	c.solver.SetNode(root.Node, ns)
	c.solver.Run(root.Node, ns.Width, ns.Height)
	edges := st.Border.Add(st.Padding)
	r := c.solver.NodeRect(root.Node)
	root.Natural = geom.Size{
		Width:  math.Max(r.Width-edges.Horizontal(), 0),
		Height: math.Max(r.Height-edges.Vertical(), 0),
	}
	c.solver.SetNode(root.Node, containerNode(root, nil, st, slot.Sizing))
}

// runSolver lays out the solver tree rooted at container ci and reads every
// item's box back into the owner's local space. Natively laid out
// container slots are laid out again at the size the solver gave them.
func (c *Context) runSolver(ci int32) {
	a := c.arena
	root := &a.Containers[ci]
	rst := &a.Styles[root.Style]
	edges := rst.Border.Add(rst.Padding)
	w, h := Auto, Auto
	if root.DefiniteX {
		w = root.Avail.Width + edges.Horizontal()
	}
	if root.DefiniteY {
		h = root.Avail.Height + edges.Vertical()
	}
	c.solver.Run(root.Node, w, h)

	for k := ci; k < int32(len(a.Containers)); k++ {
		ck := &a.Containers[k]
		if ck.SolverRoot != ci {
			continue
		}
		st := &a.Styles[ck.Style]
		inset := st.Border.Add(st.Padding)
		dx, dy := -inset.Left, -inset.Top
		if ck.Inner != ck.Node {
			ir := c.solver.NodeRect(ck.Inner)
			dx, dy = dx+ir.X, dy+ir.Y
		}
		for it := ck.First; it >= 0; it = a.Items[it].Next {
			item := &a.Items[it]
			r := c.solver.NodeRect(item.Node).Translate(dx, dy)
			item.Box = boxmodel.FromBorderBox(&a.Styles[item.Style], r)
			if k := item.Container; k >= 0 && !a.Containers[k].solverManaged() {
				c.reflow(k, item.Box.Content.Size())
			}
		}
		rr := c.solver.NodeRect(ck.Node)
		ck.Extent = geom.Size{
			Width:  math.Max(rr.Width-inset.Horizontal(), 0),
			Height: math.Max(rr.Height-inset.Vertical(), 0),
		}
	}
}

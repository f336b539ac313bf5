// Package flexsolver implements layout.Solver on github.com/kjk/flex, a Go
// port of the Yoga flexbox engine.
//
// Nodes are recycled by index: NewNode hands out the next pooled node and
// Reset, which the engine calls once per frame when it unwinds, detaches
// everything and rewinds the index. A frame never sees a node another
// frame configured. Leaves are measured nodes that report the content
// size they were last set with.
package flexsolver

import (
	"math"

	"github.com/kjk/flex"

	"weft/pkg/geom"
	"weft/pkg/layout"
)

// Pool is a layout.Solver backed by recycled flex nodes.
type Pool struct {
	config  *flex.Config
	nodes   []*flex.Node
	content []flex.Size        // measured size of each leaf
	measure []flex.MeasureFunc // one per pooled node, reads content
	next    int
	limit   int
}

// New returns a pool that panics past limit nodes per frame. A limit of 0
// means unbounded.
func New(limit int) *Pool {
	cfg := flex.NewConfig()
	return &Pool{config: cfg, limit: limit}
}

// Len returns the number of nodes handed out this frame.
func (p *Pool) Len() int { return p.next }

// NewNode implements layout.Solver.
func (p *Pool) NewNode() layout.NodeID {
	if p.limit > 0 && p.next >= p.limit {
		panic("flexsolver: node pool full")
	}
	if p.next == len(p.nodes) {
		i := len(p.nodes)
		p.nodes = append(p.nodes, flex.NewNodeWithConfig(p.config))
		p.content = append(p.content, flex.Size{})
		p.measure = append(p.measure, func(*flex.Node, float32, flex.MeasureMode, float32, flex.MeasureMode) flex.Size {
			return p.content[i]
		})
	}
	p.next++
	return layout.NodeID(p.next - 1)
}

func (p *Pool) node(n layout.NodeID) *flex.Node {
	if n < 0 || int(n) >= p.next {
		panic("flexsolver: stale node id")
	}
	return p.nodes[n]
}

// SetNode implements layout.Solver.
func (p *Pool) SetNode(n layout.NodeID, s layout.NodeStyle) {
	st := &p.node(n).Style

	st.FlexDirection = flex.FlexDirectionRow
	if s.Direction == layout.Column {
		st.FlexDirection = flex.FlexDirectionColumn
	}
	st.JustifyContent = justify(s.Justify)
	st.AlignItems = align(s.AlignItems, flex.AlignStretch)
	st.AlignSelf = align(s.AlignSelf, flex.AlignAuto)
	st.FlexWrap = flex.WrapNoWrap
	if s.Wrap {
		st.FlexWrap = flex.WrapWrap
	}

	st.Dimensions[flex.DimensionWidth] = length(s.Width)
	st.Dimensions[flex.DimensionHeight] = length(s.Height)
	st.MinDimensions[flex.DimensionWidth] = bound(s.MinWidth)
	st.MinDimensions[flex.DimensionHeight] = bound(s.MinHeight)
	st.MaxDimensions[flex.DimensionWidth] = bound(s.MaxWidth)
	st.MaxDimensions[flex.DimensionHeight] = bound(s.MaxHeight)

	st.FlexGrow = float32(s.Grow)
	st.FlexShrink = float32(s.Shrink)
	st.FlexBasis = length(s.Basis)

	edges(&st.Margin, s.Margin)
	edges(&st.Padding, s.Padding)
	edges(&st.Border, s.Border)

	if s.Leaf {
		p.content[n] = flex.Size{Width: float32(s.Content.Width), Height: float32(s.Content.Height)}
		p.nodes[n].SetMeasureFunc(p.measure[n])
	} else {
		p.nodes[n].SetMeasureFunc(nil)
	}
	p.nodes[n].IsDirty = true
}

// InsertChild implements layout.Solver.
func (p *Pool) InsertChild(parent, child layout.NodeID) {
	pn := p.node(parent)
	pn.InsertChild(p.node(child), len(pn.Children))
}

// Run implements layout.Solver.
func (p *Pool) Run(root layout.NodeID, width, height float64) {
	flex.CalculateLayout(p.node(root), undefined(width), undefined(height), flex.DirectionLTR)
}

// NodeRect implements layout.Solver.
func (p *Pool) NodeRect(n layout.NodeID) geom.Rect {
	l := &p.node(n).Layout
	return geom.R(
		float64(l.Position[flex.EdgeLeft]),
		float64(l.Position[flex.EdgeTop]),
		float64(l.Dimensions[flex.DimensionWidth]),
		float64(l.Dimensions[flex.DimensionHeight]),
	)
}

// Reset implements layout.Solver.
func (p *Pool) Reset() {
	for _, n := range p.nodes[:p.next] {
		n.Children = nil
		n.Parent = nil
	}
	for _, n := range p.nodes[:p.next] {
		n.Reset()
	}
	p.next = 0
}

func undefined(v float64) float32 {
	if math.IsNaN(v) {
		return flex.Undefined
	}
	return float32(v)
}

func length(v float64) flex.Value {
	if math.IsNaN(v) {
		return flex.Value{Value: flex.Undefined, Unit: flex.UnitAuto}
	}
	return flex.Value{Value: float32(v), Unit: flex.UnitPoint}
}

func bound(v float64) flex.Value {
	if v <= 0 || math.IsNaN(v) {
		return flex.Value{Value: flex.Undefined, Unit: flex.UnitUndefined}
	}
	return flex.Value{Value: float32(v), Unit: flex.UnitPoint}
}

func edges(dst *[flex.EdgeCount]flex.Value, e geom.Edges) {
	dst[flex.EdgeLeft] = flex.Value{Value: float32(e.Left), Unit: flex.UnitPoint}
	dst[flex.EdgeTop] = flex.Value{Value: float32(e.Top), Unit: flex.UnitPoint}
	dst[flex.EdgeRight] = flex.Value{Value: float32(e.Right), Unit: flex.UnitPoint}
	dst[flex.EdgeBottom] = flex.Value{Value: float32(e.Bottom), Unit: flex.UnitPoint}
}

func justify(j layout.Justify) flex.Justify {
	switch j {
	case layout.JustifyCenter:
		return flex.JustifyCenter
	case layout.JustifyEnd:
		return flex.JustifyFlexEnd
	case layout.JustifySpaceBetween:
		return flex.JustifySpaceBetween
	}
	return flex.JustifyFlexStart
}

func align(a layout.NodeAlign, auto flex.Align) flex.Align {
	switch a {
	case layout.NodeAlignStart:
		return flex.AlignFlexStart
	case layout.NodeAlignCenter:
		return flex.AlignCenter
	case layout.NodeAlignEnd:
		return flex.AlignFlexEnd
	case layout.NodeAlignStretch:
		return flex.AlignStretch
	}
	return auto
}

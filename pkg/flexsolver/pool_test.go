package flexsolver_test

import (
	"testing"

	"weft/pkg/flexsolver"
	"weft/pkg/geom"
	"weft/pkg/layout"
	"weft/pkg/style"
)

func row(c *layout.Context) {
	c.Begin(layout.Layout{ID: 1, Kind: layout.FlowHorizontal, Sizing: layout.Expand})
	c.Widget(layout.WidgetDecl{ID: 2, Content: geom.Size{Width: 30, Height: 10}})
	c.Widget(layout.WidgetDecl{ID: 3, Sizing: layout.ExpandX, Content: geom.Size{Width: 10, Height: 10}})
	c.End()
}

func TestPool_GrowFillsRow(t *testing.T) {
	pool := flexsolver.New(0)
	c := layout.New(layout.Options{Viewport: geom.R(0, 0, 200, 50), Solver: pool})
	row(c)

	f := c.Frame()
	if got := f.Boxes[2].Border; got != geom.R(0, 0, 30, 10) {
		t.Errorf("fixed item = %+v", got)
	}
	if got := f.Boxes[3].Border; got != geom.R(30, 0, 170, 10) {
		t.Errorf("growing item = %+v", got)
	}
}

func TestPool_StretchInsidePadding(t *testing.T) {
	provider := style.ProviderFunc(func(t style.Target, snap style.Snapshot, state style.State) style.Style {
		out := style.NewCascade().Style(t, snap, state)
		if t.Kind == "column" {
			out = out.WithPadding(geom.EdgeAll(5))
		}
		return out
	})
	c := layout.New(layout.Options{
		Viewport: geom.R(0, 0, 200, 100),
		Provider: provider,
		Solver:   flexsolver.New(0),
	})
	c.Begin(layout.Layout{ID: 1, Kind: layout.FlowVertical, Sizing: layout.Expand})
	c.Widget(layout.WidgetDecl{ID: 2, Sizing: layout.ExpandX, Content: geom.Size{Width: 10, Height: 10}})
	c.End()

	if got := c.Frame().Boxes[2].Border; got != geom.R(5, 5, 190, 10) {
		t.Fatalf("stretched item = %+v, want 5,5 190x10", got)
	}
}

func TestPool_RecyclesNodesAcrossFrames(t *testing.T) {
	pool := flexsolver.New(8)
	var during int
	c := layout.New(layout.Options{
		Viewport: geom.R(0, 0, 200, 50),
		Solver:   pool,
		OnCommit: func(*layout.Frame) { during = pool.Len() },
	})
	for i := 0; i < 3; i++ {
		row(c)
		if during != 3 {
			t.Fatalf("frame %d used %d nodes, want 3", i, during)
		}
		if pool.Len() != 0 {
			t.Fatalf("frame %d left %d nodes handed out", i, pool.Len())
		}
	}
	if got := c.Frame().Boxes[3].Border.Width; got != 170 {
		t.Errorf("recycled nodes laid out width %v, want 170", got)
	}
}

func TestPool_Limit(t *testing.T) {
	pool := flexsolver.New(1)
	pool.NewNode()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic past the node limit")
		}
	}()
	pool.NewNode()
}

func TestPool_MeasuresLeavesInAutoContainer(t *testing.T) {
	auto := layout.NodeStyle{Width: layout.Auto, Height: layout.Auto, Basis: layout.Auto}
	tests := []struct {
		name     string
		dir      layout.Direction
		wantRoot geom.Rect
		wantLeaf geom.Rect
	}{
		{"column", layout.Column, geom.R(0, 0, 30, 20), geom.R(0, 10, 30, 10)},
		{"row", layout.Row, geom.R(0, 0, 60, 10), geom.R(30, 0, 30, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := flexsolver.New(0)
			root := pool.NewNode()
			rs := auto
			rs.Direction = tt.dir
			rs.AlignItems = layout.NodeAlignStart
			pool.SetNode(root, rs)
			var leaves []layout.NodeID
			for i := 0; i < 2; i++ {
				n := pool.NewNode()
				ls := auto
				ls.Leaf = true
				ls.Content = geom.Size{Width: 30, Height: 10}
				pool.SetNode(n, ls)
				pool.InsertChild(root, n)
				leaves = append(leaves, n)
			}
			pool.Run(root, layout.Auto, layout.Auto)

			if got := pool.NodeRect(root); got != tt.wantRoot {
				t.Errorf("root = %+v, want %+v", got, tt.wantRoot)
			}
			if got := pool.NodeRect(leaves[1]); got != tt.wantLeaf {
				t.Errorf("second leaf = %+v, want %+v", got, tt.wantLeaf)
			}
			pool.Reset()
		})
	}
}

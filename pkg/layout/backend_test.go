package layout_test

import (
	"testing"

	"weft/pkg/boxmodel"
	"weft/pkg/draw"
	"weft/pkg/flexsolver"
	"weft/pkg/geom"
	"weft/pkg/layout"
	"weft/pkg/style"
)

// backends runs each case once per flow algorithm.
var backends = []struct {
	name   string
	solver func() layout.Solver
}{
	{"native", func() layout.Solver { return nil }},
	{"flex", func() layout.Solver { return flexsolver.New(0) }},
}

// styled gives widgets of kind "half" half their owner's width and scroll
// containers a 50 high viewport.
var styled = style.ProviderFunc(func(t style.Target, snap style.Snapshot, state style.State) style.Style {
	out := style.NewCascade().Style(t, snap, state)
	switch t.Kind {
	case "half":
		out = out.WithWidth(style.Percent(50))
	case "scroll":
		out = out.WithHeight(style.Px(50))
	}
	return out
})

func sz(w, h float64) geom.Size { return geom.Size{Width: w, Height: h} }

func widget(id uint64, w, h float64) layout.WidgetDecl {
	return layout.WidgetDecl{ID: id, Content: sz(w, h)}
}

func TestBackends_Layout(t *testing.T) {
	tests := []struct {
		name    string
		declare func(c *layout.Context)
		want    map[uint64]geom.Rect // border boxes
	}{
		{
			name: "auto column keeps natural sizes",
			declare: func(c *layout.Context) {
				c.Begin(layout.Layout{ID: 1, Kind: layout.FlowVertical})
				c.Widget(widget(2, 30, 10))
				c.Widget(widget(3, 30, 10))
				c.End()
			},
			want: map[uint64]geom.Rect{
				1: geom.R(0, 0, 30, 20),
				2: geom.R(0, 0, 30, 10),
				3: geom.R(0, 10, 30, 10),
			},
		},
		{
			name: "column nested in an auto row",
			declare: func(c *layout.Context) {
				c.Begin(layout.Layout{ID: 1, Kind: layout.FlowHorizontal})
				c.Widget(widget(2, 20, 10))
				c.Begin(layout.Layout{ID: 3, Kind: layout.FlowVertical})
				c.Widget(widget(4, 30, 10))
				c.Widget(widget(5, 30, 10))
				c.End()
				c.End()
			},
			want: map[uint64]geom.Rect{
				1: geom.R(0, 0, 50, 20),
				3: geom.R(20, 0, 30, 20),
				4: geom.R(20, 0, 30, 10),
				5: geom.R(20, 10, 30, 10),
			},
		},
		{
			name: "spacing separates siblings",
			declare: func(c *layout.Context) {
				c.Begin(layout.Layout{ID: 1, Kind: layout.FlowHorizontal, Spacing: 10})
				c.Widget(widget(2, 40, 10))
				c.Begin(layout.Layout{ID: 3, Kind: layout.FlowVertical})
				c.Widget(widget(4, 10, 10))
				c.End()
				c.End()
			},
			want: map[uint64]geom.Rect{
				1: geom.R(0, 0, 60, 10),
				2: geom.R(0, 0, 40, 10),
				3: geom.R(50, 0, 10, 10),
				4: geom.R(50, 0, 10, 10),
			},
		},
		{
			name: "spacing between wrapped lines",
			declare: func(c *layout.Context) {
				c.Begin(layout.Layout{ID: 1, Kind: layout.FlowHorizontal, Sizing: layout.ExpandX, Overflow: layout.OverflowWrap, Spacing: 10})
				for id := uint64(2); id < 5; id++ {
					c.Widget(widget(id, 40, 20))
				}
				c.End()
			},
			want: map[uint64]geom.Rect{
				1: geom.R(0, 0, 100, 50),
				3: geom.R(50, 0, 40, 20),
				4: geom.R(0, 30, 40, 20),
			},
		},
		{
			name: "percent width in a row",
			declare: func(c *layout.Context) {
				c.Begin(layout.Layout{ID: 1, Kind: layout.FlowHorizontal, Sizing: layout.ExpandX})
				c.Widget(layout.WidgetDecl{ID: 2, Kind: "half", Content: sz(10, 10)})
				c.Widget(widget(3, 10, 10))
				c.End()
			},
			want: map[uint64]geom.Rect{
				2: geom.R(0, 0, 50, 10),
				3: geom.R(50, 0, 10, 10),
			},
		},
		{
			name: "percent width sizes a grid track",
			declare: func(c *layout.Context) {
				c.Begin(layout.Layout{ID: 1, Kind: layout.FlowVertical, Sizing: layout.ExpandX})
				c.Begin(layout.Layout{ID: 5, Kind: layout.Grid, Grid: layout.GridSpec{Cols: 2}})
				c.Widget(layout.WidgetDecl{ID: 6, Kind: "half", Content: sz(10, 10)})
				c.Widget(widget(7, 10, 10))
				c.End()
				c.End()
			},
			want: map[uint64]geom.Rect{
				5: geom.R(0, 0, 60, 10),
				6: geom.R(0, 0, 50, 10),
				7: geom.R(50, 0, 10, 10),
			},
		},
		{
			name: "container stays inside a declared grid cell",
			declare: func(c *layout.Context) {
				c.Begin(layout.Layout{ID: 1, Kind: layout.Grid, Sizing: layout.ExpandX, Grid: layout.GridSpec{Cols: 2}})
				c.Begin(layout.Layout{ID: 3, Kind: layout.FlowHorizontal, Sizing: layout.ExpandX, Align: style.AlignEnd})
				c.Widget(widget(4, 20, 10))
				c.End()
				c.Widget(widget(5, 10, 10))
				c.End()
			},
			want: map[uint64]geom.Rect{
				3: geom.R(0, 0, 50, 10),
				4: geom.R(30, 0, 20, 10),
				5: geom.R(50, 0, 10, 10),
			},
		},
		{
			name: "container is laid out again in an inferred grid cell",
			declare: func(c *layout.Context) {
				c.Begin(layout.Layout{ID: 1, Kind: layout.Grid, Grid: layout.GridSpec{Cols: 2}})
				c.Begin(layout.Layout{ID: 3, Kind: layout.FlowHorizontal, Sizing: layout.ExpandX, Align: style.AlignEnd})
				c.Widget(widget(4, 20, 10))
				c.End()
				c.Widget(widget(5, 10, 10))
				c.End()
			},
			want: map[uint64]geom.Rect{
				3: geom.R(0, 0, 20, 10),
				4: geom.R(0, 0, 20, 10),
				5: geom.R(20, 0, 10, 10),
			},
		},
		{
			name: "stretched grid is laid out at the line height",
			declare: func(c *layout.Context) {
				c.Begin(layout.Layout{ID: 1, Kind: layout.FlowHorizontal})
				c.Widget(widget(2, 10, 40))
				c.Begin(layout.Layout{ID: 3, Kind: layout.Grid, Sizing: layout.ExpandY, Grid: layout.GridSpec{Cols: 1}})
				c.Widget(layout.WidgetDecl{ID: 4, Sizing: layout.AlignBottom, Content: sz(10, 10)})
				c.End()
				c.End()
			},
			want: map[uint64]geom.Rect{
				1: geom.R(0, 0, 20, 40),
				3: geom.R(10, 0, 10, 40),
				4: geom.R(10, 30, 10, 10),
			},
		},
	}

	for _, b := range backends {
		for _, tt := range tests {
			t.Run(b.name+"/"+tt.name, func(t *testing.T) {
				c := layout.New(layout.Options{
					Viewport: geom.R(0, 0, 100, 100),
					Provider: styled,
					Solver:   b.solver(),
					Debug:    true,
				})
				tt.declare(c)

				f := c.Frame()
				for id, want := range tt.want {
					if got := f.Boxes[id].Border; got != want {
						t.Errorf("item %d = %+v, want %+v", id, got, want)
					}
				}
			})
		}
	}
}

func hover(_ uint64, _ any, _ *style.Style, b boxmodel.BoxModel, _ draw.Renderer, in layout.Input) layout.Result {
	return layout.Result{Hovered: b.Border.Contains(in.Mouse.X, in.Mouse.Y)}
}

func TestBackends_ScrolledOutItemsAreNotHit(t *testing.T) {
	declare := func(c *layout.Context) {
		c.Begin(layout.Layout{ID: 1, Kind: layout.FlowVertical})
		c.Widget(layout.WidgetDecl{ID: 2, Content: sz(10, 100), Render: hover})
		c.Begin(layout.Layout{ID: 3, Kind: layout.Scroll, Offset: geom.Point{Y: 100}})
		for id := uint64(10); id < 14; id++ {
			c.Widget(layout.WidgetDecl{ID: id, Content: sz(10, 50), Render: hover})
		}
		c.End()
		c.End()
	}
	tests := []struct {
		name    string
		mouse   geom.Point
		clicked uint64
	}{
		// item 10 is scrolled up over item 2 but clipped away
		{"above the viewport", geom.Point{X: 5, Y: 5}, 2},
		{"inside the viewport", geom.Point{X: 5, Y: 120}, 12},
	}

	for _, b := range backends {
		for _, tt := range tests {
			t.Run(b.name+"/"+tt.name, func(t *testing.T) {
				c := layout.New(layout.Options{
					Viewport: geom.R(0, 0, 100, 200),
					Provider: styled,
					Solver:   b.solver(),
				})
				declare(c)
				if got := c.Frame().Boxes[10].Border; !got.Contains(5, 5) {
					t.Fatalf("scrolled item 10 = %+v, want it over (5,5)", got)
				}

				c.SetInput(layout.Input{Mouse: tt.mouse, Released: true})
				if !c.Clicked(tt.clicked) {
					t.Errorf("release at %v did not click %d", tt.mouse, tt.clicked)
				}
				if c.Clicked(10) && tt.clicked != 10 {
					t.Errorf("release at %v clicked clipped item 10", tt.mouse)
				}
				if c.StateOf(10)&style.StateHover != 0 {
					t.Errorf("clipped item 10 is hovered")
				}

				declare(c)
				res := c.Frame().Results
				if !res[tt.clicked].Hovered {
					t.Errorf("item %d rendered without hover", tt.clicked)
				}
				if res[10].Hovered {
					t.Errorf("clipped item 10 rendered with the pointer over it")
				}
			})
		}
	}
}

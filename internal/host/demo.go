package host

import (
	"fmt"

	"weft/pkg/geom"
	"weft/pkg/layout"
	"weft/pkg/style"
	"weft/pkg/widget"
)

// DemoSheet styles the demo for pixel output.
const DemoSheet = `
* { color: #1f2328; }
region { background: #f6f8fa; border: 1; border-color: #d0d7de; padding: 8; radius: 6; }
button { background: #0969da; color: #ffffff; padding: 4 12; radius: 4; }
button:hover { background: #0860ca; }
button:active { background: #0550ae; }
separator { color: #d0d7de; }
#50 { height: 120; overflow: hidden; }
`

// DemoCellSheet styles the demo for terminal cells.
const DemoCellSheet = `
region { border: 1; border-color: #888888; padding: 0 1; }
button { background: #0969da; color: #ffffff; padding: 0 1; }
separator { color: #888888; }
#50 { height: 6; }
`

// Demo ids.
const (
	idRoot      = 1
	idTitle     = 2
	idRule      = 3
	idToolbar   = 10
	idAdd       = 11
	idReset     = 12
	idWrap      = 13
	idCount     = 14
	idGrid      = 20
	idGridHead  = 21
	idGridCells = 22
	idTags      = 30
	idTagItems  = 31
	idList      = 50
	idListItems = 51
)

// Demo is the built-in scene: a toolbar, a grid panel, a wrapping tag row
// and a scrolling list. Cells switches spacing to terminal units.
type Demo struct {
	Cells  bool
	Scroll float64

	clicks int
	wrap   bool
}

// Clicks returns how many times Add was pressed since the last Reset.
func (d *Demo) Clicks() int { return d.clicks }

// Frame declares the demo into c.
func (d *Demo) Frame(c *layout.Context) error {
	hgap, vgap := 8.0, 8.0
	if d.Cells {
		hgap, vgap = 1, 0
	}

	c.Begin(layout.Layout{ID: idRoot, Kind: layout.FlowVertical, Sizing: layout.Expand, Spacing: vgap})

	c.PushTextType(style.TextHeading)
	widget.Label(c, idTitle, "weft", 0)
	c.PopTextType()
	widget.Separator(c, idRule, layout.ExpandX)

	c.Begin(layout.Layout{
		ID:      idToolbar,
		Kind:    layout.FlowHorizontal,
		Sizing:  layout.ExpandX,
		Spacing: hgap,
		Cross:   style.AlignCenter,
	})
	if widget.Button(c, idAdd, "Add", 0) {
		d.clicks++
	}
	if widget.Button(c, idReset, "Reset", 0) {
		d.clicks = 0
	}
	widget.Checkbox(c, idWrap, "Wrap tags", &d.wrap, 0)
	widget.Label(c, idCount, fmt.Sprintf("%d clicks", d.clicks), layout.FromRight)
	c.End()

	widget.Panel(c, layout.Layout{
		ID:      idGrid,
		Kind:    layout.Grid,
		Sizing:  layout.ExpandX,
		Spacing: hgap,
		Grid:    layout.GridSpec{Cols: 3},
	}, func() {
		c.Cell(0, 0, 1, 3)
		widget.Label(c, idGridHead, "Grid with a spanning header", 0)
		for i := 0; i < 6; i++ {
			widget.Label(c, uint64(idGridCells+i), fmt.Sprintf("cell %d", i+1), 0)
		}
	})

	overflow := layout.OverflowVisible
	if d.wrap {
		overflow = layout.OverflowWrap
	}
	widget.Panel(c, layout.Layout{
		ID:       idTags,
		Kind:     layout.FlowHorizontal,
		Sizing:   layout.ExpandX,
		Spacing:  hgap,
		Overflow: overflow,
	}, func() {
		for i := 0; i < 12; i++ {
			widget.Label(c, uint64(idTagItems+i), fmt.Sprintf("tag-%02d", i+1), 0)
		}
	})

	widget.Panel(c, layout.Layout{
		ID:     idList,
		Kind:   layout.Scroll,
		Sizing: layout.ExpandX,
		Offset: geom.Point{Y: d.Scroll},
	}, func() {
		for i := 0; i < 20; i++ {
			widget.Label(c, uint64(idListItems+i), fmt.Sprintf("list row %d", i+1), 0)
		}
	})

	c.End()
	return nil
}

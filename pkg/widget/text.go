package widget

import (
	"image/color"

	"weft/pkg/boxmodel"
	"weft/pkg/draw"
	"weft/pkg/geom"
	"weft/pkg/layout"
	"weft/pkg/style"
)

// checkGap separates a checkbox square from its label.
const checkGap = 4

type textData struct {
	text string
	size geom.Size // measured at declaration
}

type checkData struct {
	textData
	checked bool
}

// measureInto returns a Measure func that records the measured size in d.
func measureInto(c *layout.Context, d *textData, extra float64) func(*style.Style) geom.Size {
	return func(st *style.Style) geom.Size {
		d.size = c.MeasureText(d.text, st, 0)
		return geom.Size{Width: d.size.Width + extra, Height: d.size.Height}
	}
}

// Label declares a line of text.
func Label(c *layout.Context, id uint64, s string, sz layout.Sizing) int {
	d := &textData{text: s}
	return c.Widget(layout.WidgetDecl{
		ID:      id,
		Kind:    KindLabel,
		Sizing:  sz,
		State:   c.StateOf(id),
		Measure: measureInto(c, d, 0),
		Data:    d,
		Render:  renderLabel,
	})
}

// Button declares a push button and reports whether it was clicked this
// frame, judged against the previous frame's geometry.
func Button(c *layout.Context, id uint64, s string, sz layout.Sizing) bool {
	d := &textData{text: s}
	c.Widget(layout.WidgetDecl{
		ID:      id,
		Kind:    KindButton,
		Sizing:  sz,
		State:   c.StateOf(id),
		Measure: measureInto(c, d, 0),
		Data:    d,
		Render:  renderButton,
	})
	return c.Clicked(id)
}

// Checkbox declares a labelled check box bound to checked, toggling it
// when clicked. It reports whether the value changed.
func Checkbox(c *layout.Context, id uint64, s string, checked *bool, sz layout.Sizing) bool {
	changed := c.Clicked(id)
	if changed {
		*checked = !*checked
	}
	state := c.StateOf(id)
	if *checked {
		state |= style.StateChecked
	}
	d := &checkData{textData: textData{text: s}, checked: *checked}
	// The prefix has to be known before the widget is declared, so the
	// square is sized from the label's line height up front.
	st := c.Resolve(id, KindCheckbox, state)
	prefix := c.MeasureText(s, &st, 0).Height + checkGap
	c.Widget(layout.WidgetDecl{
		ID:      id,
		Kind:    KindCheckbox,
		Sizing:  sz,
		State:   state,
		Measure: measureInto(c, &d.textData, prefix),
		Prefix:  prefix,
		Data:    d,
		Render:  renderCheckbox,
	})
	return changed
}

// drawText draws d inside rect according to the style's text alignment,
// centred vertically.
func drawText(r draw.Renderer, st *style.Style, rect geom.Rect, d *textData) {
	if d.text == "" {
		return
	}
	x := rect.X
	switch st.TextAlign {
	case style.AlignCenter:
		x += (rect.Width - d.size.Width) / 2
	case style.AlignEnd:
		x += rect.Width - d.size.Width
	}
	y := rect.Y + (rect.Height-d.size.Height)/2
	r.PushFont(layout.FontOf(st))
	r.Text(d.text, x, y, st.Foreground)
	r.PopFont()
}

func renderLabel(_ uint64, data any, st *style.Style, box boxmodel.BoxModel, r draw.Renderer, in layout.Input) layout.Result {
	paintBox(r, st, box)
	drawText(r, st, box.Text, data.(*textData))
	return layout.Result{Hovered: hovered(box, in)}
}

func renderButton(_ uint64, data any, st *style.Style, box boxmodel.BoxModel, r draw.Renderer, in layout.Input) layout.Result {
	paintBox(r, st, box)
	centred := *st
	if centred.TextAlign == style.AlignStart {
		centred.TextAlign = style.AlignCenter
	}
	drawText(r, &centred, box.Text, data.(*textData))
	return result(box, in)
}

func renderCheckbox(_ uint64, data any, st *style.Style, box boxmodel.BoxModel, r draw.Renderer, in layout.Input) layout.Result {
	d := data.(*checkData)
	paintBox(r, st, box)

	side := min(box.Prefix.Width-checkGap, box.Prefix.Height)
	sq := geom.R(box.Prefix.X, box.Prefix.Y+(box.Prefix.Height-side)/2, side, side)
	r.Rect(sq, color.RGBA{255, 255, 255, 255})
	r.StrokeRect(sq.Inset(geom.EdgeAll(0.5)), 1, ink(st))
	if d.checked {
		r.Line(sq.X+side*0.2, sq.Y+side*0.55, sq.X+side*0.45, sq.Y+side*0.8, 2, st.Foreground)
		r.Line(sq.X+side*0.45, sq.Y+side*0.8, sq.X+side*0.8, sq.Y+side*0.25, 2, st.Foreground)
	}
	drawText(r, st, box.Text, &d.textData)

	res := result(box, in)
	res.Changed = res.Clicked
	return res
}

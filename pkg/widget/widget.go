// Package widget provides the reference widgets declared through a
// layout.Context and the registry mapping widget kinds to their render
// entry points.
package widget

import (
	"fmt"
	"image/color"
	"sort"

	"weft/pkg/boxmodel"
	"weft/pkg/draw"
	"weft/pkg/layout"
	"weft/pkg/style"
)

// Widget kinds, also used as style sheet selectors.
const (
	KindLabel     = "label"
	KindButton    = "button"
	KindCheckbox  = "checkbox"
	KindImage     = "image"
	KindSeparator = "separator"
)

// Registry maps widget kinds to render entry points.
type Registry struct {
	funcs map[string]layout.RenderFunc
}

// NewRegistry returns a registry holding the reference widgets.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]layout.RenderFunc)}
	r.Register(KindLabel, renderLabel)
	r.Register(KindButton, renderButton)
	r.Register(KindCheckbox, renderCheckbox)
	r.Register(KindImage, renderImage)
	r.Register(KindSeparator, renderSeparator)
	return r
}

// Register binds kind to fn, replacing any earlier binding.
func (r *Registry) Register(kind string, fn layout.RenderFunc) {
	r.funcs[kind] = fn
}

// Lookup returns the entry point for kind.
func (r *Registry) Lookup(kind string) (layout.RenderFunc, bool) {
	fn, ok := r.funcs[kind]
	return fn, ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.funcs))
	for k := range r.funcs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Declare declares d, filling in its render entry point from its kind
// when it has none.
func (r *Registry) Declare(c *layout.Context, d layout.WidgetDecl) (int, error) {
	if d.Render == nil {
		fn, ok := r.funcs[d.Kind]
		if !ok {
			return -1, fmt.Errorf("widget: unknown kind %q", d.Kind)
		}
		d.Render = fn
	}
	return c.Widget(d), nil
}

func hovered(box boxmodel.BoxModel, in layout.Input) bool {
	return box.Border.Contains(in.Mouse.X, in.Mouse.Y)
}

func result(box boxmodel.BoxModel, in layout.Input) layout.Result {
	h := hovered(box, in)
	return layout.Result{
		Hovered: h,
		Active:  h && in.Down,
		Clicked: h && in.Released,
	}
}

// paintBox fills and strokes the border box the way regions are painted.
func paintBox(r draw.Renderer, st *style.Style, box boxmodel.BoxModel) {
	if st.Background.A > 0 {
		if st.Radius > 0 {
			r.RoundedRect(box.Border, st.Radius, st.Background)
		} else {
			r.Rect(box.Border, st.Background)
		}
	}
	if st.BorderColor.A > 0 {
		draw.Border(r, box.Border, box.Padding, st.Border, st.BorderColor)
	}
}

// ink is the color used for strokes that have no color of their own.
func ink(st *style.Style) color.RGBA {
	if st.BorderColor.A > 0 {
		return st.BorderColor
	}
	return st.Foreground
}

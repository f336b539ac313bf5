package script

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"weft/pkg/geom"
	"weft/pkg/layout"
	"weft/pkg/style"
	"weft/pkg/widget"
)

// Scene declares a frame from a script. The script defines a global
// function frame() which calls the declaration bindings:
//
//	column({id: 1, sizing: "expand", spacing: 4}, function() {
//	    label(2, "Hello");
//	    if (button(3, "Quit")) console.log("bye");
//	    checkbox(4, "Wrap", "wrap");
//	    grid({id: 5, cols: 2, region: true}, function() {
//	        cell(0, 0, 1, 2); label(6, "wide");
//	    });
//	});
//
// Containers are row, column, grid and scroll; each takes a layout object
// and a body function. A script error mid-frame leaves containers open, so
// the context should be discarded.
type Scene struct {
	engine *Engine
	frame  goja.Callable
	ctx    *layout.Context
	images *widget.ImageCache
	checks map[string]bool
}

// NewScene runs src in e and binds its frame function.
func NewScene(e *Engine, src string, images *widget.ImageCache) (*Scene, error) {
	s := &Scene{engine: e, images: images, checks: make(map[string]bool)}
	if s.images == nil {
		s.images = widget.NewImageCache()
	}
	s.bind()
	if err := e.Run("scene", src); err != nil {
		return nil, err
	}
	fn, err := e.Func("frame")
	if err != nil {
		return nil, err
	}
	s.frame = fn
	return s, nil
}

// Frame declares one frame into c.
func (s *Scene) Frame(c *layout.Context) error {
	s.ctx = c
	defer func() { s.ctx = nil }()
	if _, err := s.frame(goja.Undefined()); err != nil {
		return fmt.Errorf("script frame: %w", err)
	}
	return nil
}

// Checked returns the value of a checkbox key.
func (s *Scene) Checked(key string) bool { return s.checks[key] }

func (s *Scene) bind() {
	vm := s.engine.vm
	container := func(kind layout.Kind) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			l := s.layoutOf(call.Argument(0))
			l.Kind = kind
			s.context().Begin(l)
			s.call(call.Argument(1))
			s.ctx.End()
			return goja.Undefined()
		}
	}
	vm.Set("row", container(layout.FlowHorizontal))
	vm.Set("column", container(layout.FlowVertical))
	vm.Set("grid", container(layout.Grid))
	vm.Set("scroll", container(layout.Scroll))

	vm.Set("cell", func(call goja.FunctionCall) goja.Value {
		span := func(i int) int {
			if v := call.Argument(i); !goja.IsUndefined(v) {
				return max(int(v.ToInteger()), 1)
			}
			return 1
		}
		s.context().Cell(int(call.Argument(0).ToInteger()), int(call.Argument(1).ToInteger()), span(2), span(3))
		return goja.Undefined()
	})
	vm.Set("label", func(call goja.FunctionCall) goja.Value {
		widget.Label(s.context(), argID(call, 0), argString(call, 1), s.sizing(argString(call, 2)))
		return goja.Undefined()
	})
	vm.Set("button", func(call goja.FunctionCall) goja.Value {
		clicked := widget.Button(s.context(), argID(call, 0), argString(call, 1), s.sizing(argString(call, 2)))
		return vm.ToValue(clicked)
	})
	vm.Set("checkbox", func(call goja.FunctionCall) goja.Value {
		key := argString(call, 2)
		v := s.checks[key]
		changed := widget.Checkbox(s.context(), argID(call, 0), argString(call, 1), &v, s.sizing(argString(call, 3)))
		s.checks[key] = v
		return vm.ToValue(changed)
	})
	vm.Set("checked", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(s.checks[argString(call, 0)])
	})
	vm.Set("separator", func(call goja.FunctionCall) goja.Value {
		widget.Separator(s.context(), argID(call, 0), s.sizing(argString(call, 1)))
		return goja.Undefined()
	})
	vm.Set("image", func(call goja.FunctionCall) goja.Value {
		_, err := widget.ImageFile(s.context(), argID(call, 0), s.images, argString(call, 1), s.sizing(argString(call, 2)))
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})

	vm.Set("pushStyle", func(call goja.FunctionCall) goja.Value {
		var st style.Style
		if obj, ok := call.Argument(0).(*goja.Object); ok {
			for _, k := range obj.Keys() {
				if err := st.Set(kebab(k), obj.Get(k).String()); err != nil {
					panic(vm.NewTypeError(err.Error()))
				}
			}
		}
		var bits style.State
		if name := argString(call, 1); name != "" {
			b, ok := style.ParseState(name)
			if !ok {
				panic(vm.NewTypeError("unknown state %q", name))
			}
			bits = b
		}
		s.context().PushStyle(st, bits)
		return goja.Undefined()
	})
	vm.Set("popStyle", func(goja.FunctionCall) goja.Value {
		s.context().PopStyle()
		return goja.Undefined()
	})
	vm.Set("textType", func(call goja.FunctionCall) goja.Value {
		name := argString(call, 0)
		tt, ok := textTypes[name]
		if !ok {
			panic(vm.NewTypeError("unknown text type %q", name))
		}
		s.context().PushTextType(tt)
		s.call(call.Argument(1))
		s.ctx.PopTextType()
		return goja.Undefined()
	})
}

func argString(call goja.FunctionCall, i int) string {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}

func argID(call goja.FunctionCall, i int) uint64 {
	return uint64(call.Argument(i).ToInteger())
}

var textTypes = map[string]style.TextType{
	"body":    style.TextBody,
	"heading": style.TextHeading,
	"caption": style.TextCaption,
	"mono":    style.TextMono,
}

var sizingNames = map[string]layout.Sizing{
	"expand":     layout.Expand,
	"expandX":    layout.ExpandX,
	"expandY":    layout.ExpandY,
	"shrinkX":    layout.ShrinkX,
	"shrinkY":    layout.ShrinkY,
	"left":       layout.AlignLeft,
	"centerX":    layout.AlignCenterX,
	"right":      layout.AlignRight,
	"top":        layout.AlignTop,
	"middle":     layout.AlignMiddle,
	"bottom":     layout.AlignBottom,
	"fromRight":  layout.FromRight,
	"fromBottom": layout.FromBottom,
}

var alignNames = map[string]style.Align{
	"start":   style.AlignStart,
	"center":  style.AlignCenter,
	"end":     style.AlignEnd,
	"stretch": style.AlignStretch,
	"justify": style.AlignStretch,
}

func (s *Scene) context() *layout.Context {
	if s.ctx == nil {
		panic(s.engine.vm.NewTypeError("declaration outside frame()"))
	}
	return s.ctx
}

// call runs a body function, rethrowing its exception into the caller.
func (s *Scene) call(body goja.Value) {
	fn, ok := goja.AssertFunction(body)
	if !ok {
		return
	}
	if _, err := fn(goja.Undefined()); err != nil {
		if ex, ok := err.(*goja.Exception); ok {
			panic(ex.Value())
		}
		panic(s.engine.vm.NewGoError(err))
	}
}

// sizing parses flags such as "expandX|right".
func (s *Scene) sizing(spec string) layout.Sizing {
	var sz layout.Sizing
	for _, name := range strings.FieldsFunc(spec, func(r rune) bool { return r == '|' || r == ' ' || r == ',' }) {
		f, ok := sizingNames[name]
		if !ok {
			panic(s.engine.vm.NewTypeError("unknown sizing %q", name))
		}
		sz |= f
	}
	return sz
}

func (s *Scene) layoutOf(v goja.Value) layout.Layout {
	vm := s.engine.vm
	var l layout.Layout
	obj, ok := v.(*goja.Object)
	if !ok {
		return l
	}
	get := func(k string) goja.Value {
		v := obj.Get(k)
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			return nil
		}
		return v
	}
	num := func(k string) float64 {
		if v := get(k); v != nil {
			return v.ToFloat()
		}
		return 0
	}
	align := func(k string) style.Align {
		v := get(k)
		if v == nil {
			return style.AlignStart
		}
		a, ok := alignNames[v.String()]
		if !ok {
			panic(vm.NewTypeError("unknown alignment %q", v.String()))
		}
		return a
	}
	floats := func(k string) []float64 {
		var out []float64
		if v := get(k); v != nil {
			if err := vm.ExportTo(v, &out); err != nil {
				panic(vm.NewTypeError("%s: %v", k, err))
			}
		}
		return out
	}

	l.ID = uint64(num("id"))
	if v := get("sizing"); v != nil {
		l.Sizing = s.sizing(v.String())
	}
	l.Align = align("align")
	l.Cross = align("cross")
	l.Spacing = num("spacing")
	if v := get("overflow"); v != nil {
		switch v.String() {
		case "visible":
		case "wrap":
			l.Overflow = layout.OverflowWrap
		case "clip":
			l.Overflow = layout.OverflowClip
		default:
			panic(vm.NewTypeError("unknown overflow %q", v.String()))
		}
	}
	if v := get("region"); v != nil {
		l.Region = v.ToBoolean()
	}
	l.Grid = layout.GridSpec{
		Rows:     int(num("rows")),
		Cols:     int(num("cols")),
		RowSizes: floats("rowSizes"),
		ColSizes: floats("colSizes"),
	}
	if v := get("columnMajor"); v != nil {
		l.Grid.ColumnMajor = v.ToBoolean()
	}
	l.Offset = geom.Point{X: num("offsetX"), Y: num("offsetY")}
	return l
}

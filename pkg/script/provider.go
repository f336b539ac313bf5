package script

import (
	"log"
	"strings"
	"unicode"

	"github.com/dop251/goja"

	"weft/pkg/style"
)

// Provider is a style.Provider that asks a script function for
// declarations and merges them over a base provider's record.
//
// The function is called as style(target, snapshot, state) with
//
//	target   {id, kind}
//	snapshot {depth, textType, ignored}
//	state    {name, hover, active, focus, disabled, checked}
//
// and returns an object of sheet declarations, for example
// {background: "#223344", padding: "4 8"}, or nothing. camelCase keys are
// accepted for hyphenated properties. The function must be deterministic:
// it runs once when a widget is sized and again on every replay.
type Provider struct {
	engine *Engine
	fn     goja.Callable
	base   style.Provider
	warned map[string]bool
}

// NewProvider runs src in e and binds its style function.
func NewProvider(e *Engine, src string, base style.Provider) (*Provider, error) {
	if err := e.Run("style", src); err != nil {
		return nil, err
	}
	fn, err := e.Func("style")
	if err != nil {
		return nil, err
	}
	if base == nil {
		base = style.NewCascade()
	}
	return &Provider{engine: e, fn: fn, base: base, warned: make(map[string]bool)}, nil
}

// Style implements style.Provider. Script errors are logged once and the
// base record is returned unchanged.
func (p *Provider) Style(t style.Target, snap style.Snapshot, state style.State) style.Style {
	out := p.base.Style(t, snap, state)
	vm := p.engine.vm
	v, err := p.fn(goja.Undefined(),
		vm.ToValue(map[string]any{"id": t.ID, "kind": t.Kind}),
		vm.ToValue(map[string]any{
			"depth":    len(snap.Entries),
			"textType": textTypeName(snap.TextType),
			"ignored":  snap.Ignored,
		}),
		vm.ToValue(map[string]any{
			"name":     state.String(),
			"hover":    state&style.StateHover != 0,
			"active":   state&style.StateActive != 0,
			"focus":    state&style.StateFocus != 0,
			"disabled": state&style.StateDisabled != 0,
			"checked":  state&style.StateChecked != 0,
		}),
	)
	if err != nil {
		p.warn(err.Error())
		return out
	}
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return out
	}
	obj := v.ToObject(vm)
	var rec style.Style
	for _, k := range obj.Keys() {
		if err := rec.Set(kebab(k), obj.Get(k).String()); err != nil {
			p.warn(err.Error())
		}
	}
	out.Merge(&rec)
	return out
}

func (p *Provider) warn(msg string) {
	if !p.warned[msg] {
		p.warned[msg] = true
		log.Printf("script: style: %s", msg)
	}
}

func textTypeName(tt style.TextType) string {
	switch tt {
	case style.TextHeading:
		return "heading"
	case style.TextCaption:
		return "caption"
	case style.TextMono:
		return "mono"
	}
	return "body"
}

// kebab turns fontSize into font-size.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

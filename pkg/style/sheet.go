package style

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"weft/pkg/geom"
)

// SelectorType says what a sheet selector matches on.
type SelectorType int

const (
	UniversalSelector SelectorType = iota // *
	KindSelector                          // button, label
	IDSelector                            // #42
)

// Selector matches widgets by kind or id, optionally restricted to a state.
type Selector struct {
	Raw         string
	Type        SelectorType
	Value       string
	State       State
	Specificity int
}

// Matches reports whether the selector applies to t in state.
func (sel Selector) Matches(t Target, state State) bool {
	if sel.State != 0 && !sel.State.Matches(state) {
		return false
	}
	switch sel.Type {
	case KindSelector:
		return sel.Value == t.Kind
	case IDSelector:
		return sel.Value == strconv.FormatUint(t.ID, 10)
	default:
		return true
	}
}

// Rule is a selector plus the record its declarations produce.
type Rule struct {
	Selector Selector
	Style    Style
}

// Sheet is a Provider that layers parsed rules over another provider.
type Sheet struct {
	Rules []Rule
	Base  Provider
}

// ParseSheet parses a small CSS-like sheet:
//
//	button { padding: 4 8; background: #223344; }
//	button:hover { background: navy; }
//	#7 { width: 120; }
//
// Malformed rules and unknown properties are reported together; the valid
// rules are still returned.
func ParseSheet(src string, base Provider) (*Sheet, error) {
	if base == nil {
		base = NewCascade()
	}
	sheet := &Sheet{Base: base}
	var errs []string
	for i, ruleStr := range splitRules(stripComments(src)) {
		rule, err := parseRule(ruleStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("rule %d: %v", i, err))
			continue
		}
		sheet.Rules = append(sheet.Rules, rule)
	}
	sort.SliceStable(sheet.Rules, func(i, j int) bool {
		return sheet.Rules[i].Selector.Specificity < sheet.Rules[j].Selector.Specificity
	})
	if len(errs) > 0 {
		return sheet, fmt.Errorf("style sheet: %s", strings.Join(errs, "; "))
	}
	return sheet, nil
}

// Style implements Provider. Rules apply after the stack cascade, lowest
// specificity first.
func (s *Sheet) Style(t Target, snap Snapshot, state State) Style {
	out := s.Base.Style(t, snap, state)
	for i := range s.Rules {
		if s.Rules[i].Selector.Matches(t, state) {
			out.Merge(&s.Rules[i].Style)
		}
	}
	return out
}

func stripComments(src string) string {
	var b strings.Builder
	for {
		start := strings.Index(src, "/*")
		if start < 0 {
			b.WriteString(src)
			return b.String()
		}
		b.WriteString(src[:start])
		end := strings.Index(src[start+2:], "*/")
		if end < 0 {
			return b.String()
		}
		src = src[start+2+end+2:]
	}
}

// splitRules splits the sheet into "selector { ... }" chunks.
func splitRules(src string) []string {
	var rules []string
	depth := 0
	start := 0
	for i, ch := range src {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if chunk := strings.TrimSpace(src[start : i+1]); chunk != "" {
					rules = append(rules, chunk)
				}
				start = i + 1
			}
		}
	}
	return rules
}

func parseRule(ruleStr string) (Rule, error) {
	brace := strings.Index(ruleStr, "{")
	if brace == -1 {
		return Rule{}, fmt.Errorf("no opening brace")
	}
	sel, err := parseSelector(strings.TrimSpace(ruleStr[:brace]))
	if err != nil {
		return Rule{}, err
	}
	end := strings.LastIndex(ruleStr, "}")
	if end < brace {
		end = len(ruleStr)
	}
	st, err := parseDeclarations(ruleStr[brace+1 : end])
	if err != nil {
		return Rule{}, err
	}
	return Rule{Selector: sel, Style: st}, nil
}

func parseSelector(raw string) (Selector, error) {
	sel := Selector{Raw: raw}
	name := raw
	if i := strings.Index(raw, ":"); i >= 0 {
		name = raw[:i]
		for _, part := range strings.Split(raw[i+1:], ":") {
			st, ok := ParseState(part)
			if !ok {
				return sel, fmt.Errorf("unknown state %q in selector %q", part, raw)
			}
			sel.State |= st
			sel.Specificity += 10
		}
	}
	switch {
	case name == "" || name == "*":
		sel.Type = UniversalSelector
	case strings.HasPrefix(name, "#"):
		if _, err := strconv.ParseUint(name[1:], 10, 64); err != nil {
			return sel, fmt.Errorf("id selector %q is not numeric", raw)
		}
		sel.Type = IDSelector
		sel.Value = name[1:]
		sel.Specificity += 100
	default:
		sel.Type = KindSelector
		sel.Value = name
		sel.Specificity++
	}
	return sel, nil
}

// parseDeclarations turns "prop: value; ..." into a record with Props set.
func parseDeclarations(decl string) (Style, error) {
	var st Style
	for _, part := range strings.Split(decl, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.Index(part, ":")
		if colon == -1 {
			return st, fmt.Errorf("declaration %q has no colon", part)
		}
		prop := strings.TrimSpace(part[:colon])
		val := strings.TrimSpace(part[colon+1:])
		if err := applyDeclaration(&st, prop, val); err != nil {
			return st, err
		}
	}
	return st, nil
}

// Set applies one sheet declaration, such as Set("padding", "4 8"), to s.
func (s *Style) Set(prop, val string) error {
	return applyDeclaration(s, strings.TrimSpace(prop), strings.TrimSpace(val))
}

func applyDeclaration(st *Style, prop, val string) error {
	switch prop {
	case "margin":
		e, err := parseEdges(val)
		*st = st.WithMargin(e)
		return err
	case "border", "border-width":
		e, err := parseEdges(val)
		*st = st.WithBorder(e)
		return err
	case "padding":
		e, err := parseEdges(val)
		*st = st.WithPadding(e)
		return err
	case "width":
		l, err := ParseLength(val)
		*st = st.WithWidth(l)
		return err
	case "height":
		l, err := ParseLength(val)
		*st = st.WithHeight(l)
		return err
	case "min-width", "min-height", "max-width", "max-height", "radius", "border-radius", "font-size":
		v, err := parseNumber(val)
		if err != nil {
			return err
		}
		switch prop {
		case "min-width":
			st.MinWidth, st.Props = v, st.Props|PropMinWidth
		case "min-height":
			st.MinHeight, st.Props = v, st.Props|PropMinHeight
		case "max-width":
			st.MaxWidth, st.Props = v, st.Props|PropMaxWidth
		case "max-height":
			st.MaxHeight, st.Props = v, st.Props|PropMaxHeight
		case "font-size":
			st.FontSize, st.Props = v, st.Props|PropFontSize
		default:
			*st = st.WithRadius(v)
		}
		return nil
	case "background", "color", "border-color":
		c, ok := ParseColor(val)
		if !ok {
			return fmt.Errorf("bad color %q for %s", val, prop)
		}
		switch prop {
		case "background":
			*st = st.WithBackground(c)
		case "color":
			*st = st.WithForeground(c)
		default:
			*st = st.WithBorderColor(c)
		}
		return nil
	case "font", "font-family":
		st.Font, st.Props = val, st.Props|PropFont
		return nil
	case "font-weight":
		*st = st.WithBold(val == "bold" || val == "700")
		return nil
	case "text-align":
		a, ok := parseAlign(val)
		if !ok {
			return fmt.Errorf("bad text-align %q", val)
		}
		*st = st.WithTextAlign(a)
		return nil
	case "overflow":
		*st = st.WithClip(val == "hidden" || val == "clip")
		return nil
	}
	return fmt.Errorf("unknown property %q", prop)
}

// ParseLength parses "auto", "fill", "50%" or a number with optional px.
func ParseLength(val string) (Length, error) {
	val = strings.TrimSpace(val)
	switch val {
	case "auto", "":
		return Auto(), nil
	case "fill":
		return Fill(), nil
	}
	if strings.HasSuffix(val, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if err != nil {
			return Auto(), fmt.Errorf("bad percentage %q", val)
		}
		return Percent(v), nil
	}
	v, err := parseNumber(val)
	if err != nil {
		return Auto(), err
	}
	return Px(v), nil
}

func parseNumber(val string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(val), "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", val)
	}
	return v, nil
}

// parseEdges accepts 1 to 4 values in CSS order (t, r, b, l).
func parseEdges(val string) (geom.Edges, error) {
	parts := strings.Fields(val)
	nums := make([]float64, len(parts))
	for i, p := range parts {
		v, err := parseNumber(p)
		if err != nil {
			return geom.Edges{}, err
		}
		nums[i] = v
	}
	switch len(nums) {
	case 1:
		return geom.EdgeAll(nums[0]), nil
	case 2:
		return geom.EdgeSymmetric(nums[0], nums[1]), nil
	case 3:
		return geom.Edges{Top: nums[0], Right: nums[1], Bottom: nums[2], Left: nums[1]}, nil
	case 4:
		return geom.Edges{Top: nums[0], Right: nums[1], Bottom: nums[2], Left: nums[3]}, nil
	}
	return geom.Edges{}, fmt.Errorf("edges %q need 1 to 4 values", val)
}

func parseAlign(val string) (Align, bool) {
	switch val {
	case "left", "start", "top":
		return AlignStart, true
	case "center", "middle":
		return AlignCenter, true
	case "right", "end", "bottom":
		return AlignEnd, true
	case "stretch", "justify":
		return AlignStretch, true
	}
	return AlignStart, false
}

var namedColors = map[string]color.RGBA{
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"white":       {255, 255, 255, 255},
	"black":       {0, 0, 0, 255},
	"gray":        {128, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"navy":        {0, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor accepts named colors, #rgb, #rrggbb and #rrggbbaa.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

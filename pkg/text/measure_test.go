package text

import (
	"reflect"
	"testing"

	"weft/pkg/draw"
)

func TestBreakLines(t *testing.T) {
	width := func(s string) float64 { return float64(len(s)) }
	tests := []struct {
		name string
		in   string
		max  float64
		want []string
	}{
		{"no wrap", "hello world", 0, []string{"hello world"}},
		{"fits", "hello world", 11, []string{"hello world"}},
		{"greedy", "aa bb cc dd", 5, []string{"aa bb", "cc dd"}},
		{"long word alone", "a verylongword b", 4, []string{"a", "verylongword", "b"}},
		{"newlines kept", "one\ntwo", 0, []string{"one", "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BreakLines(tt.in, tt.max, width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BreakLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFaceMeasurer_Fallback(t *testing.T) {
	m := NewFaceMeasurer(FontConfig{})
	f := draw.Font{Name: "sans", Size: 14}

	w, h := m.MeasureText("hello", f, 0)
	if w != 35 || h != 13 {
		t.Errorf("MeasureText = %v x %v, want 35 x 13", w, h)
	}

	w, h = m.MeasureText("hello there", f, 40)
	if w != 35 || h != 26 {
		t.Errorf("wrapped MeasureText = %v x %v, want 35 x 26", w, h)
	}
}

func TestFaceMeasurer_MissingFileFallsBack(t *testing.T) {
	m := NewFaceMeasurer(FontConfig{Regular: "/nonexistent/font.ttf"})
	w, _ := m.MeasureText("ab", draw.Font{Size: 20}, 0)
	if w != 14 {
		t.Errorf("width = %v, want fallback 14", w)
	}
}

func TestCellMeasurer(t *testing.T) {
	var m CellMeasurer
	tests := []struct {
		in   string
		wrap float64
		w, h float64
	}{
		{"abc", 0, 3, 1},
		{"日本", 0, 4, 1},
		{"ab cd ef", 5, 5, 2},
	}
	for _, tt := range tests {
		w, h := m.MeasureText(tt.in, draw.Font{}, tt.wrap)
		if w != tt.w || h != tt.h {
			t.Errorf("MeasureText(%q) = %v x %v, want %v x %v", tt.in, w, h, tt.w, tt.h)
		}
	}
}

func TestFontConfig_FontPath(t *testing.T) {
	fc := FontConfig{Regular: "r", Bold: "b", Mono: "m"}
	tests := []struct {
		f    draw.Font
		want string
	}{
		{draw.Font{Name: "sans"}, "r"},
		{draw.Font{Name: "sans", Bold: true}, "b"},
		{draw.Font{Name: "mono"}, "m"},
		{draw.Font{Name: "mono", Bold: true}, "m"},
	}
	for _, tt := range tests {
		if got := fc.FontPath(tt.f); got != tt.want {
			t.Errorf("FontPath(%+v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

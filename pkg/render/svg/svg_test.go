package svg

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"weft/pkg/draw"
	"weft/pkg/geom"
)

func TestDocument_Elements(t *testing.T) {
	d := New(100, 50)
	d.Rect(geom.R(1, 2, 30, 40), color.RGBA{255, 0, 0, 255})
	d.StrokeRect(geom.R(0, 0, 10, 10), 1.5, color.RGBA{0, 0, 255, 128})
	d.RoundedRect(geom.R(0, 0, 10, 10), 3, color.RGBA{0, 255, 0, 255})
	d.Circle(5, 5, 2, color.RGBA{0, 0, 0, 255})
	d.Line(0, 0, 10, 10, 1, color.RGBA{0, 0, 0, 255})
	d.PushFont(draw.Font{Name: "mono", Size: 12, Bold: true})
	d.Text("a < b & c", 4, 8, color.RGBA{0, 0, 0, 255})
	d.PopFont()
	d.Image(image.NewRGBA(image.Rect(0, 0, 2, 2)), geom.R(0, 0, 4, 4))
	out := d.String()

	tests := []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50"`,
		`<rect x="1" y="2" width="30" height="40" fill="#ff0000"/>`,
		`fill="none" stroke-width="1.5" stroke="#0000ff" stroke-opacity="0.5"`,
		`rx="3" fill="#00ff00"`,
		`<circle cx="5" cy="5" r="2" fill="#000000"/>`,
		`<line x1="0" y1="0" x2="10" y2="10"`,
		`font-family="monospace" font-size="12" font-weight="bold"`,
		`>a &lt; b &amp; c</text>`,
		`href="data:image/png;base64,`,
		"</svg>\n",
	}
	for _, want := range tests {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestDocument_ClipGroups(t *testing.T) {
	d := New(10, 10)
	d.PushClip(geom.R(0, 0, 5, 5))
	d.PushClip(geom.R(1, 1, 2, 2))
	d.Rect(geom.R(0, 0, 10, 10), color.RGBA{A: 255})
	d.PopClip()
	d.PopClip()
	d.PopClip()
	out := d.String()

	if got := strings.Count(out, "<clipPath"); got != 2 {
		t.Errorf("clipPath count = %d, want 2", got)
	}
	if opened, closed := strings.Count(out, "<g "), strings.Count(out, "</g>"); opened != closed {
		t.Errorf("groups unbalanced: %d opened, %d closed", opened, closed)
	}
	if !strings.Contains(out, `<g clip-path="url(#clip1)">`) {
		t.Errorf("inner group missing\n%s", out)
	}
}

func TestDocument_ClosesOpenGroups(t *testing.T) {
	d := New(10, 10)
	d.PushClip(geom.R(0, 0, 5, 5))
	out := d.String()
	if strings.Count(out, "</g>") != 1 {
		t.Errorf("open group not closed\n%s", out)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{1.5, "1.5"},
		{0.126, "0.13"},
		{-2, "-2"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

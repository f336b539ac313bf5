package widget

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"weft/pkg/boxmodel"
	"weft/pkg/draw"
	"weft/pkg/geom"
	"weft/pkg/layout"
	"weft/pkg/style"
)

// fixedMeasurer makes every glyph 7 wide and every line 10 high.
type fixedMeasurer struct{}

func (fixedMeasurer) MeasureText(s string, _ draw.Font, _ float64) (float64, float64) {
	return float64(7 * len(s)), 10
}

func newContext(t *testing.T, sheet string) (*layout.Context, *draw.Queue) {
	t.Helper()
	var provider style.Provider = style.NewCascade()
	if sheet != "" {
		s, err := style.ParseSheet(sheet, nil)
		if err != nil {
			t.Fatal(err)
		}
		provider = s
	}
	c := layout.New(layout.Options{
		Viewport: geom.R(0, 0, 200, 100),
		Provider: provider,
		Measurer: fixedMeasurer{},
	})
	q := draw.NewQueue(64, 8)
	c.SetRenderer(q)
	return c, q
}

func frame(c *layout.Context, q *draw.Queue, body func()) {
	q.Reset()
	c.Begin(layout.Layout{ID: 1, Kind: layout.FlowVertical, Sizing: layout.Expand})
	body()
	c.End()
}

func ops(q *draw.Queue, op draw.Op) []draw.Command {
	var out []draw.Command
	for _, cmd := range q.Commands() {
		if cmd.Op == op {
			out = append(out, cmd)
		}
	}
	return out
}

func TestLabel_TextAlign(t *testing.T) {
	tests := []struct {
		align string
		wantX float64
	}{
		{"start", 0},
		{"center", 93},
		{"end", 186},
	}
	for _, tt := range tests {
		t.Run(tt.align, func(t *testing.T) {
			c, q := newContext(t, "label { text-align: "+tt.align+"; }")
			frame(c, q, func() { Label(c, 2, "hi", layout.ExpandX) })

			texts := ops(q, draw.OpText)
			if len(texts) != 1 {
				t.Fatalf("got %d text commands, want 1", len(texts))
			}
			if texts[0].X1 != tt.wantX || texts[0].Text != "hi" {
				t.Errorf("text %q at x=%v, want x=%v", texts[0].Text, texts[0].X1, tt.wantX)
			}
		})
	}
}

func TestButton_ClickUsesPreviousFrame(t *testing.T) {
	c, q := newContext(t, "button { background: #336699; padding: 2; }")
	var clicked bool
	declare := func() { clicked = Button(c, 2, "ok", 0) }

	frame(c, q, declare)
	if clicked {
		t.Fatal("clicked before any input")
	}
	if got := c.Frame().Boxes[2].Border; got != geom.R(0, 0, 18, 14) {
		t.Fatalf("button border = %+v", got)
	}
	if rects := ops(q, draw.OpRect); len(rects) != 1 || rects[0].Color != (color.RGBA{0x33, 0x66, 0x99, 255}) {
		t.Errorf("background not painted: %+v", rects)
	}

	c.SetInput(layout.Input{Mouse: geom.Point{X: 5, Y: 5}, Released: true})
	frame(c, q, declare)
	if !clicked {
		t.Error("release over the button was not a click")
	}
	if res := c.Frame().Results[2]; !res.Clicked || !res.Hovered {
		t.Errorf("render result = %+v", res)
	}

	c.SetInput(layout.Input{Mouse: geom.Point{X: 150, Y: 50}, Released: true})
	frame(c, q, declare)
	if clicked {
		t.Error("release outside the button counted as a click")
	}
}

func TestCheckbox_Toggles(t *testing.T) {
	c, q := newContext(t, "")
	on := false
	var changed bool
	declare := func() { changed = Checkbox(c, 2, "wrap", &on, 0) }

	frame(c, q, declare)
	box := c.Frame().Boxes[2]
	if box.Prefix.Width != 14 || box.Text.X != 14 {
		t.Fatalf("prefix = %+v text = %+v", box.Prefix, box.Text)
	}
	if box.Border.Width != 14+28 {
		t.Errorf("width = %v, want 42", box.Border.Width)
	}

	c.SetInput(layout.Input{Mouse: geom.Point{X: 3, Y: 3}, Released: true})
	frame(c, q, declare)
	if !changed || !on {
		t.Fatalf("changed=%v on=%v after click", changed, on)
	}
	if lines := ops(q, draw.OpLine); len(lines) != 2 {
		t.Errorf("check mark drew %d lines, want 2", len(lines))
	}

	c.SetInput(layout.Input{})
	frame(c, q, declare)
	if changed || !on {
		t.Errorf("changed=%v on=%v without a click", changed, on)
	}
}

func TestCheckbox_CheckedState(t *testing.T) {
	c, q := newContext(t, "checkbox:checked { color: #ff0000; }")
	on := true
	frame(c, q, func() { Checkbox(c, 2, "x", &on, 0) })

	texts := ops(q, draw.OpText)
	if len(texts) != 1 || texts[0].Color != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("checked style not applied: %+v", texts)
	}
}

func TestSeparator_SpansColumn(t *testing.T) {
	c, q := newContext(t, "")
	frame(c, q, func() {
		Label(c, 2, "a", 0)
		Separator(c, 3, layout.ExpandX)
	})
	if got := c.Frame().Boxes[3].Content; got != geom.R(0, 10, 200, 1) {
		t.Errorf("separator = %+v", got)
	}
}

func TestPanel_PaintsRegion(t *testing.T) {
	c, q := newContext(t, "region { background: #00ff00; padding: 4; }")
	frame(c, q, func() {
		Panel(c, layout.Layout{ID: 5, Kind: layout.FlowHorizontal}, func() {
			Label(c, 6, "in", 0)
		})
	})
	if got := c.Frame().Boxes[6].Border.Origin(); got != (geom.Point{X: 4, Y: 4}) {
		t.Errorf("label origin = %+v", got)
	}
	rects := ops(q, draw.OpRect)
	if len(rects) == 0 || rects[0].Color != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("panel background missing: %+v", rects)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	want := []string{"button", "checkbox", "image", "label", "separator"}
	if got := r.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("Kinds() = %v", got)
	}

	var rendered bool
	r.Register("dot", func(uint64, any, *style.Style, boxmodel.BoxModel, draw.Renderer, layout.Input) layout.Result {
		rendered = true
		return layout.Result{}
	})
	c, q := newContext(t, "")
	frame(c, q, func() {
		if _, err := r.Declare(c, layout.WidgetDecl{ID: 2, Kind: "dot", Content: geom.Size{Width: 3, Height: 3}}); err != nil {
			t.Error(err)
		}
		if _, err := r.Declare(c, layout.WidgetDecl{ID: 3, Kind: "nope"}); err == nil {
			t.Error("expected an error for an unknown kind")
		}
	})
	if !rendered {
		t.Error("registered entry point never ran")
	}
}

func TestImageCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dot.png")
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cache := NewImageCache()
	c, q := newContext(t, "")
	frame(c, q, func() {
		if _, err := ImageFile(c, 2, cache, path, 0); err != nil {
			t.Fatal(err)
		}
		if _, err := ImageFile(c, 3, cache, path, 0); err != nil {
			t.Fatal(err)
		}
		if _, err := ImageFile(c, 4, cache, filepath.Join(dir, "missing.png"), 0); err == nil {
			t.Error("expected an error for a missing file")
		}
	})
	if cache.Len() != 1 {
		t.Errorf("cache holds %d images, want 1", cache.Len())
	}
	if got := c.Frame().Boxes[3].Content; got != geom.R(0, 4, 6, 4) {
		t.Errorf("second image = %+v", got)
	}
	if n := len(ops(q, draw.OpImage)); n != 2 {
		t.Errorf("drew %d images, want 2", n)
	}
}

func TestImageCache_Sources(t *testing.T) {
	var body bytes.Buffer
	if err := png.Encode(&body, image.NewRGBA(image.Rect(0, 0, 3, 5))); err != nil {
		t.Fatal(err)
	}
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.UserAgent()
		if r.URL.Path != "/img/dot.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body.Bytes())
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dot.png"), body.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		base    string
		ref     string
		wantErr bool
	}{
		{"relative file", dir, "dot.png", false},
		{"absolute file", "", filepath.Join(dir, "dot.png"), false},
		{"relative url", srv.URL + "/img/", "dot.png", false},
		{"absolute url", "", srv.URL + "/img/dot.png", false},
		{"http error", "", srv.URL + "/missing.png", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewImageCache()
			cache.Base = tt.base
			img, err := cache.Load(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 5 {
				t.Errorf("image bounds = %v", b)
			}
		})
	}
	if agent != userAgent {
		t.Errorf("user agent = %q", agent)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"", "a.png", "a.png"},
		{"/scenes", "img/a.png", filepath.Join("/scenes", "img/a.png")},
		{"/scenes", "/abs/a.png", "/abs/a.png"},
		{"http://example.com/s/", "a.png", "http://example.com/s/a.png"},
		{"http://example.com/s/page", "../a.png", "http://example.com/a.png"},
		{"/scenes", "https://example.com/a.png", "https://example.com/a.png"},
	}
	for _, tt := range tests {
		if got := resolve(tt.base, tt.ref); got != tt.want {
			t.Errorf("resolve(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}

package raster

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"weft/pkg/draw"
	"weft/pkg/geom"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func rgba(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestCanvas_Primitives(t *testing.T) {
	c := New(40, 40, nil)
	c.Clear(white)
	c.Rect(geom.R(0, 0, 10, 10), red)
	c.RoundedRect(geom.R(20, 20, 20, 20), 4, blue)

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"inside rect", 5, 5, red},
		{"outside everything", 15, 5, white},
		{"inside rounded rect", 30, 30, blue},
		{"rounded corner stays clear", 20, 20, white},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rgba(c.Bitmap(), tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCanvas_ClipNestsAndRestores(t *testing.T) {
	c := New(40, 40, nil)
	c.Clear(white)
	c.PushClip(geom.R(0, 0, 20, 20))
	c.PushClip(geom.R(10, 10, 20, 20))
	c.Rect(geom.R(0, 0, 40, 40), red)
	c.PopClip()
	c.Rect(geom.R(0, 0, 5, 5), blue)
	c.PopClip()
	c.Rect(geom.R(35, 35, 5, 5), blue)

	img := c.Bitmap()
	if got := rgba(img, 15, 15); got != red {
		t.Errorf("intersection = %v, want red", got)
	}
	if got := rgba(img, 25, 25); got != white {
		t.Errorf("outside outer clip = %v, want white", got)
	}
	if got := rgba(img, 2, 2); got != blue {
		t.Errorf("after inner pop = %v, want blue", got)
	}
	if got := rgba(img, 37, 37); got != blue {
		t.Errorf("after outer pop = %v, want blue", got)
	}
}

func TestCanvas_QueueReplayMatchesDirect(t *testing.T) {
	paint := func(r draw.Renderer) {
		r.Rect(geom.R(2, 2, 12, 6), red)
		r.Circle(20, 20, 5, blue)
		r.Line(0, 30, 30, 30, 2, red)
		r.PushFont(draw.Font{Size: 13})
		r.Text("hi", 2, 22, blue)
		r.PopFont()
	}
	direct := New(32, 32, nil)
	direct.Clear(white)
	paint(direct)

	q := draw.NewQueue(16, 2)
	paint(q)
	replayed := New(32, 32, nil)
	replayed.Clear(white)
	q.Replay(replayed, 0, 0)

	d, err := Compare(replayed.Bitmap(), direct.Bitmap(), CompareOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !d.Match {
		t.Fatalf("replayed image differs in %d pixels", d.DifferentPixels)
	}
}

func TestCompare(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 10, 10))
	b := image.NewRGBA(image.Rect(0, 0, 10, 10))
	b.Set(3, 3, color.RGBA{10, 0, 0, 255})
	a.Set(3, 3, color.RGBA{12, 0, 0, 255})
	b.Set(7, 7, red)

	tests := []struct {
		name      string
		opts      CompareOptions
		wantMatch bool
		wantDiff  int
	}{
		{"exact", CompareOptions{}, false, 2},
		{"tolerant", CompareOptions{Tolerance: 2}, false, 1},
		{"percent", CompareOptions{Tolerance: 2, MaxDifferentPercent: 1}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Compare(a, b, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if d.Match != tt.wantMatch || d.DifferentPixels != tt.wantDiff {
				t.Errorf("match=%v diff=%d, want %v %d", d.Match, d.DifferentPixels, tt.wantMatch, tt.wantDiff)
			}
		})
	}

	if _, err := Compare(a, image.NewRGBA(image.Rect(0, 0, 5, 5)), CompareOptions{}); err == nil {
		t.Error("expected an error for mismatched bounds")
	}
}

func TestPNGRoundTrip(t *testing.T) {
	c := New(8, 8, nil)
	c.Clear(red)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	d, err := CompareFile(c.Bitmap(), path, CompareOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !d.Match {
		t.Fatalf("reloaded image differs")
	}
	if _, err := LoadPNG(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

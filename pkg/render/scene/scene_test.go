package scene

import (
	"image"
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"weft/pkg/draw"
	"weft/pkg/geom"
)

type fixedMeasurer struct{}

func (fixedMeasurer) MeasureText(s string, f draw.Font, _ float64) (float64, float64) {
	return float64(len(s)) * f.Size / 2, f.Size
}

func bounds(o fyne.CanvasObject) geom.Rect {
	p, sz := o.Position(), o.Size()
	return geom.R(float64(p.X), float64(p.Y), float64(sz.Width), float64(sz.Height))
}

func TestScene_PlacesObjects(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	s := New(fixedMeasurer{})
	s.Rect(geom.R(10, 20, 30, 40), red)
	s.RoundedRect(geom.R(0, 0, 10, 10), 4, red)
	s.StrokeRect(geom.R(1, 1, 8, 8), 2, red)
	s.Circle(50, 50, 5, red)
	s.PushFont(draw.Font{Size: 10, Bold: true})
	s.Text("abcd", 5, 6, red)
	s.PopFont()
	s.Image(image.NewRGBA(image.Rect(0, 0, 2, 2)), geom.R(0, 0, 8, 8))
	s.Line(0, 0, 10, 0, 1, red)

	objs := s.Objects()
	if len(objs) != 7 {
		t.Fatalf("got %d objects, want 7", len(objs))
	}

	tests := []struct {
		name string
		idx  int
		want geom.Rect
	}{
		{"rect", 0, geom.R(10, 20, 30, 40)},
		{"circle", 3, geom.R(45, 45, 10, 10)},
		{"text", 4, geom.R(5, 6, 20, 10)},
		{"image", 5, geom.R(0, 0, 8, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bounds(objs[tt.idx]); got != tt.want {
				t.Errorf("bounds = %+v, want %+v", got, tt.want)
			}
		})
	}

	if r := objs[1].(*canvas.Rectangle); r.CornerRadius != 4 {
		t.Errorf("corner radius = %v", r.CornerRadius)
	}
	if r := objs[2].(*canvas.Rectangle); r.StrokeWidth != 2 || r.StrokeColor != red {
		t.Errorf("stroke = %v %v", r.StrokeWidth, r.StrokeColor)
	}
	if txt := objs[4].(*canvas.Text); txt.TextSize != 10 || !txt.TextStyle.Bold {
		t.Errorf("text style = %v %+v", txt.TextSize, txt.TextStyle)
	}
}

func TestScene_Clip(t *testing.T) {
	s := New(fixedMeasurer{})
	s.PushClip(geom.R(0, 0, 20, 20))
	s.Rect(geom.R(10, 10, 30, 30), color.RGBA{A: 255})
	s.Rect(geom.R(30, 30, 5, 5), color.RGBA{A: 255})
	s.Circle(100, 100, 2, color.RGBA{A: 255})
	s.PopClip()
	s.Rect(geom.R(30, 30, 5, 5), color.RGBA{A: 255})

	objs := s.Objects()
	if len(objs) != 2 {
		t.Fatalf("got %d objects, want 2", len(objs))
	}
	if got := bounds(objs[0]); got != geom.R(10, 10, 10, 10) {
		t.Errorf("clipped rect = %+v", got)
	}
	if got := bounds(objs[1]); got != geom.R(30, 30, 5, 5) {
		t.Errorf("rect after pop = %+v", got)
	}
}

func TestScene_Reset(t *testing.T) {
	s := New(fixedMeasurer{})
	s.Rect(geom.R(0, 0, 1, 1), color.RGBA{A: 255})
	s.Reset()
	if len(s.Objects()) != 0 {
		t.Errorf("Reset kept %d objects", len(s.Objects()))
	}
	if c := s.Container(); len(c.Objects) != 0 {
		t.Errorf("container has %d objects", len(c.Objects))
	}
}

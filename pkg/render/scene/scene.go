// Package scene turns renderer commands into positioned fyne canvas
// objects.
//
// Fyne has no per-object clip, so rectangles and images are intersected
// with the clip rectangle and text or circles falling outside it are
// dropped. Text partly inside the clip is drawn whole.
package scene

import (
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"weft/pkg/draw"
	"weft/pkg/geom"
	"weft/pkg/text"
)

// Scene collects canvas objects in paint order.
type Scene struct {
	measurer text.Measurer
	objects  []fyne.CanvasObject
	clips    []geom.Rect
	fonts    []draw.Font
	warned   map[string]bool
}

// New returns an empty scene. Text objects are sized with m, which should
// be the measurer the layout used.
func New(m text.Measurer) *Scene {
	if m == nil {
		m = text.NewFaceMeasurer(text.FontConfig{})
	}
	return &Scene{measurer: m, warned: make(map[string]bool)}
}

// Objects returns the collected objects, bottom first.
func (s *Scene) Objects() []fyne.CanvasObject { return s.objects }

// Reset drops every object so the scene can be filled again.
func (s *Scene) Reset() {
	s.objects = s.objects[:0]
	s.clips = s.clips[:0]
	s.fonts = s.fonts[:0]
}

// Container wraps the objects in a container without a layout, so their
// positions are kept.
func (s *Scene) Container() *fyne.Container {
	return container.NewWithoutLayout(s.objects...)
}

func (s *Scene) warn(what string) {
	if !s.warned[what] {
		s.warned[what] = true
		log.Printf("scene: %s cannot be clipped exactly", what)
	}
}

// clip returns r cut to the current clip and whether anything is left.
func (s *Scene) clip(r geom.Rect) (geom.Rect, bool) {
	if n := len(s.clips); n > 0 {
		r = r.Intersect(s.clips[n-1])
	}
	return r, !r.IsEmpty()
}

func (s *Scene) place(o fyne.CanvasObject, r geom.Rect) {
	o.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
	o.Resize(fyne.NewSize(float32(r.Width), float32(r.Height)))
	s.objects = append(s.objects, o)
}

func (s *Scene) Rect(r geom.Rect, c color.RGBA) {
	if r, ok := s.clip(r); ok {
		s.place(canvas.NewRectangle(c), r)
	}
}

func (s *Scene) RoundedRect(r geom.Rect, radius float64, c color.RGBA) {
	clipped, ok := s.clip(r)
	if !ok {
		return
	}
	if clipped != r {
		s.warn("rounded rectangle")
	}
	rect := canvas.NewRectangle(c)
	rect.CornerRadius = float32(radius)
	s.place(rect, clipped)
}

func (s *Scene) StrokeRect(r geom.Rect, width float64, c color.RGBA) {
	if _, ok := s.clip(r); !ok {
		return
	}
	rect := canvas.NewRectangle(color.Transparent)
	rect.StrokeColor = c
	rect.StrokeWidth = float32(width)
	s.place(rect, r)
}

func (s *Scene) Line(x1, y1, x2, y2, width float64, c color.RGBA) {
	bounds := geom.R(min(x1, x2), min(y1, y2), max(x1, x2)-min(x1, x2), max(y1, y2)-min(y1, y2))
	if n := len(s.clips); n > 0 && !s.clips[n-1].ContainsRect(bounds) {
		s.warn("line")
	}
	l := canvas.NewLine(c)
	l.StrokeWidth = float32(width)
	l.Position1 = fyne.NewPos(float32(x1), float32(y1))
	l.Position2 = fyne.NewPos(float32(x2), float32(y2))
	s.objects = append(s.objects, l)
}

func (s *Scene) Circle(cx, cy, radius float64, c color.RGBA) {
	r := geom.R(cx-radius, cy-radius, 2*radius, 2*radius)
	if _, ok := s.clip(r); !ok {
		return
	}
	s.place(canvas.NewCircle(c), r)
}

func (s *Scene) Text(str string, x, y float64, c color.RGBA) {
	f := s.font()
	w, h := s.measurer.MeasureText(str, f, 0)
	r := geom.R(x, y, w, h)
	clipped, ok := s.clip(r)
	if !ok {
		return
	}
	if clipped != r {
		s.warn("text")
	}
	t := canvas.NewText(str, c)
	t.TextSize = float32(f.Size)
	t.TextStyle = fyne.TextStyle{Bold: f.Bold, Monospace: f.Name == "mono"}
	s.place(t, r)
}

func (s *Scene) Image(img image.Image, r geom.Rect) {
	clipped, ok := s.clip(r)
	if !ok {
		return
	}
	if clipped != r {
		s.warn("image")
	}
	o := canvas.NewImageFromImage(img)
	o.FillMode = canvas.ImageFillStretch
	s.place(o, clipped)
}

func (s *Scene) PushClip(r geom.Rect) {
	if n := len(s.clips); n > 0 {
		r = r.Intersect(s.clips[n-1])
	}
	s.clips = append(s.clips, r)
}

func (s *Scene) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

func (s *Scene) PushFont(f draw.Font) { s.fonts = append(s.fonts, f) }

func (s *Scene) PopFont() {
	if len(s.fonts) > 0 {
		s.fonts = s.fonts[:len(s.fonts)-1]
	}
}

func (s *Scene) font() draw.Font {
	if n := len(s.fonts); n > 0 && s.fonts[n-1].Size > 0 {
		return s.fonts[n-1]
	}
	return draw.Font{Size: 14}
}

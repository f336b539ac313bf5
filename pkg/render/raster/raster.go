// Package raster draws renderer commands into an RGBA image with gg.
package raster

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"weft/pkg/draw"
	"weft/pkg/geom"
	"weft/pkg/text"
)

// Canvas is a draw.Renderer over a gg context.
type Canvas struct {
	context *gg.Context
	faces   *text.FaceMeasurer
	clips   []geom.Rect
	fonts   []draw.Font
}

// New returns a width x height canvas. Text uses faces, which should be the
// measurer the layout was sized with so glyphs land where they were
// measured.
func New(width, height int, faces *text.FaceMeasurer) *Canvas {
	if faces == nil {
		faces = text.NewFaceMeasurer(text.FontConfig{})
	}
	return &Canvas{context: gg.NewContext(width, height), faces: faces}
}

// Clear fills the whole canvas and drops any clip.
func (c *Canvas) Clear(bg color.RGBA) {
	c.context.ResetClip()
	c.clips = c.clips[:0]
	c.context.SetColor(bg)
	c.context.Clear()
}

// Bitmap returns the canvas contents.
func (c *Canvas) Bitmap() image.Image { return c.context.Image() }

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(filename string) error {
	return c.context.SavePNG(filename)
}

func (c *Canvas) Line(x1, y1, x2, y2, width float64, col color.RGBA) {
	c.context.SetColor(col)
	c.context.SetLineWidth(width)
	c.context.DrawLine(x1, y1, x2, y2)
	c.context.Stroke()
}

func (c *Canvas) Rect(r geom.Rect, col color.RGBA) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	c.context.SetColor(col)
	c.context.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	c.context.Fill()
}

func (c *Canvas) StrokeRect(r geom.Rect, width float64, col color.RGBA) {
	c.context.SetColor(col)
	c.context.SetLineWidth(width)
	c.context.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	c.context.Stroke()
}

func (c *Canvas) RoundedRect(r geom.Rect, radius float64, col color.RGBA) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	c.context.SetColor(col)
	c.context.DrawRoundedRectangle(r.X, r.Y, r.Width, r.Height, radius)
	c.context.Fill()
}

func (c *Canvas) Circle(cx, cy, radius float64, col color.RGBA) {
	c.context.SetColor(col)
	c.context.DrawCircle(cx, cy, radius)
	c.context.Fill()
}

// Text draws s with its top-left corner at (x, y) in the current font.
func (c *Canvas) Text(s string, x, y float64, col color.RGBA) {
	face := c.faces.Face(c.font())
	c.context.SetFontFace(face)
	c.context.SetColor(col)
	ascent := float64(face.Metrics().Ascent) / 64
	c.context.DrawString(s, x, y+ascent)
}

// Image scales img into r.
func (c *Canvas) Image(img image.Image, r geom.Rect) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	c.context.Push()
	c.context.Translate(r.X, r.Y)
	c.context.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	c.context.DrawImage(img, 0, 0)
	c.context.Pop()
}

// gg keeps its clip mask across Push/Pop, so the clip is rebuilt from the
// stack every time it changes.
func (c *Canvas) PushClip(r geom.Rect) {
	if n := len(c.clips); n > 0 {
		r = r.Intersect(c.clips[n-1])
	}
	c.clips = append(c.clips, r)
	c.applyClip()
}

func (c *Canvas) PopClip() {
	if len(c.clips) > 0 {
		c.clips = c.clips[:len(c.clips)-1]
	}
	c.applyClip()
}

func (c *Canvas) applyClip() {
	c.context.ResetClip()
	if n := len(c.clips); n > 0 {
		r := c.clips[n-1]
		c.context.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		c.context.Clip()
	}
}

func (c *Canvas) PushFont(f draw.Font) { c.fonts = append(c.fonts, f) }

func (c *Canvas) PopFont() {
	if len(c.fonts) > 0 {
		c.fonts = c.fonts[:len(c.fonts)-1]
	}
}

func (c *Canvas) font() draw.Font {
	if n := len(c.fonts); n > 0 {
		return c.fonts[n-1]
	}
	return draw.Font{Size: 14}
}

// Package svg writes renderer commands as an SVG document.
package svg

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"weft/pkg/draw"
	"weft/pkg/geom"
)

// Document accumulates SVG elements. Clips become nested groups that
// reference a clipPath, so PushClip and PopClip must balance before WriteTo.
type Document struct {
	width, height float64
	body          strings.Builder
	defs          strings.Builder
	clips         int
	open          int
	fonts         []draw.Font
}

// New returns an empty width x height document.
func New(width, height float64) *Document {
	return &Document{width: width, height: height}
}

// WriteTo writes the complete document, closing any groups left open.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(d.width), num(d.height), num(d.width), num(d.height))
	if d.defs.Len() > 0 {
		b.WriteString("<defs>\n")
		b.WriteString(d.defs.String())
		b.WriteString("</defs>\n")
	}
	b.WriteString(d.body.String())
	for i := 0; i < d.open; i++ {
		b.WriteString("</g>\n")
	}
	b.WriteString("</svg>\n")
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// String returns the document as text.
func (d *Document) String() string {
	var b strings.Builder
	d.WriteTo(&b)
	return b.String()
}

func (d *Document) Line(x1, y1, x2, y2, width float64, c color.RGBA) {
	fmt.Fprintf(&d.body, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke-width="%s"%s/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), num(width), paint("stroke", c))
}

func (d *Document) Rect(r geom.Rect, c color.RGBA) {
	fmt.Fprintf(&d.body, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(r.X), num(r.Y), num(r.Width), num(r.Height), paint("fill", c))
}

func (d *Document) StrokeRect(r geom.Rect, width float64, c color.RGBA) {
	fmt.Fprintf(&d.body, `<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke-width="%s"%s/>`+"\n",
		num(r.X), num(r.Y), num(r.Width), num(r.Height), num(width), paint("stroke", c))
}

func (d *Document) RoundedRect(r geom.Rect, radius float64, c color.RGBA) {
	fmt.Fprintf(&d.body, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s"%s/>`+"\n",
		num(r.X), num(r.Y), num(r.Width), num(r.Height), num(radius), paint("fill", c))
}

func (d *Document) Circle(cx, cy, radius float64, c color.RGBA) {
	fmt.Fprintf(&d.body, `<circle cx="%s" cy="%s" r="%s"%s/>`+"\n",
		num(cx), num(cy), num(radius), paint("fill", c))
}

func (d *Document) Text(s string, x, y float64, c color.RGBA) {
	f := d.font()
	family := "sans-serif"
	if f.Name == "mono" {
		family = "monospace"
	}
	weight := ""
	if f.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(&d.body, `<text x="%s" y="%s" font-family="%s" font-size="%s"%s dominant-baseline="text-before-edge"%s>`,
		num(x), num(y), family, num(f.Size), weight, paint("fill", c))
	xml.EscapeText(&d.body, []byte(s))
	d.body.WriteString("</text>\n")
}

// Image embeds img as a base64 PNG.
func (d *Document) Image(img image.Image, r geom.Rect) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return
	}
	fmt.Fprintf(&d.body, `<image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none" href="data:image/png;base64,%s"/>`+"\n",
		num(r.X), num(r.Y), num(r.Width), num(r.Height), base64.StdEncoding.EncodeToString(buf.Bytes()))
}

// Nested groups intersect their clip paths, so each PushClip only has to
// describe its own rectangle.
func (d *Document) PushClip(r geom.Rect) {
	id := fmt.Sprintf("clip%d", d.clips)
	d.clips++
	fmt.Fprintf(&d.defs, `<clipPath id="%s"><rect x="%s" y="%s" width="%s" height="%s"/></clipPath>`+"\n",
		id, num(r.X), num(r.Y), num(r.Width), num(r.Height))
	fmt.Fprintf(&d.body, `<g clip-path="url(#%s)">`+"\n", id)
	d.open++
}

func (d *Document) PopClip() {
	if d.open == 0 {
		return
	}
	d.body.WriteString("</g>\n")
	d.open--
}

func (d *Document) PushFont(f draw.Font) { d.fonts = append(d.fonts, f) }

func (d *Document) PopFont() {
	if len(d.fonts) > 0 {
		d.fonts = d.fonts[:len(d.fonts)-1]
	}
}

func (d *Document) font() draw.Font {
	if n := len(d.fonts); n > 0 && d.fonts[n-1].Size > 0 {
		return d.fonts[n-1]
	}
	return draw.Font{Size: 14}
}

func paint(attr string, c color.RGBA) string {
	s := fmt.Sprintf(` %s="#%02x%02x%02x"`, attr, c.R, c.G, c.B)
	if c.A != 255 {
		s += fmt.Sprintf(` %s-opacity="%s"`, attr, num(float64(c.A)/255))
	}
	return s
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

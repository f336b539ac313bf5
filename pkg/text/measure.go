// Package text measures strings for sizing text-bearing widgets.
package text

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"weft/pkg/draw"
)

// Measurer returns the size of s drawn in f. A positive wrap breaks s into
// lines no wider than wrap where word boundaries allow.
type Measurer interface {
	MeasureText(s string, f draw.Font, wrap float64) (w, h float64)
}

// FontConfig holds paths to font files. Empty paths fall back to the
// built-in bitmap face.
type FontConfig struct {
	Regular  string
	Bold     string
	Mono     string
	MonoBold string
}

// FontConfigIn returns the conventional file names inside dir.
func FontConfigIn(dir string) FontConfig {
	return FontConfig{
		Regular:  filepath.Join(dir, "Regular.ttf"),
		Bold:     filepath.Join(dir, "Bold.ttf"),
		Mono:     filepath.Join(dir, "Mono-Regular.ttf"),
		MonoBold: filepath.Join(dir, "Mono-Bold.ttf"),
	}
}

// FontPath returns the font file for f.
func (fc FontConfig) FontPath(f draw.Font) string {
	if f.Name == "mono" {
		if f.Bold && fc.MonoBold != "" {
			return fc.MonoBold
		}
		if fc.Mono != "" {
			return fc.Mono
		}
		// fall through to proportional if no mono font configured
	}
	if f.Bold && fc.Bold != "" {
		return fc.Bold
	}
	return fc.Regular
}

type faceKey struct {
	path string
	size float64
}

// FaceMeasurer measures with real font faces loaded through gg, caching one
// face per file and size. Faces that fail to load are replaced by
// basicfont.Face7x13, which ignores the requested size.
type FaceMeasurer struct {
	Fonts  FontConfig
	faces  map[faceKey]font.Face
	warned map[string]bool
}

// NewFaceMeasurer returns a measurer over fc.
func NewFaceMeasurer(fc FontConfig) *FaceMeasurer {
	return &FaceMeasurer{
		Fonts:  fc,
		faces:  make(map[faceKey]font.Face),
		warned: make(map[string]bool),
	}
}

// Face returns the face for f, loading it on first use.
func (m *FaceMeasurer) Face(f draw.Font) font.Face {
	path := m.Fonts.FontPath(f)
	key := faceKey{path: path, size: f.Size}
	if face, ok := m.faces[key]; ok {
		return face
	}
	var face font.Face = basicfont.Face7x13
	if path != "" {
		loaded, err := gg.LoadFontFace(path, f.Size)
		if err == nil {
			face = loaded
		} else if !m.warned[path] {
			m.warned[path] = true
			log.Printf("text: using fallback face: %v", err)
		}
	}
	m.faces[key] = face
	return face
}

// LineHeight returns the distance between baselines for f.
func (m *FaceMeasurer) LineHeight(f draw.Font) float64 {
	return float64(m.Face(f).Metrics().Height) / 64
}

// Width returns the advance width of a single line.
func (m *FaceMeasurer) Width(s string, f draw.Font) float64 {
	return float64(font.MeasureString(m.Face(f), s)) / 64
}

// MeasureText implements Measurer.
func (m *FaceMeasurer) MeasureText(s string, f draw.Font, wrap float64) (w, h float64) {
	lines := BreakLines(s, wrap, func(line string) float64 { return m.Width(line, f) })
	for _, line := range lines {
		if lw := m.Width(line, f); lw > w {
			w = lw
		}
	}
	return w, float64(len(lines)) * m.LineHeight(f)
}

// BreakLines splits s on newlines and then greedily on spaces so that each
// line measures at most max. A single word wider than max gets its own
// line. A non-positive max only splits on newlines.
func BreakLines(s string, max float64, width func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if max <= 0 || width(para) <= max {
			lines = append(lines, para)
			continue
		}
		current := ""
		for _, word := range strings.Fields(para) {
			test := word
			if current != "" {
				test = current + " " + word
			}
			if width(test) <= max || current == "" {
				current = test
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}

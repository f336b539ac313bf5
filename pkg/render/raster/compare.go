package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Diff summarises a pixel comparison.
type Diff struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest per-channel difference, 0-255
	Image           *image.RGBA
}

// CompareOptions configures Compare.
type CompareOptions struct {
	// Tolerance is the per-channel difference still counted as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within the radius.
	FuzzyRadius int

	// MaxDifferentPercent passes the comparison when no more than this
	// share of pixels differ.
	MaxDifferentPercent float64

	// DiffImage records differing pixels in red over a grayscale copy.
	DiffImage bool
}

// Compare compares two images pixel by pixel.
func Compare(actual, expected image.Image, opts CompareOptions) (Diff, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return Diff{}, fmt.Errorf("image bounds differ: actual=%v expected=%v", bounds, expected.Bounds())
	}
	d := Diff{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}
	if opts.DiffImage {
		d.Image = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			diff := channelDiff(actual.At(x, y), expected.At(x, y))
			d.MaxDifference = max(d.MaxDifference, diff)
			same := diff <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && fuzzyMatch(actual, expected, x, y, opts.FuzzyRadius, opts.Tolerance))
			if !same {
				d.Match = false
				d.DifferentPixels++
			}
			if d.Image != nil {
				if same {
					r, _, _, _ := actual.At(x, y).RGBA()
					g := uint8(r >> 8)
					d.Image.Set(x, y, color.RGBA{g, g, g, 255})
				} else {
					d.Image.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
			}
		}
	}

	if !d.Match && opts.MaxDifferentPercent > 0 && d.TotalPixels > 0 {
		if pct := float64(d.DifferentPixels) / float64(d.TotalPixels) * 100; pct <= opts.MaxDifferentPercent {
			d.Match = true
		}
	}
	return d, nil
}

// CompareFile compares img against a reference PNG on disk.
func CompareFile(img image.Image, path string, opts CompareOptions) (Diff, error) {
	ref, err := LoadPNG(path)
	if err != nil {
		return Diff{}, err
	}
	return Compare(img, ref, opts)
}

// LoadPNG decodes a PNG file.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SavePNG encodes img to path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func fuzzyMatch(actual, expected image.Image, x, y, radius, tolerance int) bool {
	b := actual.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(b) {
				continue
			}
			if channelDiff(actual.At(x, y), expected.At(p.X, p.Y)) <= tolerance {
				return true
			}
		}
	}
	return false
}

func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDiff(ar>>8, br>>8),
		absDiff(ag>>8, bg>>8),
		absDiff(ab>>8, bb>>8),
		absDiff(aa>>8, ba>>8),
	)
}

func absDiff(a, b uint32) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

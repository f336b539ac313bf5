package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"weft/pkg/render/raster"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path, def, want string
	}{
		{"out.png", "svg", "png"},
		{"out.SVG", "png", "svg"},
		{"screen.txt", "png", "term"},
		{"screen.ans", "png", "term"},
		{"noext", "svg", "svg"},
	}
	for _, tt := range tests {
		if got := formatOf(tt.path, tt.def); got != tt.want {
			t.Errorf("formatOf(%q, %q) = %q, want %q", tt.path, tt.def, got, tt.want)
		}
	}
}

func TestCheckReference(t *testing.T) {
	dir := t.TempDir()
	white := solid(color.RGBA{255, 255, 255, 255})
	ref := filepath.Join(dir, "ref.png")
	if err := raster.SavePNG(white, ref); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		img       image.Image
		tolerance int
		wantErr   bool
	}{
		{"identical", white, 0, false},
		{"within tolerance", solid(color.RGBA{250, 250, 250, 255}), 5, false},
		{"differs", solid(color.RGBA{0, 0, 0, 255}), 5, true},
		{"other bounds", image.NewRGBA(image.Rect(0, 0, 3, 3)), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := filepath.Join(dir, tt.name+"-diff.png")
			err := checkReference(tt.img, ref, tt.tolerance, diff)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkReference() = %v, wantErr %v", err, tt.wantErr)
			}
			_, statErr := os.Stat(diff)
			if wrote := statErr == nil; wrote != (tt.wantErr && tt.img.Bounds() == white.Bounds()) {
				t.Errorf("diff image written = %v", wrote)
			}
		})
	}

	if err := checkReference(white, filepath.Join(dir, "missing.png"), 0, ""); err == nil {
		t.Error("missing reference accepted")
	}
}

func solid(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

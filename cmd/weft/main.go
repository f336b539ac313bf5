package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"weft/internal/config"
	"weft/internal/host"
	"weft/pkg/layout"
	"weft/pkg/render/raster"
)

func main() {
	configPath := flag.String("config", "", "configuration file (.toml, .yaml)")
	output := flag.String("o", "", "output file; the extension picks png, svg or txt (default stdout for svg and term)")
	format := flag.String("format", "", "output format: png, svg or term")
	width := flag.Float64("w", 0, "viewport width")
	height := flag.Float64("h", 0, "viewport height")
	backend := flag.String("backend", "", "layout backend: native or flex")
	sheet := flag.String("sheet", "", "style sheet file")
	styleScript := flag.String("style", "", "style script file")
	debug := flag.Bool("debug", false, "check replayed style snapshots and tape balance")
	ref := flag.String("ref", "", "reference PNG the rendered frame must match")
	tolerance := flag.Int("tolerance", 0, "per-channel difference still counted as a match with -ref")
	diffOut := flag.String("diff", "", "write the -ref difference image to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: weft [flags] [scene.js]\n\nWithout a scene the built-in demo is laid out.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case *format != "":
		cfg.Output = *format
	case *output != "":
		cfg.Output = formatOf(*output, cfg.Output)
	}
	if cfg.Output == config.OutputTerm && *width == 0 && *height == 0 && *configPath == "" {
		cfg.Viewport = config.Viewport{Width: 80, Height: 24}
	}
	if *width > 0 {
		cfg.Viewport.Width = *width
	}
	if *height > 0 {
		cfg.Viewport.Height = *height
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *sheet != "" {
		cfg.Sheet = *sheet
	}
	if *styleScript != "" {
		cfg.Script = *styleScript
	}
	cfg.Debug = cfg.Debug || *debug

	if *ref != "" && cfg.Output != config.OutputPNG {
		fmt.Fprintf(os.Stderr, "Error: -ref needs png output\n")
		os.Exit(1)
	}

	h, err := host.New(cfg, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	} else if cfg.Output == config.OutputPNG {
		fmt.Fprintf(os.Stderr, "Error: png output needs -o\n")
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Laying out %gx%g with the %s backend...\n", cfg.Viewport.Width, cfg.Viewport.Height, cfg.Backend)
	if err := h.Export(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		fmt.Fprintf(os.Stderr, "Saved to %s (%d items)\n", *output, h.Context.Frame().Items)
	}

	if *ref != "" {
		c, err := h.Raster(layout.Input{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
			os.Exit(1)
		}
		if err := checkReference(c.Bitmap(), *ref, *tolerance, *diffOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Matches %s\n", *ref)
	}
}

// checkReference compares img with the PNG at ref. When they differ and
// diffPath is set, the difference image is written there.
func checkReference(img image.Image, ref string, tolerance int, diffPath string) error {
	d, err := raster.CompareFile(img, ref, raster.CompareOptions{
		Tolerance: tolerance,
		DiffImage: diffPath != "",
	})
	if err != nil {
		return err
	}
	if d.Match {
		return nil
	}
	if diffPath != "" {
		if err := raster.SavePNG(d.Image, diffPath); err != nil {
			return err
		}
	}
	return fmt.Errorf("%d of %d pixels differ from %s (max difference %d)",
		d.DifferentPixels, d.TotalPixels, ref, d.MaxDifference)
}

// formatOf maps an output file extension to a format.
func formatOf(path, def string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return config.OutputPNG
	case ".svg":
		return config.OutputSVG
	case ".txt", ".ans":
		return config.OutputTerm
	}
	return def
}

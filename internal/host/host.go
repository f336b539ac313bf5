// Package host wires a configuration into a layout context and runs
// frames of a scene against one of the render backends. It is shared by
// the weft commands.
package host

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"weft/internal/config"
	"weft/pkg/draw"
	"weft/pkg/flexsolver"
	"weft/pkg/layout"
	"weft/pkg/render/raster"
	"weft/pkg/render/svg"
	"weft/pkg/render/term"
	"weft/pkg/script"
	"weft/pkg/style"
	"weft/pkg/text"
	"weft/pkg/widget"
)

// Host owns a context and the scene declared into it each frame.
type Host struct {
	Config  config.Config
	Context *layout.Context

	scene func(c *layout.Context) error
	demo  *Demo
	faces *text.FaceMeasurer
}

// New builds a host for cfg. scenePath names a scene script; when empty
// the built-in demo is declared.
func New(cfg config.Config, scenePath string) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Host{Config: cfg}

	provider, err := loadProvider(cfg)
	if err != nil {
		return nil, err
	}

	var measurer text.Measurer
	if cfg.Output == config.OutputTerm {
		measurer = text.CellMeasurer{}
	} else {
		h.faces = text.NewFaceMeasurer(cfg.FontConfig())
		measurer = h.faces
	}

	opts := layout.Options{
		Capacity: cfg.LayoutCapacity(),
		Viewport: cfg.ViewportRect(),
		Provider: provider,
		Measurer: measurer,
		Debug:    cfg.Debug,
	}
	if cfg.Backend == config.BackendFlex {
		opts.Solver = flexsolver.New(opts.Capacity.SolverNodes)
	}
	h.Context = layout.New(opts)

	if scenePath == "" {
		h.demo = &Demo{Cells: cfg.Output == config.OutputTerm}
		h.scene = h.demo.Frame
		return h, nil
	}
	src, err := os.ReadFile(scenePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	images := widget.NewImageCache()
	images.Base = filepath.Dir(scenePath)
	sc, err := script.NewScene(script.New(), string(src), images)
	if err != nil {
		return nil, err
	}
	h.scene = sc.Frame
	return h, nil
}

func loadProvider(cfg config.Config) (style.Provider, error) {
	sheetSrc := DemoSheet
	if cfg.Output == config.OutputTerm {
		sheetSrc = DemoCellSheet
	}
	if cfg.Sheet != "" {
		b, err := os.ReadFile(cfg.Sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read style sheet: %w", err)
		}
		sheetSrc = string(b)
	}
	var provider style.Provider
	sheet, err := style.ParseSheet(sheetSrc, style.NewCascade())
	if err != nil {
		return nil, err
	}
	provider = sheet

	if cfg.Script != "" {
		b, err := os.ReadFile(cfg.Script)
		if err != nil {
			return nil, fmt.Errorf("failed to read style script: %w", err)
		}
		provider, err = script.NewProvider(script.New(), string(b), provider)
		if err != nil {
			return nil, err
		}
	}
	return provider, nil
}

// Demo returns the built-in scene, or nil when a script is declared.
func (h *Host) Demo() *Demo { return h.demo }

// Faces returns the font measurer, or nil for cell output.
func (h *Host) Faces() *text.FaceMeasurer { return h.faces }

// Frame declares one frame with in as the pointer state, rendering into r.
func (h *Host) Frame(r draw.Renderer, in layout.Input) error {
	h.Context.SetRenderer(r)
	h.Context.SetInput(in)
	return h.scene(h.Context)
}

// Raster renders one frame into a new canvas the size of the viewport.
func (h *Host) Raster(in layout.Input) (*raster.Canvas, error) {
	vp := h.Config.Viewport
	c := raster.New(int(vp.Width), int(vp.Height), h.faces)
	c.Clear(color.RGBA{255, 255, 255, 255})
	if err := h.Frame(c, in); err != nil {
		return nil, err
	}
	return c, nil
}

// Export renders one frame in the configured output format to w.
func (h *Host) Export(w io.Writer) error {
	vp := h.Config.Viewport
	switch h.Config.Output {
	case config.OutputSVG:
		doc := svg.New(vp.Width, vp.Height)
		if err := h.Frame(doc, layout.Input{}); err != nil {
			return err
		}
		_, err := doc.WriteTo(w)
		return err
	case config.OutputTerm:
		s := term.New(int(vp.Width), int(vp.Height))
		if err := h.Frame(s, layout.Input{}); err != nil {
			return err
		}
		_, err := io.WriteString(w, s.String())
		return err
	default:
		c, err := h.Raster(layout.Input{})
		if err != nil {
			return err
		}
		return raster.EncodePNG(w, c.Bitmap())
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"weft/internal/config"
	"weft/internal/host"
	"weft/pkg/geom"
	"weft/pkg/layout"
	"weft/pkg/render/scene"
)

// surface shows the frames of a host as fyne canvas objects and feeds
// pointer events back as layout input.
type surface struct {
	widget.BaseWidget

	host    *host.Host
	scene   *scene.Scene
	content *fyne.Container
	status  *widget.Label
	in      layout.Input
}

func newSurface(h *host.Host, status *widget.Label) *surface {
	s := &surface{
		host:    h,
		scene:   scene.New(h.Context.Measurer()),
		content: container.NewWithoutLayout(),
		status:  status,
	}
	s.ExtendBaseWidget(s)
	s.redraw()
	return s
}

func (s *surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}

func (s *surface) MinSize() fyne.Size {
	vp := s.host.Config.Viewport
	return fyne.NewSize(float32(vp.Width), float32(vp.Height))
}

func (s *surface) redraw() {
	s.scene.Reset()
	if err := s.host.Frame(s.scene, s.in); err != nil {
		s.status.SetText("Error: " + err.Error())
		return
	}
	s.content.Objects = append([]fyne.CanvasObject(nil), s.scene.Objects()...)
	s.content.Refresh()
	s.status.SetText(fmt.Sprintf("%d items", s.host.Context.Frame().Items))
}

func (s *surface) pointer(ev *desktop.MouseEvent) {
	s.in.Mouse = geom.Point{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
}

func (s *surface) MouseIn(ev *desktop.MouseEvent) {
	s.pointer(ev)
	s.redraw()
}

func (s *surface) MouseMoved(ev *desktop.MouseEvent) {
	s.pointer(ev)
	s.redraw()
}

func (s *surface) MouseOut() {
	s.in.Mouse = geom.Point{X: -1, Y: -1}
	s.redraw()
}

func (s *surface) MouseDown(ev *desktop.MouseEvent) {
	s.pointer(ev)
	s.in.Down = ev.Button == desktop.MouseButtonPrimary
	s.redraw()
}

// MouseUp runs the release frame, then a second frame so state changed by
// the click is shown.
func (s *surface) MouseUp(ev *desktop.MouseEvent) {
	s.pointer(ev)
	s.in.Down = false
	s.in.Released = ev.Button == desktop.MouseButtonPrimary
	s.redraw()
	s.in.Released = false
	s.redraw()
}

// Scrolled moves the demo list.
func (s *surface) Scrolled(ev *fyne.ScrollEvent) {
	if d := s.host.Demo(); d != nil {
		d.Scroll = max(d.Scroll-float64(ev.Scrolled.DY), 0)
		s.redraw()
	}
}

func main() {
	configPath := flag.String("config", "", "configuration file (.toml, .yaml)")
	backend := flag.String("backend", "", "layout backend: native or flex")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: weftview [flags] [scene.js]\n\nFlags:\n")
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
	if *backend != "" {
		cfg.Backend = *backend
	}
	// The viewer draws pixels whatever the file asked for.
	cfg.Output = config.OutputPNG

	h, err := host.New(cfg, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("weft")
	status := widget.NewLabel("")
	surf := newSurface(h, status)
	w.SetContent(container.NewBorder(nil, status, nil, nil, surf))
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)+40))
	w.ShowAndRun()
}

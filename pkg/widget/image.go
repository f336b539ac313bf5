package widget

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"weft/pkg/boxmodel"
	"weft/pkg/draw"
	"weft/pkg/geom"
	"weft/pkg/layout"
	"weft/pkg/style"
)

// ImageCache keeps decoded images by location. Relative locations are
// resolved against Base, which may be a directory or an http(s) URL.
type ImageCache struct {
	Base string

	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{images: make(map[string]image.Image)}
}

// Load decodes the image at ref, or returns the cached copy. PNG, JPEG,
// GIF, BMP and WebP are understood.
func (c *ImageCache) Load(ref string) (image.Image, error) {
	loc := resolve(c.Base, ref)
	c.mu.RLock()
	img, ok := c.images[loc]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	b, err := fetch(loc)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	img, _, err = image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", loc, err)
	}

	c.mu.Lock()
	c.images[loc] = img
	c.mu.Unlock()
	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Image declares img at its natural pixel size. Sizing or a style width
// or height scales it.
func Image(c *layout.Context, id uint64, img image.Image, sz layout.Sizing) int {
	b := img.Bounds()
	return c.Widget(layout.WidgetDecl{
		ID:      id,
		Kind:    KindImage,
		Sizing:  sz,
		State:   c.StateOf(id),
		Content: geom.Size{Width: float64(b.Dx()), Height: float64(b.Dy())},
		Data:    img,
		Render:  renderImage,
	})
}

// ImageFile declares the image at path, loading it through cache.
func ImageFile(c *layout.Context, id uint64, cache *ImageCache, path string, sz layout.Sizing) (int, error) {
	img, err := cache.Load(path)
	if err != nil {
		return -1, err
	}
	return Image(c, id, img, sz), nil
}

func renderImage(_ uint64, data any, st *style.Style, box boxmodel.BoxModel, r draw.Renderer, in layout.Input) layout.Result {
	paintBox(r, st, box)
	if img, ok := data.(image.Image); ok && !box.Content.IsEmpty() {
		r.Image(img, box.Content)
	}
	return layout.Result{Hovered: hovered(box, in)}
}

// Separator declares a one unit rule. Give it ExpandX in a column or
// ExpandY in a row to span the line.
func Separator(c *layout.Context, id uint64, sz layout.Sizing) int {
	return c.Widget(layout.WidgetDecl{
		ID:      id,
		Kind:    KindSeparator,
		Sizing:  sz,
		Content: geom.Size{Width: 1, Height: 1},
		Render:  renderSeparator,
	})
}

func renderSeparator(_ uint64, _ any, st *style.Style, box boxmodel.BoxModel, r draw.Renderer, _ layout.Input) layout.Result {
	r.Rect(box.Content, ink(st))
	return layout.Result{}
}

// Panel opens l as a painted region, declares its children with body and
// closes it.
func Panel(c *layout.Context, l layout.Layout, body func()) {
	l.Region = true
	c.Begin(l)
	body()
	c.End()
}

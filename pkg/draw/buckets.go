package draw

import (
	"image"
	"image/color"

	"weft/pkg/geom"
)

// Buckets orders drawing by region depth: everything written to depth d is
// issued after everything written to shallower depths, in write order
// within a depth. The active clip is tracked across buckets so content
// written under a clip stays clipped when its bucket is flushed.
type Buckets struct {
	queues    []*Queue
	applied   []clipState
	clips     []geom.Rect
	blockSize int
	maxBlocks int
}

type clipState struct {
	on   bool
	rect geom.Rect
}

// NewBuckets returns depth buckets whose queues use the given block limits.
func NewBuckets(blockSize, maxBlocks int) *Buckets {
	return &Buckets{blockSize: blockSize, maxBlocks: maxBlocks}
}

// PushClip narrows the active clip for subsequent writes at any depth.
func (b *Buckets) PushClip(r geom.Rect) {
	if n := len(b.clips); n > 0 {
		r = r.Intersect(b.clips[n-1])
	}
	b.clips = append(b.clips, r)
}

// PopClip restores the previous clip.
func (b *Buckets) PopClip() {
	if len(b.clips) > 0 {
		b.clips = b.clips[:len(b.clips)-1]
	}
}

// Depth returns the renderer writing into bucket d.
func (b *Buckets) Depth(d int) Renderer {
	for len(b.queues) <= d {
		b.queues = append(b.queues, NewQueue(b.blockSize, b.maxBlocks))
		b.applied = append(b.applied, clipState{})
	}
	return layer{b: b, d: d}
}

// sync makes bucket d's clip match the active one before a write.
func (b *Buckets) sync(d int) {
	want := clipState{}
	if n := len(b.clips); n > 0 {
		want = clipState{on: true, rect: b.clips[n-1]}
	}
	if b.applied[d] == want {
		return
	}
	q := b.queues[d]
	if b.applied[d].on {
		q.PopClip()
	}
	if want.on {
		q.PushClip(want.rect)
	}
	b.applied[d] = want
}

// Flush issues every bucket on r in increasing depth and resets them.
func (b *Buckets) Flush(r Renderer) {
	for d, q := range b.queues {
		q.Replay(r, 0, 0)
		if b.applied[d].on {
			r.PopClip()
		}
		q.Reset()
		b.applied[d] = clipState{}
	}
	b.clips = b.clips[:0]
}

// Len returns the total number of recorded commands.
func (b *Buckets) Len() int {
	n := 0
	for _, q := range b.queues {
		n += q.Len()
	}
	return n
}

type layer struct {
	b *Buckets
	d int
}

func (l layer) q() *Queue {
	l.b.sync(l.d)
	return l.b.queues[l.d]
}

func (l layer) Line(x1, y1, x2, y2, width float64, c color.RGBA) {
	l.q().Line(x1, y1, x2, y2, width, c)
}
func (l layer) Rect(r geom.Rect, c color.RGBA) { l.q().Rect(r, c) }
func (l layer) StrokeRect(r geom.Rect, w float64, c color.RGBA) { l.q().StrokeRect(r, w, c) }
func (l layer) RoundedRect(r geom.Rect, rad float64, c color.RGBA) {
	l.q().RoundedRect(r, rad, c)
}
func (l layer) Circle(cx, cy, rad float64, c color.RGBA) { l.q().Circle(cx, cy, rad, c) }
func (l layer) Text(s string, x, y float64, c color.RGBA) { l.q().Text(s, x, y, c) }
func (l layer) Image(img image.Image, r geom.Rect) { l.q().Image(img, r) }
func (l layer) PushClip(r geom.Rect) { l.q().PushClip(r) }
func (l layer) PopClip() { l.q().PopClip() }
func (l layer) PushFont(f Font) { l.q().PushFont(f) }
func (l layer) PopFont() { l.q().PopFont() }

package draw

import (
	"fmt"
	"image"
	"image/color"

	"weft/pkg/geom"
)

// Op identifies a recorded primitive.
type Op uint8

const (
	OpLine Op = iota
	OpRect
	OpStrokeRect
	OpRoundedRect
	OpCircle
	OpText
	OpImage
	OpPushClip
	OpPopClip
	OpPushFont
	OpPopFont
)

// Command is one recorded renderer call. Rect carries the rectangle of
// Rect, StrokeRect, RoundedRect, Image and PushClip; X1..Y2 carry Line end
// points, the Circle centre and the Text origin; Width is a line or stroke
// width or a radius.
type Command struct {
	Op     Op
	Rect   geom.Rect
	X1, Y1 float64
	X2, Y2 float64
	Width  float64
	Color  color.RGBA
	Text   string
	Image  image.Image
	Font   Font
}

// Translate returns c moved by (dx, dy). Only the coordinates the op uses
// are touched.
func (c Command) Translate(dx, dy float64) Command {
	switch c.Op {
	case OpRect, OpStrokeRect, OpRoundedRect, OpImage, OpPushClip:
		c.Rect = c.Rect.Translate(dx, dy)
	case OpLine:
		c.X1, c.Y1 = c.X1+dx, c.Y1+dy
		c.X2, c.Y2 = c.X2+dx, c.Y2+dy
	case OpCircle, OpText:
		c.X1, c.Y1 = c.X1+dx, c.Y1+dy
	}
	return c
}

// Issue sends c to r.
func (c Command) Issue(r Renderer) {
	switch c.Op {
	case OpLine:
		r.Line(c.X1, c.Y1, c.X2, c.Y2, c.Width, c.Color)
	case OpRect:
		r.Rect(c.Rect, c.Color)
	case OpStrokeRect:
		r.StrokeRect(c.Rect, c.Width, c.Color)
	case OpRoundedRect:
		r.RoundedRect(c.Rect, c.Width, c.Color)
	case OpCircle:
		r.Circle(c.X1, c.Y1, c.Width, c.Color)
	case OpText:
		r.Text(c.Text, c.X1, c.Y1, c.Color)
	case OpImage:
		r.Image(c.Image, c.Rect)
	case OpPushClip:
		r.PushClip(c.Rect)
	case OpPopClip:
		r.PopClip()
	case OpPushFont:
		r.PushFont(c.Font)
	case OpPopFont:
		r.PopFont()
	}
}

// Queue is a Renderer that records calls in fixed-size blocks instead of
// drawing them. Blocks are kept across Reset so a steady-state frame does
// not allocate. Growing past maxBlocks panics.
type Queue struct {
	blocks    [][]Command
	blockSize int
	maxBlocks int
	n         int
}

// NewQueue returns a queue of at most maxBlocks blocks of blockSize commands.
func NewQueue(blockSize, maxBlocks int) *Queue {
	if blockSize <= 0 {
		blockSize = 64
	}
	if maxBlocks <= 0 {
		maxBlocks = 1
	}
	return &Queue{blockSize: blockSize, maxBlocks: maxBlocks}
}

// Len returns the number of recorded commands.
func (q *Queue) Len() int { return q.n }

// Reset forgets every recorded command but keeps the blocks.
func (q *Queue) Reset() { q.n = 0 }

func (q *Queue) push(c Command) {
	b, i := q.n/q.blockSize, q.n%q.blockSize
	if b == len(q.blocks) {
		if b == q.maxBlocks {
			panic(fmt.Sprintf("draw: queue full (%d blocks of %d commands)", q.maxBlocks, q.blockSize))
		}
		q.blocks = append(q.blocks, make([]Command, q.blockSize))
	}
	q.blocks[b][i] = c
	q.n++
}

// At returns the i-th recorded command.
func (q *Queue) At(i int) Command {
	return q.blocks[i/q.blockSize][i%q.blockSize]
}

// Commands returns a copy of the recorded commands in order.
func (q *Queue) Commands() []Command {
	out := make([]Command, q.n)
	for i := range out {
		out[i] = q.At(i)
	}
	return out
}

// Replay issues every recorded command on r translated by (dx, dy).
func (q *Queue) Replay(r Renderer, dx, dy float64) {
	for i := 0; i < q.n; i++ {
		q.At(i).Translate(dx, dy).Issue(r)
	}
}

func (q *Queue) Line(x1, y1, x2, y2, width float64, c color.RGBA) {
	q.push(Command{Op: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: c})
}

func (q *Queue) Rect(r geom.Rect, c color.RGBA) {
	q.push(Command{Op: OpRect, Rect: r, Color: c})
}

func (q *Queue) StrokeRect(r geom.Rect, width float64, c color.RGBA) {
	q.push(Command{Op: OpStrokeRect, Rect: r, Width: width, Color: c})
}

func (q *Queue) RoundedRect(r geom.Rect, radius float64, c color.RGBA) {
	q.push(Command{Op: OpRoundedRect, Rect: r, Width: radius, Color: c})
}

func (q *Queue) Circle(cx, cy, radius float64, c color.RGBA) {
	q.push(Command{Op: OpCircle, X1: cx, Y1: cy, Width: radius, Color: c})
}

func (q *Queue) Text(s string, x, y float64, c color.RGBA) {
	q.push(Command{Op: OpText, Text: s, X1: x, Y1: y, Color: c})
}

func (q *Queue) Image(img image.Image, r geom.Rect) {
	q.push(Command{Op: OpImage, Image: img, Rect: r})
}

func (q *Queue) PushClip(r geom.Rect) { q.push(Command{Op: OpPushClip, Rect: r}) }
func (q *Queue) PopClip() { q.push(Command{Op: OpPopClip}) }
func (q *Queue) PushFont(f Font) { q.push(Command{Op: OpPushFont, Font: f}) }
func (q *Queue) PopFont() { q.push(Command{Op: OpPopFont}) }

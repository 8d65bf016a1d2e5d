package canvas

import (
	"image"
	"image/color"
)

// recordingPainter records the calls a Context makes. It draws nothing.
type recordingPainter struct {
	transform Matrix
	saved     []Matrix
	calls     []painterCall
}

type painterCall struct {
	op        string
	transform Matrix
	paint     Paint
	stroke    StrokeParams
	dst       Rect
	srcRect   image.Rectangle
	scaling   ScalingMode
	clear     color.NRGBA
}

func newRecorder() (*recordingPainter, ContextOption) {
	rec := &recordingPainter{transform: Identity()}
	return rec, WithPainterFactory(func(*Bitmap) Painter { return rec })
}

func (r *recordingPainter) add(c painterCall) {
	c.transform = r.transform
	r.calls = append(r.calls, c)
}

func (r *recordingPainter) FillPath(_ *Path, _ WindingRule, paint Paint) {
	r.add(painterCall{op: "fill", paint: paint})
}

func (r *recordingPainter) StrokePath(_ *Path, s StrokeParams, paint Paint) {
	r.add(painterCall{op: "stroke", paint: paint, stroke: s})
}

func (r *recordingPainter) DrawBitmap(dst Rect, _ *Bitmap, sr image.Rectangle, scaling ScalingMode, paint Paint) {
	r.add(painterCall{op: "bitmap", dst: dst, srcRect: sr, scaling: scaling, paint: paint})
}

func (r *recordingPainter) ClearRect(rect Rect, c color.NRGBA) {
	r.add(painterCall{op: "clear", dst: rect, clear: c})
}

func (r *recordingPainter) Clip(*Path, WindingRule) { r.add(painterCall{op: "clip"}) }
func (r *recordingPainter) Save()                   { r.saved = append(r.saved, r.transform) }
func (r *recordingPainter) SetTransform(m Matrix)   { r.transform = m }

func (r *recordingPainter) Restore() {
	if n := len(r.saved); n > 0 {
		r.transform = r.saved[n-1]
		r.saved = r.saved[:n-1]
	}
}

func (r *recordingPainter) Reset() {
	r.transform = Identity()
	r.saved = nil
}

func (r *recordingPainter) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.op
	}
	return out
}

// pixel returns the unpremultiplied pixel at (x, y) of the context surface.
func pixel(ctx *Context, x, y int) color.NRGBA {
	return unpremultiply(ctx.Surface().GetPixel(x, y))
}

var (
	red         = color.NRGBA{R: 255, A: 255}
	green       = color.NRGBA{G: 255, A: 255}
	transparent = color.NRGBA{}
)

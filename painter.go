package canvas

import (
	"image"
	"image/color"

	"github.com/gogpu/canvas/filter"
)

// Paint carries the compositing parameters of one painter call.
type Paint struct {
	Style    PaintStyle // nil for DrawBitmap
	Alpha    float64    // global alpha in [0, 1]
	Operator CompositeOperator
	Filter   *filter.Filter // nil or identity for none
	Blur     float64        // shadow blur radius in device pixels, 0 for none
}

// StrokeParams are the line parameters of a stroke, in user space.
type StrokeParams struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float32
	DashOffset float32
}

// ScalingMode selects how DrawBitmap resamples.
type ScalingMode uint8

const (
	ScalingNearest ScalingMode = iota
	ScalingLow
	ScalingMedium
	ScalingHigh
)

// Painter rasterizes and composites onto a target surface. It keeps its
// own transform and clip stack, mirrored from the Context that owns it.
type Painter interface {
	FillPath(path *Path, rule WindingRule, paint Paint)
	StrokePath(path *Path, stroke StrokeParams, paint Paint)
	// DrawBitmap maps srcRect of src onto dst in user space.
	DrawBitmap(dst Rect, src *Bitmap, srcRect image.Rectangle, scaling ScalingMode, paint Paint)
	// ClearRect replaces the pixels of r, within the clip, with c.
	ClearRect(r Rect, c color.NRGBA)
	Clip(path *Path, rule WindingRule)
	Save()
	Restore()
	SetTransform(m Matrix)
	// Reset drops the transform and clip stack.
	Reset()
}

// PainterFactory creates the painter for a freshly allocated surface.
type PainterFactory func(target *Bitmap) Painter

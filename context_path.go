package canvas

import "github.com/gogpu/canvas/internal/raster"

// BeginPath empties the current path.
func (c *Context) BeginPath() { c.path.Clear() }

// CurrentPath returns a copy of the current path.
func (c *Context) CurrentPath() *Path { return c.path.Clone() }

// MoveTo starts a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) { c.path.MoveTo(x, y) }

// LineTo adds a straight segment to (x, y).
func (c *Context) LineTo(x, y float64) { c.path.LineTo(x, y) }

// QuadraticCurveTo adds a quadratic Bézier segment.
func (c *Context) QuadraticCurveTo(cpx, cpy, x, y float64) { c.path.QuadraticCurveTo(cpx, cpy, x, y) }

// BezierCurveTo adds a cubic Bézier segment.
func (c *Context) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.path.BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
}

// ArcTo adds an arc tangent to the two lines through the current point,
// (x1, y1) and (x2, y2).
func (c *Context) ArcTo(x1, y1, x2, y2, radius float64) error {
	return c.path.ArcTo(x1, y1, x2, y2, radius)
}

// Arc adds a circular arc.
func (c *Context) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) error {
	return c.path.Arc(x, y, radius, startAngle, endAngle, counterclockwise)
}

// Ellipse adds an elliptical arc.
func (c *Context) Ellipse(x, y, rx, ry, rotation, startAngle, endAngle float64, counterclockwise bool) error {
	return c.path.Ellipse(x, y, rx, ry, rotation, startAngle, endAngle, counterclockwise)
}

// Rect adds a closed rectangle subpath.
func (c *Context) Rect(x, y, w, h float64) { c.path.Rect(x, y, w, h) }

// RoundRect adds a rounded rectangle subpath.
func (c *Context) RoundRect(x, y, w, h float64, radii ...float64) error {
	return c.path.RoundRect(x, y, w, h, radii...)
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() { c.path.ClosePath() }

// Fill fills the current path.
func (c *Context) Fill(rule WindingRule) { c.fillInternal(c.path, rule) }

// FillPath fills p under the current transform.
func (c *Context) FillPath(p *Path, rule WindingRule) { c.fillInternal(p, rule) }

// Stroke strokes the current path.
func (c *Context) Stroke() { c.strokeInternal(c.path) }

// StrokePath strokes p under the current transform.
func (c *Context) StrokePath(p *Path) { c.strokeInternal(p) }

// Clip intersects the clip region with the current path.
func (c *Context) Clip(rule WindingRule) { c.clipInternal(c.path, rule) }

// ClipPath intersects the clip region with p.
func (c *Context) ClipPath(p *Path, rule WindingRule) { c.clipInternal(p, rule) }

func (c *Context) clipInternal(p *Path, rule WindingRule) {
	if p == nil {
		return
	}
	st := c.state()
	entry := clipEntry{path: p.Clone(), rule: rule, transform: st.Transform}
	st.clips = append(st.clips, entry)
	if c.painter != nil {
		c.painter.Clip(entry.path, rule)
	}
}

// IsPointInPath reports whether (x, y), in device space, lies inside the
// current path.
func (c *Context) IsPointInPath(x, y float64, rule WindingRule) bool {
	return c.IsPointInPathOf(c.path, x, y, rule)
}

// IsPointInPathOf reports whether (x, y) lies inside p.
func (c *Context) IsPointInPathOf(p *Path, x, y float64, rule WindingRule) bool {
	if p == nil || !finite(x, y) {
		return false
	}
	return p.Contains(c.userPoint(x, y), rule)
}

// IsPointInStroke reports whether (x, y) lies on the stroke of the
// current path with the current line parameters.
func (c *Context) IsPointInStroke(x, y float64) bool {
	return c.IsPointInStrokeOf(c.path, x, y)
}

// IsPointInStrokeOf reports whether (x, y) lies on the stroke of p.
func (c *Context) IsPointInStrokeOf(p *Path, x, y float64) bool {
	if p == nil || !finite(x, y) {
		return false
	}
	s := c.strokeParams()
	contours := p.contours(raster.Tolerance)
	if len(s.Dash) > 0 {
		contours = raster.Dash(contours, c.state().LineDash, c.state().LineDashOffset)
	}
	outline := raster.Stroke(contours, raster.StrokeStyle{
		Width:      s.Width,
		Cap:        s.Cap.raster(),
		Join:       s.Join.raster(),
		MiterLimit: s.MiterLimit,
	}, raster.Tolerance)
	return raster.Contains(outline, raster.Point(c.userPoint(x, y)), raster.NonZero)
}

// userPoint maps a device point through the inverse transform. A
// non-invertible transform leaves the point as is.
func (c *Context) userPoint(x, y float64) Point {
	pt := Pt(x, y)
	if inv, ok := c.state().Transform.Invert(); ok {
		pt = inv.TransformPoint(pt)
	}
	return pt
}

// FillRect fills a rectangle without touching the current path.
func (c *Context) FillRect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	c.fillInternal(RectPath(x, y, w, h), NonZero)
}

// StrokeRect strokes a rectangle without touching the current path.
func (c *Context) StrokeRect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	c.strokeInternal(RectPath(x, y, w, h))
}

// ClearRect sets the pixels of a rectangle, within the clip, to the clear
// color.
func (c *Context) ClearRect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	p := c.activePainter()
	if p == nil {
		return
	}
	p.ClearRect(Rect{X: x, Y: y, W: w, H: h}, c.clearColor())
}

func (c *Context) strokeParams() StrokeParams {
	st := c.state()
	dash := make([]float32, len(st.LineDash))
	for i, v := range st.LineDash {
		dash[i] = float32(v)
	}
	return StrokeParams{
		Width:      st.LineWidth,
		Cap:        st.LineCap,
		Join:       st.LineJoin,
		MiterLimit: st.MiterLimit,
		Dash:       dash,
		DashOffset: float32(st.LineDashOffset),
	}
}

func (c *Context) fillInternal(path *Path, rule WindingRule) {
	if path == nil {
		return
	}
	p := c.activePainter()
	if p == nil {
		return
	}
	st := c.state()
	if st.FillStyle == nil || !st.FillStyle.IsVisible() {
		return
	}
	c.taintBy(st.FillStyle)

	if shadow, ok := c.shadowPaint(st.FillStyle); ok {
		c.withShadowTransform(p, func() { p.FillPath(path, rule, shadow) })
	}
	p.FillPath(path, rule, c.stylePaint(st.FillStyle))
}

func (c *Context) strokeInternal(path *Path) {
	if path == nil {
		return
	}
	p := c.activePainter()
	if p == nil {
		return
	}
	st := c.state()
	if st.StrokeStyle == nil || !st.StrokeStyle.IsVisible() {
		return
	}
	c.taintBy(st.StrokeStyle)

	params := c.strokeParams()
	if shadow, ok := c.shadowPaint(nil); ok {
		c.withShadowTransform(p, func() { p.StrokePath(path, params, shadow) })
	}
	p.StrokePath(path, params, c.stylePaint(st.StrokeStyle))
}

func (c *Context) stylePaint(style PaintStyle) Paint {
	st := c.state()
	return Paint{
		Style:    style,
		Alpha:    st.GlobalAlpha,
		Operator: st.Operator,
		Filter:   st.Filter,
	}
}

// shadowPaint returns the paint for the shadow pass and whether one runs.
// fill is the fill style for fills and nil for strokes: a solid fill
// color's alpha replaces the shadow color's.
func (c *Context) shadowPaint(fill PaintStyle) (Paint, bool) {
	st := c.state()
	if st.ShadowBlur == 0 && st.ShadowOffsetX == 0 && st.ShadowOffsetY == 0 {
		return Paint{}, false
	}
	if st.Operator == OpCopy {
		Logger().Debug("canvas: shadow skipped", "reason", "copy operator")
		return Paint{}, false
	}
	alpha := st.GlobalAlpha * float64(st.ShadowColor.A) / 255
	if solid, ok := fill.(SolidColor); ok && solid.Color.A > 0 {
		alpha = st.GlobalAlpha * float64(solid.Color.A) / 255
	}
	if alpha == 0 {
		Logger().Debug("canvas: shadow skipped", "reason", "transparent")
		return Paint{}, false
	}
	return Paint{
		Style:    SolidColor{Color: shadowColorAt(st.ShadowColor, alpha)},
		Alpha:    1,
		Operator: st.Operator,
		Blur:     st.ShadowBlur,
	}, true
}

// withShadowTransform runs draw with the shadow offset applied in device
// space ahead of the current transform.
func (c *Context) withShadowTransform(p Painter, draw func()) {
	st := c.state()
	p.Save()
	p.SetTransform(Translate(st.ShadowOffsetX, st.ShadowOffsetY).Multiply(st.Transform))
	draw()
	p.Restore()
}

// taintBy clears the origin-clean flag when style samples a
// cross-origin bitmap.
func (c *Context) taintBy(style PaintStyle) {
	if pat, ok := style.(*Pattern); ok && !pat.OriginClean() {
		c.originClean = false
	}
}

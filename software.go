package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/draw"

	"github.com/gogpu/canvas/internal/blend"
	"github.com/gogpu/canvas/internal/raster"
)

// SoftwarePainter is the CPU reference Painter. Each call renders into a
// full-surface premultiplied layer (style x coverage x alpha), applies
// shadow blur and filter, then composites the layer through the clip with
// the call's operator.
type SoftwarePainter struct {
	target    *Bitmap
	transform Matrix
	clip      *raster.Mask // nil when unclipped
	stack     []painterState
}

type painterState struct {
	transform Matrix
	clip      *raster.Mask
}

// NewSoftwarePainter creates a painter that draws into target.
func NewSoftwarePainter(target *Bitmap) *SoftwarePainter {
	return &SoftwarePainter{target: target, transform: Identity()}
}

// Target returns the surface the painter draws into.
func (p *SoftwarePainter) Target() *Bitmap { return p.target }

// Transform returns the current transform.
func (p *SoftwarePainter) Transform() Matrix { return p.transform }

// SetTransform implements Painter.
func (p *SoftwarePainter) SetTransform(m Matrix) { p.transform = m }

// Save implements Painter.
func (p *SoftwarePainter) Save() {
	p.stack = append(p.stack, painterState{transform: p.transform, clip: p.clip})
}

// Restore implements Painter.
func (p *SoftwarePainter) Restore() {
	if len(p.stack) == 0 {
		return
	}
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.transform, p.clip = top.transform, top.clip
}

// Reset implements Painter.
func (p *SoftwarePainter) Reset() {
	p.transform = Identity()
	p.clip = nil
	p.stack = nil
}

// Clip implements Painter. Clip masks are never mutated once stored, so
// saved states can share them.
func (p *SoftwarePainter) Clip(path *Path, rule WindingRule) {
	if path == nil {
		return
	}
	m := p.coverage(path.contours(p.tolerance()), rule.raster())
	if p.clip != nil {
		m = p.clip.Intersect(m)
	}
	p.clip = m
}

// FillPath implements Painter.
func (p *SoftwarePainter) FillPath(path *Path, rule WindingRule, paint Paint) {
	if path == nil {
		return
	}
	p.paintMask(p.coverage(path.contours(p.tolerance()), rule.raster()), paint)
}

// StrokePath implements Painter. Outlining and dashing run in user space
// so non-uniform transforms distort the pen.
func (p *SoftwarePainter) StrokePath(path *Path, s StrokeParams, paint Paint) {
	if path == nil || !(s.Width > 0) {
		return
	}
	tol := p.tolerance()
	contours := path.contours(tol)
	if len(s.Dash) > 0 {
		pattern := make([]float64, len(s.Dash))
		for i, d := range s.Dash {
			pattern[i] = float64(d)
		}
		contours = raster.Dash(contours, pattern, float64(s.DashOffset))
	}
	outline := raster.Stroke(contours, raster.StrokeStyle{
		Width:      s.Width,
		Cap:        s.Cap.raster(),
		Join:       s.Join.raster(),
		MiterLimit: s.MiterLimit,
	}, tol)
	p.paintMask(p.coverage(outline, raster.NonZero), paint)
}

// DrawBitmap implements Painter.
func (p *SoftwarePainter) DrawBitmap(dst Rect, src *Bitmap, sr image.Rectangle, scaling ScalingMode, paint Paint) {
	if src == nil || dst.IsEmpty() {
		return
	}
	sr = sr.Intersect(src.Bounds())
	if sr.Empty() {
		return
	}
	m := p.transform.
		Multiply(Translate(dst.X, dst.Y)).
		Multiply(Scale(dst.W/float64(sr.Dx()), dst.H/float64(sr.Dy()))).
		Multiply(Translate(-float64(sr.Min.X), -float64(sr.Min.Y)))
	if _, ok := m.Invert(); !ok {
		return
	}

	layer := image.NewRGBA(p.target.Bounds())
	interpolator(scaling).Transform(layer, m.Aff3(), src.RGBA(), sr, draw.Over, nil)
	if a := clamp01(paint.Alpha); a < 1 {
		for i, v := range layer.Pix {
			layer.Pix[i] = uint8(float64(v)*a + 0.5)
		}
	}
	bounds := p.deviceBounds(dst)
	bounds = p.effects(layer, bounds, paint)
	p.composite(layer, bounds, paint.Operator.BlendMode())
}

// ClearRect implements Painter.
func (p *SoftwarePainter) ClearRect(r Rect, c color.NRGBA) {
	m := p.coverage(RectPath(r.X, r.Y, r.W, r.H).contours(p.tolerance()), raster.NonZero)
	if p.clip != nil {
		m = m.Intersect(p.clip)
	}
	pc := premultiply(c)
	clearTo := blend.Color{
		R: float32(pc.R) / 255, G: float32(pc.G) / 255,
		B: float32(pc.B) / 255, A: float32(pc.A) / 255,
	}
	for y := m.MinY; y < m.MaxY; y++ {
		for x := m.MinX; x < m.MaxX; x++ {
			cov := m.At(x, y)
			if cov == 0 {
				continue
			}
			p.store(x, y, p.load(x, y).Lerp(clearTo, cov))
		}
	}
}

func interpolator(s ScalingMode) draw.Interpolator {
	switch s {
	case ScalingLow:
		return draw.ApproxBiLinear
	case ScalingMedium:
		return draw.BiLinear
	case ScalingHigh:
		return draw.CatmullRom
	}
	return draw.NearestNeighbor
}

// tolerance returns the flattening tolerance in user space for a tenth of
// a device pixel.
func (p *SoftwarePainter) tolerance() float64 {
	s := p.transform.ScaleFactor()
	if !(s > 0) || math.IsInf(s, 0) {
		return raster.Tolerance
	}
	return raster.Tolerance / s
}

func (p *SoftwarePainter) coverage(contours []raster.Contour, rule raster.FillRule) *raster.Mask {
	m := p.transform
	raster.Transform(contours, func(pt raster.Point) raster.Point {
		return raster.Point(m.TransformPoint(Point(pt)))
	})
	return raster.Fill(contours, rule, p.target.Width(), p.target.Height())
}

func (p *SoftwarePainter) deviceBounds(r Rect) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range []Point{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H}} {
		d := p.transform.TransformPoint(c)
		minX, minY = math.Min(minX, d.X), math.Min(minY, d.Y)
		maxX, maxY = math.Max(maxX, d.X), math.Max(maxY, d.Y)
	}
	b := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	return b.Intersect(p.target.Bounds())
}

func (p *SoftwarePainter) paintMask(m *raster.Mask, paint Paint) {
	if paint.Style == nil {
		return
	}
	mode := paint.Operator.BlendMode()
	if m.Empty() && !blend.Unbounded(mode) {
		return
	}
	layer := image.NewRGBA(p.target.Bounds())
	bounds := image.Rectangle{}
	if !m.Empty() {
		bounds = image.Rect(m.MinX, m.MinY, m.MaxX, m.MaxY)
		p.shade(layer, m, bounds, paint)
	}
	bounds = p.effects(layer, bounds, paint)
	p.composite(layer, bounds, mode)
}

// shade writes style color x coverage x alpha into layer. Non-solid styles
// are sampled at pixel centers mapped back to user space.
func (p *SoftwarePainter) shade(layer *image.RGBA, m *raster.Mask, b image.Rectangle, paint Paint) {
	alpha := float32(clamp01(paint.Alpha))
	solid, isSolid := paint.Style.(SolidColor)
	inv, ok := p.transform.Invert()
	if !isSolid && !ok {
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cov := m.At(x, y) * alpha
			if cov <= 0 {
				continue
			}
			c := solid.Color
			if !isSolid {
				u := inv.TransformPoint(Pt(float64(x)+0.5, float64(y)+0.5))
				c = paint.Style.ColorAt(u.X, u.Y)
			}
			a := float32(c.A) / 255 * cov
			i := layer.PixOffset(x, y)
			layer.Pix[i+0] = uint8(float32(c.R)*a + 0.5)
			layer.Pix[i+1] = uint8(float32(c.G)*a + 0.5)
			layer.Pix[i+2] = uint8(float32(c.B)*a + 0.5)
			layer.Pix[i+3] = uint8(a*255 + 0.5)
		}
	}
}

// effects applies shadow blur and the filter to layer and returns the
// region that may now hold paint.
func (p *SoftwarePainter) effects(layer *image.RGBA, b image.Rectangle, paint Paint) image.Rectangle {
	if paint.Blur > 0 {
		blurred := blur.Gaussian(layer, paint.Blur/2)
		draw.Draw(layer, layer.Rect, blurred, blurred.Rect.Min, draw.Src)
		b = layer.Rect
	}
	if !paint.Filter.IsIdentity() {
		out := paint.Filter.Apply(layer)
		draw.Draw(layer, layer.Rect, out, out.Rect.Min, draw.Src)
		b = layer.Rect
	}
	return b
}

// composite blends layer onto the target inside b. Unbounded operators
// also affect pixels the layer leaves transparent, across the whole clip.
func (p *SoftwarePainter) composite(layer *image.RGBA, b image.Rectangle, mode blend.Mode) {
	fn := blend.Lookup(mode)
	unbounded := blend.Unbounded(mode)
	if unbounded {
		b = p.target.Bounds()
		if p.clip != nil {
			b = image.Rect(p.clip.MinX, p.clip.MinY, p.clip.MaxX, p.clip.MaxY)
		}
	}
	b = b.Intersect(p.target.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := layer.PixOffset(x, y)
			if !unbounded && layer.Pix[i+3] == 0 {
				continue
			}
			cc := float32(1)
			if p.clip != nil {
				if cc = p.clip.At(x, y); cc == 0 {
					continue
				}
			}
			s := blend.Color{
				R: float32(layer.Pix[i+0]) / 255,
				G: float32(layer.Pix[i+1]) / 255,
				B: float32(layer.Pix[i+2]) / 255,
				A: float32(layer.Pix[i+3]) / 255,
			}
			d := p.load(x, y)
			r := fn(s, d)
			if cc < 1 {
				r = d.Lerp(r, cc)
			}
			p.store(x, y, r)
		}
	}
}

func (p *SoftwarePainter) load(x, y int) blend.Color {
	c := p.target.GetPixel(x, y)
	return blend.Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

func (p *SoftwarePainter) store(x, y int, c blend.Color) {
	a := unit8(c.A)
	p.target.SetPixel(x, y, color.RGBA{
		R: min(unit8(c.R), a),
		G: min(unit8(c.G), a),
		B: min(unit8(c.B), a),
		A: a,
	})
}

func unit8(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

package canvas

import (
	"image/color"
)

// Context is an offscreen 2D drawing context. It owns a drawing state
// stack, a current path and a lazily allocated pixel surface.
//
// A Context is not safe for concurrent use.
type Context struct {
	width  int
	height int
	opts   contextOptions

	stack stateStack
	path  *Path

	// surface and painter are allocated on first need and dropped on
	// SetSize.
	surface *Bitmap
	painter Painter

	originClean bool
}

// NewContext creates a context for a width x height surface. The surface
// itself is allocated on first use.
func NewContext(width, height int, opts ...ContextOption) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Context{
		width:       max(width, 0),
		height:      max(height, 0),
		opts:        o,
		stack:       newStateStack(),
		path:        NewPath(),
		originClean: true,
	}
}

// Width returns the nominal surface width.
func (c *Context) Width() int { return c.width }

// Height returns the nominal surface height.
func (c *Context) Height() int { return c.height }

// Size returns the nominal surface size.
func (c *Context) Size() (width, height int) { return c.width, c.height }

// SetSize changes the nominal size. A change drops the surface and the
// painter; they are recreated, blank, on next use.
func (c *Context) SetSize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	c.surface = nil
	c.painter = nil
}

// Settings returns the attributes fixed at construction.
func (c *Context) Settings() Settings { return c.opts.settings }

// OriginClean reports whether pixel readback is still allowed.
func (c *Context) OriginClean() bool { return c.originClean }

// State returns a copy of the current drawing state.
func (c *Context) State() DrawingState { return c.state().clone() }

func (c *Context) state() *DrawingState { return c.stack.top() }

// clearColor is transparent black for alpha surfaces and opaque black
// otherwise.
func (c *Context) clearColor() color.NRGBA {
	if c.opts.settings.Alpha {
		return color.NRGBA{}
	}
	return Black
}

// allocateSurface creates the surface if it does not exist yet. It
// reports whether a surface is available.
func (c *Context) allocateSurface() bool {
	if c.surface != nil {
		return true
	}
	if c.width == 0 || c.height == 0 {
		return false
	}
	format := FormatRGBA8888
	if !c.opts.settings.Alpha {
		format = FormatRGBX8888
	}
	b, err := c.opts.allocator.Allocate(c.width, c.height, format)
	if err != nil || b == nil {
		Logger().Warn("canvas: surface allocation failed", "width", c.width, "height", c.height, "error", err)
		return false
	}
	if !c.opts.settings.Alpha {
		b.Clear(premultiply(Black))
	}
	c.surface = b
	Logger().Info("canvas: surface allocated", "width", c.width, "height", c.height, "format", format.String())
	return true
}

// Surface returns the backing bitmap, allocating it if needed. It is nil
// for zero-size contexts or when allocation fails.
func (c *Context) Surface() *Bitmap {
	if !c.allocateSurface() {
		return nil
	}
	return c.surface
}

// activePainter returns the painter, creating it on first use and
// replaying the transforms and clips of every saved state into it.
func (c *Context) activePainter() Painter {
	if c.painter != nil {
		return c.painter
	}
	if !c.allocateSurface() {
		return nil
	}
	p := c.opts.painterFactory(c.surface)
	var applied int
	for i, st := range c.stack.states {
		for _, clip := range st.clips[applied:] {
			p.SetTransform(clip.transform)
			p.Clip(clip.path, clip.rule)
		}
		applied = len(st.clips)
		p.SetTransform(st.Transform)
		if i < len(c.stack.states)-1 {
			p.Save()
		}
	}
	c.painter = p
	return p
}

// Save pushes a copy of the current drawing state.
func (c *Context) Save() {
	c.stack.save()
	if c.painter != nil {
		c.painter.Save()
	}
}

// Restore pops the drawing state. It does nothing when no state has been
// saved.
func (c *Context) Restore() {
	if !c.stack.restore() {
		return
	}
	if c.painter != nil {
		c.painter.Restore()
		c.painter.SetTransform(c.state().Transform)
	}
}

// Reset clears the surface to the clear color, empties the current path
// and returns the state stack to a single default entry. The origin-clean
// flag is left as it is.
func (c *Context) Reset() {
	c.path.Clear()
	c.stack.reset()
	if c.surface == nil {
		return
	}
	if p := c.activePainter(); p != nil {
		p.Reset()
		p.ClearRect(Rect{W: float64(c.surface.Width()), H: float64(c.surface.Height())}, c.clearColor())
	}
}

// Snapshot implements ImageSource so a context can be drawn into another
// one, or into itself.
func (c *Context) Snapshot() SourceSnapshot {
	if c.width == 0 || c.height == 0 || !c.allocateSurface() {
		return SourceSnapshot{Usability: Bad}
	}
	return SourceSnapshot{Bitmap: c.surface, Usability: Usable, OriginClean: c.originClean}
}

func (c *Context) setTransform(m Matrix) {
	if !m.IsFinite() {
		return
	}
	c.state().Transform = m
	if c.painter != nil {
		c.painter.SetTransform(m)
	}
}

// Scale adds a scaling transformation.
func (c *Context) Scale(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.setTransform(c.state().Transform.Multiply(Scale(x, y)))
}

// Rotate adds a clockwise rotation by angle radians.
func (c *Context) Rotate(angle float64) {
	if !finite(angle) {
		return
	}
	c.setTransform(c.state().Transform.Multiply(Rotate(angle)))
}

// Translate adds a translation.
func (c *Context) Translate(x, y float64) {
	if !finite(x, y) {
		return
	}
	c.setTransform(c.state().Transform.Multiply(Translate(x, y)))
}

// Transform multiplies the current transform by the matrix given in
// canvas argument order.
func (c *Context) Transform(a, b, cc, d, e, f float64) {
	if !finite(a, b, cc, d, e, f) {
		return
	}
	c.setTransform(c.state().Transform.Multiply(NewMatrix(a, b, cc, d, e, f)))
}

// SetTransform replaces the current transform with the matrix given in
// canvas argument order.
func (c *Context) SetTransform(a, b, cc, d, e, f float64) {
	c.setTransform(NewMatrix(a, b, cc, d, e, f))
}

// SetTransformMatrix replaces the current transform.
func (c *Context) SetTransformMatrix(m Matrix) { c.setTransform(m) }

// ResetTransform sets the identity transform.
func (c *Context) ResetTransform() { c.setTransform(Identity()) }

// GetTransform returns the current transform.
func (c *Context) GetTransform() Matrix { return c.state().Transform }

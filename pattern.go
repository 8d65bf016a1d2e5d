package canvas

import (
	"image/color"
	"math"
)

// Repetition selects the axes along which a pattern tiles.
type Repetition uint8

const (
	Repeat Repetition = iota
	RepeatX
	RepeatY
	NoRepeat
)

var repetitionNames = [...]string{"repeat", "repeat-x", "repeat-y", "no-repeat"}

func (r Repetition) String() string { return repetitionNames[r%4] }

// ParseRepetition maps a repetition keyword to its value. The empty
// string means Repeat; anything else is a Syntax error.
func ParseRepetition(s string) (Repetition, error) {
	if s == "" {
		return Repeat, nil
	}
	for i, n := range repetitionNames {
		if n == s {
			return Repetition(i), nil
		}
	}
	return 0, newDOMError(SyntaxError, "unknown pattern repetition "+s)
}

// Pattern paints a snapshot of an image source, tiled in user space.
type Pattern struct {
	bitmap      *Bitmap
	repetition  Repetition
	transform   Matrix
	inverse     Matrix
	originClean bool
}

// NewPattern creates a pattern from a copy of b.
func NewPattern(b *Bitmap, repetition Repetition, originClean bool) *Pattern {
	return &Pattern{
		bitmap:      b.Clone(),
		repetition:  repetition,
		transform:   Identity(),
		inverse:     Identity(),
		originClean: originClean,
	}
}

// SetTransform sets the pattern-space to user-space transform.
// Non-finite or non-invertible matrices are ignored.
func (p *Pattern) SetTransform(m Matrix) {
	inv, ok := m.Invert()
	if !ok {
		return
	}
	p.transform = m
	p.inverse = inv
}

// Transform returns the pattern transform.
func (p *Pattern) Transform() Matrix { return p.transform }

// Repetition returns the tiling mode.
func (p *Pattern) Repetition() Repetition { return p.repetition }

// OriginClean reports whether the pattern's pixels are origin-clean.
func (p *Pattern) OriginClean() bool { return p.originClean }

// IsVisible implements PaintStyle.
func (p *Pattern) IsVisible() bool { return !p.bitmap.IsEmpty() }

// ColorAt implements PaintStyle using nearest-texel sampling.
func (p *Pattern) ColorAt(x, y float64) color.NRGBA {
	w, h := p.bitmap.Width(), p.bitmap.Height()
	if w == 0 || h == 0 {
		return color.NRGBA{}
	}
	pt := p.inverse.TransformPoint(Pt(x, y))
	ix, iy := int(math.Floor(pt.X)), int(math.Floor(pt.Y))
	if p.repetition == Repeat || p.repetition == RepeatX {
		ix = wrap(ix, w)
	}
	if p.repetition == Repeat || p.repetition == RepeatY {
		iy = wrap(iy, h)
	}
	return unpremultiply(p.bitmap.GetPixel(ix, iy))
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

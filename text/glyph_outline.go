package text

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/canvas/internal/cache"
)

// Point is a 2D point in pixels, with Y pointing down.
type Point struct {
	X, Y float64
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo moves to a new point without drawing.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// Segment is one command of a glyph outline, relative to the glyph origin
// on the baseline.
//   - MoveTo, LineTo: Points[0] is the target
//   - QuadTo: Points[0] is the control, Points[1] the target
//   - CubicTo: Points[0], Points[1] are controls, Points[2] the target
type Segment struct {
	Op     OutlineOp
	Points [3]Point
}

// Outline returns the outline of glyph gid at the face size. Glyphs
// without contours, such as spaces, return an empty outline.
func (f *Face) Outline(gid uint16) ([]Segment, error) {
	return f.outlines.GetOrCreate(gid, func() ([]Segment, error) {
		return f.loadOutline(gid)
	})
}

// OutlineStats reports the outline cache counters for this face.
func (f *Face) OutlineStats() cache.Stats {
	return f.outlines.Stats()
}

func (f *Face) loadOutline(gid uint16) ([]Segment, error) {
	f.mu.Lock()
	raw, err := f.source.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), f.ppem(), nil)
	f.mu.Unlock()
	if err != nil {
		return nil, &FontError{Name: f.source.name, Reason: "failed to load glyph", Err: err}
	}
	segs := make([]Segment, 0, len(raw))
	for _, s := range raw {
		var out Segment
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			out.Op = OutlineOpMoveTo
			out.Points[0] = toPoint(s.Args[0])
		case sfnt.SegmentOpLineTo:
			out.Op = OutlineOpLineTo
			out.Points[0] = toPoint(s.Args[0])
		case sfnt.SegmentOpQuadTo:
			out.Op = OutlineOpQuadTo
			out.Points[0] = toPoint(s.Args[0])
			out.Points[1] = toPoint(s.Args[1])
		case sfnt.SegmentOpCubeTo:
			out.Op = OutlineOpCubicTo
			out.Points[0] = toPoint(s.Args[0])
			out.Points[1] = toPoint(s.Args[1])
			out.Points[2] = toPoint(s.Args[2])
		}
		segs = append(segs, out)
	}
	return segs, nil
}

func toPoint(p fixed.Point26_6) Point {
	return Point{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

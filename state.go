package canvas

import (
	"image/color"
	"slices"

	"github.com/gogpu/canvas/filter"
	"github.com/gogpu/canvas/text"
)

// DrawingState is one snapshot of the paint parameters. Save pushes a
// copy; entries never share mutable slices.
type DrawingState struct {
	Transform Matrix

	FillStyle   PaintStyle
	StrokeStyle PaintStyle

	LineWidth      float64
	LineCap        LineCap
	LineJoin       LineJoin
	MiterLimit     float64
	LineDash       []float64
	LineDashOffset float64

	GlobalAlpha float64
	Operator    CompositeOperator
	Filter      *filter.Filter

	ShadowOffsetX float64
	ShadowOffsetY float64
	ShadowBlur    float64
	ShadowColor   color.NRGBA

	ImageSmoothing   bool
	SmoothingQuality SmoothingQuality

	TextAlign    TextAlign
	TextBaseline TextBaseline
	Direction    TextDirection
	Font         text.Descriptor

	// cascade is resolved from Font on first text use.
	cascade *text.Cascade

	// clips records every clip applied in this state and its ancestors,
	// with the transform current at the time.
	clips []clipEntry
}

type clipEntry struct {
	path      *Path
	rule      WindingRule
	transform Matrix
}

// DefaultDrawingState returns the initial state of a context.
func DefaultDrawingState() DrawingState {
	return DrawingState{
		Transform:        Identity(),
		FillStyle:        SolidColor{Color: Black},
		StrokeStyle:      SolidColor{Color: Black},
		LineWidth:        1,
		LineCap:          LineCapButt,
		LineJoin:         LineJoinMiter,
		MiterLimit:       10,
		GlobalAlpha:      1,
		Operator:         OpSourceOver,
		ImageSmoothing:   true,
		SmoothingQuality: SmoothingLow,
		TextAlign:        TextAlignStart,
		TextBaseline:     TextBaselineAlphabetic,
		Direction:        DirectionInherit,
		Font:             text.DefaultDescriptor(),
	}
}

func (s DrawingState) clone() DrawingState {
	s.LineDash = slices.Clone(s.LineDash)
	s.Font.Families = slices.Clone(s.Font.Families)
	s.clips = slices.Clone(s.clips)
	return s
}

// stateStack holds the save/restore stack. It always has at least one
// entry.
type stateStack struct {
	states []DrawingState
}

func newStateStack() stateStack {
	return stateStack{states: []DrawingState{DefaultDrawingState()}}
}

func (s *stateStack) top() *DrawingState {
	return &s.states[len(s.states)-1]
}

func (s *stateStack) save() {
	s.states = append(s.states, s.top().clone())
}

// restore pops the top entry. It reports false when only the initial
// entry is left.
func (s *stateStack) restore() bool {
	if len(s.states) <= 1 {
		return false
	}
	s.states[len(s.states)-1] = DrawingState{}
	s.states = s.states[:len(s.states)-1]
	return true
}

func (s *stateStack) reset() {
	s.states = []DrawingState{DefaultDrawingState()}
}

func (s *stateStack) depth() int { return len(s.states) }

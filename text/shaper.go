package text

import (
	"slices"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the inline base direction of a paragraph or run.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Glyph is a positioned glyph inside a run. X and Y are relative to the
// run origin on the baseline.
type Glyph struct {
	ID      uint16
	X, Y    float64
	Advance float64
	// Cluster is the index of the first rune of the source text that
	// produced this glyph.
	Cluster int
}

// GlyphRun is a sequence of glyphs drawn with one face.
type GlyphRun struct {
	Face      *Face
	Glyphs    []Glyph
	Direction Direction
	// X is the offset of the run from the start of the line.
	X float64
	// Width is the sum of the glyph advances.
	Width float64
}

// Shaper converts text into positioned glyph runs laid out left to right
// from x = 0.
type Shaper interface {
	Shape(s string, cascade *Cascade, dir Direction) []GlyphRun
}

type segment struct {
	start, end int
	face       int
	rtl        bool
}

// strongRTL reports whether r has a strong right-to-left bidi class.
// Neutral and weak characters report ok = false.
func strongRTL(r rune) (rtl, ok bool) {
	p, _ := bidi.LookupRune(r)
	switch p.Class() {
	case bidi.L:
		return false, true
	case bidi.R, bidi.AL:
		return true, true
	}
	return false, false
}

// segmentRunes splits text where the fallback face or the strong direction
// changes. Neutral characters stay with the preceding segment.
func segmentRunes(runes []rune, c *Cascade, base Direction) []segment {
	var segs []segment
	for i, r := range runes {
		face := -1
		if !unicode.IsSpace(r) && unicode.IsGraphic(r) {
			face = c.FaceFor(r)
		}
		rtl, strong := strongRTL(r)
		if len(segs) == 0 {
			s := segment{start: i, end: i + 1, face: max(face, 0), rtl: base == RTL}
			if strong {
				s.rtl = rtl
			}
			segs = append(segs, s)
			continue
		}
		last := &segs[len(segs)-1]
		if (face < 0 || face == last.face) && (!strong || rtl == last.rtl) {
			last.end = i + 1
			continue
		}
		s := segment{start: i, end: i + 1, face: last.face, rtl: last.rtl}
		if face >= 0 {
			s.face = face
		}
		if strong {
			s.rtl = rtl
		}
		segs = append(segs, s)
	}
	return segs
}

// layoutRuns places runs side by side, in reverse order for RTL paragraphs.
func layoutRuns(runs []GlyphRun, base Direction) []GlyphRun {
	if base == RTL {
		slices.Reverse(runs)
	}
	x := 0.0
	for i := range runs {
		runs[i].X = x
		x += runs[i].Width
	}
	return runs
}

// HarfbuzzShaper shapes text with go-text/typesetting, which supports
// ligatures, kerning and complex scripts.
//
// HarfbuzzShaper is safe for concurrent use. The underlying
// shaping.HarfbuzzShaper instances are pooled since they are not.
type HarfbuzzShaper struct {
	pool sync.Pool
}

// NewHarfbuzzShaper creates a new HarfbuzzShaper.
func NewHarfbuzzShaper() *HarfbuzzShaper {
	return &HarfbuzzShaper{
		pool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
	}
}

// Shape implements Shaper. Faces whose font cannot be loaded for shaping
// fall back to SimpleShaper.
func (s *HarfbuzzShaper) Shape(str string, c *Cascade, dir Direction) []GlyphRun {
	if str == "" || c.Len() == 0 {
		return nil
	}
	runes := []rune(str)
	var runs []GlyphRun
	for _, seg := range segmentRunes(runes, c, dir) {
		face := c.faces[seg.face]
		gtf, err := face.source.shaping()
		if err != nil {
			logger().Debug("text: shaping without harfbuzz", "font", face.source.name, "error", err)
			runs = append(runs, shapeSimple(runes, seg, face))
			continue
		}
		runs = append(runs, s.shapeSegment(runes, seg, face, gtf))
	}
	return layoutRuns(runs, dir)
}

func (s *HarfbuzzShaper) shapeSegment(runes []rune, seg segment, face *Face, f *gtfont.Font) GlyphRun {
	direction := di.DirectionLTR
	if seg.rtl {
		direction = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  seg.start,
		RunEnd:    seg.end,
		Direction: direction,
		Face:      gtfont.NewFace(f),
		Size:      fixed.Int26_6(face.size * 64),
		Script:    detectScript(runes[seg.start:seg.end]),
		Language:  language.NewLanguage("en"),
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	run := GlyphRun{Face: face, Direction: LTR}
	if seg.rtl {
		run.Direction = RTL
	}
	x := 0.0
	for _, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance)
		run.Glyphs = append(run.Glyphs, Glyph{
			ID:      uint16(g.GlyphID), //nolint:gosec // OpenType glyph IDs are 16-bit
			X:       x + fixedToFloat(g.XOffset),
			Y:       -fixedToFloat(g.YOffset),
			Advance: adv,
			Cluster: g.TextIndex(),
		})
		x += adv
	}
	run.Width = x
	return run
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// SimpleShaper maps each character to its nominal glyph and advances by
// the glyph's advance width. It applies no kerning or ligatures.
type SimpleShaper struct{}

// Shape implements Shaper.
func (SimpleShaper) Shape(str string, c *Cascade, dir Direction) []GlyphRun {
	if str == "" || c.Len() == 0 {
		return nil
	}
	runes := []rune(str)
	var runs []GlyphRun
	for _, seg := range segmentRunes(runes, c, dir) {
		runs = append(runs, shapeSimple(runes, seg, c.faces[seg.face]))
	}
	return layoutRuns(runs, dir)
}

func shapeSimple(runes []rune, seg segment, face *Face) GlyphRun {
	run := GlyphRun{Face: face}
	if seg.rtl {
		run.Direction = RTL
	}
	x := 0.0
	add := func(i int) {
		gid, _ := face.GlyphIndex(runes[i])
		adv := face.Advance(gid)
		run.Glyphs = append(run.Glyphs, Glyph{ID: gid, X: x, Advance: adv, Cluster: i})
		x += adv
	}
	if seg.rtl {
		for i := seg.end - 1; i >= seg.start; i-- {
			add(i)
		}
	} else {
		for i := seg.start; i < seg.end; i++ {
			add(i)
		}
	}
	run.Width = x
	return run
}

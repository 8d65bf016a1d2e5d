package text

import (
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/canvas/internal/cache"
)

// Face is a FontSource at a specific pixel size.
//
// Face is safe for concurrent use.
type Face struct {
	source *FontSource
	size   float64

	mu       sync.Mutex
	buf      sfnt.Buffer
	metrics  *Metrics
	outlines *cache.Cache[uint16, []Segment]
}

// outlineCacheSize bounds the decoded outlines kept per face.
const outlineCacheSize = 512

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource { return f.source }

// Size returns the pixel size of the face.
func (f *Face) Size() float64 { return f.size }

func (f *Face) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.size * 64)
}

// Metrics returns the font metrics at this face's size.
func (f *Face) Metrics() Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.metrics != nil {
		return *f.metrics
	}
	m, err := f.source.font.Metrics(&f.buf, f.ppem(), xfont.HintingNone)
	var out Metrics
	if err == nil {
		out = Metrics{Ascent: fixedToFloat(m.Ascent), Descent: fixedToFloat(m.Descent)}
		if out.Descent < 0 {
			out.Descent = -out.Descent
		}
	}
	f.metrics = &out
	return out
}

// Baseline returns the distance from the top of the em box to the
// alphabetic baseline.
func (f *Face) Baseline() float64 {
	return f.Metrics().Ascent
}

// GlyphIndex returns the glyph for r. ok is false when the font has no
// glyph for r.
func (f *Face) GlyphIndex(r rune) (gid uint16, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.source.font.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return uint16(idx), true
}

// HasGlyph reports whether the font has a glyph for the given rune.
func (f *Face) HasGlyph(r rune) bool {
	_, ok := f.GlyphIndex(r)
	return ok
}

// Advance returns the unhinted advance width of glyph gid in pixels.
func (f *Face) Advance(gid uint16) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	adv, err := f.source.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.ppem(), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

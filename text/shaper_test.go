package text

import (
	"math"
	"testing"
)

func defaultCascade(t *testing.T, size float64) *Cascade {
	t.Helper()
	d := DefaultDescriptor()
	d.Size = size
	c, err := DefaultRegistry().Resolve(d)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestShapers(t *testing.T) {
	c := defaultCascade(t, 16)
	for name, s := range map[string]Shaper{
		"harfbuzz": NewHarfbuzzShaper(),
		"simple":   SimpleShaper{},
	} {
		t.Run(name, func(t *testing.T) {
			runs := s.Shape("Hello", c, LTR)
			if len(runs) != 1 {
				t.Fatalf("got %d runs, want 1", len(runs))
			}
			r := runs[0]
			if len(r.Glyphs) != 5 {
				t.Fatalf("got %d glyphs, want 5", len(r.Glyphs))
			}
			sum := 0.0
			for i, g := range r.Glyphs {
				if g.ID == 0 {
					t.Errorf("glyph %d is .notdef", i)
				}
				sum += g.Advance
			}
			if r.Width <= 0 || math.Abs(sum-r.Width) > 1e-9 {
				t.Errorf("width = %v, advances sum to %v", r.Width, sum)
			}
			if r.Glyphs[0].X != 0 || r.Glyphs[1].X <= 0 {
				t.Errorf("glyph positions %v, %v", r.Glyphs[0].X, r.Glyphs[1].X)
			}
		})
	}
}

func TestShapeEmpty(t *testing.T) {
	if runs := NewHarfbuzzShaper().Shape("", defaultCascade(t, 10), LTR); runs != nil {
		t.Errorf("got %v", runs)
	}
	if runs := (SimpleShaper{}).Shape("abc", nil, LTR); runs != nil {
		t.Errorf("nil cascade: got %v", runs)
	}
}

func TestShapeScalesWithSize(t *testing.T) {
	s := NewHarfbuzzShaper()
	small := s.Shape("width", defaultCascade(t, 10), LTR)[0].Width
	large := s.Shape("width", defaultCascade(t, 20), LTR)[0].Width
	if math.Abs(large-2*small) > 0.5 {
		t.Errorf("20px width %v is not twice 10px width %v", large, small)
	}
}

func TestSegmentRunesSplitsDirection(t *testing.T) {
	c := defaultCascade(t, 10)
	segs := segmentRunes([]rune("ab אב cd"), c, LTR)
	if len(segs) != 3 {
		t.Fatalf("got %d segments %+v, want 3", len(segs), segs)
	}
	if segs[0].rtl || !segs[1].rtl || segs[2].rtl {
		t.Errorf("directions = %v %v %v", segs[0].rtl, segs[1].rtl, segs[2].rtl)
	}
	if segs[1].start != 3 || segs[1].end != 6 {
		t.Errorf("hebrew segment = [%d,%d), want [3,6)", segs[1].start, segs[1].end)
	}
}

func TestLayoutRunsRTL(t *testing.T) {
	runs := []GlyphRun{{Width: 1}, {Width: 2}, {Width: 4}}
	out := layoutRuns(runs, RTL)
	if out[0].Width != 4 || out[0].X != 0 || out[1].X != 4 || out[2].X != 6 {
		t.Errorf("layout = %+v", out)
	}
}

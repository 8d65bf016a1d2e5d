package canvas

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/canvas/text"
)

func TestMeasureTextEmpty(t *testing.T) {
	m := NewContext(1, 1).MeasureText("")
	if m.Width != 0 || m.ActualBoundingBoxLeft != 0 || m.ActualBoundingBoxRight != 0 {
		t.Errorf("metrics = %+v, want zero width and box", m)
	}
}

func TestMeasureText(t *testing.T) {
	ctx := NewContext(1, 1)
	small := ctx.MeasureText("Hello")
	if small.Width <= 0 {
		t.Fatalf("width = %v, want positive", small.Width)
	}
	if small.ActualBoundingBoxRight != small.Width || small.ActualBoundingBoxLeft != 0 {
		t.Errorf("box = [%v, %v], want [0, width]", small.ActualBoundingBoxLeft, small.ActualBoundingBoxRight)
	}
	if small.FontBoundingBoxAscent <= 0 {
		t.Errorf("ascent = %v, want positive", small.FontBoundingBoxAscent)
	}
	if sum := small.FontBoundingBoxAscent + small.FontBoundingBoxDescent; math.Abs(sum-10) > 1e-9 {
		t.Errorf("ascent + descent = %v, want the 10px pixel size", sum)
	}
	if small.AlphabeticBaseline != 0 || small.IdeographicBaseline != 0 {
		t.Errorf("baselines = %v, %v, want 0", small.AlphabeticBaseline, small.IdeographicBaseline)
	}

	ctx.SetFont("20px sans-serif")
	large := ctx.MeasureText("Hello")
	if math.Abs(large.Width-2*small.Width) > 0.5 {
		t.Errorf("20px width %v is not twice 10px width %v", large.Width, small.Width)
	}
}

func TestPrepareTextMaxWidth(t *testing.T) {
	ctx := NewContext(1, 1)
	for _, w := range []float64{0, -5, math.NaN()} {
		if got := ctx.PrepareText("abc", w); len(got.Runs) != 0 || got.BoundingBox != (Rect{}) {
			t.Errorf("PrepareText(maxWidth %v) = %+v, want empty", w, got)
		}
	}
}

func TestPrepareTextWhitespace(t *testing.T) {
	ctx := NewContext(1, 1)
	plain := ctx.PrepareText("a b c", math.Inf(1)).BoundingBox.W
	mixed := ctx.PrepareText("a\tb\nc", math.Inf(1)).BoundingBox.W
	if plain != mixed {
		t.Errorf("tab/newline width %v, space width %v", mixed, plain)
	}
}

func TestTextPathAlignment(t *testing.T) {
	const x, y = 100.0, 50.0
	tests := []struct {
		align, dir string
		check      func(t *testing.T, b Rect, w float64)
	}{
		{"left", "ltr", func(t *testing.T, b Rect, w float64) {
			if b.Left() < x-0.01 || b.Right() > x+w+0.01 {
				t.Errorf("box [%v, %v] not right of the anchor", b.Left(), b.Right())
			}
		}},
		{"start", "ltr", func(t *testing.T, b Rect, w float64) {
			if b.Left() < x-0.01 {
				t.Errorf("left = %v, want >= %v", b.Left(), x)
			}
		}},
		{"right", "ltr", func(t *testing.T, b Rect, w float64) {
			if b.Right() > x+0.01 || b.Left() < x-w-0.01 {
				t.Errorf("box [%v, %v] not left of the anchor", b.Left(), b.Right())
			}
		}},
		{"end", "ltr", func(t *testing.T, b Rect, w float64) {
			if b.Right() > x+0.01 {
				t.Errorf("right = %v, want <= %v", b.Right(), x)
			}
		}},
		{"start", "rtl", func(t *testing.T, b Rect, w float64) {
			if b.Right() > x+0.01 {
				t.Errorf("right = %v, want <= %v", b.Right(), x)
			}
		}},
		{"end", "rtl", func(t *testing.T, b Rect, w float64) {
			if b.Left() < x-0.01 {
				t.Errorf("left = %v, want >= %v", b.Left(), x)
			}
		}},
		{"center", "ltr", func(t *testing.T, b Rect, w float64) {
			if b.Left() < x-w/2-0.01 || b.Right() > x+w/2+0.01 || b.Left() > x || b.Right() < x {
				t.Errorf("box [%v, %v] not centered on %v", b.Left(), b.Right(), x)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.align+"/"+tt.dir, func(t *testing.T) {
			ctx := NewContext(1, 1)
			ctx.SetFont("20px sans-serif")
			ctx.SetTextAlign(tt.align)
			ctx.SetDirection(tt.dir)
			w := ctx.MeasureText("Hello").Width
			b := ctx.TextPath("Hello", x, y, math.Inf(1)).BoundingBox()
			if b.W <= 0 {
				t.Fatal("empty text path")
			}
			tt.check(t, b, w)
		})
	}
}

func TestTextPathBaseline(t *testing.T) {
	const y = 50.0
	tests := []struct {
		baseline string
		check    func(t *testing.T, b Rect)
	}{
		{"alphabetic", func(t *testing.T, b Rect) {
			if b.Bottom() > y+0.5 || b.Top() > y-10 {
				t.Errorf("box [%v, %v] should sit on the baseline", b.Top(), b.Bottom())
			}
		}},
		{"top", func(t *testing.T, b Rect) {
			if b.Top() < y-0.01 {
				t.Errorf("top = %v, want below %v", b.Top(), y)
			}
		}},
		{"hanging", func(t *testing.T, b Rect) {
			if b.Top() < y-0.01 {
				t.Errorf("top = %v, want below %v", b.Top(), y)
			}
		}},
		{"middle", func(t *testing.T, b Rect) {
			if b.Top() > y || b.Bottom() < y {
				t.Errorf("box [%v, %v] should straddle %v", b.Top(), b.Bottom(), y)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.baseline, func(t *testing.T) {
			ctx := NewContext(1, 1)
			ctx.SetFont("20px sans-serif")
			ctx.SetTextBaseline(tt.baseline)
			tt.check(t, ctx.TextPath("H", 0, y, math.Inf(1)).BoundingBox())
		})
	}
}

func TestTextPathSqueeze(t *testing.T) {
	ctx := NewContext(1, 1)
	ctx.SetFont("20px sans-serif")
	full := ctx.TextPath("Hello world", 0, 50, math.Inf(1)).BoundingBox()
	squeezed := ctx.TextPath("Hello world", 0, 50, 20).BoundingBox()
	if squeezed.W > 20.01 {
		t.Errorf("squeezed width = %v, want <= 20", squeezed.W)
	}
	if math.Abs(squeezed.H-full.H) > 1e-6 {
		t.Errorf("squeeze changed the height: %v vs %v", squeezed.H, full.H)
	}
}

func TestFillText(t *testing.T) {
	ctx := NewContext(32, 32)
	ctx.SetFont("24px sans-serif")
	ctx.FillText("H", 4, 26)

	covered := 0
	s := ctx.Surface()
	for y := range 32 {
		for x := range 32 {
			if s.GetPixel(x, y).A > 0 {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Fatal("FillText painted nothing")
	}
	if s.GetPixel(31, 31).A != 0 {
		t.Error("FillText painted outside the glyph")
	}
}

func TestTextNonFiniteIsNoop(t *testing.T) {
	rec, opt := newRecorder()
	ctx := NewContext(8, 8, opt)
	ctx.FillText("a", math.NaN(), 0)
	ctx.StrokeText("a", 0, math.Inf(1))
	ctx.FillTextMaxWidth("a", 0, 0, math.NaN())
	for _, w := range []float64{math.Inf(1), math.Inf(-1)} {
		ctx.FillTextMaxWidth("a", 1, 6, w)
		ctx.StrokeTextMaxWidth("a", 1, 6, w)
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, want none", rec.ops())
	}

	ctx.FillText("a", 1, 6)
	ctx.StrokeText("a", 1, 6)
	if len(rec.calls) != 2 {
		t.Errorf("calls = %v, want a fill and a stroke", rec.ops())
	}
}

func TestTextDirectionInherit(t *testing.T) {
	ctx := NewContext(1, 1)
	tests := []struct {
		s    string
		want text.Direction
	}{
		{"abc", text.LTR},
		{"שלום", text.RTL},
		{"  123 مرحبا", text.RTL},
		{"123", text.LTR},
		{"", text.LTR},
	}
	for _, tt := range tests {
		if got := ctx.textDirection(tt.s); got != tt.want {
			t.Errorf("textDirection(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
	ctx.SetDirection("rtl")
	if got := ctx.textDirection("abc"); got != text.RTL {
		t.Errorf("explicit rtl = %v", got)
	}
}

type failingResolver struct{}

func (failingResolver) Resolve(text.Descriptor) (*text.Cascade, error) {
	return nil, errors.New("no fonts")
}

func TestTextWithoutFonts(t *testing.T) {
	ctx := NewContext(8, 8, WithFontResolver(failingResolver{}))
	if m := ctx.MeasureText("abc"); m.Width != 0 {
		t.Errorf("width = %v, want 0", m.Width)
	}
	ctx.FillText("abc", 0, 8)
	if ctx.Surface().GetPixel(2, 6).A != 0 {
		t.Error("text painted without fonts")
	}
}

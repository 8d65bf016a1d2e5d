package canvas

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"slices"
	"testing"
)

func TestFillRect(t *testing.T) {
	ctx := NewContext(8, 8)
	ctx.SetFillStyle("red")
	ctx.FillRect(2, 2, 4, 4)

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{2, 2, red},
		{5, 5, red},
		{1, 1, transparent},
		{6, 6, transparent},
	}
	for _, tt := range tests {
		if got := pixel(ctx, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if !ctx.CurrentPath().IsEmpty() {
		t.Error("FillRect changed the current path")
	}
}

func TestFillRectNegativeSize(t *testing.T) {
	a := NewContext(8, 8)
	a.FillRect(2, 1, 4, 5)
	b := NewContext(8, 8)
	b.FillRect(6, 6, -4, -5)
	if !bytes.Equal(a.Surface().Data(), b.Surface().Data()) {
		t.Error("negative-size rect differs from the positive one")
	}
}

func TestFillRectNonFinite(t *testing.T) {
	rec, opt := newRecorder()
	ctx := NewContext(4, 4, opt)
	ctx.FillRect(math.NaN(), 0, 1, 1)
	ctx.StrokeRect(0, math.Inf(1), 1, 1)
	ctx.ClearRect(0, 0, math.Inf(-1), 1)
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, want none", rec.ops())
	}
}

func TestTransparentFillIsNoop(t *testing.T) {
	ctx := NewContext(4, 4)
	ctx.SetFillStyle("red")
	ctx.FillRect(0, 0, 4, 4)

	ctx.SetFillStyle("transparent")
	ctx.SetGlobalCompositeOperation("copy")
	ctx.FillRect(0, 0, 2, 2)
	if got := pixel(ctx, 3, 3); got != red {
		t.Errorf("pixel = %v, want red: invisible style must not draw", got)
	}
}

func TestFillTransform(t *testing.T) {
	ctx := NewContext(8, 8)
	ctx.SetFillStyle("red")
	ctx.Translate(4, 4)
	ctx.FillRect(0, 0, 2, 2)
	if got := pixel(ctx, 5, 5); got != red {
		t.Errorf("translated pixel = %v, want red", got)
	}
	if got := pixel(ctx, 1, 1); got != transparent {
		t.Errorf("origin pixel = %v, want transparent", got)
	}
}

func TestFillRules(t *testing.T) {
	tests := []struct {
		rule WindingRule
		want color.NRGBA
	}{
		{NonZero, red},
		{EvenOdd, transparent},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			ctx := NewContext(10, 10)
			ctx.SetFillStyle("red")
			ctx.Rect(0, 0, 10, 10)
			ctx.Rect(3, 3, 4, 4)
			ctx.Fill(tt.rule)
			if got := pixel(ctx, 5, 5); got != tt.want {
				t.Errorf("center = %v, want %v", got, tt.want)
			}
			if got := pixel(ctx, 1, 1); got != red {
				t.Errorf("ring = %v, want red", got)
			}
		})
	}
}

func TestStroke(t *testing.T) {
	ctx := NewContext(10, 10)
	ctx.SetStrokeStyle("red")
	ctx.SetLineWidth(2)
	ctx.MoveTo(0, 5)
	ctx.LineTo(10, 5)
	ctx.Stroke()
	if got := pixel(ctx, 5, 4); got != red {
		t.Errorf("on the line = %v, want red", got)
	}
	if got := pixel(ctx, 5, 1); got != transparent {
		t.Errorf("off the line = %v, want transparent", got)
	}
}

func TestStrokeParamsFromState(t *testing.T) {
	rec, opt := newRecorder()
	ctx := NewContext(10, 10, opt)
	ctx.SetLineWidth(3)
	ctx.SetLineCap("square")
	ctx.SetLineJoin("round")
	ctx.SetMiterLimit(4)
	ctx.SetLineDash([]float64{2, 1})
	ctx.SetLineDashOffset(0.5)
	ctx.StrokeRect(1, 1, 5, 5)

	if !slices.Equal(rec.ops(), []string{"stroke"}) {
		t.Fatalf("calls = %v", rec.ops())
	}
	s := rec.calls[0].stroke
	if s.Width != 3 || s.Cap != LineCapSquare || s.Join != LineJoinRound || s.MiterLimit != 4 {
		t.Errorf("stroke params = %+v", s)
	}
	if !slices.Equal(s.Dash, []float32{2, 1}) || s.DashOffset != 0.5 {
		t.Errorf("dash = %v offset %v", s.Dash, s.DashOffset)
	}
}

func TestShadowPass(t *testing.T) {
	rec, opt := newRecorder()
	ctx := NewContext(10, 10, opt)
	ctx.SetFillStyle("rgba(255, 0, 0, 0.5)")
	ctx.SetShadowColor("blue")
	ctx.SetShadowOffsetX(3)
	ctx.SetShadowBlur(2)
	ctx.Translate(1, 1)
	ctx.FillRect(0, 0, 2, 2)

	if !slices.Equal(rec.ops(), []string{"fill", "fill"}) {
		t.Fatalf("calls = %v, want shadow then fill", rec.ops())
	}
	shadow, main := rec.calls[0], rec.calls[1]
	if want := Translate(3, 0).Multiply(Translate(1, 1)); shadow.transform != want {
		t.Errorf("shadow transform = %+v, want %+v", shadow.transform, want)
	}
	if main.transform != Translate(1, 1) {
		t.Errorf("fill transform = %+v, want the current transform", main.transform)
	}
	// A translucent solid fill lends its alpha to the shadow color.
	if want := (SolidColor{Color: color.NRGBA{B: 255, A: 128}}); shadow.paint.Style != want {
		t.Errorf("shadow style = %v, want %v", shadow.paint.Style, want)
	}
	if shadow.paint.Blur != 2 || shadow.paint.Alpha != 1 {
		t.Errorf("shadow blur/alpha = %v/%v, want 2/1", shadow.paint.Blur, shadow.paint.Alpha)
	}
	if main.paint.Blur != 0 {
		t.Errorf("main blur = %v, want 0", main.paint.Blur)
	}
}

func TestShadowSkipped(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Context)
	}{
		{"no offset or blur", func(c *Context) { c.SetShadowColor("blue") }},
		{"copy operator", func(c *Context) {
			c.SetShadowColor("blue")
			c.SetShadowOffsetY(2)
			c.SetGlobalCompositeOperation("copy")
		}},
		{"zero global alpha", func(c *Context) {
			c.SetShadowColor("blue")
			c.SetShadowBlur(3)
			c.SetGlobalAlpha(0)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, opt := newRecorder()
			ctx := NewContext(10, 10, opt)
			tt.setup(ctx)
			ctx.FillRect(0, 0, 2, 2)
			if got := rec.ops(); !slices.Equal(got, []string{"fill"}) {
				t.Errorf("calls = %v, want a single fill", got)
			}
		})
	}
}

func TestStrokeShadowUsesShadowAlpha(t *testing.T) {
	rec, opt := newRecorder()
	ctx := NewContext(10, 10, opt)
	ctx.SetShadowOffsetX(1)
	// Transparent default shadow color: strokes cast no shadow.
	ctx.StrokeRect(1, 1, 4, 4)
	if got := rec.ops(); !slices.Equal(got, []string{"stroke"}) {
		t.Fatalf("calls = %v, want a single stroke", got)
	}

	rec.calls = nil
	ctx.SetShadowColor("rgba(0, 0, 255, 0.5)")
	ctx.SetGlobalAlpha(0.5)
	ctx.StrokeRect(1, 1, 4, 4)
	if got := rec.ops(); !slices.Equal(got, []string{"stroke", "stroke"}) {
		t.Fatalf("calls = %v, want shadow then stroke", got)
	}
	if want := (SolidColor{Color: color.NRGBA{B: 255, A: 64}}); rec.calls[0].paint.Style != want {
		t.Errorf("shadow style = %v, want %v", rec.calls[0].paint.Style, want)
	}
}

func TestShadowPixels(t *testing.T) {
	ctx := NewContext(10, 10)
	ctx.SetFillStyle("red")
	ctx.SetShadowColor("blue")
	ctx.SetShadowOffsetX(4)
	ctx.SetShadowOffsetY(4)
	ctx.FillRect(0, 0, 3, 3)

	if got := pixel(ctx, 1, 1); got != red {
		t.Errorf("shape = %v, want red", got)
	}
	// An opaque fill gives the shadow full opacity.
	if got := pixel(ctx, 5, 5); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("shadow = %v, want blue", got)
	}
	if got := pixel(ctx, 8, 8); got != transparent {
		t.Errorf("beyond shadow = %v, want transparent", got)
	}
}

func TestClearRect(t *testing.T) {
	ctx := NewContext(4, 4)
	ctx.SetFillStyle("red")
	ctx.FillRect(0, 0, 4, 4)
	ctx.SetGlobalAlpha(0.5)
	ctx.SetGlobalCompositeOperation("lighter")
	ctx.ClearRect(0, 0, 2, 2)
	if got := pixel(ctx, 1, 1); got != transparent {
		t.Errorf("cleared pixel = %v, want transparent", got)
	}
	if got := pixel(ctx, 3, 3); got != red {
		t.Errorf("outside pixel = %v, want red", got)
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		name      string
		drawFirst bool
	}{
		{"before the painter exists", false},
		{"after drawing", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(8, 8)
			if tt.drawFirst {
				ctx.ClearRect(0, 0, 1, 1)
			}
			ctx.SetFillStyle("red")
			ctx.Rect(0, 0, 4, 4)
			ctx.Clip(NonZero)
			ctx.FillRect(0, 0, 8, 8)
			if got := pixel(ctx, 2, 2); got != red {
				t.Errorf("inside clip = %v, want red", got)
			}
			if got := pixel(ctx, 6, 6); got != transparent {
				t.Errorf("outside clip = %v, want transparent", got)
			}
		})
	}
}

func TestClipRestored(t *testing.T) {
	ctx := NewContext(8, 8)
	ctx.SetFillStyle("red")
	ctx.Save()
	ctx.ClipPath(RectPath(0, 0, 2, 2), NonZero)
	ctx.Restore()
	ctx.FillRect(0, 0, 8, 8)
	if got := pixel(ctx, 6, 6); got != red {
		t.Errorf("pixel = %v, want red after the clip was restored", got)
	}
}

func TestClipClearRect(t *testing.T) {
	ctx := NewContext(8, 8)
	ctx.SetFillStyle("red")
	ctx.FillRect(0, 0, 8, 8)
	ctx.ClipPath(RectPath(0, 0, 4, 8), NonZero)
	ctx.ClearRect(0, 0, 8, 8)
	if got := pixel(ctx, 1, 1); got != transparent {
		t.Errorf("inside clip = %v, want cleared", got)
	}
	if got := pixel(ctx, 6, 1); got != red {
		t.Errorf("outside clip = %v, want red", got)
	}
}

func TestIsPointInPath(t *testing.T) {
	ctx := NewContext(1, 1)
	ctx.Rect(0, 0, 10, 10)
	ctx.Rect(3, 3, 4, 4)

	tests := []struct {
		x, y float64
		rule WindingRule
		want bool
	}{
		{1, 1, NonZero, true},
		{5, 5, NonZero, true},
		{5, 5, EvenOdd, false},
		{15, 5, NonZero, false},
		{math.NaN(), 5, NonZero, false},
	}
	for _, tt := range tests {
		if got := ctx.IsPointInPath(tt.x, tt.y, tt.rule); got != tt.want {
			t.Errorf("IsPointInPath(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.rule, got, tt.want)
		}
	}
}

func TestIsPointInPathTransformed(t *testing.T) {
	ctx := NewContext(1, 1)
	p := RectPath(0, 0, 10, 10)
	ctx.Translate(100, 0)
	if !ctx.IsPointInPathOf(p, 105, 5, NonZero) {
		t.Error("device point should map back into the path")
	}
	if ctx.IsPointInPathOf(p, 5, 5, NonZero) {
		t.Error("untransformed point should miss")
	}

	// A singular transform tests the point as given.
	ctx.SetTransform(0, 0, 0, 0, 0, 0)
	if !ctx.IsPointInPathOf(p, 5, 5, NonZero) {
		t.Error("singular transform should leave the point untransformed")
	}
}

func TestIsPointInStroke(t *testing.T) {
	ctx := NewContext(1, 1)
	ctx.SetLineWidth(4)
	ctx.MoveTo(0, 10)
	ctx.LineTo(20, 10)
	if !ctx.IsPointInStroke(10, 11) {
		t.Error("point on the stroke reported outside")
	}
	if ctx.IsPointInStroke(10, 15) {
		t.Error("point off the stroke reported inside")
	}
	if ctx.IsPointInStroke(-1.5, 10) {
		t.Error("butt cap should not extend past the start")
	}
	ctx.SetLineCap("square")
	if !ctx.IsPointInStroke(-1.5, 10) {
		t.Error("square cap should extend past the start")
	}
}

func TestPathErrors(t *testing.T) {
	ctx := NewContext(1, 1)
	if err := ctx.Arc(0, 0, -1, 0, 1, false); !errors.Is(err, ErrIndexSize) {
		t.Errorf("Arc error = %v, want IndexSize", err)
	}
	if err := ctx.ArcTo(0, 0, 1, 1, -1); !errors.Is(err, ErrIndexSize) {
		t.Errorf("ArcTo error = %v, want IndexSize", err)
	}
	if err := ctx.Ellipse(0, 0, 1, -1, 0, 0, 1, false); !errors.Is(err, ErrIndexSize) {
		t.Errorf("Ellipse error = %v, want IndexSize", err)
	}
	if err := ctx.RoundRect(0, 0, 1, 1); !errors.Is(err, ErrIndexSize) {
		t.Errorf("RoundRect error = %v, want IndexSize", err)
	}
	if err := ctx.Arc(0, 0, math.NaN(), 0, 1, false); err != nil {
		t.Errorf("non-finite Arc error = %v, want nil", err)
	}
}

func TestPatternTaintsCanvas(t *testing.T) {
	ctx := NewContext(4, 4)
	src := NewBitmap(2, 2, FormatRGBA8888)
	src.Clear(premultiply(red))

	ctx.SetFillPaint(NewPattern(src, Repeat, true))
	ctx.FillRect(0, 0, 4, 4)
	if !ctx.OriginClean() {
		t.Fatal("origin-clean pattern tainted the canvas")
	}

	ctx.SetFillPaint(NewPattern(src, Repeat, false))
	ctx.FillRect(0, 0, 1, 1)
	if ctx.OriginClean() {
		t.Fatal("cross-origin pattern did not taint the canvas")
	}
	if _, err := ctx.GetImageData(0, 0, 1, 1); !errors.Is(err, ErrSecurity) {
		t.Errorf("GetImageData error = %v, want Security", err)
	}
}

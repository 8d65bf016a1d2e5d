package canvas

import (
	"errors"
	"image/color"
	"math"
	"slices"
	"testing"
)

func TestNewContextAllocatesLazily(t *testing.T) {
	ctx := NewContext(4, 3)
	if ctx.surface != nil {
		t.Fatal("surface allocated before first use")
	}
	s := ctx.Surface()
	if s == nil {
		t.Fatal("Surface() = nil")
	}
	if s.Width() != 4 || s.Height() != 3 {
		t.Errorf("surface size = %dx%d, want 4x3", s.Width(), s.Height())
	}
	if ctx.Surface() != s {
		t.Error("second Surface() call reallocated")
	}
}

func TestZeroSizeContext(t *testing.T) {
	ctx := NewContext(0, 10)
	if ctx.Surface() != nil {
		t.Error("zero-width context has a surface")
	}
	// Drawing without a surface is a no-op.
	ctx.FillRect(0, 0, 10, 10)
	if got := ctx.Snapshot().Usability; got != Bad {
		t.Errorf("Snapshot().Usability = %v, want %v", got, Bad)
	}
}

func TestOpaqueContextStartsBlack(t *testing.T) {
	ctx := NewContext(2, 2, WithAlpha(false))
	ctx.Surface()
	img, err := ctx.GetImageData(0, 0, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.At(1, 1); got != Black {
		t.Errorf("pixel = %v, want opaque black", got)
	}

	ctx.FillRect(0, 0, 2, 2)
	ctx.ClearRect(0, 0, 2, 2)
	if got := pixel(ctx, 0, 0); got != Black {
		t.Errorf("cleared opaque pixel = %v, want opaque black", got)
	}
}

func TestSetSizeDropsSurface(t *testing.T) {
	ctx := NewContext(4, 4)
	ctx.FillRect(0, 0, 4, 4)
	ctx.SetSize(4, 4)
	if ctx.surface == nil {
		t.Fatal("same size dropped the surface")
	}
	ctx.SetSize(8, 2)
	if ctx.surface != nil || ctx.painter != nil {
		t.Fatal("new size kept the old surface")
	}
	if got := pixel(ctx, 0, 0); got != transparent {
		t.Errorf("resized surface pixel = %v, want transparent", got)
	}
}

func TestSaveRestore(t *testing.T) {
	ctx := NewContext(1, 1)
	ctx.SetLineWidth(5)
	ctx.Save()
	ctx.SetLineWidth(2)
	ctx.SetFillStyle("red")
	ctx.Translate(3, 4)
	ctx.Restore()

	if got := ctx.LineWidth(); got != 5 {
		t.Errorf("LineWidth() = %v, want 5", got)
	}
	if got := ctx.FillStyle(); got != (SolidColor{Color: Black}) {
		t.Errorf("FillStyle() = %v, want black", got)
	}
	if !ctx.GetTransform().IsIdentity() {
		t.Errorf("transform = %+v, want identity", ctx.GetTransform())
	}

	// Unbalanced restores keep the base state.
	ctx.Restore()
	ctx.Restore()
	if got := ctx.stack.depth(); got != 1 {
		t.Errorf("depth = %d, want 1", got)
	}
	if got := ctx.LineWidth(); got != 5 {
		t.Errorf("LineWidth() after extra Restore = %v, want 5", got)
	}
}

func TestSaveCopiesLineDash(t *testing.T) {
	ctx := NewContext(1, 1)
	ctx.SetLineDash([]float64{1, 2})
	ctx.Save()
	ctx.SetLineDash([]float64{5, 5})
	ctx.Restore()
	if got := ctx.LineDash(); !slices.Equal(got, []float64{1, 2}) {
		t.Errorf("LineDash() = %v, want [1 2]", got)
	}
}

func TestNumericSettersIgnoreInvalid(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name string
		set  func(*Context, float64)
		get  func(*Context) float64
		bad  []float64
	}{
		{"line width", (*Context).SetLineWidth, (*Context).LineWidth, []float64{0, -1, nan, inf}},
		{"miter limit", (*Context).SetMiterLimit, (*Context).MiterLimit, []float64{0, -2, nan, inf}},
		{"global alpha", (*Context).SetGlobalAlpha, (*Context).GlobalAlpha, []float64{-0.1, 1.1, nan, inf}},
		{"shadow blur", (*Context).SetShadowBlur, (*Context).ShadowBlur, []float64{-1, nan, inf}},
		{"shadow offset x", (*Context).SetShadowOffsetX, (*Context).ShadowOffsetX, []float64{nan, inf, -inf}},
		{"shadow offset y", (*Context).SetShadowOffsetY, (*Context).ShadowOffsetY, []float64{nan, inf}},
		{"dash offset", (*Context).SetLineDashOffset, (*Context).LineDashOffset, []float64{nan, -inf}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(1, 1)
			want := tt.get(ctx)
			for _, v := range tt.bad {
				tt.set(ctx, v)
				if got := tt.get(ctx); got != want {
					t.Errorf("after set(%v) = %v, want %v", v, got, want)
				}
			}
		})
	}
}

func TestGlobalAlphaBounds(t *testing.T) {
	ctx := NewContext(1, 1)
	for _, v := range []float64{0, 0.25, 1} {
		ctx.SetGlobalAlpha(v)
		if got := ctx.GlobalAlpha(); got != v {
			t.Errorf("GlobalAlpha() = %v, want %v", got, v)
		}
	}
}

func TestSetLineDash(t *testing.T) {
	ctx := NewContext(1, 1)
	ctx.SetLineDash([]float64{1, 2, 3})
	if got := ctx.LineDash(); !slices.Equal(got, []float64{1, 2, 3, 1, 2, 3}) {
		t.Errorf("odd dash = %v, want doubled", got)
	}
	ctx.SetLineDash([]float64{4, -1})
	ctx.SetLineDash([]float64{4, math.NaN()})
	if got := ctx.LineDash(); len(got) != 6 {
		t.Errorf("invalid dash replaced the pattern: %v", got)
	}
	ctx.SetLineDash(nil)
	if got := ctx.LineDash(); got == nil || len(got) != 0 {
		t.Errorf("LineDash() = %#v, want empty non-nil", got)
	}
}

func TestStringSetters(t *testing.T) {
	ctx := NewContext(1, 1)

	ctx.SetGlobalCompositeOperation("multiply")
	ctx.SetGlobalCompositeOperation("not-an-operator")
	if got := ctx.GlobalCompositeOperation(); got != "multiply" {
		t.Errorf("GlobalCompositeOperation() = %q, want multiply", got)
	}

	ctx.SetLineCap("round")
	ctx.SetLineCap("pointy")
	if got := ctx.LineCap(); got != "round" {
		t.Errorf("LineCap() = %q, want round", got)
	}

	ctx.SetLineJoin("bevel")
	ctx.SetLineJoin("")
	if got := ctx.LineJoin(); got != "bevel" {
		t.Errorf("LineJoin() = %q, want bevel", got)
	}

	ctx.SetTextAlign("center")
	ctx.SetTextAlign("middle")
	if got := ctx.TextAlign(); got != "center" {
		t.Errorf("TextAlign() = %q, want center", got)
	}

	ctx.SetTextBaseline("hanging")
	if got := ctx.TextBaseline(); got != "hanging" {
		t.Errorf("TextBaseline() = %q, want hanging", got)
	}

	ctx.SetDirection("rtl")
	ctx.SetDirection("up")
	if got := ctx.Direction(); got != "rtl" {
		t.Errorf("Direction() = %q, want rtl", got)
	}

	ctx.SetImageSmoothingQuality("high")
	ctx.SetImageSmoothingQuality("best")
	if got := ctx.ImageSmoothingQuality(); got != "high" {
		t.Errorf("ImageSmoothingQuality() = %q, want high", got)
	}
}

func TestColorSetters(t *testing.T) {
	ctx := NewContext(1, 1)
	ctx.SetFillStyle("#00ff00")
	ctx.SetFillStyle("not a color")
	if got := ctx.FillStyle(); got != (SolidColor{Color: green}) {
		t.Errorf("FillStyle() = %v, want green", got)
	}

	ctx.SetStrokeStyle("red")
	if got := ctx.StrokeStyle(); got != (SolidColor{Color: red}) {
		t.Errorf("StrokeStyle() = %v, want red", got)
	}

	if got := ctx.ShadowColor(); got != "rgba(0, 0, 0, 0)" {
		t.Errorf("default ShadowColor() = %q", got)
	}
	ctx.SetShadowColor("blue")
	ctx.SetShadowColor("bogus")
	if got := ctx.ShadowColor(); got != "#0000ff" {
		t.Errorf("ShadowColor() = %q, want #0000ff", got)
	}
}

func TestCustomColorParser(t *testing.T) {
	var props []ColorProperty
	parser := ColorParserFunc(func(s string, prop ColorProperty) (color.NRGBA, bool) {
		props = append(props, prop)
		return CSSColorParser.ParseColor(s, prop)
	})
	ctx := NewContext(1, 1, WithColorParser(parser))
	ctx.SetFillStyle("red")
	ctx.SetStrokeStyle("red")
	ctx.SetShadowColor("red")
	if err := ctx.CreateLinearGradient(0, 0, 1, 0).AddColorStop(0, "red"); err != nil {
		t.Fatal(err)
	}
	want := []ColorProperty{FillStyleProperty, StrokeStyleProperty, ShadowColorProperty, ColorStopProperty}
	if !slices.Equal(props, want) {
		t.Errorf("properties = %v, want %v", props, want)
	}
}

func TestFilterSetter(t *testing.T) {
	ctx := NewContext(1, 1)
	if got := ctx.Filter(); got != "none" {
		t.Errorf("default Filter() = %q, want none", got)
	}
	ctx.SetFilter("blur(2px) invert(1)")
	ctx.SetFilter("blur(")
	if got := ctx.Filter(); got != "blur(2px) invert(1)" {
		t.Errorf("Filter() = %q", got)
	}
	ctx.SetFilter("none")
	if got := ctx.Filter(); got != "none" {
		t.Errorf("Filter() after none = %q", got)
	}
}

func TestFontSetter(t *testing.T) {
	ctx := NewContext(1, 1)
	if got := ctx.Font(); got != "10px sans-serif" {
		t.Errorf("default Font() = %q", got)
	}
	ctx.SetFont("bold 20px serif")
	ctx.SetFont("twenty pixels")
	if got := ctx.Font(); got != "bold 20px serif" {
		t.Errorf("Font() = %q", got)
	}
}

func TestTransforms(t *testing.T) {
	ctx := NewContext(1, 1)
	ctx.Translate(10, 20)
	ctx.Scale(2, 2)
	if got := ctx.GetTransform().TransformPoint(Pt(1, 1)); got != Pt(12, 22) {
		t.Errorf("point = %v, want (12,22)", got)
	}

	ctx.Scale(math.NaN(), 1)
	ctx.Translate(math.Inf(1), 0)
	if got := ctx.GetTransform().TransformPoint(Pt(1, 1)); got != Pt(12, 22) {
		t.Errorf("non-finite arguments changed the transform: %v", got)
	}

	ctx.SetTransform(1, 0, 0, 1, 5, 6)
	a, b, c, d, e, f := ctx.GetTransform().Components()
	if a != 1 || b != 0 || c != 0 || d != 1 || e != 5 || f != 6 {
		t.Errorf("Components() = %v %v %v %v %v %v", a, b, c, d, e, f)
	}

	ctx.ResetTransform()
	if !ctx.GetTransform().IsIdentity() {
		t.Error("ResetTransform() did not restore identity")
	}
}

func TestReset(t *testing.T) {
	ctx := NewContext(2, 2)
	ctx.SetFillStyle("red")
	ctx.FillRect(0, 0, 2, 2)
	ctx.Save()
	ctx.SetLineWidth(7)
	ctx.Rect(0, 0, 1, 1)

	ctx.Reset()

	if got := pixel(ctx, 1, 1); got != transparent {
		t.Errorf("pixel after Reset = %v, want transparent", got)
	}
	if got := ctx.stack.depth(); got != 1 {
		t.Errorf("depth = %d, want 1", got)
	}
	if got := ctx.LineWidth(); got != 1 {
		t.Errorf("LineWidth() = %v, want 1", got)
	}
	if !ctx.CurrentPath().IsEmpty() {
		t.Error("Reset kept the current path")
	}
}

func TestAllocationFailureIsSilent(t *testing.T) {
	failing := SurfaceAllocatorFunc(func(int, int, PixelFormat) (*Bitmap, error) {
		return nil, errors.New("out of memory")
	})
	ctx := NewContext(4, 4, WithAllocator(failing))
	ctx.FillRect(0, 0, 4, 4)
	if ctx.Surface() != nil {
		t.Error("Surface() returned a bitmap from a failing allocator")
	}
	img, err := ctx.GetImageData(0, 0, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.At(0, 0); got != transparent {
		t.Errorf("pixel = %v, want transparent", got)
	}
}

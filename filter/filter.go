// Package filter parses CSS filter lists and applies them to images.
package filter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/tdewolff/parse/v2/strconv"
)

// ErrSyntax is returned for filter strings that cannot be parsed.
var ErrSyntax = errors.New("filter: invalid filter")

// Kind identifies a filter function.
type Kind uint8

const (
	Blur Kind = iota
	Brightness
	Contrast
	Grayscale
	HueRotate
	Invert
	Opacity
	Saturate
	Sepia
)

var kindNames = [...]string{
	Blur:       "blur",
	Brightness: "brightness",
	Contrast:   "contrast",
	Grayscale:  "grayscale",
	HueRotate:  "hue-rotate",
	Invert:     "invert",
	Opacity:    "opacity",
	Saturate:   "saturate",
	Sepia:      "sepia",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Function is one entry of a filter list. Amount is in pixels for Blur,
// degrees for HueRotate and a plain factor otherwise.
type Function struct {
	Kind   Kind
	Amount float64
}

func (f Function) String() string {
	switch f.Kind {
	case Blur:
		return fmt.Sprintf("blur(%gpx)", f.Amount)
	case HueRotate:
		return fmt.Sprintf("hue-rotate(%gdeg)", f.Amount)
	}
	return fmt.Sprintf("%s(%g)", f.Kind, f.Amount)
}

// Filter is an ordered list of filter functions. The zero value and nil
// are the identity filter ("none").
type Filter struct {
	Functions []Function
}

// IsIdentity reports whether applying f leaves images unchanged.
func (f *Filter) IsIdentity() bool {
	return f == nil || len(f.Functions) == 0
}

func (f *Filter) String() string {
	if f.IsIdentity() {
		return "none"
	}
	parts := make([]string, len(f.Functions))
	for i, fn := range f.Functions {
		parts[i] = fn.String()
	}
	return strings.Join(parts, " ")
}

// Parse parses a CSS filter value such as "blur(2px) grayscale(50%)".
func Parse(s string) (*Filter, error) {
	l := css.NewLexer(parse.NewInputString(s))
	var (
		f    Filter
		kind Kind
		open bool
		arg  []byte
		argT css.TokenType
	)
	fail := func() (*Filter, error) {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	idents := 0
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return fail()
			}
			break
		}
		switch {
		case tt == css.WhitespaceToken || tt == css.CommentToken:
		case !open && tt == css.IdentToken && strings.EqualFold(string(data), "none"):
			idents++
		case !open && tt == css.FunctionToken:
			k, ok := lookupKind(strings.TrimSuffix(string(data), "("))
			if !ok {
				return fail()
			}
			kind, open, arg, argT = k, true, nil, css.ErrorToken
		case open && tt == css.RightParenthesisToken:
			fn, err := makeFunction(kind, argT, arg)
			if err != nil {
				return fail()
			}
			f.Functions = append(f.Functions, fn)
			open = false
		case open && arg == nil && (tt == css.NumberToken || tt == css.PercentageToken || tt == css.DimensionToken):
			arg, argT = append([]byte(nil), data...), tt
		default:
			return fail()
		}
	}
	if open || (idents > 0 && (idents > 1 || len(f.Functions) > 0)) || (idents == 0 && len(f.Functions) == 0) {
		return fail()
	}
	return &f, nil
}

func lookupKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(k), true
		}
	}
	return 0, false
}

func makeFunction(k Kind, tt css.TokenType, arg []byte) (Function, error) {
	if arg == nil {
		switch k {
		case Blur, HueRotate:
			return Function{Kind: k}, nil
		}
		return Function{Kind: k, Amount: 1}, nil
	}
	v, n := strconv.ParseFloat(arg)
	if n == 0 {
		return Function{}, ErrSyntax
	}
	unit := string(bytes.ToLower(arg[n:]))
	switch k {
	case Blur:
		if tt == css.PercentageToken || (unit != "px" && !(tt == css.NumberToken && v == 0)) || v < 0 {
			return Function{}, ErrSyntax
		}
	case HueRotate:
		switch unit {
		case "deg", "":
			if unit == "" && v != 0 {
				return Function{}, ErrSyntax
			}
		case "rad":
			v = v * 180 / math.Pi
		case "grad":
			v *= 0.9
		case "turn":
			v *= 360
		default:
			return Function{}, ErrSyntax
		}
	default:
		if tt == css.DimensionToken || v < 0 {
			return Function{}, ErrSyntax
		}
		if tt == css.PercentageToken {
			v /= 100
		}
		switch k {
		case Grayscale, Invert, Opacity, Sepia:
			v = math.Min(v, 1)
		}
	}
	return Function{Kind: k, Amount: v}, nil
}

// Apply runs the filter list over img and returns a new image.
func (f *Filter) Apply(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	if f.IsIdentity() {
		return out
	}
	for _, fn := range f.Functions {
		out = fn.apply(out)
	}
	return out
}

func (fn Function) apply(img *image.NRGBA) *image.NRGBA {
	a := fn.Amount
	switch fn.Kind {
	case Blur:
		if a <= 0 {
			return img
		}
		return imaging.Blur(img, a)
	case Invert:
		if a == 1 {
			return imaging.Invert(img)
		}
		return adjust(img, func(c float64) float64 { return c*(1-a) + (1-c)*a })
	case Brightness:
		return adjust(img, func(c float64) float64 { return c * a })
	case Contrast:
		return adjust(img, func(c float64) float64 { return (c-0.5)*a + 0.5 })
	case Opacity:
		return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			c.A = to8(float64(c.A) / 255 * a)
			return c
		})
	case Grayscale:
		return matrix(img, grayscaleMatrix(a))
	case Sepia:
		return matrix(img, sepiaMatrix(a))
	case Saturate:
		return matrix(img, saturateMatrix(a))
	case HueRotate:
		return matrix(img, hueRotateMatrix(a))
	}
	return img
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Min(1, math.Max(0, v)) * 255))
}

func adjust(img *image.NRGBA, fn func(float64) float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: to8(fn(float64(c.R) / 255)),
			G: to8(fn(float64(c.G) / 255)),
			B: to8(fn(float64(c.B) / 255)),
			A: c.A,
		}
	})
}

type colorMatrix [3][3]float64

func matrix(img *image.NRGBA, m colorMatrix) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
		return color.NRGBA{
			R: to8(m[0][0]*r + m[0][1]*g + m[0][2]*b),
			G: to8(m[1][0]*r + m[1][1]*g + m[1][2]*b),
			B: to8(m[2][0]*r + m[2][1]*g + m[2][2]*b),
			A: c.A,
		}
	})
}

func grayscaleMatrix(a float64) colorMatrix {
	k := 1 - a
	return colorMatrix{
		{0.2126 + 0.7874*k, 0.7152 - 0.7152*k, 0.0722 - 0.0722*k},
		{0.2126 - 0.2126*k, 0.7152 + 0.2848*k, 0.0722 - 0.0722*k},
		{0.2126 - 0.2126*k, 0.7152 - 0.7152*k, 0.0722 + 0.9278*k},
	}
}

func sepiaMatrix(a float64) colorMatrix {
	k := 1 - a
	return colorMatrix{
		{0.393 + 0.607*k, 0.769 - 0.769*k, 0.189 - 0.189*k},
		{0.349 - 0.349*k, 0.686 + 0.314*k, 0.168 - 0.168*k},
		{0.272 - 0.272*k, 0.534 - 0.534*k, 0.131 + 0.869*k},
	}
}

func saturateMatrix(s float64) colorMatrix {
	return colorMatrix{
		{0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s},
		{0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s},
		{0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s},
	}
}

func hueRotateMatrix(deg float64) colorMatrix {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return colorMatrix{
		{0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928},
		{0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283},
		{0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072},
	}
}

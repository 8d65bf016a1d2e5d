// Package csscolor parses and serializes CSS color values.
//
// It accepts named colors, hex notation (#rgb, #rgba, #rrggbb, #rrggbbaa)
// and the rgb(), rgba(), hsl(), hsla() and hwb() functions in both the
// legacy comma-separated and the modern space-separated syntax.
package csscolor

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"
)

// ErrInvalid is returned for strings that are not a CSS color.
var ErrInvalid = errors.New("csscolor: invalid color")

// Transparent is fully transparent black.
var Transparent = color.NRGBA{}

type token struct {
	tt   css.TokenType
	data []byte
}

func tokenize(s string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(s))
	var toks []token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			break
		}
		if tt == css.CommentToken {
			continue
		}
		toks = append(toks, token{tt: tt, data: append([]byte(nil), data...)})
	}
	// Trim leading and trailing whitespace.
	for len(toks) > 0 && toks[0].tt == css.WhitespaceToken {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].tt == css.WhitespaceToken {
		toks = toks[:len(toks)-1]
	}
	return toks, nil
}

// Parse parses a CSS color string.
func Parse(s string) (color.NRGBA, error) {
	toks, err := tokenize(s)
	if err != nil || len(toks) == 0 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	first := toks[0]
	switch first.tt {
	case css.IdentToken:
		if len(toks) == 1 {
			if c, ok := Named(string(first.data)); ok {
				return c, nil
			}
		}
	case css.HashToken:
		if len(toks) == 1 {
			if c, ok := parseHex(first.data[1:]); ok {
				return c, nil
			}
		}
	case css.FunctionToken:
		last := toks[len(toks)-1]
		if last.tt == css.RightParenthesisToken {
			name := strings.ToLower(strings.TrimSuffix(string(first.data), "("))
			if c, err := parseFunction(name, toks[1:len(toks)-1]); err == nil {
				return c, nil
			}
		}
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalid, s)
}

// Named looks up a CSS named color, including "transparent" and
// "currentcolor" (which resolves to opaque black).
func Named(name string) (color.NRGBA, bool) {
	name = strings.ToLower(name)
	switch name {
	case "transparent":
		return Transparent, true
	case "currentcolor":
		return color.NRGBA{A: 255}, true
	case "rebeccapurple":
		return color.NRGBA{R: 0x66, G: 0x33, B: 0x99, A: 255}, true
	}
	c, ok := colornames.Map[name]
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case '0' <= b && b <= '9':
		return b - '0', true
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10, true
	case 'A' <= b && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

func parseHex(h []byte) (color.NRGBA, bool) {
	digits := make([]uint8, len(h))
	for i, b := range h {
		d, ok := hexDigit(b)
		if !ok {
			return color.NRGBA{}, false
		}
		digits[i] = d
	}
	ch := make([]uint8, 0, 4)
	switch len(digits) {
	case 3, 4:
		for _, d := range digits {
			ch = append(ch, d<<4|d)
		}
	case 6, 8:
		for i := 0; i < len(digits); i += 2 {
			ch = append(ch, digits[i]<<4|digits[i+1])
		}
	default:
		return color.NRGBA{}, false
	}
	c := color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}
	if len(ch) == 4 {
		c.A = ch[3]
	}
	return c, true
}

type component struct {
	value   float64
	percent bool
	unit    string
	none    bool
}

func parseComponent(t token) (component, error) {
	switch t.tt {
	case css.NumberToken:
		v, n := strconv.ParseFloat(t.data)
		if n != len(t.data) {
			return component{}, ErrInvalid
		}
		return component{value: v}, nil
	case css.PercentageToken:
		v, n := strconv.ParseFloat(t.data)
		if n != len(t.data)-1 {
			return component{}, ErrInvalid
		}
		return component{value: v, percent: true}, nil
	case css.DimensionToken:
		v, n := strconv.ParseFloat(t.data)
		if n == 0 {
			return component{}, ErrInvalid
		}
		return component{value: v, unit: string(bytes.ToLower(t.data[n:]))}, nil
	case css.IdentToken:
		if strings.EqualFold(string(t.data), "none") {
			return component{none: true}, nil
		}
	}
	return component{}, ErrInvalid
}

// splitArgs collects the components of a color function. The alpha
// component, if present, is returned separately.
func splitArgs(toks []token) (vals []component, alpha *component, err error) {
	commas := 0
	slash := false
	for _, t := range toks {
		switch t.tt {
		case css.WhitespaceToken:
			continue
		case css.CommaToken:
			commas++
			continue
		case css.DelimToken:
			if string(t.data) != "/" || slash || len(vals) != 3 {
				return nil, nil, ErrInvalid
			}
			slash = true
			continue
		}
		c, err := parseComponent(t)
		if err != nil {
			return nil, nil, err
		}
		vals = append(vals, c)
	}
	if commas > 0 && (slash || commas != len(vals)-1) {
		return nil, nil, ErrInvalid
	}
	switch {
	case len(vals) == 4 && (slash || commas == 3):
		a := vals[3]
		return vals[:3], &a, nil
	case len(vals) == 3 && !slash:
		return vals, nil, nil
	}
	return nil, nil, ErrInvalid
}

func parseFunction(name string, args []token) (color.NRGBA, error) {
	vals, alpha, err := splitArgs(args)
	if err != nil {
		return color.NRGBA{}, err
	}
	a := 1.0
	if alpha != nil {
		if alpha.unit != "" {
			return color.NRGBA{}, ErrInvalid
		}
		a = alpha.value
		if alpha.percent {
			a /= 100
		}
		if alpha.none {
			a = 0
		}
	}
	var r, g, b float64
	switch name {
	case "rgb", "rgba":
		ch := [3]float64{}
		for i, v := range vals {
			switch {
			case v.unit != "":
				return color.NRGBA{}, ErrInvalid
			case v.percent:
				ch[i] = v.value * 255 / 100
			default:
				ch[i] = v.value
			}
		}
		r, g, b = ch[0]/255, ch[1]/255, ch[2]/255
	case "hsl", "hsla":
		h, ok := hue(vals[0])
		if !ok || vals[1].unit != "" || vals[2].unit != "" {
			return color.NRGBA{}, ErrInvalid
		}
		r, g, b = hslToRGB(h, unit(vals[1].value/100), unit(vals[2].value/100))
	case "hwb":
		h, ok := hue(vals[0])
		if !ok || vals[1].unit != "" || vals[2].unit != "" {
			return color.NRGBA{}, ErrInvalid
		}
		r, g, b = hwbToRGB(h, unit(vals[1].value/100), unit(vals[2].value/100))
	default:
		return color.NRGBA{}, ErrInvalid
	}
	return color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: to8(a)}, nil
}

// hue converts an angle component to degrees in [0, 360).
func hue(c component) (float64, bool) {
	if c.percent {
		return 0, false
	}
	h := c.value
	switch c.unit {
	case "", "deg":
	case "rad":
		h = h * 180 / math.Pi
	case "grad":
		h = h * 0.9
	case "turn":
		h *= 360
	default:
		return 0, false
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h, true
}

func unit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func to8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(unit(v) * 255))
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	f := func(n float64) float64 {
		k := math.Mod(n+h/30, 12)
		a := s * math.Min(l, 1-l)
		return l - a*math.Max(-1, math.Min(k-3, math.Min(9-k, 1)))
	}
	return f(0), f(8), f(4)
}

func hwbToRGB(h, w, bl float64) (r, g, b float64) {
	if w+bl >= 1 {
		gray := w / (w + bl)
		return gray, gray, gray
	}
	r, g, b = hslToRGB(h, 1, 0.5)
	scale := 1 - w - bl
	return r*scale + w, g*scale + w, b*scale + w
}

// Serialize formats c the way canvas style getters report colors:
// "#rrggbb" for opaque colors and "rgba(r, g, b, a)" otherwise.
func Serialize(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(c.A))
}

// formatAlpha returns the shortest decimal that maps back to a.
func formatAlpha(a uint8) string {
	if a == 0 {
		return "0"
	}
	v := float64(a) / 255
	for prec := 2; prec < 6; prec++ {
		s := stripZeros(fmt.Sprintf("%.*f", prec, v))
		f, _ := strconv.ParseFloat([]byte(s))
		if uint8(math.Round(f*255)) == a {
			return s
		}
	}
	return stripZeros(fmt.Sprintf("%.6f", v))
}

func stripZeros(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

package text

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/tdewolff/parse/v2/strconv"
)

// Style is the CSS font-style.
type Style uint8

const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

func (s Style) String() string {
	switch s {
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	}
	return "normal"
}

// Weight values named by CSS.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// DefaultSize is the font size canvas text falls back to, in pixels.
// Relative font sizes resolve against it.
const DefaultSize = 10

// Descriptor is a parsed CSS font shorthand.
type Descriptor struct {
	Style     Style
	SmallCaps bool
	Weight    int
	Stretch   string // empty for normal
	Size      float64
	// LineHeight is kept as written; canvas text ignores it.
	LineHeight string
	Families   []string
}

// DefaultDescriptor is "10px sans-serif".
func DefaultDescriptor() Descriptor {
	return Descriptor{Weight: WeightNormal, Size: DefaultSize, Families: []string{"sans-serif"}}
}

var stretchKeywords = map[string]bool{
	"ultra-condensed": true, "extra-condensed": true, "condensed": true,
	"semi-condensed": true, "semi-expanded": true, "expanded": true,
	"extra-expanded": true, "ultra-expanded": true,
}

var sizeKeywords = map[string]float64{
	"xx-small": 9, "x-small": 10, "small": 13, "medium": 16,
	"large": 18, "x-large": 24, "xx-large": 32, "xxx-large": 48,
	"larger": DefaultSize * 1.2, "smaller": DefaultSize / 1.2,
}

var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-serif": true, "ui-sans-serif": true,
	"ui-monospace": true, "ui-rounded": true, "math": true, "emoji": true,
	"fangsong": true,
}

type fontToken struct {
	tt   css.TokenType
	data string
}

func lexFont(s string) ([]fontToken, error) {
	l := css.NewLexer(parse.NewInputString(s))
	var toks []fontToken
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			return toks, nil
		}
		if tt == css.CommentToken {
			continue
		}
		toks = append(toks, fontToken{tt: tt, data: string(data)})
	}
}

// ParseFont parses a CSS font shorthand such as "italic bold 12px/1.5 serif".
func ParseFont(s string) (Descriptor, error) {
	fail := func() (Descriptor, error) {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidFont, s)
	}
	toks, err := lexFont(s)
	if err != nil {
		return fail()
	}
	var words []fontToken
	for _, t := range toks {
		if t.tt != css.WhitespaceToken {
			words = append(words, t)
		}
	}

	d := Descriptor{Weight: WeightNormal}
	i := 0
	var seenStyle, seenVariant, seenWeight, seenStretch bool
	// Prefix keywords, in any order, until the size.
prefix:
	for ; i < len(words); i++ {
		t := words[i]
		kw := strings.ToLower(t.data)
		if t.tt == css.NumberToken {
			v, n := strconv.ParseFloat([]byte(t.data))
			if n != len(t.data) || v < 1 || v > 1000 || seenWeight {
				return fail()
			}
			d.Weight, seenWeight = int(v), true
			continue
		}
		if t.tt != css.IdentToken {
			break
		}
		switch {
		case kw == "normal":
		case (kw == "italic" || kw == "oblique") && !seenStyle:
			d.Style, seenStyle = StyleItalic, true
			if kw == "oblique" {
				d.Style = StyleOblique
			}
		case kw == "small-caps" && !seenVariant:
			d.SmallCaps, seenVariant = true, true
		case (kw == "bold" || kw == "bolder") && !seenWeight:
			d.Weight, seenWeight = WeightBold, true
		case kw == "lighter" && !seenWeight:
			d.Weight, seenWeight = 100, true
		case stretchKeywords[kw] && !seenStretch:
			d.Stretch, seenStretch = kw, true
		default:
			break prefix
		}
	}
	if i >= len(words) {
		return fail()
	}
	size, ok := parseSize(words[i])
	if !ok {
		return fail()
	}
	d.Size = size
	i++

	if i < len(words) && words[i].tt == css.DelimToken && words[i].data == "/" {
		i++
		if i >= len(words) {
			return fail()
		}
		switch lh := words[i]; lh.tt {
		case css.NumberToken, css.PercentageToken, css.DimensionToken:
			d.LineHeight = lh.data
		case css.IdentToken:
			if !strings.EqualFold(lh.data, "normal") {
				return fail()
			}
		default:
			return fail()
		}
		i++
	}

	families, ok := parseFamilies(words[i:])
	if !ok || len(families) == 0 {
		return fail()
	}
	d.Families = families
	return d, nil
}

func parseSize(t fontToken) (float64, bool) {
	switch t.tt {
	case css.IdentToken:
		v, ok := sizeKeywords[strings.ToLower(t.data)]
		return v, ok
	case css.PercentageToken:
		v, n := strconv.ParseFloat([]byte(t.data))
		if n == 0 || v < 0 {
			return 0, false
		}
		return v * DefaultSize / 100, true
	case css.NumberToken:
		if t.data == "0" {
			return 0, true
		}
	case css.DimensionToken:
		b := []byte(t.data)
		v, n := strconv.ParseFloat(b)
		if n == 0 || v < 0 {
			return 0, false
		}
		switch string(bytes.ToLower(b[n:])) {
		case "px":
			return v, true
		case "pt":
			return v * 4 / 3, true
		case "pc":
			return v * 16, true
		case "in":
			return v * 96, true
		case "cm":
			return v * 96 / 2.54, true
		case "mm":
			return v * 96 / 25.4, true
		case "q":
			return v * 96 / 101.6, true
		case "em", "rem", "ch", "ex":
			return v * DefaultSize, true
		}
	}
	return 0, false
}

// parseFamilies reads a comma separated family list. Unquoted names made
// of several identifiers are joined by single spaces.
func parseFamilies(words []fontToken) ([]string, bool) {
	var (
		families []string
		cur      []string
		quoted   bool
	)
	flush := func() bool {
		if len(cur) == 0 {
			return false
		}
		name := strings.Join(cur, " ")
		if !quoted && len(cur) == 1 {
			low := strings.ToLower(name)
			switch low {
			case "inherit", "initial", "unset", "default", "revert":
				return false
			}
			if genericFamilies[low] {
				name = low
			}
		}
		families = append(families, name)
		cur, quoted = nil, false
		return true
	}
	for _, t := range words {
		switch t.tt {
		case css.IdentToken:
			if quoted {
				return nil, false
			}
			cur = append(cur, t.data)
		case css.StringToken:
			if len(cur) > 0 {
				return nil, false
			}
			cur, quoted = []string{t.data[1 : len(t.data)-1]}, true
		case css.CommaToken:
			if !flush() {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	if !flush() {
		return nil, false
	}
	return families, true
}

// String serializes d as a CSS font shorthand.
func (d Descriptor) String() string {
	var parts []string
	if d.Style != StyleNormal {
		parts = append(parts, d.Style.String())
	}
	if d.SmallCaps {
		parts = append(parts, "small-caps")
	}
	switch d.Weight {
	case WeightNormal, 0:
	case WeightBold:
		parts = append(parts, "bold")
	default:
		parts = append(parts, fmt.Sprint(d.Weight))
	}
	if d.Stretch != "" {
		parts = append(parts, d.Stretch)
	}
	parts = append(parts, fmt.Sprintf("%gpx", d.Size))
	fams := make([]string, len(d.Families))
	for i, f := range d.Families {
		fams[i] = quoteFamily(f)
	}
	return strings.Join(parts, " ") + " " + strings.Join(fams, ", ")
}

func quoteFamily(name string) string {
	if genericFamilies[name] {
		return name
	}
	for _, r := range name {
		if !(r == '-' || r == '_' || r == ' ' || r >= 0x80 ||
			('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')) {
			return fmt.Sprintf("%q", name)
		}
	}
	if strings.Contains(name, " ") || (len(name) > 0 && '0' <= name[0] && name[0] <= '9') {
		return fmt.Sprintf("%q", name)
	}
	return name
}

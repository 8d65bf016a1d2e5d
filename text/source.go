package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/canvas/internal/cache"
)

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
//
// FontSource is safe for concurrent use.
type FontSource struct {
	data []byte
	font *opentype.Font
	name string

	// The go-text parse is only needed for shaping and happens on first use.
	shapeOnce sync.Once
	shapeFont *gtfont.Font
	shapeErr  error
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &FontError{Reason: "failed to parse font", Err: err}
	}
	s := &FontSource{
		data: append([]byte(nil), data...),
		font: f,
	}
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the family name stored in the font, if any.
func (s *FontSource) Name() string { return s.name }

// Face creates a Face at the given pixel size.
func (s *FontSource) Face(size float64) *Face {
	return &Face{source: s, size: size, outlines: cache.New[uint16, []Segment](outlineCacheSize)}
}

// shaping returns the go-text view of the font. font.Font is read-only
// and safe for concurrent use, unlike font.Face.
func (s *FontSource) shaping() (*gtfont.Font, error) {
	s.shapeOnce.Do(func() {
		face, err := gtfont.ParseTTF(bytes.NewReader(s.data))
		if err != nil {
			s.shapeErr = &FontError{Name: s.name, Reason: "failed to load font for shaping", Err: err}
			return
		}
		s.shapeFont = face.Font
	})
	return s.shapeFont, s.shapeErr
}

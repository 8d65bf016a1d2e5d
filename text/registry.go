package text

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// Resolver maps a font descriptor to a cascade of faces.
type Resolver interface {
	Resolve(d Descriptor) (*Cascade, error)
}

// Built-in family names.
const (
	FamilyGo          = "Go"
	FamilyGoMono      = "Go Mono"
	FamilyGoSmallcaps = "Go Smallcaps"
)

type entry struct {
	weight int
	style  Style

	once   sync.Once
	data   []byte
	source *FontSource
	err    error
}

func (e *entry) load() (*FontSource, error) {
	e.once.Do(func() {
		if e.source == nil {
			e.source, e.err = NewFontSource(e.data)
		}
		e.data = nil
	})
	return e.source, e.err
}

// Registry maps family names to font files. The zero value is empty;
// NewRegistry returns one with the Go fonts registered.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	families map[string][]*entry
	generics map[string]string
	fallback string
}

// NewRegistry returns a registry with the built-in Go font families.
// Generic families map to "Go", except monospace faces which map to
// "Go Mono".
func NewRegistry() *Registry {
	r := &Registry{}
	r.add(FamilyGo, &entry{weight: WeightNormal, data: goregular.TTF})
	r.add(FamilyGo, &entry{weight: WeightNormal, style: StyleItalic, data: goitalic.TTF})
	r.add(FamilyGo, &entry{weight: 500, data: gomedium.TTF})
	r.add(FamilyGo, &entry{weight: 500, style: StyleItalic, data: gomediumitalic.TTF})
	r.add(FamilyGo, &entry{weight: WeightBold, data: gobold.TTF})
	r.add(FamilyGo, &entry{weight: WeightBold, style: StyleItalic, data: gobolditalic.TTF})
	r.add(FamilyGoMono, &entry{weight: WeightNormal, data: gomono.TTF})
	r.add(FamilyGoMono, &entry{weight: WeightNormal, style: StyleItalic, data: gomonoitalic.TTF})
	r.add(FamilyGoMono, &entry{weight: WeightBold, data: gomonobold.TTF})
	r.add(FamilyGoMono, &entry{weight: WeightBold, style: StyleItalic, data: gomonobolditalic.TTF})
	r.add(FamilyGoSmallcaps, &entry{weight: WeightNormal, data: gosmallcaps.TTF})
	r.add(FamilyGoSmallcaps, &entry{weight: WeightNormal, style: StyleItalic, data: gosmallcapsitalic.TTF})
	for g := range genericFamilies {
		r.SetGeneric(g, FamilyGo)
	}
	r.SetGeneric("monospace", FamilyGoMono)
	r.SetGeneric("ui-monospace", FamilyGoMono)
	r.fallback = strings.ToLower(FamilyGo)
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the shared built-in registry.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() { defaultRegistry = NewRegistry() })
	return defaultRegistry
}

func (r *Registry) add(family string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.families == nil {
		r.families = make(map[string][]*entry)
	}
	key := strings.ToLower(family)
	r.families[key] = append(r.families[key], e)
	if r.fallback == "" {
		r.fallback = key
	}
}

// Register adds a font file to family with the given weight and style.
func (r *Registry) Register(family string, data []byte, weight int, style Style) error {
	src, err := NewFontSource(data)
	if err != nil {
		return err
	}
	r.RegisterSource(family, src, weight, style)
	return nil
}

// RegisterFile loads path and registers it under family.
func (r *Registry) RegisterFile(family, path string, weight int, style Style) error {
	src, err := NewFontSourceFromFile(path)
	if err != nil {
		return err
	}
	r.RegisterSource(family, src, weight, style)
	return nil
}

// RegisterSource adds an already loaded font to family.
func (r *Registry) RegisterSource(family string, src *FontSource, weight int, style Style) {
	r.add(family, &entry{weight: weight, style: style, source: src})
}

// SetGeneric maps a generic family name such as "serif" to a registered family.
func (r *Registry) SetGeneric(generic, family string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generics == nil {
		r.generics = make(map[string]string)
	}
	r.generics[strings.ToLower(generic)] = strings.ToLower(family)
}

// SetFallback selects the family appended to every cascade.
func (r *Registry) SetFallback(family string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = strings.ToLower(family)
}

// Families returns the registered family names, lowercased and sorted.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.families))
	for k := range r.families {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) key(family string) string {
	key := strings.ToLower(family)
	if g, ok := r.generics[key]; ok {
		return g
	}
	return key
}

// match picks the closest face by style, then by weight distance. Ties go
// to the heavier face for bold requests and the lighter one otherwise.
func match(entries []*entry, weight int, style Style) *entry {
	var best *entry
	bestScore := 0
	for _, e := range entries {
		score := abs(e.weight - weight)
		if (e.style == StyleNormal) != (style == StyleNormal) {
			score += 10000
		}
		if best == nil || score < bestScore ||
			(score == bestScore && (weight > WeightNormal) == (e.weight > best.weight)) {
			best, bestScore = e, score
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Resolve builds the cascade for d: one face per listed family that the
// registry knows, followed by the fallback family.
func (r *Registry) Resolve(d Descriptor) (*Cascade, error) {
	r.mu.RLock()
	var picks []*entry
	families := slices.Clone(d.Families)
	if r.fallback != "" {
		families = append(families, r.fallback)
	}
	for _, fam := range families {
		key := r.key(fam)
		if d.SmallCaps && key == strings.ToLower(FamilyGo) {
			key = strings.ToLower(FamilyGoSmallcaps)
		}
		entries := r.families[key]
		if e := match(entries, d.Weight, d.Style); e != nil && !slices.Contains(picks, e) {
			picks = append(picks, e)
		}
	}
	r.mu.RUnlock()

	var faces []*Face
	var firstErr error
	for _, e := range picks {
		src, err := e.load()
		if err != nil {
			logger().Warn("text: skipping font that failed to load", "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		faces = append(faces, src.Face(d.Size))
	}
	if len(faces) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, ErrNoFace
	}
	return NewCascade(faces...), nil
}

// Cascade is an ordered list of faces. Characters are drawn with the
// first face that has a glyph for them.
type Cascade struct {
	faces []*Face
}

// NewCascade returns a cascade over faces.
func NewCascade(faces ...*Face) *Cascade {
	return &Cascade{faces: faces}
}

// First returns the primary face, or nil for an empty cascade.
func (c *Cascade) First() *Face {
	if c == nil || len(c.faces) == 0 {
		return nil
	}
	return c.faces[0]
}

// Faces returns the faces in cascade order.
func (c *Cascade) Faces() []*Face { return c.faces }

// Len returns the number of faces.
func (c *Cascade) Len() int {
	if c == nil {
		return 0
	}
	return len(c.faces)
}

// FaceFor returns the index of the first face with a glyph for r, or 0
// when none has one.
func (c *Cascade) FaceFor(r rune) int {
	for i, f := range c.faces {
		if f.HasGlyph(r) {
			return i
		}
	}
	return 0
}

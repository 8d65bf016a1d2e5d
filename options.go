package canvas

import "github.com/gogpu/canvas/text"

// ColorSpace is the color space of the surface.
type ColorSpace uint8

const (
	ColorSpaceSRGB ColorSpace = iota
	ColorSpaceDisplayP3
)

func (c ColorSpace) String() string {
	if c == ColorSpaceDisplayP3 {
		return "display-p3"
	}
	return "srgb"
}

// Settings are the context attributes fixed at construction.
type Settings struct {
	// Alpha selects an alpha-capable surface. Opaque surfaces start and
	// reset to opaque black.
	Alpha              bool
	ColorSpace         ColorSpace
	WillReadFrequently bool
}

// ContextOption configures a Context during creation.
// Use functional options to customize Context behavior.
//
// Example:
//
//	// Default software painting on an alpha surface
//	ctx := canvas.NewContext(300, 150)
//
//	// Opaque surface with a custom painter
//	ctx := canvas.NewContext(300, 150,
//	    canvas.WithAlpha(false),
//	    canvas.WithPainterFactory(newMyPainter))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	settings       Settings
	allocator      SurfaceAllocator
	painterFactory PainterFactory
	colorParser    ColorParser
	fonts          text.Resolver
	shaper         text.Shaper
	classifier     UsabilityClassifier
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		settings:       Settings{Alpha: true, ColorSpace: ColorSpaceSRGB},
		allocator:      DefaultAllocator,
		painterFactory: func(b *Bitmap) Painter { return NewSoftwarePainter(b) },
		colorParser:    CSSColorParser,
		fonts:          text.DefaultRegistry(),
		shaper:         text.NewHarfbuzzShaper(),
		classifier:     DefaultClassifier,
	}
}

// WithAlpha selects an alpha-capable (true, the default) or opaque
// surface.
func WithAlpha(alpha bool) ContextOption {
	return func(o *contextOptions) {
		o.settings.Alpha = alpha
	}
}

// WithColorSpace records the surface color space. Pixel data carries it;
// painting is not color managed.
func WithColorSpace(cs ColorSpace) ContextOption {
	return func(o *contextOptions) {
		o.settings.ColorSpace = cs
	}
}

// WithWillReadFrequently records the readback hint.
func WithWillReadFrequently(v bool) ContextOption {
	return func(o *contextOptions) {
		o.settings.WillReadFrequently = v
	}
}

// WithAllocator sets the surface allocator.
func WithAllocator(a SurfaceAllocator) ContextOption {
	return func(o *contextOptions) {
		if a != nil {
			o.allocator = a
		}
	}
}

// WithPainterFactory sets how the painter for a new surface is created.
func WithPainterFactory(f PainterFactory) ContextOption {
	return func(o *contextOptions) {
		if f != nil {
			o.painterFactory = f
		}
	}
}

// WithColorParser sets the parser for color strings.
func WithColorParser(p ColorParser) ContextOption {
	return func(o *contextOptions) {
		if p != nil {
			o.colorParser = p
		}
	}
}

// WithFontResolver sets the font resolver.
func WithFontResolver(r text.Resolver) ContextOption {
	return func(o *contextOptions) {
		if r != nil {
			o.fonts = r
		}
	}
}

// WithShaper sets the text shaper.
func WithShaper(s text.Shaper) ContextOption {
	return func(o *contextOptions) {
		if s != nil {
			o.shaper = s
		}
	}
}

// WithClassifier sets the image source usability classifier.
func WithClassifier(c UsabilityClassifier) ContextOption {
	return func(o *contextOptions) {
		if c != nil {
			o.classifier = c
		}
	}
}

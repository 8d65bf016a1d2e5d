// Package text resolves CSS font descriptions to faces, shapes strings into
// positioned glyph runs and extracts glyph outlines.
//
// The pipeline is split the same way a browser splits it:
//
//   - Descriptor: a parsed CSS font shorthand ("italic bold 12px serif")
//   - Registry: maps family names to font data and builds a Cascade
//   - Cascade: an ordered list of faces used for per-character fallback
//   - Shaper: turns a string into GlyphRuns, one per face and direction
//
// # Example usage
//
//	d, err := text.ParseFont("bold 16px sans-serif")
//	if err != nil {
//	    return err
//	}
//	cascade, err := text.DefaultRegistry().Resolve(d)
//	if err != nil {
//	    return err
//	}
//	runs := text.NewHarfbuzzShaper().Shape("Hello", cascade, text.LTR)
//
// The built-in registry carries the Go font families ("Go", "Go Mono",
// "Go Smallcaps") and maps every CSS generic family onto them. Fonts are
// parsed the first time a cascade needs them.
package text

package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidFont is returned by ParseFont for strings that are not a
	// valid CSS font shorthand.
	ErrInvalidFont = errors.New("text: invalid font shorthand")

	// ErrNoFace is returned when no registered face matches a descriptor.
	ErrNoFace = errors.New("text: no matching font face")
)

// FontError reports a font that failed to load.
type FontError struct {
	Name   string
	Reason string
	Err    error
}

func (e *FontError) Error() string {
	msg := "text: " + e.Reason
	if e.Name != "" {
		msg = "text: " + e.Name + ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FontError) Unwrap() error { return e.Err }

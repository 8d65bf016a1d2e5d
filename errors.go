package canvas

import "fmt"

// ErrorKind names the DOM exception category of an explicit failure.
type ErrorKind uint8

const (
	// IndexSizeError reports an index or size outside the allowed range.
	IndexSizeError ErrorKind = iota + 1
	// SecurityError reports a read of pixels tainted by a cross-origin source.
	SecurityError
	// InvalidStateError reports use of a released or detached object.
	InvalidStateError
	// SyntaxError reports an unparseable string argument.
	SyntaxError
	// NotSupportedError reports an argument value that is not supported.
	NotSupportedError
)

var kindNames = [...]string{
	IndexSizeError:    "IndexSizeError",
	SecurityError:     "SecurityError",
	InvalidStateError: "InvalidStateError",
	SyntaxError:       "SyntaxError",
	NotSupportedError: "NotSupportedError",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// DOMError is the typed error returned by the few operations that fail
// explicitly. Two DOMErrors match under errors.Is when their kinds agree.
type DOMError struct {
	Kind    ErrorKind
	Message string
}

func newDOMError(kind ErrorKind, msg string) *DOMError {
	return &DOMError{Kind: kind, Message: msg}
}

func (e *DOMError) Error() string {
	if e.Message == "" {
		return "canvas: " + e.Kind.String()
	}
	return "canvas: " + e.Kind.String() + ": " + e.Message
}

// Is reports whether target is a *DOMError of the same kind.
func (e *DOMError) Is(target error) bool {
	t, ok := target.(*DOMError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrIndexSize    = &DOMError{Kind: IndexSizeError}
	ErrSecurity     = &DOMError{Kind: SecurityError}
	ErrInvalidState = &DOMError{Kind: InvalidStateError}
	ErrSyntax       = &DOMError{Kind: SyntaxError}
	ErrNotSupported = &DOMError{Kind: NotSupportedError}
)

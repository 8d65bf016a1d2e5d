package canvas

import "image"

// Usability classifies whether an image source can be drawn right now.
type Usability uint8

const (
	// Usable sources are drawn, possibly as an empty bitmap.
	Usable Usability = iota
	// NotReady sources are still loading and are skipped for this call.
	NotReady
	// Bad sources are broken or released and are skipped.
	Bad
)

func (u Usability) String() string {
	switch u {
	case Usable:
		return "usable"
	case NotReady:
		return "not-ready"
	}
	return "bad"
}

// SourceSnapshot is an image source resolved for a single draw call.
type SourceSnapshot struct {
	Bitmap      *Bitmap
	Usability   Usability
	OriginClean bool
}

// ImageSource is anything DrawImage and CreatePattern accept.
type ImageSource interface {
	Snapshot() SourceSnapshot
}

// UsabilityClassifier resolves an image source before it enters a
// pipeline.
type UsabilityClassifier interface {
	Classify(src ImageSource) SourceSnapshot
}

// UsabilityClassifierFunc adapts a function to UsabilityClassifier.
type UsabilityClassifierFunc func(src ImageSource) SourceSnapshot

// Classify implements UsabilityClassifier.
func (f UsabilityClassifierFunc) Classify(src ImageSource) SourceSnapshot { return f(src) }

// DefaultClassifier asks the source for its own snapshot. A nil source,
// or a usable snapshot without a bitmap, is Bad.
var DefaultClassifier UsabilityClassifier = UsabilityClassifierFunc(func(src ImageSource) SourceSnapshot {
	if src == nil {
		return SourceSnapshot{Usability: Bad}
	}
	snap := src.Snapshot()
	if snap.Usability == Usable && snap.Bitmap == nil {
		snap.Usability = Bad
	}
	return snap
})

// Snapshot implements ImageSource. Bitmaps are always usable and
// origin-clean.
func (b *Bitmap) Snapshot() SourceSnapshot {
	return SourceSnapshot{Bitmap: b, Usability: Usable, OriginClean: true}
}

// ImageBitmap is a decoded, closable bitmap.
type ImageBitmap struct {
	bitmap      *Bitmap
	originClean bool
	closed      bool
}

// NewImageBitmap wraps b. originClean is false for bitmaps decoded from
// cross-origin data.
func NewImageBitmap(b *Bitmap, originClean bool) *ImageBitmap {
	return &ImageBitmap{bitmap: b, originClean: originClean}
}

// Width returns the width, or 0 after Close.
func (ib *ImageBitmap) Width() int {
	if ib.closed || ib.bitmap == nil {
		return 0
	}
	return ib.bitmap.Width()
}

// Height returns the height, or 0 after Close.
func (ib *ImageBitmap) Height() int {
	if ib.closed || ib.bitmap == nil {
		return 0
	}
	return ib.bitmap.Height()
}

// Close releases the pixels. A closed ImageBitmap is Bad.
func (ib *ImageBitmap) Close() {
	ib.closed = true
	ib.bitmap = nil
}

// Snapshot implements ImageSource.
func (ib *ImageBitmap) Snapshot() SourceSnapshot {
	if ib.closed {
		return SourceSnapshot{Usability: Bad}
	}
	return SourceSnapshot{Bitmap: ib.bitmap, Usability: Usable, OriginClean: ib.originClean}
}

// LoadState is the loading progress of an ImageElement.
type LoadState uint8

const (
	LoadLoading LoadState = iota
	LoadComplete
	LoadBroken
)

// ImageElement is an image that loads asynchronously elsewhere and is
// drawable once complete.
type ImageElement struct {
	state       LoadState
	bitmap      *Bitmap
	crossOrigin bool
}

// NewImageElement returns an element in the loading state.
func NewImageElement() *ImageElement {
	return &ImageElement{}
}

// Complete finishes loading with img. crossOrigin marks data fetched
// without CORS approval.
func (e *ImageElement) Complete(img image.Image, crossOrigin bool) {
	if b, ok := img.(*Bitmap); ok {
		e.bitmap = b
	} else {
		e.bitmap = BitmapFromImage(img)
	}
	e.crossOrigin = crossOrigin
	e.state = LoadComplete
}

// Fail marks the element as broken.
func (e *ImageElement) Fail() {
	e.state = LoadBroken
	e.bitmap = nil
}

// State returns the load state.
func (e *ImageElement) State() LoadState { return e.state }

// Snapshot implements ImageSource.
func (e *ImageElement) Snapshot() SourceSnapshot {
	switch e.state {
	case LoadLoading:
		return SourceSnapshot{Usability: NotReady}
	case LoadBroken:
		return SourceSnapshot{Usability: Bad}
	}
	return SourceSnapshot{Bitmap: e.bitmap, Usability: Usable, OriginClean: !e.crossOrigin}
}

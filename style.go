package canvas

import (
	"github.com/gogpu/canvas/internal/raster"
)

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

var lineCapNames = [...]string{"butt", "round", "square"}

func (c LineCap) String() string { return lineCapNames[c%3] }

// ParseLineCap maps "butt", "round" and "square" to a cap.
func ParseLineCap(s string) (LineCap, bool) {
	for i, n := range lineCapNames {
		if n == s {
			return LineCap(i), true
		}
	}
	return 0, false
}

func (c LineCap) raster() raster.LineCap {
	switch c {
	case LineCapRound:
		return raster.CapRound
	case LineCapSquare:
		return raster.CapSquare
	}
	return raster.CapButt
}

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

var lineJoinNames = [...]string{"miter", "round", "bevel"}

func (j LineJoin) String() string { return lineJoinNames[j%3] }

// ParseLineJoin maps "miter", "round" and "bevel" to a join.
func ParseLineJoin(s string) (LineJoin, bool) {
	for i, n := range lineJoinNames {
		if n == s {
			return LineJoin(i), true
		}
	}
	return 0, false
}

func (j LineJoin) raster() raster.LineJoin {
	switch j {
	case LineJoinRound:
		return raster.JoinRound
	case LineJoinBevel:
		return raster.JoinBevel
	}
	return raster.JoinMiter
}

// TextAlign is the horizontal text anchor.
type TextAlign uint8

const (
	TextAlignStart TextAlign = iota
	TextAlignEnd
	TextAlignLeft
	TextAlignRight
	TextAlignCenter
)

var textAlignNames = [...]string{"start", "end", "left", "right", "center"}

func (a TextAlign) String() string { return textAlignNames[a%5] }

// ParseTextAlign maps a textAlign keyword to its value.
func ParseTextAlign(s string) (TextAlign, bool) {
	for i, n := range textAlignNames {
		if n == s {
			return TextAlign(i), true
		}
	}
	return 0, false
}

// TextBaseline is the vertical text anchor.
type TextBaseline uint8

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineHanging
	TextBaselineMiddle
	TextBaselineIdeographic
	TextBaselineBottom
)

var textBaselineNames = [...]string{"alphabetic", "top", "hanging", "middle", "ideographic", "bottom"}

func (b TextBaseline) String() string { return textBaselineNames[b%6] }

// ParseTextBaseline maps a textBaseline keyword to its value.
func ParseTextBaseline(s string) (TextBaseline, bool) {
	for i, n := range textBaselineNames {
		if n == s {
			return TextBaseline(i), true
		}
	}
	return 0, false
}

// TextDirection is the base direction used to resolve start and end
// alignment.
type TextDirection uint8

const (
	DirectionInherit TextDirection = iota
	DirectionLTR
	DirectionRTL
)

var directionNames = [...]string{"inherit", "ltr", "rtl"}

func (d TextDirection) String() string { return directionNames[d%3] }

// ParseTextDirection maps "inherit", "ltr" and "rtl" to a direction.
func ParseTextDirection(s string) (TextDirection, bool) {
	for i, n := range directionNames {
		if n == s {
			return TextDirection(i), true
		}
	}
	return 0, false
}

// SmoothingQuality selects the resampler used when image smoothing is
// enabled.
type SmoothingQuality uint8

const (
	SmoothingLow SmoothingQuality = iota
	SmoothingMedium
	SmoothingHigh
)

var smoothingNames = [...]string{"low", "medium", "high"}

func (q SmoothingQuality) String() string { return smoothingNames[q%3] }

// ParseSmoothingQuality maps "low", "medium" and "high" to a quality.
func ParseSmoothingQuality(s string) (SmoothingQuality, bool) {
	for i, n := range smoothingNames {
		if n == s {
			return SmoothingQuality(i), true
		}
	}
	return 0, false
}

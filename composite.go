package canvas

import "github.com/gogpu/canvas/internal/blend"

// CompositeOperator is one of the canvas compositing and blending
// operators accepted by globalCompositeOperation.
type CompositeOperator uint8

// Operators in table order.
const (
	OpNormal CompositeOperator = iota
	OpMultiply
	OpScreen
	OpOverlay
	OpDarken
	OpLighten
	OpColorDodge
	OpColorBurn
	OpHardLight
	OpSoftLight
	OpDifference
	OpExclusion
	OpHue
	OpSaturation
	OpColor
	OpLuminosity
	OpClear
	OpCopy
	OpSourceOver
	OpDestinationOver
	OpSourceIn
	OpDestinationIn
	OpSourceOut
	OpDestinationOut
	OpSourceAtop
	OpDestinationAtop
	OpXor
	OpLighter
	OpPlusDarker
	OpPlusLighter
)

// compositeOperators is the single name table used for both parsing and
// serialization, indexed by CompositeOperator.
var compositeOperators = [...]struct {
	name string
	mode blend.Mode
}{
	OpNormal:          {"normal", blend.Normal},
	OpMultiply:        {"multiply", blend.Multiply},
	OpScreen:          {"screen", blend.Screen},
	OpOverlay:         {"overlay", blend.Overlay},
	OpDarken:          {"darken", blend.Darken},
	OpLighten:         {"lighten", blend.Lighten},
	OpColorDodge:      {"color-dodge", blend.ColorDodge},
	OpColorBurn:       {"color-burn", blend.ColorBurn},
	OpHardLight:       {"hard-light", blend.HardLight},
	OpSoftLight:       {"soft-light", blend.SoftLight},
	OpDifference:      {"difference", blend.Difference},
	OpExclusion:       {"exclusion", blend.Exclusion},
	OpHue:             {"hue", blend.Hue},
	OpSaturation:      {"saturation", blend.Saturation},
	OpColor:           {"color", blend.ColorMode},
	OpLuminosity:      {"luminosity", blend.Luminosity},
	OpClear:           {"clear", blend.Clear},
	OpCopy:            {"copy", blend.Copy},
	OpSourceOver:      {"source-over", blend.SourceOver},
	OpDestinationOver: {"destination-over", blend.DestinationOver},
	OpSourceIn:        {"source-in", blend.SourceIn},
	OpDestinationIn:   {"destination-in", blend.DestinationIn},
	OpSourceOut:       {"source-out", blend.SourceOut},
	OpDestinationOut:  {"destination-out", blend.DestinationOut},
	OpSourceAtop:      {"source-atop", blend.SourceAtop},
	OpDestinationAtop: {"destination-atop", blend.DestinationAtop},
	OpXor:             {"xor", blend.Xor},
	OpLighter:         {"lighter", blend.Lighter},
	OpPlusDarker:      {"plus-darker", blend.PlusDarker},
	OpPlusLighter:     {"plus-lighter", blend.PlusLighter},
}

// ParseCompositeOperator looks up an operator by its exact, case-sensitive
// name.
func ParseCompositeOperator(name string) (CompositeOperator, bool) {
	for i, op := range compositeOperators {
		if op.name == name {
			return CompositeOperator(i), true
		}
	}
	return 0, false
}

// String returns the operator name.
func (op CompositeOperator) String() string {
	if int(op) < len(compositeOperators) {
		return compositeOperators[op].name
	}
	return "source-over"
}

// BlendMode returns the per-pixel compositing mode for op.
func (op CompositeOperator) BlendMode() blend.Mode {
	if int(op) < len(compositeOperators) {
		return compositeOperators[op].mode
	}
	return blend.SourceOver
}

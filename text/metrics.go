package text

// Metrics are the vertical extents of a face in pixels, both measured
// from the alphabetic baseline as positive distances.
type Metrics struct {
	Ascent  float64 // baseline to the top of the em box
	Descent float64 // baseline to the bottom of the em box
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "math"

// Dash splits contours into the "on" intervals of pattern, starting offset
// units into it. Each subpath restarts the pattern. A pattern that is empty,
// contains negative or non-finite entries, or sums to zero leaves the
// contours unchanged.
func Dash(contours []Contour, pattern []float64, offset float64) []Contour {
	total := 0.0
	for _, v := range pattern {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return contours
		}
		total += v
	}
	if len(pattern) == 0 || total <= 0 {
		return contours
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		offset = 0
	}
	offset = math.Mod(offset, total)
	if offset < 0 {
		offset += total
	}
	startIdx := 0
	for offset >= pattern[startIdx] && offset > 0 {
		offset -= pattern[startIdx]
		startIdx = (startIdx + 1) % len(pattern)
	}
	startRem := pattern[startIdx] - offset

	var out []Contour
	for _, c := range contours {
		pts := c.Points
		if c.Closed && len(pts) > 0 {
			pts = append(append([]Point(nil), pts...), pts[0])
		}
		if len(pts) < 2 {
			continue
		}
		idx, rem := startIdx, startRem
		on := idx%2 == 0
		var cur []Point
		if on {
			cur = []Point{pts[0]}
		}
		for j := 0; j+1 < len(pts); j++ {
			a, b := pts[j], pts[j+1]
			segLen := b.Sub(a).Length()
			if segLen == 0 {
				continue
			}
			t := 0.0
			for segLen-t > rem {
				t += rem
				p := a.Lerp(b, t/segLen)
				if on {
					if cur[len(cur)-1] != p {
						cur = append(cur, p)
					}
					out = append(out, Contour{Points: cur})
					cur = nil
				} else {
					cur = []Point{p}
				}
				on = !on
				idx = (idx + 1) % len(pattern)
				rem = pattern[idx]
			}
			rem -= segLen - t
			if on {
				cur = append(cur, b)
			}
		}
		if on && len(cur) > 1 {
			out = append(out, Contour{Points: cur})
		}
	}
	return out
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// Mask holds per-pixel coverage in [0, 1].
type Mask struct {
	Width, Height int
	Cover         []float32

	// Bounds of pixels that may be non-zero, as [MinX, MaxX) x [MinY, MaxY).
	MinX, MinY, MaxX, MaxY int
}

// NewMask returns an empty mask.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		Cover:  make([]float32, width*height),
		MinX:   width,
		MinY:   height,
	}
}

// FullMask returns a mask that covers every pixel.
func FullMask(width, height int) *Mask {
	m := NewMask(width, height)
	for i := range m.Cover {
		m.Cover[i] = 1
	}
	m.MinX, m.MinY, m.MaxX, m.MaxY = 0, 0, m.Width, m.Height
	return m
}

// At returns the coverage of pixel (x, y); out-of-range pixels are 0.
func (m *Mask) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Cover[y*m.Width+x]
}

// Empty reports whether no pixel can be covered.
func (m *Mask) Empty() bool {
	return m.MinX >= m.MaxX || m.MinY >= m.MaxY
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	c := *m
	c.Cover = append([]float32(nil), m.Cover...)
	return &c
}

// Intersect returns a new mask with the product of m and o.
func (m *Mask) Intersect(o *Mask) *Mask {
	out := NewMask(m.Width, m.Height)
	out.MinX = max(m.MinX, o.MinX)
	out.MinY = max(m.MinY, o.MinY)
	out.MaxX = min(m.MaxX, o.MaxX)
	out.MaxY = min(m.MaxY, o.MaxY)
	if out.Empty() {
		out.MinX, out.MinY, out.MaxX, out.MaxY = out.Width, out.Height, 0, 0
		return out
	}
	for y := out.MinY; y < out.MaxY; y++ {
		row := y * m.Width
		for x := out.MinX; x < out.MaxX; x++ {
			out.Cover[row+x] = m.Cover[row+x] * o.At(x, y)
		}
	}
	return out
}

func (m *Mask) add(x, y int, v float32) {
	i := y*m.Width + x
	m.Cover[i] += v
}

func (m *Mask) grow(x0, y, x1 int) {
	m.MinX = min(m.MinX, x0)
	m.MaxX = max(m.MaxX, x1)
	m.MinY = min(m.MinY, y)
	m.MaxY = max(m.MaxY, y+1)
}

// clamp saturates accumulated coverage after scan conversion.
func (m *Mask) clamp() {
	for i, v := range m.Cover {
		m.Cover[i] = min(1, max(0, v))
	}
}

package canvas

import (
	"image"
	"image/color"
)

// ImageData is an unpremultiplied RGBA pixel buffer, row-major with four
// bytes per pixel.
type ImageData struct {
	Width      int
	Height     int
	ColorSpace ColorSpace
	Data       []uint8

	detached bool
}

// newImageData allocates a |w| x |h| buffer. Areas above maxSurfaceArea
// are an IndexSize error.
func newImageData(w, h int, cs ColorSpace) (*ImageData, error) {
	aw, ah := absArea(w), absArea(h)
	if aw > maxSurfaceArea || ah > maxSurfaceArea || aw*ah > maxSurfaceArea {
		return nil, newDOMError(IndexSizeError, "image data is too large")
	}
	return &ImageData{Width: int(aw), Height: int(ah), ColorSpace: cs, Data: make([]uint8, aw*ah*4)}, nil
}

// absArea returns |v| without overflowing on math.MinInt.
func absArea(v int) uint64 {
	if v < 0 {
		return -uint64(v)
	}
	return uint64(v)
}

// Detach releases the backing storage. Detached buffers cannot be put.
func (d *ImageData) Detach() {
	d.Data = nil
	d.detached = true
}

// Detached reports whether the backing storage has been released.
func (d *ImageData) Detached() bool { return d.detached }

// At returns the pixel at (x, y), or transparent black outside the buffer.
func (d *ImageData) At(x, y int) color.NRGBA {
	if d.detached || x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return color.NRGBA{}
	}
	i := (y*d.Width + x) * 4
	if i+3 >= len(d.Data) {
		return color.NRGBA{}
	}
	return color.NRGBA{R: d.Data[i], G: d.Data[i+1], B: d.Data[i+2], A: d.Data[i+3]}
}

// Set writes the pixel at (x, y). Writes outside the buffer are dropped.
func (d *ImageData) Set(x, y int, c color.NRGBA) {
	if d.detached || x < 0 || y < 0 || x >= d.Width || y >= d.Height {
		return
	}
	i := (y*d.Width + x) * 4
	if i+3 >= len(d.Data) {
		return
	}
	d.Data[i], d.Data[i+1], d.Data[i+2], d.Data[i+3] = c.R, c.G, c.B, c.A
}

// CreateImageData returns a transparent |w| x |h| buffer. A zero
// dimension is an IndexSize error.
func (c *Context) CreateImageData(w, h int) (*ImageData, error) {
	if w == 0 || h == 0 {
		return nil, newDOMError(IndexSizeError, "image data width and height must be non-zero")
	}
	return newImageData(w, h, c.opts.settings.ColorSpace)
}

// CreateImageDataFrom returns a transparent buffer with the size and color
// space of other.
func (c *Context) CreateImageDataFrom(other *ImageData) (*ImageData, error) {
	if other == nil || other.Width == 0 || other.Height == 0 {
		return nil, newDOMError(IndexSizeError, "image data width and height must be non-zero")
	}
	return newImageData(other.Width, other.Height, other.ColorSpace)
}

// GetImageData reads a rectangle of the surface. Negative sizes read
// towards the origin. A zero dimension is an IndexSize error and a
// tainted context a Security error. Pixels outside the surface read as
// transparent black.
func (c *Context) GetImageData(x, y, w, h int) (*ImageData, error) {
	if w == 0 || h == 0 {
		return nil, newDOMError(IndexSizeError, "image data width and height must be non-zero")
	}
	if !c.originClean {
		return nil, newDOMError(SecurityError, "canvas is tainted by cross-origin data")
	}
	out, err := newImageData(w, h, c.opts.settings.ColorSpace)
	if err != nil {
		return nil, err
	}
	if c.surface == nil {
		return out, nil
	}
	ox, oy := x+min(w, 0), y+min(h, 0)
	src := image.Rect(ox, oy, ox+out.Width, oy+out.Height).Intersect(c.surface.Bounds())
	for py := src.Min.Y; py < src.Max.Y; py++ {
		for px := src.Min.X; px < src.Max.X; px++ {
			out.Set(px-ox, py-oy, unpremultiply(c.surface.GetPixel(px, py)))
		}
	}
	return out, nil
}

// PutImageData writes all of img at (dx, dy).
func (c *Context) PutImageData(img *ImageData, dx, dy int) error {
	if img == nil {
		return newDOMError(InvalidStateError, "image data is nil")
	}
	return c.PutImageDataDirty(img, dx, dy, 0, 0, img.Width, img.Height)
}

// PutImageDataDirty writes the dirty rectangle of img at
// (dx+dirtyX, dy+dirtyY). Pixels are copied as is: the transform, clip,
// global alpha and operator do not apply.
func (c *Context) PutImageDataDirty(img *ImageData, dx, dy, dirtyX, dirtyY, dirtyW, dirtyH int) error {
	if img == nil || img.detached {
		return newDOMError(InvalidStateError, "image data is detached")
	}
	if dirtyW < 0 {
		dirtyX, dirtyW = dirtyX+dirtyW, -dirtyW
	}
	if dirtyH < 0 {
		dirtyY, dirtyH = dirtyY+dirtyH, -dirtyH
	}
	if dirtyX < 0 {
		dirtyW += dirtyX
		dirtyX = 0
	}
	if dirtyY < 0 {
		dirtyH += dirtyY
		dirtyY = 0
	}
	dirtyW = min(dirtyW, img.Width-dirtyX)
	dirtyH = min(dirtyH, img.Height-dirtyY)
	if dirtyW <= 0 || dirtyH <= 0 {
		Logger().Debug("canvas: empty dirty rectangle", "width", dirtyW, "height", dirtyH)
		return nil
	}
	if !c.allocateSurface() {
		return nil
	}
	// Only the part of the dirty rectangle that lands on the surface.
	x0, x1 := max(dirtyX, -dx), min(dirtyX+dirtyW, c.surface.Width()-dx)
	y0, y1 := max(dirtyY, -dy), min(dirtyY+dirtyH, c.surface.Height()-dy)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.surface.SetPixel(dx+x, dy+y, premultiply(img.At(x, y)))
		}
	}
	return nil
}

package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// PixelFormat is the layout of a Bitmap.
type PixelFormat uint8

const (
	// FormatRGBA8888 stores premultiplied red, green, blue and alpha bytes.
	FormatRGBA8888 PixelFormat = iota
	// FormatRGBX8888 stores opaque pixels; the fourth byte is always 255.
	FormatRGBX8888
)

func (f PixelFormat) String() string {
	if f == FormatRGBX8888 {
		return "RGBX8888"
	}
	return "RGBA8888"
}

// Bitmap is a rectangular premultiplied pixel buffer, 4 bytes per pixel.
type Bitmap struct {
	width  int
	height int
	format PixelFormat
	data   []uint8
}

// NewBitmap creates a transparent bitmap, or an opaque black one for
// FormatRGBX8888.
func NewBitmap(width, height int, format PixelFormat) *Bitmap {
	width, height = max(width, 0), max(height, 0)
	b := &Bitmap{
		width:  width,
		height: height,
		format: format,
		data:   make([]uint8, width*height*4),
	}
	if format == FormatRGBX8888 {
		b.Clear(color.RGBA{A: 255})
	}
	return b
}

// Width returns the width of the bitmap.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the height of the bitmap.
func (b *Bitmap) Height() int {
	return b.height
}

// Format returns the pixel format.
func (b *Bitmap) Format() PixelFormat {
	return b.format
}

// Data returns the raw premultiplied pixel data.
func (b *Bitmap) Data() []uint8 {
	return b.data
}

// IsEmpty reports whether the bitmap has no pixels.
func (b *Bitmap) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}

func (b *Bitmap) offset(x, y int) int {
	return (y*b.width + x) * 4
}

// SetPixel stores a premultiplied color. Opaque bitmaps keep alpha 255.
func (b *Bitmap) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	if b.format == FormatRGBX8888 {
		c.A = 255
	}
	i := b.offset(x, y)
	b.data[i+0] = c.R
	b.data[i+1] = c.G
	b.data[i+2] = c.B
	b.data[i+3] = c.A
}

// GetPixel returns the premultiplied color of a pixel, transparent outside
// the bitmap.
func (b *Bitmap) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	i := b.offset(x, y)
	return color.RGBA{R: b.data[i+0], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
}

// Clear fills the entire bitmap with a premultiplied color.
func (b *Bitmap) Clear(c color.RGBA) {
	if b.format == FormatRGBX8888 {
		c.A = 255
	}
	for i := 0; i < len(b.data); i += 4 {
		b.data[i+0] = c.R
		b.data[i+1] = c.G
		b.data[i+2] = c.B
		b.data[i+3] = c.A
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	c := *b
	c.data = append([]uint8(nil), b.data...)
	return &c
}

// RGBA returns an image.RGBA view that shares the bitmap's pixels.
func (b *Bitmap) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.data,
		Stride: b.width * 4,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// ToNRGBA converts the bitmap to an unpremultiplied image.
func (b *Bitmap) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			img.SetNRGBA(x, y, unpremultiply(b.GetPixel(x, y)))
		}
	}
	return img
}

// BitmapFromImage copies img into a new RGBA8888 bitmap.
func BitmapFromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	b := NewBitmap(bounds.Dx(), bounds.Dy(), FormatRGBA8888)
	draw.Draw(b.RGBA(), b.RGBA().Rect, img, bounds.Min, draw.Src)
	return b
}

// SavePNG saves the bitmap to a PNG file.
func (b *Bitmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("canvas: create %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, b.ToNRGBA())
}

// At implements the image.Image interface.
func (b *Bitmap) At(x, y int) color.Color {
	return b.GetPixel(x, y)
}

// Bounds implements the image.Image interface.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Bitmap) ColorModel() color.Model {
	return color.RGBAModel
}

// SurfaceAllocator creates the backing surface of a Context.
type SurfaceAllocator interface {
	Allocate(width, height int, format PixelFormat) (*Bitmap, error)
}

// SurfaceAllocatorFunc adapts a function to SurfaceAllocator.
type SurfaceAllocatorFunc func(width, height int, format PixelFormat) (*Bitmap, error)

// Allocate implements SurfaceAllocator.
func (f SurfaceAllocatorFunc) Allocate(width, height int, format PixelFormat) (*Bitmap, error) {
	return f(width, height, format)
}

// maxSurfaceArea bounds the default allocator.
const maxSurfaceArea = 1 << 28

// DefaultAllocator allocates bitmaps in memory. Zero or oversized
// dimensions fail.
var DefaultAllocator SurfaceAllocator = SurfaceAllocatorFunc(func(width, height int, format PixelFormat) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: cannot allocate %dx%d surface", width, height)
	}
	if int64(width)*int64(height) > maxSurfaceArea {
		return nil, fmt.Errorf("canvas: %dx%d surface exceeds the size limit", width, height)
	}
	return NewBitmap(width, height, format), nil
})

package canvas

import "math"

// DrawImage draws src at its natural size with its top-left corner at
// (dx, dy).
func (c *Context) DrawImage(src ImageSource, dx, dy float64) {
	c.drawImage(src, func(w, h float64) [8]float64 {
		return [8]float64{0, 0, w, h, dx, dy, w, h}
	})
}

// DrawImageScaled draws the whole of src into the rectangle (dx, dy, dw, dh).
func (c *Context) DrawImageScaled(src ImageSource, dx, dy, dw, dh float64) {
	c.drawImage(src, func(w, h float64) [8]float64 {
		return [8]float64{0, 0, w, h, dx, dy, dw, dh}
	})
}

// DrawImageRect draws the source rectangle (sx, sy, sw, sh) of src into
// the destination rectangle (dx, dy, dw, dh).
func (c *Context) DrawImageRect(src ImageSource, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	c.drawImage(src, func(float64, float64) [8]float64 {
		return [8]float64{sx, sy, sw, sh, dx, dy, dw, dh}
	})
}

// drawImage runs the image pipeline. args receives the source size and
// returns the source and destination rectangles.
func (c *Context) drawImage(src ImageSource, args func(w, h float64) [8]float64) {
	if src == nil {
		return
	}
	snap := c.opts.classifier.Classify(src)
	if snap.Usability != Usable || snap.Bitmap == nil {
		Logger().Debug("canvas: skipping image draw", "usability", snap.Usability.String())
		return
	}
	bmp := snap.Bitmap
	bw, bh := float64(bmp.Width()), float64(bmp.Height())
	a := args(bw, bh)
	if !finite(a[:]...) {
		return
	}
	srcRect, dstRect, ok := clipImageRects(
		Rect{X: a[0], Y: a[1], W: a[2], H: a[3]},
		Rect{X: a[4], Y: a[5], W: a[6], H: a[7]},
		bw, bh,
	)
	if !ok {
		return
	}

	p := c.activePainter()
	if p == nil {
		return
	}
	st := c.state()
	scaling := ScalingNearest
	if st.ImageSmoothing {
		switch st.SmoothingQuality {
		case SmoothingMedium:
			scaling = ScalingMedium
		case SmoothingHigh:
			scaling = ScalingHigh
		default:
			scaling = ScalingLow
		}
	}
	p.DrawBitmap(dstRect, bmp, srcRect.Round(), scaling, Paint{
		Alpha:    st.GlobalAlpha,
		Operator: st.Operator,
		Filter:   st.Filter,
	})
	if !snap.OriginClean {
		c.originClean = false
	}
}

// clipImageRects normalizes both rectangles and clips the source to the
// bitmap bounds, shrinking the destination by the same fraction on each
// edge. It reports false when nothing is left to draw.
func clipImageRects(src, dst Rect, bw, bh float64) (Rect, Rect, bool) {
	src, dst = src.Normalize(), dst.Normalize()
	if src.W == 0 || src.H == 0 {
		return src, dst, false
	}
	sx := dst.W / src.W
	sy := dst.H / src.H

	x0, y0 := math.Max(src.X, 0), math.Max(src.Y, 0)
	x1, y1 := math.Min(src.X+src.W, bw), math.Min(src.Y+src.H, bh)
	dst = Rect{
		X: dst.X + (x0-src.X)*sx,
		Y: dst.Y + (y0-src.Y)*sy,
		W: (x1 - x0) * sx,
		H: (y1 - y0) * sy,
	}
	src = Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	if src.W <= 0 || src.H <= 0 {
		return src, dst, false
	}
	return src, dst, true
}

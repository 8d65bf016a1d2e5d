package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG for drawImage
	_ "image/png"  // register PNG for drawImage
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/canvas"
)

// Scene is a canvas size plus an ordered list of drawing commands.
type Scene struct {
	Width    int       `toml:"width"`
	Height   int       `toml:"height"`
	Alpha    *bool     `toml:"alpha"`
	Commands []Command `toml:"command"`
}

// Command is one drawing call. Op names the context method, Args carries
// its numeric arguments and Value its string argument, if any.
type Command struct {
	Op               string    `toml:"op"`
	Args             []float64 `toml:"args"`
	Value            string    `toml:"value"`
	CounterClockwise bool      `toml:"counterclockwise"`
}

var errEmptyScene = errors.New("scene: width and height must be positive")

// LoadScene reads and decodes a TOML scene file. Unknown keys are errors.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // scene path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return DecodeScene(data)
}

// DecodeScene decodes a scene from TOML data.
func DecodeScene(data []byte) (*Scene, error) {
	var s Scene
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, errEmptyScene
	}
	return &s, nil
}

// Render draws the scene into a new context. Relative image paths are
// resolved against dir.
func Render(s *Scene, dir string) (*canvas.Context, error) {
	var opts []canvas.ContextOption
	if s.Alpha != nil {
		opts = append(opts, canvas.WithAlpha(*s.Alpha))
	}
	ctx := canvas.NewContext(s.Width, s.Height, opts...)
	r := &renderer{ctx: ctx, dir: dir, images: make(map[string]*canvas.Bitmap)}
	for i, cmd := range s.Commands {
		if err := r.run(cmd); err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", i, cmd.Op, err)
		}
	}
	return ctx, nil
}

type renderer struct {
	ctx    *canvas.Context
	dir    string
	images map[string]*canvas.Bitmap
}

type handler struct {
	nargs []int // accepted argument counts
	fn    func(r *renderer, c Command) error
}

func setter(f func(ctx *canvas.Context, v string)) handler {
	return handler{nargs: []int{0}, fn: func(r *renderer, c Command) error {
		f(r.ctx, c.Value)
		return nil
	}}
}

func number(f func(ctx *canvas.Context, v float64)) handler {
	return handler{nargs: []int{1}, fn: func(r *renderer, c Command) error {
		f(r.ctx, c.Args[0])
		return nil
	}}
}

func call(n int, f func(ctx *canvas.Context, a []float64)) handler {
	return handler{nargs: []int{n}, fn: func(r *renderer, c Command) error {
		f(r.ctx, c.Args)
		return nil
	}}
}

var handlers = map[string]handler{
	"fillStyle":                setter((*canvas.Context).SetFillStyle),
	"strokeStyle":              setter((*canvas.Context).SetStrokeStyle),
	"globalCompositeOperation": setter((*canvas.Context).SetGlobalCompositeOperation),
	"shadowColor":              setter((*canvas.Context).SetShadowColor),
	"font":                     setter((*canvas.Context).SetFont),
	"textAlign":                setter((*canvas.Context).SetTextAlign),
	"textBaseline":             setter((*canvas.Context).SetTextBaseline),
	"direction":                setter((*canvas.Context).SetDirection),
	"filter":                   setter((*canvas.Context).SetFilter),
	"lineCap":                  setter((*canvas.Context).SetLineCap),
	"lineJoin":                 setter((*canvas.Context).SetLineJoin),

	"lineWidth":      number((*canvas.Context).SetLineWidth),
	"miterLimit":     number((*canvas.Context).SetMiterLimit),
	"globalAlpha":    number((*canvas.Context).SetGlobalAlpha),
	"shadowBlur":     number((*canvas.Context).SetShadowBlur),
	"shadowOffsetX":  number((*canvas.Context).SetShadowOffsetX),
	"shadowOffsetY":  number((*canvas.Context).SetShadowOffsetY),
	"lineDashOffset": number((*canvas.Context).SetLineDashOffset),
	"rotate":         number((*canvas.Context).Rotate),

	"imageSmoothingQuality": setter((*canvas.Context).SetImageSmoothingQuality),
	"imageSmoothingEnabled": {nargs: []int{0}, fn: func(r *renderer, c Command) error {
		r.ctx.SetImageSmoothingEnabled(c.Value != "false")
		return nil
	}},

	"lineDash": {nargs: nil, fn: func(r *renderer, c Command) error {
		r.ctx.SetLineDash(c.Args)
		return nil
	}},

	"fillRect":   call(4, func(ctx *canvas.Context, a []float64) { ctx.FillRect(a[0], a[1], a[2], a[3]) }),
	"strokeRect": call(4, func(ctx *canvas.Context, a []float64) { ctx.StrokeRect(a[0], a[1], a[2], a[3]) }),
	"clearRect":  call(4, func(ctx *canvas.Context, a []float64) { ctx.ClearRect(a[0], a[1], a[2], a[3]) }),
	"rect":       call(4, func(ctx *canvas.Context, a []float64) { ctx.Rect(a[0], a[1], a[2], a[3]) }),
	"moveTo":     call(2, func(ctx *canvas.Context, a []float64) { ctx.MoveTo(a[0], a[1]) }),
	"lineTo":     call(2, func(ctx *canvas.Context, a []float64) { ctx.LineTo(a[0], a[1]) }),
	"translate":  call(2, func(ctx *canvas.Context, a []float64) { ctx.Translate(a[0], a[1]) }),
	"scale":      call(2, func(ctx *canvas.Context, a []float64) { ctx.Scale(a[0], a[1]) }),
	"quadraticCurveTo": call(4, func(ctx *canvas.Context, a []float64) {
		ctx.QuadraticCurveTo(a[0], a[1], a[2], a[3])
	}),
	"bezierCurveTo": call(6, func(ctx *canvas.Context, a []float64) {
		ctx.BezierCurveTo(a[0], a[1], a[2], a[3], a[4], a[5])
	}),
	"transform": call(6, func(ctx *canvas.Context, a []float64) {
		ctx.Transform(a[0], a[1], a[2], a[3], a[4], a[5])
	}),
	"setTransform": call(6, func(ctx *canvas.Context, a []float64) {
		ctx.SetTransform(a[0], a[1], a[2], a[3], a[4], a[5])
	}),
	"beginPath":      call(0, func(ctx *canvas.Context, _ []float64) { ctx.BeginPath() }),
	"closePath":      call(0, func(ctx *canvas.Context, _ []float64) { ctx.ClosePath() }),
	"save":           call(0, func(ctx *canvas.Context, _ []float64) { ctx.Save() }),
	"restore":        call(0, func(ctx *canvas.Context, _ []float64) { ctx.Restore() }),
	"reset":          call(0, func(ctx *canvas.Context, _ []float64) { ctx.Reset() }),
	"resetTransform": call(0, func(ctx *canvas.Context, _ []float64) { ctx.ResetTransform() }),
	"stroke":         call(0, func(ctx *canvas.Context, _ []float64) { ctx.Stroke() }),

	"fill": {nargs: []int{0}, fn: func(r *renderer, c Command) error {
		r.ctx.Fill(windingRule(c.Value))
		return nil
	}},
	"clip": {nargs: []int{0}, fn: func(r *renderer, c Command) error {
		r.ctx.Clip(windingRule(c.Value))
		return nil
	}},
	"arc": {nargs: []int{5}, fn: func(r *renderer, c Command) error {
		a := c.Args
		return r.ctx.Arc(a[0], a[1], a[2], a[3], a[4], c.CounterClockwise)
	}},
	"ellipse": {nargs: []int{7}, fn: func(r *renderer, c Command) error {
		a := c.Args
		return r.ctx.Ellipse(a[0], a[1], a[2], a[3], a[4], a[5], a[6], c.CounterClockwise)
	}},
	"arcTo": {nargs: []int{5}, fn: func(r *renderer, c Command) error {
		a := c.Args
		return r.ctx.ArcTo(a[0], a[1], a[2], a[3], a[4])
	}},
	"roundRect": {nargs: []int{4, 5, 6, 7, 8}, fn: func(r *renderer, c Command) error {
		a := c.Args
		return r.ctx.RoundRect(a[0], a[1], a[2], a[3], a[4:]...)
	}},
	"fillText": {nargs: []int{2, 3}, fn: func(r *renderer, c Command) error {
		a := c.Args
		if len(a) == 3 {
			r.ctx.FillTextMaxWidth(c.Value, a[0], a[1], a[2])
		} else {
			r.ctx.FillText(c.Value, a[0], a[1])
		}
		return nil
	}},
	"strokeText": {nargs: []int{2, 3}, fn: func(r *renderer, c Command) error {
		a := c.Args
		if len(a) == 3 {
			r.ctx.StrokeTextMaxWidth(c.Value, a[0], a[1], a[2])
		} else {
			r.ctx.StrokeText(c.Value, a[0], a[1])
		}
		return nil
	}},
	"drawImage": {nargs: []int{2, 4, 8}, fn: (*renderer).drawImage},
}

func windingRule(s string) canvas.WindingRule {
	if s == "" {
		return canvas.NonZero
	}
	return canvas.ParseWindingRule(s)
}

func (r *renderer) run(c Command) error {
	h, ok := handlers[c.Op]
	if !ok {
		return errors.New("unknown op")
	}
	if h.nargs != nil && !acceptsArgs(h.nargs, len(c.Args)) {
		return fmt.Errorf("got %d args, want one of %v", len(c.Args), h.nargs)
	}
	return h.fn(r, c)
}

func acceptsArgs(counts []int, n int) bool {
	for _, v := range counts {
		if v == n {
			return true
		}
	}
	return false
}

func (r *renderer) drawImage(c Command) error {
	if c.Value == "" {
		return errors.New("drawImage needs an image path in value")
	}
	b, err := r.image(c.Value)
	if err != nil {
		return err
	}
	a := c.Args
	switch len(a) {
	case 2:
		r.ctx.DrawImage(b, a[0], a[1])
	case 4:
		r.ctx.DrawImageScaled(b, a[0], a[1], a[2], a[3])
	default:
		r.ctx.DrawImageRect(b, a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7])
	}
	return nil
}

// image loads and caches a decoded image file.
func (r *renderer) image(name string) (*canvas.Bitmap, error) {
	if b, ok := r.images[name]; ok {
		return b, nil
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.dir, path)
	}
	f, err := os.Open(path) //nolint:gosec // image paths come from the scene file
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	b := canvas.BitmapFromImage(img)
	r.images[name] = b
	return b, nil
}

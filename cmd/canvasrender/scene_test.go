package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/canvas"
)

const basicScene = `
width = 20
height = 10

[[command]]
op = "fillStyle"
value = "#ff0000"

[[command]]
op = "fillRect"
args = [0, 0, 10, 10]

[[command]]
op = "fillStyle"
value = "rgb(0, 0, 255)"

[[command]]
op = "beginPath"

[[command]]
op = "rect"
args = [10, 0, 10, 10]

[[command]]
op = "fill"
`

func pixelAt(t *testing.T, ctx *canvas.Context, x, y int) color.NRGBA {
	t.Helper()
	img, err := ctx.GetImageData(x, y, 1, 1)
	require.NoError(t, err)
	return img.At(0, 0)
}

func TestDecodeScene(t *testing.T) {
	s, err := DecodeScene([]byte(basicScene))
	require.NoError(t, err)
	assert.Equal(t, 20, s.Width)
	assert.Equal(t, 10, s.Height)
	assert.Nil(t, s.Alpha)
	require.Len(t, s.Commands, 6)
	assert.Equal(t, Command{Op: "fillRect", Args: []float64{0, 0, 10, 10}}, s.Commands[1])
}

func TestDecodeSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero size", "width = 0\nheight = 10\n"},
		{"missing height", "width = 10\n"},
		{"unknown key", "width = 1\nheight = 1\ncolour = 'red'\n"},
		{"bad toml", "width = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeScene([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestRender(t *testing.T) {
	s, err := DecodeScene([]byte(basicScene))
	require.NoError(t, err)
	ctx, err := Render(s, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, pixelAt(t, ctx, 5, 5))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, pixelAt(t, ctx, 15, 5))
}

func TestRenderOpaqueScene(t *testing.T) {
	s, err := DecodeScene([]byte("width = 4\nheight = 4\nalpha = false\n"))
	require.NoError(t, err)
	ctx, err := Render(s, "")
	require.NoError(t, err)
	assert.False(t, ctx.Settings().Alpha)
	require.NotNil(t, ctx.Surface())
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, pixelAt(t, ctx, 1, 1))
}

func TestRenderErrorsNameTheCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"unknown op", "op = 'explode'", "command 0 (explode): unknown op"},
		{"wrong arity", "op = 'fillRect'\nargs = [1, 2]", "command 0 (fillRect): got 2 args"},
		{"negative radius", "op = 'arc'\nargs = [5, 5, -1, 0, 1]", "command 0 (arc)"},
		{"missing image", "op = 'drawImage'\nvalue = 'nope.png'\nargs = [0, 0]", "command 0 (drawImage)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeScene([]byte("width = 4\nheight = 4\n[[command]]\n" + tt.command + "\n"))
			require.NoError(t, err)
			_, err = Render(s, t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRenderStateCommands(t *testing.T) {
	scene := `
width = 10
height = 10

[[command]]
op = "save"

[[command]]
op = "translate"
args = [5, 0]

[[command]]
op = "globalAlpha"
args = [0.5]

[[command]]
op = "lineDash"
args = [1, 2, 3]

[[command]]
op = "restore"

[[command]]
op = "lineWidth"
args = [4]
`
	s, err := DecodeScene([]byte(scene))
	require.NoError(t, err)
	ctx, err := Render(s, "")
	require.NoError(t, err)

	assert.Equal(t, canvas.Identity(), ctx.GetTransform())
	assert.InDelta(t, 1.0, ctx.GlobalAlpha(), 1e-12)
	assert.Empty(t, ctx.LineDash())
	assert.InDelta(t, 4.0, ctx.LineWidth(), 1e-12)
}

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestRenderDrawImage(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "green.png"), color.NRGBA{0, 255, 0, 255})

	s := &Scene{Width: 8, Height: 8, Commands: []Command{
		{Op: "drawImage", Value: "green.png", Args: []float64{2, 2, 4, 4}},
	}}
	ctx, err := Render(s, dir)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, pixelAt(t, ctx, 3, 3))
	assert.Equal(t, color.NRGBA{}, pixelAt(t, ctx, 0, 0))
	assert.True(t, ctx.OriginClean())
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.toml")
	out := filepath.Join(dir, "out.png")
	require.NoError(t, os.WriteFile(scenePath, []byte(basicScene), 0o600))

	require.NoError(t, renderFile(scenePath, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
	r, g, b, a := img.At(15, 5).RGBA()
	assert.Equal(t, [4]uint32{0, 0, 0xffff, 0xffff}, [4]uint32{r, g, b, a})
}

func TestSceneWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(basicScene), 0o600))

	changed := make(chan struct{}, 4)
	w, err := newSceneWatcher(path, 20*time.Millisecond, func() {
		changed <- struct{}{}
	}, nil)
	require.NoError(t, err)
	defer w.Stop()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o600))
	select {
	case <-changed:
		t.Fatal("change reported for another file")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte(basicScene+"\n"), 0o600))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported after writing the scene")
	}
}

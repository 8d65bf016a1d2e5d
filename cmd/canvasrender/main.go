// Command canvasrender renders a TOML scene of canvas drawing commands to a
// PNG file.
//
//	canvasrender -scene scene.toml -output out.png [-watch] [-v]
//
// A scene looks like:
//
//	width = 200
//	height = 100
//
//	[[command]]
//	op = "fillStyle"
//	value = "rebeccapurple"
//
//	[[command]]
//	op = "fillRect"
//	args = [10, 10, 80, 40]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gogpu/canvas"
)

func main() {
	var (
		scene   = flag.String("scene", "scene.toml", "scene file")
		output  = flag.String("output", "out.png", "output PNG file")
		watch   = flag.Bool("watch", false, "re-render whenever the scene file changes")
		verbose = flag.Bool("v", false, "log pipeline decisions")
	)
	flag.Parse()

	if *verbose {
		canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := renderFile(*scene, *output); err != nil {
		if !*watch {
			log.Fatal(err)
		}
		log.Print(err)
	}
	if !*watch {
		return
	}

	w, err := newSceneWatcher(*scene, 0, func() {
		if err := renderFile(*scene, *output); err != nil {
			log.Print(err)
		}
	}, func(err error) {
		log.Printf("watch: %v", err)
	})
	if err != nil {
		log.Fatalf("watch %s: %v", *scene, err)
	}
	log.Printf("watching %s", *scene)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	w.Stop()
}

// renderFile renders the scene at path and writes the result to output.
func renderFile(path, output string) error {
	s, err := LoadScene(path)
	if err != nil {
		return err
	}
	ctx, err := Render(s, filepath.Dir(path))
	if err != nil {
		return err
	}
	surface := ctx.Surface()
	if surface == nil {
		return errors.New("canvas surface could not be allocated")
	}
	if err := surface.SavePNG(output); err != nil {
		return err
	}
	canvas.Logger().Info("scene rendered", "scene", path, "output", output)
	fmt.Fprintf(os.Stderr, "rendered %s (%dx%d)\n", output, s.Width, s.Height)
	return nil
}

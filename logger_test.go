package canvas

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler); !ok {
		t.Error("WithAttrs did not return a nopHandler")
	}
	if _, ok := h.WithGroup("group").(nopHandler); !ok {
		t.Error("WithGroup did not return a nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

// captureLogs installs a debug-level text logger for the duration of the
// test and returns its output buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestSetLogger(t *testing.T) {
	buf := captureLogs(t)
	Logger().Info("test message", "key", "value")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestPipelineLogs(t *testing.T) {
	tests := []struct {
		name  string
		draw  func(ctx *Context)
		level string
		want  string
	}{
		{"allocation", func(ctx *Context) { ctx.FillRect(0, 0, 1, 1) }, "INFO", "surface allocated"},
		{"unusable image", func(ctx *Context) { ctx.DrawImage(NewImageElement(), 0, 0) }, "DEBUG", "skipping image draw"},
		{"unknown operator", func(ctx *Context) { ctx.SetGlobalCompositeOperation("nope") }, "DEBUG", "unknown composite operation"},
		{"copy shadow", func(ctx *Context) {
			ctx.SetShadowOffsetX(2)
			ctx.SetGlobalCompositeOperation("copy")
			ctx.FillRect(0, 0, 1, 1)
		}, "DEBUG", "shadow skipped"},
		{"empty dirty rect", func(ctx *Context) {
			img, _ := ctx.CreateImageData(2, 2)
			_ = ctx.PutImageDataDirty(img, 0, 0, 0, 0, 0, 2)
		}, "DEBUG", "empty dirty rectangle"},
		{"font fallback", func(ctx *Context) {
			ctx.opts.fonts = failingResolver{}
			ctx.MeasureText("x")
		}, "WARN", "font resolution failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			tt.draw(NewContext(4, 4))
			out := buf.String()
			if !strings.Contains(out, tt.want) || !strings.Contains(out, "level="+tt.level) {
				t.Errorf("log output %q lacks %s %q", out, tt.level, tt.want)
			}
		})
	}
}

func TestAllocationFailureWarns(t *testing.T) {
	buf := captureLogs(t)
	failing := SurfaceAllocatorFunc(func(int, int, PixelFormat) (*Bitmap, error) {
		return nil, errors.New("out of memory")
	})
	NewContext(4, 4, WithAllocator(failing)).FillRect(0, 0, 1, 1)
	if out := buf.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "out of memory") {
		t.Errorf("log output %q lacks the allocation warning", out)
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := Logger()
			if l == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
			l.Debug("concurrent read")
		}()
	}
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}

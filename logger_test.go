package hwc

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/hwc/blit"
	"github.com/gogpu/hwc/buffer"
	"github.com/gogpu/hwc/idle"
	"github.com/gogpu/hwc/overlay"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestSilentLoggers(t *testing.T) {
	h := nopHandler{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(nopHandler); !ok {
		t.Error("WithAttrs left the nop handler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup left the nop handler")
	}

	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	SetLogger(slog.Default())
	SetLogger(nil)

	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) || Logger().Enabled(context.Background(), level) {
			t.Errorf("logging enabled at %v after SetLogger(nil)", level)
		}
	}
}

func TestSetLoggerPropagatesToSubpackages(t *testing.T) {
	tests := []struct {
		pkg  string
		want string
		emit func(t *testing.T)
	}{
		{"blit", "blit: selected backend", func(t *testing.T) {
			if _, err := blit.OpenBest(); err != nil {
				t.Fatalf("blit.OpenBest() = %v", err)
			}
		}},
		{"buffer", "buffer: dropping invalid handle", func(t *testing.T) {
			r := buffer.NewRegistry(nil, buffer.ValidatorFunc(func(*buffer.Handle) bool { return false }))
			h := &buffer.Handle{ID: 1}
			if err := r.Acquire(h); err != nil {
				t.Fatal(err)
			}
			_ = r.Release(h)
		}},
		{"overlay", "overlay: state", func(t *testing.T) {
			if err := overlay.NewManager(stubPipes{}, nil).SetState(overlay.StateUIMirror); err != nil {
				t.Fatal(err)
			}
		}},
		{"idle", "idle: firing", func(t *testing.T) {
			done := make(chan struct{})
			inv := idle.New(time.Millisecond, func() { close(done) })
			defer inv.Stop()
			inv.MarkForSleep()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("idle handler did not run")
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			buf := captureLogs(t, slog.LevelDebug)
			tt.emit(t)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("%s did not log %q through the hwc logger, got: %s", tt.pkg, tt.want, buf.String())
			}
		})
	}
}

func TestOpenLogsLifecycle(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	d, err := Open(&stubFramebuffer{w: 480, h: 800}, stubPipes{})
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	for _, want := range []string{"hwc: open", "fb=480x800", "hwc: close"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output missing %q, got: %s", want, buf.String())
		}
	}
}

// The idle goroutine logs while the host may swap loggers.
func TestSetLoggerWhileLogging(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			slogger().Debug("hwc: concurrent")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

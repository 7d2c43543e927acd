//go:build unix

package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/alex65536/pagegate/internal/flagstore"
	"github.com/alex65536/pagegate/internal/util/signal"
)

type msgHandler struct{ ch chan string }

func (h msgHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h msgHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h msgHandler) WithGroup(string) slog.Handler            { return h }

func (h msgHandler) Handle(_ context.Context, r slog.Record) error {
	h.ch <- r.Message
	return nil
}

func waitMsg(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	timer := time.NewTimer(10 * time.Second)
	defer timer.Stop()
	for {
		select {
		case msg := <-ch:
			if msg == want {
				return
			}
		case <-timer.C:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestReloadFlagsOnSIGHUP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.toml")
	write := func(data string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	hupSelf := func() {
		t.Helper()
		if err := syscall.Kill(os.Getpid(), syscall.SIGHUP); err != nil {
			t.Fatal(err)
		}
	}

	write("featureX = false\n")
	flags, err := flagstore.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	hup, stop := signal.Subscribe(syscall.SIGHUP)
	defer stop()
	msgs := make(chan string, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		reloadFlags(ctx, slog.New(msgHandler{ch: msgs}), flags, hup)
	}()

	write("featureX = true\n")
	hupSelf()
	waitMsg(t, msgs, "flags reloaded")
	if !flagstore.Truthy(flags.Get("featureX")) {
		t.Fatalf("featureX must be true after reload")
	}

	write("featureX = \n")
	hupSelf()
	waitMsg(t, msgs, "could not reload flags, keeping previous ones")
	if !flagstore.Truthy(flags.Get("featureX")) {
		t.Fatalf("broken file must keep previous flags")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("reload loop did not stop")
	}
}

package signal

import (
	"context"
	"os"
	"os/signal"
)

// NotifyContext is like signal.NotifyContext, but a second signal terminates the process
// immediately.
func NotifyContext(parent context.Context, sig ...os.Signal) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sig...)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
			return
		}
		<-sigCh
		os.Exit(1)
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// Subscribe delivers sig to the returned channel until stop is called.
func Subscribe(sig ...os.Signal) (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig...)
	return ch, func() { signal.Stop(ch) }
}

package main

import (
	"log/slog"

	"github.com/alex65536/pagegate/internal/util/slogx"
	"github.com/alex65536/pagegate/internal/util/style"
)

func newLogger(level string, forceJSON bool) (*slog.Logger, error) {
	lvl, err := slogx.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	// Structured output for collectors, text for humans.
	if forceJSON || !style.IsStderrTTY() {
		return slog.New(slog.NewJSONHandler(style.Stderr(), hopts)), nil
	}
	return slog.New(slog.NewTextHandler(style.Stderr(), hopts)), nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alex65536/pagegate/internal/flagstore"
	"github.com/alex65536/pagegate/internal/util/signal"
	"github.com/alex65536/pagegate/internal/util/slogx"
	"github.com/alex65536/pagegate/internal/version"
	"github.com/alex65536/pagegate/internal/webui"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Args:    cobra.ExactArgs(0),
		Version: version.Version,
		Short:   "Start pagegate web server",
		Long: `Serves the web UI. Feature pages listed in the options file are shown only
while their key in the flags file is truthy; otherwise they look like missing pages.

Send SIGHUP to reload the flags file.
`,
	}
	p := cmd.Flags()
	optsPath := p.StringP(
		"options", "o", "",
		"options file",
	)
	flagsPath := p.StringP(
		"flags", "f", "",
		"flags file (overrides the one in options)",
	)
	if err := cmd.MarkFlagRequired("options"); err != nil {
		panic(err)
	}

	cmd.RunE = func(cmd *cobra.Command, _args []string) error {
		opts, err := loadOptions(*optsPath)
		if err != nil {
			return err
		}
		if *flagsPath != "" {
			opts.FlagsPath = *flagsPath
		}
		if opts.FlagsPath == "" {
			return fmt.Errorf("flags file not specified")
		}

		log, err := newLogger(opts.LogLevel, opts.LogJSON)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}

		flags, err := flagstore.Open(opts.FlagsPath)
		if err != nil {
			return fmt.Errorf("open flags: %w", err)
		}
		flagstore.SetDefault(flags)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		mux := http.NewServeMux()
		if err := webui.Handle(log, mux, opts.Prefix, webui.Config{}, opts.WebUI); err != nil {
			return fmt.Errorf("handle webui: %w", err)
		}

		g, gctx := errgroup.WithContext(ctx)
		srvs, err := newServers(gctx, log, &opts, mux)
		if err != nil {
			return fmt.Errorf("create servers: %w", err)
		}
		srvs.Go(gctx, g)
		hup, stopHup := signal.Subscribe(syscall.SIGHUP)
		defer stopHup()
		g.Go(func() error {
			reloadFlags(gctx, log, flags, hup)
			return nil
		})
		return g.Wait()
	}
	return cmd
}

// reloadFlags reloads flags on every signal from hup until ctx is done.
func reloadFlags(ctx context.Context, log *slog.Logger, flags *flagstore.Store, hup <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := flags.Reload(); err != nil {
				log.Error("could not reload flags, keeping previous ones", slogx.Err(err))
				continue
			}
			log.Info("flags reloaded", slog.String("path", flags.Path()))
		}
	}
}

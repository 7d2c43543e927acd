package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"

	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/sync/errgroup"

	"github.com/alex65536/pagegate/internal/util/slogx"
)

type servers struct {
	insecure *http.Server
	secure   *http.Server
	log      *slog.Logger
}

func newServers(ctx context.Context, log *slog.Logger, o *Options, h http.Handler) (*servers, error) {
	if o.HTTPS != nil && o.HTTPS.CachePath == "" {
		return nil, fmt.Errorf("certificate cache path not specified")
	}
	s := &servers{log: log}
	baseCtx := func(net.Listener) context.Context { return ctx }
	if o.HTTPS == nil || o.HTTPS.ExposeInsecure {
		s.insecure = &http.Server{
			Addr:        o.AddrWithPort(),
			Handler:     h,
			BaseContext: baseCtx,
		}
	}
	if o.HTTPS != nil {
		m := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(slices.Clone(o.HTTPS.AllowedSecureDomains)...),
			Cache:      autocert.DirCache(o.HTTPS.CachePath),
		}
		s.secure = &http.Server{
			Addr:        o.SecureAddrWithPort(),
			TLSConfig:   m.TLSConfig(),
			Handler:     h,
			BaseContext: baseCtx,
		}
	}
	return s, nil
}

func (s *servers) iterServers(f func(name string, serv *http.Server)) {
	if s.insecure != nil {
		f("insecure", s.insecure)
	}
	if s.secure != nil {
		f("secure", s.secure)
	}
}

// Go starts all the servers in g. They are shut down once ctx is done.
func (s *servers) Go(ctx context.Context, g *errgroup.Group) {
	s.iterServers(func(name string, serv *http.Server) {
		log := s.log.With(slog.String("name", name))
		g.Go(func() error {
			log.Info("starting http server", slog.String("addr", serv.Addr))
			var err error
			if name == "secure" {
				err = serv.ListenAndServeTLS("", "")
			} else {
				err = serv.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("listen http server failed", slogx.Err(err))
				return fmt.Errorf("%v server: %w", name, err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			log.Info("stopping http server")
			if err := serv.Shutdown(context.Background()); err != nil {
				log.Warn("could not shut down server", slogx.Err(err))
			}
			return nil
		})
	})
}

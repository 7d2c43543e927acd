package webui

import (
	"log/slog"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"

	"github.com/alex65536/pagegate/internal/util/httputil"
)

type middlewareBuilder struct {
	Log      *slog.Logger
	Limiter  *rate.Limiter
	Resolver func(status int) http.Handler
	Compress func(http.Handler) http.Handler
}

type middleware struct {
	b    *middlewareBuilder
	h    http.Handler
	kind string
}

func (m *middleware) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = httputil.WrapRequest(req)
	m.b.Log.Info("handle request",
		slog.String("rid", httputil.ExtractReqID(req.Context())),
		slog.String("uri", req.RequestURI),
		slog.String("method", req.Method),
		slog.String("addr", req.RemoteAddr),
		slog.String("kind", m.kind),
	)
	switch m.kind {
	case "page":
		if len(w.Header().Values("Cache-Control")) == 0 {
			w.Header().Set("Cache-Control", "max-age=0, private, must-revalidate")
		}
		if m.b.Limiter != nil && !m.b.Limiter.Allow() {
			m.b.Log.Warn("rate limit exceeded",
				slog.String("rid", httputil.ExtractReqID(req.Context())),
			)
			w.Header().Set("Retry-After", "1")
			m.b.Resolver(http.StatusTooManyRequests).ServeHTTP(w, httputil.WithStatus(req, http.StatusTooManyRequests))
			return
		}
	case "static":
		w.Header().Set("Cache-Control", "max-age=86400, public")
	default:
		panic("must not happen")
	}
	m.h.ServeHTTP(w, req)
}

func (b *middlewareBuilder) wrap(h http.Handler, kind string) http.Handler {
	h = &middleware{b: b, h: h, kind: kind}
	if b.Compress != nil {
		h = b.Compress(h)
	}
	return h
}

func (b *middlewareBuilder) WrapPage(h http.Handler) http.Handler {
	return b.wrap(h, "page")
}

func (b *middlewareBuilder) WrapStatic(h http.Handler) http.Handler {
	return b.wrap(h, "static")
}

func newCompressor(enabled bool) func(http.Handler) http.Handler {
	if !enabled {
		return nil
	}
	return gziphandler.GzipHandler
}

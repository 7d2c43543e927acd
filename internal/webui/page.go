package webui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alex65536/pagegate/internal/util/httputil"
	"github.com/alex65536/pagegate/internal/util/slogx"
)

type dataBuilder interface {
	Build(ctx context.Context, bc builderCtx) (any, error)
}

type page struct {
	name  string
	cfg   *Config
	log   *slog.Logger
	b     dataBuilder
	templ *templator
}

type pageData struct {
	Data any
}

type builderCtx struct {
	Log    *slog.Logger
	Config *Config
	Req    *http.Request
}

func (p *page) DisplayName() string { return "Page(" + p.name + ")" }

// renderError renders err through the status resolver. Redirects are sent as is.
func (p *page) renderError(log *slog.Logger, w http.ResponseWriter, req *http.Request, err error) {
	var httpErr *httputil.Error
	if !errors.As(err, &httpErr) {
		log.Error("error building page data", slogx.Err(err))
		p.cfg.resolver.ResolveError(err).ServeHTTP(w, httputil.WithStatus(req, http.StatusInternalServerError))
		return
	}

	if httpErr.IsRedirect() {
		log.Info("send http redirect",
			slog.Int("code", httpErr.Code()),
			slog.String("msg", httpErr.Message()),
		)
		httpErr.ApplyHeaders(w)
		w.WriteHeader(httpErr.Code())
		return
	}

	log.Info("send http status error",
		slog.Int("code", httpErr.Code()),
		slog.String("msg", httpErr.Message()),
	)
	httpErr.ApplyHeaders(w)
	p.cfg.resolver.ResolveError(httpErr).ServeHTTP(w, httputil.WithStatus(req, httpErr.Code()))
}

func (p *page) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := p.log.With(slog.String("rid", httputil.ExtractReqID(ctx)))
	log.Info("handle page request",
		slog.String("method", req.Method),
		slog.String("addr", req.RemoteAddr),
	)

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		log.Warn("method not allowed")
		w.Header().Set("Allow", "GET, HEAD")
		p.renderError(log, w, req, httputil.MakeError(http.StatusMethodNotAllowed, "method not allowed"))
		return
	}

	data, err := p.b.Build(ctx, builderCtx{
		Log:    log,
		Config: p.cfg,
		Req:    req,
	})
	if err != nil {
		p.renderError(log, w, req, err)
		return
	}

	body, err := p.templ.Render(p.name, pageData{Data: data})
	if err != nil {
		log.Error("error rendering page", slogx.Err(err))
		writeHTTPErr(log, w, fmt.Errorf("render page"))
		return
	}
	writePage(log, w, http.StatusOK, body)
}

func newPage(
	log *slog.Logger,
	cfg *Config,
	templ *templator,
	builder dataBuilder,
	name string,
) (http.Handler, error) {
	if _, err := templ.Get(name); err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	return &page{
		name:  name,
		cfg:   cfg,
		log:   log.With(slog.String("page", name)),
		b:     builder,
		templ: templ,
	}, nil
}

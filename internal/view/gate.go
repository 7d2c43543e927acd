package view

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alex65536/pagegate/internal/flagstore"
	"github.com/alex65536/pagegate/internal/util/httputil"
	"github.com/alex65536/pagegate/internal/util/slogx"
)

var ErrInvalidArgument = errors.New("invalid argument")

type GateOptions struct {
	// Source is read on every request. Nil behaves as an empty store.
	Source   flagstore.Source
	Log      *slog.Logger
	NotFound http.Handler
}

// Gate renders the not-found view in place of a component while its configuration key is
// falsy.
type Gate struct {
	key      string
	src      flagstore.Source
	log      *slog.Logger
	notFound http.Handler
}

func NewGate(key string, o GateOptions) (*Gate, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: configuration key cannot be empty", ErrInvalidArgument)
	}
	if o.NotFound == nil {
		return nil, fmt.Errorf("%w: not found view is required", ErrInvalidArgument)
	}
	src := o.Source
	if src == nil {
		src = flagstore.Map(nil)
	}
	return &Gate{
		key:      key,
		src:      src,
		log:      slogx.OrDiscard(o.Log),
		notFound: o.NotFound,
	}, nil
}

// Enabled reports whether wrapped components are rendered right now.
func (g *Gate) Enabled() bool {
	return flagstore.Truthy(g.src.Get(g.key))
}

func (g *Gate) Wrap(h http.Handler) http.Handler {
	return &gated{g: g, h: h, name: DisplayName(h)}
}

func (g *Gate) Middleware() func(http.Handler) http.Handler {
	return g.Wrap
}

type gated struct {
	g    *Gate
	h    http.Handler
	name string
}

func (c *gated) DisplayName() string {
	return "Gated(" + c.name + ")"
}

func (c *gated) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !c.g.Enabled() {
		c.g.log.DebugContext(req.Context(), "config key was false; not rendering component",
			slog.String("rid", httputil.ExtractReqID(req.Context())),
			slog.String("key", c.g.key),
			slog.String("component", c.name),
		)
		c.g.notFound.ServeHTTP(w, req)
		return
	}
	c.h.ServeHTTP(w, req)
}

package webui

import (
	"fmt"
	"log/slog"
	"net/http"

	petname "github.com/dustinkirkland/golang-petname"
	"golang.org/x/time/rate"

	"github.com/alex65536/pagegate/internal/flagstore"
	"github.com/alex65536/pagegate/internal/util/slogx"
	"github.com/alex65536/pagegate/internal/view"
)

type Config struct {
	// Flags gates feature pages. Nil means flagstore.Default().
	Flags    flagstore.Source
	ServerID string
	prefix   string
	opts     *Options
	resolver view.Resolver
}

type Options struct {
	TemplateDir string    `toml:"template-dir"`
	Features    []Feature `toml:"features"`
	RPSLimit    float64   `toml:"rps-limit"`
	RPSBurst    int       `toml:"rps-burst"`
	NoCompress  bool      `toml:"no-compress"`
}

func (o *Options) FillDefaults() {
	if o.RPSLimit == 0.0 {
		o.RPSLimit = 50
	}
	if o.RPSBurst == 0 {
		o.RPSBurst = 100
	}
}

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}

// handleRoute registers h, turning ServeMux panics on bad or conflicting patterns into
// errors. Patterns may come from options files.
func handleRoute(mux *http.ServeMux, pattern string, h http.Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("route %q: %v", pattern, r)
		}
	}()
	mux.Handle(pattern, h)
	return nil
}

func Handle(log *slog.Logger, mux *http.ServeMux, prefix string, cfg Config, o Options) error {
	log = slogx.OrDiscard(log)
	o.FillDefaults()
	if !(o.RPSLimit > 0) {
		return fmt.Errorf("rps-limit must be positive, got %v", o.RPSLimit)
	}
	if o.RPSBurst <= 0 {
		return fmt.Errorf("rps-burst must be positive, got %v", o.RPSBurst)
	}
	paths := make(map[string]struct{}, len(o.Features))
	for i := range o.Features {
		f := &o.Features[i]
		if err := f.Validate(); err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
		if _, ok := paths[f.Path]; ok {
			return fmt.Errorf("feature %d: duplicate path %q", i, f.Path)
		}
		paths[f.Path] = struct{}{}
	}

	if cfg.ServerID == "" {
		cfg.ServerID = petname.Generate(2, "-")
	}
	if cfg.Flags == nil {
		cfg.Flags = flagstore.Default()
	}
	cfg.prefix = prefix
	cfg.opts = &o

	tfs, err := templateFS(o.TemplateDir)
	if err != nil {
		return err
	}
	templ := newTemplator(&cfg, tfs)
	if err := templ.AddAll("404", "error", "main", "feature"); err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	cfg.resolver = view.Resolver{
		NotFound: &notFoundView{log: log, templ: templ},
		Generic:  &errorView{log: log, templ: templ},
	}

	b := middlewareBuilder{
		Log:      log,
		Limiter:  rate.NewLimiter(rate.Limit(o.RPSLimit), o.RPSBurst),
		Resolver: cfg.resolver.Resolve,
		Compress: newCompressor(!o.NoCompress),
	}

	features := make([]*featureEntry, 0, len(o.Features))
	for _, f := range o.Features {
		gate, err := view.NewGate(f.Key, view.GateOptions{
			Source:   cfg.Flags,
			Log:      log.With(slog.String("feature", f.Path)),
			NotFound: cfg.resolver.NotFound,
		})
		if err != nil {
			return fmt.Errorf("feature %q: %w", f.Path, err)
		}
		features = append(features, &featureEntry{Feature: f, gate: gate})
		h := b.WrapPage(gate.Wrap(must(featurePage(log, &cfg, templ, f))))
		if err := handleRoute(mux, prefix+f.Path, h); err != nil {
			return fmt.Errorf("feature %q: %w", f.Path, err)
		}
	}

	for _, r := range []struct {
		pattern string
		h       http.Handler
	}{
		{"/css/", b.WrapStatic(http.StripPrefix(prefix, http.FileServerFS(staticData)))},
		{"/{$}", b.WrapPage(must(mainPage(log, &cfg, templ, features)))},
		{"/status/{code}", b.WrapPage(&statusPage{log: log, cfg: &cfg})},
		{"/", b.WrapPage(must(e404Page(log, &cfg, templ)))},
	} {
		if err := handleRoute(mux, prefix+r.pattern, r.h); err != nil {
			return err
		}
	}
	return nil
}

package webui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alex65536/pagegate/internal/util/httputil"
	"github.com/alex65536/pagegate/internal/view"
)

// Feature is a page that is only visible while its configuration key is truthy.
type Feature struct {
	Path  string `toml:"path"`
	Key   string `toml:"key"`
	Title string `toml:"title"`
	Body  string `toml:"body"`
	// Redirect, if set, sends visitors of an enabled feature elsewhere.
	Redirect string `toml:"redirect"`
}

func (f *Feature) Validate() error {
	if !strings.HasPrefix(f.Path, "/") {
		return fmt.Errorf("feature path %q must start with /", f.Path)
	}
	if strings.ContainsAny(f.Path, "{} \t\r\n") {
		return fmt.Errorf("feature path %q must not contain wildcards or whitespace", f.Path)
	}
	if f.Path == "/" || strings.HasPrefix(f.Path, "/status/") || strings.HasPrefix(f.Path, "/css/") {
		return fmt.Errorf("feature path %q clashes with a builtin route", f.Path)
	}
	return nil
}

type featureEntry struct {
	Feature
	gate *view.Gate
}

type featureDataBuilder struct {
	f Feature
}

func (b featureDataBuilder) Build(_ context.Context, bc builderCtx) (any, error) {
	if b.f.Redirect != "" {
		loc := b.f.Redirect
		if strings.HasPrefix(loc, "/") {
			loc = bc.Config.prefix + loc
		}
		return nil, httputil.MakeRedirectError(http.StatusFound, "feature moved", loc)
	}
	return struct {
		Title string
		Body  string
	}{
		Title: b.f.Title,
		Body:  b.f.Body,
	}, nil
}

func featurePage(log *slog.Logger, cfg *Config, templ *templator, f Feature) (http.Handler, error) {
	return newPage(log, cfg, templ, featureDataBuilder{f: f}, "feature")
}

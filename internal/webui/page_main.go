package webui

import (
	"context"
	"log/slog"
	"net/http"
)

type mainDataBuilder struct {
	features []*featureEntry
}

func (b mainDataBuilder) Build(_ context.Context, _ builderCtx) (any, error) {
	type item struct {
		Path  string
		Title string
	}

	type data struct {
		Features []item
	}

	d := &data{}
	for _, f := range b.features {
		if !f.gate.Enabled() {
			continue
		}
		d.Features = append(d.Features, item{Path: f.Path, Title: f.Title})
	}
	return d, nil
}

func mainPage(log *slog.Logger, cfg *Config, templ *templator, features []*featureEntry) (http.Handler, error) {
	return newPage(log, cfg, templ, mainDataBuilder{features: features}, "main")
}

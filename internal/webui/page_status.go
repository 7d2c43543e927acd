package webui

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alex65536/pagegate/internal/util/httputil"
	"github.com/alex65536/pagegate/internal/view"
)

// statusPage shows the view a status code resolves to. Unparsable codes count as absent.
type statusPage struct {
	log *slog.Logger
	cfg *Config
}

func (s *statusPage) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	code, err := strconv.Atoi(req.PathValue("code"))
	if err != nil {
		code = httputil.NoStatus
	}
	h := s.cfg.resolver.Resolve(code)
	s.log.Info("render status view",
		slog.String("rid", httputil.ExtractReqID(req.Context())),
		slog.Int("code", code),
		slog.String("view", view.DisplayName(h)),
	)
	h.ServeHTTP(w, httputil.WithStatus(req, code))
}

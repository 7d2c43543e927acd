package webui

import (
	"log/slog"
	"net/http"

	"github.com/alex65536/pagegate/internal/util/httputil"
	"github.com/alex65536/pagegate/internal/util/slogx"
)

type errorData struct {
	Code    int
	Message string
}

// notFoundView renders the 404 page. It never looks at request parameters.
type notFoundView struct {
	log   *slog.Logger
	templ *templator
}

func (*notFoundView) DisplayName() string { return "NotFound" }

func (v *notFoundView) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	log := v.log.With(slog.String("rid", httputil.ExtractReqID(req.Context())))
	body, err := v.templ.Render("404", pageData{})
	if err != nil {
		log.Error("error rendering not found view", slogx.Err(err))
		writeHTTPErr(log, w, httputil.MakeError(http.StatusNotFound, "page not found"))
		return
	}
	writePage(log, w, http.StatusNotFound, body)
}

// errorView renders any error that has no dedicated view. The status is taken from the
// request context and defaults to 500.
type errorView struct {
	log   *slog.Logger
	templ *templator
}

func (*errorView) DisplayName() string { return "GenericError" }

func errorCode(req *http.Request) int {
	code := httputil.ExtractStatus(req.Context())
	if code < 400 || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}

func (v *errorView) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	log := v.log.With(slog.String("rid", httputil.ExtractReqID(req.Context())))
	code := errorCode(req)
	data := errorData{Code: code, Message: http.StatusText(code)}
	body, err := v.templ.Render("error", pageData{Data: data})
	if err != nil {
		log.Error("error rendering error view", slogx.Err(err))
		writeHTTPErr(log, w, httputil.MakeError(code, data.Message))
		return
	}
	writePage(log, w, code, body)
}

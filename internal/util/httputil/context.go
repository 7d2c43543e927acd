package httputil

import (
	"context"
	"net/http"

	"github.com/alex65536/pagegate/internal/util/idgen"
)

type (
	reqIDKey  struct{}
	statusKey struct{}
)

func WrapRequestContext(parent context.Context) context.Context {
	if ExtractReqID(parent) != "" {
		return parent
	}
	return context.WithValue(parent, reqIDKey{}, idgen.RequestID())
}

func WrapRequest(req *http.Request) *http.Request {
	return req.WithContext(WrapRequestContext(req.Context()))
}

func ExtractReqID(ctx context.Context) string {
	s, _ := ctx.Value(reqIDKey{}).(string)
	return s
}

// WithStatus attaches the status an error view should report.
func WithStatus(req *http.Request, code int) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), statusKey{}, code))
}

func ExtractStatus(ctx context.Context) int {
	code, ok := ctx.Value(statusKey{}).(int)
	if !ok {
		return NoStatus
	}
	return code
}

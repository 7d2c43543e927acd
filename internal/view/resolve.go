// Package view picks and gates the components that render pages. A component is an
// http.Handler; the request it receives plays the role of its props.
package view

import (
	"net/http"

	"github.com/alex65536/pagegate/internal/util/httputil"
)

// Resolver maps status codes to the views that render them.
type Resolver struct {
	NotFound http.Handler
	Generic  http.Handler
}

// Resolve returns NotFound for 404 and Generic for everything else, including
// httputil.NoStatus.
func (r Resolver) Resolve(status int) http.Handler {
	switch status {
	case http.StatusNotFound:
		return r.NotFound
	default:
		return r.Generic
	}
}

// ResolveError resolves the status carried by err.
func (r Resolver) ResolveError(err error) http.Handler {
	return r.Resolve(httputil.StatusOf(err))
}

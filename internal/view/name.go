package view

import (
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"strings"
)

type displayNamer interface {
	DisplayName() string
}

// DisplayName returns a human-readable name of a component for diagnostics.
func DisplayName(h http.Handler) string {
	if h == nil {
		return "Component"
	}
	if n, ok := h.(displayNamer); ok {
		if name := n.DisplayName(); name != "" {
			return name
		}
	}
	if f, ok := h.(http.HandlerFunc); ok && f != nil {
		if fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer()); fn != nil {
			name := fn.Name()
			if i := strings.LastIndexByte(name, '/'); i >= 0 {
				name = name[i+1:]
			}
			return name
		}
	}
	return fmt.Sprintf("%T", h)
}

// Package flagstore holds runtime feature toggles. Stores are read-only to their users:
// they only ever call Get and look at the truthiness of the result.
package flagstore

import (
	"math"
	"reflect"
	"strings"
	"sync/atomic"
)

type Source interface {
	Get(key string) any
}

// Truthy reports whether a configuration value enables something. Missing values and
// values of unexpected types are false.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	default:
		return false
	}
}

// Map is a static Source. Keys are dot-separated paths into nested tables.
type Map map[string]any

func (m Map) Get(key string) any {
	return lookup(m, key)
}

func lookup(table map[string]any, key string) any {
	if v, ok := table[key]; ok {
		return v
	}
	head, rest, ok := strings.Cut(key, ".")
	if !ok {
		return nil
	}
	sub, ok := table[head].(map[string]any)
	if !ok {
		return nil
	}
	return lookup(sub, rest)
}

type holder struct{ src Source }

var defaultSource atomic.Pointer[holder]

// Default returns the process-wide store. Until SetDefault is called it is empty.
func Default() Source {
	if h := defaultSource.Load(); h != nil {
		return h.src
	}
	return Map(nil)
}

// SetDefault installs the process-wide store. It is meant to be called once, from main.
func SetDefault(src Source) {
	if src == nil {
		defaultSource.Store(nil)
		return
	}
	defaultSource.Store(&holder{src: src})
}

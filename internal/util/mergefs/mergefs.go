package mergefs

import (
	"errors"
	"io/fs"
)

type mergeFS struct{ layers []fs.FS }

// Open looks the name up in each layer in order. Only fs.ErrNotExist falls through to the
// next layer; any other error is returned as is.
func (f *mergeFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	for _, layer := range f.layers {
		file, err := layer.Open(name)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// New overlays layers, the first one taking precedence. Nil layers are skipped.
func New(layers ...fs.FS) fs.FS {
	m := &mergeFS{}
	for _, l := range layers {
		if l != nil {
			m.layers = append(m.layers, l)
		}
	}
	return m
}

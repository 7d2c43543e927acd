package webui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
)

type templator struct {
	cfg  *Config
	fsys fs.FS
	tmpl map[string]*template.Template
}

func newTemplator(cfg *Config, fsys fs.FS) *templator {
	return &templator{
		cfg:  cfg,
		fsys: fsys,
		tmpl: make(map[string]*template.Template),
	}
}

func (t *templator) makeFuncs() template.FuncMap {
	return template.FuncMap{
		"asURL": func(s string) string {
			return t.cfg.prefix + s
		},
		"asStaticURL": func(s string) string {
			return t.cfg.prefix + s + "?" + t.cfg.ServerID
		},
	}
}

func (t *templator) Has(key string) bool {
	_, ok := t.tmpl[key]
	return ok
}

func (t *templator) Add(key string, names ...string) error {
	files := make([]string, 0, len(names)+1)
	files = append(files, "template/base.html")
	for _, n := range names {
		files = append(files, fmt.Sprintf("template/%v.html", n))
	}
	if t.Has(key) {
		return fmt.Errorf("template %v already exists", key)
	}
	tmpl, err := template.New(key).Funcs(t.makeFuncs()).ParseFS(t.fsys, files...)
	if err != nil {
		return fmt.Errorf("template %v parse: %w", key, err)
	}
	t.tmpl[key] = tmpl
	return nil
}

// AddAll registers templates whose key matches the file name. Templates must be added
// before serving starts, the map is not guarded.
func (t *templator) AddAll(keys ...string) error {
	for _, key := range keys {
		if err := t.Add(key, key); err != nil {
			return err
		}
	}
	return nil
}

func (t *templator) Get(key string) (*template.Template, error) {
	tmpl, ok := t.tmpl[key]
	if !ok {
		return nil, fmt.Errorf("template %v not found", key)
	}
	return tmpl, nil
}

func (t *templator) Render(key string, data any) ([]byte, error) {
	tmpl, err := t.Get(key)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := tmpl.ExecuteTemplate(&b, "base", data); err != nil {
		return nil, fmt.Errorf("render %v: %w", key, err)
	}
	return b.Bytes(), nil
}

package webui

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/alex65536/pagegate/internal/util/mergefs"
)

//go:embed static
var ourStaticData embed.FS

//go:embed template
var ourTemplates embed.FS

var staticData fs.FS

func init() {
	sub, err := fs.Sub(ourStaticData, "static")
	if err != nil {
		panic(err)
	}
	staticData = sub
}

// templateFS returns the embedded templates, overlaid by dir if it is set. Files in dir are
// looked up as "template/<name>.html".
func templateFS(dir string) (fs.FS, error) {
	if dir == "" {
		return ourTemplates, nil
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("template dir %q is not a directory", dir)
	}
	return mergefs.New(os.DirFS(dir), ourTemplates), nil
}

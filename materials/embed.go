package materials

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed *.yaml shaders/*.kage
var MaterialsFS embed.FS

// Sources returns the layers a Store loads from: the embedded defaults,
// then dir on disk when it exists. Later layers win on identical paths.
func Sources(dir string) []fs.FS {
	sources := []fs.FS{MaterialsFS}
	if dir == "" {
		return sources
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		sources = append(sources, os.DirFS(dir))
	}
	return sources
}

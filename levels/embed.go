package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json *.tmx
var LevelsFS embed.FS

var ErrUnsupportedFormat = errors.New("levels: unsupported format")

// DefaultTileSize is used when a level does not set tile_size.
const DefaultTileSize = 32

type Level struct {
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	TileSize     int           `json:"tile_size,omitempty"`
	Layers       [][]int       `json:"layers"`
	TilesetUsage [][]*TileInfo `json:"tileset_usage"`
	LayerMeta    []LayerMeta   `json:"layer_meta,omitempty"`
	Entities     []Entity      `json:"entities,omitempty"`
}

// LayerMeta carries per-layer authoring data. Properties are the custom
// key/value annotations set in the editor.
type LayerMeta struct {
	Name       string            `json:"name,omitempty"`
	Physics    bool              `json:"physics"`
	Properties map[string]string `json:"properties,omitempty"`
}

type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

type TileInfo struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
	TileW int    `json:"tile_w"`
	TileH int    `json:"tile_h"`
}

// Meta returns the metadata for layer idx, zero-valued when absent.
func (l *Level) Meta(idx int) LayerMeta {
	if l == nil || idx < 0 || idx >= len(l.LayerMeta) {
		return LayerMeta{}
	}
	return l.LayerMeta[idx]
}

// Usage returns the tileset usage for layer idx, or nil.
func (l *Level) Usage(idx int) []*TileInfo {
	if l == nil || idx < 0 || idx >= len(l.TilesetUsage) {
		return nil
	}
	return l.TilesetUsage[idx]
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid level dimensions: %dx%d", l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d: %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	if l.TileSize <= 0 {
		l.TileSize = DefaultTileSize
	}
	return nil
}

// Load reads a level by name, preferring a file on disk and falling back to
// the embedded levels. A name without extension is tried as .json.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	switch strings.ToLower(filepath.Ext(clean)) {
	case ".json", ".tmx":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		data, err = os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	}
	if err != nil {
		return loadLevelFromFS(clean)
	}
	return Parse(clean, data)
}

// Parse decodes level data, choosing the format from name's extension.
func Parse(name string, data []byte) (*Level, error) {
	var (
		lvl *Level
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		lvl = &Level{}
		if err = json.Unmarshal(data, lvl); err != nil {
			return nil, fmt.Errorf("unmarshal level: %w", err)
		}
	case ".tmx":
		if lvl, err = parseTMX(data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return lvl, nil
}

// loadLevelFromFS reads a level from the embedded levels only.
func loadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(name, data)
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	if idx := strings.LastIndex(s, "levels/"); idx >= 0 {
		s = s[idx+len("levels/"):]
	}
	if filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}

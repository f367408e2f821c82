package levels

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"
)

// parseTMX converts a Tiled map into a Level. Each tile layer becomes one
// level layer carrying its name and custom properties; tile ids are
// local to their tileset and the tileset image becomes the usage path.
func parseTMX(data []byte) (*Level, error) {
	m, err := tiled.LoadReader(".", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse tmx: %w", err)
	}

	lvl := &Level{
		Width:    m.Width,
		Height:   m.Height,
		TileSize: m.TileWidth,
	}
	for _, layer := range m.Layers {
		if layer == nil {
			continue
		}
		tiles := make([]int, m.Width*m.Height)
		usage := make([]*TileInfo, m.Width*m.Height)
		for i, t := range layer.Tiles {
			if i >= len(tiles) || t == nil || t.IsNil() || t.Tileset == nil {
				continue
			}
			tiles[i] = 1
			info := &TileInfo{
				Index: int(t.ID),
				TileW: t.Tileset.TileWidth,
				TileH: t.Tileset.TileHeight,
			}
			if t.Tileset.Image != nil {
				info.Path = path.Base(strings.ReplaceAll(t.Tileset.Image.Source, "\\", "/"))
			}
			usage[i] = info
		}

		props := tiledProperties(layer.Properties)
		lvl.Layers = append(lvl.Layers, tiles)
		lvl.TilesetUsage = append(lvl.TilesetUsage, usage)
		lvl.LayerMeta = append(lvl.LayerMeta, LayerMeta{
			Name:       layer.Name,
			Physics:    props["physics"] == "true",
			Properties: props,
		})
	}
	return lvl, nil
}

// tiledProperties flattens Tiled custom properties into a string map.
func tiledProperties(v any) map[string]string {
	var list []*tiled.Property
	switch p := v.(type) {
	case *tiled.Properties:
		if p != nil {
			list = *p
		}
	case tiled.Properties:
		list = p
	}
	if len(list) == 0 {
		return nil
	}
	out := make(map[string]string, len(list))
	for _, prop := range list {
		if prop == nil || prop.Name == "" {
			continue
		}
		out[prop.Name] = prop.Value
	}
	return out
}

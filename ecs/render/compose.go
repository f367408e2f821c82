package render

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/milk9111/seasons/ecs/component"
)

// ComposeLayer flattens a tile layer into one RGBA image, Width*TileSize by
// Height*TileSize. Tiles whose usage is missing or out of range are left
// transparent.
func ComposeLayer(layer *component.TileLayer, cache *ImageCache) (*image.RGBA, error) {
	if layer == nil {
		return nil, fmt.Errorf("render: nil layer")
	}
	size := layer.TileSize
	if size <= 0 {
		size = 32
	}
	out := image.NewRGBA(image.Rect(0, 0, layer.Width*size, layer.Height*size))

	for idx, id := range layer.Tiles {
		if id <= 0 || idx >= len(layer.Usage) || layer.Usage[idx] == nil {
			continue
		}
		ref := layer.Usage[idx]
		src, err := cache.Load(ref.Path)
		if err != nil {
			return nil, fmt.Errorf("render: layer %s: %w", layer.Name, err)
		}
		rect, ok := tileRect(src.Bounds(), ref)
		if !ok {
			continue
		}
		x := (idx % layer.Width) * size
		y := (idx / layer.Width) * size
		dst := image.Rect(x, y, x+size, y+size)
		draw.Draw(out, dst, src, rect.Min, draw.Over)
	}
	return out, nil
}

func tileRect(bounds image.Rectangle, ref *component.TileRef) (image.Rectangle, bool) {
	tileW, tileH := ref.TileW, ref.TileH
	if tileW <= 0 {
		tileW = 32
	}
	if tileH <= 0 {
		tileH = 32
	}
	tilesX := bounds.Dx() / tileW
	if tilesX <= 0 || ref.Index < 0 {
		return image.Rectangle{}, false
	}
	srcX := bounds.Min.X + (ref.Index%tilesX)*tileW
	srcY := bounds.Min.Y + (ref.Index/tilesX)*tileH
	r := image.Rect(srcX, srcY, srcX+tileW, srcY+tileH)
	if !r.In(bounds) {
		return image.Rectangle{}, false
	}
	return r, true
}

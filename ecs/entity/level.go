package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/ecs/component"
	"github.com/milk9111/seasons/levels"
)

// LoadLevelToWorld creates one entity per tile layer plus the level's scene
// entities, returning the layer entities in document order.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if world == nil || lvl == nil {
		return nil, fmt.Errorf("level: nil world or level")
	}

	tileSize := lvl.TileSize
	if tileSize <= 0 {
		tileSize = levels.DefaultTileSize
	}
	bounds := ecs.CreateEntity(world)
	if err := ecs.Add(world, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:    float64(lvl.Width * tileSize),
		Height:   float64(lvl.Height * tileSize),
		TileSize: float64(tileSize),
	}); err != nil {
		return nil, fmt.Errorf("level: add bounds: %w", err)
	}

	layers := make([]ecs.Entity, 0, len(lvl.Layers))
	for idx, tiles := range lvl.Layers {
		e, err := NewTileLayer(world, lvl, idx, tiles, tileSize)
		if err != nil {
			return nil, err
		}
		layers = append(layers, e)
	}

	for _, ent := range lvl.Entities {
		switch strings.ToLower(ent.Type) {
		case "season_timer":
			length, _ := numberProp(ent.Props, "season_length")
			enabled := true
			if v, ok := ent.Props["enabled"].(bool); ok {
				enabled = v
			}
			if _, err := NewSeasonTimer(world, length, enabled); err != nil {
				return nil, err
			}
		default:
			// Unknown entity type; ignore for now.
		}
	}

	return layers, nil
}

// NewTileLayer builds the entity for layer idx of lvl.
func NewTileLayer(world *ecs.World, lvl *levels.Level, idx int, tiles []int, tileSize int) (ecs.Entity, error) {
	meta := lvl.Meta(idx)
	name := meta.Name
	if name == "" {
		name = fmt.Sprintf("layer_%d", idx)
	}

	var usage []*component.TileRef
	if src := lvl.Usage(idx); src != nil {
		usage = make([]*component.TileRef, len(src))
		for i, info := range src {
			if info == nil {
				continue
			}
			usage[i] = &component.TileRef{Path: info.Path, Index: info.Index, TileW: info.TileW, TileH: info.TileH}
		}
	}

	var props map[string]string
	if len(meta.Properties) > 0 {
		props = make(map[string]string, len(meta.Properties))
		for k, v := range meta.Properties {
			props[k] = v
		}
	}

	e := ecs.CreateEntity(world)
	if err := ecs.Add(world, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return 0, fmt.Errorf("level: layer %s: add name: %w", name, err)
	}
	if err := ecs.Add(world, e, component.TileLayerComponent.Kind(), &component.TileLayer{
		Name:       name,
		Index:      idx,
		Width:      lvl.Width,
		Height:     lvl.Height,
		TileSize:   tileSize,
		Tiles:      append([]int(nil), tiles...),
		Usage:      usage,
		Properties: props,
	}); err != nil {
		return 0, fmt.Errorf("level: layer %s: add tile layer: %w", name, err)
	}
	if err := ecs.Add(world, e, component.LayerRendererComponent.Kind(), &component.LayerRenderer{}); err != nil {
		return 0, fmt.Errorf("level: layer %s: add renderer: %w", name, err)
	}
	if err := ecs.Add(world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: idx}); err != nil {
		return 0, fmt.Errorf("level: layer %s: add render layer: %w", name, err)
	}
	if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("level: layer %s: add transform: %w", name, err)
	}
	return e, nil
}

func numberProp(props map[string]interface{}, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

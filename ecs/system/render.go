package system

import (
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/ecs/component"
	"github.com/milk9111/seasons/ecs/render"
	"github.com/milk9111/seasons/materials"
)

// LayerRenderSystem draws tile layers in RenderLayer order, each through its
// bound material's shader when it has one.
type LayerRenderSystem struct {
	globals *render.Globals
	images  *render.ImageCache
	failed  map[*materials.Material]bool

	OffsetX float64
	OffsetY float64
	Zoom    float64
}

func NewLayerRenderSystem(globals *render.Globals) *LayerRenderSystem {
	return &LayerRenderSystem{
		globals: globals,
		images:  render.NewImageCache(),
		failed:  make(map[*materials.Material]bool),
		Zoom:    1,
	}
}

// Layers returns the drawable layer entities in draw order.
func Layers(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TileLayerComponent.Kind(), component.LayerRendererComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

func (r *LayerRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	zoom := r.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	globals := r.globals.Uniforms()

	for _, e := range Layers(w) {
		layer, _ := ecs.Get(w, e, component.TileLayerComponent.Kind())
		renderer, _ := ecs.Get(w, e, component.LayerRendererComponent.Kind())
		if layer == nil || renderer == nil || renderer.Hidden {
			continue
		}
		if renderer.Composite == nil {
			rgba, err := render.ComposeLayer(layer, r.images)
			if err != nil {
				log.Printf("render: %v", err)
				renderer.Hidden = true
				continue
			}
			renderer.Composite = ebiten.NewImageFromImage(rgba)
		}

		var geo ebiten.GeoM
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			geo.Scale(t.Scale())
			geo.Translate(t.X, t.Y)
		}
		geo.Scale(zoom, zoom)
		geo.Translate(r.OffsetX, r.OffsetY)

		if shader := r.shaderFor(renderer.Material); shader != nil {
			b := renderer.Composite.Bounds()
			op := &ebiten.DrawRectShaderOptions{GeoM: geo}
			op.Images[0] = renderer.Composite
			op.Uniforms = renderer.Material.UniformsWith(globals)
			screen.DrawRectShader(b.Dx(), b.Dy(), shader, op)
			continue
		}

		op := &ebiten.DrawImageOptions{GeoM: geo}
		screen.DrawImage(renderer.Composite, op)
	}
}

// shaderFor returns the compiled shader, or nil to draw unshaded. A compile
// failure is logged once per material.
func (r *LayerRenderSystem) shaderFor(m *materials.Material) *ebiten.Shader {
	if m == nil || r.failed[m] {
		return nil
	}
	shader, err := m.Shader()
	if err != nil {
		log.Printf("render: %v", err)
		r.failed[m] = true
		return nil
	}
	return shader
}

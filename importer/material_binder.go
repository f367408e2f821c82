package importer

import (
	"log"

	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/ecs/component"
	"github.com/milk9111/seasons/materials"
)

// CustomMaterialKey is the layer property naming the material to bind.
const CustomMaterialKey = "CustomMaterial"

// Resolver finds a material by name. *materials.Store implements it.
type Resolver interface {
	FindFirst(name string) (*materials.Material, bool)
}

// Binding records one layer/material pair from a pass.
type Binding struct {
	Layer    string
	Material string
}

// Report summarizes the last pass.
type Report struct {
	Bound   []Binding
	Missing []Binding
	Skipped []string
}

// MaterialBinder assigns each layer the material named by its
// CustomMaterial property. Layers are independent: a missing material is
// logged and that layer keeps whatever material it had.
type MaterialBinder struct {
	Resolver Resolver
	Logger   *log.Logger

	report Report
}

func NewMaterialBinder(r Resolver) *MaterialBinder {
	return &MaterialBinder{Resolver: r}
}

func (b *MaterialBinder) OnImportComplete(res *Result) {
	if b == nil || res == nil || res.World == nil {
		return
	}
	b.report = Report{}
	for _, e := range res.Layers() {
		b.bindLayer(res.World, e)
	}
}

func (b *MaterialBinder) bindLayer(w *ecs.World, e ecs.Entity) {
	layer, ok := ecs.Get(w, e, component.TileLayerComponent.Kind())
	if !ok {
		return
	}
	name, ok := layer.Property(CustomMaterialKey)
	if !ok {
		b.report.Skipped = append(b.report.Skipped, layer.Name)
		return
	}

	var (
		mat   *materials.Material
		found bool
	)
	if b.Resolver != nil {
		mat, found = b.Resolver.FindFirst(name)
	}
	if !found {
		b.logger().Printf("import: error: material %q not found for layer %q", name, layer.Name)
		b.report.Missing = append(b.report.Missing, Binding{Layer: layer.Name, Material: name})
		return
	}

	renderer, ok := ecs.Get(w, e, component.LayerRendererComponent.Kind())
	if !ok {
		renderer = &component.LayerRenderer{}
		if err := ecs.Add(w, e, component.LayerRendererComponent.Kind(), renderer); err != nil {
			b.logger().Printf("import: error: layer %q: add renderer: %v", layer.Name, err)
			return
		}
	}
	renderer.Material = mat
	b.report.Bound = append(b.report.Bound, Binding{Layer: layer.Name, Material: mat.Name})
}

// Report returns the summary of the most recent pass.
func (b *MaterialBinder) Report() Report {
	if b == nil {
		return Report{}
	}
	return b.report
}

func (b *MaterialBinder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}

package component

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/seasons/materials"
)

// LayerRenderer draws a TileLayer. Material is nil until an import
// post-processor binds one; a nil material draws the layer unshaded.
type LayerRenderer struct {
	Material *materials.Material
	Hidden   bool

	// Composite caches the layer's tiles flattened into one image.
	Composite *ebiten.Image
}

var LayerRendererComponent = NewComponent[LayerRenderer]()

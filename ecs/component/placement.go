package component

// Transform places a layer in level space. A zero scale is treated as 1.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

// Scale returns the effective scale factors.
func (t *Transform) Scale() (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

var TransformComponent = NewComponent[Transform]()

// RenderLayer orders layers back to front. Equal indices draw in entity
// order.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()

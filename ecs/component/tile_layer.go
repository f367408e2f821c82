package component

// TileRef locates one tile inside a tileset image.
type TileRef struct {
	Path  string
	Index int
	TileW int
	TileH int
}

// TileLayer is one imported tile layer. Tiles is row-major, Width*Height
// long; zero means empty. Properties carries the custom properties the map
// author attached to the layer.
type TileLayer struct {
	Name       string
	Index      int
	Width      int
	Height     int
	TileSize   int
	Tiles      []int
	Usage      []*TileRef
	Properties map[string]string
}

// Property returns the custom property key, reporting whether it was set.
func (l *TileLayer) Property(key string) (string, bool) {
	if l == nil || l.Properties == nil {
		return "", false
	}
	v, ok := l.Properties[key]
	return v, ok
}

var TileLayerComponent = NewComponent[TileLayer]()

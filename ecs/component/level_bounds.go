package component

// LevelBounds stores the world-space bounds of the imported level.
type LevelBounds struct {
	Width    float64
	Height   float64
	TileSize float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/seasons/assets"
	"github.com/milk9111/seasons/ecs/render"
	"github.com/milk9111/seasons/materials"
	"github.com/milk9111/seasons/season"
)

const (
	screenWidth  = 800
	screenHeight = 600
	swatchScale  = 4
)

// Game shows every material applied to the same tileset swatch. Space flips
// the season by hand; S starts a live timer.
type Game struct {
	store   *materials.Store
	swatch  *ebiten.Image
	globals *render.Globals
	timer   *season.Timer
	running bool
}

func NewGame(store *materials.Store, tileset string, length float64) (*Game, error) {
	swatch, err := assets.LoadImage(tileset)
	if err != nil {
		return nil, fmt.Errorf("preview: tileset %s: %w", tileset, err)
	}
	g := &Game{store: store, swatch: swatch, globals: render.NewGlobals()}
	g.timer = season.NewTimer(length, &render.GlobalBroadcaster{Globals: g.globals, Param: render.UseSummerTexture})
	g.globals.Set(render.UseSummerTexture, season.Summer.Value())
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v, _ := g.globals.Float(render.UseSummerTexture)
		if v > 0.5 {
			g.globals.Set(render.UseSummerTexture, season.Winter.Value())
		} else {
			g.globals.Set(render.UseSummerTexture, season.Summer.Value())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if g.running {
			g.timer.OnDisable()
		} else {
			g.timer.OnEnable()
		}
		g.running = !g.running
	}
	g.timer.Tick(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	sw, sh := g.swatch.Bounds().Dx(), g.swatch.Bounds().Dy()
	globals := g.globals.Uniforms()

	y := 40.0
	for _, m := range g.store.All() {
		ebitenutil.DebugPrintAt(screen, m.Name, 20, int(y))

		var geo ebiten.GeoM
		geo.Scale(swatchScale, swatchScale)
		geo.Translate(120, y)

		shader, err := m.Shader()
		if err != nil {
			ebitenutil.DebugPrintAt(screen, err.Error(), 120, int(y))
		} else {
			op := &ebiten.DrawRectShaderOptions{GeoM: geo}
			op.Images[0] = g.swatch
			op.Uniforms = m.UniformsWith(globals)
			screen.DrawRectShader(sw, sh, shader, op)
		}
		y += float64(sh*swatchScale) + 16
	}

	v, _ := g.globals.Float(render.UseSummerTexture)
	status := "manual"
	if g.running {
		status = fmt.Sprintf("timer %.1f/%.1f", g.timer.Elapsed(), g.timer.Length)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s=%.0f  %s  [space] flip  [s] timer", render.UseSummerTexture, v, status))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	materialsDir := flag.String("materials", "materials", "directory of material specs overriding the embedded ones")
	tileset := flag.String("tileset", "tiles.png", "embedded tileset to preview")
	length := flag.Float64("season-length", season.DefaultLength, "season length for the live timer")
	flag.Parse()

	store, err := materials.LoadStore(materials.Sources(*materialsDir)...)
	if err != nil {
		log.Fatal(err)
	}
	game, err := NewGame(store, *tileset, *length)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Material Preview")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

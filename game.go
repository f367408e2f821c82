package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/seasons/common"
	"github.com/milk9111/seasons/config"
	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/ecs/component"
	"github.com/milk9111/seasons/ecs/entity"
	"github.com/milk9111/seasons/ecs/render"
	"github.com/milk9111/seasons/ecs/system"
	"github.com/milk9111/seasons/importer"
	"github.com/milk9111/seasons/materials"
)

var background = color.NRGBA{R: 0x1b, G: 0x1f, B: 0x24, A: 0xff}

type Game struct {
	frames int
	debug  bool
	cfg    *config.Config

	// seasonLength overrides authored timer lengths when positive.
	seasonLength float64

	globals  *render.Globals
	store    *materials.Store
	binder   *importer.MaterialBinder
	pipeline *importer.Pipeline
	result   *importer.Result
	watcher  *materials.Watcher

	scheduler *ecs.Scheduler
	seasons   *system.SeasonSystem
	renderer  *system.LayerRenderSystem

	hud *hud
}

// NewGame imports cfg.Level and sets up the season and render systems.
// seasonLength, when positive, overrides every timer's length including the
// ones authored in the level.
func NewGame(cfg *config.Config, seasonLength float64, debug bool) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	store, err := materials.LoadStore(materials.Sources(cfg.Materials.Dir)...)
	if err != nil {
		return nil, fmt.Errorf("game: load materials: %w", err)
	}
	for _, name := range store.Duplicates() {
		log.Printf("materials: warning: %q is defined more than once, using the first in path order", name)
	}

	g := &Game{
		debug:        debug,
		cfg:          cfg,
		seasonLength: seasonLength,
		globals:      render.NewGlobals(),
		store:        store,
		binder:       importer.NewMaterialBinder(store),
	}

	g.pipeline = importer.NewPipeline()
	for _, path := range cfg.Import.Scripts {
		sp, err := importer.LoadScriptProcessor(path)
		if err != nil {
			log.Printf("import: script %s: %v", path, err)
			continue
		}
		g.pipeline.Register(sp)
	}
	g.pipeline.Register(g.binder)

	if debug {
		param := cfg.Season.Param
		g.globals.Subscribe(param, func(v float32) {
			log.Printf("season: %s=%.0f at frame %d", param, v, g.frames)
		})
	}

	g.seasons = system.NewSeasonSystem(g.globals)
	g.renderer = system.NewLayerRenderSystem(g.globals)
	g.hud = newHUD(g)
	g.scheduler = ecs.NewScheduler(g.seasons, g.hud)

	if err := g.importLevel(cfg.Level); err != nil {
		return nil, err
	}

	if cfg.Materials.Watch {
		if _, err := os.Stat(cfg.Materials.Dir); err != nil {
			log.Printf("materials: not watching %s: %v", cfg.Materials.Dir, err)
		} else if w, err := materials.NewWatcher(cfg.Materials.Dir); err != nil {
			log.Printf("materials: watch %s: %v", cfg.Materials.Dir, err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) importLevel(name string) error {
	res, err := g.pipeline.Import(name)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	if len(res.World.Query(component.SeasonTimerComponent.Kind())) == 0 {
		if _, err := entity.NewSeasonTimer(res.World, g.cfg.Season.Length, g.cfg.SeasonEnabled()); err != nil {
			return fmt.Errorf("game: %w", err)
		}
	}
	configureTimers(res.World, g.cfg, g.seasonLength)

	// timers in the old world get their disable broadcast before it goes
	if g.result != nil {
		for _, e := range g.result.World.Query(component.SeasonTimerComponent.Kind()) {
			ecs.DestroyEntity(g.result.World, e)
		}
		g.seasons.Update(g.result.World)
	}

	g.result = res
	g.center()
	return nil
}

// configureTimers applies config to every timer in w. A positive override
// wins over everything; otherwise timers whose level left the length unset
// take cfg.Season.Length.
func configureTimers(w *ecs.World, cfg *config.Config, override float64) {
	ecs.ForEach(w, component.SeasonTimerComponent.Kind(), func(_ ecs.Entity, st *component.SeasonTimer) {
		if st.Timer == nil {
			return
		}
		switch {
		case override > 0:
			st.Timer.Length = override
		case !st.LengthSet && cfg.Season.Length > 0:
			st.Timer.Length = cfg.Season.Length
		}
		if cfg.Season.Param != "" {
			st.Param = cfg.Season.Param
		}
	})
}

// center places the level in the middle of the base resolution.
func (g *Game) center() {
	g.renderer.OffsetX, g.renderer.OffsetY = 0, 0
	e, ok := g.result.World.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	b, _ := ecs.Get(g.result.World, e, component.LevelBoundsComponent.Kind())
	if b == nil {
		return
	}
	g.renderer.OffsetX = (common.BaseWidth - b.Width) / 2
	g.renderer.OffsetY = (common.BaseHeight - b.Height) / 2
}

// reloadMaterials rebinds layers after a material file changes on disk.
// Broken specs are skipped by the store; a failed walk keeps the previous
// materials.
func (g *Game) reloadMaterials() {
	for _, err := range g.watcher.PollErrors() {
		log.Printf("materials: watch: %v", err)
	}
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	log.Printf("materials: %d file(s) changed, reloading", len(changed))
	if err := g.store.Reload(); err != nil {
		log.Printf("materials: reload: %v", err)
		return
	}
	g.binder.OnImportComplete(g.result)
}

// seasonTimer returns the first season timer in the current world.
func (g *Game) seasonTimer() *component.SeasonTimer {
	if g.result == nil {
		return nil
	}
	e, ok := g.result.World.First(component.SeasonTimerComponent.Kind())
	if !ok {
		return nil
	}
	st, _ := ecs.Get(g.result.World, e, component.SeasonTimerComponent.Kind())
	return st
}

func (g *Game) toggleTimer() {
	if st := g.seasonTimer(); st != nil {
		st.Enabled = !st.Enabled
	}
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		g.reloadMaterials()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggleTimer()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.importLevel(g.cfg.Level); err != nil {
			log.Printf("failed to reimport level %s: %v", g.cfg.Level, err)
		}
	}

	g.scheduler.Update(g.result.World)
	g.hud.ui.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.renderer.Draw(g.result.World, screen)
	g.hud.ui.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    %s", g.frames, ebiten.ActualFPS(), globalsLine(g.globals)))
	}
}

// globalsLine formats every float global as name=value.
func globalsLine(gl *render.Globals) string {
	names := gl.Names()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if v, ok := gl.Float(name); ok {
			parts = append(parts, fmt.Sprintf("%s=%.1f", name, v))
		}
	}
	return strings.Join(parts, "  ")
}

// Close releases the material watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

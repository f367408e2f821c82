package entity

import (
	"fmt"

	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/ecs/component"
	"github.com/milk9111/seasons/ecs/render"
	"github.com/milk9111/seasons/season"
)

// NewSeasonTimer attaches a season timer to a new entity. A non-positive
// length leaves the default in place and LengthSet false. The season system
// wires its broadcaster and fires OnEnable on its first update when enabled.
func NewSeasonTimer(w *ecs.World, length float64, enabled bool) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: "season_timer"}); err != nil {
		return 0, fmt.Errorf("season timer: add name: %w", err)
	}
	if err := ecs.Add(w, e, component.SeasonTimerComponent.Kind(), &component.SeasonTimer{
		Timer:     season.NewTimer(length, nil),
		Enabled:   enabled,
		Param:     render.UseSummerTexture,
		LengthSet: length > 0,
	}); err != nil {
		return 0, fmt.Errorf("season timer: add timer: %w", err)
	}
	return e, nil
}

package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/ecs/component"
	"github.com/milk9111/seasons/ecs/render"
	"github.com/milk9111/seasons/season"
)

// SeasonSystem drives every SeasonTimer: it applies enable/disable
// transitions, ticks enabled timers by the frame delta, and routes their
// broadcasts into the shader globals and the world's event queue.
type SeasonSystem struct {
	globals *render.Globals
	delta   func() float64
	bound   map[ecs.Entity]*component.SeasonTimer
}

func NewSeasonSystem(globals *render.Globals) *SeasonSystem {
	return &SeasonSystem{
		globals: globals,
		delta:   func() float64 { return 1 / float64(ebiten.TPS()) },
		bound:   make(map[ecs.Entity]*component.SeasonTimer),
	}
}

// SetDelta replaces the per-frame time source.
func (s *SeasonSystem) SetDelta(fn func() float64) {
	if s != nil && fn != nil {
		s.delta = fn
	}
}

func (s *SeasonSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.delta()

	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach(w, component.SeasonTimerComponent.Kind(), func(e ecs.Entity, st *component.SeasonTimer) {
		if st == nil || st.Timer == nil {
			return
		}
		seen[e] = struct{}{}
		if prev, ok := s.bound[e]; !ok || prev != st {
			s.bind(w, e, st)
		}

		switch {
		case st.Enabled && !st.Applied:
			st.Timer.OnEnable()
			st.Applied = true
		case !st.Enabled && st.Applied:
			st.Timer.OnDisable()
			st.Applied = false
		case st.Enabled:
			st.Timer.Tick(dt)
		}
	})

	// timers whose entity is gone get their disable broadcast here
	for e, st := range s.bound {
		if _, ok := seen[e]; ok {
			continue
		}
		if st.Applied {
			st.Timer.OnDisable()
			st.Applied = false
		}
		s.globals.UnregisterWriter(param(st), e.String())
		delete(s.bound, e)
	}
}

func (s *SeasonSystem) bind(w *ecs.World, e ecs.Entity, st *component.SeasonTimer) {
	p := param(st)
	events := w.Events()
	st.Timer.SetBroadcaster(&render.GlobalBroadcaster{
		Globals: s.globals,
		Param:   p,
		OnBroadcast: func(sn season.Season) {
			events.Push(ecs.Event{
				Type: ecs.EventSeasonChanged,
				Data: ecs.SeasonChangedEvent{Entity: e, Season: sn.String(), Value: sn.Value()},
			})
		},
	})
	s.globals.RegisterWriter(p, e.String())
	s.bound[e] = st
}

func param(st *component.SeasonTimer) string {
	if st.Param == "" {
		return render.UseSummerTexture
	}
	return st.Param
}

package system

import (
	"testing"

	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/ecs/component"
	"github.com/milk9111/seasons/ecs/entity"
	"github.com/milk9111/seasons/ecs/render"
)

type seasonHarness struct {
	w       *ecs.World
	globals *render.Globals
	sys     *SeasonSystem
	values  []float32
	events  int
}

func newSeasonHarness(t *testing.T, length float64, enabled bool) (*seasonHarness, ecs.Entity) {
	t.Helper()
	h := &seasonHarness{w: ecs.NewWorld(), globals: render.NewGlobals()}
	h.globals.Subscribe(render.UseSummerTexture, func(v float32) { h.values = append(h.values, v) })
	h.sys = NewSeasonSystem(h.globals)
	e, err := entity.NewSeasonTimer(h.w, length, enabled)
	if err != nil {
		t.Fatal(err)
	}
	return h, e
}

func (h *seasonHarness) step(dt float64) {
	h.sys.SetDelta(func() float64 { return dt })
	h.sys.Update(h.w)
	for _, ev := range h.w.Events().Drain() {
		if ev.Type == ecs.EventSeasonChanged {
			h.events++
		}
	}
}

func (h *seasonHarness) current(t *testing.T) float32 {
	t.Helper()
	v, ok := h.globals.Float(render.UseSummerTexture)
	if !ok {
		t.Fatalf("parameter never written")
	}
	return v
}

func TestSeasonSystemLifecycle(t *testing.T) {
	h, e := newSeasonHarness(t, 5, true)

	h.step(1) // enable frame: broadcast summer, no tick
	if len(h.values) != 1 || h.current(t) != 1 {
		t.Fatalf("expected immediate summer broadcast, got %v", h.values)
	}

	h.step(3)
	h.step(1.75)
	if len(h.values) != 1 {
		t.Fatalf("expected no flip under threshold, got %v", h.values)
	}

	h.step(0.25)
	if h.current(t) != 0 {
		t.Fatalf("expected winter after threshold, got %v", h.values)
	}

	st, _ := ecs.Get(h.w, e, component.SeasonTimerComponent.Kind())
	if st.Timer.Elapsed() != 0 {
		t.Fatalf("expected accumulator reset, got %v", st.Timer.Elapsed())
	}

	st.Enabled = false
	h.step(1)
	if h.current(t) != 1 {
		t.Fatalf("expected disable to broadcast summer, got %v", h.values)
	}
	h.step(10)
	if len(h.values) != 3 {
		t.Fatalf("disabled timer must stay quiet, got %v", h.values)
	}
	if h.events != len(h.values) {
		t.Fatalf("expected one event per broadcast, got %d events for %v", h.events, h.values)
	}
}

func TestSeasonSystemDestroyedTimerBroadcastsSummer(t *testing.T) {
	h, e := newSeasonHarness(t, 1, true)
	h.step(0)
	h.step(1)
	if h.current(t) != 0 {
		t.Fatalf("expected winter, got %v", h.values)
	}
	if h.globals.Writers(render.UseSummerTexture) != 1 {
		t.Fatalf("expected registered writer")
	}

	ecs.DestroyEntity(h.w, e)
	h.step(1)
	if h.current(t) != 1 {
		t.Fatalf("expected summer after destroy, got %v", h.values)
	}
	if h.globals.Writers(render.UseSummerTexture) != 0 {
		t.Fatalf("expected writer released")
	}
}

func TestSeasonSystemTwoTimersShareGlobal(t *testing.T) {
	h, _ := newSeasonHarness(t, 1, true)
	if _, err := entity.NewSeasonTimer(h.w, 2, true); err != nil {
		t.Fatal(err)
	}
	h.step(0)
	if h.globals.Writers(render.UseSummerTexture) != 2 {
		t.Fatalf("expected both timers registered as writers")
	}
	h.step(1)
	if h.current(t) != 0 {
		t.Fatalf("expected first timer's winter, got %v", h.values)
	}
	h.step(1)
	// first flips back to summer, then the second flips to winter; last write wins
	if h.current(t) != 0 {
		t.Fatalf("expected second timer's write to win, got %v", h.values)
	}
}

func TestSeasonSystemStartsDisabled(t *testing.T) {
	h, e := newSeasonHarness(t, 1, false)
	h.step(5)
	if len(h.values) != 0 {
		t.Fatalf("disabled timer should not broadcast, got %v", h.values)
	}
	st, _ := ecs.Get(h.w, e, component.SeasonTimerComponent.Kind())
	st.Enabled = true
	h.step(5)
	if len(h.values) != 1 || h.current(t) != 1 {
		t.Fatalf("expected summer on enable, got %v", h.values)
	}
}

package ecs

import (
	"testing"

	"github.com/milk9111/seasons/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name    string
		create  int
		destroy []int
		alive   int
	}{
		{"single", 1, []int{0}, 0},
		{"destroy_middle", 3, []int{1}, 2},
		{"destroy_twice", 2, []int{0, 0}, 1},
		{"no_destroy", 2, nil, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			destroyed := make(map[int]bool)
			for _, idx := range c.destroy {
				ok := DestroyEntity(w, ents[idx])
				if ok == destroyed[idx] {
					t.Fatalf("DestroyEntity(%v) = %v on second call=%v", ents[idx], ok, destroyed[idx])
				}
				destroyed[idx] = true
			}
			if got := len(Entities(w)); got != c.alive {
				t.Fatalf("expected %d live entities, got %d", c.alive, got)
			}
		})
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestLayerComponents(t *testing.T) {
	w := NewWorld()
	layers := component.TileLayerComponent.Kind()
	names := component.NameComponent.Kind()

	ground := CreateEntity(w)
	decor := CreateEntity(w)
	if err := Add(w, ground, layers, &component.TileLayer{Name: "ground", Properties: map[string]string{"CustomMaterial": "meadow"}}); err != nil {
		t.Fatalf("add ground layer: %v", err)
	}
	if err := Add(w, decor, layers, &component.TileLayer{Name: "decor"}); err != nil {
		t.Fatalf("add decor layer: %v", err)
	}
	if err := Add(w, ground, names, &component.Name{Value: "ground"}); err != nil {
		t.Fatalf("add name: %v", err)
	}

	t.Run("get_returns_stored_pointer", func(t *testing.T) {
		layer, ok := Get(w, ground, layers)
		if !ok {
			t.Fatalf("expected ground layer")
		}
		layer.Properties["CustomMaterial"] = "stone"
		again, _ := Get(w, ground, layers)
		if v, _ := again.Property("CustomMaterial"); v != "stone" {
			t.Fatalf("expected mutation through pointer, got %q", v)
		}
	})

	t.Run("for_each_visits_only_holders", func(t *testing.T) {
		var seen []string
		ForEach(w, names, func(e Entity, n *component.Name) { seen = append(seen, n.Value) })
		if len(seen) != 1 || seen[0] != "ground" {
			t.Fatalf("expected only ground, got %v", seen)
		}
	})

	t.Run("remove", func(t *testing.T) {
		if !Remove(w, decor, layers) {
			t.Fatalf("expected decor layer removal")
		}
		if Remove(w, decor, layers) {
			t.Fatalf("second removal should report false")
		}
		if Has(w, decor, layers) {
			t.Fatalf("decor should no longer have a layer")
		}
	})

	t.Run("destroy_drops_components", func(t *testing.T) {
		DestroyEntity(w, ground)
		if got := w.Query(layers); len(got) != 0 {
			t.Fatalf("expected no layers after destroy, got %v", got)
		}
		if got := w.Query(names); len(got) != 0 {
			t.Fatalf("expected no names after destroy, got %v", got)
		}
	})

	t.Run("nil_component", func(t *testing.T) {
		e := CreateEntity(w)
		if err := Add[component.TileLayer](w, e, layers, nil); err != component.ErrNilComponent {
			t.Fatalf("expected ErrNilComponent, got %v", err)
		}
	})
}

func TestForEach2(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[string]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, stringPtr("b")); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, stringPtr("c")); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *string) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestRecycledEntityGeneration(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected id reuse, got %d and %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("expected generation bump on reuse")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle should not be alive")
	}
	if Has(w, fresh, k) {
		t.Fatalf("recycled entity should not inherit components")
	}
	if err := Add(w, old, k, intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestFirstAndQuery(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	for _, e := range []Entity{e3, e1, e2} {
		if err := Add(w, e, ka, intPtr(int(e.id()))); err != nil {
			t.Fatal(err)
		}
	}
	if err := Add(w, e3, kb, stringPtr("x")); err != nil {
		t.Fatal(err)
	}

	if first, ok := w.First(ka); !ok || first != e1 {
		t.Fatalf("expected first=e1, got %v ok=%v", first, ok)
	}
	got := w.Query(ka)
	if len(got) != 3 || got[0] != e1 || got[1] != e2 || got[2] != e3 {
		t.Fatalf("expected id-ordered query, got %v", got)
	}
	if got := w.Query(ka, kb); len(got) != 1 || got[0] != e3 {
		t.Fatalf("expected only e3, got %v", got)
	}
	if _, ok := w.First(component.NewComponentKind[float64]()); ok {
		t.Fatalf("expected no entity for unused kind")
	}
}

func TestEntityString(t *testing.T) {
	e := makeEntity(3, 1)
	if got := e.String(); got != "3.1" {
		t.Fatalf("expected 3.1, got %q", got)
	}
	if Entity(0).Valid() {
		t.Fatalf("zero entity must not be valid")
	}
	if makeEntity(0, 2).Valid() {
		t.Fatalf("entity with id 0 must not be valid")
	}
}

package levels

import (
	"errors"
	"testing"
)

func TestLoadEmbeddedJSON(t *testing.T) {
	lvl, err := loadLevelFromFS("meadow.json")
	if err != nil {
		t.Fatalf("load meadow: %v", err)
	}
	if lvl.Width != 20 || lvl.Height != 12 || lvl.TileSize != 32 {
		t.Fatalf("unexpected dimensions %dx%d@%d", lvl.Width, lvl.Height, lvl.TileSize)
	}
	if len(lvl.Layers) != 4 {
		t.Fatalf("expected 4 layers, got %d", len(lvl.Layers))
	}

	cases := []struct {
		idx      int
		name     string
		material string
		has      bool
	}{
		{0, "ground", "meadow", true},
		{1, "water", "water", true},
		{2, "rocks", "stone", true},
		{3, "decor", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			meta := lvl.Meta(c.idx)
			if meta.Name != c.name {
				t.Fatalf("expected name %q, got %q", c.name, meta.Name)
			}
			v, ok := meta.Properties["CustomMaterial"]
			if ok != c.has || v != c.material {
				t.Fatalf("expected CustomMaterial=%q (%v), got %q (%v)", c.material, c.has, v, ok)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		file string
		data string
	}{
		{"zero_width", "a.json", `{"width":0,"height":2,"layers":[]}`},
		{"short_layer", "a.json", `{"width":2,"height":2,"layers":[[1,1,1]]}`},
		{"bad_json", "a.json", `{`},
		{"bad_tmx", "a.tmx", `<map`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse(c.file, []byte(c.data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := Parse("a.png", nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseDefaultsTileSize(t *testing.T) {
	lvl, err := Parse("a.json", []byte(`{"width":1,"height":1,"layers":[[1]]}`))
	if err != nil {
		t.Fatal(err)
	}
	if lvl.TileSize != DefaultTileSize {
		t.Fatalf("expected default tile size, got %d", lvl.TileSize)
	}
	if meta := lvl.Meta(5); meta.Name != "" || meta.Properties != nil {
		t.Fatalf("expected zero meta for missing layer, got %+v", meta)
	}
	if lvl.Usage(0) != nil {
		t.Fatalf("expected nil usage")
	}
}

func TestLoadEmbeddedTMX(t *testing.T) {
	lvl, err := loadLevelFromFS("frost.tmx")
	if err != nil {
		t.Fatalf("load frost: %v", err)
	}
	if lvl.Width != 16 || lvl.Height != 10 {
		t.Fatalf("unexpected dimensions %dx%d", lvl.Width, lvl.Height)
	}
	if len(lvl.Layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(lvl.Layers))
	}
	if got := lvl.Meta(0).Properties["CustomMaterial"]; got != "meadow" {
		t.Fatalf("ground material = %q", got)
	}
	if got := lvl.Meta(1).Properties["CustomMaterial"]; got != "water" {
		t.Fatalf("pond material = %q", got)
	}
	if _, ok := lvl.Meta(2).Properties["CustomMaterial"]; ok {
		t.Fatalf("border should have no material")
	}
	if !lvl.Meta(2).Physics {
		t.Fatalf("border should have physics")
	}

	pond := 0
	for i, v := range lvl.Layers[1] {
		if v == 0 {
			continue
		}
		pond++
		if u := lvl.Usage(1)[i]; u == nil || u.Index != 1 || u.Path != "tiles.png" {
			t.Fatalf("unexpected pond usage %+v", u)
		}
	}
	if pond != 24 {
		t.Fatalf("expected 24 pond tiles, got %d", pond)
	}
}

func TestCleanLevelPath(t *testing.T) {
	cases := map[string]string{
		"meadow":             "meadow.json",
		"levels/meadow.json": "meadow.json",
		"/abs/levels/x.tmx":  "x.tmx",
		"frost.tmx":          "frost.tmx",
	}
	for in, want := range cases {
		if got := cleanLevelPath(in); got != want {
			t.Fatalf("cleanLevelPath(%q) = %q, want %q", in, got, want)
		}
	}
}

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/seasons/ecs/component"
)

func TestGlobalsSetAndSubscribe(t *testing.T) {
	g := NewGlobals()
	if _, ok := g.Float(UseSummerTexture); ok {
		t.Fatalf("expected unset parameter")
	}

	var a, b []float32
	cancelA := g.Subscribe(UseSummerTexture, func(v float32) { a = append(a, v) })
	g.Subscribe(UseSummerTexture, func(v float32) { b = append(b, v) })
	g.Subscribe("_Other", func(v float32) { t.Fatalf("unrelated subscriber called") })

	g.Set(UseSummerTexture, 1)
	g.Set(UseSummerTexture, 0)
	cancelA()
	g.Set(UseSummerTexture, 1)

	if len(a) != 2 || a[0] != 1 || a[1] != 0 {
		t.Fatalf("unexpected values for cancelled subscriber: %v", a)
	}
	if len(b) != 3 || b[2] != 1 {
		t.Fatalf("unexpected values for live subscriber: %v", b)
	}
	if v, ok := g.Float(UseSummerTexture); !ok || v != 1 {
		t.Fatalf("expected last write to win, got %v ok=%v", v, ok)
	}
}

func TestGlobalsUniforms(t *testing.T) {
	g := NewGlobals()
	g.Set(UseSummerTexture, 0)
	g.Set("Wind", 0.5)
	g.Set("__", 1)

	u := g.Uniforms()
	if len(u) != 2 {
		t.Fatalf("expected 2 uniforms, got %v", u)
	}
	if u["UseSummerTexture"] != float32(0) || u["Wind"] != float32(0.5) {
		t.Fatalf("unexpected uniforms %v", u)
	}
	if names := g.Names(); len(names) != 3 || names[0] != "Wind" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestGlobalsWriters(t *testing.T) {
	g := NewGlobals()
	g.RegisterWriter(UseSummerTexture, "timer:1")
	g.RegisterWriter(UseSummerTexture, "timer:1")
	if n := g.Writers(UseSummerTexture); n != 1 {
		t.Fatalf("expected 1 writer, got %d", n)
	}
	g.RegisterWriter(UseSummerTexture, "timer:2")
	if n := g.Writers(UseSummerTexture); n != 2 {
		t.Fatalf("expected 2 writers, got %d", n)
	}
	g.UnregisterWriter(UseSummerTexture, "timer:1")
	if n := g.Writers(UseSummerTexture); n != 1 {
		t.Fatalf("expected 1 writer after unregister, got %d", n)
	}
}

func TestComposeLayer(t *testing.T) {
	tileset := image.NewRGBA(image.Rect(0, 0, 4, 2))
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			tileset.Set(x, y, red)
			tileset.Set(x+2, y, blue)
		}
	}
	cache := NewImageCache()
	cache.Put("mem.png", tileset)

	layer := &component.TileLayer{
		Name:     "test",
		Width:    3,
		Height:   1,
		TileSize: 2,
		Tiles:    []int{1, 0, 1},
		Usage: []*component.TileRef{
			{Path: "mem.png", Index: 1, TileW: 2, TileH: 2},
			nil,
			{Path: "mem.png", Index: 9, TileW: 2, TileH: 2},
		},
	}
	img, err := ComposeLayer(layer, cache)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 2 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if got := img.RGBAAt(1, 1); got != blue {
		t.Fatalf("expected blue tile at 0, got %v", got)
	}
	if got := img.RGBAAt(3, 0); got.A != 0 {
		t.Fatalf("expected empty tile at 1, got %v", got)
	}
	if got := img.RGBAAt(5, 0); got.A != 0 {
		t.Fatalf("expected out-of-range index to stay empty, got %v", got)
	}

	layer.Usage[0].Path = "missing.png"
	if _, err := ComposeLayer(layer, cache); err == nil {
		t.Fatalf("expected error for missing image")
	}
}

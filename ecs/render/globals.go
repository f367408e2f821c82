package render

import (
	"log"
	"sort"
	"strings"
)

// UseSummerTexture is the shader global the season timer writes.
const UseSummerTexture = "_UseSummerTexture"

// Globals holds named float shader parameters shared by every material. The
// game owns one and hands it to whoever reads or writes parameters. Not safe
// for concurrent use; all access happens on the update/draw goroutine.
type Globals struct {
	values  map[string]float32
	subs    map[string][]*subscription
	writers map[string]map[string]struct{}
	nextSub int
}

type subscription struct {
	id int
	fn func(float32)
}

func NewGlobals() *Globals {
	return &Globals{
		values:  make(map[string]float32),
		subs:    make(map[string][]*subscription),
		writers: make(map[string]map[string]struct{}),
	}
}

// Set stores value under name and notifies subscribers in subscription
// order. Last write wins.
func (g *Globals) Set(name string, value float32) {
	if g == nil || name == "" {
		return
	}
	g.values[name] = value
	for _, s := range append([]*subscription(nil), g.subs[name]...) {
		s.fn(value)
	}
}

// Float returns the value stored under name.
func (g *Globals) Float(name string) (float32, bool) {
	if g == nil {
		return 0, false
	}
	v, ok := g.values[name]
	return v, ok
}

// Subscribe registers fn for writes to name. The returned func cancels it.
func (g *Globals) Subscribe(name string, fn func(float32)) func() {
	if g == nil || fn == nil {
		return func() {}
	}
	g.nextSub++
	sub := &subscription{id: g.nextSub, fn: fn}
	g.subs[name] = append(g.subs[name], sub)
	return func() {
		list := g.subs[name]
		for i, s := range list {
			if s.id == sub.id {
				g.subs[name] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// RegisterWriter records that writer intends to write name. A second
// distinct writer gets a warning: nothing orders their writes.
func (g *Globals) RegisterWriter(name, writer string) {
	if g == nil {
		return
	}
	set, ok := g.writers[name]
	if !ok {
		set = make(map[string]struct{})
		g.writers[name] = set
	}
	if _, dup := set[writer]; dup {
		return
	}
	set[writer] = struct{}{}
	if len(set) > 1 {
		log.Printf("render: warning: %d writers registered for %s; last write wins", len(set), name)
	}
}

// UnregisterWriter forgets writer for name.
func (g *Globals) UnregisterWriter(name, writer string) {
	if g == nil {
		return
	}
	delete(g.writers[name], writer)
}

// Writers reports how many writers are registered for name.
func (g *Globals) Writers(name string) int {
	if g == nil {
		return 0
	}
	return len(g.writers[name])
}

// Uniforms exports every value in the shape DrawRectShaderOptions expects.
// Kage uniforms must be exported identifiers, so leading underscores are
// dropped from the names.
func (g *Globals) Uniforms() map[string]any {
	out := make(map[string]any)
	if g == nil {
		return out
	}
	for name, v := range g.values {
		if u := UniformName(name); u != "" {
			out[u] = v
		}
	}
	return out
}

// Names lists the stored parameter names in sorted order.
func (g *Globals) Names() []string {
	if g == nil {
		return nil
	}
	names := make([]string, 0, len(g.values))
	for name := range g.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UniformName maps a parameter name to its Kage uniform name.
func UniformName(param string) string {
	return strings.TrimLeft(param, "_")
}

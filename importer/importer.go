// Package importer runs the import pass: it loads a level into a fresh ECS
// world and hands the result to registered post-processors.
package importer

import (
	"fmt"
	"log"

	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/ecs/entity"
	"github.com/milk9111/seasons/levels"
)

// PostProcessor is called once per import, after every layer exists. It has
// no error return: a processor reports problems through its logger and
// leaves the rest of the import alone.
type PostProcessor interface {
	OnImportComplete(res *Result)
}

// PostProcessorFunc adapts a function to PostProcessor.
type PostProcessorFunc func(res *Result)

func (f PostProcessorFunc) OnImportComplete(res *Result) {
	if f != nil {
		f(res)
	}
}

// Node is one element of the imported layer tree.
type Node struct {
	Entity   ecs.Entity
	Name     string
	Children []*Node
}

// Walk visits n and its descendants depth-first in document order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil || fn == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Result is a completed import.
type Result struct {
	Source string
	Level  *levels.Level
	World  *ecs.World
	Root   *Node
}

// Layers returns the layer entities in walk order. The root itself is not a
// layer.
func (r *Result) Layers() []ecs.Entity {
	if r == nil || r.Root == nil {
		return nil
	}
	var out []ecs.Entity
	for _, c := range r.Root.Children {
		c.Walk(func(n *Node) {
			if n.Entity.Valid() {
				out = append(out, n.Entity)
			}
		})
	}
	return out
}

type Pipeline struct {
	processors []PostProcessor
	load       func(name string) (*levels.Level, error)
}

func NewPipeline(processors ...PostProcessor) *Pipeline {
	p := &Pipeline{load: levels.Load}
	for _, pp := range processors {
		p.Register(pp)
	}
	return p
}

// Register appends pp; processors run in registration order.
func (p *Pipeline) Register(pp PostProcessor) {
	if p == nil || pp == nil {
		return
	}
	p.processors = append(p.processors, pp)
}

// Import loads the named level and runs the pass over it.
func (p *Pipeline) Import(name string) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("import: nil pipeline")
	}
	lvl, err := p.load(name)
	if err != nil {
		return nil, fmt.Errorf("import: load %s: %w", name, err)
	}
	return p.ImportLevel(name, lvl)
}

// ImportLevel runs the pass over an already decoded level.
func (p *Pipeline) ImportLevel(source string, lvl *levels.Level) (*Result, error) {
	if p == nil {
		return nil, fmt.Errorf("import: nil pipeline")
	}
	world := ecs.NewWorld()
	layers, err := entity.LoadLevelToWorld(world, lvl)
	if err != nil {
		return nil, fmt.Errorf("import: build %s: %w", source, err)
	}

	root := &Node{Name: source}
	for i, e := range layers {
		root.Children = append(root.Children, &Node{Entity: e, Name: lvl.Meta(i).Name})
	}
	res := &Result{Source: source, Level: lvl, World: world, Root: root}

	for _, pp := range p.processors {
		pp.OnImportComplete(res)
	}
	log.Printf("import: %s: %d layers, %d post-processors", source, len(layers), len(p.processors))
	return res, nil
}

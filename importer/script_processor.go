package importer

import (
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/seasons/ecs"
	"github.com/milk9111/seasons/ecs/component"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// A layer script defines onLayer(layer) and returns the layer's new
// properties map, or nothing to keep them as they are.
const layerDispatchScript = `
__result := onLayer(__layer)
`

// ScriptProcessor runs a Tengo script against every layer of an import.
type ScriptProcessor struct {
	Name   string
	Logger *log.Logger

	compiled *tengo.Compiled
}

// NewScriptProcessor compiles src once; each layer runs on a clone.
func NewScriptProcessor(name string, src []byte) (*ScriptProcessor, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), []byte("\n"+layerDispatchScript)...))
	_ = script.Add("__layer", map[string]interface{}{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("import: compile script %s: %w", name, err)
	}
	return &ScriptProcessor{Name: name, compiled: compiled}, nil
}

// LoadScriptProcessor reads a script from disk, falling back to the
// embedded scripts.
func LoadScriptProcessor(path string) (*ScriptProcessor, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		src, err = ScriptsFS.ReadFile("scripts/" + filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("import: load script %s: %w", path, err)
	}
	return NewScriptProcessor(filepath.Base(path), src)
}

func (s *ScriptProcessor) OnImportComplete(res *Result) {
	if s == nil || s.compiled == nil || res == nil || res.World == nil {
		return
	}
	for _, e := range res.Layers() {
		layer, ok := ecs.Get(res.World, e, component.TileLayerComponent.Kind())
		if !ok {
			continue
		}
		props, err := s.runLayer(layer)
		if err != nil {
			s.logger().Printf("import: error: script %s: layer %q: %v", s.Name, layer.Name, err)
			continue
		}
		if props != nil {
			layer.Properties = props
		}
	}
}

func (s *ScriptProcessor) runLayer(layer *component.TileLayer) (map[string]string, error) {
	props := make(map[string]interface{}, len(layer.Properties))
	for k, v := range layer.Properties {
		props[k] = v
	}

	c := s.compiled.Clone()
	if err := c.Set("__layer", map[string]interface{}{
		"name":       layer.Name,
		"index":      layer.Index,
		"properties": props,
	}); err != nil {
		return nil, err
	}
	if err := c.Run(); err != nil {
		return nil, err
	}

	v := c.Get("__result")
	if v == nil || v.IsUndefined() {
		return nil, nil
	}
	if v.ValueType() != "map" && v.ValueType() != "immutable-map" {
		return nil, fmt.Errorf("onLayer returned %s, want map", v.ValueType())
	}
	out := make(map[string]string)
	for k, val := range v.Map() {
		if val == nil {
			continue
		}
		if str, ok := val.(string); ok {
			out[k] = str
			continue
		}
		out[k] = fmt.Sprint(val)
	}
	return out, nil
}

// EmbeddedScripts lists the bundled layer scripts.
func EmbeddedScripts() []string {
	entries, err := ScriptsFS.ReadDir("scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func (s *ScriptProcessor) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

package materials

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is the on-disk form of a material.
type Spec struct {
	Name     string         `yaml:"name"`
	Shader   string         `yaml:"shader"`
	Uniforms map[string]any `yaml:"uniforms"`
}

func loadSpec(fsys fs.FS, name string) (Spec, error) {
	var spec Spec
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return spec, fmt.Errorf("materials: load %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("materials: unmarshal %s: %w", name, err)
	}
	spec.Name = strings.TrimSpace(spec.Name)
	if spec.Name == "" {
		return spec, fmt.Errorf("materials: %s: missing name", name)
	}
	if strings.TrimSpace(spec.Shader) == "" {
		return spec, fmt.Errorf("materials: %s: missing shader", name)
	}
	return spec, nil
}

// shaderPath resolves a shader reference relative to the spec's directory.
func shaderPath(specPath, shader string) string {
	s := strings.TrimPrefix(path.Clean(strings.ReplaceAll(shader, "\\", "/")), "materials/")
	if strings.HasPrefix(s, "/") {
		return strings.TrimPrefix(s, "/")
	}
	dir := path.Dir(specPath)
	if dir == "." {
		return s
	}
	return path.Join(dir, s)
}

// convertUniforms turns YAML scalars and lists into the float32 forms Kage
// accepts.
func convertUniforms(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for name, v := range raw {
		switch val := v.(type) {
		case []any:
			vals := make([]float32, 0, len(val))
			for i, item := range val {
				f, ok := toFloat(item)
				if !ok {
					return nil, fmt.Errorf("uniform %s[%d]: not a number: %v", name, i, item)
				}
				vals = append(vals, f)
			}
			out[name] = vals
		default:
			f, ok := toFloat(val)
			if !ok {
				return nil, fmt.Errorf("uniform %s: not a number: %v", name, v)
			}
			out[name] = f
		}
	}
	return out, nil
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case float64:
		return float32(n), true
	case float32:
		return n, true
	}
	return 0, false
}

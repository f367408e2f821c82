package materials

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Material is a named shader plus its default uniforms.
type Material struct {
	Name       string
	Path       string
	ShaderPath string
	Uniforms   map[string]any

	source    []byte
	shader    *ebiten.Shader
	shaderErr error
	compiled  bool
}

// Source returns the Kage source of the material's shader.
func (m *Material) Source() []byte {
	if m == nil {
		return nil
	}
	return m.source
}

// Shader compiles the material's shader on first use and caches the result,
// including a compile error.
func (m *Material) Shader() (*ebiten.Shader, error) {
	if m == nil {
		return nil, fmt.Errorf("materials: nil material")
	}
	if !m.compiled {
		m.compiled = true
		m.shader, m.shaderErr = ebiten.NewShader(m.source)
		if m.shaderErr != nil {
			m.shaderErr = fmt.Errorf("materials: compile %s (%s): %w", m.Name, m.ShaderPath, m.shaderErr)
		}
	}
	return m.shader, m.shaderErr
}

// UniformsWith returns the material's uniforms overlaid with globals.
// Globals win, so a shared parameter cannot be pinned by one material.
func (m *Material) UniformsWith(globals map[string]any) map[string]any {
	var own map[string]any
	if m != nil {
		own = m.Uniforms
	}
	out := make(map[string]any, len(globals)+len(own))
	for k, v := range own {
		out[k] = v
	}
	for k, v := range globals {
		out[k] = v
	}
	return out
}

func (m *Material) String() string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%s)", m.Name, m.Path)
}

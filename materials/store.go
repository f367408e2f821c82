package materials

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("materials: not found")

// Store indexes material specs by name. Lookups walk materials in lexical
// path order, so when two files declare the same name the one that sorts
// first wins, independent of how the underlying filesystem enumerates.
type Store struct {
	sources   []fs.FS
	materials []*Material
	problems  []error
}

// LoadStore reads every *.yaml/*.yml spec from sources. Later sources
// override earlier ones on identical paths.
func LoadStore(sources ...fs.FS) (*Store, error) {
	s := &Store{sources: sources}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rereads every source. A spec that fails to load is logged and
// skipped, so only layers naming it miss their material. If a source cannot
// be walked the store keeps its previous contents.
func (s *Store) Reload() error {
	if s == nil {
		return fmt.Errorf("materials: nil store")
	}
	owners := make(map[string]int)
	for i, src := range s.sources {
		if src == nil {
			continue
		}
		err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isSpecFile(p) {
				return nil
			}
			owners[p] = i
			return nil
		})
		if err != nil {
			return fmt.Errorf("materials: walk: %w", err)
		}
	}

	paths := make([]string, 0, len(owners))
	for p := range owners {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	loaded := make([]*Material, 0, len(paths))
	var problems []error
	for _, p := range paths {
		m, err := s.load(owners[p], p)
		if err != nil {
			log.Printf("materials: skipping %s: %v", p, err)
			problems = append(problems, err)
			continue
		}
		loaded = append(loaded, m)
	}
	s.materials = loaded
	s.problems = problems
	return nil
}

// Problems returns the specs the last reload skipped, one error each.
func (s *Store) Problems() []error {
	if s == nil {
		return nil
	}
	return append([]error(nil), s.problems...)
}

func (s *Store) load(owner int, specPath string) (*Material, error) {
	spec, err := loadSpec(s.sources[owner], specPath)
	if err != nil {
		return nil, err
	}
	uniforms, err := convertUniforms(spec.Uniforms)
	if err != nil {
		return nil, fmt.Errorf("materials: %s: %w", specPath, err)
	}
	sp := shaderPath(specPath, spec.Shader)
	src, err := s.readShader(owner, sp)
	if err != nil {
		return nil, fmt.Errorf("materials: %s: shader %s: %w", specPath, sp, err)
	}
	return &Material{
		Name:       spec.Name,
		Path:       specPath,
		ShaderPath: sp,
		Uniforms:   uniforms,
		source:     src,
	}, nil
}

// readShader prefers the spec's own source, then the remaining sources from
// last to first.
func (s *Store) readShader(owner int, p string) ([]byte, error) {
	b, err := fs.ReadFile(s.sources[owner], p)
	if err == nil {
		return b, nil
	}
	for i := len(s.sources) - 1; i >= 0; i-- {
		if s.sources[i] == nil || i == owner {
			continue
		}
		if b, err2 := fs.ReadFile(s.sources[i], p); err2 == nil {
			return b, nil
		}
	}
	return nil, err
}

// FindFirst returns the first material named name in lexical path order.
func (s *Store) FindFirst(name string) (*Material, bool) {
	if s == nil {
		return nil, false
	}
	for _, m := range s.materials {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Find is FindFirst with an error for callers that want one.
func (s *Store) Find(name string) (*Material, error) {
	if m, ok := s.FindFirst(name); ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Duplicates lists names declared by more than one spec.
func (s *Store) Duplicates() []string {
	if s == nil {
		return nil
	}
	counts := make(map[string]int)
	for _, m := range s.materials {
		counts[m.Name]++
	}
	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

// All returns the loaded materials in lookup order.
func (s *Store) All() []*Material {
	if s == nil {
		return nil
	}
	return append([]*Material(nil), s.materials...)
}

func isSpecFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}

func isShaderFile(p string) bool {
	return strings.ToLower(path.Ext(p)) == ".kage"
}

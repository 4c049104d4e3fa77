package maps

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"contagion/internal/core"
)

// ErrTemplateNotFound indicates no source has a template with that name.
var ErrTemplateNotFound = errors.New("map template not found")

const ext = ".yaml"

// Source resolves template names to maps. Callers own the returned map.
type Source interface {
	Template(name string) (*core.GridMap, error)
	Names() ([]string, error)
}

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the templates compiled into the binary.
func Builtin() Source {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return NewFS(sub)
}

// FS serves templates stored as <name>.yaml at the root of a file system.
type FS struct {
	fsys fs.FS
}

// NewFS returns a source reading from fsys.
func NewFS(fsys fs.FS) *FS { return &FS{fsys: fsys} }

// NewDir returns a source reading from a directory on disk.
func NewDir(dir string) *FS { return NewFS(os.DirFS(dir)) }

// Normalize lower-cases a template name and rejects names that could escape
// the template directory.
func Normalize(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || strings.ContainsAny(n, `/\`) || n == "." || n == ".." || !fs.ValidPath(n+ext) {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return n, nil
}

// Template loads and parses the named template.
func (s *FS) Template(name string) (*core.GridMap, error) {
	n, err := Normalize(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, n+ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("read map %q: %w", n, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", n, err)
	}
	return m, nil
}

// Names lists the template names available in the file system.
func (s *FS) Names() ([]string, error) {
	matches, err := fs.Glob(s.fsys, "*"+ext)
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Chain consults each source in order; earlier sources shadow later ones.
type Chain []Source

// Template returns the first match across the chain.
func (c Chain) Template(name string) (*core.GridMap, error) {
	for _, src := range c {
		m, err := src.Template(name)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// Names merges the names of every source.
func (c Chain) Names() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, src := range c {
		names, err := src.Names()
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

package loader

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
)

// DecodeFunc registers the products described by one unit file.
type DecodeFunc func(unit string, data []byte) error

// FSSource discovers units as files with a fixed extension in one
// directory of a filesystem.
type FSSource struct {
	fsys   fs.FS
	dir    string
	ext    string
	decode DecodeFunc
}

// NewFSSource creates a source over dir in fsys. ext includes the dot.
func NewFSSource(fsys fs.FS, dir, ext string, decode DecodeFunc) *FSSource {
	return &FSSource{fsys: fsys, dir: dir, ext: ext, decode: decode}
}

// Units lists the file stems with the configured extension.
func (s *FSSource) Units() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, err
	}
	var units []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), s.ext) {
			continue
		}
		units = append(units, strings.TrimSuffix(e.Name(), s.ext))
	}
	return units, nil
}

// Import reads the unit file and hands it to the decoder.
func (s *FSSource) Import(unit string) error {
	data, err := fs.ReadFile(s.fsys, path.Join(s.dir, unit+s.ext))
	if err != nil {
		return err
	}
	return s.decode(unit, data)
}

// UnitSource is an in-process source: each unit is a registration func
// added by a package init.
type UnitSource struct {
	mu    sync.Mutex
	units map[string]func() error
}

// NewUnitSource creates an empty in-process source.
func NewUnitSource() *UnitSource {
	return &UnitSource{units: make(map[string]func() error)}
}

// Add declares a unit. Adding a unit twice panics.
func (s *UnitSource) Add(unit string, register func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[unit]; ok {
		panic(fmt.Sprintf("unit '%s' declared twice", unit))
	}
	s.units[unit] = register
}

// Units returns the declared unit names, sorted.
func (s *UnitSource) Units() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	units := make([]string, 0, len(s.units))
	for u := range s.units {
		units = append(units, u)
	}
	slices.Sort(units)
	return units, nil
}

// Import runs the unit's registration func.
func (s *UnitSource) Import(unit string) error {
	s.mu.Lock()
	register, ok := s.units[unit]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unit '%s' not declared", unit)
	}
	return register()
}

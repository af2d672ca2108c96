package material

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownMaterial is returned when a name has no registered material
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrDuplicateMaterial is returned when a name is registered twice
	ErrDuplicateMaterial = errors.New("duplicate material")
)

// Library holds named materials so several surfaces can share one instance
type Library struct {
	materials map[string]Material
}

// NewLibrary creates an empty material library
func NewLibrary() *Library {
	return &Library{materials: make(map[string]Material)}
}

// Add registers a material under name
func (l *Library) Add(name string, m Material) error {
	if _, exists := l.materials[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMaterial, name)
	}
	l.materials[name] = m
	return nil
}

// Get returns the material registered under name
func (l *Library) Get(name string) (Material, error) {
	m, ok := l.materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

// Names returns the registered names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.materials))
	for name := range l.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered materials
func (l *Library) Len() int {
	return len(l.materials)
}

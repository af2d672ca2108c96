package scene

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var (
	// ErrInvalidScene wraps every problem found in a scene description
	ErrInvalidScene = errors.New("invalid scene")
	// ErrUnknownScene is returned by Lookup for names that are neither built in nor a scene file
	ErrUnknownScene = errors.New("unknown scene")
)

// sceneFile mirrors the YAML scene layout
type sceneFile struct {
	Name      string                  `yaml:"name"`
	Camera    yamlCamera              `yaml:"camera"`
	Materials map[string]yamlMaterial `yaml:"materials"`
	Spheres   []yamlSphere            `yaml:"spheres"`
}

// yamlCamera fields are pointers so omitted keys keep their defaults
type yamlCamera struct {
	AspectRatio     *float64 `yaml:"aspect_ratio"`
	ImageWidth      *int     `yaml:"image_width"`
	SamplesPerPixel *int     `yaml:"samples_per_pixel"`
	MaxDepth        *int     `yaml:"max_depth"`
}

type yamlMaterial struct {
	Type            string    `yaml:"type"`
	Albedo          []float64 `yaml:"albedo"`
	Fuzz            float64   `yaml:"fuzz"`
	RefractionIndex float64   `yaml:"refraction_index"`
}

type yamlSphere struct {
	Center   []float64 `yaml:"center"`
	Radius   float64   `yaml:"radius"`
	Material string    `yaml:"material"`
}

// Load reads a YAML scene description from path
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse builds a scene from a YAML description. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	var file sceneFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	s := NewScene(file.Name)
	if err := file.Camera.apply(s); err != nil {
		return nil, err
	}

	// Sorted so the first reported problem does not depend on map order
	names := make([]string, 0, len(file.Materials))
	for name := range file.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m, err := file.Materials[name].build()
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %v", ErrInvalidScene, name, err)
		}
		if err := s.Materials.Add(name, m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
	}

	for i, entry := range file.Spheres {
		sphere, err := entry.build(s.Materials)
		if err != nil {
			return nil, fmt.Errorf("%w: sphere %d: %v", ErrInvalidScene, i, err)
		}
		s.AddSphere(sphere)
	}

	return s, nil
}

func (c yamlCamera) apply(s *Scene) error {
	if c.AspectRatio != nil {
		s.Camera.AspectRatio = *c.AspectRatio
	}
	if c.ImageWidth != nil {
		s.Camera.ImageWidth = *c.ImageWidth
	}
	if c.SamplesPerPixel != nil {
		s.Camera.SamplesPerPixel = *c.SamplesPerPixel
	}
	if c.MaxDepth != nil {
		s.Camera.MaxDepth = *c.MaxDepth
	}
	if err := s.Camera.Validate(); err != nil {
		return fmt.Errorf("%w: camera: %w", ErrInvalidScene, err)
	}
	return nil
}

func (m yamlMaterial) build() (material.Material, error) {
	switch m.Type {
	case "lambertian":
		albedo, err := parseColor(m.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil
	case "metal":
		albedo, err := parseColor(m.Albedo)
		if err != nil {
			return nil, err
		}
		if !isFinite(m.Fuzz) {
			return nil, fmt.Errorf("fuzz %v is not finite", m.Fuzz)
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric":
		if !isFinite(m.RefractionIndex) || m.RefractionIndex <= 0 {
			return nil, fmt.Errorf("refraction index %v must be positive and finite", m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	case "":
		return nil, errors.New("missing type")
	default:
		return nil, fmt.Errorf("unknown type %q", m.Type)
	}
}

func (s yamlSphere) build(materials *material.Library) (*geometry.Sphere, error) {
	center, err := parseVec3(s.Center)
	if err != nil {
		return nil, fmt.Errorf("center: %v", err)
	}
	if !isFinite(s.Radius) || s.Radius <= 0 {
		return nil, fmt.Errorf("radius %v must be positive and finite", s.Radius)
	}
	m, err := materials.Get(s.Material)
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(center, s.Radius, m), nil
}

func parseVec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	for _, v := range values {
		if !isFinite(v) {
			return core.Vec3{}, fmt.Errorf("component %v is not finite", v)
		}
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func parseColor(values []float64) (core.Color, error) {
	c, err := parseVec3(values)
	if err != nil {
		return core.Color{}, fmt.Errorf("albedo: %v", err)
	}
	for _, v := range values {
		if v < 0 || v > 1 {
			return core.Color{}, fmt.Errorf("albedo %v outside [0,1]", values)
		}
	}
	return c, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BuiltinScenes maps scene names to their constructors
var BuiltinScenes = map[string]func() *Scene{
	"default":       NewDefaultScene,
	"single-sphere": NewSingleSphereScene,
}

// Lookup returns a built-in scene by name, or loads name as a YAML scene file
func Lookup(name string) (*Scene, error) {
	if create, ok := BuiltinScenes[name]; ok {
		return create(), nil
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return Load(name)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

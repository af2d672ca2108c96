package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name      string
	World     *geometry.HittableList // Objects in the scene
	Materials *material.Library      // Named materials shared by the objects
	Camera    renderer.CameraConfig
}

// NewScene creates an empty scene with the default camera
func NewScene(name string) *Scene {
	return &Scene{
		Name:      name,
		World:     geometry.NewHittableList(),
		Materials: material.NewLibrary(),
		Camera:    renderer.DefaultCameraConfig(),
	}
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(sphere *geometry.Sphere) {
	s.World.Add(sphere)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

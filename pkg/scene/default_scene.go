package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// NewDefaultScene creates a ground sphere with a diffuse, a glass and a metal sphere on it
func NewDefaultScene() *Scene {
	s := NewScene("default")

	// Create materials
	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.50)
	materialBubble := material.NewDielectric(1.00 / 1.50)
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	s.mustAddMaterials(map[string]material.Material{
		"ground": materialGround,
		"center": materialCenter,
		"left":   materialLeft,
		"bubble": materialBubble,
		"right":  materialRight,
	})

	s.AddSphere(geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter))
	s.AddSphere(geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft))
	s.AddSphere(geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, materialBubble))
	s.AddSphere(geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight))

	return s
}

// NewSingleSphereScene creates one diffuse sphere floating in front of the camera
func NewSingleSphereScene() *Scene {
	s := NewScene("single-sphere")

	gray := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.mustAddMaterials(map[string]material.Material{"gray": gray})
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray))

	return s
}

// mustAddMaterials registers built-in materials, whose names are known to be unique
func (s *Scene) mustAddMaterials(materials map[string]material.Material) {
	for name, m := range materials {
		if err := s.Materials.Add(name, m); err != nil {
			panic(err)
		}
	}
}

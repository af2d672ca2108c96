package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// constantSampler always returns the same values, for steering scatter branches
type constantSampler struct {
	value  float64
	vector core.Vec3
}

func (c constantSampler) Get1D() float64 { return c.value }
func (c constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(c.vector.X, c.vector.Y)
}
func (c constantSampler) Get3D() core.Vec3 { return c.vector }

// frontHit is a hit on the z=0 plane seen from +z
func frontHit(m Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		T:         1.0,
		FrontFace: true,
		Material:  m,
	}
}

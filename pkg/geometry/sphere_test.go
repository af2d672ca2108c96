package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var fullRange = core.NewInterval(0.001, math.Inf(1))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, fullRange)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, fullRange)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if diff := cmp.Diff(tt.expectedNormal, hit.Normal, approx); diff != "" {
				t.Errorf("Normal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSphere_Hit_ThroughCenter(t *testing.T) {
	// A unit-direction ray through the center from distance d hits at d-r, then d+r
	center := core.NewVec3(1, -2, -5)
	radius := 1.5
	mat := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	sphere := NewSphere(center, radius, mat)

	origin := core.NewVec3(1, -2, 5)
	ray := core.NewRay(origin, center.Subtract(origin).Normalize())
	d := center.Subtract(origin).Length()

	hit, isHit := sphere.Hit(ray, fullRange)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-(d-radius)) > 1e-9 {
		t.Errorf("Expected near root %f, got %f", d-radius, hit.T)
	}
	if hit.Material != material.Material(mat) {
		t.Error("Hit record should carry the sphere's material")
	}

	// Excluding the near root leaves the far one, seen from inside
	far, isHit := sphere.Hit(ray, core.NewInterval(d-radius+0.01, math.Inf(1)))
	if !isHit {
		t.Fatal("Expected far hit")
	}
	if math.Abs(far.T-(d+radius)) > 1e-9 {
		t.Errorf("Expected far root %f, got %f", d+radius, far.T)
	}
	if far.FrontFace {
		t.Error("Far root should be a back face hit")
	}
}

func TestSphere_Hit_IntervalBoundsAreExclusive(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -2), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Roots are at t=1 and t=3
	tests := []struct {
		name     string
		interval core.Interval
		wantHit  bool
		wantT    float64
	}{
		{"both roots inside", core.NewInterval(0, 10), true, 1},
		{"min on near root", core.NewInterval(1, 10), true, 3},
		{"max on near root", core.NewInterval(0, 1), false, 0},
		{"both roots excluded", core.NewInterval(1, 3), false, 0},
		{"empty interval", core.EmptyInterval, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.interval)
			if isHit != tt.wantHit {
				t.Fatalf("Expected hit=%t, got %t", tt.wantHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.wantT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_NormalInvariants(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -1), 0.7, nil)
	sampler := core.NewSeededSampler(7)

	hits := 0
	for i := 0; i < 500; i++ {
		origin := core.RandomUnitVector(sampler).Multiply(3)
		target := sphere.Center.Add(core.RandomUnitVector(sampler).Multiply(0.5))
		ray := core.NewRay(origin, target.Subtract(origin))

		hit, isHit := sphere.Hit(ray, fullRange)
		if !isHit {
			continue
		}
		hits++

		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Normal %v should have unit length", hit.Normal)
		}
		if ray.Direction.Dot(hit.Normal) > 1e-12 {
			t.Fatalf("Normal %v should oppose ray direction %v", hit.Normal, ray.Direction)
		}
		if math.Abs(hit.Point.Subtract(sphere.Center).Length()-sphere.Radius) > 1e-9 {
			t.Fatalf("Hit point %v is not on the sphere", hit.Point)
		}
	}

	if hits == 0 {
		t.Fatal("Expected rays aimed inside the sphere to hit it")
	}
}

func TestNewSphere_NegativeRadiusClamped(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -2, nil)
	if sphere.Radius != 0 {
		t.Errorf("Expected radius 0, got %f", sphere.Radius)
	}
}

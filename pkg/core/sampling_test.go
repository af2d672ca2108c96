package core

import (
	"math"
	"testing"
)

// sequenceSampler replays fixed values, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Get2D() Vec2 {
	return NewVec2(s.Get1D(), s.Get1D())
}

func (s *sequenceSampler) Get3D() Vec3 {
	return NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

func TestRandomUnitVector_UnitLength(t *testing.T) {
	sampler := NewSeededSampler(42)

	var sum Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Sample %d has length %f, expected 1", i, v.Length())
		}
		sum = sum.Add(v)
	}

	// A uniform distribution on the sphere has zero mean
	mean := sum.Divide(n)
	if mean.Length() > 0.05 {
		t.Errorf("Mean of unit vectors should be near zero, got %v", mean)
	}
}

func TestRandomUnitVector_RejectsOutsideBall(t *testing.T) {
	// First triple maps to the cube corner (1,1,1) and must be rejected,
	// second triple is the exact center and must be rejected,
	// third maps to (0.5, 0, 0) and is accepted.
	sampler := &sequenceSampler{values: []float64{
		1, 1, 1,
		0.5, 0.5, 0.5,
		0.75, 0.5, 0.5,
	}}

	v := RandomUnitVector(sampler)
	expected := NewVec3(1, 0, 0)
	if v.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v after rejections, got %v", expected, v)
	}
	if sampler.next != 9 {
		t.Errorf("Expected 9 draws, got %d", sampler.next)
	}
}

func TestSampleSquare_Range(t *testing.T) {
	sampler := NewSeededSampler(7)
	for i := 0; i < 1000; i++ {
		offset := SampleSquare(sampler)
		if offset.X < -0.5 || offset.X > 0.5 || offset.Y < -0.5 || offset.Y > 0.5 {
			t.Fatalf("Offset %v outside [-0.5,0.5]²", offset)
		}
		if offset.Z != 0 {
			t.Fatalf("Offset Z should be 0, got %f", offset.Z)
		}
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(1234)
	b := NewSeededSampler(1234)
	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Samplers with equal seeds diverged at draw %d", i)
		}
	}
}

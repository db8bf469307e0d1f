package material

import (
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_HeadOnReflectsAntiparallel(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)

	// Ray fired at the center of a sphere hits along the normal
	incoming := core.NewVec3(0, 0, -3)
	rayIn := core.NewRay(core.NewVec3(0, 0, 5), incoming)
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 1),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, core.NewSeededSampler(1))
	if !didScatter {
		t.Fatal("Metal should scatter a head-on ray")
	}

	expected := incoming.Normalize().Negate()
	if !scatter.Scattered.Direction.NearlyEquals(expected, 1e-12) {
		t.Errorf("Expected antiparallel reflection %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, core.NewSeededSampler(42))
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	if !scatter.Scattered.Direction.NearlyEquals(expected, 1e-10) {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
	if !scatter.Scattered.Origin.Equals(hit.Point) {
		t.Errorf("Scattered ray should start at the hit point")
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	sampler := core.NewSeededSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	var directions []core.Vec3
	for i := 0; i < 10; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			// fuzz 0.5 around the normal can never dip below the surface
			t.Fatalf("Metal should scatter on iteration %d", i)
		}
		directions = append(directions, scatter.Scattered.Direction)
	}

	allSame := true
	for i := 1; i < len(directions); i++ {
		if !directions[i].NearlyEquals(directions[0], 1e-10) {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("Fuzzy metal should produce varying reflection directions")
	}
}

func TestMetal_GrazingRayAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)

	// Nearly tangent incoming ray reflects just above the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	// 0.25 maps to the fuzz sample (-0.5, -0.5, -0.5), pushing it below
	_, didScatter := metal.Scatter(rayIn, hit, constantSampler(0.25))
	if didScatter {
		t.Error("Ray perturbed below the surface should be absorbed")
	}
}

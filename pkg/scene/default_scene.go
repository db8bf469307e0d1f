package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewDefaultScene creates three spheres on a large ground sphere: diffuse in
// the middle, a hollow glass shell on the left and brushed gold on the right
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          30.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 0.0, // Focus on the center sphere
	}

	s := newScene("default", defaultCameraConfig, cameraOverrides)

	// Create materials
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	s.World.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround))
	s.World.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue))
	s.World.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalGold))

	// The negative inner radius turns the glass sphere into a thin shell
	s.World.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass))
	s.World.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, materialGlass))

	return s
}

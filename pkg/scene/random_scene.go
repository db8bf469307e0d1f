package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewRandomScene creates the classic cover scene: a field of small randomly
// colored spheres around three large ones. The same seed always produces the
// same scene.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	s := newScene("random", defaultCameraConfig, cameraOverrides)
	s.Width = 600
	s.SamplingConfig.SamplesPerPixel = 50

	random := rand.New(rand.NewSource(seed))

	s.World.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	// One glass material is shared by every small glass sphere
	glass := material.NewDielectric(1.5)
	clearance := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)

			// Keep the area in front of the big metal sphere clear
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			var sphereMaterial core.Material
			switch {
			case chooseMaterial < 0.8:
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMaterial < 0.95:
				albedo := core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				sphereMaterial = material.NewMetal(albedo, 0.5*random.Float64())
			default:
				sphereMaterial = glass
			}

			s.World.Add(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	s.World.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass))
	s.World.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0,
		material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	s.World.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0,
		material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return s
}

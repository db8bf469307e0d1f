package scene

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Grid layout for NewSphereGridScene
const (
	gridSize       = 10
	gridExtent     = 9.0 // Side length of the square the grid occupies
	gridCenter     = 4.5
	groundRadius   = 1000.0
	gridLightness  = 0.65
	gridMinChroma  = 0.05
	gridMaxChroma  = 0.25
	gridBaseFuzz   = 0.05
	gridFuzzSpread = 0.1
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1].
// l: lightness (0-1), c: chroma (0-0.4), h: hue in degrees
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, then cube
	lms := core.NewVec3(
		l+0.3963377774*a+0.2158037573*b,
		l-0.1055613458*a-0.0638541728*b,
		l-0.0894841775*a-1.2914855480*b,
	)
	lms = lms.MultiplyVec(lms).MultiplyVec(lms)

	rgb := core.NewVec3(
		+4.0767416621*lms.X-3.3077115913*lms.Y+0.2309699292*lms.Z,
		-1.2684380046*lms.X+2.6097574011*lms.Y-0.3413193965*lms.Z,
		-0.0041960863*lms.X-0.7034186147*lms.Y+1.7076147010*lms.Z,
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a grid of metal spheres resting on a large gray
// ground sphere. Hue varies along x and chroma along z.
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(gridCenter, 6, 18),
		LookAt:        core.NewVec3(gridCenter, 0.8, gridCenter),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.02,
		FocusDistance: 0.0,
	}

	s := newScene("spheregrid", defaultCameraConfig, cameraOverrides)
	s.SamplingConfig.MaxDepth = 40

	// The top of the ground sphere sits at y = 0
	s.World.Add(geometry.NewSphere(core.NewVec3(gridCenter, -groundRadius, gridCenter), groundRadius,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	spacing := gridExtent / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			position := core.NewVec3(
				float64(i)*spacing-gridExtent/2.0+gridCenter,
				sphereRadius,
				float64(j)*spacing-gridExtent/2.0+gridCenter,
			)

			hue := float64(i) / float64(gridSize-1) * 360.0
			chroma := gridMinChroma + float64(j)/float64(gridSize-1)*(gridMaxChroma-gridMinChroma)
			lightness := gridLightness + 0.1*math.Sin(float64(i+j)*0.5)
			fuzz := gridBaseFuzz + gridFuzzSpread*float64((i+j)%3)/2.0

			albedo := oklchToRGB(lightness, chroma, hue)
			s.World.Add(geometry.NewSphere(position, sphereRadius, material.NewMetal(albedo, fuzz)))
		}
	}

	return s
}

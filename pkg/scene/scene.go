package scene

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering. It is built once and
// only read while rendering.
type Scene struct {
	Name           string
	World          geometry.HitableList // Objects in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	Width          int // Image width; height follows from the camera aspect ratio
}

// Height returns the image height implied by Width and the camera aspect ratio
func (s *Scene) Height() int {
	height := int(float64(s.Width) / s.CameraConfig.AspectRatio)
	if height < 1 {
		height = 1
	}
	return height
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("scene %q: width must be positive, got %d", s.Name, s.Width)
	}
	if len(s.World) == 0 {
		return fmt.Errorf("scene %q: no objects", s.Name)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

// NewRaytracer builds a raytracer for the scene
func (s *Scene) NewRaytracer(logger core.Logger) *renderer.Raytracer {
	camera := renderer.NewCamera(s.CameraConfig)
	return renderer.NewRaytracer(s.World, camera, s.Width, s.Height(), s.SamplingConfig, logger)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.World)
}

// newScene fills in the shared defaults for built-in scenes
func newScene(name string, cameraConfig renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	return &Scene{
		Name:           name,
		World:          geometry.NewHitableList(),
		CameraConfig:   cameraConfig,
		SamplingConfig: renderer.DefaultSamplingConfig(),
		Width:          400,
	}
}

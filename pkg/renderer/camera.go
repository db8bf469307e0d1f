package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to construct a camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0)), tilts the camera
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 disables depth of field
	FocusDistance float64   // Distance to the plane in perfect focus (0 = distance to LookAt)
}

// DefaultCameraConfig returns a camera at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 16.0 / 9.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	var zero core.Vec3

	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Validate reports configurations that cannot produce a camera basis
func (c CameraConfig) Validate() error {
	viewDir := c.LookFrom.Subtract(c.LookAt)
	switch {
	case viewDir.IsZero(1e-12):
		return errors.New("camera: look-from and look-at must differ")
	case c.Up.IsZero(1e-12):
		return errors.New("camera: up vector must be non-zero")
	case c.Up.Cross(viewDir).IsZero(1e-12):
		return errors.New("camera: up vector must not be parallel to the view direction")
	case c.VFov <= 0 || c.VFov >= 180:
		return fmt.Errorf("camera: vertical field of view must be in (0, 180) degrees, got %g", c.VFov)
	case c.AspectRatio <= 0:
		return fmt.Errorf("camera: aspect ratio must be positive, got %g", c.AspectRatio)
	case c.Aperture < 0:
		return fmt.Errorf("camera: aperture must not be negative, got %g", c.Aperture)
	case c.FocusDistance < 0:
		return fmt.Errorf("camera: focus distance must not be negative, got %g", c.FocusDistance)
	}
	return nil
}

// Camera generates rays for rendering. It is immutable once built and safe
// to share between workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal basis: right, up, backward
	lensRadius      float64
}

// NewCamera creates a camera from config. Zero VFov, AspectRatio and Up fall
// back to DefaultCameraConfig; zero FocusDistance focuses on LookAt.
func NewCamera(config CameraConfig) *Camera {
	defaults := DefaultCameraConfig()
	if config.VFov == 0 {
		config.VFov = defaults.VFov
	}
	if config.AspectRatio == 0 {
		config.AspectRatio = defaults.AspectRatio
	}
	if config.Up == (core.Vec3{}) {
		config.Up = defaults.Up
	}
	if config.FocusDistance == 0 {
		config.FocusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	focus := config.FocusDistance

	// Scale the viewport out to the focus plane so objects there are sharp
	lowerLeftCorner := origin.Subtract(
		u.Multiply(halfWidth).Add(v.Multiply(halfHeight)).Add(w).Multiply(focus))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * focus * halfWidth),
		vertical:        v.Multiply(2 * focus * halfHeight),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0, 0) is the lower-left corner of the image plane.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin

	// Sample the lens for depth of field; a pinhole camera needs no randomness
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// GetCameraForward returns the unit direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

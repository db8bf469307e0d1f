package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards all output
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}

// Hitable is anything a ray can intersect
type Hitable interface {
	// Hit returns the intersection with the smallest t strictly inside
	// (tMin, tMax), or false when there is none.
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter returns false when the ray is absorbed.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64  // Parameter t along the ray
	Point    Vec3     // Point of intersection
	Normal   Vec3     // (p - center) / radius for spheres; inward for negative radii
	Material Material // Shared material of the hit object
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

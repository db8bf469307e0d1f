package material

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractionIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Glass always scatters; the choice between reflection and refraction is made
// with one draw from the sampler weighted by Schlick's approximation.
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	// Clear glass absorbs nothing
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	direction := rayIn.Direction
	dirDotNormal := hit.Normal.Dot(direction)

	// Work out which side of the surface the ray is on
	var outwardNormal core.Vec3
	var refractionRatio, cosine float64
	if dirDotNormal > 0 {
		// Exiting the material (from glass to air)
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractionIndex
		cosine = d.RefractionIndex * dirDotNormal / direction.Length()
	} else {
		// Entering the material (from air to glass)
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / d.RefractionIndex
		cosine = -dirDotNormal / direction.Length()
	}

	reflected := core.NewRay(hit.Point, Reflect(direction, hit.Normal))

	refracted, canRefract := Refract(direction, outwardNormal, refractionRatio)
	if !canRefract {
		// Total internal reflection
		return core.ScatterResult{Scattered: reflected, Attenuation: attenuation}, true
	}

	if sampler.Get1D() < Schlick(cosine, d.RefractionIndex) {
		return core.ScatterResult{Scattered: reflected, Attenuation: attenuation}, true
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, refracted),
		Attenuation: attenuation,
	}, true
}

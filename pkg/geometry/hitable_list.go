package geometry

import "github.com/df07/go-sphere-raytracer/pkg/core"

// HitableList is an ordered collection of surfaces queried as one.
// Lookups are a linear scan; there is no spatial index.
type HitableList []core.Hitable

// NewHitableList creates a list from the given surfaces
func NewHitableList(objects ...core.Hitable) HitableList {
	return HitableList(objects)
}

// Add appends a surface to the list
func (l *HitableList) Add(object core.Hitable) {
	*l = append(*l, object)
}

// Hit returns the closest hit among all surfaces in (tMin, tMax)
func (l HitableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range l {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

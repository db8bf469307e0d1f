package material

// constantSampler always returns the same value, making scatter decisions deterministic
type constantSampler float64

func (c constantSampler) Get1D() float64 {
	return float64(c)
}

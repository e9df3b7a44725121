package domain

import "math"

// UnitNormTolerance is the allowed deviation of a stored vector's
// Euclidean norm from 1.
const UnitNormTolerance = 1e-5

// Dot returns the inner product of two equal-length vectors.
// For unit vectors this equals their cosine similarity.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Norm returns the Euclidean norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Normalize scales v to unit length in place and returns it.
// A zero vector is returned unchanged.
func Normalize(v []float32) []float32 {
	n := Norm(v)
	if n == 0 {
		return v
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / n)
	}
	return v
}

// IsUnit reports whether v has Euclidean norm 1 within UnitNormTolerance.
func IsUnit(v []float32) bool {
	return math.Abs(Norm(v)-1) <= UnitNormTolerance
}

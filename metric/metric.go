// Package metric provides distance functions for float32 vectors.
//
// All functions assume equally sized inputs; length checking is the
// caller's responsibility since these sit on the hot path.
package metric

import (
	"fmt"
	"math"
)

// Func is a function type for distance calculation. Smaller results mean
// closer vectors.
type Func func(a, b []float32) float32

// Metric identifies a built-in distance function.
type Metric int

const (
	L2 Metric = iota
	Cosine
	Dot
)

func (m Metric) String() string {
	switch m {
	case L2:
		return "L2"
	case Cosine:
		return "Cosine"
	case Dot:
		return "Dot"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case L2:
		return SquaredL2, nil
	case Cosine:
		return CosineDistance, nil
	case Dot:
		return DotProductDistance, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between a and b.
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// DotProductDistance negates the dot product of a and b so that larger
// products rank closer.
func DotProductDistance(a, b []float32) float32 {
	return -dot(a, b)
}

// CosineDistance calculates one minus the cosine similarity of a and b.
// Zero vectors compare as maximally distant.
func CosineDistance(a, b []float32) float32 {
	na := dot(a, a)
	nb := dot(b, b)
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot(a, b)/float32(math.Sqrt(float64(na)*float64(nb)))
}

// Magnitude calculates the length of v.
func Magnitude(v []float32) float32 {
	return float32(math.Sqrt(float64(dot(v, v))))
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

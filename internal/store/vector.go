package store

import "math"

// Normalize L2-normalizes a vector so that inner product equals cosine
// similarity. A zero-norm vector is returned unchanged rather than
// producing NaN components. The input slice is not modified.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	out := make([]float32, len(vec))
	if sum == 0 {
		copy(out, vec)
		return out
	}
	norm := float32(math.Sqrt(sum))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}

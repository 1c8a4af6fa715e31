package metrics

import "math"

// Welford is an implementation of Welford's online algorithm for calculating variance.
type Welford struct {
	mean  float64
	m2    float64
	count uint64
}

// Update adds the value to the current estimate.
func (w *Welford) Update(val float64) {
	w.count++
	delta := val - w.mean
	w.mean += delta / float64(w.count)
	w.m2 += delta * (val - w.mean)
}

// Get returns the current mean and sample variance estimate.
// The variance is NaN until at least two values have been added.
func (w *Welford) Get() (mean, variance float64, count uint64) {
	if w.count < 2 {
		return w.mean, math.NaN(), w.count
	}
	return w.mean, w.m2 / float64(w.count-1), w.count
}

// Stddev returns the sample standard deviation, or 0 if fewer than two values have been added.
func (w *Welford) Stddev() float64 {
	if w.count < 2 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.count-1))
}

// Reset resets all values to 0.
func (w *Welford) Reset() {
	*w = Welford{}
}

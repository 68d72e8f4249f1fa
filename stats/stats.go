// Package stats accumulates numbers from engine-vs-engine runs: running
// means with confidence intervals, and win/loss/draw tallies.
package stats

import "math"

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance, updated with Welford's
// algorithm so that no samples need to be kept.
type Statistic struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	if s.n == 1 {
		s.mean = val
		s.m2 = 0
		s.min = val
		s.max = val
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Iterations() int {
	return s.n
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance is the sample variance; zero for fewer than two samples.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Min() float64 { return s.min }
func (s *Statistic) Max() float64 { return s.max }

// ConfidenceInterval returns the interval around the mean at the given
// confidence, in percent (95 for a 95% interval).
func (s *Statistic) ConfidenceInterval(pct float64) (lo, hi float64) {
	half := ZVal(pct) * s.StandardError()
	return s.mean - half, s.mean + half
}

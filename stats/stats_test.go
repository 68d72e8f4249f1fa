package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		samples []float64
		mean    float64
		stdev   float64
		min     float64
		max     float64
	}{
		{[]float64{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 10, 124},
		{[]float64{1}, 1, 0, 1, 1},
		{[]float64{}, 0, 0, 0, 0},
		{[]float64{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, v := range c.samples {
			s.Push(v)
		}
		is.Equal(s.Iterations(), len(c.samples))
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489004))
	is.True(FuzzyEqual(ZVal(0), 0))
}

func TestConfidenceInterval(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{10, 12, 23, 23, 16, 23, 21, 16} {
		s.Push(v)
	}
	lo, hi := s.ConfidenceInterval(95)
	half := 1.959963984540054 * 5.2372293656638 / 2.8284271247461903
	is.True(FuzzyEqual(lo, 18-half))
	is.True(FuzzyEqual(hi, 18+half))

	empty := &Statistic{}
	lo, hi = empty.ConfidenceInterval(95)
	is.Equal(lo, 0.0)
	is.Equal(hi, 0.0)
}

func TestOutcomes(t *testing.T) {
	is := is.New(t)
	o := &Outcomes{}
	o.AddWin()
	o.AddWin()
	o.AddWin()
	o.AddLoss()
	o.AddDraw()
	is.Equal(o.Games(), 5)
	is.Equal(o.Score().Iterations(), 5)
	is.True(FuzzyEqual(o.Score().Mean(), 0.7))
	is.Equal(o.String()[:5], "3-1-1")
}

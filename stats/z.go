package stats

import "gonum.org/v1/gonum/stat/distuv"

var standardNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZVal returns the two-tailed z-value for a confidence level given in
// percent, e.g. about 1.96 for 95.
func ZVal(pct float64) float64 {
	return standardNormal.Quantile((1 + pct/100) / 2)
}

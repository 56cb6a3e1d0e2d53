package analysis

import (
	"math"

	"goagree/domain/core"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides unified access to the distribution quantiles and
// p-values the engine needs. This keeps every CDF/quantile call in one place
// instead of fragmented approximations throughout the codebase.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// TwoSidedNormalQuantile returns z such that P(|Z| <= z) = 1-alpha for a
// standard normal Z. This is the multiplier behind the limits of agreement.
func (d *Distributions) TwoSidedNormalQuantile(alpha float64) (float64, error) {
	if !(alpha > 0 && alpha < 1) {
		return 0, core.NewInvalidParameterError("alpha", "must lie in the open interval (0,1)")
	}
	return distuv.UnitNormal.Quantile(1 - alpha/2), nil
}

// TwoSidedTQuantile returns the Student-t analogue of TwoSidedNormalQuantile
// with df degrees of freedom. This is the multiplier behind the confidence
// intervals.
func (d *Distributions) TwoSidedTQuantile(alpha float64, df int) (float64, error) {
	if !(alpha > 0 && alpha < 1) {
		return 0, core.NewInvalidParameterError("alpha", "must lie in the open interval (0,1)")
	}
	if df < 1 {
		return 0, core.NewInvalidParameterError("df", "must be at least 1")
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return tDist.Quantile(1 - alpha/2), nil
}

// TTestPValue computes the exact two-tailed p-value for a t-statistic.
func (d *Distributions) TTestPValue(tStatistic float64, df int) float64 {
	if df <= 0 {
		return 1.0
	}
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
}

// CorrelationPValue computes the exact two-tailed p-value for a correlation
// coefficient (Pearson or Spearman) at the given sample size, via the
// t-transform t = r*sqrt((n-2)/(1-r^2)).
func (d *Distributions) CorrelationPValue(r float64, sampleSize int) float64 {
	if sampleSize < 3 {
		return 1.0
	}
	if r >= 1 || r <= -1 {
		return 0.0
	}
	df := float64(sampleSize - 2)
	tStatistic := r * math.Sqrt(df/(1-r*r))
	return d.TTestPValue(tStatistic, sampleSize-2)
}

// NormalCDF computes the standard normal cumulative distribution function.
func (d *Distributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

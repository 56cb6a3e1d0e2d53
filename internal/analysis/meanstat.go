package analysis

import (
	"math"

	"goagree/domain/agreement"
	"goagree/domain/core"

	"github.com/montanaflynn/stats"
)

// MeanStatComputer is the core engine: given normalized subject data, a
// combiner and a significance level it derives bias, limits of agreement and
// their confidence intervals, with the repeated-measures variance
// decomposition applied when replicates are present.
type MeanStatComputer struct {
	dist *Distributions
}

// NewMeanStatComputer creates a new mean-statistic engine
func NewMeanStatComputer() *MeanStatComputer {
	return &MeanStatComputer{dist: NewDistributions()}
}

// meanStatInputs carries the per-subject series the engine and its
// extensions share: the magnitude axis and the combining-statistic values.
type meanStatInputs struct {
	Centers []float64
	Values  []float64
}

// Compute derives the full MeanStat record for one combining statistic.
// The returned inputs are handed to the regression extension so the bias fit
// uses exactly the per-subject series the engine used.
func (c *MeanStatComputer) Compute(ds *Dataset, comb agreement.Combiner, alpha float64) (*agreement.MeanStat, *meanStatInputs, error) {
	if !(alpha > 0 && alpha < 1) {
		// Validated upstream; re-checked here so the engine is safe on its own.
		return nil, nil, core.NewInvalidParameterError("alpha", "must lie in the open interval (0,1)")
	}
	n := ds.N()
	if n < 2 {
		return nil, nil, core.NewInsufficientDataError("variance undefined for fewer than 2 subjects")
	}

	centers := make([]float64, n)
	values := make([]float64, n)
	for i, subj := range ds.Subjects {
		mx, _ := stats.Mean(subj.X)
		my, _ := stats.Mean(subj.Y)
		centers[i] = comb.Center(mx, my)
		if comb.Name() == "sd" {
			values[i] = agreement.SDCombine(subj.X, subj.Y)
		} else {
			values[i] = comb.Combine(mx, my)
		}
	}

	mu, _ := stats.Mean(values)
	withinX, withinY := c.withinSubjectVariances(ds)

	s, err := c.combinedStdDev(ds, values, withinX, withinY)
	if err != nil {
		return nil, nil, err
	}

	z, err := c.dist.TwoSidedNormalQuantile(alpha)
	if err != nil {
		return nil, nil, err
	}
	t, err := c.dist.TwoSidedTQuantile(alpha, n-1)
	if err != nil {
		return nil, nil, err
	}

	ms := &agreement.MeanStat{
		Statistic:  comb.Name(),
		Mu:         mu,
		S:          s,
		WithinVarX: withinX,
		WithinVarY: withinY,
	}

	// Limits of agreement: lower = mu - z*s, upper = mu + z*s, so the
	// ordering invariant holds by construction.
	ms.Loa = agreement.Interval{Lower: mu - z*s, Upper: mu + z*s}

	// CI of the bias: mu -/+ t(n-1) * s/sqrt(n).
	seMu := s / math.Sqrt(float64(n))
	ms.MuCI = agreement.Interval{Lower: mu - t*seMu, Upper: mu + t*seMu}

	// CI of each limit: the large-sample variance of mu +/- z*s combines the
	// variance of the mean (s^2/n) with the variance of z*s
	// (z^2 * s^2 / (2(n-1))).
	seLoa := s * math.Sqrt(1/float64(n)+z*z/(2*float64(n-1)))
	ms.LoaCI.Lower = agreement.Interval{Lower: ms.Loa.Lower - t*seLoa, Upper: ms.Loa.Lower + t*seLoa}
	ms.LoaCI.Upper = agreement.Interval{Lower: ms.Loa.Upper - t*seLoa, Upper: ms.Loa.Upper + t*seLoa}

	// Magnitude-dependence diagnostic: Spearman between subject means and
	// the combining statistic, computed independently per statistic. Two
	// subjects cannot show a magnitude trend, so the diagnostic is neutral
	// there rather than gating an otherwise well-defined analysis.
	if n < 3 {
		ms.PRSMu = 1
	} else {
		rho, p, err := SpearmanCorrelation(centers, values)
		if err != nil {
			return nil, nil, err
		}
		ms.RSMu = rho
		ms.PRSMu = p
	}

	return ms, &meanStatInputs{Centers: centers, Values: values}, nil
}

// withinSubjectVariances returns the pooled one-way-ANOVA estimate of the
// within-subject variance for each series: sum of squared deviations from
// each subject's own mean divided by the pooled degrees of freedom. Subjects
// with a single replicate contribute no degrees of freedom; in simple mode
// both variances are exactly zero.
func (c *MeanStatComputer) withinSubjectVariances(ds *Dataset) (float64, float64) {
	var ssX, ssY float64
	df := 0
	for _, subj := range ds.Subjects {
		mx, _ := stats.Mean(subj.X)
		my, _ := stats.Mean(subj.Y)
		for j := 0; j < subj.Count; j++ {
			dx := subj.X[j] - mx
			dy := subj.Y[j] - my
			ssX += dx * dx
			ssY += dy * dy
		}
		df += subj.Count - 1
	}
	if df == 0 {
		return 0, 0
	}
	return ssX / float64(df), ssY / float64(df)
}

// combinedStdDev estimates the standard deviation of the combining statistic
// for single observations. In simple mode this is the ordinary sample
// standard deviation. With repeated measurements the variance of the
// subject-mean statistics understates single-observation variability, so the
// within-subject components are added back:
//
//	s^2 = var(subject means) + (1 - mean(1/m_i)) * (swX^2 + swY^2)
//
// which reduces to (1 - 1/m) for equal replicate counts and to the plain
// sample variance when every subject has one replicate.
func (c *MeanStatComputer) combinedStdDev(ds *Dataset, values []float64, withinX, withinY float64) (float64, error) {
	varMeans, err := stats.SampleVariance(values)
	if err != nil {
		return 0, core.NewInsufficientDataError("cannot estimate variance of combining statistic")
	}

	if ds.Mode == agreement.ModeSimple {
		return math.Sqrt(varMeans), nil
	}

	invSum := 0.0
	for _, subj := range ds.Subjects {
		invSum += 1 / float64(subj.Count)
	}
	meanInv := invSum / float64(ds.N())

	total := varMeans + (1-meanInv)*(withinX+withinY)
	return math.Sqrt(total), nil
}

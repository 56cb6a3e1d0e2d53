package analysis

import (
	"goagree/domain/agreement"
	"goagree/domain/core"
)

// Analyzer orchestrates the engine components for one analysis call and
// assembles the result. It is purely functional over its inputs: no shared
// mutable state, no I/O, and nothing retained after the call returns.
type Analyzer struct {
	meanStat   *MeanStatComputer
	regression *RegressionComputer
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		meanStat:   NewMeanStatComputer(),
		regression: NewRegressionComputer(),
	}
}

// Analyze normalizes the paired input, runs the requested combining
// statistics and assembles the result. The difference statistic is always
// computed. Any validation or computation failure aborts the whole call; no
// partial result is ever returned.
func (a *Analyzer) Analyze(x, y agreement.Subjects, req agreement.Request) (*agreement.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ds, err := Normalize(x, y, req.Transform)
	if err != nil {
		return nil, err
	}

	combiners := []agreement.Combiner{agreement.DifferenceCombiner()}
	if req.Ratio {
		combiners = append(combiners, agreement.RatioCombiner())
	}
	if req.SD {
		combiners = append(combiners, agreement.SDCombiner())
	}

	// The branches are independent: each reads the shared normalized data
	// and writes only its own slot, so the fan-out cannot change the result.
	type branchOutput struct {
		idx int
		ms  *agreement.MeanStat
		err error
	}
	outputs := make(chan branchOutput, len(combiners))
	for i, comb := range combiners {
		go func(idx int, comb agreement.Combiner) {
			ms, inputs, err := a.meanStat.Compute(ds, comb, req.Alpha)
			if err == nil && req.Regression.Enabled {
				ms.Regression, err = a.regression.Compute(inputs, req.Alpha, req.Regression.ConstantResidualVariance)
			}
			outputs <- branchOutput{idx: idx, ms: ms, err: err}
		}(i, comb)
	}

	stats := make([]*agreement.MeanStat, len(combiners))
	for range combiners {
		out := <-outputs
		if out.err != nil {
			return nil, out.err
		}
		stats[out.idx] = out.ms
	}

	result := &agreement.Result{
		ID:         core.NewID(),
		ComputedAt: core.Now(),
		Mode:       ds.Mode,
		Subjects:   ds.N(),
		Alpha:      req.Alpha,
		Difference: stats[0],
	}
	next := 1
	if req.Ratio {
		result.Ratio = stats[next]
		next++
	}
	if req.SD {
		result.SD = stats[next]
	}

	if req.Correlation {
		xs, ys := flattenPairs(ds)
		corr, err := PearsonCorrelation(xs, ys)
		if err != nil {
			return nil, err
		}
		result.Correlation = corr
	}

	return result, nil
}

// flattenPairs lines up every replicate pair of the normalized dataset for
// the raw-series correlation.
func flattenPairs(ds *Dataset) ([]float64, []float64) {
	var xs, ys []float64
	for _, subj := range ds.Subjects {
		xs = append(xs, subj.X...)
		ys = append(ys, subj.Y...)
	}
	return xs, ys
}

package agreement

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Combiner is the value object that turns a subject's paired replicate
// vectors into a per-subject scalar and its magnitude axis. The mean-statistic
// engine is written once against this interface; difference, ratio and the
// standard-deviation variant are just different combiners.
type Combiner struct {
	name string

	// combine maps a subject's per-series means to the combining statistic.
	combine func(mx, my float64) float64

	// center maps a subject's per-series means to the magnitude axis value.
	center func(mx, my float64) float64

	// inverse back-transforms an engine output to the original scale. It is
	// the identity everywhere except where a caller-side transform (e.g. log)
	// makes exponentiation meaningful; kept on the combiner so callers can
	// round-trip without string dispatch.
	inverse func(v float64) float64
}

// Name returns the combiner name ("difference", "ratio" or "sd").
func (c Combiner) Name() string { return c.name }

// Combine evaluates the combining statistic for one subject given the
// per-series subject means.
func (c Combiner) Combine(mx, my float64) float64 { return c.combine(mx, my) }

// Center evaluates the magnitude axis for one subject.
func (c Combiner) Center(mx, my float64) float64 { return c.center(mx, my) }

// Inverse back-transforms an engine output to the original scale.
func (c Combiner) Inverse(v float64) float64 { return c.inverse(v) }

func identity(v float64) float64 { return v }

// DifferenceCombiner measures x-y against the arithmetic mean (x+y)/2.
func DifferenceCombiner() Combiner {
	return Combiner{
		name:    "difference",
		combine: func(mx, my float64) float64 { return mx - my },
		center:  func(mx, my float64) float64 { return (mx + my) / 2 },
		inverse: identity,
	}
}

// RatioCombiner measures x/y against the geometric mean sqrt(x*y).
func RatioCombiner() Combiner {
	return Combiner{
		name:    "ratio",
		combine: func(mx, my float64) float64 { return mx / my },
		center:  func(mx, my float64) float64 { return math.Sqrt(mx * my) },
		inverse: identity,
	}
}

// ExpCombiner wraps a combiner so Inverse exponentiates, for analyses run on
// log-transformed data.
func ExpCombiner(c Combiner) Combiner {
	c.inverse = math.Exp
	return c
}

// SDCombine computes the per-subject standard-deviation statistic: the sample
// standard deviation of the subject's pooled X and Y replicates. Unlike the
// difference and ratio it needs the full replicate vectors, so the engine
// calls it directly when the combiner is the SD variant.
func SDCombine(x, y []float64) float64 {
	pooled := make([]float64, 0, len(x)+len(y))
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	sd, err := stats.StandardDeviationSample(pooled)
	if err != nil {
		return 0
	}
	return sd
}

// SDCombiner measures the pooled per-subject standard deviation against the
// arithmetic mean. Its combine func covers the simple one-observation case;
// the engine substitutes SDCombine when replicates are present.
func SDCombiner() Combiner {
	return Combiner{
		name: "sd",
		combine: func(mx, my float64) float64 {
			return SDCombine([]float64{mx}, []float64{my})
		},
		center:  func(mx, my float64) float64 { return (mx + my) / 2 },
		inverse: identity,
	}
}

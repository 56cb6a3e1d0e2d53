package analysis

import (
	"math"

	"goagree/domain/agreement"
	"goagree/domain/core"
)

// RegressionComputer fits the non-constant bias model: the combining
// statistic regressed on the subject mean, with limits-of-agreement bands
// under either a constant or a mean-dependent residual variance.
type RegressionComputer struct {
	dist *Distributions
}

// NewRegressionComputer creates a new regression extension
func NewRegressionComputer() *RegressionComputer {
	return &RegressionComputer{dist: NewDistributions()}
}

// Compute fits values on centers and builds the limits-of-agreement bands.
// The residual-variance policy is an explicit input, never inferred from the
// data.
func (c *RegressionComputer) Compute(in *meanStatInputs, alpha float64, constantResidualVariance bool) (*agreement.Regression, error) {
	n := len(in.Centers)
	if n < 3 {
		return nil, core.NewInsufficientDataError("regression requires at least 3 subjects")
	}

	bias, sse, err := fitLine(in.Centers, in.Values)
	if err != nil {
		return nil, err
	}

	mse := sse / float64(n-2)
	sResid := math.Sqrt(mse)

	z, err := c.dist.TwoSidedNormalQuantile(alpha)
	if err != nil {
		return nil, err
	}

	reg := &agreement.Regression{
		PolyMu:                   bias,
		MSEPolyMu:                mse,
		SPolyResidual:            sResid,
		ConstantResidualVariance: constantResidualVariance,
	}

	if constantResidualVariance {
		// Bands parallel to the bias line, offset by the residual spread.
		reg.PolyLLoa = agreement.Line{Slope: bias.Slope, Intercept: bias.Intercept - z*sResid}
		reg.PolyULoa = agreement.Line{Slope: bias.Slope, Intercept: bias.Intercept + z*sResid}
		return reg, nil
	}

	// Heteroscedastic policy: the absolute residuals are themselves regressed
	// on the subject means. For normal residuals E|e| = sigma*sqrt(2/pi), so
	// the fitted absolute-residual line scaled by sqrt(pi/2) estimates a
	// mean-dependent residual standard deviation.
	absResid := make([]float64, n)
	for i := range in.Centers {
		absResid[i] = math.Abs(in.Values[i] - bias.Value(in.Centers[i]))
	}
	spread, _, err := fitLine(in.Centers, absResid)
	if err != nil {
		return nil, err
	}

	k := z * math.Sqrt(math.Pi/2)
	reg.PolyLLoa = agreement.Line{
		Slope:     bias.Slope - k*spread.Slope,
		Intercept: bias.Intercept - k*spread.Intercept,
	}
	reg.PolyULoa = agreement.Line{
		Slope:     bias.Slope + k*spread.Slope,
		Intercept: bias.Intercept + k*spread.Intercept,
	}
	return reg, nil
}

// fitLine computes the least-squares line of y on x and the residual sum of
// squares. It fails when the regressor has zero variance.
func fitLine(x, y []float64) (agreement.Line, float64, error) {
	n := len(x)
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxy, sxx float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		sxy += dx * (y[i] - meanY)
		sxx += dx * dx
	}
	if sxx == 0 {
		return agreement.Line{}, 0, core.NewDegenerateFitError("zero-variance regressor")
	}

	line := agreement.Line{Slope: sxy / sxx}
	line.Intercept = meanY - line.Slope*meanX

	var sse float64
	for i := 0; i < n; i++ {
		r := y[i] - line.Value(x[i])
		sse += r * r
	}
	return line, sse, nil
}

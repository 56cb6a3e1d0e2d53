package analysis

import (
	"math"
	"reflect"
	"testing"

	"goagree/domain/agreement"
	"goagree/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference scenarios against the embedded datasets. The expected numbers
// follow the classic method-comparison examples: paired systolic blood
// pressure by an observer and a machine, multiplicative plasma volume
// disagreement, and a fat dataset whose bias grows with the measurement.

func TestGoldStandard_BloodPressureAgreement(t *testing.T) {
	x, y := testkit.BloodPressure()

	res, err := NewAnalyzer().Analyze(x, y, agreement.DefaultRequest())
	require.NoError(t, err)

	assert.Equal(t, agreement.ModeSimple, res.Mode)
	assert.Equal(t, 85, res.Subjects)

	d := res.Difference
	assert.InDelta(t, -16.29, d.Mu, 0.1)
	assert.InDelta(t, 19.61, d.S, 0.1)
	assert.InDelta(t, -54.7, d.Loa.Lower, 0.1)
	assert.InDelta(t, 22.1, d.Loa.Upper, 0.1)

	// t(84) based intervals around bias and limits.
	assert.InDelta(t, -20.52, d.MuCI.Lower, 0.05)
	assert.InDelta(t, -12.06, d.MuCI.Upper, 0.05)
	assert.InDelta(t, -61.97, d.LoaCI.Lower.Lower, 0.05)
	assert.InDelta(t, -47.46, d.LoaCI.Lower.Upper, 0.05)
	assert.InDelta(t, 14.88, d.LoaCI.Upper.Lower, 0.05)
	assert.InDelta(t, 29.40, d.LoaCI.Upper.Upper, 0.05)

	// The bias does not track magnitude here.
	assert.Less(t, math.Abs(d.RSMu), 0.3)
	assert.Greater(t, d.PRSMu, 0.05)
}

func TestGoldStandard_BloodPressureOutlierExclusion(t *testing.T) {
	x, y := testkit.BloodPressureExcluded()

	res, err := NewAnalyzer().Analyze(x, y, agreement.DefaultRequest())
	require.NoError(t, err)
	require.Equal(t, 83, res.Subjects)

	d := res.Difference
	assert.InDelta(t, -14.9, d.Mu, 0.1)
	assert.InDelta(t, -43.6, d.Loa.Lower, 0.1)
	// The upper limit follows from loa = mu +/- z*s.
	assert.InDelta(t, 13.8, d.Loa.Upper, 0.1)
	assert.InDelta(t, 2*d.Mu-d.Loa.Lower, d.Loa.Upper, 1e-9)
}

func TestGoldStandard_BloodPressureCorrelation(t *testing.T) {
	x, y := testkit.BloodPressure()

	req := agreement.DefaultRequest()
	req.Correlation = true
	res, err := NewAnalyzer().Analyze(x, y, req)
	require.NoError(t, err)
	require.NotNil(t, res.Correlation)

	assert.InDelta(t, 0.761, res.Correlation.Rho, 0.005)
	assert.Less(t, res.Correlation.P, 1e-9)
	assert.InDelta(t, 0.665, res.Correlation.Poly.Slope, 0.005)
	assert.InDelta(t, 61.44, res.Correlation.Poly.Intercept, 0.05)
}

func TestGoldStandard_PlasmaVolumeLogTransform(t *testing.T) {
	x, y := testkit.PlasmaVolume()

	req := agreement.DefaultRequest()
	req.Transform = math.Log
	res, err := NewAnalyzer().Analyze(x, y, req)
	require.NoError(t, err)

	d := res.Difference
	assert.InDelta(t, 0.099, d.Mu, 0.001)
	assert.InDelta(t, 0.056, d.Loa.Lower, 0.001)
	assert.InDelta(t, 0.141, d.Loa.Upper, 0.001)

	// Back-transforming reproduces the multiplicative disagreement.
	inv := agreement.ExpCombiner(agreement.DifferenceCombiner())
	assert.InDelta(t, 1.11, inv.Inverse(d.Mu), 0.01)
	assert.InDelta(t, 1.06, inv.Inverse(d.Loa.Lower), 0.01)
	assert.InDelta(t, 1.15, inv.Inverse(d.Loa.Upper), 0.01)
}

func TestGoldStandard_PlasmaVolumeRatioMode(t *testing.T) {
	x, y := testkit.PlasmaVolume()

	req := agreement.DefaultRequest()
	req.Ratio = true
	res, err := NewAnalyzer().Analyze(x, y, req)
	require.NoError(t, err)
	require.NotNil(t, res.Ratio)

	r := res.Ratio
	assert.Equal(t, "ratio", r.Statistic)
	assert.InDelta(t, 1.104, r.Mu, 0.001)
	assert.InDelta(t, 1.057, r.Loa.Lower, 0.001)
	assert.InDelta(t, 1.150, r.Loa.Upper, 0.001)
}

func TestGoldStandard_FatRegressionConstantResidualVariance(t *testing.T) {
	x, y := testkit.Fat()

	req := agreement.DefaultRequest()
	req.Regression = agreement.RegressionRequest{Enabled: true, ConstantResidualVariance: true}
	res, err := NewAnalyzer().Analyze(x, y, req)
	require.NoError(t, err)

	d := res.Difference
	require.NotNil(t, d.Regression)
	reg := d.Regression

	assert.InDelta(t, 0.0803, reg.SPolyResidual, 0.001)
	assert.InDelta(t, 0.070, reg.PolyMu.Slope, 0.005)
	assert.InDelta(t, -0.020, reg.PolyMu.Intercept, 0.005)
	assert.InDelta(t, 0.00645, reg.MSEPolyMu, 0.0002)

	// Proportional bias shows up in the magnitude diagnostic too.
	assert.Greater(t, d.RSMu, 0.4)

	// Constant-variance bands are parallel to the bias line.
	assert.Equal(t, reg.PolyMu.Slope, reg.PolyLLoa.Slope)
	assert.Equal(t, reg.PolyMu.Slope, reg.PolyULoa.Slope)
}

func TestGoldStandard_Idempotence(t *testing.T) {
	x, y := testkit.BloodPressure()

	req := agreement.DefaultRequest()
	req.Ratio = true
	req.SD = true
	req.Correlation = true
	req.Regression = agreement.RegressionRequest{Enabled: true, ConstantResidualVariance: true}

	first, err := NewAnalyzer().Analyze(x, y, req)
	require.NoError(t, err)
	second, err := NewAnalyzer().Analyze(x, y, req)
	require.NoError(t, err)

	// Identical input and options give bit-identical statistics; only the
	// run identity (ID, timestamp) differs between calls.
	assert.True(t, reflect.DeepEqual(first.Difference, second.Difference))
	assert.True(t, reflect.DeepEqual(first.Ratio, second.Ratio))
	assert.True(t, reflect.DeepEqual(first.SD, second.SD))
	assert.True(t, reflect.DeepEqual(first.Correlation, second.Correlation))
	assert.NotEqual(t, first.ID, second.ID)
}

package analysis

import (
	"testing"

	"goagree/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPearsonCorrelation_PerfectLinear(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11} // 1 + 2x

	corr, err := PearsonCorrelation(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, corr.Rho, 1e-12)
	assert.InDelta(t, 0.0, corr.P, 1e-12)
	assert.InDelta(t, 2.0, corr.Poly.Slope, 1e-12)
	assert.InDelta(t, 1.0, corr.Poly.Intercept, 1e-12)
	assert.InDelta(t, 0.0, corr.MSE, 1e-12)
}

func TestPearsonCorrelation_SignAndSignificance(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{8.2, 7.1, 6.3, 5.2, 3.9, 3.1, 2.2, 0.8}

	corr, err := PearsonCorrelation(x, y)
	require.NoError(t, err)

	assert.Less(t, corr.Rho, -0.99)
	assert.Less(t, corr.P, 0.001)
	assert.Less(t, corr.Poly.Slope, 0.0)
}

func TestPearsonCorrelation_DegenerateSeries(t *testing.T) {
	_, err := PearsonCorrelation([]float64{2, 2, 2, 2}, []float64{1, 2, 3, 4})
	require.Error(t, err)
	assert.True(t, core.IsDegenerateError(err))
}

func TestSpearmanCorrelation_MonotoneNonlinear(t *testing.T) {
	// y = x^3 is monotone but not linear: Spearman sees it perfectly.
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{1, 8, 27, 64, 125, 216}

	rho, p, err := SpearmanCorrelation(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rho, 1e-12)
	assert.InDelta(t, 0.0, p, 1e-12)
}

func TestSpearmanCorrelation_MidrankTies(t *testing.T) {
	// Tied values share the average of the ranks they occupy.
	ranks := midranks([]float64{10, 20, 20, 30})
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, ranks)

	ranks = midranks([]float64{5, 5, 5})
	assert.Equal(t, []float64{2, 2, 2}, ranks)

	// A tie-heavy but still monotone association keeps a positive rho.
	rho, _, err := SpearmanCorrelation(
		[]float64{1, 1, 2, 2, 3, 3},
		[]float64{4, 5, 5, 6, 7, 7},
	)
	require.NoError(t, err)
	assert.Greater(t, rho, 0.8)
}

func TestSpearmanCorrelation_DegenerateSeries(t *testing.T) {
	_, _, err := SpearmanCorrelation([]float64{1, 2, 3}, []float64{7, 7, 7})
	require.Error(t, err)
	assert.True(t, core.IsDegenerateError(err))
}

func TestCorrelation_ShapeAndSizeChecks(t *testing.T) {
	_, err := PearsonCorrelation([]float64{1, 2}, []float64{1, 2, 3})
	assert.True(t, core.IsShapeError(err))

	_, err = PearsonCorrelation([]float64{1, 2}, []float64{1, 2})
	assert.True(t, core.IsValidationError(err))

	_, _, err = SpearmanCorrelation([]float64{1, 2}, []float64{1, 2})
	assert.True(t, core.IsValidationError(err))
}

package analysis

import (
	"math"
	"sort"

	"goagree/domain/agreement"
	"goagree/domain/core"
)

// PearsonCorrelation computes the Pearson correlation coefficient between the
// two raw series, its exact two-tailed p-value, the least-squares line of y
// on x and the mean-squared error of that line.
func PearsonCorrelation(x, y []float64) (*agreement.Correlation, error) {
	if len(x) != len(y) {
		return nil, core.NewShapeError("correlation series lengths differ")
	}
	if len(x) < 3 {
		return nil, core.NewInsufficientDataError("correlation requires at least 3 observations")
	}

	line, sse, err := fitLine(x, y)
	if err != nil {
		return nil, err
	}

	r, err := pearsonR(x, y)
	if err != nil {
		return nil, err
	}

	dist := NewDistributions()
	return &agreement.Correlation{
		Rho:  r,
		P:    dist.CorrelationPValue(r, len(x)),
		Poly: line,
		MSE:  sse / float64(len(x)-2),
	}, nil
}

// SpearmanCorrelation computes the Spearman rank correlation between a and b
// with midrank tie averaging, and its exact two-tailed p-value.
func SpearmanCorrelation(a, b []float64) (float64, float64, error) {
	if len(a) != len(b) {
		return 0, 0, core.NewShapeError("correlation series lengths differ")
	}
	if len(a) < 3 {
		return 0, 0, core.NewInsufficientDataError("correlation requires at least 3 observations")
	}

	rho, err := pearsonR(midranks(a), midranks(b))
	if err != nil {
		return 0, 0, err
	}

	dist := NewDistributions()
	return rho, dist.CorrelationPValue(rho, len(a)), nil
}

// pearsonR computes the product-moment correlation via centered sums. It
// fails when either series has zero variance.
func pearsonR(x, y []float64) (float64, error) {
	n := len(x)
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, core.NewDegenerateCorrelationError("constant series")
	}

	// Square roots taken separately so very large sums do not overflow.
	r := sxy / (math.Sqrt(sxx) * math.Sqrt(syy))
	// Clamp against floating point drift just outside [-1, 1].
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, nil
}

// midranks converts values to ranks, averaging the ranks of tied values.
func midranks(data []float64) []float64 {
	n := len(data)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return data[idx[i]] < data[idx[j]] })

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && data[idx[j]] == data[idx[i]] {
			j++
		}
		avgRank := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			ranks[idx[k]] = avgRank
		}
		i = j
	}
	return ranks
}

package agreement

import (
	"goagree/domain/core"
)

// Subjects is an ordered sequence of per-subject replicate vectors for one
// measurement method. In the simplest case every subject contributes a single
// observation; with repeated measurements a subject contributes several.
type Subjects [][]float64

// Mode classifies the replicate structure of the input.
type Mode string

const (
	ModeSimple          Mode = "simple"           // one observation per subject
	ModeRepeatedEqual   Mode = "repeated_equal"   // k>1 replicates, same k for everyone
	ModeRepeatedUnequal Mode = "repeated_unequal" // replicate counts vary across subjects
)

// Interval is an ordered [lower, upper] pair.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies inside the interval (inclusive).
func (iv Interval) Contains(v float64) bool {
	return iv.Lower <= v && v <= iv.Upper
}

// Width returns Upper - Lower.
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Line is a first-degree polynomial: Value(m) = Intercept + Slope*m.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Value evaluates the line at m.
func (l Line) Value(m float64) float64 {
	return l.Intercept + l.Slope*m
}

// MeanStat holds the agreement statistics for one combining statistic
// (difference, ratio or per-subject standard deviation).
type MeanStat struct {
	Statistic string `json:"statistic"` // combiner name

	// Bias and its confidence interval
	Mu   float64  `json:"mu"`
	MuCI Interval `json:"mu_ci"`

	// Limits of agreement: Loa = Mu -/+ z*S. LoaCI gives each limit its own
	// confidence interval, so LoaCI.Lower brackets Loa.Lower and LoaCI.Upper
	// brackets Loa.Upper.
	Loa   Interval `json:"loa"`
	LoaCI struct {
		Lower Interval `json:"lower"`
		Upper Interval `json:"upper"`
	} `json:"loa_ci"`

	// S is the standard deviation of the combining statistic, corrected for
	// within-subject variance under repeated measurements.
	S float64 `json:"s"`

	// Within-subject variance of each raw series (zero in simple mode).
	WithinVarX float64 `json:"within_var_x"`
	WithinVarY float64 `json:"within_var_y"`

	// Spearman rank correlation between subject means and the combining
	// statistic. Values near +/-1 flag a magnitude-dependent bias, i.e. the
	// constant-bias assumption behind Mu and Loa is suspect and the
	// regression extension should be consulted instead.
	RSMu  float64 `json:"r_s_mu"`
	PRSMu float64 `json:"p_r_s_mu"`

	// Regression extension (present when requested).
	Regression *Regression `json:"regression,omitempty"`
}

// Regression holds the non-constant bias model: the combining statistic
// regressed on the subject mean.
type Regression struct {
	// PolyMu is the fitted bias line.
	PolyMu    Line    `json:"poly_mu"`
	MSEPolyMu float64 `json:"mse_poly_mu"`

	// SPolyResidual is the residual standard deviation of the bias fit.
	SPolyResidual float64 `json:"s_poly_residual"`

	// ConstantResidualVariance records which band policy produced the lines
	// below.
	ConstantResidualVariance bool `json:"constant_residual_variance"`

	// Limits-of-agreement bands as linear functions of the subject mean.
	// Under constant residual variance both share PolyMu's slope; under the
	// heteroscedastic policy each is its own line.
	PolyLLoa Line `json:"poly_l_loa"`
	PolyULoa Line `json:"poly_u_loa"`
}

// Correlation holds the raw-series correlation diagnostics.
type Correlation struct {
	Rho  float64 `json:"rho"`
	P    float64 `json:"p"`
	Poly Line    `json:"poly"` // least-squares line of Y on X
	MSE  float64 `json:"mse"`
}

// Result is the assembled output of one analysis call. It is immutable after
// assembly and exclusively owned by the caller; the engine retains no
// reference to it.
type Result struct {
	ID         core.ID        `json:"id"`
	ComputedAt core.Timestamp `json:"computed_at"`

	Mode     Mode    `json:"mode"`
	Subjects int     `json:"subjects"`
	Alpha    float64 `json:"alpha"`

	// Difference is always computed; the rest mirror the request flags.
	Difference  *MeanStat    `json:"difference"`
	Ratio       *MeanStat    `json:"ratio,omitempty"`
	SD          *MeanStat    `json:"sd,omitempty"`
	Correlation *Correlation `json:"correlation,omitempty"`
}

// RegressionRequest selects the regression extension and its residual
// variance policy. The policy is an explicit input, never inferred from data.
type RegressionRequest struct {
	Enabled                  bool `json:"enabled"`
	ConstantResidualVariance bool `json:"constant_residual_variance"`
}

// Request defines what should be computed for one analysis call. The
// difference statistic is always computed; the flags add to it. All
// configuration is passed explicitly; the engine holds no process-wide state.
type Request struct {
	Alpha float64 `json:"alpha"`

	Ratio       bool `json:"ratio"`
	SD          bool `json:"sd"`
	Correlation bool `json:"correlation"`

	Regression RegressionRequest `json:"regression"`

	// Transform, when set, is applied to every observation of both series
	// before analysis (e.g. math.Log). The engine is invariant to which
	// transform was applied.
	Transform func(float64) float64 `json:"-"`
}

// DefaultRequest returns the conventional difference-only analysis at
// alpha=0.05.
func DefaultRequest() Request {
	return Request{Alpha: 0.05}
}

// Validate checks the request parameters.
func (r Request) Validate() error {
	if !(r.Alpha > 0 && r.Alpha < 1) {
		return core.NewInvalidParameterError("alpha", "must lie in the open interval (0,1)")
	}
	return nil
}

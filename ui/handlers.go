package ui

import (
	"math"
	"net/http"

	"goagree/domain/agreement"
	"goagree/domain/core"

	"github.com/gin-gonic/gin"
)

// AnalyzeRequest is the JSON shape of an analysis call. Each subject is a
// vector of replicate values; a single observation is a one-element vector.
type AnalyzeRequest struct {
	X [][]float64 `json:"x" binding:"required"`
	Y [][]float64 `json:"y" binding:"required"`

	Alpha       float64 `json:"alpha"`
	Ratio       bool    `json:"ratio"`
	SD          bool    `json:"sd"`
	Correlation bool    `json:"correlation"`

	Regression struct {
		Enabled                  bool `json:"enabled"`
		ConstantResidualVariance bool `json:"constant_residual_variance"`
	} `json:"regression"`

	// LogTransform applies a natural log to both series before analysis.
	LogTransform bool `json:"log_transform"`
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var body AnalyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := agreement.Request{
		Alpha:       body.Alpha,
		Ratio:       body.Ratio,
		SD:          body.SD,
		Correlation: body.Correlation,
		Regression: agreement.RegressionRequest{
			Enabled:                  body.Regression.Enabled,
			ConstantResidualVariance: body.Regression.ConstantResidualVariance,
		},
	}
	if req.Alpha == 0 {
		req.Alpha = 0.05
	}
	if body.LogTransform {
		req.Transform = math.Log
	}

	result, err := s.analyzer.Analyze(body.X, body.Y, req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// statusForError maps the engine's error taxonomy onto HTTP statuses: every
// deterministic input failure is the client's problem.
func statusForError(err error) int {
	switch {
	case core.IsShapeError(err), core.IsValidationError(err), core.IsDegenerateError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"goagree/domain/agreement"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postAnalyze(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	NewServer().Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil)
	NewServer().Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyze_Success(t *testing.T) {
	w := postAnalyze(t, AnalyzeRequest{
		X:           [][]float64{{10.2}, {11.8}, {9.4}, {12.6}, {10.9}},
		Y:           [][]float64{{9.8}, {11.1}, {9.9}, {12.0}, {10.1}},
		Correlation: true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result agreement.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, agreement.ModeSimple, result.Mode)
	assert.Equal(t, 5, result.Subjects)
	assert.Equal(t, 0.05, result.Alpha) // default applied
	require.NotNil(t, result.Difference)
	assert.NotNil(t, result.Correlation)
	assert.Nil(t, result.Ratio)
	assert.True(t, result.Difference.Loa.Contains(result.Difference.Mu))
}

func TestAnalyze_ShapeErrorIsBadRequest(t *testing.T) {
	w := postAnalyze(t, AnalyzeRequest{
		X: [][]float64{{1}, {2}},
		Y: [][]float64{{1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "subject")
}

func TestAnalyze_InvalidAlphaIsBadRequest(t *testing.T) {
	w := postAnalyze(t, AnalyzeRequest{
		X:     [][]float64{{1}, {2}, {3}},
		Y:     [][]float64{{1.5}, {2.1}, {2.8}},
		Alpha: 1.5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "alpha")
}

func TestAnalyze_MissingBodyIsBadRequest(t *testing.T) {
	w := postAnalyze(t, gin.H{"x": [][]float64{{1}, {2}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

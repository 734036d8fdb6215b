package overfitting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskcheck/internal/config"
)

func newTestService() *Service {
	return NewService(config.DefaultRiskConfig(), nil, nil)
}

// Folds whose test sharpe values are mean +- spread/sqrt(2), giving an exact
// sample standard deviation of spread across the two folds.
func twoFolds(trainSharpe, testMean, testSpread float64) []FoldResult {
	delta := testSpread / 1.4142135623730951
	return []FoldResult{
		fold(trainSharpe, 0.2, testMean+delta, 0.15),
		fold(trainSharpe, 0.2, testMean-delta, 0.1),
	}
}

func TestEvaluateSingleFoldDegradation(t *testing.T) {
	svc := newTestService()

	// One fold: degradation computable, consistency not.
	report := svc.Evaluate(context.Background(), Input{
		BasePerformance: 1.0,
		Folds:           []FoldResult{fold(1.0, 0.2, 0.75, 0.15)},
	})

	require.NotNil(t, report.Metrics.WalkForwardDegradation)
	assert.InDelta(t, 0.25, *report.Metrics.WalkForwardDegradation, 1e-9)
	assert.Nil(t, report.Metrics.FoldConsistency)
	assert.Contains(t, report.MissingData, MetricFoldConsistency)
}

func TestEvaluateMediumRiskWithoutOptimization(t *testing.T) {
	svc := newTestService()

	// Degradation 0.25 (medium) and consistency std 0.35 (medium), no
	// optimization results supplied.
	report := svc.Evaluate(context.Background(), Input{
		BasePerformance: 1.3,
		Folds:           twoFolds(2.0, 1.5, 0.35),
	})

	require.NotNil(t, report.Metrics.WalkForwardDegradation)
	assert.InDelta(t, 0.25, *report.Metrics.WalkForwardDegradation, 1e-9)
	require.NotNil(t, report.Metrics.FoldConsistency)
	assert.InDelta(t, 0.35, *report.Metrics.FoldConsistency, 1e-9)

	assert.Equal(t, 2.0, report.RiskScore)
	assert.Equal(t, LevelMedium, report.RiskLevel)
	assert.Equal(t, []MetricID{MetricParameterSensitivity}, report.MissingData)

	found := false
	for _, rec := range report.Recommendations {
		if strings.Contains(strings.ToLower(rec), "optimization") {
			found = true
		}
	}
	assert.True(t, found, "expected a recommendation mentioning optimization")
}

func TestEvaluateAllMetricsHigh(t *testing.T) {
	svc := newTestService()

	// Optimum at x=1.0 with two +-5% neighbors whose performances have a
	// sample std of 0.35 against a base of 1.0.
	optimization := []OptimizationResult{
		{Parameters: map[string]float64{"x": 1.0}, Performance: 1.0},
		{Parameters: map[string]float64{"x": 1.05}, Performance: 0.9},
		{Parameters: map[string]float64{"x": 0.95}, Performance: 0.4050252531694167},
		{Parameters: map[string]float64{"x": 2.0}, Performance: 0.5},
	}

	report := svc.Evaluate(context.Background(), Input{
		BasePerformance: 1.0,
		Folds:           twoFolds(2.0, 1.0, 0.6),
		Optimization:    optimization,
	})

	require.NotNil(t, report.Metrics.ParameterSensitivity)
	assert.InDelta(t, 0.35, *report.Metrics.ParameterSensitivity, 1e-9)
	require.NotNil(t, report.Metrics.WalkForwardDegradation)
	assert.InDelta(t, 0.5, *report.Metrics.WalkForwardDegradation, 1e-9)
	require.NotNil(t, report.Metrics.FoldConsistency)
	assert.InDelta(t, 0.6, *report.Metrics.FoldConsistency, 1e-9)

	assert.Equal(t, 6.0, report.RiskScore)
	assert.Equal(t, LevelHigh, report.RiskLevel)
	assert.Empty(t, report.MissingData)

	// One warning per metric, in the fixed sensitivity -> degradation ->
	// consistency order.
	require.Len(t, report.Warnings, 3)
	assert.Contains(t, report.Warnings[0], "parameter sensitivity")
	assert.Contains(t, report.Warnings[1], "degradation")
	assert.Contains(t, report.Warnings[2], "fold performance")
}

func TestEvaluateNoOptionalInputs(t *testing.T) {
	svc := newTestService()

	report := svc.Evaluate(context.Background(), Input{BasePerformance: 1.3})

	assert.Equal(t, 0.0, report.RiskScore)
	assert.Equal(t, LevelLow, report.RiskLevel)
	assert.Nil(t, report.Metrics.ParameterSensitivity)
	assert.Nil(t, report.Metrics.WalkForwardDegradation)
	assert.Nil(t, report.Metrics.FoldConsistency)
	assert.Equal(t, []MetricID{MetricParameterSensitivity, MissingWalkForward}, report.MissingData)
	assert.Empty(t, report.Warnings)

	joined := strings.ToLower(strings.Join(report.Recommendations, "\n"))
	assert.Contains(t, joined, "optimization")
	assert.Contains(t, joined, "walk-forward validation")
}

func TestEvaluateIsDeterministic(t *testing.T) {
	svc := newTestService()
	in := Input{
		BasePerformance: 1.0,
		Folds:           twoFolds(1.5, 1.0, 0.4),
		Optimization: []OptimizationResult{
			{Parameters: map[string]float64{"x": 1.0}, Performance: 1.0},
			{Parameters: map[string]float64{"x": 1.05}, Performance: 0.8},
			{Parameters: map[string]float64{"x": 0.95}, Performance: 0.9},
		},
	}

	first := svc.Evaluate(context.Background(), in)
	second := svc.Evaluate(context.Background(), in)

	// Everything except the informational timestamp must be identical.
	first.CalculatedAt = time.Time{}
	second.CalculatedAt = time.Time{}
	require.Equal(t, first, second)
}

func TestEvaluateIfEnabled(t *testing.T) {
	svc := newTestService()

	assert.Nil(t, svc.EvaluateIfEnabled(context.Background(), Input{BasePerformance: 1.0}, false))
	assert.NotNil(t, svc.EvaluateIfEnabled(context.Background(), Input{BasePerformance: 1.0}, true))
}

func TestComputeIsolatesPanics(t *testing.T) {
	svc := newTestService()

	_, ok := svc.compute(MetricFoldConsistency, func() (float64, error) {
		panic("unexpected fault")
	})
	assert.False(t, ok)

	// The service as a whole still returns a usable report afterwards.
	report := svc.Evaluate(context.Background(), Input{BasePerformance: 1.0})
	require.NotNil(t, report)
	assert.Equal(t, LevelLow, report.RiskLevel)
}

func TestNewServiceFillsZeroConfig(t *testing.T) {
	svc := NewService(config.RiskConfig{}, nil, nil)

	report := svc.Evaluate(context.Background(), Input{
		BasePerformance: 1.0,
		Folds:           twoFolds(2.0, 1.0, 0.6),
	})
	assert.Equal(t, LevelHigh, report.RiskLevel)
	assert.Equal(t, 4.0, report.RiskScore)
}

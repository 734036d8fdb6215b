package overfitting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskcheck/internal/config"
)

func TestBuildMessagesStableOutput(t *testing.T) {
	agg := newAggregator(config.DefaultRiskConfig())
	metrics := &Metrics{
		ParameterSensitivity:   ptr(0.18),
		WalkForwardDegradation: ptr(0.45),
	}
	missing := []MetricID{MetricFoldConsistency}

	warnings, recommendations := buildMessages(agg, metrics, missing)

	// Snapshot of the exact output; byte-identical across runs.
	require.Equal(t, []string{
		"Moderate parameter sensitivity (0.18): nearby parameter sets show uneven performance",
		"Severe out-of-sample degradation (0.45): most of the training performance disappears out of sample",
	}, warnings)
	require.Equal(t, []string{
		"Simplify the strategy or reduce the number of tunable parameters",
		"Re-validate on a longer out-of-sample window before relying on backtest results",
		"Run walk-forward validation with at least two folds to enable consistency analysis",
	}, recommendations)

	again, recsAgain := buildMessages(agg, metrics, missing)
	assert.Equal(t, warnings, again)
	assert.Equal(t, recommendations, recsAgain)
}

func TestBuildMessagesEmptyWhenLowRisk(t *testing.T) {
	agg := newAggregator(config.DefaultRiskConfig())
	metrics := &Metrics{
		ParameterSensitivity:   ptr(0.05),
		WalkForwardDegradation: ptr(0.1),
		FoldConsistency:        ptr(0.2),
	}

	warnings, recommendations := buildMessages(agg, metrics, nil)
	assert.Empty(t, warnings)
	assert.Empty(t, recommendations)
}

func TestBuildMessagesMissingInputsOnly(t *testing.T) {
	agg := newAggregator(config.DefaultRiskConfig())

	warnings, recommendations := buildMessages(agg, &Metrics{}, []MetricID{
		MetricParameterSensitivity,
		MissingWalkForward,
	})
	assert.Empty(t, warnings)
	require.Equal(t, []string{
		"Run parameter optimization to enable sensitivity analysis",
		"Run walk-forward validation to enable degradation and consistency analysis",
	}, recommendations)
}

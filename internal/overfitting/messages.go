package overfitting

import (
	"fmt"
)

// warningTexts holds the medium and high warning templates per metric. Each
// template receives the metric's numeric value.
var warningTexts = map[MetricID][2]string{
	MetricParameterSensitivity: {
		"Moderate parameter sensitivity (%.2f): nearby parameter sets show uneven performance",
		"High parameter sensitivity (%.2f): performance depends heavily on exact parameter values",
	},
	MetricWalkForwardDegradation: {
		"Moderate out-of-sample degradation (%.2f): test performance trails training performance",
		"Severe out-of-sample degradation (%.2f): most of the training performance disappears out of sample",
	},
	MetricFoldConsistency: {
		"Uneven fold performance (std %.2f): results vary across walk-forward folds",
		"Unstable fold performance (std %.2f): results vary widely across walk-forward folds",
	},
}

// mitigationTexts holds the recommendation attached to any metric in the
// medium or high band.
var mitigationTexts = map[MetricID]string{
	MetricParameterSensitivity:   "Simplify the strategy or reduce the number of tunable parameters",
	MetricWalkForwardDegradation: "Re-validate on a longer out-of-sample window before relying on backtest results",
	MetricFoldConsistency:        "Add more walk-forward folds to confirm the strategy is stable over time",
}

// missingDataTexts holds the recommendation for each missing-data entry,
// suggesting which upstream input to supply.
var missingDataTexts = map[MetricID]string{
	MetricParameterSensitivity:   "Run parameter optimization to enable sensitivity analysis",
	MissingWalkForward:           "Run walk-forward validation to enable degradation and consistency analysis",
	MetricWalkForwardDegradation: "Provide folds with non-degenerate train metrics to enable degradation analysis",
	MetricFoldConsistency:        "Run walk-forward validation with at least two folds to enable consistency analysis",
}

// buildMessages derives warnings and recommendations from computed metrics
// and the missing-data set. Output ordering is fixed (sensitivity,
// degradation, consistency, then missing data) so identical inputs yield
// byte-identical messages.
func buildMessages(agg aggregator, m *Metrics, missing []MetricID) (warnings, recommendations []string) {
	for _, id := range metricOrder {
		v := m.value(id)
		if v == nil {
			continue
		}
		switch agg.bandFor(id, *v) {
		case bandMedium:
			warnings = append(warnings, fmt.Sprintf(warningTexts[id][0], *v))
			recommendations = append(recommendations, mitigationTexts[id])
		case bandHigh:
			warnings = append(warnings, fmt.Sprintf(warningTexts[id][1], *v))
			recommendations = append(recommendations, mitigationTexts[id])
		}
	}

	for _, id := range missing {
		if text, ok := missingDataTexts[id]; ok {
			recommendations = append(recommendations, text)
		}
	}

	return warnings, recommendations
}

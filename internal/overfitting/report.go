package overfitting

import (
	"time"
)

// Level classifies the overall overfitting risk of a strategy
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// MetricID identifies a risk metric, or a class of missing input data, in a
// report's missing-data set.
type MetricID string

const (
	MetricParameterSensitivity   MetricID = "parameter_sensitivity"
	MetricWalkForwardDegradation MetricID = "walk_forward_degradation"
	MetricFoldConsistency        MetricID = "fold_consistency"

	// MissingWalkForward stands in for both walk-forward metrics when no
	// fold results were supplied at all.
	MissingWalkForward MetricID = "walk_forward"
)

// metricOrder is the canonical metric ordering. Aggregation and message
// generation iterate in this order so identical inputs always produce
// identical reports.
var metricOrder = []MetricID{
	MetricParameterSensitivity,
	MetricWalkForwardDegradation,
	MetricFoldConsistency,
}

// Metrics holds one optional value per risk metric. A nil field means the
// metric was not computable from the supplied inputs, which is distinct
// from a value of zero. Present values are always finite and in [0, 1].
type Metrics struct {
	ParameterSensitivity   *float64 `json:"parameter_sensitivity,omitempty"`
	WalkForwardDegradation *float64 `json:"walk_forward_degradation,omitempty"`
	FoldConsistency        *float64 `json:"fold_consistency,omitempty"`
}

// value returns the metric value for id, or nil if absent or unknown.
func (m *Metrics) value(id MetricID) *float64 {
	switch id {
	case MetricParameterSensitivity:
		return m.ParameterSensitivity
	case MetricWalkForwardDegradation:
		return m.WalkForwardDegradation
	case MetricFoldConsistency:
		return m.FoldConsistency
	}
	return nil
}

// set stores a computed metric value.
func (m *Metrics) set(id MetricID, v float64) {
	switch id {
	case MetricParameterSensitivity:
		m.ParameterSensitivity = &v
	case MetricWalkForwardDegradation:
		m.WalkForwardDegradation = &v
	case MetricFoldConsistency:
		m.FoldConsistency = &v
	}
}

// Report represents the outcome of one overfitting risk assessment. A report
// is built fresh on every evaluation and must be treated as read-only by
// callers; the engine never retains or mutates a returned report.
type Report struct {
	RiskLevel       Level      `json:"risk_level"`
	RiskScore       float64    `json:"risk_score"`
	Metrics         Metrics    `json:"metrics"`
	MissingData     []MetricID `json:"missing_data"`
	Warnings        []string   `json:"warnings"`
	Recommendations []string   `json:"recommendations"`
	CalculatedAt    time.Time  `json:"calculated_at"`
}

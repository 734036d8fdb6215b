package overfitting

import (
	"context"
	"fmt"
	"time"

	"riskcheck/internal/config"
	"riskcheck/internal/logging"
	"riskcheck/internal/monitoring"
)

// Input carries everything the engine may use for one assessment.
// BasePerformance is the performance of the selected parameter set, on the
// same scale as the optimization results. Folds and Optimization are
// optional; a missing input class degrades the report instead of failing it.
// Inputs are read-only and must not be mutated during the call.
type Input struct {
	BasePerformance float64
	Folds           []FoldResult
	Optimization    []OptimizationResult
}

// Service computes overfitting risk reports. It holds no mutable state, so a
// single instance is safe for concurrent use; every call returns a freshly
// built report.
type Service struct {
	cfg       config.RiskConfig
	agg       aggregator
	logger    *logging.Logger
	collector *monitoring.Collector
}

// NewService creates a new risk service. Logger and collector may be nil.
func NewService(cfg config.RiskConfig, logger *logging.Logger, collector *monitoring.Collector) *Service {
	if cfg.ParamVariationPct <= 0 {
		cfg.ParamVariationPct = config.DefaultRiskConfig().ParamVariationPct
	}
	if cfg.ScoreCap <= 0 {
		cfg.ScoreCap = config.DefaultRiskConfig().ScoreCap
	}
	if cfg.HighScore <= cfg.MediumScore {
		defaults := config.DefaultRiskConfig()
		cfg.MediumScore = defaults.MediumScore
		cfg.HighScore = defaults.HighScore
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		cfg:       cfg,
		agg:       newAggregator(cfg),
		logger:    logger,
		collector: collector,
	}
}

// EvaluateIfEnabled computes a risk report, or returns nil when risk
// assessment is disabled.
func (s *Service) EvaluateIfEnabled(ctx context.Context, in Input, enabled bool) *Report {
	if !enabled {
		return nil
	}
	return s.Evaluate(ctx, in)
}

// Evaluate computes an overfitting risk report. It never fails: metrics that
// cannot be computed are recorded in the report's missing-data set and the
// remaining metrics still contribute. With no optional inputs at all the
// report comes back with all metrics absent, a zero score, and
// recommendations naming the inputs to supply.
func (s *Service) Evaluate(ctx context.Context, in Input) *Report {
	var (
		metrics Metrics
		missing []MetricID
	)

	if len(in.Optimization) == 0 {
		missing = append(missing, MetricParameterSensitivity)
	} else if v, ok := s.compute(MetricParameterSensitivity, func() (float64, error) {
		return parameterSensitivity(in.Optimization, in.BasePerformance, s.cfg.ParamVariationPct)
	}); ok {
		metrics.set(MetricParameterSensitivity, v)
	} else {
		missing = append(missing, MetricParameterSensitivity)
	}

	if len(in.Folds) == 0 {
		missing = append(missing, MissingWalkForward)
	} else {
		if v, ok := s.compute(MetricWalkForwardDegradation, func() (float64, error) {
			return walkForwardDegradation(in.Folds)
		}); ok {
			metrics.set(MetricWalkForwardDegradation, v)
		} else {
			missing = append(missing, MetricWalkForwardDegradation)
		}

		if v, ok := s.compute(MetricFoldConsistency, func() (float64, error) {
			return foldConsistency(in.Folds)
		}); ok {
			metrics.set(MetricFoldConsistency, v)
		} else {
			missing = append(missing, MetricFoldConsistency)
		}
	}

	score, level := s.agg.aggregate(&metrics)
	warnings, recommendations := buildMessages(s.agg, &metrics, missing)

	// Empty slices, not nils, so serialized reports always carry the lists.
	if missing == nil {
		missing = []MetricID{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	if recommendations == nil {
		recommendations = []string{}
	}

	report := &Report{
		RiskLevel:       level,
		RiskScore:       score,
		Metrics:         metrics,
		MissingData:     missing,
		Warnings:        warnings,
		Recommendations: recommendations,
		CalculatedAt:    time.Now().UTC(),
	}

	if s.collector != nil {
		s.collector.ReportComputed(string(level), score)
	}
	s.logger.WithFields(map[string]interface{}{
		"risk_score":   score,
		"risk_level":   level,
		"missing_data": len(missing),
	}).Debug("overfitting risk report computed")

	return report
}

// compute runs one metric calculator behind a recover boundary so a fault in
// a single metric can never abort the whole report. A not-computable result
// or an unexpected fault both resolve to "metric absent".
func (s *Service) compute(id MetricID, fn func() (float64, error)) (value float64, ok bool) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("metric computation panicked: %v", r)
			s.logger.WithField("metric", string(id)).Errorf("metric computation panicked: %v", r)
			value, ok = 0, false
		}
		if err != nil && s.collector != nil {
			s.collector.MetricFailure(string(id))
		}
	}()

	value, err = fn()
	if err != nil {
		s.logger.WithField("metric", string(id)).WithError(err).Debug("metric not computable")
		return 0, false
	}
	return value, true
}

package overfitting

import (
	"errors"
	"fmt"
	"math"
)

// Metric keys expected in fold metric maps
const (
	KeySharpeRatio = "sharpe_ratio"
	KeyTotalReturn = "total_return"
)

// ErrNotComputable marks a metric that could not be derived from the
// supplied inputs. It is a condition, not a failure: the service records the
// metric in the report's missing-data set and continues with the rest.
var ErrNotComputable = errors.New("metric not computable")

func notComputable(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrNotComputable)
}

// OptimizationResult represents one evaluated parameter combination from
// the external grid-search service. Performance uses the same metric as the
// strategy's base performance.
type OptimizationResult struct {
	Parameters  map[string]float64 `json:"parameters"`
	Performance float64            `json:"performance"`
}

// FoldResult represents one train/test split outcome from the external
// walk-forward coordinator. Metric maps contain at least the sharpe_ratio
// and total_return keys.
type FoldResult struct {
	TrainMetrics map[string]float64 `json:"train_metrics"`
	TestMetrics  map[string]float64 `json:"test_metrics"`
}

// neighborTolerance widens the target variation so grid points that land
// near, but not exactly on, the requested perturbation still count.
const neighborTolerance = 1.5

// parameterSensitivity measures how much performance varies across parameter
// sets that sit within variationPct of the optimal set. The result is the
// sample standard deviation of neighbor performances relative to
// basePerformance, clamped to [0, 1].
func parameterSensitivity(results []OptimizationResult, basePerformance, variationPct float64) (float64, error) {
	if len(results) < 2 {
		return 0, notComputable("fewer than two optimization results")
	}
	if basePerformance == 0 {
		return 0, notComputable("base performance is zero")
	}

	optimum := results[0]
	for _, r := range results[1:] {
		if r.Performance > optimum.Performance {
			optimum = r
		}
	}

	var neighborPerf []float64
	for _, r := range results {
		if isNeighbor(optimum.Parameters, r.Parameters, variationPct*neighborTolerance) {
			neighborPerf = append(neighborPerf, r.Performance)
		}
	}
	if len(neighborPerf) < 2 {
		return 0, notComputable("fewer than two neighboring parameter sets")
	}

	sensitivity := sampleStd(neighborPerf) / math.Abs(basePerformance)
	if math.IsNaN(sensitivity) || math.IsInf(sensitivity, 0) {
		return 0, notComputable("non-finite sensitivity")
	}
	return clamp01(sensitivity), nil
}

// isNeighbor reports whether candidate differs from the optimum in at least
// one parameter, with every differing parameter within maxChange relative
// change. Parameters whose optimal value is zero compare by absolute change.
func isNeighbor(optimum, candidate map[string]float64, maxChange float64) bool {
	if len(candidate) != len(optimum) {
		return false
	}

	changed := false
	for name, ov := range optimum {
		cv, ok := candidate[name]
		if !ok {
			return false
		}

		var change float64
		if ov != 0 {
			change = math.Abs(cv-ov) / math.Abs(ov)
		} else {
			change = math.Abs(cv - ov)
		}
		if change == 0 {
			continue
		}
		if change > maxChange {
			return false
		}
		changed = true
	}
	return changed
}

// walkForwardDegradation measures the relative performance drop from
// training to testing, aggregated across folds. Sharpe ratio is the primary
// signal; when the mean train Sharpe is zero the same ratio is computed from
// total return instead. Negative degradation (test outperforms train) clamps
// to zero, and results clamp to [0, 1].
func walkForwardDegradation(folds []FoldResult) (float64, error) {
	var (
		trainSharpe, testSharpe float64
		trainReturn, testReturn float64
		counted                 int
	)
	for _, fold := range folds {
		if fold.TrainMetrics == nil || fold.TestMetrics == nil {
			continue
		}
		trainSharpe += fold.TrainMetrics[KeySharpeRatio]
		testSharpe += fold.TestMetrics[KeySharpeRatio]
		trainReturn += fold.TrainMetrics[KeyTotalReturn]
		testReturn += fold.TestMetrics[KeyTotalReturn]
		counted++
	}
	if counted == 0 {
		return 0, notComputable("no folds with both train and test metrics")
	}

	n := float64(counted)
	trainSharpe /= n
	testSharpe /= n
	trainReturn /= n
	testReturn /= n

	var degradation float64
	if trainSharpe != 0 {
		degradation = (trainSharpe - testSharpe) / math.Abs(trainSharpe)
	} else if trainReturn != 0 {
		degradation = (trainReturn - testReturn) / math.Abs(trainReturn)
	} else {
		return 0, notComputable("train sharpe and total return are both zero")
	}

	if math.IsNaN(degradation) || math.IsInf(degradation, 0) {
		return 0, notComputable("non-finite degradation")
	}
	if degradation < 0 {
		degradation = 0
	}
	return clamp01(degradation), nil
}

// foldConsistency measures the dispersion of test-period Sharpe ratios
// across walk-forward folds: the sample standard deviation clamped to
// [0, 1]. At least two folds are required, since no variance is definable
// from a single sample.
func foldConsistency(folds []FoldResult) (float64, error) {
	var sharpes []float64
	for _, fold := range folds {
		if fold.TestMetrics == nil {
			continue
		}
		if v, ok := fold.TestMetrics[KeySharpeRatio]; ok {
			sharpes = append(sharpes, v)
		}
	}
	if len(sharpes) < 2 {
		return 0, notComputable("fewer than two folds")
	}

	std := sampleStd(sharpes)
	if math.IsNaN(std) || math.IsInf(std, 0) {
		return 0, notComputable("non-finite consistency")
	}
	return clamp01(std), nil
}

// sampleStd calculates the sample standard deviation (n-1 denominator)
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)

	return math.Sqrt(variance)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package overfitting

import (
	"riskcheck/internal/config"
)

// band classifies one metric value against its thresholds
type band int

const (
	bandLow band = iota
	bandMedium
	bandHigh
)

// points returns the score contribution of a band: low 0, medium 1, high 2.
func (b band) points() float64 {
	switch b {
	case bandHigh:
		return 2
	case bandMedium:
		return 1
	}
	return 0
}

// classify maps a metric value into a band using half-open intervals:
// low < Medium, medium [Medium, High), high >= High.
func classify(value float64, thresholds config.Band) band {
	switch {
	case value >= thresholds.High:
		return bandHigh
	case value >= thresholds.Medium:
		return bandMedium
	}
	return bandLow
}

// aggregator turns computed metrics into a risk score and level. The
// thresholds table is the only thing that knows about individual metrics, so
// a fourth metric extends the table without touching this logic.
type aggregator struct {
	thresholds  map[MetricID]config.Band
	scoreCap    float64
	mediumScore float64
	highScore   float64
}

func newAggregator(cfg config.RiskConfig) aggregator {
	defaults := config.DefaultRiskConfig().Thresholds
	thresholds := make(map[MetricID]config.Band, len(metricOrder))
	for _, id := range metricOrder {
		if b, ok := cfg.Thresholds[string(id)]; ok {
			thresholds[id] = b
		} else {
			thresholds[id] = defaults[string(id)]
		}
	}
	return aggregator{
		thresholds:  thresholds,
		scoreCap:    cfg.ScoreCap,
		mediumScore: cfg.MediumScore,
		highScore:   cfg.HighScore,
	}
}

// bandFor classifies one computed metric value.
func (a aggregator) bandFor(id MetricID, value float64) band {
	return classify(value, a.thresholds[id])
}

// aggregate sums the band contributions of every computable metric. Absent
// metrics contribute nothing; the score is not renormalized for them.
func (a aggregator) aggregate(m *Metrics) (float64, Level) {
	score := 0.0
	for _, id := range metricOrder {
		v := m.value(id)
		if v == nil {
			continue
		}
		score += a.bandFor(id, *v).points()
	}
	if score > a.scoreCap {
		score = a.scoreCap
	}
	return score, a.levelFor(score)
}

// levelFor maps a risk score to a categorical level. The bands are disjoint
// and cover the whole scale: high iff score >= highScore, medium iff
// mediumScore <= score < highScore, low otherwise.
func (a aggregator) levelFor(score float64) Level {
	switch {
	case score >= a.highScore:
		return LevelHigh
	case score >= a.mediumScore:
		return LevelMedium
	}
	return LevelLow
}

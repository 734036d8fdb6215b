package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds Prometheus metrics for the risk engine. The embedding
// application decides where the collector is registered; passing a nil
// registerer uses the default registry.
type Collector struct {
	reportsTotal   *prometheus.CounterVec
	metricFailures *prometheus.CounterVec
	riskScore      prometheus.Histogram
	batchJobsTotal prometheus.Counter
}

// NewCollector creates and registers the engine metrics
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "overfitting_reports_total",
				Help: "Total number of overfitting risk reports computed",
			},
			[]string{"risk_level"},
		),
		metricFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "overfitting_metric_failures_total",
				Help: "Total number of risk metrics that were not computable",
			},
			[]string{"metric"},
		),
		riskScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "overfitting_risk_score",
				Help:    "Distribution of computed risk scores",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),
		batchJobsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "overfitting_batch_jobs_total",
				Help: "Total number of risk assessments run through batch evaluation",
			},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, collector := range []prometheus.Collector{
		c.reportsTotal,
		c.metricFailures,
		c.riskScore,
		c.batchJobsTotal,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ReportComputed records one finished risk report
func (c *Collector) ReportComputed(riskLevel string, riskScore float64) {
	c.reportsTotal.WithLabelValues(riskLevel).Inc()
	c.riskScore.Observe(riskScore)
}

// MetricFailure records a metric that could not be computed
func (c *Collector) MetricFailure(metric string) {
	c.metricFailures.WithLabelValues(metric).Inc()
}

// BatchJob records one job processed by batch evaluation
func (c *Collector) BatchJob() {
	c.batchJobsTotal.Inc()
}

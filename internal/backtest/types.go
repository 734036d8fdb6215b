package backtest

import (
	"time"

	"riskcheck/internal/overfitting"
)

// Report represents the performance summary of a completed backtest run, as
// produced by the external backtest engine. The engine in this module only
// reads it; the orchestrator owns persistence and display.
type Report struct {
	StrategyID   string    `json:"strategy_id"`
	Symbol       string    `json:"symbol"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	TotalReturn  float64   `json:"total_return"`
	AnnualReturn float64   `json:"annual_return"`
	SharpeRatio  float64   `json:"sharpe_ratio"`
	MaxDrawdown  float64   `json:"max_drawdown"`
	WinRate      float64   `json:"win_rate"`
	TradeCount   int       `json:"trade_count"`

	// OverfittingRisk is attached by the orchestrator when risk assessment
	// is enabled, nil otherwise. Absent metrics inside the report serialize
	// as omitted fields, never as zeros.
	OverfittingRisk *overfitting.Report `json:"overfitting_risk,omitempty"`
}

// RiskInput assembles the risk engine input for this report. The report's
// Sharpe ratio serves as the base performance for sensitivity scoring, which
// matches the performance scale the optimizer reports.
func (r *Report) RiskInput(folds []overfitting.FoldResult, optimization []overfitting.OptimizationResult) overfitting.Input {
	return overfitting.Input{
		BasePerformance: r.SharpeRatio,
		Folds:           folds,
		Optimization:    optimization,
	}
}

// AttachRiskReport embeds a computed risk report. A nil report (assessment
// disabled) leaves the field empty.
func (r *Report) AttachRiskReport(risk *overfitting.Report) {
	r.OverfittingRisk = risk
}

// Package otel provides OpenTelemetry instruments for the review workflow.
package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "pricedesk"

// Metrics holds all pricedesk metric instruments.
type Metrics struct {
	CommitsCompleted  metric.Int64Counter
	CommitsDuplicate  metric.Int64Counter
	CommitsPartial    metric.Int64Counter
	ApprovalsRefused  metric.Int64Counter
	CandidatesMatched metric.Int64Counter
	CommitDuration    metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.CommitsCompleted, err = meter.Int64Counter("pricedesk.commits.completed",
		metric.WithDescription("Number of review commits completed"))
	if err != nil {
		return nil, err
	}

	m.CommitsDuplicate, err = meter.Int64Counter("pricedesk.commits.duplicate",
		metric.WithDescription("Number of commits that lost the resolution race"))
	if err != nil {
		return nil, err
	}

	m.CommitsPartial, err = meter.Int64Counter("pricedesk.commits.partial",
		metric.WithDescription("Number of commits left with a record but a pending entry"))
	if err != nil {
		return nil, err
	}

	m.ApprovalsRefused, err = meter.Int64Counter("pricedesk.approvals.refused",
		metric.WithDescription("Number of approvals refused due to malformed payloads"))
	if err != nil {
		return nil, err
	}

	m.CandidatesMatched, err = meter.Int64Counter("pricedesk.candidates.matched",
		metric.WithDescription("Number of supplier offers matched into the review queue"))
	if err != nil {
		return nil, err
	}

	m.CommitDuration, err = meter.Float64Histogram("pricedesk.commit.duration_seconds",
		metric.WithDescription("Commit duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

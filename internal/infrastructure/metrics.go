package infrastructure

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds the feature pipeline and HTTP instruments. A nil
// *PipelineMetrics records nothing.
type PipelineMetrics struct {
	fetches       metric.Int64Counter
	fetchFailures metric.Int64Counter
	fetchDuration metric.Float64Histogram
	droppedGames  metric.Int64Counter
	builds        metric.Int64Counter
	buildDuration metric.Float64Histogram
	cacheLookups  metric.Int64Counter
	tableRows     metric.Int64Gauge
	httpRequests  metric.Int64Counter
	httpDuration  metric.Float64Histogram
	httpActive    metric.Int64UpDownCounter
}

// NewPipelineMetrics creates the instruments on meter.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	m := &PipelineMetrics{}
	var err error

	if m.fetches, err = meter.Int64Counter("feature_store_fetches_total",
		metric.WithDescription("Raw season tables requested from the provider")); err != nil {
		return nil, err
	}
	if m.fetchFailures, err = meter.Int64Counter("feature_store_fetch_failures_total",
		metric.WithDescription("Provider fetches that returned an error")); err != nil {
		return nil, err
	}
	if m.fetchDuration, err = meter.Float64Histogram("feature_store_fetch_duration_seconds",
		metric.WithDescription("Provider fetch latency"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.droppedGames, err = meter.Int64Counter("pipeline_dropped_games_total",
		metric.WithDescription("Games dropped for missing pre-game ratings")); err != nil {
		return nil, err
	}
	if m.builds, err = meter.Int64Counter("pipeline_builds_total",
		metric.WithDescription("Feature store builds")); err != nil {
		return nil, err
	}
	if m.buildDuration, err = meter.Float64Histogram("pipeline_build_duration_seconds",
		metric.WithDescription("Feature store build latency, fetch included"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.cacheLookups, err = meter.Int64Counter("pipeline_cache_lookups_total",
		metric.WithDescription("Feature store cache lookups by result")); err != nil {
		return nil, err
	}
	if m.tableRows, err = meter.Int64Gauge("pipeline_table_rows",
		metric.WithDescription("Rows in the last built table")); err != nil {
		return nil, err
	}
	if m.httpRequests, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests")); err != nil {
		return nil, err
	}
	if m.httpDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.httpActive, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("Number of active HTTP requests")); err != nil {
		return nil, err
	}
	return m, nil
}

func status(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("status", "failure")
	}
	return attribute.String("status", "success")
}

// RecordFetch records one provider call.
func (m *PipelineMetrics) RecordFetch(ctx context.Context, kind string, season int, d time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Int("season", season),
	)
	m.fetches.Add(ctx, 1, attrs)
	m.fetchDuration.Record(ctx, d.Seconds(), attrs)
	if err != nil {
		m.fetchFailures.Add(ctx, 1, attrs)
	}
}

// RecordDropped counts incomplete games filtered before the transforms.
func (m *PipelineMetrics) RecordDropped(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.droppedGames.Add(ctx, int64(n))
}

// RecordBuild records one full feature store build.
func (m *PipelineMetrics) RecordBuild(ctx context.Context, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.builds.Add(ctx, 1, metric.WithAttributes(status(err)))
	m.buildDuration.Record(ctx, d.Seconds(), metric.WithAttributes(status(err)))
}

// RecordTableRows records the size of a built table.
func (m *PipelineMetrics) RecordTableRows(ctx context.Context, table string, rows int) {
	if m == nil {
		return
	}
	m.tableRows.Record(ctx, int64(rows), metric.WithAttributes(attribute.String("table", table)))
}

// RecordCacheLookup records a cache hit or miss.
func (m *PipelineMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// HTTPRequestStarted marks a request in flight.
func (m *PipelineMetrics) HTTPRequestStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.httpActive.Add(ctx, 1)
}

// HTTPRequestFinished records a completed request.
func (m *PipelineMetrics) HTTPRequestFinished(ctx context.Context, method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("code", strconv.Itoa(code)),
	)
	m.httpActive.Add(ctx, -1)
	m.httpRequests.Add(ctx, 1, attrs)
	m.httpDuration.Record(ctx, d.Seconds(), attrs)
}

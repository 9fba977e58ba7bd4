// Package observe provides application-wide observability primitives for
// vozform: OpenTelemetry metrics and the provider setup that ties them to a
// Prometheus scrape endpoint.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all vozform metrics.
const meterName = "github.com/oae-tools/vozform"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per dialogue stage ---

	// ListenDuration tracks how long one listen takes from prompt end to
	// final transcript.
	ListenDuration metric.Float64Histogram

	// SpeakDuration tracks prompt playback latency.
	SpeakDuration metric.Float64Histogram

	// TurnDuration tracks a full question turn: prompt, listen, parse,
	// confirmation.
	TurnDuration metric.Float64Histogram

	// --- Counters ---

	// Turns counts completed question turns. Use with attribute:
	//   attribute.String("outcome", ...) — accepted, rejected, repeat, undo, timeout
	Turns metric.Int64Counter

	// ParseFailures counts transcripts the parser rejected. Use with attribute:
	//   attribute.String("type", ...) — the question type
	ParseFailures metric.Int64Counter

	// RecordsExported counts finished records written out. Use with attribute:
	//   attribute.String("format", ...) — json, csv, store
	RecordsExported metric.Int64Counter

	// --- Gauges ---

	// ActiveSessions tracks the number of live interview sessions.
	ActiveSessions metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// spoken dialogue turns, which run much slower than service calls.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.ListenDuration, err = m.Float64Histogram("vozform.listen.duration",
		metric.WithDescription("Latency from prompt end to final transcript."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SpeakDuration, err = m.Float64Histogram("vozform.speak.duration",
		metric.WithDescription("Prompt playback latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TurnDuration, err = m.Float64Histogram("vozform.turn.duration",
		metric.WithDescription("Full question turn latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.Turns, err = m.Int64Counter("vozform.turns",
		metric.WithDescription("Total question turns by outcome."),
	); err != nil {
		return nil, err
	}
	if met.ParseFailures, err = m.Int64Counter("vozform.parse.failures",
		metric.WithDescription("Total rejected transcripts by question type."),
	); err != nil {
		return nil, err
	}
	if met.RecordsExported, err = m.Int64Counter("vozform.records.exported",
		metric.WithDescription("Total finished records written, by format."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveSessions, err = m.Int64UpDownCounter("vozform.active_sessions",
		metric.WithDescription("Number of live interview sessions."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordTurn records one completed question turn with its outcome.
func (m *Metrics) RecordTurn(ctx context.Context, outcome string) {
	m.Turns.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
}

// RecordParseFailure records a rejected transcript for a question type.
func (m *Metrics) RecordParseFailure(ctx context.Context, questionType string) {
	m.ParseFailures.Add(ctx, 1,
		metric.WithAttributes(attribute.String("type", questionType)),
	)
}

// RecordExport records one written record in the given format.
func (m *Metrics) RecordExport(ctx context.Context, format string) {
	m.RecordsExported.Add(ctx, 1,
		metric.WithAttributes(attribute.String("format", format)),
	)
}

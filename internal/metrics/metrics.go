// Package metrics exports request metrics in Prometheus format through the
// OpenTelemetry metric SDK.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

// Metrics holds the instruments recorded for every HTTP request. Exporter
// serves the scrape endpoint.
type Metrics struct {
	Exporter *prometheus.Exporter

	completed metric.Int64Counter
	latency   metric.Float64ValueRecorder
}

// New installs a Prometheus backed meter provider as the global provider.
func New(serviceName string) (*Metrics, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	meter := global.Meter(serviceName)
	m := &Metrics{Exporter: exporter}

	m.completed, err = meter.NewInt64Counter(
		"http/server/completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
	)
	if err != nil {
		return nil, err
	}

	m.latency, err = meter.NewFloat64ValueRecorder(
		"http/server/latency",
		metric.WithDescription("Request latency in milliseconds, by HTTP method and route"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Middleware records one measurement per request. Route labels use the
// chi route pattern so identifiers do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		labels := []attribute.KeyValue{
			attribute.String("method", r.Method),
			attribute.String("route", route),
		}
		m.latency.Record(r.Context(), float64(time.Since(start))/float64(time.Millisecond), labels...)
		m.completed.Add(r.Context(), 1, append(labels, attribute.String("status", strconv.Itoa(status)))...)
	})
}

package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
)

const (
	// ServiceName identifies this service in telemetry output
	ServiceName = "t20-batting-analytics"
	// ServiceVersion is the reported service version
	ServiceVersion = "1.0.0"
	// MeterName is the instrumentation scope for application metrics
	MeterName = "t20cli"
)

// Telemetry holds the OpenTelemetry providers and instruments used by
// the HTTP layer.
type Telemetry struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler

	RequestCount    metric.Int64Counter
	RequestDuration metric.Float64Histogram
	RowsFiltered    metric.Int64Histogram
}

// InitializeTelemetry sets up an OTel meter provider backed by a
// Prometheus exporter and registers the application instruments.
func InitializeTelemetry(logger *slog.Logger) (*Telemetry, error) {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	meter := provider.Meter(MeterName)

	t := &Telemetry{
		MeterProvider:  provider,
		Meter:          meter,
		PrometheusHTTP: promhttp.Handler(),
	}

	t.RequestCount, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total HTTP requests served"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	t.RequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request latency in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	t.RowsFiltered, err = meter.Int64Histogram("deliveries_filtered_rows",
		metric.WithDescription("Row counts returned by the filter engine"))
	if err != nil {
		return nil, fmt.Errorf("failed to create filter histogram: %w", err)
	}

	logger.InfoContext(ctx, "telemetry initialized",
		slog.String("service", ServiceName),
		slog.String("version", ServiceVersion))

	return t, nil
}

// Shutdown flushes and stops the meter provider
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.MeterProvider == nil {
		return nil
	}
	return t.MeterProvider.Shutdown(ctx)
}

package telemetry

import (
	"context"
	"fmt"

	"github.com/clustervault/s3dirsync/config"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Start initializes the telemetry system and, when the prometheus exporter is
// selected, serves the metrics endpoint until the context is canceled.
func Start(ctx context.Context) error {
	logger := log.With().Str("component", "telemetry").Logger()
	ctx = logger.WithContext(ctx)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithProcess(),
		resource.WithOS(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service", "s3dirsync"),
		),
	)
	if err != nil {
		return err
	}

	meterProvider, err := newMeterProvider(res)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Error creating meter provider")
		return err
	}
	defer func() {
		if err := meterProvider.Shutdown(ctx); err != nil {
			logger.Error().
				Err(err).
				Msg("Error shutting down meter provider")
		}
	}()
	otel.SetMeterProvider(meterProvider)

	serverErrChan := make(chan error, 1)

	if config.TelemetryMetricsExporter.String() == "prometheus" {
		go func() {
			serverErrChan <- startPrometheusServer(ctx)
		}()
	}

	for {
		select {
		case err := <-serverErrChan:
			if err != nil {
				logger.Error().
					Err(err).
					Msg("Error in telemetry server")
				return err
			}
		case <-ctx.Done():
			logger.Info().Msg("Stopping telemetry")
			return nil
		}
	}
}

// newMeterProvider creates a new meter provider based on the configured metrics exporter.
func newMeterProvider(res *resource.Resource) (*metric.MeterProvider, error) {
	switch config.TelemetryMetricsExporter.String() {
	case "prometheus":
		exporter, err := prometheus.New(prometheus.WithNamespace("s3dirsync"))
		if err != nil {
			return nil, err
		}
		return metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res)), nil
	case "stdout":
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, err
		}
		return metric.NewMeterProvider(
			metric.WithReader(
				metric.NewPeriodicReader(exporter,
					metric.WithInterval(config.TelemetryMetricsStdoutInterval.Duration()))),
			metric.WithResource(res)), nil
	default:
		return nil, fmt.Errorf("unknown metrics exporter: %s", config.TelemetryMetricsExporter.String())
	}
}

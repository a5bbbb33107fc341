package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("s3dirsync")

var SyncAttempts = must(meter.Int64Counter("sync_attempts",
	metric.WithDescription("Total number of rclone sync invocations"),
))

var SyncErrors = must(meter.Int64Counter("sync_errors",
	metric.WithDescription("Total number of failed rclone sync invocations"),
))

var DryRuns = must(meter.Int64Counter("dry_runs",
	metric.WithDescription("Total number of dry-run invocations"),
))

var PreflightFailures = must(meter.Int64Counter("preflight_failures",
	metric.WithDescription("Total number of failed credential checks"),
))

var RcloneInstalls = must(meter.Int64Counter("rclone_installs",
	metric.WithDescription("Total number of rclone auto-installations"),
))

var SyncDuration = must(meter.Float64Histogram("sync_duration_seconds",
	metric.WithDescription("Duration of rclone sync invocations"),
	metric.WithUnit("s"),
))

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

package s3dirsync

import (
	"context"
	"os"
	"time"

	"github.com/clustervault/s3dirsync/config"
	"github.com/clustervault/s3dirsync/internal/preflight"
	"github.com/clustervault/s3dirsync/internal/rclone"
	"github.com/clustervault/s3dirsync/internal/telemetry"
	"github.com/clustervault/s3dirsync/internal/wizard"
	"github.com/clustervault/s3dirsync/structs"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

// Run drives one interactive sync session: ensure rclone is available,
// collect and confirm a SyncRequest, verify credentials, then hand the
// transfer to rclone. The request and its credential file live no longer
// than this call.
func Run(ctx context.Context) error {
	if config.TelemetryEnabled.Bool() {
		go func() {
			if err := telemetry.Start(ctx); err != nil {
				log.Error().
					Err(err).
					Msg("Failed to start telemetry")
			}
		}()
	}

	wz := wizard.New(os.Stdin, os.Stdout)

	bin, err := rclone.Ensure(ctx)
	if err != nil {
		return err
	}

	if v, err := rclone.Version(ctx, bin); err == nil {
		log.Info().Str("version", v).Msg("Using rclone")
	} else {
		log.Warn().Err(err).Msg("Could not determine rclone version")
	}

	req, err := wz.Collect(ctx)
	if err != nil {
		return err
	}

	if config.PreflightEnabled.Bool() {
		for {
			cont, err := verifyCredentials(ctx, wz, req)
			if err != nil {
				return err
			}
			if cont {
				break
			}

			reenter, err := wz.Confirm(ctx, "\nWould you like to re-enter your AWS credentials? (yes/no): ")
			if err != nil {
				return err
			}
			if !reenter {
				wz.Say("Operation cancelled.")
				return nil
			}

			if err := wz.RecollectCredentials(ctx, req); err != nil {
				return err
			}
		}
	}

	ok, err := wz.ConfirmRequest(ctx, req)
	if err != nil {
		return err
	}
	if !ok {
		wz.Say("Operation cancelled.")
		return nil
	}

	if err := runSync(ctx, wz, bin, req); err != nil {
		wz.Say("")
		wz.Say("--- Troubleshooting ---")
		for i, hint := range troubleshooting(req) {
			wz.Say("%d. %s", i+1, hint)
		}
		return err
	}

	wz.Say("")
	wz.Say("Sync operation completed successfully!")

	return nil
}

// verifyCredentials runs the advisory bucket check and lets the user decide
// whether a failure should stop the session.
func verifyCredentials(ctx context.Context, wz *wizard.Wizard, req *structs.SyncRequest) (bool, error) {
	err := preflight.Check(ctx, req)
	if err == nil {
		wz.Say("AWS credentials verified successfully.")
		return true, nil
	}

	telemetry.PreflightFailures.Add(ctx, 1)
	log.Warn().Err(err).Msg("Credential check failed")

	wz.Say("")
	wz.Say("Credential check failed: %v", err)
	wz.Say("Possible issues:")
	for i, hint := range preflight.Hints() {
		wz.Say("%d. %s", i+1, hint)
	}

	return wz.Confirm(ctx, "\nWould you like to continue with the sync anyway? (yes/no): ")
}

// runSync writes the transient credential file, invokes rclone, and offers a
// real run after a successful dry run. The credential file is removed on
// every exit path.
func runSync(ctx context.Context, wz *wizard.Wizard, bin string, req *structs.SyncRequest) (err error) {
	confPath, cleanup, err := rclone.WriteCredentials(req)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, cleanup())
	}()

	if req.DryRun {
		wz.Say("")
		wz.Say("Performing a dry run first (no files will be modified)...")
	}

	if err := invoke(ctx, bin, confPath, req); err != nil {
		return err
	}

	if !req.DryRun {
		return nil
	}

	telemetry.DryRuns.Add(ctx, 1)

	proceed, err := wz.Confirm(ctx, "\nDo you want to proceed with the actual sync? (yes/no): ")
	if err != nil {
		return err
	}
	if !proceed {
		wz.Say("Sync operation cancelled.")
		return nil
	}

	real := *req
	real.DryRun = false

	wz.Say("")
	wz.Say("Performing actual sync...")

	return invoke(ctx, bin, confPath, &real)
}

func invoke(ctx context.Context, bin, confPath string, req *structs.SyncRequest) error {
	telemetry.SyncAttempts.Add(ctx, 1)

	start := time.Now()
	err := rclone.Run(ctx, bin, rclone.BuildArgs(confPath, req))
	telemetry.SyncDuration.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		telemetry.SyncErrors.Add(ctx, 1)
	}

	return err
}

func troubleshooting(req *structs.SyncRequest) []string {
	return []string{
		"Verify your AWS credentials are correct",
		"Check if the bucket name is correct and accessible to you",
		"Try using the AWS CLI directly: aws s3 ls s3://" + req.Bucket,
		"Check if your IAM user has sufficient permissions for S3 operations",
		"Check for any special characters in your credentials that might need escaping",
	}
}

package wizard

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/clustervault/s3dirsync/config"
	"github.com/clustervault/s3dirsync/structs"
)

const arnPrefix = "arn:aws:s3:::"

// askSourceDir prompts until the answer names an existing directory.
func (w *Wizard) askSourceDir(ctx context.Context) (string, error) {
	for {
		dir, err := w.ask(ctx, "Enter the source directory to sync: ")
		if err != nil {
			return "", err
		}

		dir = expandUser(dir)

		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}

		w.Say("Directory not found: %s", dir)
		w.Say("Please enter a valid directory path.")
	}
}

// askDestination collects the bucket, region, destination prefix and
// credentials. The whole block repeats when a required field is left blank.
func (w *Wizard) askDestination(ctx context.Context, req *structs.SyncRequest) error {
	for {
		w.Say("")
		w.Say("--- AWS S3 Configuration ---")

		bucket, err := w.askBucket(ctx)
		if err != nil {
			return err
		}

		region, err := w.ask(ctx, "Enter AWS region (default: "+config.SyncDefaultRegion.String()+"): ")
		if err != nil {
			return err
		}
		if region == "" {
			region = config.SyncDefaultRegion.String()
		}

		prefix, err := w.ask(ctx, "Enter destination path within bucket (optional, press Enter to use bucket root): ")
		if err != nil {
			return err
		}

		w.Say("")
		w.Say("--- AWS Credentials ---")
		w.Say("Note: Credentials are used only for this sync operation and won't be stored.")

		accessKey, err := w.ask(ctx, "Enter AWS Access Key ID: ")
		if err != nil {
			return err
		}

		w.Say("WARNING: The following input will display your secret key on screen for better paste compatibility")
		secretKey, err := w.ask(ctx, "Enter AWS Secret Access Key: ")
		if err != nil {
			return err
		}

		if bucket == "" || accessKey == "" || secretKey == "" {
			w.Say("Error: Bucket name, Access Key ID, and Secret Access Key are required!")
			continue
		}

		req.Bucket = bucket
		req.Region = region
		req.DestPrefix = strings.TrimLeft(prefix, "/")
		req.AccessKey = accessKey
		req.SecretKey = secretKey

		return nil
	}
}

// RecollectCredentials re-runs the destination and credential prompts on an
// already collected request, keeping the source directory and sync options.
func (w *Wizard) RecollectCredentials(ctx context.Context, req *structs.SyncRequest) error {
	return w.askDestination(ctx, req)
}

// askBucket prompts for the bucket name, recovering from users that paste the
// full bucket ARN.
func (w *Wizard) askBucket(ctx context.Context) (string, error) {
	bucket, err := w.ask(ctx, "Enter S3 bucket name (just the bucket name, not the ARN): ")
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(bucket, arnPrefix) {
		return bucket, nil
	}

	extracted := strings.TrimPrefix(bucket, arnPrefix)
	w.Say("It looks like you entered an ARN instead of just the bucket name.")

	useExtracted, err := w.Confirm(ctx, "Should I use '"+extracted+"' as the bucket name? (yes/no): ")
	if err != nil {
		return "", err
	}
	if useExtracted {
		return extracted, nil
	}

	return w.ask(ctx, "Please enter just the bucket name: ")
}

// expandUser resolves a leading ~ to the current user's home directory.
func expandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

package rclone

import (
	"github.com/clustervault/s3dirsync/structs"
)

// BuildArgs translates a SyncRequest into the rclone command line. Exclusion
// patterns keep their input order; rclone applies them first-match-wins.
func BuildArgs(configPath string, req *structs.SyncRequest) []string {
	args := []string{
		"--config", configPath,
		"sync",
		req.SourcePath,
		req.DestinationURI(),
		"--progress",
		"--verbose",
	}

	for _, pattern := range req.ExcludePatterns {
		args = append(args, "--exclude="+pattern)
	}

	if req.DeleteExtraneous {
		args = append(args, "--delete-after")
	}

	if req.DryRun {
		args = append(args, "--dry-run")
	}

	return args
}

// RedactArgs replaces the credential file path so the echoed command never
// points at live credentials.
func RedactArgs(args []string) []string {
	redacted := make([]string, len(args))
	copy(redacted, args)

	for i := 1; i < len(redacted); i++ {
		if redacted[i-1] == "--config" {
			redacted[i] = "[credential-file]"
		}
	}

	return redacted
}

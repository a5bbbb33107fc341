package rclone

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/clustervault/s3dirsync/config"
	"github.com/clustervault/s3dirsync/internal/telemetry"
	"github.com/rs/zerolog/log"
)

// Resolve locates the rclone binary. A configured path is used as-is; a bare
// name is resolved through PATH.
func Resolve() (string, error) {
	bin := config.RcloneBinary.String()

	if strings.ContainsRune(bin, os.PathSeparator) {
		if _, err := os.Stat(bin); err != nil {
			return "", fmt.Errorf("configured rclone binary %q: %w", bin, err)
		}
		return bin, nil
	}

	return exec.LookPath(bin)
}

// Version runs `rclone --version` and returns the first line of its output.
func Version(ctx context.Context, bin string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("rclone --version failed: %w", err)
	}

	line, _, _ := strings.Cut(string(out), "\n")

	return strings.TrimSpace(line), nil
}

// Ensure returns a runnable rclone path, installing the tool when it cannot
// be found and auto-installation is enabled.
func Ensure(ctx context.Context) (string, error) {
	if bin, err := Resolve(); err == nil {
		return bin, nil
	}

	if !config.RcloneAutoInstall.Bool() {
		return "", fmt.Errorf("rclone not found; install it from https://rclone.org/downloads/ or set rclone.binary to its location")
	}

	log.Info().Msg("rclone not found, attempting installation")

	bin, err := Install(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to install rclone (install it manually from https://rclone.org/downloads/): %w", err)
	}

	telemetry.RcloneInstalls.Add(ctx, 1)
	log.Info().Str("path", bin).Msg("rclone installed")

	return bin, nil
}

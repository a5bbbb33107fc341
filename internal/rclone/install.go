package rclone

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/clustervault/s3dirsync/config"
	"github.com/rs/zerolog/log"
)

// archiveURL maps GOOS/GOARCH onto the published rclone release archive name.
func archiveURL() (string, error) {
	osName := runtime.GOOS
	switch osName {
	case "linux", "windows":
	case "darwin":
		osName = "osx"
	default:
		return "", fmt.Errorf("no rclone build published for %s", runtime.GOOS)
	}

	switch runtime.GOARCH {
	case "amd64", "arm64", "386", "arm":
	default:
		return "", fmt.Errorf("no rclone build published for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	base := strings.TrimSuffix(config.RcloneDownloadBaseURL.String(), "/")

	return fmt.Sprintf("%s/rclone-current-%s-%s.zip", base, osName, runtime.GOARCH), nil
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "rclone.exe"
	}

	return "rclone"
}

// Install downloads the current rclone release for this platform and places
// the binary under the configured install directory (default
// $HOME/.s3dirsync/bin). It returns the path of the installed binary.
func Install(ctx context.Context) (string, error) {
	url, err := archiveURL()
	if err != nil {
		return "", err
	}

	tmpDir, err := os.MkdirTemp(os.TempDir(), "s3dirsync-install-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	archive := filepath.Join(tmpDir, "rclone.zip")

	log.Info().Str("url", url).Msg("Downloading rclone")

	if err := download(ctx, url, archive); err != nil {
		return "", fmt.Errorf("downloading %s: %w", url, err)
	}

	extracted, err := extractBinary(archive, tmpDir)
	if err != nil {
		return "", err
	}

	installDir := config.RcloneInstallDir.String()
	if installDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		installDir = filepath.Join(home, ".s3dirsync", "bin")
	}

	if err := os.MkdirAll(installDir, 0755); err != nil {
		return "", err
	}

	dest := filepath.Join(installDir, binaryName())

	if err := copyFile(extracted, dest, 0755); err != nil {
		return "", err
	}

	if _, err := Version(ctx, dest); err != nil {
		return "", fmt.Errorf("installed binary is not runnable: %w", err)
	}

	return dest, nil
}

// download fetches url into dest, retrying transient failures with
// exponential backoff.
func download(ctx context.Context, url, dest string) error {
	return backoff.RetryNotify(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %s", resp.Status)
		}

		f, err := os.Create(dest)
		if err != nil {
			return backoff.Permanent(err)
		}

		if _, err := io.Copy(f, resp.Body); err != nil {
			f.Close()
			return err
		}

		return f.Close()
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(2*time.Second),
	), 4), ctx), func(err error, dur time.Duration) {
		log.Warn().
			Err(err).
			Dur("backoff", dur).
			Msg("Failed to download rclone, retrying")
	})
}

// extractBinary pulls the rclone executable out of the release archive. The
// archive nests it inside a rclone-vX.Y.Z-os-arch directory.
func extractBinary(archive, destDir string) (string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || filepath.Base(f.Name) != binaryName() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		dest := filepath.Join(destDir, binaryName())

		out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			return "", err
		}

		if err := out.Close(); err != nil {
			return "", err
		}

		return dest, nil
	}

	return "", fmt.Errorf("archive does not contain %s", binaryName())
}

func copyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

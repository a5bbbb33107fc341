package rclone

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clustervault/s3dirsync/config"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	config.Reload()
	os.Exit(m.Run())
}

func TestArchiveURL(t *testing.T) {
	url, err := archiveURL()
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://downloads.rclone.org/rclone-current-"))
	assert.True(t, strings.HasSuffix(url, ".zip"))
}

func TestExtractBinary(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "rclone.zip")

	f, err := os.Create(archive)
	assert.NoError(t, err)

	zw := zip.NewWriter(f)

	// Release archives nest files inside a versioned directory.
	readme, err := zw.Create("rclone-v1.66.0-linux-amd64/README.txt")
	assert.NoError(t, err)
	_, err = readme.Write([]byte("docs"))
	assert.NoError(t, err)

	bin, err := zw.Create("rclone-v1.66.0-linux-amd64/" + binaryName())
	assert.NoError(t, err)
	_, err = bin.Write([]byte("#!/bin/sh\necho rclone v1.66.0\n"))
	assert.NoError(t, err)

	assert.NoError(t, zw.Close())
	assert.NoError(t, f.Close())

	extracted, err := extractBinary(archive, dir)
	assert.NoError(t, err)

	b, err := os.ReadFile(extracted)
	assert.NoError(t, err)
	assert.Contains(t, string(b), "rclone v1.66.0")
}

func TestExtractBinary_MissingFromArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "rclone.zip")

	f, err := os.Create(archive)
	assert.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("rclone-v1.66.0-linux-amd64/README.txt")
	assert.NoError(t, err)
	assert.NoError(t, zw.Close())
	assert.NoError(t, f.Close())

	_, err = extractBinary(archive, dir)
	assert.ErrorContains(t, err, "archive does not contain")
}

package structs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest(t *testing.T) *SyncRequest {
	t.Helper()

	return &SyncRequest{
		SourcePath: t.TempDir(),
		Bucket:     "my-bucket",
		Region:     "us-east-1",
		AccessKey:  "AKIAEXAMPLEEXAMPLE",
		SecretKey:  "secret",
		DryRun:     true,
	}
}

func TestSyncRequest_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validRequest(t).Validate())
	})

	t.Run("MissingBucket", func(t *testing.T) {
		r := validRequest(t)
		r.Bucket = "  "
		assert.ErrorContains(t, r.Validate(), "bucket name is required")
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		r := validRequest(t)
		r.SecretKey = ""
		assert.ErrorContains(t, r.Validate(), "secret access key")
	})

	t.Run("NonexistentSource", func(t *testing.T) {
		r := validRequest(t)
		r.SourcePath = filepath.Join(r.SourcePath, "missing")
		assert.ErrorContains(t, r.Validate(), "does not exist")
	})

	t.Run("SourceIsFile", func(t *testing.T) {
		r := validRequest(t)
		f := filepath.Join(r.SourcePath, "file.txt")
		assert.NoError(t, os.WriteFile(f, []byte("x"), 0644))
		r.SourcePath = f
		assert.ErrorContains(t, r.Validate(), "not a directory")
	})
}

func TestSyncRequest_DestinationURI(t *testing.T) {
	t.Run("BucketRoot", func(t *testing.T) {
		r := &SyncRequest{Bucket: "my-bucket"}
		assert.Equal(t, "s3:my-bucket", r.DestinationURI())
	})

	t.Run("WithPrefix", func(t *testing.T) {
		r := &SyncRequest{Bucket: "my-bucket", DestPrefix: "my-folder"}
		assert.Equal(t, "s3:my-bucket/my-folder", r.DestinationURI())
	})

	t.Run("LeadingSlashesStripped", func(t *testing.T) {
		r := &SyncRequest{Bucket: "my-bucket", DestPrefix: "//my-folder/sub"}
		assert.Equal(t, "s3:my-bucket/my-folder/sub", r.DestinationURI())
	})
}

func TestSyncRequest_Summary(t *testing.T) {
	r := validRequest(t)
	r.DestPrefix = "backups"
	r.ExcludePatterns = []string{"*.tmp", "cache/"}

	s := r.Summary()

	assert.Contains(t, s, "s3:my-bucket/backups")
	assert.Contains(t, s, "Dry run:               yes")
	assert.Contains(t, s, "Delete in destination: no")
	assert.Contains(t, s, "*.tmp, cache/")
	assert.Contains(t, s, "AKIA")
	assert.NotContains(t, s, "secret")
	assert.False(t, strings.Contains(s, r.AccessKey), "full access key must be redacted")
}

package wizard

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/clustervault/s3dirsync/config"
	"github.com/clustervault/s3dirsync/structs"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Pull the registered defaults into the config keys.
	config.Reload()
	os.Exit(m.Run())
}

func session(lines ...string) (*Wizard, *bytes.Buffer) {
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")

	return New(in, out), out
}

func TestCollect_DefaultsApplied(t *testing.T) {
	dir := t.TempDir()

	w, _ := session(
		dir,                  // source directory
		"my-bucket",          // bucket
		"",                   // region -> default
		"my-folder",          // destination prefix
		"AKIAEXAMPLEEXAMPLE", // access key
		"supersecret",        // secret key
		"",                   // dry run -> default yes
		"",                   // delete -> default no
		"",                   // exclude patterns -> none
	)

	req, err := w.Collect(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, dir, req.SourcePath)
	assert.Equal(t, "my-bucket", req.Bucket)
	assert.Equal(t, "us-east-1", req.Region)
	assert.Equal(t, "my-folder", req.DestPrefix)
	assert.True(t, req.DryRun)
	assert.False(t, req.DeleteExtraneous)
	assert.Empty(t, req.ExcludePatterns)
	assert.Equal(t, "s3:my-bucket/my-folder", req.DestinationURI())
}

func TestCollect_ExplicitOptions(t *testing.T) {
	dir := t.TempDir()

	w, _ := session(
		dir,
		"my-bucket",
		"eu-west-1",
		"",
		"AKIAEXAMPLEEXAMPLE",
		"supersecret",
		"no",  // dry run off
		"yes", // delete on
		"*.tmp, *.temp ,temp/",
	)

	req, err := w.Collect(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, "eu-west-1", req.Region)
	assert.False(t, req.DryRun)
	assert.True(t, req.DeleteExtraneous)
	assert.Equal(t, []string{"*.tmp", "*.temp", "temp/"}, req.ExcludePatterns)
	assert.Equal(t, "s3:my-bucket", req.DestinationURI())
}

func TestCollect_RepromptsForMissingSourceDir(t *testing.T) {
	dir := t.TempDir()

	w, out := session(
		"/definitely/not/a/path",
		dir,
		"my-bucket",
		"",
		"",
		"AKIAEXAMPLEEXAMPLE",
		"supersecret",
		"",
		"",
		"",
	)

	req, err := w.Collect(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, dir, req.SourcePath)
	assert.Contains(t, out.String(), "Directory not found: /definitely/not/a/path")
}

func TestCollect_RepeatsCredentialBlockWhenRequiredFieldBlank(t *testing.T) {
	dir := t.TempDir()

	w, out := session(
		dir,
		// First pass: secret key left blank.
		"my-bucket", "", "", "AKIAEXAMPLEEXAMPLE", "",
		// Second pass: complete.
		"my-bucket", "", "", "AKIAEXAMPLEEXAMPLE", "supersecret",
		"", "", "",
	)

	req, err := w.Collect(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "supersecret", req.SecretKey)
	assert.Contains(t, out.String(), "are required!")
}

func TestAskBucket_ARNExtraction(t *testing.T) {
	t.Run("AcceptExtracted", func(t *testing.T) {
		w, out := session("arn:aws:s3:::my-bucket", "yes")

		bucket, err := w.askBucket(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "my-bucket", bucket)
		assert.Contains(t, out.String(), "entered an ARN")
	})

	t.Run("RejectExtracted", func(t *testing.T) {
		w, _ := session("arn:aws:s3:::my-bucket", "no", "other-bucket")

		bucket, err := w.askBucket(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "other-bucket", bucket)
	})
}

func TestConfirmRequest(t *testing.T) {
	req := &structs.SyncRequest{
		SourcePath: "/data",
		Bucket:     "my-bucket",
		Region:     "us-east-1",
		AccessKey:  "AKIAEXAMPLEEXAMPLE",
		SecretKey:  "supersecret",
		DryRun:     true,
	}

	t.Run("Yes", func(t *testing.T) {
		w, out := session("yes")

		ok, err := w.ConfirmRequest(context.Background(), req)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, out.String(), "Sync Configuration Summary")
		assert.NotContains(t, out.String(), "supersecret")
	})

	t.Run("AnythingElseAborts", func(t *testing.T) {
		w, _ := session("sure")

		ok, err := w.ConfirmRequest(context.Background(), req)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRecollectCredentials(t *testing.T) {
	req := &structs.SyncRequest{
		SourcePath: "/data",
		Bucket:     "old-bucket",
		Region:     "us-east-1",
		AccessKey:  "AKIAOLDOLDOLDOLDOLD",
		SecretKey:  "oldsecret",
		DryRun:     true,
	}

	w, _ := session(
		"new-bucket",
		"eu-west-1",
		"",
		"AKIANEWNEWNEWNEWNEW",
		"newsecret",
	)

	err := w.RecollectCredentials(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, "new-bucket", req.Bucket)
	assert.Equal(t, "eu-west-1", req.Region)
	assert.Equal(t, "AKIANEWNEWNEWNEWNEW", req.AccessKey)
	assert.Equal(t, "newsecret", req.SecretKey)
	// Everything outside the destination block stays untouched.
	assert.Equal(t, "/data", req.SourcePath)
	assert.True(t, req.DryRun)
}

func TestConfirm_UnblocksOnCancel(t *testing.T) {
	// A pipe that never delivers a line: the prompt must return once the
	// context is canceled rather than hang on the blocked read.
	r, _ := io.Pipe()
	w := New(r, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := w.Confirm(ctx, "Do you want to proceed with the actual sync? (yes/no): ")
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("prompt did not return after context cancellation")
	}
}

func TestCollect_InputClosed(t *testing.T) {
	w := New(strings.NewReader(""), &bytes.Buffer{})

	_, err := w.Collect(context.Background())
	assert.Error(t, err)
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("", true))
	assert.False(t, parseBool("", false))
	assert.True(t, parseBool("YES", false))
	assert.True(t, parseBool("y", false))
	assert.False(t, parseBool("no", true))
	assert.True(t, parseBool("whatever", true))
}

func TestSplitPatterns(t *testing.T) {
	assert.Nil(t, splitPatterns("  "))
	assert.Equal(t, []string{"*.tmp", "temp/"}, splitPatterns(" *.tmp ,, temp/ "))
}

func TestExpandUser(t *testing.T) {
	home, err := os.UserHomeDir()
	assert.NoError(t, err)

	assert.Equal(t, home, expandUser("~"))
	assert.Equal(t, home+"/data", expandUser("~/data"))
	assert.Equal(t, "/var/data", expandUser("/var/data"))
	assert.Equal(t, "~other/data", expandUser("~other/data"))
}

package structs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// SyncRequest describes a single directory-to-S3 synchronization. It is
// assembled from interactive input, used to build one rclone invocation, and
// discarded afterwards. Credentials are never serialized with the request.
type SyncRequest struct {
	SourcePath       string   `json:"sourcePath" yaml:"sourcePath"`
	Bucket           string   `json:"bucket" yaml:"bucket"`
	Region           string   `json:"region" yaml:"region"`
	DestPrefix       string   `json:"destPrefix" yaml:"destPrefix"`
	AccessKey        string   `json:"-" yaml:"-"`
	SecretKey        string   `json:"-" yaml:"-"`
	DryRun           bool     `json:"dryRun" yaml:"dryRun"`
	DeleteExtraneous bool     `json:"deleteExtraneous" yaml:"deleteExtraneous"`
	ExcludePatterns  []string `json:"excludePatterns" yaml:"excludePatterns"`
}

// Validate checks the invariants every request must hold before it can be
// turned into an rclone invocation.
func (r *SyncRequest) Validate() error {
	if strings.TrimSpace(r.Bucket) == "" {
		return errors.New("bucket name is required")
	}

	if r.AccessKey == "" || r.SecretKey == "" {
		return errors.New("access key ID and secret access key are required")
	}

	info, err := os.Stat(r.SourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("source directory %q does not exist", r.SourcePath)
		}
		return fmt.Errorf("source directory %q: %w", r.SourcePath, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("source path %q is not a directory", r.SourcePath)
	}

	f, err := os.Open(r.SourcePath)
	if err != nil {
		return fmt.Errorf("source directory %q is not readable: %w", r.SourcePath, err)
	}
	f.Close()

	return nil
}

// DestinationURI composes the rclone destination for the request, using the
// "s3" remote written to the transient credential file. Leading slashes in
// the prefix are stripped so "s3:bucket//folder" can never be produced.
func (r *SyncRequest) DestinationURI() string {
	prefix := strings.TrimLeft(r.DestPrefix, "/")

	if prefix == "" {
		return fmt.Sprintf("s3:%s", r.Bucket)
	}

	return fmt.Sprintf("s3:%s/%s", r.Bucket, prefix)
}

// Summary renders the request for the confirmation step. The secret key is
// never included.
func (r *SyncRequest) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Source directory:      %s\n", r.SourcePath)
	fmt.Fprintf(&b, "Destination:           %s\n", r.DestinationURI())
	fmt.Fprintf(&b, "AWS region:            %s\n", r.Region)
	fmt.Fprintf(&b, "Access key:            %s\n", redactKey(r.AccessKey))
	fmt.Fprintf(&b, "Dry run:               %s\n", yesNo(r.DryRun))
	fmt.Fprintf(&b, "Delete in destination: %s\n", yesNo(r.DeleteExtraneous))

	if len(r.ExcludePatterns) > 0 {
		fmt.Fprintf(&b, "Excluding:             %s\n", strings.Join(r.ExcludePatterns, ", "))
	}

	return b.String()
}

func redactKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}

	return key[:4] + strings.Repeat("*", len(key)-4)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

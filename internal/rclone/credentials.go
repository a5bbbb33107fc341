package rclone

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clustervault/s3dirsync/structs"
)

// credentialFileTemplate defines the single transient remote named "s3" that
// every destination URI built by structs.SyncRequest refers to.
const credentialFileTemplate = `[s3]
type = s3
provider = AWS
env_auth = false
region = %s
access_key_id = %s
secret_access_key = %s
`

// WriteCredentials serializes the request's credentials into a short-lived
// rclone configuration file inside a private temporary directory. The
// returned cleanup removes the file and its directory and must run on every
// exit path.
func WriteCredentials(req *structs.SyncRequest) (string, func() error, error) {
	dir, err := os.MkdirTemp(os.TempDir(), "s3dirsync-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating credential directory: %w", err)
	}

	path := filepath.Join(dir, "rclone.conf")
	content := fmt.Sprintf(credentialFileTemplate, req.Region, req.AccessKey, req.SecretKey)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		os.RemoveAll(dir)
		return "", nil, fmt.Errorf("writing credential file: %w", err)
	}

	cleanup := func() error {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing credential file: %w", err)
		}
		return nil
	}

	return path, cleanup, nil
}

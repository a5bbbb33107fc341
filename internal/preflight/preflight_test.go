package preflight

import (
	"context"
	"os"
	"testing"

	"github.com/clustervault/s3dirsync/config"
	"github.com/clustervault/s3dirsync/structs"
	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	config.Reload()
	os.Exit(m.Run())
}

func TestCacheKey(t *testing.T) {
	a := &structs.SyncRequest{Bucket: "b", Region: "us-east-1", AccessKey: "AKIA1"}
	b := &structs.SyncRequest{Bucket: "b", Region: "us-east-1", AccessKey: "AKIA2"}

	assert.NotEqual(t, cacheKey(a), cacheKey(b))
	assert.Equal(t, "b|us-east-1|AKIA1", cacheKey(a))
}

func TestCheck_UsesCachedResult(t *testing.T) {
	req := &structs.SyncRequest{
		Bucket:    "cached-bucket",
		Region:    "us-east-1",
		AccessKey: "AKIAEXAMPLEEXAMPLE",
		SecretKey: "supersecret",
	}

	// Prime the cache; the check must short-circuit without any network
	// access, so a canceled context would otherwise fail it.
	cache().Set(cacheKey(req), true, ttlcache.DefaultTTL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, Check(ctx, req))
}

func TestHints(t *testing.T) {
	hints := Hints()
	assert.NotEmpty(t, hints)
	assert.Contains(t, hints[0], "access key")
}

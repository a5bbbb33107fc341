package preflight

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/clustervault/s3dirsync/config"
	"github.com/clustervault/s3dirsync/structs"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
)

// Successful checks are cached so re-confirming a session with the same
// destination does not hit the API again.
var (
	checkCache *ttlcache.Cache[string, bool]
	cacheOnce  sync.Once
)

func cache() *ttlcache.Cache[string, bool] {
	cacheOnce.Do(func() {
		checkCache = ttlcache.New(
			ttlcache.WithTTL[string, bool](config.PreflightCacheExpirationTime.Duration()),
			ttlcache.WithCapacity[string, bool](config.PreflightCacheCapacity.UInt64()),
		)

		checkCache.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, bool]) {
			log.Debug().
				Str("key", item.Key()).
				Msg("Evicted credential check from cache")
		})

		go checkCache.Start()
	})

	return checkCache
}

func cacheKey(req *structs.SyncRequest) string {
	return strings.Join([]string{req.Bucket, req.Region, req.AccessKey}, "|")
}

// Check verifies that the request's credentials can list the target bucket
// before rclone is ever invoked. The result is advisory; callers decide
// whether a failure blocks the sync.
func Check(ctx context.Context, req *structs.SyncRequest) error {
	if item := cache().Get(cacheKey(req)); item != nil {
		log.Debug().
			Str("bucket", req.Bucket).
			Msg("Credential check already passed for this destination")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, config.PreflightTimeout.Duration())
	defer cancel()

	log.Info().
		Str("bucket", req.Bucket).
		Str("region", req.Region).
		Msg("Verifying access to bucket")

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(req.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(req.AccessKey, req.SecretKey, ""),
		),
	)
	if err != nil {
		return fmt.Errorf("building AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	if _, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(req.Bucket),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("unable to list bucket %q: %w", req.Bucket, err)
	}

	cache().Set(cacheKey(req), true, ttlcache.DefaultTTL)

	return nil
}

// Hints lists the usual causes of a failed credential check, in the order
// worth checking them.
func Hints() []string {
	return []string{
		"The access key or secret key may be incorrect",
		"The specified bucket may not exist or you don't have access to it",
		"The region may be incorrect",
		"There may be network connectivity issues",
	}
}

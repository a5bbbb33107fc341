package config

import "time"

var (
	// PreflightEnabled enables the credential check against the target bucket
	// before rclone is invoked.
	PreflightEnabled = NewKey("preflight.enabled",
		WithDefaultValue(true),
		WithValidBool())

	// PreflightTimeout bounds a single credential check.
	PreflightTimeout = NewKey("preflight.timeout",
		WithDefaultValue("15s"),
		WithValidDuration())

	// PreflightCacheExpirationTime is the expiration time for cached successful
	// credential checks.
	PreflightCacheExpirationTime = NewKey("preflight.cache.expirationTime",
		WithDefaultValue(10*time.Minute),
		WithValidDuration())

	// PreflightCacheCapacity is the maximum number of entries the credential
	// check cache can hold.
	PreflightCacheCapacity = NewKey("preflight.cache.capacity",
		WithDefaultValue(64),
		WithValidPositiveInt())
)

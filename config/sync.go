package config

var (
	// region Sync.

	// SyncDefaultRegion is the AWS region offered when the region prompt is
	// left blank.
	SyncDefaultRegion = NewKey("sync.defaultRegion",
		WithDefaultValue("us-east-1"),
		WithValidString())

	// SyncDefaultDryRun controls whether a blank answer to the dry-run prompt
	// means "yes". Dry runs are the default so a typo never mutates a bucket.
	SyncDefaultDryRun = NewKey("sync.defaultDryRun",
		WithDefaultValue(true),
		WithValidBool())

	// SyncDefaultDelete controls whether a blank answer to the deletion prompt
	// enables --delete-after.
	SyncDefaultDelete = NewKey("sync.defaultDelete",
		WithDefaultValue(false),
		WithValidBool())

	// endregion.
)

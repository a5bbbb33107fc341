package config

var (
	// region Rclone.

	// RcloneBinary is the rclone executable to invoke. A bare name is resolved
	// through PATH; an absolute or relative path is used as-is.
	RcloneBinary = NewKey("rclone.binary",
		WithDefaultValue("rclone"),
		WithValidString())

	// RcloneAutoInstall enables downloading rclone into the user's home
	// directory when no binary can be found.
	RcloneAutoInstall = NewKey("rclone.autoInstall",
		WithDefaultValue(true),
		WithValidBool())

	// RcloneInstallDir overrides the directory auto-installed binaries are
	// placed in. Empty means $HOME/.s3dirsync/bin.
	RcloneInstallDir = NewKey("rclone.installDir",
		WithDefaultValue(""),
		WithValidExistingPathOrEmpty())

	// RcloneDownloadBaseURL is the base URL the installer fetches release
	// archives from.
	RcloneDownloadBaseURL = NewKey("rclone.downloadBaseURL",
		WithDefaultValue("https://downloads.rclone.org"),
		WithValidURL())

	// endregion.
)

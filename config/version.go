package config

// Version is the build version, overridden at link time via
// -ldflags "-X github.com/clustervault/s3dirsync/config.Version=...".
var Version = "dev"

package config

import (
	"errors"

	"github.com/spf13/viper"
)

var keys = make(map[string]*Key)

// InitConfig initializes the application's configuration system. Settings are
// loaded from an optional defaults file and from S3DIRSYNC_* environment
// variables. A missing config file is not an error; the tool is fully
// interactive and ships with sensible defaults.
func InitConfig(cfgFile string) error {
	viper.SetEnvPrefix("S3DIRSYNC")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("$HOME/.s3dirsync")
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return err
		}
	}

	return nil
}

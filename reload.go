package s3dirsync

import (
	"github.com/clustervault/s3dirsync/config"
	"github.com/rs/zerolog/log"
)

// Reload revalidates every configuration key and applies the values that
// pass, logging the ones that do not.
func Reload() {
	for _, reloaded := range config.Reload() {
		if reloaded.Error != nil {
			log.Error().
				Err(reloaded.Error).
				Str("key", reloaded.Key).
				Interface("oldValue", reloaded.OldValue).
				Interface("newValue", reloaded.NewValue).
				Msg("Failed to load configuration key, ignoring")
		}
	}
}

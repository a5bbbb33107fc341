package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	s3dirsync "github.com/clustervault/s3dirsync"
	"github.com/clustervault/s3dirsync/config"
	"github.com/clustervault/s3dirsync/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "s3dirsync",
	Short: "Interactively sync a local directory to an S3 bucket using rclone",
	Long: `s3dirsync walks you through a directory-to-S3 sync: it prompts for the
source directory, bucket, region, credentials and sync options, then invokes
rclone with a transient credential file that is removed when the run ends.`,
	PreRun: func(cmd *cobra.Command, args []string) {
		cmd.Annotations = make(map[string]string)
		cmd.Annotations["error"] = ""
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Cancellation propagates to the child process and unblocks any
		// pending prompt, so the run loop returns through its defers and the
		// credential file is removed even on interrupt.
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-c
			log.Warn().Msg("Interrupted, cleaning up")
			cancel()
		}()

		logging.ReloadGlobalLogger()

		if err := s3dirsync.Run(ctx); err != nil {
			cmd.Annotations["error"] = err.Error()
			log.Error().
				Err(err).
				Msg("Sync session failed")
		}
	},
	PostRun: func(cmd *cobra.Command, args []string) {
		// Wait for a second to allow any pending log messages to be flushed
		time.Sleep(1 * time.Second)
		if cmd.Annotations["error"] != "" {
			os.Exit(1)
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "defaults file (default is $HOME/.s3dirsync/config.yaml)")
}

func initConfig() {
	if err := config.InitConfig(cfgFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	s3dirsync.Reload()
}

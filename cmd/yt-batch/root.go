package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-batch/internal/config"
)

const rootExample = `  yt-batch 1 100
  yt-batch 1 100 my_videos.json my_downloads
  yt-batch -- -1 3
  yt-batch
  yt-batch collect https://www.youtube.com/@channelname
  yt-batch playlist "https://www.youtube.com/playlist?list=PL123"`

func newRootCommand(deps dependencies) *cobra.Command {
	ctx := newCommandContext(deps)
	flags := &downloadFlags{}

	rootCmd := &cobra.Command{
		Use:           "yt-batch [start end [input_file] [folder]]",
		Short:         "Download a numbered range of videos from a list file",
		Example:       rootExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          validateDownloadArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] == "help" {
				return cmd.Help()
			}
			return runDownload(cmd, ctx, flags, args)
		},
	}
	rootCmd.SetOut(deps.stdout)
	rootCmd.SetErr(deps.stderr)
	rootCmd.SetFlagErrorFunc(rangeFlagError)

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (also "+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&ctx.logFormatFlag, "log-format", config.DefaultLogFormat, "Log format (console, json)")
	flags.register(rootCmd)

	rootCmd.AddCommand(newCollectCommand(ctx))
	rootCmd.AddCommand(newPlaylistCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))

	return rootCmd
}

// validateDownloadArgs accepts up to start end [input_file] [folder]. Fewer
// than two arguments fall back to the prompts.
func validateDownloadArgs(cmd *cobra.Command, args []string) error {
	if len(args) <= 4 {
		return nil
	}
	return fmt.Errorf("%w (got %d arguments)", config.ErrUsage, len(args))
}

// rangeFlagError reports a negative range bound that pflag took for a
// shorthand flag, e.g. `yt-batch -1 3`.
func rangeFlagError(cmd *cobra.Command, err error) error {
	const prefix = "unknown shorthand flag: '"
	msg := err.Error()
	if strings.HasPrefix(msg, prefix) && len(msg) > len(prefix) {
		if c := msg[len(prefix)]; c >= '0' && c <= '9' {
			return fmt.Errorf("%w: put -- before negative numbers, e.g. yt-batch -- -1 3", config.ErrRangeArgs)
		}
	}
	return err
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/platform"
)

func newPlaylistCommand(cc *commandContext) *cobra.Command {
	var output string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "playlist <playlist-url|id>",
		Short: "Write a playlist's videos into a list file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				output = cfg.Collector.Output
			}

			links, err := cc.deps.newPlaylistLister(timeout).List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := platform.WriteLinks(output, links); err != nil {
				return err
			}

			fmt.Fprintf(cc.deps.stdout, "Found %d videos. Links saved to %s\n", len(links), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultCollectOutput, "List file to write")
	cmd.Flags().DurationVar(&timeout, "timeout", platform.DefaultPlaylistTimeout, "Time limit for fetching the playlist, 0 disables it")
	return cmd
}

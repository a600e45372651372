package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-batch/internal/collect"
	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/platform"
)

func newCollectCommand(cc *commandContext) *cobra.Command {
	var (
		output      string
		headless    bool
		browserPath string
		scrollPause time.Duration
		initialWait time.Duration
		maxScrolls  int
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "collect <channel-url>",
		Short: "Collect a channel's video links into a list file",
		Long: "Open the channel's videos tab in a headless browser, scroll until no more\n" +
			"videos load and write every title and link to a JSON list file.\n" +
			"Use the /streams tab URL to collect live streams instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.loadConfig(cmd)
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			if fs.Changed("output") {
				cfg.Collector.Output = output
			}
			if fs.Changed("headless") {
				cfg.Collector.Headless = headless
			}
			if fs.Changed("browser") {
				cfg.Collector.BrowserPath = browserPath
			}
			if fs.Changed("scroll-pause") {
				cfg.Collector.ScrollPause = config.Duration(scrollPause)
			}
			if fs.Changed("initial-wait") {
				cfg.Collector.InitialWait = config.Duration(initialWait)
			}
			if fs.Changed("max-scrolls") {
				cfg.Collector.MaxScrolls = maxScrolls
			}
			if fs.Changed("timeout") {
				cfg.Collector.Timeout = config.Duration(timeout)
			}
			if err := cfg.ValidateCollector(); err != nil {
				return err
			}

			logger, closeLogs, err := cc.logger(cfg)
			if err != nil {
				return err
			}
			defer closeLogs()

			collector := cc.deps.newCollector(collectorOptions(cfg.Collector), logger)
			links, err := collector.Collect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := platform.WriteLinks(cfg.Collector.Output, links); err != nil {
				return err
			}

			fmt.Fprintf(cc.deps.stdout, "Found %d videos. Links saved to %s\n", len(links), cfg.Collector.Output)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&output, "output", "o", config.DefaultCollectOutput, "List file to write")
	fs.BoolVar(&headless, "headless", config.DefaultHeadless, "Run the browser without a window")
	fs.StringVar(&browserPath, "browser", "", "Chrome or Chromium executable")
	fs.DurationVar(&scrollPause, "scroll-pause", config.DefaultScrollPause, "Wait after each scroll")
	fs.DurationVar(&initialWait, "initial-wait", config.DefaultInitialWait, "Wait after the page opens")
	fs.IntVar(&maxScrolls, "max-scrolls", config.DefaultMaxScrolls, "Upper bound on scroll steps")
	fs.DurationVar(&timeout, "timeout", config.DefaultCollectTimeout, "Overall time limit")

	return cmd
}

func collectorOptions(c config.Collector) collect.Options {
	return collect.Options{
		Browser: collect.BrowserOptions{
			Headless:    c.Headless,
			BrowserPath: c.BrowserPath,
		},
		InitialWait: c.InitialWait.Std(),
		ScrollPause: c.ScrollPause.Std(),
		MaxScrolls:  c.MaxScrolls,
		Timeout:     c.Timeout.Std(),
	}
}

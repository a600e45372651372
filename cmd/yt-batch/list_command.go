package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-batch/internal/archive"
	"github.com/ytget/yt-batch/internal/batch"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
	"github.com/ytget/yt-batch/internal/report"
)

func newListCommand(cc *commandContext) *cobra.Command {
	var start, end int
	var archivePath string

	cmd := &cobra.Command{
		Use:   "list [input_file]",
		Short: "Show list entries with their numbers and file labels",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.InputFile = args[0]
			}
			if cmd.Flags().Changed("archive") {
				cfg.ArchivePath = archivePath
			}
			if err := cfg.CheckInputFile(); err != nil {
				return err
			}

			links, err := platform.ReadLinks(cfg.InputFile)
			if err != nil {
				return err
			}
			items := model.NewWorkItems(links)
			if len(items) == 0 {
				fmt.Fprintf(cc.deps.stdout, "%s has no entries\n", cfg.InputFile)
				return nil
			}

			if !cmd.Flags().Changed("end") {
				end = len(items)
			}
			rng, err := model.NewRange(start, end, len(items))
			if err != nil {
				return err
			}

			rows := make([]report.ListRow, 0, rng.Len())
			for _, item := range batch.Select(items, rng) {
				rows = append(rows, report.ListRow{Item: item, Status: model.ItemStatusPending})
			}

			var archiveNote string
			if cfg.ArchivePath != "" && platform.FileExists(cfg.ArchivePath) {
				store, err := archive.Open(cmd.Context(), cfg.ArchivePath)
				if err != nil {
					return err
				}
				defer store.Close()
				for i := range rows {
					entry, err := store.Get(cmd.Context(), rows[i].Item.TargetRef)
					if err != nil {
						return err
					}
					if entry != nil {
						rows[i].Status = model.ItemStatusCompleted
						rows[i].OutputPath = entry.OutputPath
					}
				}
				archived, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				archiveNote = fmt.Sprintf("%d downloads recorded in %s", archived, store.Path())
			}

			fmt.Fprintln(cc.deps.stdout, report.RenderList(rows))
			fmt.Fprintf(cc.deps.stdout, "%d of %d entries\n", len(rows), len(items))
			if archiveNote != "" {
				fmt.Fprintln(cc.deps.stdout, archiveNote)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&start, "start", 1, "First entry to show")
	fs.IntVar(&end, "end", 0, "Last entry to show (default: last entry)")
	fs.StringVar(&archivePath, "archive", "", "SQLite archive used to mark completed entries")
	return cmd
}

package report

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ytget/yt-batch/internal/model"
)

// column is one table column; right aligns its cells to the right
type column struct {
	name  string
	right bool
}

// renderGrid draws rows under cols with an optional title. Headers are
// printed as given so identifiers keep their case. Short rows are padded.
func renderGrid(title string, cols []column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Title.Align = text.AlignLeft
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.name
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
		if c.right {
			configs[i].Align = text.AlignRight
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

// RenderSummary renders run totals, followed by a table of failures if any
func RenderSummary(result model.RunResult) string {
	rows := [][]string{
		{"Run ID", result.RunID},
		{"Range", result.Range.String()},
		{"Attempted", fmt.Sprint(result.Attempted)},
		{"Succeeded", fmt.Sprint(result.Succeeded)},
		{"Failed", fmt.Sprint(len(result.Failures))},
	}
	if result.Skipped > 0 {
		rows = append(rows, []string{"Skipped", fmt.Sprint(result.Skipped)})
	}
	rows = append(rows, []string{"Duration", result.Duration().Round(time.Second).String()})

	out := renderGrid("Run summary", []column{{name: "Total"}, {name: "Value", right: true}}, rows)
	if !result.HasFailures() {
		return out
	}

	failures := make([][]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, []string{fmt.Sprint(f.Sequence), f.Label, f.Error})
	}
	return out + "\n" + renderGrid("", []column{{name: "#", right: true}, {name: "Failed video"}, {name: "Error"}}, failures)
}

// ListRow is one line of a list preview
type ListRow struct {
	Item       model.WorkItem
	Status     model.ItemStatus
	OutputPath string
}

// RenderList renders numbered list entries with their display labels
func RenderList(rows []ListRow) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		status := r.Status
		if status == "" {
			status = model.ItemStatusPending
		}
		data = append(data, []string{fmt.Sprint(r.Item.Sequence), r.Item.DisplayName(), r.Item.TargetRef, status.String(), r.OutputPath})
	}
	return renderGrid("", []column{{name: "#", right: true}, {name: "Label"}, {name: "URL"}, {name: "Status"}, {name: "File"}}, data)
}

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-batch/internal/batch"
	"github.com/ytget/yt-batch/internal/model"
)

var _ batch.Observer = (*Console)(nil)

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	PrintPlan(&buf, model.Range{Start: 2, End: 4}, "downloads")

	assert.Equal(t,
		"Downloading videos 2 to 4 (3 videos)\n"+
			"Files will be saved to: downloads\n"+
			"Videos will be numbered from 002 to 004\n",
		buf.String())
}

func TestConsole_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	require.False(t, c.interactive)

	beta := model.WorkItem{Sequence: 2, Label: "002. Beta"}
	gamma := model.WorkItem{Sequence: 3, Label: "003. Gamma"}
	delta := model.WorkItem{Sequence: 4, Label: "004. Delta"}

	c.RunStarted(model.Range{Start: 2, End: 4}, 3)
	c.ItemStarted(beta, 1, 3)
	assert.Equal(t, model.ItemStatusDownloading, c.Status(2))
	c.ItemSucceeded(beta)
	c.ItemStarted(gamma, 2, 3)
	c.ItemFailed(model.FailureRecord{Sequence: 3, Label: "003. Gamma", Error: "network timeout"})
	c.ItemSkipped(delta)

	out := buf.String()
	assert.Contains(t, out, "[1/3] Downloading: 002. Beta\n")
	assert.Contains(t, out, "✓ Downloaded video #2: 002. Beta\n")
	assert.Contains(t, out, "✗ Failed video #3: 003. Gamma\n")
	assert.Contains(t, out, "- Skipped video #4 (already downloaded): 004. Delta\n")

	assert.Equal(t, model.ItemStatusCompleted, c.Status(2))
	assert.Equal(t, model.ItemStatusError, c.Status(3))
	assert.Equal(t, model.ItemStatusSkipped, c.Status(4))
	assert.Equal(t, model.ItemStatusPending, c.Status(9))
}

func TestConsole_RunFinishedPrintsSummary(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	started := time.Now()
	c.RunFinished(model.RunResult{
		RunID:      "run-1",
		Range:      model.Range{Start: 1, End: 2},
		Attempted:  2,
		Succeeded:  1,
		Failures:   []model.FailureRecord{{Sequence: 2, Label: "002. B", Error: "HTTP 403"}},
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
	})

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.NotContains(t, out, "RUN-1")
	assert.Contains(t, out, "Succeeded")
	assert.Contains(t, out, "HTTP 403")
	assert.Contains(t, out, "3s")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestRenderSummary_NoFailures(t *testing.T) {
	out := RenderSummary(model.RunResult{RunID: "r", Range: model.Range{Start: 1, End: 1}, Attempted: 1, Succeeded: 1})
	assert.NotContains(t, out, "Failed video")
	assert.NotContains(t, out, "Skipped")
}

func TestRenderSummary_WithSkipped(t *testing.T) {
	out := RenderSummary(model.RunResult{RunID: "r", Range: model.Range{Start: 1, End: 3}, Attempted: 1, Succeeded: 1, Skipped: 2})
	assert.Contains(t, out, "Skipped")
}

func TestRenderList(t *testing.T) {
	out := RenderList([]ListRow{
		{Item: model.WorkItem{Sequence: 1, Label: "001. Alpha", TargetRef: "https://www.youtube.com/watch?v=1"}},
		{Item: model.WorkItem{Sequence: 2, Title: "Beta", TargetRef: "https://www.youtube.com/watch?v=2"}, Status: model.ItemStatusCompleted, OutputPath: "downloads/002. Beta.mp4"},
	})

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 4)
	assert.Contains(t, out, "001. Alpha")
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "downloads/002. Beta.mp4")
}

func TestRenderSummary_RunIDKeepsCase(t *testing.T) {
	out := RenderSummary(model.RunResult{RunID: "3f2a-Run-b", Range: model.Range{Start: 1, End: 1}, Attempted: 1, Succeeded: 1})
	assert.Contains(t, out, "Run ID")
	assert.Contains(t, out, "3f2a-Run-b")
	assert.NotContains(t, out, "3F2A-RUN-B")
}

func TestRenderGrid_NoColumns(t *testing.T) {
	assert.Empty(t, renderGrid("title", nil, [][]string{{"x"}}))
}

func TestRenderGrid_PadsShortRows(t *testing.T) {
	out := renderGrid("", []column{{name: "A"}, {name: "B"}}, [][]string{{"only"}})
	assert.Contains(t, out, "only")
	assert.NotContains(t, out, "<nil>")
}

package batch

import (
	"fmt"
	"strings"

	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

// DisplayLabel formats "NNN. <sanitized title>"
func DisplayLabel(sequence int, title string) string {
	return strings.TrimSpace(fmt.Sprintf("%03d. %s", sequence, platform.SanitizeFilename(title)))
}

// Select returns labeled copies of the items whose sequence number lies
// inside rng, in original order.
func Select(items []model.WorkItem, rng model.Range) []model.WorkItem {
	selected := make([]model.WorkItem, 0, rng.Len())
	for _, item := range items {
		if !rng.Contains(item.Sequence) {
			continue
		}
		selected = append(selected, item.WithLabel(DisplayLabel(item.Sequence, item.Title)))
	}
	return selected
}

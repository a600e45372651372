package collect

import (
	"strings"

	"github.com/ytget/yt-batch/internal/model"
)

// Anchor is a video title link as found on the page
type Anchor struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// ExtractLinks keeps anchors with a target in document order. Later
// duplicates of an already seen URL are dropped.
func ExtractLinks(anchors []Anchor) []model.Link {
	seen := make(map[string]bool, len(anchors))
	links := make([]model.Link, 0, len(anchors))
	for _, a := range anchors {
		href := strings.TrimSpace(a.Href)
		if href == "" || seen[href] {
			continue
		}
		seen[href] = true
		links = append(links, model.Link{Title: a.Title, URL: href})
	}
	return links
}

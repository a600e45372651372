package model

// Link is one entry of a list file: a video title and its source URL
type Link struct {
	Title string
	URL   string
}

// WorkItem is a numbered entry selected for processing
type WorkItem struct {
	Sequence  int    // 1-based position in the source list
	Title     string // raw title as found in the list file
	Label     string // display label, assigned when the item is selected
	TargetRef string // locator handed to the processing capability
}

// NewWorkItems numbers links in order, starting at 1
func NewWorkItems(links []Link) []WorkItem {
	items := make([]WorkItem, 0, len(links))
	for i, link := range links {
		items = append(items, WorkItem{
			Sequence:  i + 1,
			Title:     link.Title,
			TargetRef: link.URL,
		})
	}
	return items
}

// WithLabel returns a copy of the item carrying the given display label
func (w WorkItem) WithLabel(label string) WorkItem {
	w.Label = label
	return w
}

// DisplayName returns the label, or the raw title if no label was assigned yet
func (w WorkItem) DisplayName() string {
	if w.Label != "" {
		return w.Label
	}
	return w.Title
}

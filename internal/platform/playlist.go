package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-batch/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistParam = "list"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Default values
const (
	DefaultVideoTitle = "Untitled video"
)

// playlistEntry is the subset of a playlist item the lister needs
type playlistEntry struct {
	VideoID string
	Title   string
}

type playlistFetchFunc func(ctx context.Context, playlistID string) ([]playlistEntry, error)

// PlaylistLister turns a YouTube playlist into list file entries
type PlaylistLister struct {
	timeout time.Duration
	fetch   playlistFetchFunc
}

// NewPlaylistLister creates a lister backed by the ytdlp innertube client
func NewPlaylistLister() *PlaylistLister {
	return &PlaylistLister{
		timeout: DefaultPlaylistTimeout,
		fetch:   fetchWithYTDLP,
	}
}

// SetTimeout sets the timeout for listing operations
func (p *PlaylistLister) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// List returns every video of the playlist in playlist order.
// ref may be a playlist URL carrying a list= parameter or a bare playlist ID.
func (p *PlaylistLister) List(ctx context.Context, ref string) ([]model.Link, error) {
	playlistID, err := ExtractPlaylistID(ref)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	entries, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	links := make([]model.Link, 0, len(entries))
	for _, e := range entries {
		if e.VideoID == "" {
			continue
		}
		title := strings.TrimSpace(e.Title)
		if title == "" {
			title = DefaultVideoTitle
		}
		links = append(links, model.Link{
			Title: title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, e.VideoID),
		})
	}
	return links, nil
}

// ExtractPlaylistID accepts a playlist URL or a bare playlist ID
func ExtractPlaylistID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty playlist reference")
	}

	if !strings.Contains(ref, "://") && !strings.Contains(ref, "?") {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid playlist URL %q: %w", ref, err)
	}
	id := u.Query().Get(PlaylistParam)
	if id == "" {
		return "", fmt.Errorf("URL does not contain a playlist parameter: %s", ref)
	}
	return id, nil
}

func fetchWithYTDLP(ctx context.Context, playlistID string) ([]playlistEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]playlistEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, playlistEntry{VideoID: it.VideoID, Title: it.Title})
	}
	return entries, nil
}

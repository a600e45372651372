package collect

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotChannelURL is returned for URLs that do not point to a channel
var ErrNotChannelURL = errors.New("not a channel URL")

// Channel listing tabs kept as given
var listingTabs = map[string]bool{
	"videos":  true,
	"streams": true,
	"shorts":  true,
}

// NormalizeChannelURL appends /videos to a bare channel URL. URLs already
// pointing at the videos, streams or shorts tab are returned unchanged.
func NormalizeChannelURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrNotChannelURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotChannelURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrNotChannelURL, raw)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	var base int
	switch {
	case len(segments) >= 1 && strings.HasPrefix(segments[0], "@") && len(segments[0]) > 1:
		base = 1
	case len(segments) >= 2 && (segments[0] == "channel" || segments[0] == "c" || segments[0] == "user") && segments[1] != "":
		base = 2
	default:
		return "", fmt.Errorf("%w: %s", ErrNotChannelURL, raw)
	}

	if len(segments) > base && listingTabs[segments[base]] {
		segments = segments[:base+1]
	} else {
		segments = append(segments[:base], "videos")
	}

	u.Path = "/" + strings.Join(segments, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

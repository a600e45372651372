package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-batch/internal/model"
)

func TestNewPlaylistLister(t *testing.T) {
	lister := NewPlaylistLister()
	require.NotNil(t, lister)
	assert.Equal(t, DefaultPlaylistTimeout, lister.timeout)

	lister.SetTimeout(30 * time.Second)
	assert.Equal(t, 30*time.Second, lister.timeout)
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{"playlist page", "https://www.youtube.com/playlist?list=PL123", "PL123", false},
		{"watch with list", "https://www.youtube.com/watch?v=VIDEO&list=PL456&index=2", "PL456", false},
		{"bare id", "PL789", "PL789", false},
		{"bare id with spaces", "  PL789 ", "PL789", false},
		{"no list parameter", "https://www.youtube.com/watch?v=VIDEO", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPlaylistID(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaylistLister_List(t *testing.T) {
	var gotID string
	lister := &PlaylistLister{
		fetch: func(ctx context.Context, playlistID string) ([]playlistEntry, error) {
			gotID = playlistID
			return []playlistEntry{
				{VideoID: "aaa", Title: "First"},
				{VideoID: "", Title: "Deleted video"},
				{VideoID: "bbb", Title: "   "},
			}, nil
		},
	}

	links, err := lister.List(context.Background(), "https://www.youtube.com/playlist?list=PLx")
	require.NoError(t, err)
	assert.Equal(t, "PLx", gotID)
	assert.Equal(t, []model.Link{
		{Title: "First", URL: "https://www.youtube.com/watch?v=aaa"},
		{Title: DefaultVideoTitle, URL: "https://www.youtube.com/watch?v=bbb"},
	}, links)
}

func TestPlaylistLister_FetchError(t *testing.T) {
	boom := errors.New("boom")
	lister := &PlaylistLister{
		timeout: time.Second,
		fetch: func(ctx context.Context, playlistID string) ([]playlistEntry, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil, boom
		},
	}

	_, err := lister.List(context.Background(), "PLx")
	assert.True(t, errors.Is(err, boom))
}

package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeChannelURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/@channelname", "https://www.youtube.com/@channelname/videos"},
		{"https://www.youtube.com/@channelname/", "https://www.youtube.com/@channelname/videos"},
		{"https://www.youtube.com/@channelname/videos", "https://www.youtube.com/@channelname/videos"},
		{"https://www.youtube.com/@channelname/streams", "https://www.youtube.com/@channelname/streams"},
		{"https://www.youtube.com/@channelname/shorts", "https://www.youtube.com/@channelname/shorts"},
		{"https://www.youtube.com/@channelname/featured", "https://www.youtube.com/@channelname/videos"},
		{"https://www.youtube.com/channel/UC123", "https://www.youtube.com/channel/UC123/videos"},
		{"https://www.youtube.com/c/Name?view=0", "https://www.youtube.com/c/Name/videos"},
		{"https://www.youtube.com/user/legacy", "https://www.youtube.com/user/legacy/videos"},
		{"youtube.com/@bare", "https://youtube.com/@bare/videos"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeChannelURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeChannelURL_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"https://www.youtube.com/watch?v=abc",
		"https://www.youtube.com/@",
		"https://www.youtube.com/channel/",
	} {
		_, err := NormalizeChannelURL(in)
		assert.ErrorIs(t, err, ErrNotChannelURL, in)
	}
}

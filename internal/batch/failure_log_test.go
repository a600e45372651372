package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-batch/internal/model"
)

func TestFailureLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed_downloads.log")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o644))

	log := NewFailureLog(path)
	assert.Equal(t, path, log.Path())
	require.NoError(t, log.Begin(model.Range{Start: 2, End: 4}))
	require.NoError(t, log.Append(model.FailureRecord{
		Sequence:  3,
		Label:     "003. Title",
		TargetRef: "https://www.youtube.com/watch?v=c",
		Error:     "network timeout",
	}))

	// Entries are on disk before Close.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Failed Downloads (Range: 2-4):\n\n"+
			"Video #3 - \"003. Title\": \"https://www.youtube.com/watch?v=c\" - Error: network timeout\n",
		string(content))

	require.NoError(t, log.Close())
	require.NoError(t, log.Close())
}

func TestFailureLog_AppendBeforeBegin(t *testing.T) {
	log := NewFailureLog(filepath.Join(t.TempDir(), "x.log"))
	assert.Error(t, log.Append(model.FailureRecord{Sequence: 1}))
}

func TestFailureLog_BeginTwice(t *testing.T) {
	log := NewFailureLog(filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, log.Begin(model.Range{Start: 1, End: 1}))
	defer log.Close()
	assert.Error(t, log.Begin(model.Range{Start: 1, End: 1}))
}

func TestFormatFailure_FlattensMultilineErrors(t *testing.T) {
	line := FormatFailure(model.FailureRecord{
		Sequence:  12,
		Label:     "012. X",
		TargetRef: "u",
		Error:     "ERROR: first\r\nsecond\nthird",
	})
	assert.Equal(t, "Video #12 - \"012. X\": \"u\" - Error: ERROR: first second third\n", line)
}

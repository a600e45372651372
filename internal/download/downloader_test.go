package download

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestValidate(t *testing.T) {
	assert.ErrorIs(t, Request{Label: "x"}.Validate(), ErrEmptyURL)
	assert.ErrorIs(t, Request{URL: "u", Label: "  "}.Validate(), ErrEmptyLabel)
	assert.NoError(t, Request{URL: "u", Label: "001. A"}.Validate())
}

func TestRequestOutputTemplate(t *testing.T) {
	req := Request{Folder: "downloads", Label: "007. Intro"}
	assert.Equal(t, filepath.Join("downloads", "007. Intro.%(ext)s"), req.OutputTemplate())
}

func TestRequestWithDefaults(t *testing.T) {
	req := Request{URL: "u", Label: "x"}.withDefaults()
	assert.Equal(t, DefaultFormat, req.Format)
	assert.Equal(t, DefaultMergeOutputFormat, req.MergeOutputFormat)
	assert.Equal(t, ".", req.Folder)

	custom := Request{URL: "u", Label: "x", Folder: "out", Format: "best", MergeOutputFormat: "mkv"}.withDefaults()
	assert.Equal(t, "best", custom.Format)
	assert.Equal(t, "mkv", custom.MergeOutputFormat)
	assert.Equal(t, "out", custom.Folder)
}

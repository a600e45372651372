package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "My Video", "My Video"},
		{"all illegal characters", `a\b/c*d?e:f"g<h>i|j`, "abcdefghij"},
		{"surrounding whitespace", "  spaced out \t", "spaced out"},
		{"illegal then whitespace", `?  title  |`, "title"},
		{"newline inside", "line one\nline two", "line oneline two"},
		{"only illegal", `\/*?:"<>|`, ""},
		{"empty", "", ""},
		{"unicode kept", "Урок 1: Введение", "Урок 1 Введение"},
		{"decomposed accent composed", "Cafe\u0301", "Caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_Idempotent(t *testing.T) {
	tricky := []string{
		"e?\u0301",
		" \u0301leading mark",
		"A|\u030a",
		"\u2000wide space\u2001",
		"tab\tinside",
		`"quoted" <tag>`,
	}
	for _, s := range tricky {
		once := SanitizeFilename(s)
		assert.Equal(t, once, SanitizeFilename(once), "input %q", s)
	}

	property := func(s string) bool {
		once := SanitizeFilename(s)
		return SanitizeFilename(once) == once
	}
	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 2000}))
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "nested", "dir")

	_, err := os.Stat(testDir)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, CreateDirectoryIfNotExists(testDir))
	info, err := os.Stat(testDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call should not fail
	require.NoError(t, CreateDirectoryIfNotExists(testDir))
}

func TestCreateDirectoryIfNotExists_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.Error(t, CreateDirectoryIfNotExists(path))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.json")))
}

func TestFindOutputFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"003. Mr. Smith.mp4",
		"003. Mr. Smith.f137.mp4",
		"003. Mr. Smith.webm.part",
		"004. Other.mp4",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	path, err := FindOutputFile(dir, "003. Mr. Smith")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "003. Mr. Smith.mp4"), path)
}

func TestFindOutputFile_OnlyPartial(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001. A.mp4.part"), []byte("x"), 0o644))

	_, err := FindOutputFile(dir, "001. A")
	assert.True(t, errors.Is(err, ErrOutputNotFound))
}

func TestFindOutputFile_EmptyLabel(t *testing.T) {
	_, err := FindOutputFile(t.TempDir(), "")
	assert.Error(t, err)
}

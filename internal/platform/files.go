package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// File permissions
const (
	DefaultDirPermissions  = 0o755
	DefaultFilePermissions = 0o644
)

// Characters that are not allowed in file names on at least one supported OS
const IllegalFileNameChars = `\/*?:"<>|`

// File extensions left behind by interrupted downloads
var (
	SkippedExtensions = []string{".part", ".ytdl", ".temp"}
)

// ErrOutputNotFound is returned when no finished file exists for a label
var ErrOutputNotFound = errors.New("output file not found")

// SanitizeFilename removes characters that are illegal in file names,
// normalizes the result to NFC and trims surrounding whitespace.
// It never fails and SanitizeFilename(SanitizeFilename(s)) == SanitizeFilename(s).
func SanitizeFilename(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(IllegalFileNameChars, r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(norm.NFC.String(stripped))
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dirPath)
	}
	return nil
}

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// FindOutputFile returns the finished file named "<label>.<ext>" in dir.
// Partial downloads are ignored. When several extensions exist the
// lexically first one wins so the answer is stable.
func FindOutputFile(dir, label string) (string, error) {
	if label == "" {
		return "", fmt.Errorf("label is empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if isPartialDownload(name) {
			continue
		}
		ext := filepath.Ext(name)
		if ext == "" || strings.TrimSuffix(name, ext) != label {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, name))
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s", ErrOutputNotFound, filepath.Join(dir, label))
	}
	sort.Strings(candidates)
	return candidates[0], nil
}

// isPartialDownload checks if a filename belongs to an unfinished download
func isPartialDownload(filename string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

package download

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// Default yt-dlp selection
const (
	DefaultFormat            = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	DefaultMergeOutputFormat = "mp4"
)

var (
	// ErrEmptyURL is returned for a request without a source URL
	ErrEmptyURL = errors.New("video URL is empty")
	// ErrEmptyLabel is returned for a request without an output label
	ErrEmptyLabel = errors.New("output label is empty")
)

// Downloader fetches one video into a folder
type Downloader interface {
	Download(ctx context.Context, req Request) (Result, error)
}

// Request describes a single download
type Request struct {
	URL               string
	Folder            string
	Label             string // output file name without extension
	Format            string // yt-dlp format selector, ignored by Native
	MergeOutputFormat string
}

// Result describes a finished download
type Result struct {
	OutputPath string
}

// Validate checks that the request can be executed
func (r Request) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return ErrEmptyURL
	}
	if strings.TrimSpace(r.Label) == "" {
		return ErrEmptyLabel
	}
	return nil
}

// OutputTemplate returns the yt-dlp output template for the request
func (r Request) OutputTemplate() string {
	return filepath.Join(r.Folder, r.Label+".%(ext)s")
}

func (r Request) withDefaults() Request {
	if r.Format == "" {
		r.Format = DefaultFormat
	}
	if r.MergeOutputFormat == "" {
		r.MergeOutputFormat = DefaultMergeOutputFormat
	}
	if r.Folder == "" {
		r.Folder = "."
	}
	return r
}

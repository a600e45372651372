package platform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/yt-batch/internal/model"
)

// List file defaults
const (
	DefaultLinksFile = "video_links.json"
	linksIndent      = "  "
)

// ErrMalformedEntry is returned for list entries that are not a single title/URL pair
var ErrMalformedEntry = errors.New("malformed list entry")

// ReadLinks loads a list file: a JSON array of single-key {title: url} objects
func ReadLinks(path string) ([]model.Link, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	links, err := DecodeLinks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return links, nil
}

// DecodeLinks parses list file content. Entries with zero or several keys,
// non-string values or an empty URL are rejected.
func DecodeLinks(r io.Reader) ([]model.Link, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse list file: %w", err)
	}

	links := make([]model.Link, 0, len(raw))
	for i, entry := range raw {
		link, err := decodeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		links = append(links, link)
	}
	return links, nil
}

// decodeEntry walks the object token by token so duplicate keys are counted
func decodeEntry(raw json.RawMessage) (model.Link, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return model.Link{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return model.Link{}, fmt.Errorf("%w: expected an object", ErrMalformedEntry)
	}

	var link model.Link
	keys := 0
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return model.Link{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
		}
		key, _ := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return model.Link{}, fmt.Errorf("%w: value for %q is not a string", ErrMalformedEntry, key)
		}

		keys++
		link = model.Link{Title: key, URL: value}
	}

	switch {
	case keys == 0:
		return model.Link{}, fmt.Errorf("%w: object has no title", ErrMalformedEntry)
	case keys > 1:
		return model.Link{}, fmt.Errorf("%w: object has %d keys, expected 1", ErrMalformedEntry, keys)
	case strings.TrimSpace(link.URL) == "":
		return model.Link{}, fmt.Errorf("%w: empty URL for %q", ErrMalformedEntry, link.Title)
	}
	return link, nil
}

// WriteLinks stores links as a list file, replacing path atomically
func WriteLinks(path string, links []model.Link) error {
	dir := filepath.Dir(path)
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := EncodeLinks(tmp, links); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), DefaultFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// EncodeLinks writes links as an indented JSON array of {title: url} objects
func EncodeLinks(w io.Writer, links []model.Link) error {
	entries := make([]map[string]string, 0, len(links))
	for _, link := range links {
		entries = append(entries, map[string]string{link.Title: link.URL})
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", linksIndent)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode list file: %w", err)
	}
	return nil
}

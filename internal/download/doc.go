// Package download turns a single video URL into a file named after its
// display label. Two backends are provided: YTDLP drives the yt-dlp binary
// through github.com/lrstanley/go-ytdlp, Native streams progressive formats
// with github.com/kkdai/youtube/v2. WithRetry adds bounded retries on top of
// either one.
package download

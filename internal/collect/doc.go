// Package collect builds list files by scraping a channel's video listing
// with a headless Chrome driven through github.com/chromedp/chromedp.
package collect

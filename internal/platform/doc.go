// Package platform contains OS integration and external tooling glue:
// filesystem helpers and filename sanitization, the JSON list file codec,
// terminal prompts, the per-folder run lock and playlist listing via ytdlp.
package platform

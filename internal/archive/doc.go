// Package archive records completed downloads in a SQLite database so later
// runs over the same list can skip them.
//
// Rows are keyed by target reference (the video URL). The schema is created
// from schema.sql on first open; a version mismatch is reported with
// ErrSchemaMismatch and the file has to be removed to adopt the new schema.
package archive

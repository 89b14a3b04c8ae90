// Package capture resolves the best-effort capture timestamp of a single
// media file.
//
// Resolution follows a priority order: embedded EXIF metadata, then a
// timestamp encoded in the filename, then the file's modification time.
package capture

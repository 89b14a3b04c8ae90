// Package exifdata extracts embedded EXIF metadata from an image into a flat
// tag name to value mapping.
//
// Tag naming is owned by the decoding library (goexif); tags the library has
// no name for are keyed by their raw identifier. A file without metadata
// yields an empty mapping, not an error.
package exifdata

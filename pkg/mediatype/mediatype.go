// Package mediatype classifies media files by extension.
package mediatype

import (
	"path/filepath"
	"strings"
)

// Kind is a coarse media classification.
type Kind string

const (
	KindPhoto   Kind = "photo"
	KindVideo   Kind = "video"
	KindUnknown Kind = "unknown"
)

var kindByExt = map[string]Kind{
	".jpg":  KindPhoto,
	".jpeg": KindPhoto,
	".png":  KindPhoto,
	".gif":  KindPhoto,
	".webp": KindPhoto,
	".heic": KindPhoto,
	".tif":  KindPhoto,
	".tiff": KindPhoto,
	".bmp":  KindPhoto,

	".mp4":  KindVideo,
	".mov":  KindVideo,
	".m4v":  KindVideo,
	".mkv":  KindVideo,
	".avi":  KindVideo,
	".webm": KindVideo,
	".mts":  KindVideo,
	".3gp":  KindVideo,
}

// Detect classifies path by its extension, case-insensitively.
func Detect(path string) Kind {
	if k, ok := kindByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return k
	}
	return KindUnknown
}

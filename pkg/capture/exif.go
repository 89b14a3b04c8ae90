package capture

import (
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/rwcarlsen/goexif/exif"
)

// EXIF DateTime values carry no timezone; they are interpreted as Local.
const exifTimeLayout = "2006:01:02 15:04:05"

var exifTimeTags = []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized, exif.DateTime}

// ExifTime extracts the embedded capture timestamp from an image stream.
// Tag priority is DateTimeOriginal, then DateTimeDigitized, then DateTime.
func ExifTime(r io.Reader) (time.Time, bool) {
	x, err := exif.Decode(r)
	if err != nil && exif.IsCriticalError(err) {
		log.Debug().Err(err).Msg("exif decode failed")
		return time.Time{}, false
	}

	for _, name := range exifTimeTags {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			continue
		}
		if t, parseErr := time.ParseInLocation(exifTimeLayout, s, time.Local); parseErr == nil {
			return t, true
		}
	}

	// The library's own lookup handles sub-second and timezone refinements.
	if t, err := x.DateTime(); err == nil {
		return t, true
	}

	return time.Time{}, false
}

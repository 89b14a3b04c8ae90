package exifdata

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"
)

func init() {
	// Register maker note parsers for better camera support.
	exif.RegisterParsers(mknote.All...)
}

// Fields maps EXIF tag names to their decoded values.
//
// Known tags are keyed by goexif's field names. Tags goexif's name table does
// not know are keyed by their raw identifier, formatted as 0x%04x.
type Fields map[string]string

// Get returns the value for name, or fallback when the tag is absent.
func (f Fields) Get(name, fallback string) string {
	if v, ok := f[name]; ok {
		return v
	}
	return fallback
}

// Lookup returns the value for name and whether the tag is present.
func (f Fields) Lookup(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

// Names returns all tag names in sorted order.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode extracts EXIF metadata from an image stream.
//
// A stream without usable metadata (non-image bytes, or an image without an
// EXIF block) yields an empty mapping, not an error. Non-critical decode
// errors leave a partially-populated result, which is still walked.
func Decode(r io.Reader) (Fields, error) {
	x, err := exif.Decode(r)
	if err != nil && exif.IsCriticalError(err) {
		return Fields{}, nil
	}

	w := &walker{fields: Fields{}, seen: map[*tiff.Tag]bool{}}
	_ = x.Walk(w)

	// goexif drops tags its name table does not know from the walked set.
	// Recover them from IFD0 and key them by raw identifier. Sub-IFD tags are
	// always named by the table, so IFD0 is the only place unnamed tags can
	// surface.
	if x.Tiff != nil && len(x.Tiff.Dirs) > 0 {
		for _, tag := range x.Tiff.Dirs[0].Tags {
			if w.seen[tag] {
				continue
			}
			w.fields[fmt.Sprintf("0x%04x", tag.Id)] = tagValue(tag)
		}
	}

	return w.fields, nil
}

// DecodeFile opens path and extracts its EXIF metadata.
func DecodeFile(path string) (Fields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// walker collects walked tags and remembers which *tiff.Tag values goexif
// named, so unnamed IFD0 tags can be told apart by pointer identity.
type walker struct {
	fields Fields
	seen   map[*tiff.Tag]bool
}

func (w *walker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.fields[string(name)] = tagValue(tag)
	w.seen[tag] = true
	return nil
}

func tagValue(tag *tiff.Tag) string {
	if s, err := tag.StringVal(); err == nil {
		return s
	}
	return tag.String()
}

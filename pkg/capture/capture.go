package capture

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/quidome/media-inspector-go/pkg/mediatype"
)

// Source identifies where a capture timestamp was derived from.
type Source string

const (
	SourceExif     Source = "exif"
	SourceFilename Source = "filename"
	SourceModTime  Source = "modtime"
	SourceNone     Source = "none"
)

// Resolution is a best-effort capture timestamp and its source.
type Resolution struct {
	Time   time.Time
	Source Source
}

// Options configures Resolve.
type Options struct {
	// Location applies to timestamps parsed from filenames, which carry no
	// timezone. If nil, time.Local is used.
	Location *time.Location

	// ExifProbe overrides the embedded-metadata probe.
	// If nil, ExifTime is used.
	ExifProbe func(r io.Reader) (time.Time, bool)
}

// Resolve returns the best-effort capture timestamp for a single file.
//
// Directories are rejected with fs.ErrInvalid. Stat and open errors
// propagate; everything past that is best-effort.
func Resolve(fsys fs.FS, path string, opts Options) (Resolution, error) {
	path = filepath.Clean(path)

	info, err := fs.Stat(fsys, path)
	if err != nil {
		return Resolution{}, err
	}
	if info.IsDir() {
		return Resolution{}, fs.ErrInvalid
	}

	probe := opts.ExifProbe
	if probe == nil {
		probe = ExifTime
	}

	// Video containers are not EXIF carriers; go straight to the fallbacks.
	if mediatype.Detect(path) != mediatype.KindVideo {
		f, openErr := fsys.Open(path)
		if openErr != nil {
			return Resolution{}, openErr
		}
		t, ok := probe(f)
		_ = f.Close()
		if ok {
			return Resolution{Time: t, Source: SourceExif}, nil
		}
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	if t, ok := timeFromFilename(filepath.Base(path), loc); ok {
		return Resolution{Time: t, Source: SourceFilename}, nil
	}

	if mtime := info.ModTime(); !mtime.IsZero() {
		return Resolution{Time: mtime, Source: SourceModTime}, nil
	}

	return Resolution{Source: SourceNone}, nil
}

// ResolvePath is Resolve rooted at the directory containing path.
func ResolvePath(path string, opts Options) (Resolution, error) {
	return Resolve(os.DirFS(filepath.Dir(path)), filepath.Base(path), opts)
}

// Each pattern captures year, month and day, optionally followed by hour,
// minute and second, as consecutive groups. Missing groups mean midnight.
var filenamePatterns = []*regexp.Regexp{
	// IMG_20240102_030405.jpg, VID_20240102_030405.mp4
	regexp.MustCompile(`(?i)^(?:IMG|VID)_(\d{4})(\d{2})(\d{2})_(\d{2})(\d{2})(\d{2})`),
	// PXL_20240102_030405123.jpg
	regexp.MustCompile(`(?i)^PXL_(\d{4})(\d{2})(\d{2})_(\d{2})(\d{2})(\d{2})\d{3,}`),
	// 2024-01-02 03.04.05.jpg
	regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[ _](\d{2})\.(\d{2})\.(\d{2})`),
	// Screenshot_2024-01-02-03-04-05.png
	regexp.MustCompile(`(?i)^Screenshot_(\d{4})-(\d{2})-(\d{2})-(\d{2})-(\d{2})-(\d{2})`),
	// IMG-20240102-WA0001.jpg (WhatsApp, date only)
	regexp.MustCompile(`(?i)^IMG-(\d{4})(\d{2})(\d{2})-WA\d+`),
}

func timeFromFilename(name string, loc *time.Location) (time.Time, bool) {
	for _, re := range filenamePatterns {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}

		parts := make([]int, 6)
		for i, g := range m[1:] {
			n, err := strconv.Atoi(g)
			if err != nil {
				return time.Time{}, false
			}
			parts[i] = n
		}
		return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, loc), true
	}
	return time.Time{}, false
}

package capture_test

import (
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/quidome/media-inspector-go/pkg/capture"
)

func TestResolve_PriorityExifThenFilenameThenModTime(t *testing.T) {
	loc := time.FixedZone("TEST", 2*60*60)

	exifTime := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
	mtime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		path       string
		modTime    time.Time
		probeTime  time.Time
		probeFound bool
		wantTime   time.Time
		wantSource capture.Source
	}{
		{
			name:       "exif beats filename and mtime",
			path:       "root/IMG_20240102_030405.jpg",
			modTime:    mtime,
			probeTime:  exifTime,
			probeFound: true,
			wantTime:   exifTime,
			wantSource: capture.SourceExif,
		},
		{
			name:       "filename used when exif missing",
			path:       "root/IMG_20240102_030405.jpg",
			modTime:    mtime,
			wantTime:   time.Date(2024, 1, 2, 3, 4, 5, 0, loc),
			wantSource: capture.SourceFilename,
		},
		{
			name:       "mtime used when filename has no date",
			path:       "root/holiday.jpg",
			modTime:    mtime,
			wantTime:   mtime,
			wantSource: capture.SourceModTime,
		},
		{
			name:       "none when no exif, no filename date, zero mtime",
			path:       "root/holiday.jpg",
			modTime:    time.Time{},
			wantTime:   time.Time{},
			wantSource: capture.SourceNone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				tc.path: &fstest.MapFile{Data: []byte("x"), ModTime: tc.modTime},
			}

			probe := func(r io.Reader) (time.Time, bool) {
				_, _ = io.ReadAll(r)
				return tc.probeTime, tc.probeFound
			}

			res, err := capture.Resolve(fsys, tc.path, capture.Options{Location: loc, ExifProbe: probe})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Time.Equal(tc.wantTime) {
				t.Fatalf("unexpected Time\n got: %v\nwant: %v", res.Time, tc.wantTime)
			}
			if res.Source != tc.wantSource {
				t.Fatalf("unexpected Source\n got: %q\nwant: %q", res.Source, tc.wantSource)
			}
		})
	}
}

func TestResolve_FilenamePatterns(t *testing.T) {
	loc := time.FixedZone("TEST", -7*60*60)
	mtime := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	noExif := func(r io.Reader) (time.Time, bool) { return time.Time{}, false }

	testCases := []struct {
		name string
		path string
		want time.Time
	}{
		{
			name: "IMG_YYYYMMDD_HHMMSS",
			path: "root/IMG_20250102_030405.jpg",
			want: time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
		},
		{
			name: "VID_YYYYMMDD_HHMMSS",
			path: "root/VID_20250102_030405.mp4",
			want: time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
		},
		{
			name: "PXL_YYYYMMDD_HHMMSSfff",
			path: "root/PXL_20250102_030405123.jpg",
			want: time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
		},
		{
			name: "YYYY-MM-DD HH.MM.SS",
			path: "root/2025-01-02 03.04.05.jpg",
			want: time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
		},
		{
			name: "IMG-YYYYMMDD-WA0001 date only",
			path: "root/IMG-20250102-WA0001.jpg",
			want: time.Date(2025, 1, 2, 0, 0, 0, 0, loc),
		},
		{
			name: "Screenshot_YYYY-MM-DD-HH-MM-SS",
			path: "root/Screenshot_2025-01-02-03-04-05.png",
			want: time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				tc.path: &fstest.MapFile{Data: []byte("x"), ModTime: mtime},
			}

			res, err := capture.Resolve(fsys, tc.path, capture.Options{Location: loc, ExifProbe: noExif})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Source != capture.SourceFilename {
				t.Fatalf("expected filename source, got %q", res.Source)
			}
			if !res.Time.Equal(tc.want) {
				t.Fatalf("unexpected Time\n got: %v\nwant: %v", res.Time, tc.want)
			}
		})
	}
}

func TestResolve_VideoSkipsExifProbe(t *testing.T) {
	loc := time.FixedZone("TEST", 0)
	fsys := fstest.MapFS{
		"root/VID_20240102_030405.mp4": &fstest.MapFile{Data: []byte("x")},
	}

	calls := 0
	probe := func(r io.Reader) (time.Time, bool) {
		calls++
		return time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), true
	}

	res, err := capture.Resolve(fsys, "root/VID_20240102_030405.mp4", capture.Options{Location: loc, ExifProbe: probe})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected probe to be skipped for video, got %d calls", calls)
	}
	if res.Source != capture.SourceFilename {
		t.Fatalf("expected filename source, got %q", res.Source)
	}
}

func TestResolve_MissingFileReturnsError(t *testing.T) {
	fsys := fstest.MapFS{}

	_, err := capture.Resolve(fsys, "root/missing.jpg", capture.Options{})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestResolve_DirectoryReturnsError(t *testing.T) {
	fsys := fstest.MapFS{
		"root": &fstest.MapFile{Mode: fs.ModeDir},
	}

	_, err := capture.Resolve(fsys, "root", capture.Options{})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, fs.ErrInvalid) {
		t.Fatalf("expected fs.ErrInvalid, got %v", err)
	}
}

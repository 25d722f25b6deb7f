package exif

import "errors"

// Extraction failures. All three abort the whole parse: a session
// either yields the complete field list or nothing.
var (
	// ErrFormat means the buffer does not start with a JPEG SOI marker.
	ErrFormat = errors.New("not a JPEG file")

	// ErrSegment means no EXIF-tagged APP1 segment was found before the
	// scan ran off the buffer or hit the end-of-image marker.
	ErrSegment = errors.New("no EXIF segment found")

	// ErrHeader means the TIFF structure is invalid: bad byte-order
	// mark, bad magic number, or a directory/offset past the buffer end.
	ErrHeader = errors.New("invalid TIFF structure")
)

package exif

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// JPEG markers and the EXIF APP1 signature.
// https://www.media.mit.edu/pia/Research/deepview/exif.html
const (
	markerPrefix byte = 0xFF
	markerSOI    byte = 0xD8
	markerEOI    byte = 0xD9
	markerAPP1   byte = 0xE1
)

var exifHeader = []byte("Exif\x00\x00")

// findTIFFHeader walks the JPEG marker segments of data and returns the
// absolute offset where the embedded TIFF header begins. Only the first
// APP1 segment carrying the "Exif\0\0" signature is used; other APP1
// payloads (XMP lives there too) are skipped. The scan stops without
// success at the end-of-image marker or at the first byte pair that is
// not a marker.
func findTIFFHeader(data []byte) (int, error) {
	if len(data) < 2 || data[0] != markerPrefix || data[1] != markerSOI {
		return 0, fmt.Errorf("%w: missing SOI marker", ErrFormat)
	}

	i := 2
	for {
		// marker (2 bytes) + segment length (2 bytes)
		if i+4 > len(data) {
			return 0, fmt.Errorf("%w: scan reached end of buffer", ErrSegment)
		}
		if data[i] != markerPrefix {
			return 0, fmt.Errorf("%w: non-marker bytes at offset %d", ErrSegment, i)
		}
		marker := data[i+1]
		if marker == markerEOI {
			return 0, fmt.Errorf("%w: reached end of image", ErrSegment)
		}

		// The length includes its own two bytes.
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if segLen < 2 {
			return 0, fmt.Errorf("%w: segment at offset %d has length %d", ErrSegment, i, segLen)
		}
		segStart := i + 4
		segEnd := i + 2 + segLen
		if segEnd > len(data) {
			return 0, fmt.Errorf("%w: segment at offset %d runs past buffer", ErrSegment, i)
		}

		if marker == markerAPP1 && segStart+len(exifHeader) <= segEnd &&
			bytes.Equal(data[segStart:segStart+len(exifHeader)], exifHeader) {
			// TIFF header begins right after the signature.
			return segStart + len(exifHeader), nil
		}

		i = segEnd
	}
}

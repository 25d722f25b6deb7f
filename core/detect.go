package core

import (
	"bytes"
	"io"
	"os"
	"strings"
)

// FormatID enumerates every format the tool recognises. Only JPEG
// carries patchable EXIF date/time fields; audio formats are routed to
// the audio tag handler, everything else is rejected with a clear
// message instead of a parse failure.
type FormatID string

const (
	FmtJPEG FormatID = "jpeg"
	FmtPNG  FormatID = "png"
	FmtTIFF FormatID = "tiff"

	FmtMP3  FormatID = "mp3"
	FmtFLAC FormatID = "flac"
	FmtOGG  FormatID = "ogg"
	FmtM4A  FormatID = "m4a"

	FmtUnknown FormatID = "unknown"
)

// extMap maps lowercase extensions to format IDs.
var extMap = map[string]FormatID{
	".jpg":  FmtJPEG,
	".jpeg": FmtJPEG,
	".png":  FmtPNG,
	".tiff": FmtTIFF,
	".tif":  FmtTIFF,

	".mp3":  FmtMP3,
	".flac": FmtFLAC,
	".ogg":  FmtOGG,
	".oga":  FmtOGG,
	".m4a":  FmtM4A,
	".aac":  FmtM4A,
}

// DetectFormat returns the FormatID for the given file, first by
// reading magic bytes and falling back to extension.
func DetectFormat(path string) (FormatID, error) {
	f, err := os.Open(path)
	if err != nil {
		return FmtUnknown, err
	}
	defer f.Close()

	buf := make([]byte, 16)
	n, err := io.ReadFull(f, buf)
	if err != nil && n == 0 {
		return FmtUnknown, err
	}
	buf = buf[:n]

	if id := DetectBytes(buf); id != FmtUnknown {
		return id, nil
	}

	// Fallback to extension
	dot := strings.LastIndex(path, ".")
	if dot >= 0 {
		ext := strings.ToLower(path[dot:])
		if id, ok := extMap[ext]; ok {
			return id, nil
		}
	}
	return FmtUnknown, nil
}

// DetectBytes identifies a format from the leading bytes of a buffer.
func DetectBytes(b []byte) FormatID {
	if len(b) < 4 {
		return FmtUnknown
	}
	switch {
	// JPEG: FF D8 FF
	case b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF:
		return FmtJPEG
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	case bytes.HasPrefix(b, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}):
		return FmtPNG
	// TIFF: 49 49 2A 00 (little-endian) or 4D 4D 00 2A (big-endian)
	case bytes.HasPrefix(b, []byte{0x49, 0x49, 0x2A, 0x00}) ||
		bytes.HasPrefix(b, []byte{0x4D, 0x4D, 0x00, 0x2A}):
		return FmtTIFF
	// MP3: ID3 tag or frame sync
	case bytes.HasPrefix(b, []byte("ID3")):
		return FmtMP3
	case b[0] == 0xFF && (b[1]&0xE0 == 0xE0):
		return FmtMP3
	// FLAC: fLaC
	case bytes.HasPrefix(b, []byte("fLaC")):
		return FmtFLAC
	// OGG: OggS
	case bytes.HasPrefix(b, []byte("OggS")):
		return FmtOGG
	// M4A/MP4: ftyp box at offset 4
	case len(b) >= 12 && bytes.Equal(b[4:8], []byte("ftyp")):
		return FmtM4A
	}
	return FmtUnknown
}

// MediaTypeFor returns the broad media category for a format.
func MediaTypeFor(id FormatID) string {
	switch id {
	case FmtJPEG, FmtPNG, FmtTIFF:
		return "image"
	case FmtMP3, FmtFLAC, FmtOGG, FmtM4A:
		return "audio"
	default:
		return "unknown"
	}
}

package exif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestScannerRejectsNonJPEG(t *testing.T) {
	for _, buf := range [][]byte{
		nil,
		{0xFF},
		{0x00, 0x01, 0x02, 0x03},
		{0x89, 0x50, 0x4E, 0x47}, // PNG signature
		{0xFF, 0xD9},             // EOI where SOI should be
	} {
		if _, err := findTIFFHeader(buf); !errors.Is(err, ErrFormat) {
			t.Fatalf("buffer % X: want ErrFormat, got %v", buf, err)
		}
	}
}

func TestScannerStopsAtEOI(t *testing.T) {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	b.Write([]byte{0xFF, 0xFE, 0x00, 0x04, 'h', 'i'}) // COM segment
	b.Write([]byte{0xFF, 0xD9})
	b.Write([]byte{0x00, 0x00}) // trailing data so the EOI pair is readable

	if _, err := findTIFFHeader(b.Bytes()); !errors.Is(err, ErrSegment) {
		t.Fatalf("want ErrSegment at EOI, got %v", err)
	}
}

func TestScannerStopsAtNonMarkerBytes(t *testing.T) {
	buf := []byte{0xFF, 0xD8, 0x12, 0x34, 0x00, 0x00}
	if _, err := findTIFFHeader(buf); !errors.Is(err, ErrSegment) {
		t.Fatalf("want ErrSegment on non-marker bytes, got %v", err)
	}
}

func TestScannerRunsOffBuffer(t *testing.T) {
	// APP0 whose declared length exceeds the buffer
	buf := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0xFF, 0xFF}
	if _, err := findTIFFHeader(buf); !errors.Is(err, ErrSegment) {
		t.Fatalf("want ErrSegment on truncated segment, got %v", err)
	}
}

func TestScannerSkipsNonExifAPP1(t *testing.T) {
	xmp := []byte("http://ns.adobe.com/xap/1.0/\x00<x/>")
	tiff := buildTIFF(binary.LittleEndian, true)

	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	b.Write([]byte{0xFF, 0xE1})
	binary.Write(&b, binary.BigEndian, uint16(2+len(xmp)))
	b.Write(xmp)
	b.Write([]byte{0xFF, 0xE1})
	binary.Write(&b, binary.BigEndian, uint16(2+6+len(tiff)))
	b.WriteString("Exif\x00\x00")
	b.Write(tiff)
	b.Write([]byte{0xFF, 0xD9})

	data := b.Bytes()
	off, err := findTIFFHeader(data)
	if err != nil {
		t.Fatalf("findTIFFHeader: %v", err)
	}
	if string(data[off:off+2]) != "II" {
		t.Fatalf("offset %d does not point at the TIFF byte-order mark", off)
	}
}

func TestScannerFindsExifAfterAPP0(t *testing.T) {
	jpeg := buildJPEG(binary.LittleEndian, true)

	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	b.Write([]byte{0xFF, 0xE0, 0x00, 0x10})
	b.WriteString("JFIF\x00")
	b.Write(make([]byte, 9)) // rest of the 16-byte APP0 payload
	b.Write(jpeg[2:])        // original stream minus its SOI

	off, err := findTIFFHeader(b.Bytes())
	if err != nil {
		t.Fatalf("findTIFFHeader: %v", err)
	}
	if got := string(b.Bytes()[off : off+2]); got != "II" {
		t.Fatalf("offset %d points at %q, want the byte-order mark", off, got)
	}
}

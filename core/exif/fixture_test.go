package exif

import (
	"bytes"
	"encoding/binary"
)

// Test fixtures: synthesized EXIF JPEGs with a known layout.
//
// TIFF block (offsets relative to the TIFF header):
//   0   byte-order mark, magic 42, first-IFD offset = 8
//   8   0th IFD: DateTime, ExifIFDPointer, GPSIFDPointer
//   50  Exif IFD: DateTimeOriginal, DateTimeDigitized
//   80  GPS IFD: GPSTimeStamp (+ GPSDateStamp unless withGPSDate=false)
//   …   value area: three 20-byte datetimes, 24 bytes of GPS rationals,
//       11-byte GPS date

const (
	fixDateTime          = "2024:03:15 14:30:45"
	fixDateTimeOriginal  = "2023:12:01 08:15:30"
	fixDateTimeDigitized = "2023:12:01 08:15:31"
	fixGPSDate           = "2024:03:15"
)

var fixGPSTime = []uint32{12, 1, 30, 1, 0, 1} // 12:30:00 as num/den pairs

func writeEntry(b *bytes.Buffer, bo binary.ByteOrder, tag, typ uint16, cnt, val uint32) {
	binary.Write(b, bo, tag)
	binary.Write(b, bo, typ)
	binary.Write(b, bo, cnt)
	binary.Write(b, bo, val)
}

func buildTIFF(bo binary.ByteOrder, withGPSDate bool) []byte {
	gpsCount := 1
	if withGPSDate {
		gpsCount = 2
	}

	ifd0Off := 8
	exifOff := ifd0Off + 2 + 3*12 + 4
	gpsOff := exifOff + 2 + 2*12 + 4
	dataOff := gpsOff + 2 + gpsCount*12 + 4

	dt0Off := dataOff
	dtOrigOff := dt0Off + 20
	dtDigOff := dtOrigOff + 20
	gpsTimeOff := dtDigOff + 20
	gpsDateOff := gpsTimeOff + 24

	var b bytes.Buffer
	if bo == binary.LittleEndian {
		b.WriteString("II")
	} else {
		b.WriteString("MM")
	}
	binary.Write(&b, bo, uint16(42))
	binary.Write(&b, bo, uint32(ifd0Off))

	// 0th IFD
	binary.Write(&b, bo, uint16(3))
	writeEntry(&b, bo, tagDateTime, typeAscii, 20, uint32(dt0Off))
	writeEntry(&b, bo, tagExifIFD, typeLong, 1, uint32(exifOff))
	writeEntry(&b, bo, tagGPSIFD, typeLong, 1, uint32(gpsOff))
	binary.Write(&b, bo, uint32(0))

	// Exif IFD
	binary.Write(&b, bo, uint16(2))
	writeEntry(&b, bo, tagDateTimeOriginal, typeAscii, 20, uint32(dtOrigOff))
	writeEntry(&b, bo, tagDateTimeDigitized, typeAscii, 20, uint32(dtDigOff))
	binary.Write(&b, bo, uint32(0))

	// GPS IFD
	binary.Write(&b, bo, uint16(gpsCount))
	writeEntry(&b, bo, tagGPSTimeStamp, typeRational, 3, uint32(gpsTimeOff))
	if withGPSDate {
		writeEntry(&b, bo, tagGPSDateStamp, typeAscii, 11, uint32(gpsDateOff))
	}
	binary.Write(&b, bo, uint32(0))

	// value area
	b.WriteString(fixDateTime + "\x00")
	b.WriteString(fixDateTimeOriginal + "\x00")
	b.WriteString(fixDateTimeDigitized + "\x00")
	for _, v := range fixGPSTime {
		binary.Write(&b, bo, v)
	}
	if withGPSDate {
		b.WriteString(fixGPSDate + "\x00")
	}
	return b.Bytes()
}

// wrapJPEG embeds a TIFF block into SOI + APP1/Exif + EOI.
func wrapJPEG(tiff []byte) []byte {
	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8})
	out.Write([]byte{0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(2+6+len(tiff)))
	out.WriteString("Exif\x00\x00")
	out.Write(tiff)
	out.Write([]byte{0xFF, 0xD9})
	return out.Bytes()
}

func buildJPEG(bo binary.ByteOrder, withGPSDate bool) []byte {
	return wrapJPEG(buildTIFF(bo, withGPSDate))
}

// buildInlineJPEG carries a single DateTime entry whose 3-byte value is
// stored inline in the 4-byte slot.
func buildInlineJPEG() []byte {
	var b bytes.Buffer
	bo := binary.LittleEndian
	b.WriteString("II")
	binary.Write(&b, bo, uint16(42))
	binary.Write(&b, bo, uint32(8))
	binary.Write(&b, bo, uint16(1))
	binary.Write(&b, bo, tagDateTime)
	binary.Write(&b, bo, typeAscii)
	binary.Write(&b, bo, uint32(3))
	b.WriteString("hi\x00\x00") // value lives in the slot itself
	binary.Write(&b, bo, uint32(0))
	return wrapJPEG(b.Bytes())
}

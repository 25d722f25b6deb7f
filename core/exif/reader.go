package exif

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ankit-chaubey/exif-date-surgery/core"
)

// TIFF value types.
// https://www.adobe.io/content/dam/udp/en/open/standards/tiff/TIFF6.pdf
const (
	typeAscii    uint16 = 2
	typeShort    uint16 = 3
	typeLong     uint16 = 4
	typeRational uint16 = 5
)

// Directory names as they appear in field descriptors.
const (
	ifd0th  = "0th"
	ifdExif = "Exif"
	ifdGPS  = "GPS"
)

// Sub-directory pointer tags, recognised in the 0th IFD only.
const (
	tagExifIFD uint16 = 0x8769
	tagGPSIFD  uint16 = 0x8825
)

// Date/time tags the reader retains. Everything else is read
// structurally (the 12-byte entry stride must stay correct) and
// discarded.
const (
	tagDateTime          uint16 = 0x0132
	tagDateTimeOriginal  uint16 = 0x9003
	tagDateTimeDigitized uint16 = 0x9004
	tagGPSTimeStamp      uint16 = 0x0007
	tagGPSDateStamp      uint16 = 0x001D
)

type tagInfo struct {
	name     string
	label    string
	kind     core.Kind
	tiffType uint16
}

// knownTags is the fixed whitelist, keyed by directory then tag.
var knownTags = map[string]map[uint16]tagInfo{
	ifd0th: {
		tagDateTime: {"DateTime", "Date modified", core.KindDatetime, typeAscii},
	},
	ifdExif: {
		tagDateTimeOriginal:  {"DateTimeOriginal", "Date taken", core.KindDatetime, typeAscii},
		tagDateTimeDigitized: {"DateTimeDigitized", "Date digitized", core.KindDatetime, typeAscii},
	},
	ifdGPS: {
		tagGPSDateStamp: {"GPSDateStamp", "GPS date (UTC)", core.KindDate, typeAscii},
		tagGPSTimeStamp: {"GPSTimeStamp", "GPS time (UTC)", core.KindTime, typeRational},
	},
}

// directoryReader decodes IFDs from a byte-order-aware TIFF structure.
// All offsets inside the TIFF block are relative to base; the fields it
// emits carry absolute offsets into data.
type directoryReader struct {
	data []byte
	base int
	bo   binary.ByteOrder
}

// readDateTimeFields parses the TIFF header at tiffStart, walks the 0th
// IFD and its Exif/GPS sub-directories, and returns every recognised
// date/time field. The parse is atomic: any structural fault yields an
// error and no fields.
func readDateTimeFields(data []byte, tiffStart int) ([]core.Field, binary.ByteOrder, error) {
	if tiffStart < 0 || tiffStart+8 > len(data) {
		return nil, nil, fmt.Errorf("%w: truncated TIFF header", ErrHeader)
	}

	var bo binary.ByteOrder
	switch {
	case data[tiffStart] == 'I' && data[tiffStart+1] == 'I':
		bo = binary.LittleEndian
	case data[tiffStart] == 'M' && data[tiffStart+1] == 'M':
		bo = binary.BigEndian
	default:
		return nil, nil, fmt.Errorf("%w: unknown byte-order mark %02X %02X",
			ErrHeader, data[tiffStart], data[tiffStart+1])
	}

	if magic := bo.Uint16(data[tiffStart+2 : tiffStart+4]); magic != 42 {
		return nil, nil, fmt.Errorf("%w: bad magic number %d", ErrHeader, magic)
	}

	r := &directoryReader{data: data, base: tiffStart, bo: bo}
	firstIFD := bo.Uint32(data[tiffStart+4 : tiffStart+8])

	var fields []core.Field
	if err := r.readIFD(firstIFD, ifd0th, &fields); err != nil {
		return nil, nil, err
	}
	return fields, bo, nil
}

// readIFD decodes one directory and recurses into Exif/GPS sub-IFDs.
// The trailing next-IFD offset is read but never followed: the
// thumbnail IFD is out of scope.
func (r *directoryReader) readIFD(rel uint32, ifd string, out *[]core.Field) error {
	dir := r.base + int(rel)
	if dir+2 > len(r.data) {
		return fmt.Errorf("%w: %s IFD offset %d past buffer", ErrHeader, ifd, rel)
	}
	count := int(r.bo.Uint16(r.data[dir : dir+2]))

	// count 12-byte entries plus the 4-byte next-IFD offset
	end := dir + 2 + count*12 + 4
	if end > len(r.data) {
		return fmt.Errorf("%w: %s IFD with %d entries runs past buffer", ErrHeader, ifd, count)
	}

	for i := 0; i < count; i++ {
		e := dir + 2 + i*12
		tag := r.bo.Uint16(r.data[e : e+2])
		typ := r.bo.Uint16(r.data[e+2 : e+4])
		cnt := r.bo.Uint32(r.data[e+4 : e+8])
		slot := e + 8

		if ifd == ifd0th && (tag == tagExifIFD || tag == tagGPSIFD) &&
			(typ == typeLong || typ == typeShort) {
			sub := r.bo.Uint32(r.data[slot : slot+4])
			if sub == 0 {
				continue // unset pointer
			}
			name := ifdExif
			if tag == tagGPSIFD {
				name = ifdGPS
			}
			if err := r.readIFD(sub, name, out); err != nil {
				return err
			}
			continue
		}

		def, ok := knownTags[ifd][tag]
		if !ok || def.tiffType != typ {
			continue
		}

		var (
			valOff int
			value  core.Value
			err    error
		)
		switch typ {
		case typeAscii:
			valOff, value, err = r.asciiValue(slot, cnt)
		case typeRational:
			if def.kind == core.KindTime && cnt != 3 {
				continue // GPSTimeStamp must be hour/minute/second
			}
			valOff, value, err = r.rationalValue(slot, cnt)
		}
		if err != nil {
			return err
		}

		*out = append(*out, core.Field{
			Label:       def.label,
			Name:        def.name,
			IFD:         ifd,
			Tag:         tag,
			Count:       cnt,
			ValueOffset: uint32(valOff),
			Value:       value,
			Kind:        def.kind,
		})
	}

	_ = r.bo.Uint32(r.data[dir+2+count*12 : end]) // next IFD, ignored
	return nil
}

// asciiValue resolves an ASCII entry. Values of up to 4 bytes live in
// the 4-byte slot itself; longer ones sit behind a TIFF-relative
// offset. Decoding stops at the first NUL or after count bytes.
func (r *directoryReader) asciiValue(slot int, cnt uint32) (int, core.Value, error) {
	off := slot
	if cnt > 4 {
		rel := r.bo.Uint32(r.data[slot : slot+4])
		off = r.base + int(rel)
	}
	if off < 0 || off+int(cnt) > len(r.data) {
		return 0, nil, fmt.Errorf("%w: ASCII value at %d runs past buffer", ErrHeader, off)
	}
	raw := r.data[off : off+int(cnt)]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return off, core.Ascii(string(raw)), nil
}

// rationalValue resolves a RATIONAL entry: always behind a pointer,
// count consecutive 8-byte numerator/denominator pairs.
func (r *directoryReader) rationalValue(slot int, cnt uint32) (int, core.Value, error) {
	rel := r.bo.Uint32(r.data[slot : slot+4])
	off := r.base + int(rel)
	if cnt == 0 || off < 0 || off+int(cnt)*8 > len(r.data) {
		return 0, nil, fmt.Errorf("%w: RATIONAL value at %d runs past buffer", ErrHeader, off)
	}
	rs := make(core.Rationals, cnt)
	for i := 0; i < int(cnt); i++ {
		p := off + i*8
		rs[i] = core.Rational{
			Num: r.bo.Uint32(r.data[p : p+4]),
			Den: r.bo.Uint32(r.data[p+4 : p+8]),
		}
	}
	return off, rs, nil
}

package exif

import (
	"encoding/binary"
	"fmt"

	"github.com/ankit-chaubey/exif-date-surgery/core"
)

// patchField re-encodes value into working at the exact byte range the
// field originally occupied. The buffer never grows or shrinks and the
// field's count never changes; every write is bounds-checked against
// the original range.
//
// ASCII replacements longer than count-1 bytes are silently truncated
// so the NUL terminator always fits; truncated reports when that
// happened so callers can surface a warning.
func patchField(working []byte, bo binary.ByteOrder, f core.Field, value core.Value) (truncated bool, err error) {
	switch v := value.(type) {
	case core.Ascii:
		return patchAscii(working, f, string(v))
	case core.Rationals:
		return false, patchRationals(working, bo, f, v)
	default:
		return false, fmt.Errorf("field %s: unsupported value shape %T", f.Name, value)
	}
}

func patchAscii(working []byte, f core.Field, s string) (bool, error) {
	off := int(f.ValueOffset)
	n := int(f.Count)
	if n == 0 {
		return false, nil
	}
	if off < 0 || off+n > len(working) {
		return false, fmt.Errorf("field %s: value range [%d,%d) outside buffer", f.Name, off, off+n)
	}

	b := []byte(s)
	truncated := len(b) > n-1
	if truncated {
		b = b[:n-1]
	}
	copy(working[off:], b)
	// terminator, then zero any remaining reserved bytes
	for i := off + len(b); i < off+n; i++ {
		working[i] = 0
	}
	return truncated, nil
}

// patchRationals writes each component as an exact integer rational
// x/1. GPSTimeStamp is the only rational field the whitelist knows, so
// the count is always 3; fractional seconds are not supported.
func patchRationals(working []byte, bo binary.ByteOrder, f core.Field, rs core.Rationals) error {
	if uint32(len(rs)) != f.Count {
		return fmt.Errorf("field %s: got %d components, want %d", f.Name, len(rs), f.Count)
	}
	off := int(f.ValueOffset)
	need := len(rs) * 8
	if off < 0 || off+need > len(working) {
		return fmt.Errorf("field %s: value range [%d,%d) outside buffer", f.Name, off, off+need)
	}
	for i, r := range rs {
		p := off + i*8
		bo.PutUint32(working[p:p+4], r.Num)
		bo.PutUint32(working[p+4:p+8], r.Den)
	}
	return nil
}

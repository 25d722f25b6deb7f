// Package exif edits the date/time metadata embedded in a JPEG's
// EXIF/TIFF structure without disturbing any other byte of the file.
//
// A Session owns an immutable original buffer and a mutable working
// copy of identical length. Fields are extracted once at load time;
// edits are re-encoded and written back into the working copy at the
// exact offsets the original values occupied, so the output differs
// from the input only inside the edited byte ranges.
package exif

import (
	"encoding/binary"
	"fmt"

	"github.com/ankit-chaubey/exif-date-surgery/core"
)

// Session is one load/edit/save cycle over a single JPEG buffer.
// It is not safe for concurrent use: there is exactly one mutator and
// one working buffer per session.
type Session struct {
	original []byte
	working  []byte
	bo       binary.ByteOrder
	fields   []core.Field
	norm     *normalizer
}

// Load scans data for the EXIF payload, walks its directories and
// returns a ready session. The parse is all-or-nothing: on any
// failure (ErrFormat, ErrSegment, ErrHeader) no session is returned.
func Load(data []byte) (*Session, error) {
	tiffStart, err := findTIFFHeader(data)
	if err != nil {
		return nil, err
	}
	fields, bo, err := readDateTimeFields(data, tiffStart)
	if err != nil {
		return nil, err
	}

	working := make([]byte, len(data))
	copy(working, data)

	return &Session{
		original: data,
		working:  working,
		bo:       bo,
		fields:   fields,
		norm:     newNormalizer(fields),
	}, nil
}

// Fields returns the editable date/time fields in document order.
func (s *Session) Fields() []core.Field {
	return s.fields
}

// Entries returns the fields paired with their host-local display strings.
func (s *Session) Entries() []core.FieldEntry {
	out := make([]core.FieldEntry, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, core.FieldEntry{Field: f, Display: s.norm.Display(f)})
	}
	return out
}

// Display renders one field in host-local form.
func (s *Session) Display(f core.Field) string {
	return s.norm.Display(f)
}

// Apply patches every field named in set into the working buffer, in
// field order. Values use the display formats; an empty value is a
// no-op and leaves the original bytes untouched. Returned warnings
// report non-fatal data loss (ASCII truncation). Unknown names are an
// error so a typo cannot silently drop an edit.
func (s *Session) Apply(set map[string]string) ([]string, error) {
	known := make(map[string]bool, len(s.fields))
	for _, f := range s.fields {
		known[f.Name] = true
	}
	for name := range set {
		if !known[name] {
			return nil, fmt.Errorf("no editable field named %q in this file", name)
		}
	}

	var warnings []string
	for _, f := range s.fields {
		input, ok := set[f.Name]
		if !ok || input == "" {
			continue
		}
		value, err := s.norm.Encode(f, input, set)
		if err != nil {
			return warnings, fmt.Errorf("%s: %w", f.Name, err)
		}
		truncated, err := patchField(s.working, s.bo, f, value)
		if err != nil {
			return warnings, err
		}
		if truncated {
			warnings = append(warnings,
				fmt.Sprintf("%s: value truncated to %d bytes", f.Name, f.Count-1))
		}
	}
	return warnings, nil
}

// Bytes returns the working buffer: identical to the input except
// within the byte ranges of edited fields.
func (s *Session) Bytes() []byte {
	return s.working
}

// Original returns the untouched input buffer.
func (s *Session) Original() []byte {
	return s.original
}

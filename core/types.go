// Package core defines the shared types and the format registry for
// EXIF Date Surgery.
package core

// Kind classifies what a date/time field holds.
type Kind string

const (
	KindDate     Kind = "date"     // calendar date only (GPSDateStamp)
	KindTime     Kind = "time"     // clock time only (GPSTimeStamp)
	KindDatetime Kind = "datetime" // combined date and time
)

// Value is the decoded payload of a TIFF entry. Exactly one concrete
// shape exists per field kind, so the patcher can match exhaustively.
type Value interface {
	isValue()
}

// Ascii is a NUL-terminated TIFF ASCII value, without the terminator.
type Ascii string

func (Ascii) isValue() {}

// Rational is a TIFF unsigned rational: numerator over denominator.
type Rational struct {
	Num uint32
	Den uint32
}

// Quotient returns Num/Den, or 0 when the denominator is 0.
func (r Rational) Quotient() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Rationals is an ordered rational sequence (GPSTimeStamp holds three).
type Rationals []Rational

func (Rationals) isValue() {}

// Ints returns the truncated quotient of every component.
func (rs Rationals) Ints() []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = int(r.Quotient())
	}
	return out
}

// Field describes one editable date/time value found in the file.
// ValueOffset addresses the original byte layout and stays fixed for
// the lifetime of a session; patches are written back to exactly this
// range and may never grow past the original Count.
type Field struct {
	Label       string // Human-readable label (e.g. "Date taken")
	Name        string // Canonical EXIF tag name (e.g. "DateTimeOriginal")
	IFD         string // Directory the tag lives in: "0th", "Exif", "GPS"
	Tag         uint16 // TIFF tag number
	Count       uint32 // TIFF value count (bytes for ASCII, pairs for rationals)
	ValueOffset uint32 // Absolute offset of the value bytes in the file buffer
	Value       Value  // Decoded payload
	Kind        Kind   // What the value represents
}

// FieldEntry pairs a field with its host-local display string.
type FieldEntry struct {
	Field
	Display string
}

// FieldReport holds everything extracted from a single file.
type FieldReport struct {
	FilePath string
	Format   string
	Fields   []FieldEntry
}

// MetaEntry is a generic key/value line for listings that are not
// patchable date/time fields (full EXIF dumps, audio tags).
type MetaEntry struct {
	Key      string
	Value    string
	Category string
}

// EditOptions holds the field changes for one edit operation.
type EditOptions struct {
	// Set maps a field Name to its replacement value in the display
	// formats: YYYY-MM-DDTHH:MM:SS, YYYY-MM-DD or HH:MM:SS. An empty
	// value leaves the field untouched.
	Set map[string]string
	// DryRun previews changes without writing.
	DryRun bool
}

package exif

import (
	"fmt"
	"strings"
	"time"

	"github.com/ankit-chaubey/exif-date-surgery/core"
)

// String formats at the two boundaries. The EXIF side is fixed by the
// standard; the display side is what the CLI accepts and prints.
const (
	wireDatetime = "2006:01:02 15:04:05"
	wireDate     = "2006:01:02"

	civilCombined = "2006-01-02T15:04:05"
	civilDate     = "2006-01-02"
	civilClock    = "15:04:05"
)

// normalizer reconciles EXIF's mixed timestamp semantics.
// DateTime/DateTimeOriginal/DateTimeDigitized are civil wall-clock
// values as authored by the camera and pass through with no zone
// conversion. GPSDateStamp/GPSTimeStamp are UTC: a GPS time is only
// meaningful once paired with a date, so the normalizer pairs it (GPS
// date, then any datetime in the field set, then the current date),
// lifts the pair to a UTC instant and converts with the host's zone
// rules. Saving applies the inverse pairing and conversion.
type normalizer struct {
	fields []core.Field
	loc    *time.Location
	now    func() time.Time
}

func newNormalizer(fields []core.Field) *normalizer {
	return &normalizer{fields: fields, loc: time.Local, now: time.Now}
}

// Display renders a field's stored value in host-local form.
func (n *normalizer) Display(f core.Field) string {
	switch f.Kind {
	case core.KindDatetime:
		s, ok := f.Value.(core.Ascii)
		if !ok {
			return ""
		}
		t, err := time.Parse(wireDatetime, string(s))
		if err != nil {
			return string(s) // unparseable, pass through
		}
		return t.Format(civilCombined)

	case core.KindDate:
		s, ok := f.Value.(core.Ascii)
		if !ok {
			return ""
		}
		d, err := time.Parse(wireDate, string(s))
		if err != nil {
			return string(s)
		}
		h, mi, sec := n.utcClock()
		inst := time.Date(d.Year(), d.Month(), d.Day(), h, mi, sec, 0, time.UTC)
		return inst.In(n.loc).Format(civilDate)

	case core.KindTime:
		rs, ok := f.Value.(core.Rationals)
		if !ok || len(rs) != 3 {
			return ""
		}
		hms := rs.Ints()
		y, mo, d := n.utcDate()
		inst := time.Date(y, mo, d, hms[0], hms[1], hms[2], 0, time.UTC)
		return inst.In(n.loc).Format(civilClock)
	}
	return ""
}

// Encode converts a locally-entered display string back into the
// stored value shape for f. pending carries the rest of the edit batch
// so that a GPS date and time edited together pair with each other
// rather than with stale stored values.
func (n *normalizer) Encode(f core.Field, input string, pending map[string]string) (core.Value, error) {
	input = strings.TrimSpace(input)

	switch f.Kind {
	case core.KindDatetime:
		t, err := parseCombined(input)
		if err != nil {
			return nil, err
		}
		return core.Ascii(t.Format(wireDatetime)), nil

	case core.KindDate:
		d, err := time.Parse(civilDate, input)
		if err != nil {
			return nil, fmt.Errorf("%q: want YYYY-MM-DD", input)
		}
		h, mi, sec := n.localClock(pending)
		inst := time.Date(d.Year(), d.Month(), d.Day(), h, mi, sec, 0, n.loc).UTC()
		return core.Ascii(inst.Format(wireDate)), nil

	case core.KindTime:
		h, mi, sec, err := parseClock(input)
		if err != nil {
			return nil, err
		}
		y, mo, d := n.localDate(pending)
		inst := time.Date(y, mo, d, h, mi, sec, 0, n.loc).UTC()
		return core.Rationals{
			{Num: uint32(inst.Hour()), Den: 1},
			{Num: uint32(inst.Minute()), Den: 1},
			{Num: uint32(inst.Second()), Den: 1},
		}, nil
	}
	return nil, fmt.Errorf("field %s has unknown kind %q", f.Name, f.Kind)
}

// utcDate finds the UTC calendar date to pair with a GPS time for
// display: the GPS date field, then any datetime field's date part,
// then today.
func (n *normalizer) utcDate() (int, time.Month, int) {
	if f := n.find(core.KindDate); f != nil {
		if s, ok := f.Value.(core.Ascii); ok {
			if d, err := time.Parse(wireDate, string(s)); err == nil {
				return d.Year(), d.Month(), d.Day()
			}
		}
	}
	if f := n.find(core.KindDatetime); f != nil {
		if s, ok := f.Value.(core.Ascii); ok {
			if t, err := time.Parse(wireDatetime, string(s)); err == nil {
				return t.Year(), t.Month(), t.Day()
			}
		}
	}
	now := n.now().UTC()
	return now.Year(), now.Month(), now.Day()
}

// utcClock finds the UTC clock to pair with a GPS date for display:
// the GPS time field, otherwise midnight.
func (n *normalizer) utcClock() (int, int, int) {
	if f := n.find(core.KindTime); f != nil {
		if rs, ok := f.Value.(core.Rationals); ok && len(rs) == 3 {
			hms := rs.Ints()
			return hms[0], hms[1], hms[2]
		}
	}
	return 0, 0, 0
}

// localDate mirrors utcDate on the save path: a pending GPS date edit
// wins, then the local display of the stored GPS date, then a pending
// or stored datetime's date part, then today.
func (n *normalizer) localDate(pending map[string]string) (int, time.Month, int) {
	if f := n.find(core.KindDate); f != nil {
		if in, ok := pending[f.Name]; ok && strings.TrimSpace(in) != "" {
			if d, err := time.Parse(civilDate, strings.TrimSpace(in)); err == nil {
				return d.Year(), d.Month(), d.Day()
			}
		}
		if d, err := time.Parse(civilDate, n.Display(*f)); err == nil {
			return d.Year(), d.Month(), d.Day()
		}
	}
	if f := n.find(core.KindDatetime); f != nil {
		if in, ok := pending[f.Name]; ok && strings.TrimSpace(in) != "" {
			if t, err := parseCombined(strings.TrimSpace(in)); err == nil {
				return t.Year(), t.Month(), t.Day()
			}
		}
		if t, err := parseCombined(n.Display(*f)); err == nil {
			return t.Year(), t.Month(), t.Day()
		}
	}
	now := n.now().In(n.loc)
	return now.Year(), now.Month(), now.Day()
}

// localClock mirrors utcClock on the save path.
func (n *normalizer) localClock(pending map[string]string) (int, int, int) {
	if f := n.find(core.KindTime); f != nil {
		if in, ok := pending[f.Name]; ok && strings.TrimSpace(in) != "" {
			if h, mi, sec, err := parseClock(strings.TrimSpace(in)); err == nil {
				return h, mi, sec
			}
		}
		if h, mi, sec, err := parseClock(n.Display(*f)); err == nil {
			return h, mi, sec
		}
	}
	return 0, 0, 0
}

// find returns the first field of the given kind, or nil.
func (n *normalizer) find(kind core.Kind) *core.Field {
	for i := range n.fields {
		if n.fields[i].Kind == kind {
			return &n.fields[i]
		}
	}
	return nil
}

// parseCombined accepts YYYY-MM-DDTHH:MM:SS, with seconds optional.
func parseCombined(s string) (time.Time, error) {
	if t, err := time.Parse(civilCombined, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%q: want YYYY-MM-DDTHH:MM:SS", s)
}

// parseClock accepts HH:MM:SS or HH:MM (seconds default to 00).
func parseClock(s string) (h, m, sec int, err error) {
	if t, perr := time.Parse(civilClock, s); perr == nil {
		return t.Hour(), t.Minute(), t.Second(), nil
	}
	if t, perr := time.Parse("15:04", s); perr == nil {
		return t.Hour(), t.Minute(), 0, nil
	}
	return 0, 0, 0, fmt.Errorf("%q: want HH:MM:SS", s)
}

// Package audio handles date metadata for audio formats: it views the
// recording date/year tags of MP3, FLAC, OGG and M4A files and edits
// the ID3v2 recording-time frames of MP3s. Audio containers re-write
// whole tag blocks, so unlike the JPEG core there is no byte-identity
// guarantee here.
package audio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"

	"github.com/ankit-chaubey/exif-date-surgery/core"
)

// dateFrames are the raw tag keys that carry date information across
// ID3v2.3/2.4, Vorbis comments and MP4 atoms.
var dateFrames = []string{
	"TDRC", "TYER", "TDAT", "TIME", "TDEN", "TDTG", // ID3v2
	"DATE", "date", "ORIGINALDATE", // Vorbis
	"\xa9day", // MP4
}

// ViewDates reads the date-bearing tags from an audio file.
func ViewDates(path string) ([]core.MetaEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not read tags: %w", err)
	}

	cat := string(t.Format())
	if cat == "" {
		cat = "Audio Tags"
	}

	var entries []core.MetaEntry
	add := func(key, val string) {
		if val != "" {
			entries = append(entries, core.MetaEntry{Key: key, Value: val, Category: cat})
		}
	}

	add("Title", t.Title())
	add("Artist", t.Artist())
	if y := t.Year(); y != 0 {
		add("Year", strconv.Itoa(y))
	}
	raw := t.Raw()
	for _, frame := range dateFrames {
		if v, ok := raw[frame]; ok {
			add(frame, fmt.Sprintf("%v", v))
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no date tags found")
	}
	return entries, nil
}

// EditDates updates the recording date of an MP3, saving to outPath.
// Recognised field names: Year (YYYY) and Date (YYYY-MM-DD, written to
// the ID3v2.4 recording-time frame).
func EditDates(path, outPath string, opts core.EditOptions) error {
	format, err := core.DetectFormat(path)
	if err != nil {
		return err
	}
	if format != core.FmtMP3 {
		return fmt.Errorf("date editing is only supported for MP3 (got %s)", format)
	}

	if opts.DryRun {
		fmt.Println("Dry-run: MP3 date frames would be updated:")
		for k, v := range opts.Set {
			fmt.Printf("  %s = %s\n", k, v)
		}
		return nil
	}

	out := core.ResolveOutPath(path, outPath)
	if path != out {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return err
		}
	}

	tg, err := id3v2.Open(out, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("could not open MP3: %w", err)
	}
	defer tg.Close()

	for k, v := range opts.Set {
		if v == "" {
			continue
		}
		switch strings.ToLower(k) {
		case "year":
			tg.SetYear(v)
		case "date":
			tg.AddTextFrame("TDRC", id3v2.EncodingUTF8, v)
		default:
			fmt.Printf("  Warning: unknown audio date field %q — skipped\n", k)
		}
	}

	return tg.Save()
}

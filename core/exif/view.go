package exif

import (
	"bytes"
	"fmt"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/ankit-chaubey/exif-date-surgery/core"
)

// ViewAll decodes every EXIF tag in data via goexif. This backs the
// read-only view verb; editing never goes through this path because
// goexif re-serialises directories instead of preserving the original
// byte layout.
func ViewAll(data []byte) ([]core.MetaEntry, error) {
	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("no EXIF metadata found")
	}
	w := &entryWalker{}
	x.Walk(w)
	return w.entries, nil
}

type entryWalker struct {
	entries []core.MetaEntry
}

func (w *entryWalker) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	val := tag.String()
	// Remove surrounding quotes from string values
	if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
		val = val[1 : len(val)-1]
	}
	w.entries = append(w.entries, core.MetaEntry{
		Key:      string(name),
		Value:    val,
		Category: "EXIF",
	})
	return nil
}

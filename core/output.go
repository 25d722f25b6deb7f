package core

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Printer handles all display output for the CLI.
type Printer struct {
	JSON    bool
	Verbose bool
	Writer  *os.File
}

// NewPrinter creates a default Printer writing to stdout.
func NewPrinter(jsonMode, verbose bool) *Printer {
	return &Printer{JSON: jsonMode, Verbose: verbose, Writer: os.Stdout}
}

// PrintFields renders the editable date/time fields of a file.
func (p *Printer) PrintFields(r *FieldReport) {
	if p.JSON {
		p.printFieldsJSON(r)
		return
	}
	p.printFieldsText(r)
}

func (p *Printer) printFieldsText(r *FieldReport) {
	fmt.Fprintf(p.Writer, "File  : %s\n", r.FilePath)
	fmt.Fprintf(p.Writer, "Format: %s\n", r.Format)
	if len(r.Fields) == 0 {
		fmt.Fprintln(p.Writer, "(no editable date/time fields found)")
		return
	}
	fmt.Fprintln(p.Writer)

	// Group by IFD
	groups := make(map[string][]FieldEntry)
	order := []string{}
	seen := map[string]bool{}
	for _, f := range r.Fields {
		if !seen[f.IFD] {
			seen[f.IFD] = true
			order = append(order, f.IFD)
		}
		groups[f.IFD] = append(groups[f.IFD], f)
	}

	for _, ifd := range order {
		fmt.Fprintf(p.Writer, "── %s IFD ──\n", ifd)
		for _, f := range groups[ifd] {
			fmt.Fprintf(p.Writer, "  %-20s %-20s (%s)\n", f.Name+":", f.Display, f.Label)
			if p.Verbose {
				fmt.Fprintf(p.Writer, "  %-20s tag=0x%04X count=%d offset=%d raw=%s\n",
					"", f.Tag, f.Count, f.ValueOffset, rawValueString(f.Value))
			}
		}
		fmt.Fprintln(p.Writer)
	}
}

func (p *Printer) printFieldsJSON(r *FieldReport) {
	type jsonField struct {
		Label       string      `json:"label"`
		Name        string      `json:"name"`
		IFD         string      `json:"ifd"`
		Tag         uint16      `json:"tag"`
		Count       uint32      `json:"count"`
		ValueOffset uint32      `json:"valueOffset"`
		Value       interface{} `json:"value"`
		Type        Kind        `json:"type"`
		Display     string      `json:"display"`
	}
	type jsonOutput struct {
		FilePath string      `json:"file"`
		Format   string      `json:"format"`
		Fields   []jsonField `json:"fields"`
	}

	out := jsonOutput{
		FilePath: r.FilePath,
		Format:   r.Format,
		Fields:   []jsonField{},
	}
	for _, f := range r.Fields {
		out.Fields = append(out.Fields, jsonField{
			Label:       f.Label,
			Name:        f.Name,
			IFD:         f.IFD,
			Tag:         f.Tag,
			Count:       f.Count,
			ValueOffset: f.ValueOffset,
			Value:       jsonValue(f.Value),
			Type:        f.Kind,
			Display:     f.Display,
		})
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(p.Writer, string(b))
}

// jsonValue renders a decoded value as the wire shape the descriptor
// promises: string for ASCII, integer sequence for rationals.
func jsonValue(v Value) interface{} {
	switch val := v.(type) {
	case Ascii:
		return string(val)
	case Rationals:
		return val.Ints()
	default:
		return nil
	}
}

func rawValueString(v Value) string {
	switch val := v.(type) {
	case Ascii:
		return fmt.Sprintf("%q", string(val))
	case Rationals:
		parts := make([]string, len(val))
		for i, r := range val {
			parts[i] = fmt.Sprintf("%d/%d", r.Num, r.Den)
		}
		return strings.Join(parts, " ")
	default:
		return "?"
	}
}

// PrintEntries renders generic key/value metadata lines grouped by category.
func (p *Printer) PrintEntries(path string, entries []MetaEntry) {
	if p.JSON {
		type jsonEntry struct {
			Key      string `json:"key"`
			Value    string `json:"value"`
			Category string `json:"category"`
		}
		out := struct {
			FilePath string      `json:"file"`
			Entries  []jsonEntry `json:"entries"`
		}{FilePath: path, Entries: []jsonEntry{}}
		for _, e := range entries {
			out.Entries = append(out.Entries, jsonEntry{e.Key, e.Value, e.Category})
		}
		b, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(p.Writer, string(b))
		return
	}

	fmt.Fprintf(p.Writer, "File  : %s\n\n", path)
	last := ""
	for _, e := range entries {
		if e.Category != last {
			fmt.Fprintf(p.Writer, "── %s ──\n", e.Category)
			last = e.Category
		}
		fmt.Fprintf(p.Writer, "  %-30s %s\n", e.Key+":", e.Value)
	}
}

// PrintSuccess prints a success message.
func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.Writer, "✓ "+msg)
}

// PrintInfo prints an info line (suppressed in JSON mode).
func (p *Printer) PrintInfo(msg string) {
	if !p.JSON {
		fmt.Fprintln(p.Writer, msg)
	}
}

// PrintWarning prints a non-fatal warning to stderr.
func PrintWarning(msg string) {
	fmt.Fprintln(os.Stderr, "! Warning: "+msg)
}

// PrintError prints an error to stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, "✗ Error: "+msg)
}

// ParseKV parses a "Key=Value" string.
func ParseKV(s string) (key, value string, ok bool) {
	idx := strings.Index(s, "=")
	if idx < 1 {
		return "", "", false
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), true
}

// ResolveOutPath returns dst if non-empty, otherwise src (in-place).
func ResolveOutPath(src, dst string) string {
	if dst == "" {
		return src
	}
	return dst
}

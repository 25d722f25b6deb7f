package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankit-chaubey/exif-date-surgery/core"
	"github.com/ankit-chaubey/exif-date-surgery/core/audio"
	"github.com/ankit-chaubey/exif-date-surgery/core/exif"
)

func usage() {
	fmt.Println(`Usage: datesurgery <command> [flags] <file>

Commands:
  fields   list the editable EXIF date/time fields (shown in local time)
  view     dump all EXIF tags
  edit     patch date/time fields, preserving every other byte of the file
  audio    view or edit the date tags of an audio file

Examples:
  datesurgery fields photo.jpg
  datesurgery fields -json -v photo.jpg
  datesurgery edit -set DateTimeOriginal=2024-03-15T14:30:46 photo.jpg
  datesurgery edit -out fixed.jpg -set GPSTimeStamp=13:00:00 photo.jpg
  datesurgery audio edit -set Date=2024-03-15 song.mp3

Edit values use local time: YYYY-MM-DDTHH:MM:SS for datetime fields,
YYYY-MM-DD for GPSDateStamp, HH:MM:SS for GPSTimeStamp. An empty value
leaves the field untouched.`)
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "fields":
		cmdFields(os.Args[2:])
	case "view":
		cmdView(os.Args[2:])
	case "edit":
		cmdEdit(os.Args[2:])
	case "audio":
		cmdAudio(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		log.Fatalf("unknown command %q (try: datesurgery help)", os.Args[1])
	}
}

// cliArgs holds the flags shared by the verbs. Parsing is positional
// and minimal on purpose.
type cliArgs struct {
	file    string
	out     string
	json    bool
	verbose bool
	dryRun  bool
	set     map[string]string
}

func parseArgs(args []string) cliArgs {
	a := cliArgs{set: map[string]string{}}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-json":
			a.json = true
		case "-v":
			a.verbose = true
		case "-dry-run":
			a.dryRun = true
		case "-out":
			i++
			if i >= len(args) {
				log.Fatal("-out needs a file path")
			}
			a.out = args[i]
		case "-set":
			i++
			if i >= len(args) {
				log.Fatal("-set needs Name=VALUE")
			}
			k, v, ok := core.ParseKV(args[i])
			if !ok {
				log.Fatalf("bad -set argument %q, want Name=VALUE", args[i])
			}
			a.set[k] = v
		default:
			if strings.HasPrefix(args[i], "-") {
				log.Fatalf("unknown flag %q", args[i])
			}
			if a.file != "" {
				log.Fatal("exactly one input file expected")
			}
			a.file = args[i]
		}
	}
	if a.file == "" {
		log.Fatal("no input file given")
	}
	return a
}

func requireJPEG(path string) {
	format, err := core.DetectFormat(path)
	if err != nil {
		log.Fatal(err)
	}
	if format != core.FmtJPEG {
		log.Fatalf("%s: not a JPEG file (detected: %s)", path, format)
	}
}

func cmdFields(args []string) {
	a := parseArgs(args)
	requireJPEG(a.file)

	data, err := os.ReadFile(a.file)
	if err != nil {
		log.Fatal(err)
	}

	p := core.NewPrinter(a.json, a.verbose)
	report := &core.FieldReport{FilePath: a.file, Format: "JPEG", Fields: []core.FieldEntry{}}

	// A failed parse is reported but not fatal: the report simply
	// carries an empty field set.
	s, err := exif.Load(data)
	if err != nil {
		p.PrintInfo("no editable date/time fields found: " + err.Error())
	} else {
		report.Fields = s.Entries()
	}
	p.PrintFields(report)
}

func cmdView(args []string) {
	a := parseArgs(args)
	requireJPEG(a.file)

	data, err := os.ReadFile(a.file)
	if err != nil {
		log.Fatal(err)
	}
	entries, err := exif.ViewAll(data)
	if err != nil {
		log.Fatal(err)
	}
	core.NewPrinter(a.json, a.verbose).PrintEntries(a.file, entries)
}

func cmdEdit(args []string) {
	a := parseArgs(args)
	requireJPEG(a.file)
	if len(a.set) == 0 {
		log.Fatal("edit needs at least one -set Name=VALUE")
	}

	data, err := os.ReadFile(a.file)
	if err != nil {
		log.Fatal(err)
	}
	s, err := exif.Load(data)
	if err != nil {
		log.Fatalf("no editable date/time fields found: %v", err)
	}

	p := core.NewPrinter(a.json, a.verbose)
	if a.dryRun {
		fmt.Println("Dry-run: these fields would be patched:")
		for _, f := range s.Fields() {
			if v, ok := a.set[f.Name]; ok && v != "" {
				fmt.Printf("  %-20s %s → %s\n", f.Name+":", s.Display(f), v)
			}
		}
		return
	}

	warnings, err := s.Apply(a.set)
	for _, w := range warnings {
		core.PrintWarning(w)
	}
	if err != nil {
		log.Fatal(err)
	}

	out := a.out
	if out == "" {
		out = defaultOutPath(a.file)
	}
	if err := os.WriteFile(out, s.Bytes(), 0644); err != nil {
		log.Fatal(err)
	}
	p.PrintSuccess(fmt.Sprintf("wrote %s (%d bytes, layout unchanged)", out, len(s.Bytes())))
}

func cmdAudio(args []string) {
	if len(args) < 1 {
		log.Fatal("usage: datesurgery audio view|edit [flags] <file>")
	}
	sub := args[0]
	a := parseArgs(args[1:])

	switch sub {
	case "view":
		entries, err := audio.ViewDates(a.file)
		if err != nil {
			log.Fatal(err)
		}
		core.NewPrinter(a.json, a.verbose).PrintEntries(a.file, entries)
	case "edit":
		if len(a.set) == 0 {
			log.Fatal("audio edit needs at least one -set Name=VALUE")
		}
		opts := core.EditOptions{Set: a.set, DryRun: a.dryRun}
		if err := audio.EditDates(a.file, a.out, opts); err != nil {
			log.Fatal(err)
		}
		if !a.dryRun {
			out := core.ResolveOutPath(a.file, a.out)
			core.NewPrinter(a.json, a.verbose).PrintSuccess("updated " + out)
		}
	default:
		log.Fatalf("unknown audio subcommand %q", sub)
	}
}

// defaultOutPath derives the output name when -out is not given, so an
// edit never overwrites its input by accident.
func defaultOutPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".edited" + ext
}

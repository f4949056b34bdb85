// Command optext recovers plain text from a symbol-encoded PDF and writes
// it to a UTF-8 text file. The output filename gets a timestamp suffix so
// repeated runs never overwrite earlier results.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tsawler/optext"
	"github.com/tsawler/optext/detect"
)

type options struct {
	inputPath  string
	outputPath string
	zoom       float64
	marker     rune
	useOCR     bool
	languages  string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "optext: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "optext: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: optext [flags] <input.pdf> [output.txt]\n")
		flag.PrintDefaults()
	}
	zoom := flag.Float64("zoom", 4.0, "Render zoom factor for the visual path")
	marker := flag.String("marker", "+", "Paragraph marker character")
	useOCR := flag.Bool("ocr", false, "Detect printed glyphs via OCR instead of QR codes")
	languages := flag.String("lang", "eng", "OCR languages, \"+\" separated (with -ocr)")
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing input path")
	}

	markerRune, size := utf8.DecodeRuneInString(*marker)
	if size == 0 || markerRune == utf8.RuneError {
		return options{}, fmt.Errorf("invalid marker %q", *marker)
	}

	opts.inputPath = flag.Arg(0)
	opts.outputPath = "result.txt"
	if flag.NArg() > 1 {
		opts.outputPath = flag.Arg(1)
	}
	opts.zoom = *zoom
	opts.marker = markerRune
	opts.useOCR = *useOCR
	opts.languages = *languages
	return opts, nil
}

func run(opts options) error {
	extractor := optext.Open(opts.inputPath).
		Zoom(opts.zoom).
		Marker(opts.marker)

	if opts.useOCR {
		config := detect.DefaultOCRConfig()
		if opts.languages != "" {
			config.Languages = strings.Split(opts.languages, "+")
		}
		extractor = extractor.WithDetector(detect.NewOCRDetectorWithConfig(config))
	}

	text, warnings, err := extractor.Text()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "optext: warning: %s\n", w)
	}

	outPath := timestampedPath(opts.outputPath, time.Now())
	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

// timestampedPath inserts a _YYMMDD_hhmmss suffix before the output file's
// extension, defaulting the extension to .txt.
func timestampedPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".txt"
	}
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	return fmt.Sprintf("%s_%s%s", stem, now.Format("060102_150405"), ext)
}

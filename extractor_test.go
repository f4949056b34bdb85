package optext

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"strings"
	"testing"

	"github.com/tsawler/optext/detect"
	"github.com/tsawler/optext/model"
)

// fakeSource is an in-memory PageSource. Rendered images encode the page
// index in their width so the fake detector can tell pages apart.
type fakeSource struct {
	embedded  []string // per page; "" means no text layer
	renderErr map[int]error
	textErr   map[int]error
}

func (s *fakeSource) PageCount() int {
	return len(s.embedded)
}

func (s *fakeSource) EmbeddedText(page int) (string, error) {
	if err := s.textErr[page]; err != nil {
		return "", err
	}
	return s.embedded[page], nil
}

func (s *fakeSource) Render(page int, zoom float64) (image.Image, error) {
	if err := s.renderErr[page]; err != nil {
		return nil, err
	}
	return image.NewRGBA(image.Rect(0, 0, page+1, 1)), nil
}

// fakeDetector serves canned detections keyed by the page index encoded in
// the image width.
type fakeDetector struct {
	perPage map[int][]detect.Detection
	err     error
	calls   int
}

func (d *fakeDetector) Detect(_ context.Context, img image.Image) ([]detect.Detection, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return d.perPage[img.Bounds().Dx()-1], nil
}

// symbolAt creates a detection whose square polygon is centered at (x, y)
func symbolAt(text string, x, y, size float64) detect.Detection {
	h := size / 2
	return detect.Detection{
		Text: text,
		Corners: model.Polygon{
			{X: x - h, Y: y - h},
			{X: x + h, Y: y - h},
			{X: x + h, Y: y + h},
			{X: x - h, Y: y + h},
		},
	}
}

func TestExtractor_EmbeddedTextPrecedence(t *testing.T) {
	// A page with an embedded text layer uses it verbatim; the visual path
	// is skipped entirely, even though the page has decodable symbols.
	source := &fakeSource{embedded: []string{"Hello"}}
	detector := &fakeDetector{perPage: map[int][]detect.Detection{
		0: {symbolAt("X", 0, 0, 10)},
	}}

	text, warnings, err := FromSource(source).WithDetector(detector).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Hello" {
		t.Errorf("Expected %q, got %q", "Hello", text)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if detector.calls != 0 {
		t.Errorf("Expected detector to be skipped, got %d calls", detector.calls)
	}
}

func TestExtractor_EmptyDetectionDegrades(t *testing.T) {
	// Zero detected symbols and no embedded text yields an empty string,
	// not an error, with a warning pointing at the zoom factor.
	source := &fakeSource{embedded: []string{""}}
	detector := &fakeDetector{}

	text, warnings, err := FromSource(source).WithDetector(detector).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0].Message, "no symbols detected") {
		t.Errorf("Unexpected warning: %s", warnings[0].Message)
	}
}

func TestExtractor_Scenario_HiBy(t *testing.T) {
	source := &fakeSource{embedded: []string{""}}
	detector := &fakeDetector{perPage: map[int][]detect.Detection{
		0: {
			symbolAt("H", 0, 0, 10),
			symbolAt("i", 10, 0, 10),
			symbolAt("+", 20, 0, 10),
			symbolAt("B", 0, 20, 10),
			symbolAt("y", 10, 20, 10),
		},
	}}

	text, warnings, err := FromSource(source).WithDetector(detector).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Hi\nBy" {
		t.Errorf("Expected %q, got %q", "Hi\nBy", text)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestExtractor_RoundTrip(t *testing.T) {
	// Known text, markers at the intended newlines, synthetic grid
	// coordinates, shuffled: the pipeline must reproduce the text with
	// markers replaced by line breaks.
	lines := []string{"THE QUICK", "BROWN FOX", "JUMPS"}

	var detections []detect.Detection
	for li, line := range lines {
		y := float64(100 + li*50)
		x := 0.0
		for _, r := range line {
			detections = append(detections, symbolAt(string(r), x, y, 20))
			x += 25
		}
		if li < len(lines)-1 {
			detections = append(detections, symbolAt("+", x, y, 20))
		}
	}

	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(detections), func(a, b int) {
		detections[a], detections[b] = detections[b], detections[a]
	})

	source := &fakeSource{embedded: []string{""}}
	detector := &fakeDetector{perPage: map[int][]detect.Detection{0: detections}}

	text, _, err := FromSource(source).WithDetector(detector).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := strings.Join(lines, "\n")
	if text != want {
		t.Errorf("Expected %q, got %q", want, text)
	}
}

func TestExtractor_PagesConcatenated(t *testing.T) {
	source := &fakeSource{embedded: []string{"", ""}}
	detector := &fakeDetector{perPage: map[int][]detect.Detection{
		0: {symbolAt("a", 0, 0, 10), symbolAt("b", 10, 0, 10)},
		1: {symbolAt("c", 0, 0, 10), symbolAt("d", 10, 0, 10)},
	}}

	// Default: no implicit break at a page boundary.
	text, _, err := FromSource(source).WithDetector(detector).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "abcd" {
		t.Errorf("Expected %q, got %q", "abcd", text)
	}

	// Configurable separator.
	text, _, err = FromSource(source).WithDetector(detector).PageSeparator("\n").Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "ab\ncd" {
		t.Errorf("Expected %q, got %q", "ab\ncd", text)
	}
}

func TestExtractor_PageSelection(t *testing.T) {
	source := &fakeSource{embedded: []string{"one", "two", "three"}}

	pages, _, err := FromSource(source).Pages(3, 1).PageTexts()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}
	if pages[0].Text != "three" || pages[1].Text != "one" {
		t.Errorf("Expected pages in selection order, got %q and %q",
			pages[0].Text, pages[1].Text)
	}
	if !pages[0].Embedded {
		t.Error("Expected embedded flag on text-layer page")
	}
}

func TestExtractor_PageSelectionOutOfRange(t *testing.T) {
	source := &fakeSource{embedded: []string{"one"}}

	_, _, err := FromSource(source).Pages(2).Text()
	if err == nil {
		t.Fatal("Expected error for out-of-range page")
	}
}

func TestExtractor_RenderFailureDegrades(t *testing.T) {
	// A failing page contributes empty text and a warning; the remaining
	// pages are still processed.
	source := &fakeSource{
		embedded:  []string{"", ""},
		renderErr: map[int]error{0: errors.New("raster backend down")},
	}
	detector := &fakeDetector{perPage: map[int][]detect.Detection{
		1: {symbolAt("z", 0, 0, 10)},
	}}

	text, warnings, err := FromSource(source).WithDetector(detector).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "z" {
		t.Errorf("Expected %q, got %q", "z", text)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "render failed") {
		t.Errorf("Expected render warning, got %v", warnings)
	}
}

func TestExtractor_DetectorFailureDegrades(t *testing.T) {
	source := &fakeSource{embedded: []string{""}}
	detector := &fakeDetector{err: errors.New("backend error")}

	text, warnings, err := FromSource(source).WithDetector(detector).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "symbol detection failed") {
		t.Errorf("Expected detection warning, got %v", warnings)
	}
}

func TestExtractor_EmbeddedTextErrorFallsBack(t *testing.T) {
	source := &fakeSource{
		embedded: []string{""},
		textErr:  map[int]error{0: errors.New("text layer corrupt")},
	}
	detector := &fakeDetector{perPage: map[int][]detect.Detection{
		0: {symbolAt("k", 0, 0, 10)},
	}}

	text, warnings, err := FromSource(source).WithDetector(detector).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "k" {
		t.Errorf("Expected fallback to visual path, got %q", text)
	}
	if len(warnings) != 1 {
		t.Errorf("Expected 1 warning for the failed text layer, got %d", len(warnings))
	}
}

func TestExtractor_CustomMarker(t *testing.T) {
	source := &fakeSource{embedded: []string{""}}
	detector := &fakeDetector{perPage: map[int][]detect.Detection{
		0: {
			symbolAt("a", 0, 0, 10),
			symbolAt("#", 10, 0, 10),
			symbolAt("b", 20, 0, 10),
		},
	}}

	text, _, err := FromSource(source).WithDetector(detector).Marker('#').Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "a\nb" {
		t.Errorf("Expected %q, got %q", "a\nb", text)
	}
}

func TestExtractor_InvalidZoom(t *testing.T) {
	source := &fakeSource{embedded: []string{"x"}}

	_, _, err := FromSource(source).Zoom(-1).Text()
	if err == nil {
		t.Fatal("Expected error for negative zoom")
	}
}

func TestExtractor_NoFilename(t *testing.T) {
	_, _, err := Open("").Text()
	if err == nil {
		t.Fatal("Expected error for missing filename")
	}
}

func TestExtractor_ChainDoesNotMutate(t *testing.T) {
	source := &fakeSource{embedded: []string{""}}
	detector := &fakeDetector{perPage: map[int][]detect.Detection{
		0: {
			symbolAt("a", 0, 0, 10),
			symbolAt("+", 10, 0, 10),
		},
	}}

	base := FromSource(source).WithDetector(detector)
	derived := base.Marker('#')

	if base.options.marker != '+' {
		t.Error("Configuring a derived extractor mutated the base")
	}
	if derived.options.marker != '#' {
		t.Error("Derived extractor missing its configuration")
	}
}

func TestExtractor_PageCount(t *testing.T) {
	source := &fakeSource{embedded: []string{"a", "b", "c"}}

	count, err := FromSource(source).PageCount()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 pages, got %d", count)
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Page: 1, Message: "no symbols detected"}
	if w.String() != "page 2: no symbols detected" {
		t.Errorf("Unexpected warning string: %s", w.String())
	}

	doc := Warning{Page: -1, Message: "document truncated"}
	if doc.String() != "document truncated" {
		t.Errorf("Unexpected document warning string: %s", doc.String())
	}
}

func TestFormatWarnings(t *testing.T) {
	if FormatWarnings(nil) != "" {
		t.Error("Expected empty string for no warnings")
	}

	warnings := []Warning{
		{Page: 0, Message: "first"},
		{Page: 2, Message: "second"},
	}
	want := "page 1: first; page 3: second"
	if got := FormatWarnings(warnings); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on error")
		}
	}()
	Must(0, fmt.Errorf("boom"))
}

func TestMustText(t *testing.T) {
	if got := MustText("ok", nil, nil); got != "ok" {
		t.Errorf("Expected %q, got %q", "ok", got)
	}
}

package layout

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/optext/model"
)

// DefaultMarker is the conventional paragraph marker character.
const DefaultMarker = '+'

// Assembler concatenates ordered rows into a single text string.
//
// Rows are a detection and ordering aid only, not an output delimiter: a
// single paragraph may span many rows, and row boundaries fall at arbitrary
// wrap points. No line break is inserted between rows. The sole break
// signal is the marker character embedded in the symbol stream by the
// document's author; each occurrence becomes a line break in the output and
// the marker itself is discarded. All other characters are emitted
// literally, in reading order.
type Assembler struct {
	marker rune
}

// NewAssembler creates an assembler using DefaultMarker.
func NewAssembler() *Assembler {
	return &Assembler{marker: DefaultMarker}
}

// NewAssemblerWithMarker creates an assembler with a custom marker character.
func NewAssemblerWithMarker(marker rune) *Assembler {
	return &Assembler{marker: marker}
}

// Marker returns the assembler's marker character.
func (a *Assembler) Marker() rune {
	return a.marker
}

// Assemble produces the text of the given rows, which must already be in
// reading order. The result is NFC-normalized, since decoded payloads can
// arrive in decomposed form.
func (a *Assembler) Assemble(rows []model.Row) string {
	if len(rows) == 0 {
		return ""
	}

	marker := string(a.marker)
	var sb strings.Builder
	for _, row := range rows {
		for _, sym := range row.Symbols {
			if sym.Text == marker {
				sb.WriteByte('\n')
				continue
			}
			sb.WriteString(sym.Text)
		}
	}

	return norm.NFC.String(sb.String())
}

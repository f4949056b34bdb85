package layout

import (
	"sort"

	"github.com/tsawler/optext/model"
)

// OrderRows imposes the total reading order on clustered rows: rows sorted
// by ascending YCenter (top to bottom), symbols within each row sorted by
// ascending X (left to right). Both sorts are stable, so YCenter ties keep
// the order clustering produced them in; true ties should not occur given
// the tolerance-based grouping.
//
// The input is not modified. The returned order IS the reading order and
// is handed unchanged to the assembler.
func OrderRows(rows []model.Row) []model.Row {
	if len(rows) == 0 {
		return nil
	}

	ordered := make([]model.Row, len(rows))
	for i, row := range rows {
		symbols := make([]model.Symbol, len(row.Symbols))
		copy(symbols, row.Symbols)
		sort.SliceStable(symbols, func(a, b int) bool {
			return symbols[a].Position.X < symbols[b].Position.X
		})
		ordered[i] = model.Row{Symbols: symbols, YCenter: row.YCenter}
	}

	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].YCenter < ordered[b].YCenter
	})

	return ordered
}

// ReadingOrder returns all symbols of the ordered rows as a single flat
// sequence, row-major.
func ReadingOrder(rows []model.Row) []model.Symbol {
	var result []model.Symbol
	for _, row := range rows {
		result = append(result, row.Symbols...)
	}
	return result
}

// Package layout reconstructs reading order from unordered decoded symbols.
//
// Symbol detection yields an unordered set of (character, position) pairs;
// this package recovers the original linear text from their spatial
// arrangement alone, in three steps:
//
//   - [RowClusterer] - groups symbols into horizontal rows, tolerant of
//     detection jitter and mild page skew
//   - [OrderRows] - orders rows top to bottom and symbols left to right
//   - [Assembler] - concatenates the ordered symbols, converting the
//     explicit marker character into line breaks
//
// The clustering tolerance is derived from the median symbol height, so the
// same configuration works at any render zoom:
//
//	rows := layout.NewRowClusterer().Cluster(symbols)
//	text := layout.NewAssembler().Assemble(layout.OrderRows(rows))
package layout

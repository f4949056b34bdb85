package layout

import (
	"sort"

	"github.com/tsawler/optext/model"
)

// RowConfig holds configuration for row clustering.
type RowConfig struct {
	// HeightTolerance is the Y-distance tolerance for grouping symbols into
	// rows, as a fraction of the median symbol height (default: 0.5).
	// Deriving the tolerance from observed symbol heights keeps clustering
	// resolution-independent: symbol pixel size scales with the render zoom,
	// and the tolerance scales with it.
	HeightTolerance float64

	// MinTolerance is the lower bound for the clustering tolerance in
	// pixels (default: 5.0). It protects against implausibly tight
	// tolerances when detected symbols are very small.
	MinTolerance float64
}

// DefaultRowConfig returns sensible default configuration.
func DefaultRowConfig() RowConfig {
	return RowConfig{
		HeightTolerance: 0.5,
		MinTolerance:    5.0,
	}
}

// RowClusterer partitions a page's unordered symbol set into rows so that
// symbols on the same visual line of text land in the same row, despite
// detector jitter and minor page skew.
type RowClusterer struct {
	config RowConfig
}

// NewRowClusterer creates a row clusterer with default configuration.
func NewRowClusterer() *RowClusterer {
	return &RowClusterer{
		config: DefaultRowConfig(),
	}
}

// NewRowClustererWithConfig creates a row clusterer with custom configuration.
func NewRowClustererWithConfig(config RowConfig) *RowClusterer {
	return &RowClusterer{
		config: config,
	}
}

// Cluster partitions symbols into rows. Symbols with a degenerate extent
// are dropped. An empty or all-degenerate input yields an empty row set,
// not an error: the caller treats that as a page with no visual content.
//
// Detector output carries no meaningful order, so the input is re-sorted
// by Y before the sweep; the result does not depend on input order. Each
// symbol lands in exactly one row. A single stray symbol far from all
// others forms its own one-element row rather than being dropped.
func (c *RowClusterer) Cluster(symbols []model.Symbol) []model.Row {
	valid := make([]model.Symbol, 0, len(symbols))
	for _, s := range symbols {
		if s.IsDegenerate() {
			continue
		}
		valid = append(valid, s)
	}
	if len(valid) == 0 {
		return nil
	}

	tolerance := c.tolerance(valid)

	// Sort by Y, breaking ties by X so the sweep is deterministic for any
	// detector iteration order.
	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Position.Y != valid[j].Position.Y {
			return valid[i].Position.Y < valid[j].Position.Y
		}
		return valid[i].Position.X < valid[j].Position.X
	})

	var rows []model.Row
	var current []model.Symbol
	var sumY float64

	for _, sym := range valid {
		if len(current) == 0 {
			current = append(current, sym)
			sumY = sym.Position.Y
			continue
		}

		// Compare against the running mean Y of the current row rather
		// than the previous symbol, so mild skew accumulates gracefully.
		meanY := sumY / float64(len(current))
		if absFloat64(sym.Position.Y-meanY) <= tolerance {
			current = append(current, sym)
			sumY += sym.Position.Y
		} else {
			rows = append(rows, finalizeRow(current, sumY))
			current = []model.Symbol{sym}
			sumY = sym.Position.Y
		}
	}

	if len(current) > 0 {
		rows = append(rows, finalizeRow(current, sumY))
	}

	return rows
}

// tolerance derives the clustering tolerance from the observed symbol
// heights: a fraction of the median height, floored at MinTolerance.
func (c *RowClusterer) tolerance(symbols []model.Symbol) float64 {
	heights := make([]float64, 0, len(symbols))
	for _, s := range symbols {
		heights = append(heights, s.Height)
	}

	tolerance := c.config.HeightTolerance * median(heights)
	if tolerance < c.config.MinTolerance {
		tolerance = c.config.MinTolerance
	}
	return tolerance
}

// finalizeRow builds a Row from accumulated members. YCenter is the mean
// member Y; it is fixed here and never recomputed, so a symbol's row
// assignment is immutable once the sweep has passed it.
func finalizeRow(symbols []model.Symbol, sumY float64) model.Row {
	return model.Row{
		Symbols: symbols,
		YCenter: sumY / float64(len(symbols)),
	}
}

// median returns the median of values. For an even count it averages the
// two middle values.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func absFloat64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

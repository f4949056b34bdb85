package optext

import "github.com/tsawler/optext/layout"

// ExtractOptions holds configuration for text recovery.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Visual path configuration
	zoom            float64
	marker          rune
	heightTolerance float64
	minTolerance    float64

	// Document assembly
	pageSeparator string
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	rowDefaults := layout.DefaultRowConfig()
	return ExtractOptions{
		pages:           nil, // nil means all pages
		zoom:            4.0,
		marker:          layout.DefaultMarker,
		heightTolerance: rowDefaults.HeightTolerance,
		minTolerance:    rowDefaults.MinTolerance,
		pageSeparator:   "", // pages joined with no implicit break
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		zoom:            o.zoom,
		marker:          o.marker,
		heightTolerance: o.heightTolerance,
		minTolerance:    o.minTolerance,
		pageSeparator:   o.pageSeparator,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

// Package packmodel holds the data types shared by every stage of the
// constant-resolution pipeline: source locations, packs, enforcement
// settings, unresolved/resolved references, and violations.
package packmodel

import "fmt"

// Range is a source span. Rows are 1-indexed, columns are 0-indexed, matching
// the convention the rest of the pipeline (and downstream tooling) expects.
type Range struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// String renders the range's start position as "line:col", the form used in
// violation messages.
func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.StartRow, r.StartCol)
}

// Zero reports whether the range is the zero value, i.e. carries no source
// position. The ERB extractor keeps original offsets, so its ranges are not
// zeroed.
func (r Range) Zero() bool {
	return r == Range{}
}

package analysis

import "fmt"

// EmptyResultError indicates no records survived filtering, so there is
// nothing to grid and no colour-scale bounds to compute.
type EmptyResultError struct {
	Range *YearRange
}

func (e *EmptyResultError) Error() string {
	if e == nil || e.Range == nil {
		return "no monthly aggregates to plot"
	}
	return fmt.Sprintf("no records between %d and %d", e.Range.Start, e.Range.End)
}

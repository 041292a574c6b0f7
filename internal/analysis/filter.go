package analysis

import (
	"fmt"

	"github.com/eshaanmandal/tempgrid/internal/dataset"
)

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	Start int
	End   int
}

// DefaultYearRange is 2008 through 2017.
func DefaultYearRange() YearRange { return YearRange{Start: 2008, End: 2017} }

// Contains reports whether year lies within the range.
func (r YearRange) Contains(year int) bool { return year >= r.Start && year <= r.End }

func (r YearRange) String() string { return fmt.Sprintf("%d–%d", r.Start, r.End) }

// FilterYears returns the records whose year lies in r, in input order.
// The input slice is not modified.
func FilterYears(records []dataset.DailyRecord, r YearRange) []dataset.DailyRecord {
	out := make([]dataset.DailyRecord, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Year) {
			out = append(out, rec)
		}
	}
	return out
}

package analysis

import "github.com/eshaanmandal/tempgrid/internal/dataset"

// MonthlyAggregate holds the extremes observed in one (year, month) group.
type MonthlyAggregate struct {
	Year       int
	Month      int
	MonthlyMax float64 // max of MaxTemperature
	MonthlyMin float64 // min of MinTemperature
	Days       int
}

// Key returns the group key of the aggregate.
func (a MonthlyAggregate) Key() MonthKey { return MonthKey{Year: a.Year, Month: a.Month} }

// Aggregate reduces records to one aggregate per non-empty (year, month)
// group, ordered by year then month. Months without records produce nothing.
func Aggregate(records []dataset.DailyRecord) []MonthlyAggregate {
	g := groupByMonth(records)
	out := make([]MonthlyAggregate, 0, len(g.keys))
	for _, k := range g.keys {
		recs := g.buckets[k]
		agg := MonthlyAggregate{
			Year:       k.Year,
			Month:      k.Month,
			MonthlyMax: recs[0].MaxTemperature,
			MonthlyMin: recs[0].MinTemperature,
			Days:       len(recs),
		}
		for _, r := range recs[1:] {
			if r.MaxTemperature > agg.MonthlyMax {
				agg.MonthlyMax = r.MaxTemperature
			}
			if r.MinTemperature < agg.MonthlyMin {
				agg.MonthlyMin = r.MinTemperature
			}
		}
		out = append(out, agg)
	}
	return out
}

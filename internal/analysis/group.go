package analysis

import (
	"fmt"
	"sort"

	"github.com/eshaanmandal/tempgrid/internal/dataset"
)

// MonthKey identifies one (year, month) group.
type MonthKey struct {
	Year  int
	Month int
}

// Less orders keys by year, then month.
func (k MonthKey) Less(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

func (k MonthKey) String() string { return fmt.Sprintf("%04d-%02d", k.Year, k.Month) }

// monthGroups buckets records by (year, month). keys is sorted; each bucket
// preserves input order.
type monthGroups struct {
	keys    []MonthKey
	buckets map[MonthKey][]dataset.DailyRecord
}

func groupByMonth(records []dataset.DailyRecord) monthGroups {
	g := monthGroups{buckets: map[MonthKey][]dataset.DailyRecord{}}
	for _, r := range records {
		k := MonthKey{Year: r.Year, Month: r.Month}
		if _, ok := g.buckets[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.buckets[k] = append(g.buckets[k], r)
	}
	sort.Slice(g.keys, func(i, j int) bool { return g.keys[i].Less(g.keys[j]) })
	return g
}

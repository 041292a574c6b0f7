package analysis

import "sort"

// Months is the fixed month axis, independent of the data.
var Months = [12]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

// Grid is a dense month×year table of one statistic. Cells[i][j] belongs to
// Months[i] and Years[j]; a nil cell means no data for that month.
type Grid struct {
	Years  []int
	Months []int
	Cells  [][]*float64
	ZMin   float64
	ZMax   float64
}

// Value returns the cell for (year, month) and whether it holds data.
func (g *Grid) Value(year, month int) (float64, bool) {
	j := sort.SearchInts(g.Years, year)
	if j >= len(g.Years) || g.Years[j] != year || month < 1 || month > len(g.Cells) {
		return 0, false
	}
	c := g.Cells[month-1][j]
	if c == nil {
		return 0, false
	}
	return *c, true
}

// Missing counts the null cells.
func (g *Grid) Missing() int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c == nil {
				n++
			}
		}
	}
	return n
}

// Grids pairs the max and min views. Both share axes and colour bounds.
type Grids struct {
	Max Grid
	Min Grid
}

// BuildGrids lays the aggregates out on the year×month axes. ZMin is the
// lowest MonthlyMin and ZMax the highest MonthlyMax over all aggregates.
func BuildGrids(aggs []MonthlyAggregate) (*Grids, error) {
	if len(aggs) == 0 {
		return nil, &EmptyResultError{}
	}
	seen := map[int]bool{}
	var years []int
	byKey := make(map[MonthKey]MonthlyAggregate, len(aggs))
	zmin, zmax := aggs[0].MonthlyMin, aggs[0].MonthlyMax
	for _, a := range aggs {
		if !seen[a.Year] {
			seen[a.Year] = true
			years = append(years, a.Year)
		}
		byKey[a.Key()] = a
		if a.MonthlyMin < zmin {
			zmin = a.MonthlyMin
		}
		if a.MonthlyMax > zmax {
			zmax = a.MonthlyMax
		}
	}
	sort.Ints(years)

	months := Months[:]
	maxCells := make([][]*float64, len(months))
	minCells := make([][]*float64, len(months))
	for i, m := range months {
		maxCells[i] = make([]*float64, len(years))
		minCells[i] = make([]*float64, len(years))
		for j, y := range years {
			a, ok := byKey[MonthKey{Year: y, Month: m}]
			if !ok {
				continue
			}
			hi, lo := a.MonthlyMax, a.MonthlyMin
			maxCells[i][j] = &hi
			minCells[i][j] = &lo
		}
	}

	return &Grids{
		Max: Grid{Years: years, Months: append([]int(nil), months...), Cells: maxCells, ZMin: zmin, ZMax: zmax},
		Min: Grid{Years: append([]int(nil), years...), Months: append([]int(nil), months...), Cells: minCells, ZMin: zmin, ZMax: zmax},
	}, nil
}

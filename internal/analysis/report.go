package analysis

import (
	"fmt"
	"strings"
	"time"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName returns the short English name of month m (1-based).
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("M%d", m)
	}
	return monthNames[m-1]
}

// MonthNames returns the twelve short month names in calendar order.
func MonthNames() []string { return append([]string(nil), monthNames[:]...) }

// Summary is a markdown-friendly digest of one run.
type Summary struct {
	Name       string
	Range      YearRange
	Loaded     int
	Kept       int
	Inverted   int
	Aggregates []MonthlyAggregate
	Grids      *Grids
	Warnings   []string
}

// NewSummary assembles a Summary and derives its warnings.
func NewSummary(name string, r YearRange, loaded, kept, inverted int, aggs []MonthlyAggregate, grids *Grids) *Summary {
	s := &Summary{Name: name, Range: r, Loaded: loaded, Kept: kept, Inverted: inverted, Aggregates: aggs, Grids: grids}
	if inverted > 0 {
		s.Warnings = append(s.Warnings, fmt.Sprintf("%d row(s) have max_temperature below min_temperature; kept as-is", inverted))
	}
	if grids != nil {
		if n := grids.Max.Missing(); n > 0 {
			s.Warnings = append(s.Warnings, fmt.Sprintf("%d year/month cell(s) have no data", n))
		}
	}
	return s
}

// Markdown renders the summary as compact markdown sections.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Years: %s\n", s.Range))
	b.WriteString(fmt.Sprintf("Rows: %d (in range %d)\n", s.Loaded, s.Kept))
	b.WriteString(fmt.Sprintf("Months with data: %d\n", len(s.Aggregates)))
	if s.Grids != nil {
		b.WriteString(fmt.Sprintf("Colour scale: %.1f to %.1f °C\n", s.Grids.Max.ZMin, s.Grids.Max.ZMax))
	}

	if s.Grids != nil && len(s.Grids.Max.Years) > 0 {
		b.WriteString("\n[MONTHLY EXTREMES] max / min °C\n")
		b.WriteString("| Month |")
		for _, y := range s.Grids.Max.Years {
			b.WriteString(fmt.Sprintf(" %d |", y))
		}
		b.WriteString("\n|---|")
		b.WriteString(strings.Repeat("---|", len(s.Grids.Max.Years)))
		b.WriteString("\n")
		for i, m := range s.Grids.Max.Months {
			b.WriteString(fmt.Sprintf("| %s |", MonthName(m)))
			for j := range s.Grids.Max.Years {
				hi, lo := s.Grids.Max.Cells[i][j], s.Grids.Min.Cells[i][j]
				if hi == nil || lo == nil {
					b.WriteString(" – |")
					continue
				}
				b.WriteString(fmt.Sprintf(" %.1f / %.1f |", *hi, *lo))
			}
			b.WriteString("\n")
		}
	}

	if len(s.Aggregates) > 0 {
		hot, cold := s.Aggregates[0], s.Aggregates[0]
		for _, a := range s.Aggregates[1:] {
			if a.MonthlyMax > hot.MonthlyMax {
				hot = a
			}
			if a.MonthlyMin < cold.MonthlyMin {
				cold = a
			}
		}
		b.WriteString("\n[EXTREMES]\n")
		b.WriteString(fmt.Sprintf("- hottest month: %s %d (%.1f °C)\n", MonthName(hot.Month), hot.Year, hot.MonthlyMax))
		b.WriteString(fmt.Sprintf("- coldest month: %s %d (%.1f °C)\n", MonthName(cold.Month), cold.Year, cold.MonthlyMin))
	}

	if len(s.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range s.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatDate renders a date the way hover text shows it.
func FormatDate(t time.Time) string { return t.Format("2006-01-02") }

package dataset

import (
	"fmt"
	"strings"
	"time"
)

// DailyRecord is one parsed row of the daily temperature table.
// Year, Month and Day are always derived from Date.
type DailyRecord struct {
	Date           time.Time
	Year           int
	Month          int
	Day            int
	MaxTemperature float64
	MinTemperature float64
}

// NewDailyRecord derives the calendar fields from date.
func NewDailyRecord(date time.Time, maxT, minT float64) DailyRecord {
	return DailyRecord{
		Date:           date,
		Year:           date.Year(),
		Month:          int(date.Month()),
		Day:            date.Day(),
		MaxTemperature: maxT,
		MinTemperature: minT,
	}
}

// Inverted reports whether the row carries max < min.
func (r DailyRecord) Inverted() bool { return r.MaxTemperature < r.MinTemperature }

// ParseError reports a cell that could not be parsed. Row is 1-based and
// counts data rows only (the header is row 0).
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse %s %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates the header is missing required columns.
type SchemaError struct {
	Missing []string
	Header  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s) %s (header: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Header, ", "))
}

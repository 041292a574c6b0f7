package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// columnIndex holds the positions of the required columns in a header.
type columnIndex struct {
	date, max, min int
}

func resolveColumns(header []string, opt Options) (columnIndex, error) {
	pos := map[string]int{}
	for i, h := range header {
		// strip a UTF-8 BOM left by spreadsheet exports
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	var idx columnIndex
	var missing []string
	lookup := func(col string) int {
		i, ok := pos[strings.ToLower(strings.TrimSpace(col))]
		if !ok {
			missing = append(missing, col)
			return -1
		}
		return i
	}
	idx.date = lookup(opt.DateColumn)
	idx.max = lookup(opt.MaxColumn)
	idx.min = lookup(opt.MinColumn)
	if len(missing) > 0 {
		return idx, &SchemaError{Missing: missing, Header: header}
	}
	return idx, nil
}

// dateParser parses a raw date cell against the accepted layouts.
type dateParser func(s string, layouts []string) (time.Time, error)

// decodeRow turns one raw row into a record. row is the 1-based data row number.
func decodeRow(rec []string, row int, idx columnIndex, opt Options, date dateParser) (DailyRecord, error) {
	cell := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	rawDate := cell(idx.date)
	when, err := date(rawDate, opt.DateLayouts)
	if err != nil {
		return DailyRecord{}, &ParseError{Row: row, Column: opt.DateColumn, Value: rawDate, Err: err}
	}
	maxT, err := parseTemperature(cell(idx.max))
	if err != nil {
		return DailyRecord{}, &ParseError{Row: row, Column: opt.MaxColumn, Value: cell(idx.max), Err: err}
	}
	minT, err := parseTemperature(cell(idx.min))
	if err != nil {
		return DailyRecord{}, &ParseError{Row: row, Column: opt.MinColumn, Value: cell(idx.min), Err: err}
	}
	return NewDailyRecord(when, maxT, minT), nil
}

// isBlank reports whether every cell of rec is empty.
func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var errEmptyCell = errors.New("empty value")

func parseDate(s string, layouts []string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errEmptyCell
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no matching layout among %s", strings.Join(layouts, ", "))
}

func parseTemperature(s string) (float64, error) {
	if s == "" {
		return 0, errEmptyCell
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a number")
	}
	return f, nil
}

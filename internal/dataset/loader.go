package dataset

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Options controls how a daily table is read.
type Options struct {
	// Column names, matched case-insensitively.
	DateColumn string
	MaxColumn  string
	MinColumn  string
	// DateLayouts are tried in order; a date must match one of them exactly.
	DateLayouts []string
	// Delimiter for CSV. If 0, sniffed from the file extension.
	Delimiter rune
	// SheetName selects an XLSX sheet; empty means the first sheet.
	SheetName string
}

// DefaultOptions returns the column names and date layouts of the reference dataset.
func DefaultOptions() Options {
	return Options{
		DateColumn:  "date",
		MaxColumn:   "max_temperature",
		MinColumn:   "min_temperature",
		DateLayouts: DefaultDateLayouts(),
	}
}

// DefaultDateLayouts lists accepted date layouts.
func DefaultDateLayouts() []string {
	return []string{"2006-01-02", "2006/01/02", "2006-01-02 15:04:05", time.RFC3339}
}

// LoadStats summarizes a load.
type LoadStats struct {
	Rows     int
	Inverted int
}

// Loader reads a daily table from disk.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt Options) ([]DailyRecord, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// ErrNoInput indicates an empty input path.
var ErrNoInput = errors.New("input path is required")

// Load selects a loader by file extension, falling back to CSV, and returns
// the records in input order.
func Load(path string, opt Options) ([]DailyRecord, LoadStats, error) {
	if strings.TrimSpace(path) == "" {
		return nil, LoadStats{}, ErrNoInput
	}
	if _, err := os.Stat(path); err != nil {
		return nil, LoadStats{}, fmt.Errorf("open input: %w", err)
	}
	opt = withDefaults(opt)
	var l Loader = csvLoader{}
	for _, candidate := range registry {
		if candidate.CanLoad(path) {
			l = candidate
			break
		}
	}
	recs, err := l.Load(path, opt)
	if err != nil {
		return nil, LoadStats{}, err
	}
	st := LoadStats{Rows: len(recs)}
	for _, r := range recs {
		if r.Inverted() {
			st.Inverted++
		}
	}
	return recs, st, nil
}

func withDefaults(opt Options) Options {
	def := DefaultOptions()
	if strings.TrimSpace(opt.DateColumn) == "" {
		opt.DateColumn = def.DateColumn
	}
	if strings.TrimSpace(opt.MaxColumn) == "" {
		opt.MaxColumn = def.MaxColumn
	}
	if strings.TrimSpace(opt.MinColumn) == "" {
		opt.MinColumn = def.MinColumn
	}
	if len(opt.DateLayouts) == 0 {
		opt.DateLayouts = def.DateLayouts
	}
	return opt
}

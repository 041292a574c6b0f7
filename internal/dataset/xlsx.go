package dataset

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

// Load reads the sheet named by opt.SheetName, or the first sheet when empty.
// The first row of the sheet is the header.
func (xlsxLoader) Load(path string, opt Options) ([]DailyRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}
	sheet := sheets[0]
	if opt.SheetName != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.SheetName, filepath.Base(path), strings.Join(sheets, ", "))
		}
	}

	// Raw values keep date cells as serial numbers instead of their display format.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Missing: []string{opt.DateColumn, opt.MaxColumn, opt.MinColumn}}
	}
	idx, err := resolveColumns(rows[0], opt)
	if err != nil {
		return nil, err
	}
	out := make([]DailyRecord, 0, len(rows)-1)
	for i, rec := range rows[1:] {
		if isBlank(rec) {
			continue
		}
		dr, err := decodeRow(rec, i+1, idx, opt, parseSheetDate)
		if err != nil {
			return nil, err
		}
		out = append(out, dr)
	}
	return out, nil
}

// parseSheetDate accepts an Excel date serial (1900 date system) and falls
// back to the text layouts for dates stored as strings.
func parseSheetDate(s string, layouts []string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("date serial %s: %w", s, err)
		}
		return t, nil
	}
	return parseDate(s, layouts)
}

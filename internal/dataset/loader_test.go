package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCSV_DerivesCalendarFields(t *testing.T) {
	p := writeFile(t, "temperature_daily.csv", strings.Join([]string{
		"date,max_temperature,min_temperature",
		"2010-01-02,20.5,12.1",
		"2009-12-31,18,9.5",
		"2010-01-01,19.25,11",
	}, "\n"))

	recs, st, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 3, st.Rows)
	assert.Equal(t, 0, st.Inverted)

	// input order is preserved
	assert.Equal(t, 2010, recs[0].Year)
	assert.Equal(t, 1, recs[0].Month)
	assert.Equal(t, 2, recs[0].Day)
	assert.InDelta(t, 20.5, recs[0].MaxTemperature, 1e-12)
	assert.InDelta(t, 12.1, recs[0].MinTemperature, 1e-12)
	assert.Equal(t, 2009, recs[1].Year)
	assert.Equal(t, 12, recs[1].Month)
	assert.Equal(t, 31, recs[1].Day)
}

func TestLoadCSV_HeaderCaseAndExtraColumns(t *testing.T) {
	p := writeFile(t, "t.csv", "Station, Date ,MAX_TEMPERATURE,Min_Temperature\nHKO,2012-07-04,31.2,27.9\n")
	recs, _, err := Load(p, Options{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2012, recs[0].Year)
	assert.Equal(t, 7, recs[0].Month)
}

func TestLoadCSV_BadDateIsParseError(t *testing.T) {
	p := writeFile(t, "t.csv", "date,max_temperature,min_temperature\n2010-01-01,1,0\n2010-13-45,2,1\n")
	_, _, err := Load(p, DefaultOptions())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Row)
	assert.Equal(t, "date", pe.Column)
	assert.Equal(t, "2010-13-45", pe.Value)
}

func TestLoadCSV_NonNumericTemperatureIsParseError(t *testing.T) {
	cases := map[string]string{
		"text":  "2010-01-01,warm,1\n",
		"empty": "2010-01-01,,1\n",
		"nan":   "2010-01-01,NaN,1\n",
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, "t.csv", "date,max_temperature,min_temperature\n"+row)
			_, _, err := Load(p, DefaultOptions())
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "max_temperature", pe.Column)
			assert.Equal(t, 1, pe.Row)
		})
	}
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	p := writeFile(t, "t.csv", "date,max_temperature\n2010-01-01,1\n")
	_, _, err := Load(p, DefaultOptions())
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"min_temperature"}, se.Missing)
}

func TestLoadCSV_InvertedRowsAreCounted(t *testing.T) {
	p := writeFile(t, "t.csv", "date,max_temperature,min_temperature\n2010-01-01,5,10\n2010-01-02,10,5\n")
	recs, st, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, st.Inverted)
	assert.True(t, recs[0].Inverted())
}

func TestLoadTSV_SniffsDelimiter(t *testing.T) {
	p := writeFile(t, "t.tsv", "date\tmax_temperature\tmin_temperature\n2011/03/04\t22\t15\n")
	recs, _, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 3, recs[0].Month)
}

func TestLoadCSV_CustomColumnsAndLayout(t *testing.T) {
	p := writeFile(t, "t.csv", "day;hi;lo\n04.03.2011;22,0;15\n")
	_, _, err := Load(p, Options{DateColumn: "day", MaxColumn: "hi", MinColumn: "lo", Delimiter: ';', DateLayouts: []string{"02.01.2006"}})
	var pe *ParseError
	require.ErrorAs(t, err, &pe, "decimal commas are not coerced")
	assert.Equal(t, "hi", pe.Column)

	p = writeFile(t, "t.csv", "day;hi;lo\n04.03.2011;22.0;15\n")
	recs, _, err := Load(p, Options{DateColumn: "day", MaxColumn: "hi", MinColumn: "lo", Delimiter: ';', DateLayouts: []string{"02.01.2006"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 4, recs[0].Day)
	assert.Equal(t, 3, recs[0].Month)
}

func TestLoad_MissingFileAndEmptyPath(t *testing.T) {
	_, _, err := Load("", DefaultOptions())
	require.ErrorIs(t, err, ErrNoInput)
	_, _, err = Load(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	p := filepath.Join(t.TempDir(), "daily.xlsx")
	require.NoError(t, f.SaveAs(p))
	return p
}

func TestLoadXLSX_NamedSheet(t *testing.T) {
	p := writeWorkbook(t, "Daily", [][]any{
		{"date", "max_temperature", "min_temperature"},
		{"2015-08-01", "33.1", "28.4"},
		{"2015-08-02", "32.7", "27.9"},
	})

	recs, st, err := Load(p, Options{SheetName: "daily"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 2, st.Rows)
	assert.Equal(t, 2015, recs[1].Year)
	assert.Equal(t, 2, recs[1].Day)
	assert.InDelta(t, 27.9, recs[1].MinTemperature, 1e-12)
}

func TestLoadXLSX_NativeDateAndNumberCells(t *testing.T) {
	p := writeWorkbook(t, "Sheet1", [][]any{
		{"date", "max_temperature", "min_temperature"},
		{time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC), 33.1, 28.4},
		{time.Date(2015, 8, 2, 0, 0, 0, 0, time.UTC), 32, 27.5},
		{"2015-08-03", "31.6", "27.0"},
	})

	recs, _, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.True(t, recs[0].Date.Equal(time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC)), "got %v", recs[0].Date)
	assert.Equal(t, 2015, recs[0].Year)
	assert.Equal(t, 8, recs[0].Month)
	assert.Equal(t, 1, recs[0].Day)
	assert.InDelta(t, 33.1, recs[0].MaxTemperature, 1e-12)
	assert.InDelta(t, 28.4, recs[0].MinTemperature, 1e-12)
	assert.Equal(t, 2, recs[1].Day)
	assert.InDelta(t, 32.0, recs[1].MaxTemperature, 1e-12)
	assert.Equal(t, 3, recs[2].Day)
}

func TestLoadXLSX_UnknownSheet(t *testing.T) {
	p := writeWorkbook(t, "Sheet1", [][]any{{"date", "max_temperature", "min_temperature"}})
	_, _, err := Load(p, Options{SheetName: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Sheet1")
}

package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()
	if sheet != "Sheet1" {
		_, err := book.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, book.SetSheetRow(sheet, cell, &row))
	}
	buf, err := book.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseXLSXReadsDataSheet(t *testing.T) {
	data := buildWorkbook(t, "Data", [][]any{
		{"Kod", "1", "2"},
		{"A-1", "Erkek", "Road"},
		{nil, nil, nil},
		{"A-2", "Kadın", 1.2},
	})

	ds, err := Parse("catalog.xlsx", data, ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"Kod", "1", "2"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	require.Equal(t, "Erkek", ds.Value(0, 1))
	require.Equal(t, "1.2", ds.Value(1, 2))
}

func TestParseXLSXFallsBackToUpperSheet(t *testing.T) {
	data := buildWorkbook(t, "DATA", [][]any{
		{"Kod", "1"},
		{"A-1", "Erkek"},
	})

	ds, err := Parse("catalog.xlsx", data, ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
}

func TestParseXLSXMissingSheet(t *testing.T) {
	data := buildWorkbook(t, "Sheet1", [][]any{{"Kod"}})

	_, err := Parse("catalog.xlsx", data, ParseOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no usable sheet")
}

func TestParseCSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBFKod,1,,1\nA-1,Erkek,x,dup\n,,,\nA-2,Kadın\n")

	ds, err := Parse("catalog.csv", data, ParseOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"Kod", "1", "Unnamed: 2", "1.1"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	require.Equal(t, "A-2", ds.Value(1, 0))
	require.Nil(t, ds.Value(1, 2))
}

func TestParseCSVCustomDelimiter(t *testing.T) {
	data := []byte("Kod;1\nA-1;Erkek\n")

	ds, err := Parse("export", data, ParseOptions{Format: FormatCSV, Delimiter: ';'})
	require.NoError(t, err)
	require.Equal(t, "Erkek", ds.Value(0, 1))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	require.Equal(t, FormatCSV, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatAuto, f)

	_, err = ParseFormat("parquet")
	require.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	require.Equal(t, FormatXLSX, detectFormat("data.csv", []byte("PK\x03\x04rest"), FormatAuto))
	require.Equal(t, FormatCSV, detectFormat("data.csv", []byte("a,b"), FormatAuto))
	require.Equal(t, FormatXLSX, detectFormat("/uc", []byte("a,b"), FormatAuto))
	require.Equal(t, FormatCSV, detectFormat("data.xlsx", nil, FormatCSV))
}
